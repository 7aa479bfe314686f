// Package middleware provides HTTP middleware for the fiber application.
package middleware

import (
	"log"
	"strings"

	"vaultguard/internal/config"
	"vaultguard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RelayerLocalKey is where the authenticated relayer address is stored on
// the request context.
const RelayerLocalKey = "relayer"

// RelayerAuth validates the bearer token identifying the relayer submitting
// module transactions. The address claim is the identity gas refunds settle
// to; module authorization itself is the signature threshold, not the token.
func RelayerAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &models.RelayerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.GetEnv("JWT_SECRET", "vaultguard")), nil
	})
	if err != nil || !token.Valid {
		log.Printf("relayer token rejected: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	claims, ok := token.Claims.(*models.RelayerClaims)
	if !ok || claims.Address == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid claims"})
	}

	c.Locals(RelayerLocalKey, strings.ToLower(claims.Address))
	return c.Next()
}
