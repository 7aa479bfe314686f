package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// RelayerClaims identifies the relayer submitting module transactions.
// The address claim is the identity gas refunds are settled to.
type RelayerClaims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}
