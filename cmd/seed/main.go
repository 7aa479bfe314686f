// Command seed provisions a demo wallet for local development: three owner
// keypairs, a funded wallet with the module enabled, and a relayer token for
// the execute endpoint. Keys are printed to stdout; never run against a
// production database.
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"log"
	"math/big"
	"time"

	"vaultguard/internal/config"
	"vaultguard/internal/models"
	"vaultguard/internal/repositories"
	"vaultguard/internal/services/signature"

	"github.com/golang-jwt/jwt/v5"
)

const ownerCount = 3

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.Redis != nil {
			repositories.Redis.Close()
		}
	}()

	ctx := context.Background()
	wallets := repositories.NewWalletRepository(repositories.DB)

	owners := make([]string, 0, ownerCount)
	for i := 0; i < ownerCount; i++ {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			log.Fatal("Failed to generate owner key:", err)
		}
		addr := signature.SignerAddress(pub)
		owners = append(owners, addr)
		log.Printf("owner %d: %s key=%s", i+1, addr, hex.EncodeToString(priv))
	}

	// The wallet's own address is derived the same way as signer addresses,
	// from a throwaway key.
	walletPub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatal("Failed to generate wallet key:", err)
	}
	walletAddr := signature.SignerAddress(walletPub)

	existing, err := wallets.GetWallet(ctx, walletAddr)
	if err != nil {
		log.Fatal("Failed to look up wallet:", err)
	}
	if existing != nil {
		log.Println("Wallet already exists")
		return
	}

	wallet := &models.Wallet{
		Address:       walletAddr,
		Threshold:     2,
		ModuleEnabled: true,
	}
	if err := wallets.CreateWallet(ctx, wallet, owners); err != nil {
		log.Fatal("Failed to create wallet:", err)
	}

	native, _ := new(big.Int).SetString("1000000000000000000000", 10) // 1000 units
	demoToken := "0x00000000000000000000000000000000000000de"

	if err := wallets.SetBalance(ctx, walletAddr, models.NativeAsset, native); err != nil {
		log.Fatal("Failed to fund native balance:", err)
	}
	if err := wallets.SetBalance(ctx, walletAddr, demoToken, big.NewInt(1_000_000_000)); err != nil {
		log.Fatal("Failed to fund token balance:", err)
	}

	// Relayer identity for the execute endpoint.
	relayerPub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatal("Failed to generate relayer key:", err)
	}
	relayerAddr := signature.SignerAddress(relayerPub)

	claims := models.RelayerClaims{
		Address: relayerAddr,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.GetEnv("JWT_SECRET", "vaultguard")))
	if err != nil {
		log.Fatal("Failed to sign relayer token:", err)
	}

	log.Printf("wallet: %s (threshold 2, module enabled)", walletAddr)
	log.Printf("demo token: %s", demoToken)
	log.Printf("relayer: %s", relayerAddr)
	log.Printf("relayer token: %s", signed)
	log.Println("✅ Demo wallet seeded successfully!")
}
