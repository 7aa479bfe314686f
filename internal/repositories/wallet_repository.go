package repositories

import (
	"context"
	"math/big"

	"vaultguard/internal/models"
)

// WalletRepository exposes the owning-wallet interface the module consumes:
// owner sets, module enablement and the wallet-level action nonce, plus the
// balance bookkeeping used by seeding and accessors.
type WalletRepository interface {
	GetWallet(ctx context.Context, address string) (*models.Wallet, error)
	GetOwners(ctx context.Context, address string) ([]string, error)
	ConsumeWalletNonce(ctx context.Context, address string, expected uint64) (bool, error)

	CreateWallet(ctx context.Context, wallet *models.Wallet, owners []string) error
	SetBalance(ctx context.Context, address, asset string, amount *big.Int) error
	GetBalance(ctx context.Context, address, asset string) (*big.Int, error)
}
