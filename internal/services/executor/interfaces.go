package executor

import (
	"context"
	"time"

	"vaultguard/internal/models"
	"vaultguard/internal/services/ledger"
)

// Verifier validates threshold signatures over a digest.
type Verifier interface {
	Verify(digest []byte, sigs [][]byte, authorized []string, threshold int) error
}

// NonceSequencer issues and consumes the module replay nonce.
type NonceSequencer interface {
	Current(ctx context.Context, wallet string) (uint64, error)
	Consume(ctx context.Context, wallet string, expected uint64) (uint64, error)
}

// LimitLedger checks and records window spend through a store handle, which
// in production is the transaction-scoped repository.
type LimitLedger interface {
	CheckAndRecordSpend(ctx context.Context, store ledger.Store, cfg *models.ModuleConfig, spends []ledger.Spend, now time.Time) error
}

// Service is the module's public operation surface.
type Service interface {
	Setup(ctx context.Context, req SetupRequest) (*models.ModuleConfig, error)
	ExecuteTransferLimit(ctx context.Context, req TransferRequest) (*models.TransferLog, error)
	SetDelegate(ctx context.Context, req DelegateRequest) error

	CurrentNonce(ctx context.Context, wallet string) (uint64, error)
	LimitRecord(ctx context.Context, wallet, asset string) (*models.LimitRecord, error)
	GlobalSpend(ctx context.Context, wallet string) (*GlobalSpend, error)
	Delegate(ctx context.Context, wallet string) (string, error)
	TransferLog(ctx context.Context, wallet, reference string) (*models.TransferLog, error)
}
