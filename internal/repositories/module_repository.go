package repositories

import (
	"context"
	"errors"
	"math/big"

	"vaultguard/internal/models"
)

// ErrInsufficientFunds is returned when a balance movement would overdraw
// the source address.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAlreadyExists is returned when a create hits a unique constraint, e.g.
// two racing setup calls for the same wallet.
var ErrAlreadyExists = errors.New("record already exists")

// ModuleTxRepository is the transaction-scoped view handed to the executor's
// ledger-checking and movement steps. Everything done through it commits or
// rolls back as one unit.
type ModuleTxRepository interface {
	GetLimitRecord(ctx context.Context, wallet, key string) (*models.LimitRecord, error)
	SaveLimitRecord(ctx context.Context, rec *models.LimitRecord) error
	MoveBalance(ctx context.Context, from, to, asset string, amount *big.Int) error
	CreateTransferLog(ctx context.Context, entry *models.TransferLog) error
}

// ModuleRepository persists module configuration, nonces, limit records and
// transfer logs.
type ModuleRepository interface {
	GetModule(ctx context.Context, wallet string) (*models.ModuleConfig, error)
	CreateModule(ctx context.Context, cfg *models.ModuleConfig, records []*models.LimitRecord) error
	SetDelegate(ctx context.Context, wallet, delegate string) error

	CurrentNonce(ctx context.Context, wallet string) (uint64, error)
	ConsumeNonce(ctx context.Context, wallet string, expected uint64) (bool, error)

	GetLimitRecord(ctx context.Context, wallet, key string) (*models.LimitRecord, error)
	GetTransferLog(ctx context.Context, reference string) (*models.TransferLog, error)

	ExecuteInTransaction(ctx context.Context, fn func(tx ModuleTxRepository) error) error
}
