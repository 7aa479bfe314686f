package ledger

import (
	"context"
	"math/big"

	"vaultguard/internal/models"
)

// Keys for the implicit global aggregate records.
const (
	GlobalNativeKey = "global:native"
	GlobalStableKey = "global:stable"
)

// Spend is one debit to evaluate against the current window. The executor
// submits the principal and, when a gas refund is requested, the refund as a
// second spend so both are judged against the same window.
type Spend struct {
	Asset  string
	Amount *big.Int
}

// Store resolves and persists limit records. GetLimitRecord returns
// (nil, nil) for an asset with no record, which the ledger treats as
// untracked and unrestricted.
type Store interface {
	GetLimitRecord(ctx context.Context, wallet, key string) (*models.LimitRecord, error)
	SaveLimitRecord(ctx context.Context, rec *models.LimitRecord) error
}

// Converter normalizes an amount of one asset into another. Implemented by
// the price oracle adapter.
type Converter interface {
	Convert(ctx context.Context, amount *big.Int, from, to string) (*big.Int, error)
}
