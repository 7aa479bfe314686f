// Package oracle converts amounts between assets using last-auction price
// ratios supplied by an external price source.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"vaultguard/internal/models"
)

// ErrPriceUnavailable is returned when a price ratio cannot be obtained for
// an asset involved in a conversion.
var ErrPriceUnavailable = errors.New("price unavailable")

// PriceSource reports the last-auction price of an asset against the native
// reference unit as a numerator/denominator pair.
type PriceSource interface {
	GetPriceRatio(ctx context.Context, asset string) (num, den *big.Int, err error)
}

// Adapter converts amounts between assets. It is a pure function of the
// injected price source and holds no state.
type Adapter struct {
	source PriceSource
}

// NewAdapter creates an Adapter backed by source.
func NewAdapter(source PriceSource) *Adapter {
	return &Adapter{source: source}
}

// Convert returns amount expressed in units of the to asset, computed as
// amount * priceOf(from) / priceOf(to). Division floors, never rounds up, so
// normalized spend can only be under-reported within bounded imprecision.
func (a *Adapter) Convert(ctx context.Context, amount *big.Int, from, to string) (*big.Int, error) {
	if amount == nil {
		return big.NewInt(0), nil
	}
	if from == to {
		return new(big.Int).Set(amount), nil
	}

	fromNum, fromDen, err := a.priceRatio(ctx, from)
	if err != nil {
		return nil, err
	}
	toNum, toDen, err := a.priceRatio(ctx, to)
	if err != nil {
		return nil, err
	}

	// amount * (fromNum/fromDen) * (toDen/toNum), floored.
	result := new(big.Int).Mul(amount, fromNum)
	result.Mul(result, toDen)
	divisor := new(big.Int).Mul(fromDen, toNum)
	if divisor.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero price ratio", ErrPriceUnavailable)
	}
	return result.Quo(result, divisor), nil
}

func (a *Adapter) priceRatio(ctx context.Context, asset string) (*big.Int, *big.Int, error) {
	// The native asset is the reference unit itself.
	if asset == models.NativeAsset {
		return big.NewInt(1), big.NewInt(1), nil
	}
	num, den, err := a.source.GetPriceRatio(ctx, asset)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrPriceUnavailable, asset, err)
	}
	// Ratios must be strictly positive: a negative ratio from a corrupt feed
	// would produce a negative converted amount and shrink recorded spend.
	if num == nil || den == nil || num.Sign() <= 0 || den.Sign() <= 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrPriceUnavailable, asset)
	}
	return num, den, nil
}
