// Package ledger tracks per-asset and global spend inside the current
// accounting window. Reset-on-read semantics live entirely inside
// CheckAndRecordSpend so there is no drift between check and commit.
package ledger

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"vaultguard/internal/models"
)

// Ledger evaluates projected spends against window limits and commits the
// updated records only when every check passes.
type Ledger struct {
	converter   Converter
	stableAsset string
}

// New creates a Ledger. stableAsset identifies the token used as the
// normalized accounting unit for the global stable limit.
func New(converter Converter, stableAsset string) *Ledger {
	return &Ledger{converter: converter, stableAsset: stableAsset}
}

// entry is a limit record staged in memory until all checks pass.
type entry struct {
	rec   *models.LimitRecord
	dirty bool
}

// CheckAndRecordSpend evaluates spends against the per-asset records and,
// where configured, the global native and global stable aggregates. Records
// are mutated in memory first and persisted only after every projection
// passes; a failed check leaves the store untouched.
//
// A zero-amount spend always passes and does not move a window anchor unless
// a reset was already due.
func (l *Ledger) CheckAndRecordSpend(ctx context.Context, store Store, cfg *models.ModuleConfig, spends []Spend, now time.Time) error {
	nowUnix := now.Unix()
	staged := make(map[string]*entry)

	for _, spend := range spends {
		if spend.Amount == nil || spend.Amount.Sign() < 0 {
			return fmt.Errorf("invalid spend amount for %s", spend.Asset)
		}

		e, err := l.assetEntry(ctx, store, cfg, staged, spend.Asset, nowUnix)
		if err != nil {
			return err
		}
		if e != nil { // untracked assets carry no per-asset restriction
			if err := l.applySpend(e, spend.Amount, cfg, nowUnix); err != nil {
				return fmt.Errorf("%w: asset %s", err, spend.Asset)
			}
		}

		if cfg.GlobalNativeLimit.Sign() > 0 {
			equiv, err := l.converter.Convert(ctx, spend.Amount, spend.Asset, models.NativeAsset)
			if err != nil {
				return err
			}
			if equiv.Sign() < 0 {
				return fmt.Errorf("invalid converted amount for %s", spend.Asset)
			}
			g, err := l.globalEntry(ctx, store, cfg, staged, GlobalNativeKey, cfg.GlobalNativeLimit.Int(), nowUnix)
			if err != nil {
				return err
			}
			if err := l.applySpend(g, equiv, cfg, nowUnix); err != nil {
				return fmt.Errorf("%w: global native", err)
			}
		}

		if cfg.GlobalStableLimit.Sign() > 0 {
			equiv, err := l.converter.Convert(ctx, spend.Amount, spend.Asset, l.stableAsset)
			if err != nil {
				return err
			}
			if equiv.Sign() < 0 {
				return fmt.Errorf("invalid converted amount for %s", spend.Asset)
			}
			g, err := l.globalEntry(ctx, store, cfg, staged, GlobalStableKey, cfg.GlobalStableLimit.Int(), nowUnix)
			if err != nil {
				return err
			}
			if err := l.applySpend(g, equiv, cfg, nowUnix); err != nil {
				return fmt.Errorf("%w: global stable", err)
			}
		}
	}

	for _, e := range staged {
		if e != nil && e.dirty {
			if err := store.SaveLimitRecord(ctx, e.rec); err != nil {
				return fmt.Errorf("save limit record: %w", err)
			}
		}
	}
	return nil
}

// assetEntry stages the per-asset record, or nil when the asset is not
// tracked by this module.
func (l *Ledger) assetEntry(ctx context.Context, store Store, cfg *models.ModuleConfig, staged map[string]*entry, asset string, now int64) (*entry, error) {
	if e, ok := staged[asset]; ok {
		return e, nil
	}
	rec, err := store.GetLimitRecord(ctx, cfg.WalletAddress, asset)
	if err != nil {
		return nil, fmt.Errorf("load limit record: %w", err)
	}
	if rec == nil {
		staged[asset] = nil
		return nil, nil
	}
	e := &entry{rec: rec}
	staged[asset] = e
	return e, nil
}

// globalEntry stages a global aggregate record, creating it lazily on first
// reference with the configured limit.
func (l *Ledger) globalEntry(ctx context.Context, store Store, cfg *models.ModuleConfig, staged map[string]*entry, key string, limit *big.Int, now int64) (*entry, error) {
	if e, ok := staged[key]; ok {
		return e, nil
	}
	rec, err := store.GetLimitRecord(ctx, cfg.WalletAddress, key)
	if err != nil {
		return nil, fmt.Errorf("load limit record: %w", err)
	}
	if rec == nil {
		start := now - now%cfg.PeriodSeconds
		if cfg.Rolling {
			start = now
		}
		rec = &models.LimitRecord{
			WalletAddress: cfg.WalletAddress,
			Key:           key,
			LimitAmount:   models.NewBigInt(limit),
			WindowStart:   start,
		}
	}
	e := &entry{rec: rec}
	staged[key] = e
	return e, nil
}

// applySpend resets the record's window if it lapsed, then projects the new
// spend against the limit. The invariant spent <= limit holds after every
// successful application.
func (l *Ledger) applySpend(e *entry, amount *big.Int, cfg *models.ModuleConfig, now int64) error {
	start, expired := currentWindow(cfg.Rolling, cfg.PeriodSeconds, e.rec.WindowStart, now)
	if expired {
		e.rec.SpentAmount = models.BigInt{}
		e.rec.WindowStart = start
		e.dirty = true
	}
	if amount.Sign() == 0 {
		return nil
	}

	projected := new(big.Int).Add(e.rec.SpentAmount.Int(), amount)
	if projected.Cmp(e.rec.LimitAmount.Int()) > 0 {
		return ErrAssetLimitExceeded
	}
	e.rec.SpentAmount = models.NewBigInt(projected)
	if cfg.Rolling {
		// Rolling windows re-anchor to the latest accepted transfer.
		e.rec.WindowStart = now
	}
	e.dirty = true
	return nil
}
