// Package nonce issues and consumes the module's replay-protection counter.
// The counter is strictly increasing and each value is consumed at most once,
// imposing a total order on accepted transfer requests.
package nonce

import (
	"context"
	"errors"
	"fmt"
)

// ErrNonceMismatch is returned when the expected nonce does not equal the
// module's current nonce.
var ErrNonceMismatch = errors.New("nonce mismatch")

// Store persists the per-wallet module nonce. ConsumeNonce must atomically
// increment the counter only when it currently equals expected, reporting
// whether it did.
type Store interface {
	CurrentNonce(ctx context.Context, wallet string) (uint64, error)
	ConsumeNonce(ctx context.Context, wallet string, expected uint64) (bool, error)
}

// Sequencer guards the module nonce behind a compare-and-increment.
type Sequencer struct {
	store Store
}

// NewSequencer creates a Sequencer backed by store.
func NewSequencer(store Store) *Sequencer {
	return &Sequencer{store: store}
}

// Current returns the module's current nonce.
func (s *Sequencer) Current(ctx context.Context, wallet string) (uint64, error) {
	return s.store.CurrentNonce(ctx, wallet)
}

// Consume advances the nonce if expected matches the current value and
// returns the consumed value. A stale or future expected value fails with
// ErrNonceMismatch and leaves the counter unchanged.
func (s *Sequencer) Consume(ctx context.Context, wallet string, expected uint64) (uint64, error) {
	ok, err := s.store.ConsumeNonce(ctx, wallet, expected)
	if err != nil {
		return 0, fmt.Errorf("consume nonce: %w", err)
	}
	if !ok {
		return 0, ErrNonceMismatch
	}
	return expected, nil
}
