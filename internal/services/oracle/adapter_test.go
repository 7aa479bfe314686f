package oracle

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"vaultguard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	ratios map[string][2]int64
}

func (s *staticSource) GetPriceRatio(_ context.Context, asset string) (*big.Int, *big.Int, error) {
	r, ok := s.ratios[asset]
	if !ok {
		return nil, nil, errors.New("unknown asset")
	}
	return big.NewInt(r[0]), big.NewInt(r[1]), nil
}

func TestAdapter_Convert(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(&staticSource{ratios: map[string][2]int64{
		"0xtoken":  {1, 2}, // one token is worth half a native unit
		"0xstable": {1, 4},
	}})

	t.Run("same asset is identity", func(t *testing.T) {
		got, err := adapter.Convert(ctx, big.NewInt(123), "0xtoken", "0xtoken")
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(123), got)
	})

	t.Run("token to native", func(t *testing.T) {
		got, err := adapter.Convert(ctx, big.NewInt(100), "0xtoken", models.NativeAsset)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(50), got)
	})

	t.Run("native to token", func(t *testing.T) {
		got, err := adapter.Convert(ctx, big.NewInt(50), models.NativeAsset, "0xtoken")
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(100), got)
	})

	t.Run("token to token via reference unit", func(t *testing.T) {
		// 100 token * 1/2 = 50 native = 200 stable.
		got, err := adapter.Convert(ctx, big.NewInt(100), "0xtoken", "0xstable")
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(200), got)
	})

	t.Run("division floors", func(t *testing.T) {
		got, err := adapter.Convert(ctx, big.NewInt(7), "0xtoken", models.NativeAsset)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(3), got)
	})

	t.Run("nil amount is zero", func(t *testing.T) {
		got, err := adapter.Convert(ctx, nil, "0xtoken", models.NativeAsset)
		require.NoError(t, err)
		assert.Zero(t, got.Sign())
	})

	t.Run("unknown asset", func(t *testing.T) {
		_, err := adapter.Convert(ctx, big.NewInt(1), "0xmystery", models.NativeAsset)
		assert.ErrorIs(t, err, ErrPriceUnavailable)
	})

	t.Run("result is a fresh value", func(t *testing.T) {
		amount := big.NewInt(10)
		got, err := adapter.Convert(ctx, amount, "0xtoken", "0xtoken")
		require.NoError(t, err)
		got.SetInt64(999)
		assert.Equal(t, int64(10), amount.Int64())
	})
}

func TestAdapter_BadRatios(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(&staticSource{ratios: map[string][2]int64{
		"0xzeronum": {0, 1},
		"0xzeroden": {1, 0},
		"0xnegnum":  {-1, 2},
		"0xnegden":  {1, -2},
	}})

	for _, asset := range []string{"0xzeronum", "0xzeroden", "0xnegnum", "0xnegden"} {
		t.Run(asset, func(t *testing.T) {
			_, err := adapter.Convert(ctx, big.NewInt(100), asset, models.NativeAsset)
			assert.ErrorIs(t, err, ErrPriceUnavailable,
				"a non-positive ratio must never yield a converted amount")

			_, err = adapter.Convert(ctx, big.NewInt(100), models.NativeAsset, asset)
			assert.ErrorIs(t, err, ErrPriceUnavailable)
		})
	}
}
