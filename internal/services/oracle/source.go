package oracle

import (
	"context"
	"fmt"
	"math/big"

	"github.com/redis/go-redis/v9"
)

// priceKeyPrefix is where the auction indexer publishes price ratios.
// Each asset is a hash with "num" and "den" fields.
const priceKeyPrefix = "price:"

// RedisPriceSource reads last-auction price ratios published to Redis by the
// external auction indexer.
type RedisPriceSource struct {
	client *redis.Client
}

// NewRedisPriceSource creates a price source backed by client.
func NewRedisPriceSource(client *redis.Client) *RedisPriceSource {
	return &RedisPriceSource{client: client}
}

// GetPriceRatio implements PriceSource.
func (s *RedisPriceSource) GetPriceRatio(ctx context.Context, asset string) (*big.Int, *big.Int, error) {
	vals, err := s.client.HMGet(ctx, priceKeyPrefix+asset, "num", "den").Result()
	if err != nil {
		return nil, nil, err
	}
	num, err := parseRatioField(vals[0])
	if err != nil {
		return nil, nil, fmt.Errorf("asset %s: %w", asset, err)
	}
	den, err := parseRatioField(vals[1])
	if err != nil {
		return nil, nil, fmt.Errorf("asset %s: %w", asset, err)
	}
	return num, den, nil
}

func parseRatioField(v interface{}) (*big.Int, error) {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil, fmt.Errorf("no published price")
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("bad price value %q", s)
	}
	return n, nil
}
