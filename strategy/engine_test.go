package strategy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_Invalid(t *testing.T) {
	cases := []EngineConfig{
		{},
		{Spread: 1, InventoryLimit: 0},
		{Spread: -1, InventoryLimit: 1},
		{Spread: 1, InventoryLimit: 1, RiskAversion: -0.1},
	}
	for _, cfg := range cases {
		_, err := NewEngine(cfg)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig for %+v, got %v", cfg, err)
		}
	}
}

func TestQuoteFor_ZeroInventorySymmetric(t *testing.T) {
	q := QuoteFor(100, 0, EngineConfig{Spread: 1, InventoryLimit: 2})
	assert.Equal(t, 99.5, q.Bid)
	assert.Equal(t, 100.5, q.Ask)
	assert.Equal(t, 1.0, q.Width())
}

func TestQuoteFor_ShiftsWithInventory(t *testing.T) {
	cfg := EngineConfig{Spread: 1, InventoryLimit: 10, RiskAversion: 0.05}
	neutral := QuoteFor(100, 0, cfg)

	// 多头：整体下移，鼓励卖出
	long := QuoteFor(100, 4, cfg)
	assert.InDelta(t, neutral.Bid-0.2, long.Bid, 1e-12)
	assert.InDelta(t, neutral.Ask-0.2, long.Ask, 1e-12)

	// 空头：整体上移
	short := QuoteFor(100, -4, cfg)
	assert.InDelta(t, neutral.Bid+0.2, short.Bid, 1e-12)
	assert.InDelta(t, neutral.Ask+0.2, short.Ask, 1e-12)
}

func TestQuoteFor_MonotoneInInventory(t *testing.T) {
	cfg := EngineConfig{Spread: 1, InventoryLimit: 15, RiskAversion: 0.05}
	prev := QuoteFor(100, -15, cfg)
	for inv := -14; inv <= 15; inv++ {
		q := QuoteFor(100, inv, cfg)
		require.Less(t, q.Bid, prev.Bid, "bid should strictly decrease at inv=%d", inv)
		require.Less(t, q.Ask, prev.Ask, "ask should strictly decrease at inv=%d", inv)
		assert.InDelta(t, prev.Bid-q.Bid, prev.Ask-q.Ask, 1e-9)
		assert.InDelta(t, cfg.RiskAversion, prev.Bid-q.Bid, 1e-9)
		prev = q
	}
}

func TestQuoteFor_CanInvertUnderLargeSkew(t *testing.T) {
	cfg := EngineConfig{Spread: 1, InventoryLimit: 20, RiskAversion: 0.1}
	q := QuoteFor(100, 10, cfg)
	// skew=1 > spread/2：ask 落到 price 之下
	assert.Less(t, q.Ask, 100.0)
	assert.Less(t, q.Bid, q.Ask)
}
