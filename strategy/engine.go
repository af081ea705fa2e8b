package strategy

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 引擎参数非法。
var ErrInvalidConfig = errors.New("invalid engine config")

// Quote represents a bid/ask decision.
type Quote struct {
	Bid float64
	Ask float64
}

// Width 返回 ask-bid，恒等于配置的 spread。
func (q Quote) Width() float64 { return q.Ask - q.Bid }

// EngineConfig 做市参数，构造后不可变。
type EngineConfig struct {
	Spread         float64 `yaml:"spread"`         // 完整买卖价差（绝对价格）
	InventoryLimit int     `yaml:"inventoryLimit"` // 对称库存上限
	RiskAversion   float64 `yaml:"riskAversion"`   // 库存偏移敏感度
}

// DefaultEngineConfig 与原始模拟参数一致。
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{Spread: 1.0, InventoryLimit: 15, RiskAversion: 0.05}
}

// Validate 构造期校验；Quote 本身不做任何校验。
func (c EngineConfig) Validate() error {
	if c.Spread <= 0 {
		return fmt.Errorf("%w: spread must be > 0", ErrInvalidConfig)
	}
	if c.InventoryLimit <= 0 {
		return fmt.Errorf("%w: inventoryLimit must be > 0", ErrInvalidConfig)
	}
	if c.RiskAversion < 0 {
		return fmt.Errorf("%w: riskAversion must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// QuoteFor 按库存偏移计算报价：多头时 bid/ask 同时下移，空头时同时上移。
// 偏移足够大时 bid/ask 可能越过 price，这是预期行为。
func QuoteFor(price float64, inventory int, cfg EngineConfig) Quote {
	skew := cfg.RiskAversion * float64(inventory)
	return Quote{
		Bid: price - cfg.Spread/2 - skew,
		Ask: price + cfg.Spread/2 - skew,
	}
}

// Engine 绑定一份已校验的配置。
type Engine struct {
	cfg EngineConfig
}

func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

func (e *Engine) Config() EngineConfig { return e.cfg }
