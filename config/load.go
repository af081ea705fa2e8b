package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"market-maker-sim/infrastructure/logger"
	"market-maker-sim/order"
	"market-maker-sim/sim"
	"market-maker-sim/strategy"
)

// ErrInvalid 配置校验失败。
var ErrInvalid = errors.New("invalid config")

// AppConfig holds the simulation configuration.
type AppConfig struct {
	Seed         int64                 `yaml:"seed"`
	Steps        int                   `yaml:"steps"`
	InitialPrice float64               `yaml:"initialPrice"`
	Volatility   float64               `yaml:"volatility"`
	Engine       strategy.EngineConfig `yaml:"engine"`
	Orders       order.Probabilities   `yaml:"orders"`
	Log          logger.Config         `yaml:"log"`
	Report       ReportConfig          `yaml:"report"`
}

// ReportConfig 输出相关：CSV 路径与 HTTP 监听地址，均可为空。
type ReportConfig struct {
	CSV    string `yaml:"csv"`
	Listen string `yaml:"listen"`
}

// Default 返回原始脚本使用的参数。
func Default() AppConfig {
	sc := sim.DefaultConfig()
	return AppConfig{
		Seed:         sc.Seed,
		Steps:        sc.Steps,
		InitialPrice: sc.InitialPrice,
		Volatility:   sc.Volatility,
		Engine:       sc.Engine,
		Orders:       sc.Orders,
		Log:          logger.DefaultConfig(),
	}
}

// Load reads YAML config from path on top of Default and applies validation.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides seed/steps/log level from env vars if present.
// An empty path starts from Default.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}
	if v := os.Getenv("MMSIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: MMSIM_SEED: %v", ErrInvalid, err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("MMSIM_STEPS"); v != "" {
		steps, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: MMSIM_STEPS: %v", ErrInvalid, err)
		}
		cfg.Steps = steps
	}
	if v := os.Getenv("MMSIM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, Validate(cfg)
}

// Validate 构造期校验。核心模拟本身不校验参数，这里是额外的保护。
func Validate(cfg AppConfig) error {
	if err := cfg.Engine.Validate(); err != nil {
		return fmt.Errorf("%w: engine: %v", ErrInvalid, err)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: steps must be > 0", ErrInvalid)
	}
	if cfg.Volatility <= 0 {
		return fmt.Errorf("%w: volatility must be > 0", ErrInvalid)
	}
	p := cfg.Orders
	probs := []struct {
		name string
		v    float64
	}{{"buy", p.Buy}, {"sell", p.Sell}, {"none", p.None}}
	for _, pr := range probs {
		if pr.v < 0 || pr.v > 1 {
			return fmt.Errorf("%w: orders.%s must be within [0,1]", ErrInvalid, pr.name)
		}
	}
	if sum := p.Buy + p.Sell + p.None; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("%w: order probabilities sum to %.6f, want 1", ErrInvalid, sum)
	}
	return nil
}

// RunnerConfig 映射为单次模拟配置。
func (c AppConfig) RunnerConfig() sim.Config {
	return sim.Config{
		Seed:         c.Seed,
		Steps:        c.Steps,
		InitialPrice: c.InitialPrice,
		Volatility:   c.Volatility,
		Engine:       c.Engine,
		Orders:       c.Orders,
	}
}
