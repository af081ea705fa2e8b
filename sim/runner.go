package sim

import (
	"math/rand"

	"github.com/google/uuid"

	"market-maker-sim/execution"
	"market-maker-sim/inventory"
	"market-maker-sim/market"
	"market-maker-sim/metrics"
	"market-maker-sim/order"
	"market-maker-sim/strategy"
)

// Config 描述一次模拟运行，运行期间不可修改。
type Config struct {
	Seed         int64
	Steps        int
	InitialPrice float64
	Volatility   float64 // 价格增量标准差
	Engine       strategy.EngineConfig
	Orders       order.Probabilities
}

// DefaultConfig 与原始脚本一致：2000 步、起始价 100、波动 0.5。
func DefaultConfig() Config {
	return Config{
		Seed:         1,
		Steps:        2000,
		InitialPrice: 100,
		Volatility:   0.5,
		Engine:       strategy.DefaultEngineConfig(),
		Orders:       order.DefaultProbabilities(),
	}
}

// Counts 按执行结果统计。
type Counts struct {
	Filled   int
	Rejected int
	Idle     int
	Buys     int // 成交的对手方买单（做市商卖出）
	Sells    int // 成交的对手方卖单（做市商买入）
}

// Result 一次运行的产出。Record 是唯一的核心数据产物，其余为派生信息。
type Result struct {
	RunID   string
	Config  Config
	Record  *Record
	Final   inventory.State
	Counts  Counts
	Summary metrics.Summary
}

// Runner 将 价格 -> 订单意图 -> 执行 -> 记录 串起来，单线程顺序执行。
type Runner struct {
	RunID    string
	Config   Config
	Engine   *strategy.Engine
	Prices   market.PriceProcess
	Orders   order.Source
	Observer Observer
}

// BuildRunner 基于配置组装 Runner：同一个带 seed 的随机源依次供价格与订单使用。
func BuildRunner(cfg Config, obs ...Observer) (*Runner, error) {
	engine, err := strategy.NewEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	r := &Runner{
		RunID:  uuid.NewString(),
		Config: cfg,
		Engine: engine,
		Prices: market.NewRandomWalk(cfg.Volatility, rng),
		Orders: order.NewGenerator(cfg.Orders, rng),
	}
	if len(obs) > 0 {
		r.Observer = MultiObserver(obs)
	}
	return r, nil
}

// Run 一次性组装并运行。
func Run(cfg Config, obs ...Observer) (*Result, error) {
	r, err := BuildRunner(cfg, obs...)
	if err != nil {
		return nil, err
	}
	return r.Run(cfg.Steps, cfg.InitialPrice), nil
}

// Run 精确执行 steps 步，无提前终止。每步先抽价格再抽订单，顺序固定以保证可复现。
// 同一个 Runner 不应重复调用 Run：随机源会继续向前推进。
func (r *Runner) Run(steps int, initialPrice float64) *Result {
	if steps < 0 {
		steps = 0
	}
	cfg := r.Engine.Config()
	rec := newRecord(steps)
	st := &inventory.State{}
	res := &Result{RunID: r.RunID, Config: r.Config, Record: rec}

	if ro, ok := r.Observer.(RunObserver); ok {
		ro.OnRunStart(r.RunID, r.Config)
	}

	price := initialPrice
	for i := 0; i < steps; i++ {
		price = r.Prices.Next(price)
		side := r.Orders.Next()
		fill := execution.Execute(side, price, st, cfg)
		res.Counts.add(fill)

		pt := Point{Price: price, PnL: st.MarkToMarket(price)}
		rec.append(pt)

		if r.Observer != nil {
			r.Observer.OnStep(StepEvent{
				RunID: r.RunID,
				Step:  i,
				Fill:  fill,
				State: *st,
				Point: pt,
			})
		}
	}

	res.Final = *st
	res.Summary = metrics.Summarize(rec.Prices(), rec.PnLs())
	if ro, ok := r.Observer.(RunObserver); ok {
		ro.OnRunEnd(res)
	}
	return res
}

func (c *Counts) add(f execution.Fill) {
	switch f.Result {
	case execution.Filled:
		c.Filled++
		if f.Side == order.Buy {
			c.Buys++
		} else {
			c.Sells++
		}
	case execution.Rejected:
		c.Rejected++
	default:
		c.Idle++
	}
}
