package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"market-maker-sim/execution"
	"market-maker-sim/metrics"
	"market-maker-sim/sim"
)

// Monitor Prometheus监控指标收集器，实现 sim.Observer
type Monitor struct {
	registry *prometheus.Registry

	// 市场/报价
	price prometheus.Gauge
	bid   prometheus.Gauge
	ask   prometheus.Gauge
	width prometheus.Gauge

	// 仓位
	inventory     prometheus.Gauge
	cash          prometheus.Gauge
	pnl           prometheus.Gauge
	positionLimit prometheus.Gauge

	// 执行
	steps   prometheus.Counter
	fills   *prometheus.CounterVec
	rejects *prometheus.CounterVec

	// 运行汇总
	runs        prometheus.Counter
	sharpe      prometheus.Gauge
	finalPnL    prometheus.Gauge
	maxDrawdown prometheus.Gauge
}

// Config 监控配置
type Config struct {
	Namespace string
	Subsystem string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Namespace: "mm",
		Subsystem: "sim",
	}
}

// New 创建新的Monitor实例
func New(cfg Config) *Monitor {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &Monitor{
		registry: reg,

		price: gauge("price", "当前参考价格"),
		bid:   gauge("bid_price", "当前买价报价"),
		ask:   gauge("ask_price", "当前卖价报价"),
		width: gauge("quote_width", "当前报价宽度 ask-bid"),

		inventory:     gauge("inventory", "净库存"),
		cash:          gauge("cash", "累计现金流"),
		pnl:           gauge("pnl", "盯市盈亏"),
		positionLimit: gauge("position_limit", "库存上限"),

		steps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "steps_total",
			Help:      "已执行步数",
		}),
		fills: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "fills_total",
			Help:      "成交次数（按对手方方向）",
		}, []string{"side"}),
		rejects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "rejects_total",
			Help:      "触及库存上限被拒次数（按对手方方向）",
		}, []string{"side"}),

		runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "runs_total",
			Help:      "完成的模拟运行次数",
		}),
		sharpe:      gauge("sharpe_ratio", "最近一次运行的夏普比率"),
		finalPnL:    gauge("final_pnl", "最近一次运行的最终盈亏"),
		maxDrawdown: gauge("max_drawdown", "最近一次运行的最大回撤"),
	}
}

// OnStep 每步更新仓位/报价指标
func (m *Monitor) OnStep(ev sim.StepEvent) {
	m.steps.Inc()
	m.price.Set(ev.Point.Price)
	m.bid.Set(ev.Fill.Quote.Bid)
	m.ask.Set(ev.Fill.Quote.Ask)
	m.width.Set(ev.Fill.Quote.Width())
	m.inventory.Set(float64(ev.State.Inventory))
	m.cash.Set(ev.State.Cash)
	m.pnl.Set(ev.Point.PnL)

	side := ev.Fill.Side.String()
	switch ev.Fill.Result {
	case execution.Filled:
		m.fills.WithLabelValues(side).Inc()
	case execution.Rejected:
		m.rejects.WithLabelValues(side).Inc()
	}
}

func (m *Monitor) OnRunStart(runID string, cfg sim.Config) {
	m.positionLimit.Set(float64(cfg.Engine.InventoryLimit))
}

func (m *Monitor) OnRunEnd(res *sim.Result) {
	m.RecordSummary(res.Summary)
}

// RecordSummary 记录运行汇总
func (m *Monitor) RecordSummary(s metrics.Summary) {
	m.runs.Inc()
	m.sharpe.Set(s.Sharpe)
	m.finalPnL.Set(s.FinalPnL)
	m.maxDrawdown.Set(s.MaxDrawdown)
}

// Handler 返回HTTP处理器
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
