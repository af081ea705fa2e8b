package sim

import (
	"market-maker-sim/execution"
	"market-maker-sim/infrastructure/logger"
)

// LogObserver 把每步结果写入结构化日志：成交走 LogTrade，限仓拒单走 LogRisk。
type LogObserver struct {
	Log *logger.Logger
}

func (o LogObserver) OnStep(ev StepEvent) {
	if o.Log == nil {
		return
	}
	fields := map[string]interface{}{
		"runId":     ev.RunID,
		"step":      ev.Step,
		"side":      ev.Fill.Side.String(),
		"price":     ev.Point.Price,
		"bid":       ev.Fill.Quote.Bid,
		"ask":       ev.Fill.Quote.Ask,
		"inventory": ev.State.Inventory,
		"cash":      ev.State.Cash,
		"pnl":       ev.Point.PnL,
	}
	switch ev.Fill.Result {
	case execution.Filled:
		fields["fillPrice"] = ev.Fill.Price
		o.Log.LogTrade("fill", fields)
	case execution.Rejected:
		o.Log.LogRisk("position_limit", fields)
	}
}

func (o LogObserver) OnRunStart(runID string, cfg Config) {
	if o.Log == nil {
		return
	}
	o.Log.LogRun("run_started", map[string]interface{}{
		"runId":          runID,
		"seed":           cfg.Seed,
		"steps":          cfg.Steps,
		"initialPrice":   cfg.InitialPrice,
		"volatility":     cfg.Volatility,
		"spread":         cfg.Engine.Spread,
		"inventoryLimit": cfg.Engine.InventoryLimit,
		"riskAversion":   cfg.Engine.RiskAversion,
	})
}

func (o LogObserver) OnRunEnd(res *Result) {
	if o.Log == nil {
		return
	}
	o.Log.LogRun("run_finished", map[string]interface{}{
		"runId":       res.RunID,
		"steps":       res.Summary.Steps,
		"finalPnl":    res.Summary.FinalPnL,
		"sharpe":      res.Summary.Sharpe,
		"maxDrawdown": res.Summary.MaxDrawdown,
		"inventory":   res.Final.Inventory,
		"filled":      res.Counts.Filled,
		"rejected":    res.Counts.Rejected,
	})
}
