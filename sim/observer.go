package sim

import (
	"market-maker-sim/execution"
	"market-maker-sim/inventory"
)

// StepEvent 单步完成后的快照，在记录追加之后同步派发。
type StepEvent struct {
	RunID string
	Step  int
	Fill  execution.Fill
	State inventory.State
	Point Point
}

// Observer 接收每步事件，不得修改引擎状态。
type Observer interface {
	OnStep(ev StepEvent)
}

// RunObserver 可选：感知一次运行的开始与结束。
type RunObserver interface {
	OnRunStart(runID string, cfg Config)
	OnRunEnd(res *Result)
}

// MultiObserver 顺序派发给多个 Observer。
type MultiObserver []Observer

func (m MultiObserver) OnStep(ev StepEvent) {
	for _, o := range m {
		if o != nil {
			o.OnStep(ev)
		}
	}
}

func (m MultiObserver) OnRunStart(runID string, cfg Config) {
	for _, o := range m {
		if ro, ok := o.(RunObserver); ok {
			ro.OnRunStart(runID, cfg)
		}
	}
}

func (m MultiObserver) OnRunEnd(res *Result) {
	for _, o := range m {
		if ro, ok := o.(RunObserver); ok {
			ro.OnRunEnd(res)
		}
	}
}

// ObserverFunc 便于测试与临时挂载。
type ObserverFunc func(ev StepEvent)

func (f ObserverFunc) OnStep(ev StepEvent) { f(ev) }
