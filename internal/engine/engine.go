// internal/engine/engine.go

// Package engine 实现逐秒的温度演化与计费模拟。
//
// 送风使房间以风速对应的速率逼近目标温度并按实际变化量计费；
// 暂停与关机状态以固定速率回温且不计费；等待状态温度冻结。
// 温度内部保留三位小数，每 60 个节拍做一次分钟对齐，把温度修正到
// 一位小数并按修正后的变化量校正费用。
package engine

import (
	"math"

	"backend/internal/room"
	"backend/internal/types"
)

const (
	snapTolerance   = 0.005 // 贴合目标/初始温度的容差
	resumeDelta     = 1.0   // 暂停后偏离目标该幅度时重新请求服务
	resumeTolerance = 0.001
	driftPerMinute  = 0.5 // 暂停与关机状态的每分钟回温速率
)

// ratePerMinute 各风速的每分钟温度变化速率
var ratePerMinute = map[types.FanSpeed]float64{
	types.SpeedLow:    1.0 / 3.0,
	types.SpeedMedium: 0.5,
	types.SpeedHigh:   1.0,
}

// Transition 引擎在一步模拟里产生的状态迁移
type Transition int

const (
	TransNone Transition = iota
	// TransPaused 服务中达到目标温度，引擎已把房间置为暂停
	TransPaused
	// TransResume 暂停期间回温越限，请求调度器把房间放回等待队列
	TransResume
)

// Result 单步模拟的结果
type Result struct {
	Cost       float64 // 本秒费用增量，由调度器计入房间
	Transition Transition
}

// Engine 温控与计费引擎
type Engine struct {
	feePerDegree float64
}

// New 创建引擎，feePerDegree 为每变化一度收取的金额
func New(feePerDegree float64) *Engine {
	return &Engine{feePerDegree: feePerDegree}
}

// RatePerMinute 返回风速对应的每分钟温度变化速率
func RatePerMinute(speed types.FanSpeed) float64 {
	return ratePerMinute[speed]
}

// FeeRate 返回风速对应的每分钟费率，详单 fee_rate 列存储该值
func (e *Engine) FeeRate(speed types.FanSpeed) float64 {
	return ratePerMinute[speed] * e.feePerDegree
}

// Step 推进指定房间一秒
func (e *Engine) Step(r *room.Room) Result {
	switch r.State {
	case types.StateServing:
		return e.stepServing(r)
	case types.StatePaused:
		return e.stepPaused(r)
	case types.StateOff:
		e.stepOff(r)
	}
	return Result{}
}

func (e *Engine) stepServing(r *room.Room) Result {
	if math.Abs(r.CurrentTemp-r.TargetTemp) <= snapTolerance {
		r.CurrentTemp = r.TargetTemp
		r.State = types.StatePaused
		return Result{Transition: TransPaused}
	}

	// 送风开始前温度已越过目标：立即暂停且不计费，本秒按暂停回温处理
	past := (r.Mode == types.ModeCooling && r.CurrentTemp < r.TargetTemp) ||
		(r.Mode == types.ModeHeating && r.CurrentTemp > r.TargetTemp)
	if past {
		r.State = types.StatePaused
		res := e.stepPaused(r)
		res.Transition = TransPaused
		return res
	}

	before := r.CurrentTemp
	rate := ratePerMinute[r.FanSpeed] / 60.0
	if r.CurrentTemp > r.TargetTemp {
		r.CurrentTemp = math.Max(r.CurrentTemp-rate, r.TargetTemp)
	} else {
		r.CurrentTemp = math.Min(r.CurrentTemp+rate, r.TargetTemp)
	}
	r.CurrentTemp = Round3(r.CurrentTemp)

	trans := TransNone
	if math.Abs(r.CurrentTemp-r.TargetTemp) <= snapTolerance {
		r.CurrentTemp = r.TargetTemp
		r.State = types.StatePaused
		trans = TransPaused
	}
	return Result{
		Cost:       math.Abs(r.CurrentTemp-before) * e.feePerDegree,
		Transition: trans,
	}
}

func (e *Engine) stepPaused(r *room.Room) Result {
	drift := driftPerMinute / 60.0
	if r.Mode == types.ModeCooling {
		r.CurrentTemp = Round3(r.CurrentTemp + drift)
		if r.CurrentTemp >= r.TargetTemp+resumeDelta-resumeTolerance {
			return Result{Transition: TransResume}
		}
	} else {
		r.CurrentTemp = Round3(r.CurrentTemp - drift)
		if r.CurrentTemp <= r.TargetTemp-resumeDelta+resumeTolerance {
			return Result{Transition: TransResume}
		}
	}
	return Result{}
}

func (e *Engine) stepOff(r *room.Room) {
	diff := r.InitialTemp - r.CurrentTemp
	if math.Abs(diff) <= snapTolerance {
		r.CurrentTemp = r.InitialTemp
		return
	}
	drift := driftPerMinute / 60.0
	if diff > 0 {
		r.CurrentTemp = math.Min(r.CurrentTemp+drift, r.InitialTemp)
	} else {
		r.CurrentTemp = math.Max(r.CurrentTemp-drift, r.InitialTemp)
	}
	r.CurrentTemp = Round3(r.CurrentTemp)
	if math.Abs(r.CurrentTemp-r.InitialTemp) <= snapTolerance {
		r.CurrentTemp = r.InitialTemp
	}
}

// PauseIfReached 分钟对齐后温度可能恰好落在目标上，调度器用它在同一节拍内完成暂停
func (e *Engine) PauseIfReached(r *room.Room) bool {
	if r.State != types.StateServing {
		return false
	}
	if math.Abs(r.CurrentTemp-r.TargetTemp) <= snapTolerance {
		r.CurrentTemp = r.TargetTemp
		r.State = types.StatePaused
		return true
	}
	return false
}

// AlignMinute 分钟对齐：服务中的房间按显示精度修正温度并把费用校正为
// 修正后的变化量，其余房间只做舍入。返回新的分钟起点温度。
func (e *Engine) AlignMinute(r *room.Room, minuteStart float64) float64 {
	if r.State == types.StateServing {
		raw := math.Abs(r.CurrentTemp - minuteStart)
		r.CurrentTemp = Round1(r.CurrentTemp)
		rounded := math.Abs(r.CurrentTemp - minuteStart)
		r.Cost = Round2(r.Cost + (rounded-raw)*e.feePerDegree)
	} else {
		r.CurrentTemp = Round1(r.CurrentTemp)
		r.Cost = Round2(r.Cost)
	}
	return r.CurrentTemp
}

// Round3 内部温度精度：三位小数
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// Round1 显示温度精度：一位小数
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Round2 金额精度：两位小数
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
