// internal/monitor/monitor.go

// Package monitor 周期性打印调度面板并记录总线上的调度事件。
package monitor

import (
	"time"

	"backend/internal/events"
	"backend/internal/logger"
	"backend/internal/scheduler"
	"backend/internal/types"
)

// Monitor 面板监控器
type Monitor struct {
	sched    *scheduler.Scheduler
	eventBus *events.EventBus
	interval time.Duration
	subs     []events.Subscription
	stopChan chan struct{}
}

func NewMonitor(sched *scheduler.Scheduler, eventBus *events.EventBus, interval time.Duration) *Monitor {
	if interval == 0 {
		interval = 10 * time.Second
	}
	return &Monitor{
		sched:    sched,
		eventBus: eventBus,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start 订阅全部调度事件并启动周期打印
func (m *Monitor) Start() {
	if m.eventBus != nil {
		for t := range events.EventNames {
			m.subs = append(m.subs, m.eventBus.Subscribe(t, m.logEvent))
		}
	}
	go m.run()
	logger.Info("面板监控已启动, 间隔: %v", m.interval)
}

func (m *Monitor) Stop() {
	close(m.stopChan)
	if m.eventBus != nil {
		for _, sub := range m.subs {
			m.eventBus.Unsubscribe(sub)
		}
	}
	logger.Info("面板监控已停止")
}

func (m *Monitor) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.report()
		case <-m.stopChan:
			return
		}
	}
}

// report 打印系统概况、队列与开机房间的状态
func (m *Monitor) report() {
	statuses := m.sched.StatusAll()
	serving := m.sched.ServingSnapshot()
	waiting := m.sched.WaitingSnapshot()

	active := 0
	for _, st := range statuses {
		if st.State != types.StateOff {
			active++
		}
	}

	logger.Info("=== 系统状态 ===")
	logger.Info("房间总数: %d, 开机房间: %d, 服务队列: %d, 等待队列: %d",
		len(statuses), active, len(serving), len(waiting))

	if len(serving) > 0 {
		logger.Info("--- 服务队列 ---")
		for _, e := range serving {
			logger.Info("房间 %d: 风速=%s, 当前=%.2f°C, 目标=%.1f°C, 已服务=%ds",
				e.RoomID, e.FanSpeed, e.CurrentTemp, e.TargetTemp, e.Seconds)
		}
	}
	if len(waiting) > 0 {
		logger.Info("--- 等待队列 ---")
		for _, e := range waiting {
			logger.Info("房间 %d: 风速=%s, 当前=%.2f°C, 目标=%.1f°C, 已等待=%ds",
				e.RoomID, e.FanSpeed, e.CurrentTemp, e.TargetTemp, e.Seconds)
		}
	}
	for _, st := range statuses {
		if st.State == types.StateOff {
			continue
		}
		logger.Info("房间 %d: 状态=%s, 模式=%s, 当前=%.2f°C, 目标=%.1f°C, 累计费用=%.2f",
			st.RoomID, st.State, st.Mode, st.CurrentTemp, st.TargetTemp, st.AccumulatedFee)
	}
	logger.Info("================")
}

func (m *Monitor) logEvent(e events.Event) {
	logger.Debug("调度事件 %s - 房间 %d %s", events.EventNames[e.Type], e.RoomID, e.Detail)
}
