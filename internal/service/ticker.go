// internal/service/ticker.go

package service

import (
	"sync"
	"time"

	"backend/internal/logger"
	"backend/internal/scheduler"
)

// Ticker 实时节拍驱动：每个墙钟间隔推进一秒模拟。
// 脚本化验收部署关掉它，改由接口层的 tick 端点驱动。
type Ticker struct {
	sched    *scheduler.Scheduler
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewTicker 创建节拍驱动，scale 为时间倍率（2.0 表示模拟时间以两倍速流逝）
func NewTicker(sched *scheduler.Scheduler, scale float64) *Ticker {
	if scale <= 0 {
		scale = 1.0
	}
	return &Ticker{
		sched:    sched,
		interval: time.Duration(float64(time.Second) / scale),
		stopChan: make(chan struct{}),
	}
}

func (t *Ticker) Start() {
	t.wg.Add(1)
	go t.run()
	logger.Info("实时节拍已启动, 间隔: %v", t.interval)
}

func (t *Ticker) Stop() {
	t.once.Do(func() {
		close(t.stopChan)
	})
	t.wg.Wait()
	logger.Info("实时节拍已停止")
}

func (t *Ticker) run() {
	defer t.wg.Done()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.sched.Tick(1)
		case <-t.stopChan:
			return
		}
	}
}
