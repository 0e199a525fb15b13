// internal/scheduler/tick.go

package scheduler

import (
	"backend/internal/engine"
	"backend/internal/events"
	"backend/internal/types"
)

// Tick 推进模拟 delta 秒。调用是同步的，期间不与其他入口交错。
func (s *Scheduler) Tick(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < delta; i++ {
		s.step()
	}
}

// step 单秒节拍：计时、温控模拟、分钟对齐、离队结算、补位、轮转、落盘
func (s *Scheduler) step() {
	// 计时器先行，服务时长是服务队列排序键的一部分
	s.serviceTime.Tick(1)
	s.waitTime.Tick(1)
	s.serving.Resort()

	before := make(map[int]types.PowerState, s.rooms.Len())
	for _, r := range s.rooms.All() {
		before[r.ID] = r.State
	}

	// 引擎逐房间推进一秒，费用落在房间上
	var resumed []int
	for _, r := range s.rooms.All() {
		res := s.engine.Step(r)
		r.Cost += res.Cost
		if res.Transition == engine.TransResume {
			resumed = append(resumed, r.ID)
		}
	}

	// 每满 60 秒做一次分钟对齐，对齐后温度可能恰好落在目标上
	s.tickCount++
	if s.tickCount >= 60 {
		s.tickCount = 0
		for _, r := range s.rooms.All() {
			s.minuteStart[r.ID] = s.engine.AlignMinute(r, s.minuteStart[r.ID])
			s.engine.PauseIfReached(r)
		}
	}

	// 本秒离开服务状态的房间出队结算
	for _, r := range s.rooms.All() {
		if before[r.ID] == types.StateServing && r.State != types.StateServing {
			s.serving.Pop(r.ID)
			s.closeJournal(r)
			s.serviceTime.Remove(r.ID)
			s.publish(events.EventServicePaused, r.ID, "")
		}
	}
	// 暂停期间回温越限的房间重新排队
	for _, id := range resumed {
		s.pushWaiting(s.rooms.Get(id))
	}

	s.refill()
	s.rotate()
	s.flushCosts()
}

// refill 服务队列的空位依次由等待队列里优先级最高的房间补上
func (s *Scheduler) refill() {
	for s.serving.HasSlot() {
		id, ok := s.waiting.Front()
		if !ok {
			return
		}
		r := s.rooms.Get(id)
		s.waiting.Pop(id)
		s.waitTime.Remove(id)
		s.admitToServing(r, types.OpQueueFill)
	}
}
