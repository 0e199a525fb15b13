// internal/scheduler/strategy.go

package scheduler

import (
	"backend/internal/events"
	"backend/internal/room"
	"backend/internal/types"
)

// pickVictim 优先级抢占：在服务队列里选出风速严格低于请求风速的
// 牺牲房间。候选唯一时直接选中；多个候选取风速最低者，同风速取
// 服务最久者。同风速请求不抢占，只能走时间片轮转。
func (s *Scheduler) pickVictim(speed types.FanSpeed) (*room.Room, bool) {
	var victim *room.Room
	for _, id := range s.serving.Members() {
		r := s.rooms.Get(id)
		if r.FanSpeed >= speed {
			continue
		}
		if victim == nil {
			victim = r
			continue
		}
		if r.FanSpeed < victim.FanSpeed {
			victim = r
		} else if r.FanSpeed == victim.FanSpeed &&
			s.serviceTime.Get(r.ID) > s.serviceTime.Get(victim.ID) {
			victim = r
		}
	}
	return victim, victim != nil
}

// rotate 时间片轮转。服务队列满且等待队列非空时从高到低检查每档
// 在服的风速：同风速有等满一个时间片的房间，就让该风速里服务最久
// 的房间让位。先弹出补位者再挪让位者，保证让位者入队时一定有空位。
// 每个节拍至多轮转一次。
func (s *Scheduler) rotate() {
	if s.serving.HasSlot() || s.waiting.Len() == 0 {
		return
	}
	for _, speed := range []types.FanSpeed{types.SpeedHigh, types.SpeedMedium, types.SpeedLow} {
		victimID, ok := s.longestServingAt(speed)
		if !ok {
			continue
		}
		waiterID, ok := s.eligibleWaiterAt(speed)
		if !ok {
			continue
		}
		waiter := s.rooms.Get(waiterID)
		s.waiting.Pop(waiterID)
		s.waitTime.Remove(waiterID)
		s.demoteToWaiting(s.rooms.Get(victimID))
		s.admitToServing(waiter, types.OpServingResume)
		s.publish(events.EventRotated, waiterID, "")
		return
	}
}

// longestServingAt 该风速下服务时间最长的房间
func (s *Scheduler) longestServingAt(speed types.FanSpeed) (int, bool) {
	id, found := 0, false
	for _, member := range s.serving.Members() {
		if s.rooms.Get(member).FanSpeed != speed {
			continue
		}
		if !found || s.serviceTime.Get(member) > s.serviceTime.Get(id) {
			id, found = member, true
		}
	}
	return id, found
}

// eligibleWaiterAt 该风速下等满一个时间片的最高优先级房间
func (s *Scheduler) eligibleWaiterAt(speed types.FanSpeed) (int, bool) {
	for _, member := range s.waiting.Members() {
		if s.rooms.Get(member).FanSpeed != speed {
			continue
		}
		if s.waitTime.Get(member) >= s.timeSlice {
			return member, true
		}
	}
	return 0, false
}
