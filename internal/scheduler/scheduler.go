// internal/scheduler/scheduler.go

// Package scheduler 实现中央空调的两级队列调度。
//
// 服务队列容量有限，按风速高者优先、同风速服务久者优先排序；等待
// 队列按风速高者优先、同风速等待久者优先排序。高风速请求可以抢占
// 风速更低的服务位，同风速之间只通过时间片轮转换位。Tick 每秒推进
// 一个节拍：计时、温控模拟、分钟对齐、离队结算、补位与轮转。
// 全部入口由一把互斥锁串行化。
package scheduler

import (
	"sync"
	"time"

	"backend/internal/config"
	"backend/internal/engine"
	"backend/internal/events"
	"backend/internal/logger"
	"backend/internal/queue"
	"backend/internal/room"
	"backend/internal/timer"
	"backend/internal/types"
)

// Scheduler 调度器
type Scheduler struct {
	mu sync.Mutex

	rooms   *room.Store
	serving *queue.Queue
	waiting *queue.Queue

	serviceTime *timer.Timer
	waitTime    *timer.Timer

	engine  *engine.Engine
	journal Journal
	bus     *events.EventBus

	timeSlice    int
	defaultSpeed types.FanSpeed
	coolTarget   float64
	heatTarget   float64

	openRecord  map[int]uint    // 房间当前开着的详单记录号
	segBase     map[int]float64 // 本段详单打开时的累计费用
	segStart    map[int]int     // 本段详单打开时的服务秒数
	sessionBase map[int]float64 // 本次开机起点的累计费用
	minuteStart map[int]float64 // 分钟对齐的起点温度
	tickCount   int             // 节拍计数，满 60 归零

	clock func() time.Time
}

// New 创建调度器。journal 为空表示不落详单，bus 为空表示不发事件。
func New(cfg *config.Config, rooms *room.Store, journal Journal, bus *events.EventBus) *Scheduler {
	s := &Scheduler{
		rooms:        rooms,
		serving:      queue.New(cfg.ServingCapacity),
		waiting:      queue.New(cfg.WaitingCapacity),
		serviceTime:  timer.New(),
		waitTime:     timer.New(),
		engine:       engine.New(cfg.FeePerDegree),
		journal:      journal,
		bus:          bus,
		timeSlice:    cfg.TimeSliceSeconds,
		defaultSpeed: cfg.DefaultFanSpeed(),
		coolTarget:   cfg.DefaultCoolingTemp,
		heatTarget:   cfg.DefaultHeatingTemp,
		openRecord:   make(map[int]uint),
		segBase:      make(map[int]float64),
		segStart:     make(map[int]int),
		sessionBase:  make(map[int]float64),
		minuteStart:  make(map[int]float64),
		clock:        time.Now,
	}
	// 排序键从房间与计时器读取，入队和键变化时由队列重排
	s.serving.SetPriority(func(roomID int) queue.Key {
		return queue.Key{Speed: int(rooms.Get(roomID).FanSpeed), Seconds: s.serviceTime.Get(roomID)}
	})
	s.waiting.SetPriority(func(roomID int) queue.Key {
		return queue.Key{Speed: int(rooms.Get(roomID).FanSpeed), Seconds: s.waitTime.Get(roomID)}
	})
	return s
}

// SetClock 注入时钟，测试里用它固定详单时间戳
func (s *Scheduler) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// PowerOn 开机请求。服务队列有空位直接进入；否则尝试抢占风速更低
// 的服务房间；都不行则进入等待队列。已开机的房间原样返回现状。
func (s *Scheduler) PowerOn(roomID int, currentTemp float64, mode types.Mode) PowerOnResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rooms.Get(roomID)
	if r.State != types.StateOff {
		return PowerOnResult{
			RoomID:     roomID,
			State:      r.State,
			Mode:       r.Mode,
			TargetTemp: r.TargetTemp,
			CurrentFee: engine.Round2(r.Cost - s.sessionBase[roomID]),
			TotalFee:   engine.Round2(r.Cost),
		}
	}

	r.Mode = mode
	r.CurrentTemp = currentTemp
	r.TargetTemp = s.defaultTarget(mode)
	r.FanSpeed = s.defaultSpeed
	s.sessionBase[roomID] = r.Cost

	if s.serving.HasSlot() {
		s.admitToServing(r, types.OpPowerOn)
		return s.servingResult(r)
	}
	if victim, ok := s.pickVictim(r.FanSpeed); ok {
		s.demoteToWaiting(victim)
		s.admitToServing(r, types.OpPriorityReplace)
		return s.servingResult(r)
	}
	s.pushWaiting(r)
	return PowerOnResult{RoomID: roomID, State: r.State, Mode: r.Mode, TargetTemp: r.TargetTemp}
}

// ChangeSpeed 调风请求。服务中的房间换段计费并重排服务队列；等待
// 中的房间调高风速时重新排队计时并尝试抢占服务位；暂停中的房间只
// 记下新风速，恢复服务时生效。关机房间不受理。
func (s *Scheduler) ChangeSpeed(roomID int, speed types.FanSpeed) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rooms.Get(roomID)
	switch r.State {
	case types.StateServing:
		if speed == r.FanSpeed {
			return OpResult{Applied: true, State: r.State}
		}
		r.FanSpeed = speed
		s.serving.Resort()
		s.retagOrReopen(r)
		return OpResult{Applied: true, State: r.State}

	case types.StateWaiting:
		old := r.FanSpeed
		r.FanSpeed = speed
		if speed > old {
			s.waitTime.Reset(roomID)
			s.waiting.PromoteFront(roomID)
			if victim, ok := s.pickVictim(speed); ok {
				s.waiting.Pop(roomID)
				s.waitTime.Remove(roomID)
				s.demoteToWaiting(victim)
				s.admitToServing(r, types.OpSpeedAdjustPriority)
			}
		} else {
			s.waiting.Resort()
		}
		return OpResult{Applied: true, State: r.State}

	case types.StatePaused:
		r.FanSpeed = speed
		return OpResult{Applied: true, State: r.State}
	}
	return OpResult{Applied: false, State: r.State}
}

// ChangeTemperature 调温请求。开机状态下更新目标温度并追加一条生成
// 即闭合的详单，不打断当前计费段。关机房间不受理。
func (s *Scheduler) ChangeTemperature(roomID int, target float64) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rooms.Get(roomID)
	if r.State == types.StateOff {
		return OpResult{Applied: false, State: r.State}
	}
	r.TargetTemp = target
	s.recordTempChange(r)
	return OpResult{Applied: true, State: r.State}
}

// PowerOff 关机请求。从所在队列移除、闭合详单并清掉计时器，空出的
// 服务位立即由等待队列补上。CurrentFee 为本次开机期间的费用。
func (s *Scheduler) PowerOff(roomID int) PowerOffResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rooms.Get(roomID)
	if r.State == types.StateOff {
		return s.powerOffResult(r)
	}
	s.serving.Pop(roomID)
	s.waiting.Pop(roomID)
	s.closeJournal(r)
	s.serviceTime.Remove(roomID)
	s.waitTime.Remove(roomID)
	r.State = types.StateOff
	s.publish(events.EventPoweredOff, roomID, "")
	s.refill()
	return s.powerOffResult(r)
}

// InitializeRoom 重设关机房间的初始温度与当前温度
func (s *Scheduler) InitializeRoom(roomID int, temp float64) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rooms.Get(roomID)
	if r.State != types.StateOff {
		return OpResult{Applied: false, State: r.State}
	}
	r.InitialTemp = temp
	r.CurrentTemp = temp
	s.minuteStart[roomID] = temp
	return OpResult{Applied: true, State: r.State}
}

// ResetBilling 清零房间的累计费用，配合删除详单的管理操作使用
func (s *Scheduler) ResetBilling(roomID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetBilling(s.rooms.Get(roomID))
}

// ResetAllBilling 清零全部房间的累计费用
func (s *Scheduler) ResetAllBilling() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms.All() {
		s.resetBilling(r)
	}
}

func (s *Scheduler) resetBilling(r *room.Room) {
	r.Cost = 0
	s.sessionBase[r.ID] = 0
	delete(s.openRecord, r.ID)
	delete(s.segBase, r.ID)
	delete(s.segStart, r.ID)
}

// Status 单个房间的状态快照
func (s *Scheduler) Status(roomID int) RoomStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status(s.rooms.Get(roomID))
}

// StatusAll 全部房间的状态快照，按房号升序
func (s *Scheduler) StatusAll() []RoomStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.rooms.All()
	out := make([]RoomStatus, 0, len(all))
	for _, r := range all {
		out = append(out, s.status(r))
	}
	return out
}

// Position 排队位置查询，等待中的房间给出自 1 起的队列序号
func (s *Scheduler) Position(roomID int) PositionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rooms.Get(roomID)
	if r.State == types.StateWaiting {
		return PositionResult{State: r.State, ListNumber: s.waiting.PositionOf(roomID)}
	}
	return PositionResult{State: r.State}
}

// ServingSnapshot 服务队列快照，按优先级有序
func (s *Scheduler) ServingSnapshot() []QueueEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(s.serving, s.serviceTime)
}

// WaitingSnapshot 等待队列快照，按优先级有序
func (s *Scheduler) WaitingSnapshot() []QueueEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(s.waiting, s.waitTime)
}

func (s *Scheduler) snapshot(q *queue.Queue, t *timer.Timer) []QueueEntry {
	members := q.Members()
	out := make([]QueueEntry, 0, len(members))
	for _, id := range members {
		r := s.rooms.Get(id)
		out = append(out, QueueEntry{
			RoomID:      id,
			FanSpeed:    r.FanSpeed.Label(),
			CurrentTemp: engine.Round2(r.CurrentTemp),
			TargetTemp:  r.TargetTemp,
			Seconds:     t.Get(id),
		})
	}
	return out
}

func (s *Scheduler) status(r *room.Room) RoomStatus {
	return RoomStatus{
		RoomID:         r.ID,
		CurrentTemp:    engine.Round2(r.CurrentTemp),
		TargetTemp:     r.TargetTemp,
		Mode:           r.Mode,
		FanSpeed:       r.FanSpeed.Label(),
		State:          r.State,
		AccumulatedFee: engine.Round2(r.Cost),
		ServiceSeconds: s.serviceTime.Get(r.ID),
		WaitSeconds:    s.waitTime.Get(r.ID),
	}
}

func (s *Scheduler) servingResult(r *room.Room) PowerOnResult {
	return PowerOnResult{
		RoomID:     r.ID,
		State:      r.State,
		Mode:       r.Mode,
		TargetTemp: r.TargetTemp,
		CurrentFee: 0,
		TotalFee:   engine.Round2(r.Cost),
	}
}

func (s *Scheduler) powerOffResult(r *room.Room) PowerOffResult {
	return PowerOffResult{
		RoomID:     r.ID,
		State:      r.State,
		CurrentFee: engine.Round2(r.Cost - s.sessionBase[r.ID]),
		TotalFee:   engine.Round2(r.Cost),
	}
}

func (s *Scheduler) defaultTarget(mode types.Mode) float64 {
	if mode == types.ModeHeating {
		return s.heatTarget
	}
	return s.coolTarget
}

// 辅助方法：房间进入服务队列，复位服务计时、锚定分钟起点并打开详单
func (s *Scheduler) admitToServing(r *room.Room, op types.OperationType) {
	s.serving.Push(r.ID)
	r.State = types.StateServing
	s.serviceTime.Create(r.ID)
	s.minuteStart[r.ID] = r.CurrentTemp
	s.openJournal(r, op)
	s.publish(events.EventServiceStarted, r.ID, op.String())
}

// 辅助方法：房间进入等待队列并从零计时。队列已满时先让其中优先级
// 最低的成员转为暂停，保留它的服务请求。
func (s *Scheduler) pushWaiting(r *room.Room) {
	if !s.waiting.HasSlot() {
		if id, ok := s.waiting.Back(); ok {
			evicted := s.rooms.Get(id)
			s.waiting.Pop(id)
			s.waitTime.Remove(id)
			evicted.State = types.StatePaused
			s.publish(events.EventWaitEvicted, id, "")
		}
	}
	r.State = types.StateWaiting
	s.waitTime.Create(r.ID)
	s.waiting.Push(r.ID)
	s.publish(events.EventWaitQueued, r.ID, "")
}

// 辅助方法：服务中的房间让位，闭合详单后移入等待队列
func (s *Scheduler) demoteToWaiting(r *room.Room) {
	s.serving.Pop(r.ID)
	s.closeJournal(r)
	s.serviceTime.Remove(r.ID)
	s.pushWaiting(r)
}

// openJournal 打开新一段详单并记下费用与时长的基点
func (s *Scheduler) openJournal(r *room.Room, op types.OperationType) {
	if s.journal == nil {
		return
	}
	id, err := s.journal.Create(r.ID, s.now(), r.Mode, r.TargetTemp, r.FanSpeed,
		s.engine.FeeRate(r.FanSpeed), op)
	if err != nil {
		logger.Warn("详单写入失败 - 房间 %d: %v", r.ID, err)
		return
	}
	s.openRecord[r.ID] = id
	s.segBase[r.ID] = r.Cost
	s.segStart[r.ID] = s.serviceTime.Get(r.ID)
}

// closeJournal 闭合房间开着的详单段，写入本段费用、累计费用与服务时长
func (s *Scheduler) closeJournal(r *room.Room) {
	rec, ok := s.openRecord[r.ID]
	if !ok {
		return
	}
	duration := s.serviceTime.Get(r.ID) - s.segStart[r.ID]
	if err := s.journal.Close(rec, r.Cost-s.segBase[r.ID], r.Cost, s.now(), duration); err != nil {
		logger.Warn("详单写入失败 - 房间 %d: %v", r.ID, err)
	}
	delete(s.openRecord, r.ID)
	delete(s.segBase, r.ID)
	delete(s.segStart, r.ID)
}

// retagOrReopen 服务中调风的详单处理：本段还没有时长和费用时就地
// 更新风速与费率，否则闭合本段并按新风速开新的一段。
func (s *Scheduler) retagOrReopen(r *room.Room) {
	rec, ok := s.openRecord[r.ID]
	if ok && s.segStart[r.ID] == s.serviceTime.Get(r.ID) && r.Cost == s.segBase[r.ID] {
		if err := s.journal.UpdateFanSpeedAndRate(rec, r.FanSpeed, s.engine.FeeRate(r.FanSpeed)); err != nil {
			logger.Warn("详单写入失败 - 房间 %d: %v", r.ID, err)
		}
		return
	}
	s.closeJournal(r)
	s.openJournal(r, types.OpSpeedChange)
}

// recordTempChange 追加一条生成即闭合的调温详单
func (s *Scheduler) recordTempChange(r *room.Room) {
	if s.journal == nil {
		return
	}
	if _, err := s.journal.CreateClosed(r.ID, s.now(), r.Mode, r.TargetTemp, r.FanSpeed,
		s.engine.FeeRate(r.FanSpeed), types.OpTempChange); err != nil {
		logger.Warn("详单写入失败 - 房间 %d: %v", r.ID, err)
	}
}

// flushCosts 把所有开着的详单段的费用刷进存储
func (s *Scheduler) flushCosts() {
	for id, rec := range s.openRecord {
		r := s.rooms.Get(id)
		if err := s.journal.UpdateCost(rec, r.Cost-s.segBase[id], r.Cost); err != nil {
			logger.Warn("详单写入失败 - 房间 %d: %v", id, err)
		}
	}
}

func (s *Scheduler) publish(t events.EventType, roomID int, detail string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.Event{Type: t, RoomID: roomID, Timestamp: s.clock(), Detail: detail})
}

func (s *Scheduler) now() string {
	return s.clock().Format(timeLayout)
}
