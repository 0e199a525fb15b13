package events

import "time"

// EventType 调度生命周期事件类型
type EventType int

const (
	EventServiceStarted EventType = iota // 获得服务位
	EventServicePaused                   // 达到目标温度暂停送风
	EventWaitQueued                      // 进入等待队列
	EventWaitEvicted                     // 等待队列满被挤出为暂停
	EventRotated                         // 时间片轮转换入
	EventPoweredOff                      // 关机
)

// EventNames 事件类型的可读名称
var EventNames = map[EventType]string{
	EventServiceStarted: "ServiceStarted",
	EventServicePaused:  "ServicePaused",
	EventWaitQueued:     "WaitQueued",
	EventWaitEvicted:    "WaitEvicted",
	EventRotated:        "Rotated",
	EventPoweredOff:     "PoweredOff",
}

// Event 一次调度状态变化
type Event struct {
	Type      EventType `json:"type"`
	RoomID    int       `json:"room_id"`
	Timestamp time.Time `json:"timestamp"`
	Detail    string    `json:"detail"`
}

// Handler 事件处理函数
type Handler func(Event)

// Subscription 订阅凭据，退订时使用
type Subscription struct {
	EventType EventType
	id        int
}
