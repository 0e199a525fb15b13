package scheduler

import "backend/internal/types"

// timeLayout 详单时间戳格式，字符串可按字典序比较
const timeLayout = "2006-01-02 15:04:05"

// Journal 调度器落详单所需的最小接口，由 db.DetailRepository 实现。
// 写入失败只记日志不中断节拍，内存中的房间状态始终是权威。
type Journal interface {
	Create(roomID int, now string, mode types.Mode, targetTemp float64,
		speed types.FanSpeed, feeRate float64, op types.OperationType) (uint, error)
	CreateClosed(roomID int, now string, mode types.Mode, targetTemp float64,
		speed types.FanSpeed, feeRate float64, op types.OperationType) (uint, error)
	UpdateCost(recordID uint, cost, accumulated float64) error
	Close(recordID uint, cost, accumulated float64, endTime string, duration int) error
	UpdateFanSpeedAndRate(recordID uint, speed types.FanSpeed, feeRate float64) error
}

// PowerOnResult 开机请求的处理结果。进入服务队列时 CurrentFee 从零
// 起计，TotalFee 为房间的累计费用；进入等待队列时只有房号与状态有效。
type PowerOnResult struct {
	RoomID     int              `json:"room_id"`
	State      types.PowerState `json:"state"`
	Mode       types.Mode       `json:"mode"`
	TargetTemp float64          `json:"target_temp"`
	CurrentFee float64          `json:"current_fee"`
	TotalFee   float64          `json:"total_fee"`
}

// OpResult 调风、调温这类即时操作的结果，Applied 为假时 State 给出房间现状
type OpResult struct {
	Applied bool
	State   types.PowerState
}

// PowerOffResult 关机结果，CurrentFee 为本次开机期间产生的费用
type PowerOffResult struct {
	RoomID     int              `json:"room_id"`
	State      types.PowerState `json:"state"`
	CurrentFee float64          `json:"current_fee"`
	TotalFee   float64          `json:"total_fee"`
}

// PositionResult 排队位置查询结果，ListNumber 自 1 起且仅等待状态有效
type PositionResult struct {
	State      types.PowerState
	ListNumber int
}

// RoomStatus 房间状态快照，温度与费用按显示精度舍入
type RoomStatus struct {
	RoomID         int              `json:"room_id"`
	CurrentTemp    float64          `json:"current_temp"`
	TargetTemp     float64          `json:"target_temp"`
	Mode           types.Mode       `json:"mode"`
	FanSpeed       string           `json:"fan_speed"`
	State          types.PowerState `json:"state"`
	AccumulatedFee float64          `json:"accumulated_fee"`
	ServiceSeconds int              `json:"service_seconds"`
	WaitSeconds    int              `json:"wait_seconds"`
}

// QueueEntry 队列成员快照，Seconds 为已服务或已等待的秒数
type QueueEntry struct {
	RoomID      int     `json:"room_id"`
	FanSpeed    string  `json:"fan_speed"`
	CurrentTemp float64 `json:"current_temp"`
	TargetTemp  float64 `json:"target_temp"`
	Seconds     int     `json:"seconds"`
}
