// internal/service/statistics.go

package service

import (
	"time"

	"backend/internal/db"
	"backend/internal/engine"
	"backend/internal/logger"
	"backend/internal/room"
	"backend/internal/types"
)

// StatisticRecord 房间在统计窗口内的运行报表
type StatisticRecord struct {
	RoomID                 int     `json:"room_id"`
	SwitchCount            int     `json:"switch_count"`             // 开机次数
	DispatchCount          int     `json:"dispatch_count"`           // 调度次数（抢占、补位、轮转）
	DetailCount            int     `json:"detail_count"`             // 详单条数
	TemperatureChangeCount int     `json:"temperature_change_count"` // 调温次数
	FanSpeedChangeCount    int     `json:"fan_speed_change_count"`   // 调风次数
	ServiceDuration        int     `json:"service_duration"`         // 服务时长，秒
	TotalCost              float64 `json:"total_cost"`
}

// StatisticsService 基于详单操作标签的运行统计
type StatisticsService struct {
	details *db.DetailRepository
	rooms   *room.Store
}

func NewStatisticsService(details *db.DetailRepository, rooms *room.Store) *StatisticsService {
	return &StatisticsService{details: details, rooms: rooms}
}

// DailyReport 指定日期的日报
func (s *StatisticsService) DailyReport(date time.Time) ([]StatisticRecord, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24*time.Hour - time.Second)
	return s.RangeReport(start.Format(db.TimeLayout), end.Format(db.TimeLayout))
}

// WeeklyReport 指定日期所在周的周报，一周从周一开始
func (s *StatisticsService) WeeklyReport(date time.Time) ([]StatisticRecord, error) {
	offset := int(date.Weekday())
	if offset == 0 {
		offset = 7
	}
	monday := date.AddDate(0, 0, -offset+1)
	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(7*24*time.Hour - time.Second)
	return s.RangeReport(start.Format(db.TimeLayout), end.Format(db.TimeLayout))
}

// RangeReport 任意时间范围的报表，空串表示该侧不设界。
// 时间列是字典序可比的字符串，范围过滤直接落在 request_time 上。
func (s *StatisticsService) RangeReport(start, end string) ([]StatisticRecord, error) {
	out := make([]StatisticRecord, 0)
	for _, id := range s.rooms.IDs() {
		details, err := s.details.ListByRoomRange(id, start, end)
		if err != nil {
			logger.Error("获取房间 %d 详单失败: %v", id, err)
			continue
		}
		if len(details) == 0 {
			continue
		}
		out = append(out, tally(id, details))
	}
	return out, nil
}

// tally 按操作标签归类计数
func tally(roomID int, details []db.DetailRecord) StatisticRecord {
	rec := StatisticRecord{RoomID: roomID, DetailCount: len(details)}
	var cost float64
	for _, d := range details {
		cost += d.Cost
		rec.ServiceDuration += d.ServiceDuration

		switch types.OperationType(d.OperationType) {
		case types.OpPowerOn:
			rec.SwitchCount++
		case types.OpPriorityReplace, types.OpQueueFill, types.OpServingResume, types.OpSpeedAdjustPriority:
			rec.DispatchCount++
		case types.OpTempChange:
			rec.TemperatureChangeCount++
		case types.OpSpeedChange:
			rec.FanSpeedChangeCount++
		}
	}
	rec.TotalCost = engine.Round2(cost)
	return rec
}
