// internal/service/billing.go

// Package service 汇集账单、入住、报表与实时节拍等面向接口层的业务服务。
// 核心调度逻辑在 internal/scheduler，这里只做详单之上的读取与汇总。
package service

import (
	"backend/internal/db"
	"backend/internal/engine"
	"backend/internal/scheduler"
)

// BillSummary 房间账单汇总
type BillSummary struct {
	RoomID          int     `json:"room_id"`
	TotalCost       float64 `json:"total_cost"`
	ServiceDuration int     `json:"service_duration"` // 累计服务时长，秒
	GuestName       string  `json:"guest_name,omitempty"`
	CheckinTime     string  `json:"checkin_time,omitempty"`
}

// BillExport 账单导出包：当前状态、汇总与全部详单
type BillExport struct {
	Status  scheduler.RoomStatus `json:"status"`
	Summary BillSummary          `json:"summary"`
	Details []db.DetailRecord    `json:"details"`
}

// SystemSummary 全系统费用汇总
type SystemSummary struct {
	TotalCost float64 `json:"total_cost"`
	RoomCount int     `json:"room_count"`
}

// BillingService 账单查询服务，详单表是它的唯一数据来源
type BillingService struct {
	details   *db.DetailRepository
	checkins  *db.CheckinRepository
	scheduler *scheduler.Scheduler
}

func NewBillingService(details *db.DetailRepository, checkins *db.CheckinRepository,
	sched *scheduler.Scheduler) *BillingService {
	return &BillingService{details: details, checkins: checkins, scheduler: sched}
}

// RoomDetail 房间的全部详单，按记录号升序
func (s *BillingService) RoomDetail(roomID int) ([]db.DetailRecord, error) {
	return s.details.ListByRoom(roomID)
}

// RoomSummary 房间账单汇总，有客人在住时附带客人信息
func (s *BillingService) RoomSummary(roomID int) (*BillSummary, error) {
	total, err := s.details.SumCostByRoom(roomID)
	if err != nil {
		return nil, err
	}
	duration, err := s.details.SumDurationByRoom(roomID)
	if err != nil {
		return nil, err
	}
	summary := &BillSummary{
		RoomID:          roomID,
		TotalCost:       engine.Round2(total),
		ServiceDuration: duration,
	}
	active, err := s.checkins.GetActive(roomID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		summary.GuestName = active.GuestName
		summary.CheckinTime = active.CheckinTime
	}
	return summary, nil
}

// Export 导出房间账单包：当前状态 + 汇总 + 详单
func (s *BillingService) Export(roomID int) (*BillExport, error) {
	summary, err := s.RoomSummary(roomID)
	if err != nil {
		return nil, err
	}
	details, err := s.details.ListByRoom(roomID)
	if err != nil {
		return nil, err
	}
	return &BillExport{
		Status:  s.scheduler.Status(roomID),
		Summary: *summary,
		Details: details,
	}, nil
}

// Summary 全系统费用合计
func (s *BillingService) Summary(roomCount int) (*SystemSummary, error) {
	total, err := s.details.SumCost()
	if err != nil {
		return nil, err
	}
	return &SystemSummary{TotalCost: engine.Round2(total), RoomCount: roomCount}, nil
}

// SummaryRange 时间范围内的费用合计，空串表示该侧不设界
func (s *BillingService) SummaryRange(start, end string, roomCount int) (*SystemSummary, error) {
	total, err := s.details.SumCostRange(start, end)
	if err != nil {
		return nil, err
	}
	return &SystemSummary{TotalCost: engine.Round2(total), RoomCount: roomCount}, nil
}
