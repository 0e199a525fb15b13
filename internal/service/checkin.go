// internal/service/checkin.go

package service

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"backend/internal/config"
	"backend/internal/db"
	"backend/internal/engine"
	"backend/internal/logger"
)

// Invoice 退房发票：住宿费与空调费分列
type Invoice struct {
	RoomID           int     `json:"room_id"`
	GuestName        string  `json:"guest_name"`
	CheckinTime      string  `json:"checkin_time"`
	CheckoutTime     string  `json:"checkout_time"`
	Nights           int     `json:"nights"`
	DailyRate        float64 `json:"daily_rate"`
	AccommodationFee float64 `json:"accommodation_fee"`
	ACFee            float64 `json:"ac_fee"`
	TotalFee         float64 `json:"total_fee"`
}

// CheckinService 入住与退房登记。退房不强制关空调，空调有自己的生命周期。
type CheckinService struct {
	checkins *db.CheckinRepository
	details  *db.DetailRepository
	cfg      *config.Config
	clock    func() time.Time
}

func NewCheckinService(checkins *db.CheckinRepository, details *db.DetailRepository,
	cfg *config.Config) *CheckinService {
	return &CheckinService{checkins: checkins, details: details, cfg: cfg, clock: time.Now}
}

// SetClock 注入时钟，测试里用它固定入住与退房时间
func (s *CheckinService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// CheckIn 登记入住。checkinTime 为空时取当前时间，日价来自房间配置。
func (s *CheckinService) CheckIn(roomID int, guestName, checkinTime string) (*db.CheckinRecord, error) {
	if guestName == "" {
		return nil, fmt.Errorf("客人姓名不能为空")
	}
	if checkinTime == "" {
		checkinTime = s.clock().Format(db.TimeLayout)
	} else if _, err := time.ParseInLocation(db.TimeLayout, checkinTime, time.Local); err != nil {
		return nil, fmt.Errorf("非法的入住时间 %q", checkinTime)
	}
	rec := &db.CheckinRecord{
		RoomID:      roomID,
		GuestID:     uuid.NewString(),
		GuestName:   guestName,
		CheckinTime: checkinTime,
		DailyRate:   s.cfg.DailyRate(roomID),
	}
	if err := s.checkins.CheckIn(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// CheckOut 退房并开具发票：不足一天按一天计，住宿费加上房间的空调费合计
func (s *CheckinService) CheckOut(roomID int) (*Invoice, error) {
	checkoutTime := s.clock().Format(db.TimeLayout)
	rec, err := s.checkins.CheckOut(roomID, checkoutTime)
	if err != nil {
		return nil, err
	}

	nights := stayNights(rec.CheckinTime, checkoutTime)
	acFee, err := s.details.SumCostByRoom(roomID)
	if err != nil {
		return nil, err
	}
	accommodation := float64(nights) * rec.DailyRate
	invoice := &Invoice{
		RoomID:           roomID,
		GuestName:        rec.GuestName,
		CheckinTime:      rec.CheckinTime,
		CheckoutTime:     checkoutTime,
		Nights:           nights,
		DailyRate:        rec.DailyRate,
		AccommodationFee: engine.Round2(accommodation),
		ACFee:            engine.Round2(acFee),
		TotalFee:         engine.Round2(accommodation + acFee),
	}
	logger.Info("开具发票 - 房间ID: %d, 客人: %s, 住宿费: %.2f, 空调费: %.2f",
		roomID, rec.GuestName, invoice.AccommodationFee, invoice.ACFee)
	return invoice, nil
}

// ListAll 全部入住记录（管理视图）
func (s *CheckinService) ListAll() ([]db.CheckinRecord, error) {
	return s.checkins.ListAll()
}

// stayNights 在住天数：向上取整，至少一天。时间无法解析时按一天计。
func stayNights(checkin, checkout string) int {
	start, err1 := time.ParseInLocation(db.TimeLayout, checkin, time.Local)
	end, err2 := time.ParseInLocation(db.TimeLayout, checkout, time.Local)
	if err1 != nil || err2 != nil || !end.After(start) {
		return 1
	}
	nights := int(math.Ceil(end.Sub(start).Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	return nights
}
