// internal/db/checkin_repository.go
package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"backend/internal/logger"
)

// CheckinRepository 入住记录仓储
type CheckinRepository struct {
	db *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{db: db}
}

// GetActive 返回房间当前的在住记录，无人入住时返回 nil
func (r *CheckinRepository) GetActive(roomID int) (*CheckinRecord, error) {
	var rec CheckinRecord
	err := r.db.Where("room_id = ? AND status = ?", roomID, StatusCheckedIn).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error("查询在住记录失败 - 房间ID: %d, 错误: %v", roomID, err)
		return nil, fmt.Errorf("查询在住记录失败: %v", err)
	}
	return &rec, nil
}

// CheckIn 登记入住，房间已有在住记录时报错
func (r *CheckinRepository) CheckIn(rec *CheckinRecord) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&CheckinRecord{}).
			Where("room_id = ? AND status = ?", rec.RoomID, StatusCheckedIn).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("房间 %d 已有客人入住", rec.RoomID)
		}
		rec.Status = StatusCheckedIn
		return tx.Create(rec).Error
	})
	if err != nil {
		logger.Error("登记入住失败 - 房间ID: %d, 客人: %s, 错误: %v", rec.RoomID, rec.GuestName, err)
		return err
	}
	logger.Info("登记入住成功 - 房间ID: %d, 客人: %s", rec.RoomID, rec.GuestName)
	return nil
}

// CheckOut 结束在住记录并写入退房时间，返回被关闭的记录
func (r *CheckinRepository) CheckOut(roomID int, checkoutTime string) (*CheckinRecord, error) {
	var rec CheckinRecord
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ? AND status = ?", roomID, StatusCheckedIn).
			First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("房间 %d 没有在住客人", roomID)
			}
			return err
		}
		return tx.Model(&CheckinRecord{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{
			"status":        StatusCheckedOut,
			"checkout_time": checkoutTime,
		}).Error
	})
	if err != nil {
		logger.Error("退房失败 - 房间ID: %d, 错误: %v", roomID, err)
		return nil, err
	}
	rec.Status = StatusCheckedOut
	rec.CheckoutTime = checkoutTime
	logger.Info("退房成功 - 房间ID: %d, 客人: %s", roomID, rec.GuestName)
	return &rec, nil
}

// ListAll 返回全部入住记录（管理视图）
func (r *CheckinRepository) ListAll() ([]CheckinRecord, error) {
	var records []CheckinRecord
	err := r.db.Order("id ASC").Find(&records).Error
	if err != nil {
		logger.Error("获取入住记录失败: %v", err)
		return nil, fmt.Errorf("获取入住记录失败: %v", err)
	}
	return records, nil
}
