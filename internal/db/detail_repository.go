// internal/db/detail_repository.go
package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"backend/internal/logger"
	"backend/internal/types"
)

// DetailRepository 详单仓储。写入方法实现调度器的 Journal 接口，
// 查询方法服务账单、报表与管理视图。
type DetailRepository struct {
	db *gorm.DB
}

func NewDetailRepository(db *gorm.DB) *DetailRepository {
	return &DetailRepository{db: db}
}

// Create 在房间进入服务时创建开着的详单记录，request_time 与 start_time 相同
func (r *DetailRepository) Create(roomID int, now string, mode types.Mode, targetTemp float64,
	speed types.FanSpeed, feeRate float64, op types.OperationType) (uint, error) {
	rec := &DetailRecord{
		RoomID:        roomID,
		RequestTime:   now,
		StartTime:     now,
		Mode:          mode.String(),
		TargetTemp:    targetTemp,
		FanSpeed:      speed.Label(),
		FeeRate:       feeRate,
		OperationType: op.String(),
	}
	if err := r.db.Create(rec).Error; err != nil {
		logger.Error("创建详单记录失败 - 房间ID: %d, 操作: %s, 错误: %v", roomID, op, err)
		return 0, fmt.Errorf("创建详单记录失败: %v", err)
	}
	logger.Debug("创建详单记录 - 房间ID: %d, 操作: %s, 记录ID: %d", roomID, op, rec.ID)
	return rec.ID, nil
}

// CreateClosed 创建一条生成即闭合的记录，用于调温这类即时操作
func (r *DetailRepository) CreateClosed(roomID int, now string, mode types.Mode, targetTemp float64,
	speed types.FanSpeed, feeRate float64, op types.OperationType) (uint, error) {
	end := now
	rec := &DetailRecord{
		RoomID:        roomID,
		RequestTime:   now,
		StartTime:     now,
		EndTime:       &end,
		Mode:          mode.String(),
		TargetTemp:    targetTemp,
		FanSpeed:      speed.Label(),
		FeeRate:       feeRate,
		OperationType: op.String(),
	}
	if err := r.db.Create(rec).Error; err != nil {
		logger.Error("创建详单记录失败 - 房间ID: %d, 操作: %s, 错误: %v", roomID, op, err)
		return 0, fmt.Errorf("创建详单记录失败: %v", err)
	}
	return rec.ID, nil
}

// UpdateCost 刷新开着的记录的本段费用与累计费用
func (r *DetailRepository) UpdateCost(recordID uint, cost, accumulated float64) error {
	err := r.db.Model(&DetailRecord{}).Where("id = ?", recordID).Updates(map[string]interface{}{
		"cost":             cost,
		"accumulated_cost": accumulated,
	}).Error
	if err != nil {
		logger.Error("更新详单费用失败 - 记录ID: %d, 错误: %v", recordID, err)
		return fmt.Errorf("更新详单费用失败: %v", err)
	}
	return nil
}

// Close 闭合记录并写入结束时间与服务时长
func (r *DetailRepository) Close(recordID uint, cost, accumulated float64, endTime string, duration int) error {
	err := r.db.Model(&DetailRecord{}).Where("id = ?", recordID).Updates(map[string]interface{}{
		"cost":             cost,
		"accumulated_cost": accumulated,
		"end_time":         endTime,
		"service_duration": duration,
	}).Error
	if err != nil {
		logger.Error("闭合详单记录失败 - 记录ID: %d, 错误: %v", recordID, err)
		return fmt.Errorf("闭合详单记录失败: %v", err)
	}
	return nil
}

// UpdateFanSpeedAndRate 更新记录的风速与费率
func (r *DetailRepository) UpdateFanSpeedAndRate(recordID uint, speed types.FanSpeed, feeRate float64) error {
	err := r.db.Model(&DetailRecord{}).Where("id = ?", recordID).Updates(map[string]interface{}{
		"fan_speed": speed.Label(),
		"fee_rate":  feeRate,
	}).Error
	if err != nil {
		logger.Error("更新详单风速失败 - 记录ID: %d, 错误: %v", recordID, err)
		return fmt.Errorf("更新详单风速失败: %v", err)
	}
	return nil
}

// GetByID 按记录号查询，记录不存在时返回 nil
func (r *DetailRepository) GetByID(recordID uint) (*DetailRecord, error) {
	var rec DetailRecord
	err := r.db.Where("id = ?", recordID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error("查询详单记录失败 - 记录ID: %d, 错误: %v", recordID, err)
		return nil, fmt.Errorf("查询详单记录失败: %v", err)
	}
	return &rec, nil
}

// ListByRoom 按记录号升序返回房间的全部详单
func (r *DetailRepository) ListByRoom(roomID int) ([]DetailRecord, error) {
	var records []DetailRecord
	err := r.db.Where("room_id = ?", roomID).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		logger.Error("获取房间详单失败 - 房间ID: %d, 错误: %v", roomID, err)
		return nil, fmt.Errorf("获取房间详单失败: %v", err)
	}
	return records, nil
}

// ListByRoomRange 返回房间在时间范围内的详单，空串表示该侧不设界
func (r *DetailRepository) ListByRoomRange(roomID int, start, end string) ([]DetailRecord, error) {
	query := r.db.Where("room_id = ?", roomID)
	if start != "" {
		query = query.Where("request_time >= ?", start)
	}
	if end != "" {
		query = query.Where("request_time <= ?", end)
	}
	var records []DetailRecord
	err := query.Order("id ASC").Find(&records).Error
	if err != nil {
		logger.Error("按时间范围获取详单失败 - 房间ID: %d, 错误: %v", roomID, err)
		return nil, fmt.Errorf("按时间范围获取详单失败: %v", err)
	}
	return records, nil
}

// ListAll 返回全部详单（管理视图）
func (r *DetailRepository) ListAll() ([]DetailRecord, error) {
	var records []DetailRecord
	err := r.db.Order("id ASC").Find(&records).Error
	if err != nil {
		logger.Error("获取全部详单失败: %v", err)
		return nil, fmt.Errorf("获取全部详单失败: %v", err)
	}
	return records, nil
}

// SumCostByRoom 房间的详单费用合计
func (r *DetailRepository) SumCostByRoom(roomID int) (float64, error) {
	var total float64
	err := r.db.Model(&DetailRecord{}).
		Where("room_id = ?", roomID).
		Select("COALESCE(SUM(cost), 0)").
		Scan(&total).Error
	if err != nil {
		logger.Error("计算房间总费用失败 - 房间ID: %d, 错误: %v", roomID, err)
		return 0, fmt.Errorf("计算房间总费用失败: %v", err)
	}
	return total, nil
}

// SumDurationByRoom 房间的服务时长合计，秒
func (r *DetailRepository) SumDurationByRoom(roomID int) (int, error) {
	var total int
	err := r.db.Model(&DetailRecord{}).
		Where("room_id = ?", roomID).
		Select("COALESCE(SUM(service_duration), 0)").
		Scan(&total).Error
	if err != nil {
		logger.Error("计算房间服务时长失败 - 房间ID: %d, 错误: %v", roomID, err)
		return 0, fmt.Errorf("计算房间服务时长失败: %v", err)
	}
	return total, nil
}

// SumCost 全部房间的费用合计
func (r *DetailRepository) SumCost() (float64, error) {
	var total float64
	err := r.db.Model(&DetailRecord{}).
		Select("COALESCE(SUM(cost), 0)").
		Scan(&total).Error
	if err != nil {
		logger.Error("计算总费用失败: %v", err)
		return 0, fmt.Errorf("计算总费用失败: %v", err)
	}
	return total, nil
}

// SumCostRange 时间范围内全部房间的费用合计，空串表示该侧不设界
func (r *DetailRepository) SumCostRange(start, end string) (float64, error) {
	query := r.db.Model(&DetailRecord{})
	if start != "" {
		query = query.Where("request_time >= ?", start)
	}
	if end != "" {
		query = query.Where("request_time <= ?", end)
	}
	var total float64
	err := query.Select("COALESCE(SUM(cost), 0)").Scan(&total).Error
	if err != nil {
		logger.Error("按时间范围计算总费用失败: %v", err)
		return 0, fmt.Errorf("按时间范围计算总费用失败: %v", err)
	}
	return total, nil
}

// DeleteByID 删除单条详单（管理视图）
func (r *DetailRepository) DeleteByID(recordID uint) error {
	result := r.db.Where("id = ?", recordID).Delete(&DetailRecord{})
	if result.Error != nil {
		logger.Error("删除详单记录失败 - 记录ID: %d, 错误: %v", recordID, result.Error)
		return fmt.Errorf("删除详单记录失败: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("详单记录不存在")
	}
	return nil
}

// DeleteByRoom 清空指定房间的详单
func (r *DetailRepository) DeleteByRoom(roomID int) error {
	result := r.db.Where("room_id = ?", roomID).Delete(&DetailRecord{})
	if result.Error != nil {
		logger.Error("删除房间详单失败 - 房间ID: %d, 错误: %v", roomID, result.Error)
		return fmt.Errorf("删除房间详单失败: %v", result.Error)
	}
	logger.Info("已清空房间详单 - 房间ID: %d, 删除记录数: %d", roomID, result.RowsAffected)
	return nil
}

// ClearAll 清空全部详单
func (r *DetailRepository) ClearAll() error {
	result := r.db.Where("1 = 1").Delete(&DetailRecord{})
	if result.Error != nil {
		logger.Error("清空详单失败: %v", result.Error)
		return fmt.Errorf("清空详单失败: %v", result.Error)
	}
	logger.Info("已清空全部详单, 删除记录数: %d", result.RowsAffected)
	return nil
}
