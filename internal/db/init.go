package db

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TimeLayout 时间列的存储格式
const TimeLayout = "2006-01-02 15:04:05"

// Open 打开（必要时创建）sqlite 数据库并完成表迁移。
// 详单在进程重启后必须仍然可查，因此除测试外都落到文件。
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&DetailRecord{}, &CheckinRecord{}); err != nil {
		return nil, fmt.Errorf("迁移数据表失败: %v", err)
	}
	return db, nil
}
