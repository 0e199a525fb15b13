// internal/app/app.go

// Package app 是显式的组装根：配置、存储、核心调度与接口层都在这里
// 构建并相互连接，不存在包级单例。
package app

import (
	"context"
	"fmt"
	"time"

	"backend/api"
	"backend/internal/config"
	"backend/internal/db"
	"backend/internal/events"
	"backend/internal/handlers"
	"backend/internal/logger"
	"backend/internal/monitor"
	"backend/internal/room"
	"backend/internal/scheduler"
	"backend/internal/service"
	"backend/server"
)

// App 应用实例
type App struct {
	cfg *config.Config

	eventBus  *events.EventBus
	rooms     *room.Store
	scheduler *scheduler.Scheduler

	monitor *monitor.Monitor
	ticker  *service.Ticker
	server  *server.Server
}

func New(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// Initialize 按依赖顺序组装：存储 → 核心 → 服务 → 接口
func (a *App) Initialize() error {
	logger.SetLevel(logger.ParseLevel(a.cfg.LogLevel))

	gormDB, err := db.Open(a.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("初始化数据库失败: %v", err)
	}
	detailRepo := db.NewDetailRepository(gormDB)
	checkinRepo := db.NewCheckinRepository(gormDB)

	rooms := make([]*room.Room, 0, len(a.cfg.Rooms))
	for _, rc := range a.cfg.Rooms {
		rooms = append(rooms, room.NewRoom(rc.ID, rc.InitialTemp))
	}
	a.rooms = room.NewStore(rooms)

	a.eventBus = events.NewEventBus()
	a.scheduler = scheduler.New(a.cfg, a.rooms, detailRepo, a.eventBus)

	billingService := service.NewBillingService(detailRepo, checkinRepo, a.scheduler)
	checkinService := service.NewCheckinService(checkinRepo, detailRepo, a.cfg)
	statisticsService := service.NewStatisticsService(detailRepo, a.rooms)

	a.monitor = monitor.NewMonitor(a.scheduler, a.eventBus,
		time.Duration(a.cfg.MonitorIntervalSeconds)*time.Second)
	if a.cfg.Realtime {
		a.ticker = service.NewTicker(a.scheduler, a.cfg.TimeScale)
	}

	router := api.SetupRouter(
		handlers.NewACHandler(a.rooms, a.scheduler),
		handlers.NewQueueHandler(a.scheduler),
		handlers.NewTimeHandler(a.scheduler),
		handlers.NewBillingHandler(a.rooms, billingService),
		handlers.NewCheckinHandler(a.rooms, checkinService),
		handlers.NewReportHandler(a.rooms, billingService, statisticsService),
		handlers.NewAdminHandler(a.rooms, detailRepo, checkinService, a.scheduler),
	)
	a.server = server.NewServer(a.cfg.ListenAddr, router)

	logger.Info("初始化完成 - 房间: %d, 服务位: %d, 等待位: %d, 时间片: %ds",
		len(a.cfg.Rooms), a.cfg.ServingCapacity, a.cfg.WaitingCapacity, a.cfg.TimeSliceSeconds)
	return nil
}

// Start 启动监控、节拍与 HTTP 服务
func (a *App) Start() {
	a.monitor.Start()
	if a.ticker != nil {
		a.ticker.Start()
	}
	a.server.Start()
}

// Stop 逆序停止各组件
func (a *App) Stop(ctx context.Context) error {
	if a.ticker != nil {
		a.ticker.Stop()
	}
	a.monitor.Stop()
	if err := a.server.Stop(ctx); err != nil {
		return fmt.Errorf("关闭 HTTP 服务失败: %v", err)
	}
	logger.Info("应用已停止")
	return nil
}
