// api/router.go

package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/handlers"
	"backend/internal/logger"
	"backend/middleware"
)

// SetupRouter 注册全部路由组
func SetupRouter(
	acHandler *handlers.ACHandler,
	queueHandler *handlers.QueueHandler,
	timeHandler *handlers.TimeHandler,
	billingHandler *handlers.BillingHandler,
	checkinHandler *handlers.CheckinHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Cors())
	router.Use(requestLog())

	api := router.Group("/api")

	// 房间空调面板
	rooms := api.Group("/rooms")
	{
		rooms.GET("", acHandler.List)
		rooms.POST("/:id/power-on", acHandler.PowerOn)
		rooms.POST("/:id/power-off", acHandler.PowerOff)
		rooms.POST("/:id/fan-speed", acHandler.ChangeSpeed)
		rooms.POST("/:id/temperature", acHandler.ChangeTemperature)
		rooms.POST("/:id/initialize", acHandler.Initialize)
		rooms.GET("/:id/state", acHandler.State)
		rooms.GET("/:id/status", acHandler.Status)

		// 前台入住与退房
		rooms.POST("/:id/checkin", checkinHandler.CheckIn)
		rooms.POST("/:id/checkout", checkinHandler.CheckOut)

		rooms.DELETE("/:id/records", adminHandler.ClearRoomDetails)
	}

	// 队列查看
	queues := api.Group("/queues")
	{
		queues.GET("/serving", queueHandler.Serving)
		queues.GET("/waiting", queueHandler.Waiting)
	}

	// 模拟时间推进，脚本化验收使用
	api.POST("/time/tick", timeHandler.Tick)

	// 账单
	bills := api.Group("/bills")
	{
		bills.GET("/:id/detail", billingHandler.Detail)
		bills.GET("/:id/summary", billingHandler.Summary)
		bills.POST("/:id/export", billingHandler.Export)
	}

	// 运行报表
	reports := api.Group("/reports")
	{
		reports.GET("/summary", reportHandler.Summary)
		reports.GET("/summary-range", reportHandler.SummaryRange)
		reports.GET("/rooms/:id/daily", reportHandler.Daily)
		reports.GET("/rooms/:id/weekly", reportHandler.Weekly)
	}

	// 管理视图
	admin := api.Group("/admin")
	{
		admin.GET("/details", adminHandler.ListDetails)
		admin.DELETE("/details/:recordId", adminHandler.DeleteDetail)
		admin.GET("/checkins", adminHandler.ListCheckins)
		admin.DELETE("/records", adminHandler.ClearDetails)
	}

	return router
}

// requestLog 请求时延日志中间件
func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		logger.Debug("[%s] %s %s %v", c.Request.Method, path, c.ClientIP(), latency)
	}
}
