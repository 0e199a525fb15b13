// internal/handlers/report_handler.go

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/room"
	"backend/internal/service"
)

// dateLayout 报表查询参数里的日期格式
const dateLayout = "2006-01-02"

// ReportHandler 运行报表接口
type ReportHandler struct {
	rooms      *room.Store
	billing    *service.BillingService
	statistics *service.StatisticsService
}

func NewReportHandler(rooms *room.Store, billing *service.BillingService,
	statistics *service.StatisticsService) *ReportHandler {
	return &ReportHandler{rooms: rooms, billing: billing, statistics: statistics}
}

// Summary GET /api/reports/summary 全系统费用合计
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.billing.Summary(h.rooms.Len())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取汇总失败")
		return
	}
	respondOK(c, summary)
}

// SummaryRange GET /api/reports/summary-range?start=&end= 范围费用合计
func (h *ReportHandler) SummaryRange(c *gin.Context) {
	summary, err := h.billing.SummaryRange(c.Query("start"), c.Query("end"), h.rooms.Len())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取汇总失败")
		return
	}
	respondOK(c, summary)
}

// Daily GET /api/reports/rooms/:id/daily?date= 房间日报，日期缺省为今天
func (h *ReportHandler) Daily(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	date, ok := queryDate(c)
	if !ok {
		return
	}
	records, err := h.statistics.DailyReport(date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取日报失败")
		return
	}
	respondOK(c, pickRoom(records, id))
}

// Weekly GET /api/reports/rooms/:id/weekly?date= 房间周报，一周从周一起算
func (h *ReportHandler) Weekly(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	date, ok := queryDate(c)
	if !ok {
		return
	}
	records, err := h.statistics.WeeklyReport(date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取周报失败")
		return
	}
	respondOK(c, pickRoom(records, id))
}

// queryDate 解析 date 查询参数，缺省为今天
func queryDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	date, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		respondError(c, http.StatusBadRequest, "非法的日期格式，应为 YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

// pickRoom 从全量报表里取出指定房间，没有记录时返回零值报表
func pickRoom(records []service.StatisticRecord, roomID int) service.StatisticRecord {
	for _, rec := range records {
		if rec.RoomID == roomID {
			return rec
		}
	}
	return service.StatisticRecord{RoomID: roomID}
}
