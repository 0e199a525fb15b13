// internal/handlers/admin_handler.go

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend/internal/db"
	"backend/internal/room"
	"backend/internal/scheduler"
	"backend/internal/service"
)

// AdminHandler 管理视图：浏览与删除详单、入住记录
type AdminHandler struct {
	rooms     *room.Store
	details   *db.DetailRepository
	checkin   *service.CheckinService
	scheduler *scheduler.Scheduler
}

func NewAdminHandler(rooms *room.Store, details *db.DetailRepository,
	checkin *service.CheckinService, sched *scheduler.Scheduler) *AdminHandler {
	return &AdminHandler{rooms: rooms, details: details, checkin: checkin, scheduler: sched}
}

// ListDetails GET /api/admin/details 全部详单
func (h *AdminHandler) ListDetails(c *gin.Context) {
	records, err := h.details.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取详单失败")
		return
	}
	respondOK(c, records)
}

// DeleteDetail DELETE /api/admin/details/:recordId 删除单条详单
func (h *AdminHandler) DeleteDetail(c *gin.Context) {
	recordID, err := strconv.ParseUint(c.Param("recordId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "非法的记录号")
		return
	}
	if err := h.details.DeleteByID(uint(recordID)); err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: 400, Msg: "删除详单失败", Err: err.Error()})
		return
	}
	respondOK(c, gin.H{"deleted": recordID})
}

// ListCheckins GET /api/admin/checkins 全部入住记录
func (h *AdminHandler) ListCheckins(c *gin.Context) {
	records, err := h.checkin.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取入住记录失败")
		return
	}
	respondOK(c, records)
}

// ClearDetails DELETE /api/admin/records 清空全部详单并同步清零内存费用
func (h *AdminHandler) ClearDetails(c *gin.Context) {
	if err := h.details.ClearAll(); err != nil {
		respondError(c, http.StatusInternalServerError, "清空详单失败")
		return
	}
	h.scheduler.ResetAllBilling()
	respondOK(c, gin.H{"ok": "SOk"})
}

// ClearRoomDetails DELETE /api/rooms/:id/records 清空单个房间的详单
func (h *AdminHandler) ClearRoomDetails(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	if err := h.details.DeleteByRoom(id); err != nil {
		respondError(c, http.StatusInternalServerError, "清空房间详单失败")
		return
	}
	h.scheduler.ResetBilling(id)
	respondOK(c, gin.H{"ok": "SOk"})
}
