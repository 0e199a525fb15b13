// internal/handlers/billing_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/room"
	"backend/internal/service"
)

// BillingHandler 账单查询接口
type BillingHandler struct {
	rooms   *room.Store
	billing *service.BillingService
}

func NewBillingHandler(rooms *room.Store, billing *service.BillingService) *BillingHandler {
	return &BillingHandler{rooms: rooms, billing: billing}
}

// Detail GET /api/bills/:id/detail 房间的全部详单
func (h *BillingHandler) Detail(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	details, err := h.billing.RoomDetail(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取详单失败")
		return
	}
	respondOK(c, details)
}

// Summary GET /api/bills/:id/summary 房间账单汇总
func (h *BillingHandler) Summary(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	summary, err := h.billing.RoomSummary(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取账单汇总失败")
		return
	}
	respondOK(c, summary)
}

// Export POST /api/bills/:id/export 导出账单包
func (h *BillingHandler) Export(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	export, err := h.billing.Export(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "导出账单失败")
		return
	}
	respondOK(c, export)
}
