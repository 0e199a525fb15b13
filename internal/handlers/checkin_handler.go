// internal/handlers/checkin_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/room"
	"backend/internal/service"
)

// CheckinRequest 入住登记请求，入住时间缺省为当前时间
type CheckinRequest struct {
	GuestName   string `json:"guest_name" binding:"required"`
	CheckinTime string `json:"checkin_time,omitempty"`
}

// CheckinHandler 入住与退房接口
type CheckinHandler struct {
	rooms   *room.Store
	checkin *service.CheckinService
}

func NewCheckinHandler(rooms *room.Store, checkin *service.CheckinService) *CheckinHandler {
	return &CheckinHandler{rooms: rooms, checkin: checkin}
}

// CheckIn POST /api/rooms/:id/checkin
func (h *CheckinHandler) CheckIn(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	var req CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rec, err := h.checkin.CheckIn(id, req.GuestName, req.CheckinTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: 400, Msg: "入住登记失败", Err: err.Error()})
		return
	}
	respondOK(c, rec)
}

// CheckOut POST /api/rooms/:id/checkout 退房并返回发票
func (h *CheckinHandler) CheckOut(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	invoice, err := h.checkin.CheckOut(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: 400, Msg: "退房失败", Err: err.Error()})
		return
	}
	respondOK(c, invoice)
}
