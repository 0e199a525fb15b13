// internal/handlers/ac_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/room"
	"backend/internal/scheduler"
	"backend/internal/types"
)

// PowerOnRequest 开机请求。温度与模式可缺省：温度取房间当前温度，
// 模式沿用房间上一次的设置。
type PowerOnRequest struct {
	CurrentTemp *float64 `json:"current_temp,omitempty"`
	Mode        string   `json:"mode,omitempty"`
}

// ChangeSpeedRequest 调风请求
type ChangeSpeedRequest struct {
	FanSpeed string `json:"fan_speed" binding:"required"`
}

// ChangeTempRequest 调温请求
type ChangeTempRequest struct {
	TargetTemp *float64 `json:"target_temp" binding:"required"`
}

// InitializeRequest 前台校准关机房间温度的请求
type InitializeRequest struct {
	CurrentTemp *float64 `json:"current_temp" binding:"required"`
}

// ACHandler 房间空调面板接口
type ACHandler struct {
	rooms     *room.Store
	scheduler *scheduler.Scheduler
}

func NewACHandler(rooms *room.Store, sched *scheduler.Scheduler) *ACHandler {
	return &ACHandler{rooms: rooms, scheduler: sched}
}

// PowerOn POST /api/rooms/:id/power-on
func (h *ACHandler) PowerOn(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	var req PowerOnRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondBindError(c, err)
		return
	}

	r := h.rooms.Get(id)
	mode := r.Mode
	if req.Mode != "" {
		parsed, err := types.ParseMode(req.Mode)
		if err != nil {
			respondError(c, http.StatusBadRequest, "无效的工作模式，必须是 cooling 或 heating")
			return
		}
		mode = parsed
	}
	currentTemp := r.CurrentTemp
	if req.CurrentTemp != nil {
		currentTemp = *req.CurrentTemp
	}

	result := h.scheduler.PowerOn(id, currentTemp, mode)
	if result.State == types.StateWaiting {
		respondOK(c, gin.H{"room_id": result.RoomID, "state": result.State})
		return
	}
	respondOK(c, result)
}

// PowerOff POST /api/rooms/:id/power-off
func (h *ACHandler) PowerOff(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	respondOK(c, h.scheduler.PowerOff(id))
}

// ChangeSpeed POST /api/rooms/:id/fan-speed
func (h *ACHandler) ChangeSpeed(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	var req ChangeSpeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	speed, err := types.ParseFanSpeed(req.FanSpeed)
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的风速值，只能为 low、medium、high")
		return
	}

	result := h.scheduler.ChangeSpeed(id, speed)
	if !result.Applied {
		respondOK(c, gin.H{"state": result.State})
		return
	}
	respondOK(c, gin.H{"ok": "SOk"})
}

// ChangeTemperature POST /api/rooms/:id/temperature
func (h *ACHandler) ChangeTemperature(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	var req ChangeTempRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result := h.scheduler.ChangeTemperature(id, *req.TargetTemp)
	if !result.Applied {
		respondOK(c, gin.H{"state": result.State})
		return
	}
	respondOK(c, gin.H{"ok": "SOk"})
}

// State GET /api/rooms/:id/state 排队位置查询
func (h *ACHandler) State(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	pos := h.scheduler.Position(id)
	if pos.State == types.StateWaiting {
		respondOK(c, gin.H{"state": "wait", "list_number": pos.ListNumber})
		return
	}
	respondOK(c, gin.H{"state": pos.State})
}

// Status GET /api/rooms/:id/status
func (h *ACHandler) Status(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	respondOK(c, h.scheduler.Status(id))
}

// List GET /api/rooms 全部房间状态，按房号升序
func (h *ACHandler) List(c *gin.Context) {
	respondOK(c, h.scheduler.StatusAll())
}

// Initialize POST /api/rooms/:id/initialize 重设关机房间的温度
func (h *ACHandler) Initialize(c *gin.Context) {
	id, ok := roomIDParam(c, h.rooms)
	if !ok {
		return
	}
	var req InitializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result := h.scheduler.InitializeRoom(id, *req.CurrentTemp)
	if !result.Applied {
		respondError(c, http.StatusBadRequest, "房间未关机，无法重设温度")
		return
	}
	respondOK(c, gin.H{"ok": "SOk"})
}
