// internal/handlers/time_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/scheduler"
)

// maxTickSeconds 单次请求允许推进的模拟秒数上限
const maxTickSeconds = 24 * 3600

// TickRequest 模拟时间推进请求
type TickRequest struct {
	Seconds int `json:"seconds" binding:"required"`
}

// TimeHandler 模拟时间接口，脚本化验收用它代替实时节拍
type TimeHandler struct {
	scheduler *scheduler.Scheduler
}

func NewTimeHandler(sched *scheduler.Scheduler) *TimeHandler {
	return &TimeHandler{scheduler: sched}
}

// Tick POST /api/time/tick 推进模拟若干秒并返回最新面板
func (h *TimeHandler) Tick(c *gin.Context) {
	var req TickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Seconds < 1 || req.Seconds > maxTickSeconds {
		respondError(c, http.StatusBadRequest, "非法的推进秒数")
		return
	}

	h.scheduler.Tick(req.Seconds)
	respondOK(c, h.scheduler.StatusAll())
}
