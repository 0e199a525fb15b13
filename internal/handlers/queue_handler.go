// internal/handlers/queue_handler.go

package handlers

import (
	"github.com/gin-gonic/gin"

	"backend/internal/scheduler"
)

// QueueHandler 队列查看接口
type QueueHandler struct {
	scheduler *scheduler.Scheduler
}

func NewQueueHandler(sched *scheduler.Scheduler) *QueueHandler {
	return &QueueHandler{scheduler: sched}
}

// Serving GET /api/queues/serving 服务队列快照，按优先级有序
func (h *QueueHandler) Serving(c *gin.Context) {
	respondOK(c, h.scheduler.ServingSnapshot())
}

// Waiting GET /api/queues/waiting 等待队列快照，按优先级有序
func (h *QueueHandler) Waiting(c *gin.Context) {
	respondOK(c, h.scheduler.WaitingSnapshot())
}
