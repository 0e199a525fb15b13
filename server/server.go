// server/server.go

package server

import (
	"context"
	"net/http"

	"backend/internal/logger"
)

// Server HTTP 服务的生命周期封装
type Server struct {
	srv *http.Server
}

func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
	}
}

// Start 在独立 goroutine 中监听，正常关闭不算错误
func (s *Server) Start() {
	go func() {
		logger.Info("HTTP 服务监听 %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP 服务异常退出: %v", err)
		}
	}()
}

// Stop 优雅关闭，等待在途请求完成或超时
func (s *Server) Stop(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
