// internal/handlers/common.go

// Package handlers 实现 HTTP/JSON 接口层。请求体里的模式与风速字符串
// 在这里解析成带类型的枚举，核心层不接受裸字符串。
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend/internal/room"
)

// Response 统一响应信封
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
	Err  string      `json:"err,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 200, Msg: "success", Data: data})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Code: status, Msg: msg})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{Code: 400, Msg: "请求参数无效", Err: err.Error()})
}

// roomIDParam 解析并校验路径里的房间号，失败时已写好响应
func roomIDParam(c *gin.Context, rooms *room.Store) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "非法的房间号")
		return 0, false
	}
	if _, ok := rooms.Lookup(id); !ok {
		respondError(c, http.StatusNotFound, "房间不存在")
		return 0, false
	}
	return id, true
}
