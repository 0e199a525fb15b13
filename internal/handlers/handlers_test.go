package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/api"
	"backend/internal/config"
	"backend/internal/db"
	"backend/internal/handlers"
	"backend/internal/room"
	"backend/internal/scheduler"
	"backend/internal/service"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
	Err  string          `json:"err"`
}

// newTestRouter 完整组装一套接口层：1 个服务位、2 个等待位、3 个房间
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	details := db.NewDetailRepository(gdb)
	checkins := db.NewCheckinRepository(gdb)

	cfg := config.Default()
	cfg.ServingCapacity = 1
	cfg.WaitingCapacity = 2
	store := room.NewStore([]*room.Room{
		room.NewRoom(1, 30.0),
		room.NewRoom(2, 28.0),
		room.NewRoom(3, 30.0),
	})
	sched := scheduler.New(cfg, store, details, nil)

	billing := service.NewBillingService(details, checkins, sched)
	checkin := service.NewCheckinService(checkins, details, cfg)
	statistics := service.NewStatisticsService(details, store)

	return api.SetupRouter(
		handlers.NewACHandler(store, sched),
		handlers.NewQueueHandler(sched),
		handlers.NewTimeHandler(sched),
		handlers.NewBillingHandler(store, billing),
		handlers.NewCheckinHandler(store, checkin),
		handlers.NewReportHandler(store, billing, statistics),
		handlers.NewAdminHandler(store, details, checkin, sched),
	)
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestPowerOnShapes(t *testing.T) {
	router := newTestRouter(t)

	// 服务位有空：完整的受理响应
	w, env := doRequest(t, router, http.MethodPost, "/api/rooms/1/power-on", `{"mode":"cooling"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var serving struct {
		RoomID     int     `json:"room_id"`
		State      string  `json:"state"`
		Mode       string  `json:"mode"`
		TargetTemp float64 `json:"target_temp"`
		CurrentFee float64 `json:"current_fee"`
		TotalFee   float64 `json:"total_fee"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &serving))
	assert.Equal(t, 1, serving.RoomID)
	assert.Equal(t, "serving", serving.State)
	assert.Equal(t, "cooling", serving.Mode)
	assert.Equal(t, 25.0, serving.TargetTemp)
	assert.Equal(t, 0.0, serving.CurrentFee)

	// 服务位占满：只报房号与等待状态
	w, env = doRequest(t, router, http.MethodPost, "/api/rooms/2/power-on", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	waiting := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(env.Data, &waiting))
	assert.Equal(t, "waiting", waiting["state"])
	assert.Len(t, waiting, 2)

	// 非法模式
	w, _ = doRequest(t, router, http.MethodPost, "/api/rooms/3/power-on", `{"mode":"auto"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFanSpeedAndTemperature(t *testing.T) {
	router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/api/rooms/1/power-on", `{}`)

	w, env := doRequest(t, router, http.MethodPost, "/api/rooms/1/fan-speed", `{"fan_speed":"high"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":"SOk"}`, string(env.Data))

	w, _ = doRequest(t, router, http.MethodPost, "/api/rooms/1/fan-speed", `{"fan_speed":"turbo"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 关机房间的调风不受理，返回现状
	w, env = doRequest(t, router, http.MethodPost, "/api/rooms/3/fan-speed", `{"fan_speed":"low"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"off"}`, string(env.Data))

	w, env = doRequest(t, router, http.MethodPost, "/api/rooms/1/temperature", `{"target_temp":22}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":"SOk"}`, string(env.Data))

	w, _ = doRequest(t, router, http.MethodPost, "/api/rooms/1/temperature", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStateAndQueues(t *testing.T) {
	router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/api/rooms/1/power-on", `{}`)
	doRequest(t, router, http.MethodPost, "/api/rooms/2/power-on", `{}`)

	_, env := doRequest(t, router, http.MethodGet, "/api/rooms/2/state", "")
	assert.JSONEq(t, `{"state":"wait","list_number":1}`, string(env.Data))

	_, env = doRequest(t, router, http.MethodGet, "/api/rooms/1/state", "")
	assert.JSONEq(t, `{"state":"serving"}`, string(env.Data))

	_, env = doRequest(t, router, http.MethodGet, "/api/queues/serving", "")
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, float64(1), entries[0]["room_id"])

	_, env = doRequest(t, router, http.MethodGet, "/api/queues/waiting", "")
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, float64(2), entries[0]["room_id"])
}

func TestStatusAndList(t *testing.T) {
	router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/api/rooms/1/power-on", `{}`)

	_, env := doRequest(t, router, http.MethodGet, "/api/rooms/1/status", "")
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "serving", status["state"])
	assert.Equal(t, 30.0, status["current_temp"])

	_, env = doRequest(t, router, http.MethodGet, "/api/rooms", "")
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 3)
}

func TestTickEndpoint(t *testing.T) {
	router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/api/rooms/1/power-on", `{}`)

	w, env := doRequest(t, router, http.MethodPost, "/api/time/tick", `{"seconds":60}`)
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &all))
	require.Len(t, all, 3)

	// 60 秒中风降温 0.5 度
	for _, st := range all {
		if st["room_id"] == float64(1) {
			assert.Equal(t, 29.5, st["current_temp"])
			assert.Equal(t, float64(60), st["service_seconds"])
		}
	}

	w, _ = doRequest(t, router, http.MethodPost, "/api/time/tick", `{"seconds":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = doRequest(t, router, http.MethodPost, "/api/time/tick", `{"seconds":-5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownRoom(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/api/rooms/99/status", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doRequest(t, router, http.MethodPost, "/api/rooms/99/power-on", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doRequest(t, router, http.MethodGet, "/api/rooms/abc/status", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInitialize(t *testing.T) {
	router := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/api/rooms/1/initialize", `{"current_temp":26.5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":"SOk"}`, string(env.Data))

	_, env = doRequest(t, router, http.MethodGet, "/api/rooms/1/status", "")
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, 26.5, status["current_temp"])

	// 开机后不允许校准
	doRequest(t, router, http.MethodPost, "/api/rooms/1/power-on", `{}`)
	w, _ = doRequest(t, router, http.MethodPost, "/api/rooms/1/initialize", `{"current_temp":20}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillingFlow(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, http.MethodPost, "/api/rooms/1/checkin", `{"guest_name":"张三"}`)
	doRequest(t, router, http.MethodPost, "/api/rooms/1/power-on", `{}`)
	doRequest(t, router, http.MethodPost, "/api/time/tick", `{"seconds":120}`)
	doRequest(t, router, http.MethodPost, "/api/rooms/1/power-off", "")

	_, env := doRequest(t, router, http.MethodGet, "/api/bills/1/detail", "")
	var details []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &details))
	require.NotEmpty(t, details)
	assert.Equal(t, "POWER_ON", details[0]["operation_type"])

	_, env = doRequest(t, router, http.MethodGet, "/api/bills/1/summary", "")
	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	// 两分钟中风降温 1 度，1 元
	assert.Equal(t, 1.0, summary["total_cost"])
	assert.Equal(t, float64(120), summary["service_duration"])
	assert.Equal(t, "张三", summary["guest_name"])

	w, env := doRequest(t, router, http.MethodPost, "/api/bills/1/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	var export map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &export))
	assert.Contains(t, export, "status")
	assert.Contains(t, export, "summary")
	assert.Contains(t, export, "details")

	// 退房发票包含住宿费与空调费
	_, env = doRequest(t, router, http.MethodPost, "/api/rooms/1/checkout", "")
	var invoice map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &invoice))
	assert.Equal(t, 1.0, invoice["ac_fee"])
	assert.Equal(t, float64(1), invoice["nights"])
}

func TestAdminFlow(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, http.MethodPost, "/api/rooms/1/power-on", `{}`)
	doRequest(t, router, http.MethodPost, "/api/time/tick", `{"seconds":60}`)

	_, env := doRequest(t, router, http.MethodGet, "/api/admin/details", "")
	var details []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &details))
	require.NotEmpty(t, details)

	// 清空详单后内存累计费用同步清零
	w, _ := doRequest(t, router, http.MethodDelete, "/api/admin/records", "")
	require.Equal(t, http.StatusOK, w.Code)

	_, env = doRequest(t, router, http.MethodGet, "/api/admin/details", "")
	require.NoError(t, json.Unmarshal(env.Data, &details))
	assert.Empty(t, details)

	_, env = doRequest(t, router, http.MethodGet, "/api/rooms/1/status", "")
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, 0.0, status["accumulated_fee"])
}

func TestReportEndpoints(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, http.MethodPost, "/api/rooms/1/power-on", `{}`)
	doRequest(t, router, http.MethodPost, "/api/time/tick", `{"seconds":60}`)

	w, env := doRequest(t, router, http.MethodGet, "/api/reports/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 0.5, summary["total_cost"])

	// 今天的日报里有这个房间的开机记录
	w, env = doRequest(t, router, http.MethodGet, "/api/reports/rooms/1/daily", "")
	require.Equal(t, http.StatusOK, w.Code)
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &record))
	assert.Equal(t, float64(1), record["switch_count"])

	w, _ = doRequest(t, router, http.MethodGet, "/api/reports/rooms/1/daily?date=03-01-2025", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
