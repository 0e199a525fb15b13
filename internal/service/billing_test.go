package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/config"
	"backend/internal/db"
	"backend/internal/room"
	"backend/internal/scheduler"
	"backend/internal/types"
)

func newBillingService(t *testing.T) (*BillingService, *db.DetailRepository, *db.CheckinRepository) {
	t.Helper()
	gdb := openTestDB(t)
	details := db.NewDetailRepository(gdb)
	checkins := db.NewCheckinRepository(gdb)

	cfg := config.Default()
	store := room.NewStore([]*room.Room{room.NewRoom(1, 30.0), room.NewRoom(2, 28.0)})
	sched := scheduler.New(cfg, store, details, nil)
	return NewBillingService(details, checkins, sched), details, checkins
}

func TestRoomSummary(t *testing.T) {
	svc, details, checkins := newBillingService(t)

	id1, _ := details.Create(1, "2025-03-01 08:00:00", types.ModeCooling, 25.0, types.SpeedMedium, 0.5, types.OpPowerOn)
	id2, _ := details.Create(1, "2025-03-01 09:00:00", types.ModeCooling, 25.0, types.SpeedHigh, 1.0, types.OpSpeedChange)
	require.NoError(t, details.Close(id1, 1.234, 1.234, "2025-03-01 08:30:00", 1800))
	require.NoError(t, details.Close(id2, 2.345, 3.579, "2025-03-01 09:30:00", 1800))

	summary, err := svc.RoomSummary(1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RoomID)
	assert.InDelta(t, 3.58, summary.TotalCost, 1e-9, "汇总按两位小数舍入")
	assert.Equal(t, 3600, summary.ServiceDuration)
	assert.Empty(t, summary.GuestName)

	// 有客人在住时附带客人信息
	require.NoError(t, checkins.CheckIn(&db.CheckinRecord{
		RoomID: 1, GuestName: "张三", CheckinTime: "2025-03-01 07:00:00",
	}))
	summary, err = svc.RoomSummary(1)
	require.NoError(t, err)
	assert.Equal(t, "张三", summary.GuestName)
	assert.Equal(t, "2025-03-01 07:00:00", summary.CheckinTime)
}

func TestExportBundle(t *testing.T) {
	svc, details, _ := newBillingService(t)

	id, _ := details.Create(1, "2025-03-01 08:00:00", types.ModeCooling, 25.0, types.SpeedMedium, 0.5, types.OpPowerOn)
	require.NoError(t, details.Close(id, 1.5, 1.5, "2025-03-01 08:30:00", 1800))

	export, err := svc.Export(1)
	require.NoError(t, err)
	assert.Equal(t, 1, export.Status.RoomID)
	assert.Equal(t, types.StateOff, export.Status.State)
	assert.InDelta(t, 1.5, export.Summary.TotalCost, 1e-9)
	require.Len(t, export.Details, 1)
	assert.Equal(t, "POWER_ON", export.Details[0].OperationType)
}

func TestSystemSummary(t *testing.T) {
	svc, details, _ := newBillingService(t)

	id1, _ := details.Create(1, "2025-03-01 08:00:00", types.ModeCooling, 25.0, types.SpeedMedium, 0.5, types.OpPowerOn)
	id2, _ := details.Create(2, "2025-03-02 08:00:00", types.ModeCooling, 25.0, types.SpeedMedium, 0.5, types.OpPowerOn)
	require.NoError(t, details.Close(id1, 1.0, 1.0, "2025-03-01 09:00:00", 3600))
	require.NoError(t, details.Close(id2, 2.0, 2.0, "2025-03-02 09:00:00", 3600))

	summary, err := svc.Summary(2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, summary.TotalCost, 1e-9)
	assert.Equal(t, 2, summary.RoomCount)

	ranged, err := svc.SummaryRange("2025-03-02 00:00:00", "", 2)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, ranged.TotalCost, 1e-9)
}
