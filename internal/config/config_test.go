package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 3, cfg.ServingCapacity)
	assert.Equal(t, 2, cfg.WaitingCapacity)
	assert.Equal(t, 30, cfg.TimeSliceSeconds)
	assert.Equal(t, types.SpeedMedium, cfg.DefaultFanSpeed())
	assert.Equal(t, 25.0, cfg.DefaultTarget(types.ModeCooling))
	assert.Equal(t, 23.0, cfg.DefaultTarget(types.ModeHeating))
	assert.Len(t, cfg.Rooms, 5)
	assert.NoError(t, cfg.validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
serving_capacity: 1
waiting_capacity: 0
time_slice_seconds: 120
default_speed: high
rooms:
  - { id: 7, initial_temp: 31.5, daily_rate: 99.0 }
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.ServingCapacity)
	assert.Equal(t, 0, cfg.WaitingCapacity, "0 表示等待队列不设上限")
	assert.Equal(t, 120, cfg.TimeSliceSeconds)
	assert.Equal(t, types.SpeedHigh, cfg.DefaultFanSpeed())
	require.Len(t, cfg.Rooms, 1)
	assert.Equal(t, 31.5, cfg.Rooms[0].InitialTemp)
	assert.Equal(t, 99.0, cfg.DailyRate(7))
	assert.Equal(t, 0.0, cfg.DailyRate(1), "未配置的房间没有日价")

	// 没被覆盖的字段保留默认值
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 25.0, cfg.DefaultCoolingTemp)
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "serving_capacity: [not a number")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("Bad Serving Capacity", func(t *testing.T) {
		_, err := Load(writeConfig(t, "serving_capacity: 0"))
		assert.Error(t, err)
	})

	t.Run("Bad Default Speed", func(t *testing.T) {
		_, err := Load(writeConfig(t, "default_speed: turbo"))
		assert.Error(t, err)
	})

	t.Run("Duplicate Room ID", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
rooms:
  - { id: 1, initial_temp: 30 }
  - { id: 1, initial_temp: 28 }
`))
		assert.Error(t, err)
	})

	t.Run("No Rooms", func(t *testing.T) {
		_, err := Load(writeConfig(t, "rooms: []"))
		assert.Error(t, err)
	})
}
