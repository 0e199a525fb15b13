// internal/config/config.go

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"backend/internal/types"
)

// RoomConfig 单个房间的初始参数
type RoomConfig struct {
	ID          int     `yaml:"id"`
	InitialTemp float64 `yaml:"initial_temp"`
	DailyRate   float64 `yaml:"daily_rate"`
}

// Config 系统启动配置，缺省字段使用 Default 的取值
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`
	LogLevel   string `yaml:"log_level"`

	ServingCapacity  int `yaml:"serving_capacity"`
	WaitingCapacity  int `yaml:"waiting_capacity"` // 0 表示不设上限
	TimeSliceSeconds int `yaml:"time_slice_seconds"`

	DefaultSpeed       string  `yaml:"default_speed"`
	DefaultCoolingTemp float64 `yaml:"default_cooling_temp"`
	DefaultHeatingTemp float64 `yaml:"default_heating_temp"`
	FeePerDegree       float64 `yaml:"fee_per_degree"`

	Realtime               bool    `yaml:"realtime"`
	TimeScale              float64 `yaml:"time_scale"` // 1.0 表示每秒推进一秒
	MonitorIntervalSeconds int     `yaml:"monitor_interval_seconds"`

	Rooms []RoomConfig `yaml:"rooms"`
}

// Default 返回与参考部署一致的默认配置：5 个房间、3 服务位、2 等待位、30 秒时间片
func Default() *Config {
	return &Config{
		ListenAddr:         ":8080",
		DBPath:             "hotel_ac.db",
		LogLevel:           "info",
		ServingCapacity:    3,
		WaitingCapacity:    2,
		TimeSliceSeconds:   30,
		DefaultSpeed:       "medium",
		DefaultCoolingTemp: 25.0,
		DefaultHeatingTemp: 23.0,
		FeePerDegree:       1.0,
		Realtime:           false,
		TimeScale:          1.0,

		MonitorIntervalSeconds: 10,
		Rooms: []RoomConfig{
			{ID: 1, InitialTemp: 32.0, DailyRate: 100.0},
			{ID: 2, InitialTemp: 28.0, DailyRate: 125.0},
			{ID: 3, InitialTemp: 30.0, DailyRate: 150.0},
			{ID: 4, InitialTemp: 29.0, DailyRate: 200.0},
			{ID: 5, InitialTemp: 35.0, DailyRate: 100.0},
		},
	}
}

// Load 读取 YAML 配置文件并覆盖默认值，文件不存在时直接使用默认配置
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("读取配置文件失败: %v", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %v", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServingCapacity <= 0 {
		return fmt.Errorf("非法的服务对象上限: %d", c.ServingCapacity)
	}
	if c.WaitingCapacity < 0 {
		return fmt.Errorf("非法的等待队列上限: %d", c.WaitingCapacity)
	}
	if c.TimeSliceSeconds <= 0 {
		return fmt.Errorf("非法的时间片长度: %d", c.TimeSliceSeconds)
	}
	if c.TimeScale <= 0 {
		return fmt.Errorf("非法的时间倍率: %v", c.TimeScale)
	}
	if _, err := types.ParseFanSpeed(c.DefaultSpeed); err != nil {
		return fmt.Errorf("非法的默认风速 %q", c.DefaultSpeed)
	}
	if len(c.Rooms) == 0 {
		return fmt.Errorf("至少需要配置一个房间")
	}
	seen := make(map[int]bool, len(c.Rooms))
	for _, r := range c.Rooms {
		if r.ID <= 0 {
			return fmt.Errorf("非法的房间号: %d", r.ID)
		}
		if seen[r.ID] {
			return fmt.Errorf("房间号重复: %d", r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

// DefaultFanSpeed 返回解析后的默认风速
func (c *Config) DefaultFanSpeed() types.FanSpeed {
	s, err := types.ParseFanSpeed(c.DefaultSpeed)
	if err != nil {
		return types.SpeedMedium
	}
	return s
}

// DefaultTarget 返回指定模式下的默认目标温度
func (c *Config) DefaultTarget(mode types.Mode) float64 {
	if mode == types.ModeHeating {
		return c.DefaultHeatingTemp
	}
	return c.DefaultCoolingTemp
}

// DailyRate 返回房间的住宿日价，未配置时为 0
func (c *Config) DailyRate(roomID int) float64 {
	for _, r := range c.Rooms {
		if r.ID == roomID {
			return r.DailyRate
		}
	}
	return 0
}
