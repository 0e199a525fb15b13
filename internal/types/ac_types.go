// internal/types/ac_types.go

package types

import "fmt"

// Mode 空调工作模式
type Mode string

const (
	ModeCooling Mode = "cooling"
	ModeHeating Mode = "heating"
)

// ParseMode 解析边界输入的模式字符串，核心层不接受裸字符串
func ParseMode(s string) (Mode, error) {
	switch s {
	case "cooling", "cool", "制冷":
		return ModeCooling, nil
	case "heating", "heat", "制热":
		return ModeHeating, nil
	}
	return "", fmt.Errorf("未知的工作模式: %q", s)
}

func (m Mode) String() string { return string(m) }

// FanSpeed 风速，同时充当调度优先级（低=1 中=2 高=3）
type FanSpeed int

const (
	SpeedLow    FanSpeed = 1
	SpeedMedium FanSpeed = 2
	SpeedHigh   FanSpeed = 3
)

var speedLabels = map[FanSpeed]string{
	SpeedLow:    "low",
	SpeedMedium: "medium",
	SpeedHigh:   "high",
}

// ParseFanSpeed 解析边界输入的风速字符串，兼容中文面板取值
func ParseFanSpeed(s string) (FanSpeed, error) {
	switch s {
	case "low", "低", "低风":
		return SpeedLow, nil
	case "medium", "中", "中风":
		return SpeedMedium, nil
	case "high", "高", "高风":
		return SpeedHigh, nil
	}
	return 0, fmt.Errorf("未知的风速: %q", s)
}

// Label 返回存储与接口使用的英文标签
func (s FanSpeed) Label() string {
	if l, ok := speedLabels[s]; ok {
		return l
	}
	return "unknown"
}

// Valid 报告风速是否为三档之一
func (s FanSpeed) Valid() bool {
	_, ok := speedLabels[s]
	return ok
}

// PowerState 房间空调的电源状态
type PowerState string

const (
	StateOff     PowerState = "off"
	StateWaiting PowerState = "waiting"
	StateServing PowerState = "serving"
	StatePaused  PowerState = "paused"
)

func (p PowerState) String() string { return string(p) }

// OperationType 详单记录的操作标签
type OperationType string

const (
	OpPowerOn             OperationType = "POWER_ON"              // 开机直接获得服务
	OpSpeedChange         OperationType = "SPEED_CHANGE"          // 服务中调整风速
	OpTempChange          OperationType = "TEMP_CHANGE"           // 调整目标温度
	OpPriorityReplace     OperationType = "PRIORITY_REPLACE"      // 高风速抢占入场
	OpQueueFill           OperationType = "QUEUE_FILL"            // 服务位空出后递补
	OpSpeedAdjustPriority OperationType = "SPEED_ADJUST_PRIORITY" // 等待中调高风速触发的抢占入场
	OpServingResume       OperationType = "SERVING_RESUME"        // 时间片轮转入场
)

func (o OperationType) String() string { return string(o) }
