package db

// 详单表，账单与报表视图的权威数据来源。
// 时间列使用 "2006-01-02 15:04:05" 格式的本地时间字符串，字典序即时间序。
type DetailRecord struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	RoomID          int     `gorm:"index" json:"room_id"`
	RequestTime     string  `gorm:"type:varchar(32)" json:"request_time"`
	StartTime       string  `gorm:"type:varchar(32)" json:"start_time"`
	EndTime         *string `gorm:"type:varchar(32)" json:"end_time"`
	Mode            string  `gorm:"type:varchar(20)" json:"mode"`
	TargetTemp      float64 `json:"target_temp"`
	FanSpeed        string  `gorm:"type:varchar(10)" json:"fan_speed"`
	FeeRate         float64 `json:"fee_rate"`         // 该风速下的每分钟费率
	ServiceDuration int     `json:"service_duration"` // 本段服务时长，秒
	Cost            float64 `json:"cost"`             // 本段费用
	AccumulatedCost float64 `json:"accumulated_cost"` // 截至本段的房间累计费用
	OperationType   string  `gorm:"type:varchar(32)" json:"operation_type"`
}

func (DetailRecord) TableName() string {
	return "detail_records"
}

// 入住记录状态
const (
	StatusCheckedIn  = "CHECKED_IN"
	StatusCheckedOut = "CHECKED_OUT"
)

// 入住记录表
type CheckinRecord struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	RoomID       int     `gorm:"index" json:"room_id"`
	GuestID      string  `gorm:"type:varchar(64)" json:"guest_id"`
	GuestName    string  `gorm:"type:varchar(255)" json:"guest_name"`
	CheckinTime  string  `gorm:"type:varchar(32)" json:"checkin_time"`
	CheckoutTime string  `gorm:"type:varchar(32)" json:"checkout_time"`
	Status       string  `gorm:"type:varchar(20)" json:"status"`
	DailyRate    float64 `json:"daily_rate"`
}

func (CheckinRecord) TableName() string {
	return "checkin_records"
}
