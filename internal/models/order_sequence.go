package models

import "time"

// OrderSequence 订单号日序列表（每个日期键一行，序号单调递增）
type OrderSequence struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                 // 主键
	DateKey   string    `gorm:"type:varchar(8);uniqueIndex;not null" json:"date_key"` // 日期键（YYYYMMDD）
	Seq       int64     `gorm:"not null;default:0" json:"seq"`                        // 当日已分配序号
	UpdatedAt time.Time `json:"updated_at"`                                           // 更新时间
}

// TableName 指定表名
func (OrderSequence) TableName() string {
	return "order_sequences"
}
