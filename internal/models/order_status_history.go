package models

import "time"

// OrderStatusHistory 订单状态流转记录表
type OrderStatusHistory struct {
	ID         uint      `gorm:"primarykey" json:"id"`                        // 主键
	OrderID    uint      `gorm:"index;not null" json:"order_id"`              // 订单ID
	FromStatus string    `gorm:"type:varchar(32)" json:"from_status"`         // 流转前状态（创建时为空）
	ToStatus   string    `gorm:"type:varchar(32);not null" json:"to_status"`  // 流转后状态
	Note       string    `gorm:"type:varchar(255)" json:"note"`               // 备注
	OperatorID uint      `gorm:"index" json:"operator_id,omitempty"`          // 操作管理员ID（用户操作为 0）
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                     // 创建时间
}

// TableName 指定表名
func (OrderStatusHistory) TableName() string {
	return "order_status_histories"
}
