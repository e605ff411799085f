package models

import "time"

// AuditLog 订单审计日志表（异步落库）
type AuditLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`                       // 主键
	Action    string    `gorm:"type:varchar(64);index;not null" json:"action"` // 动作标识
	UserID    uint      `gorm:"index" json:"user_id"`                       // 触发用户ID
	AdminID   uint      `gorm:"index" json:"admin_id"`                      // 触发管理员ID
	OrderNo   string    `gorm:"index" json:"order_no"`                      // 关联订单号
	Detail    string    `gorm:"type:text" json:"detail"`                    // 明细（JSON 文本）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                    // 创建时间
}

// TableName 指定表名
func (AuditLog) TableName() string {
	return "audit_logs"
}
