package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址表
type Address struct {
	ID           uint           `gorm:"primarykey" json:"id"`                         // 主键
	UserID       uint           `gorm:"not null;index" json:"user_id"`                // 归属用户ID
	ReceiverName string         `gorm:"type:varchar(100);not null" json:"receiver_name"` // 收件人姓名
	Phone        string         `gorm:"type:varchar(20);not null" json:"phone"`       // 收件人电话
	Province     string         `gorm:"type:varchar(100);not null" json:"province"`   // 省/直辖市
	District     string         `gorm:"type:varchar(100);not null" json:"district"`   // 郡/县
	Ward         string         `gorm:"type:varchar(100)" json:"ward"`                // 坊/社
	Street       string         `gorm:"type:varchar(255);not null" json:"street"`     // 街道详细地址
	IsDefault    bool           `gorm:"not null;default:false;index" json:"is_default"` // 是否默认地址
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}

// FullText 拼接完整地址文本（用于订单快照）
func (a Address) FullText() string {
	text := a.Street
	if a.Ward != "" {
		text += ", " + a.Ward
	}
	text += ", " + a.District + ", " + a.Province
	return text
}
