package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
type OrderItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderID      uint           `gorm:"index;not null" json:"order_id"`                            // 订单ID
	ProductID    uint           `gorm:"index;not null" json:"product_id"`                          // 商品ID
	ProductName  string         `gorm:"type:varchar(255);not null" json:"product_name"`            // 商品名称快照
	ProductSKU   string         `gorm:"type:varchar(100)" json:"product_sku"`                      // 商品货号快照
	ProductImage string         `gorm:"type:varchar(500)" json:"product_image"`                    // 商品主图快照
	ListPrice    Money          `gorm:"type:decimal(20,0);not null;default:0" json:"list_price"`  // 下单时标价
	UnitPrice    Money          `gorm:"type:decimal(20,0);not null;default:0" json:"unit_price"`  // 下单时生效单价
	Quantity     int            `gorm:"not null" json:"quantity"`                                  // 数量
	TotalPrice   Money          `gorm:"type:decimal(20,0);not null;default:0" json:"total_price"` // 小计（生效单价×数量）
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
