package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // 主键
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`                           // 分类ID
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                            // 唯一标识
	SKU           string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`           // 商品货号
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`                      // 商品名称
	Description   string         `gorm:"type:text" json:"description"`                                // 商品描述
	Price         Money          `gorm:"type:decimal(20,0);not null;default:0" json:"price"`         // 标价（VND）
	SalePrice     *Money         `gorm:"type:decimal(20,0)" json:"sale_price,omitempty"`             // 促销价（为空表示未促销）
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`                    // 库存数量
	ImageURL      string         `gorm:"type:varchar(500)" json:"image_url"`                          // 商品主图
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                         // 是否上架
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                           // 排序权重
	SoldCount     int64          `gorm:"-" json:"sold_count,omitempty"`                               // 已售数量（仅结构，不写入数据库）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// EffectivePrice 返回生效单价：有促销价时取促销价，否则取标价
func (p Product) EffectivePrice() Money {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
