package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                          // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                                 // 用户ID
	Status          string         `gorm:"index;not null" json:"status"`                                  // 订单状态
	PaymentStatus   string         `gorm:"index;not null" json:"payment_status"`                          // 支付状态
	PaymentMethod   string         `gorm:"type:varchar(32);not null" json:"payment_method"`               // 支付方式
	ShippingMethod  string         `gorm:"type:varchar(32);not null" json:"shipping_method"`              // 配送方式
	Currency        string         `gorm:"not null" json:"currency"`                                      // 币种
	Subtotal        Money          `gorm:"type:decimal(20,0);not null;default:0" json:"subtotal"`        // 商品小计
	DiscountAmount  Money          `gorm:"type:decimal(20,0);not null;default:0" json:"discount_amount"` // 促销优惠金额
	ShippingFee     Money          `gorm:"type:decimal(20,0);not null;default:0" json:"shipping_fee"`    // 运费
	TotalAmount     Money          `gorm:"type:decimal(20,0);not null;default:0" json:"total_amount"`    // 实付金额
	ReceiverName    string         `gorm:"type:varchar(100);not null" json:"receiver_name"`               // 收件人姓名快照
	ReceiverPhone   string         `gorm:"type:varchar(20);not null" json:"receiver_phone"`               // 收件人电话快照
	ShippingAddress string         `gorm:"type:varchar(500);not null" json:"shipping_address"`            // 收货地址快照
	Notes           string         `gorm:"type:varchar(500)" json:"notes"`                                // 订单备注
	ClientIP        string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                   // 下单客户端IP
	PaidAt          *time.Time     `gorm:"index" json:"paid_at"`                                          // 支付时间
	CanceledAt      *time.Time     `gorm:"index" json:"canceled_at"`                                      // 取消时间
	DeliveredAt     *time.Time     `gorm:"index" json:"delivered_at"`                                     // 送达时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	// 关联
	Items     []OrderItem          `gorm:"foreignKey:OrderID" json:"items,omitempty"`     // 订单项
	Histories []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"histories,omitempty"` // 状态流转记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
