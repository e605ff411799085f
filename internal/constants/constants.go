package constants

// 订单状态常量
const (
	OrderStatusProcessing = "processing"
	OrderStatusShipping   = "shipping"
	OrderStatusDelivered  = "delivered"
	OrderStatusReturned   = "returned"
	OrderStatusCanceled   = "canceled"
)

// 支付状态常量
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// 支付方式常量
const (
	PaymentMethodCOD          = "cod"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodMomo         = "momo"
	PaymentMethodVNPay        = "vnpay"
)

// 配送方式常量
const (
	ShippingMethodStandard = "standard"
	ShippingMethodFast     = "fast"
)

// 订单号常量
const (
	OrderNoPrefix     = "ORD"
	OrderNoDateLayout = "20060102"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 审计动作常量
const (
	AuditActionOrderCreated     = "order_created"
	AuditActionOrderCanceled    = "order_canceled"
	AuditActionOrderStatus      = "order_status_changed"
	AuditActionPaymentConfirmed = "payment_confirmed"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskAuditLogRecord   = "audit:record"
	TaskOrderStatusAlert = "order:status_alert"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "vc"
)

// 币种常量
const (
	SiteCurrencyDefault = "VND"
)
