package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	OnlyActive   bool
	OnlyInStock  bool
	WithCategory bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	Status        string
	PaymentStatus string
	PaymentMethod string
	OrderNo       string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AuditLogListFilter 查询审计日志列表的过滤条件
type AuditLogListFilter struct {
	Page        int
	PageSize    int
	Action      string
	UserID      uint
	AdminID     uint
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
