package service

import (
	"errors"
	"fmt"
)

// 服务层哨兵错误，处理器通过 errors.Is 映射为响应码。
var (
	ErrNotFound           = errors.New("资源不存在")
	ErrInvalidInput       = errors.New("参数无效")
	ErrSlugExists         = errors.New("slug 已存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("密码错误")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrUserDisabled       = errors.New("账号已被禁用")

	ErrOrderNotFound        = errors.New("订单不存在")
	ErrOrderCreateFailed    = errors.New("订单创建失败")
	ErrOrderFetchFailed     = errors.New("订单查询失败")
	ErrOrderUpdateFailed    = errors.New("订单更新失败")
	ErrInvalidOrderItem     = errors.New("订单项参数无效")
	ErrInvalidPaymentMethod = errors.New("不支持的支付方式")
	ErrInvalidShipping      = errors.New("不支持的配送方式")

	ErrAddressNotFound    = errors.New("收货地址不存在")
	ErrPhoneRequired      = errors.New("下单前请先填写联系电话")
	ErrProductNotFound    = errors.New("商品不存在")
	ErrProductUnavailable = errors.New("商品已下架")
	ErrStockInsufficient  = errors.New("商品库存不足")

	ErrOrderStateInvalid     = errors.New("订单状态不允许此操作")
	ErrOrderCancelNotAllowed = errors.New("订单当前状态不可取消")
)

// StockError 库存不足错误，携带商品名与剩余库存，整单失败时回传给用户。
type StockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Remaining   int
}

// Error 实现 error 接口
func (e *StockError) Error() string {
	return fmt.Sprintf("商品 %s 库存不足：需要 %d，剩余 %d", e.ProductName, e.Requested, e.Remaining)
}

// Is 支持 errors.Is(err, ErrStockInsufficient)
func (e *StockError) Is(target error) bool {
	return target == ErrStockInsufficient
}

// StateError 状态流转错误，携带当前状态与目标状态。
type StateError struct {
	Current string
	Target  string
}

// Error 实现 error 接口
func (e *StateError) Error() string {
	return fmt.Sprintf("订单状态不允许从 %s 流转到 %s", e.Current, e.Target)
}

// Is 支持 errors.Is(err, ErrOrderStateInvalid)
func (e *StateError) Is(target error) bool {
	return target == ErrOrderStateInvalid
}
