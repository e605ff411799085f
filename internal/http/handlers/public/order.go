package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vietcart-next/internal/constants"
	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/repository"
	"github.com/vietcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutItemRequest 结算商品行
type CheckoutItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CheckoutRequest 结算下单请求。配送方式可省略，默认标准配送。
type CheckoutRequest struct {
	AddressID      uint                  `json:"address_id" binding:"required"`
	Items          []CheckoutItemRequest `json:"items" binding:"required"`
	PaymentMethod  string                `json:"payment_method" binding:"required"`
	ShippingMethod string                `json:"shipping_method"`
	Notes          string                `json:"notes"`
}

// CancelOrderRequest 用户取消订单请求
type CancelOrderRequest struct {
	Note string `json:"note"`
}

// Checkout 结算下单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	items := make([]service.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	shippingMethod := strings.TrimSpace(req.ShippingMethod)
	if shippingMethod == "" {
		shippingMethod = constants.ShippingMethodStandard
	}

	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:         uid,
		AddressID:      req.AddressID,
		Items:          items,
		PaymentMethod:  req.PaymentMethod,
		ShippingMethod: shippingMethod,
		Notes:          req.Notes,
		ClientIP:       c.ClientIP(),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.Success(c, order)
}

func respondCheckoutError(c *gin.Context, err error) {
	var stockErr *service.StockError
	if errors.As(err, &stockErr) {
		response.ErrorWithData(c, response.CodeBadRequest, "商品库存不足", gin.H{
			"product_id": stockErr.ProductID,
			"product":    stockErr.ProductName,
			"requested":  stockErr.Requested,
			"remaining":  stockErr.Remaining,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidOrderItem):
		respondError(c, response.CodeBadRequest, "订单商品无效", nil)
	case errors.Is(err, service.ErrInvalidPaymentMethod):
		respondError(c, response.CodeBadRequest, "支付方式不受支持", nil)
	case errors.Is(err, service.ErrInvalidShipping):
		respondError(c, response.CodeBadRequest, "配送方式不受支持", nil)
	case errors.Is(err, service.ErrPhoneRequired):
		respondError(c, response.CodeBadRequest, "请先补全联系电话", nil)
	case errors.Is(err, service.ErrAddressNotFound):
		respondError(c, response.CodeNotFound, "收货地址不存在", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "商品不存在", nil)
	case errors.Is(err, service.ErrProductUnavailable):
		respondError(c, response.CodeBadRequest, "商品已下架", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeUnauthorized, "用户不存在", nil)
	default:
		respondError(c, response.CodeInternal, "创建订单失败", err)
	}
}

// ListOrders 我的订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取订单列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, orders, pagination)
}

// GetOrderByOrderNo 按订单号获取订单详情
func (h *Handler) GetOrderByOrderNo(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "订单号无效", nil)
		return
	}

	order, err := h.OrderService.GetByOrderNoForUser(orderNo, uid)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "订单不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取订单详情失败", err)
		return
	}

	response.Success(c, order)
}

// CancelOrder 用户取消订单（仅处理中订单允许）
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "订单号无效", nil)
		return
	}

	var req CancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	order, err := h.OrderService.CancelByUser(orderNo, uid, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "订单不存在", nil)
		case errors.Is(err, service.ErrOrderCancelNotAllowed):
			respondError(c, response.CodeBadRequest, "当前状态不允许取消订单", nil)
		default:
			respondError(c, response.CodeInternal, "取消订单失败", err)
		}
		return
	}

	response.Success(c, order)
}
