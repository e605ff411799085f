package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/repository"
	"github.com/vietcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 订单状态流转请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// ListAdminOrders 订单列表 (Admin)
func (h *Handler) ListAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)

	orders, total, err := h.OrderService.ListAdmin(repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		UserID:        uint(userID),
		Status:        strings.TrimSpace(c.Query("status")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
		PaymentMethod: strings.TrimSpace(c.Query("payment_method")),
		OrderNo:       strings.TrimSpace(c.Query("order_no")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取订单列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, orders, pagination)
}

// GetAdminOrder 订单详情 (Admin)
func (h *Handler) GetAdminOrder(c *gin.Context) {
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "订单号无效", nil)
		return
	}

	order, err := h.OrderService.GetByOrderNo(orderNo)
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

// UpdateOrderStatus 订单状态流转 (Admin)
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "订单号无效", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(orderNo, strings.TrimSpace(req.Status), req.Note, adminID)
	if err != nil {
		var stateErr *service.StateError
		switch {
		case errors.As(err, &stateErr):
			response.ErrorWithData(c, response.CodeBadRequest, "订单状态不允许该流转", gin.H{
				"current": stateErr.Current,
				"target":  stateErr.Target,
			})
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "订单不存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "订单状态无效", nil)
		default:
			respondError(c, response.CodeInternal, "更新订单状态失败", err)
		}
		return
	}

	response.Success(c, order)
}

// ConfirmOrderPayment 确认收款 (Admin，幂等)
func (h *Handler) ConfirmOrderPayment(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "订单号无效", nil)
		return
	}

	order, err := h.OrderService.ConfirmPayment(orderNo, adminID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "订单不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "确认收款失败", err)
		return
	}

	response.Success(c, order)
}
