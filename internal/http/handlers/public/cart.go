package public

import (
	"errors"
	"strconv"

	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "获取购物车失败", err)
		return
	}

	response.Success(c, gin.H{"items": items})
}

// UpsertCartItem 添加/更新购物车项（数量<=0 视为删除）
func (h *Handler) UpsertCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if req.Quantity <= 0 {
		if err := h.CartService.RemoveItem(uid, req.ProductID); err != nil {
			respondError(c, response.CodeInternal, "更新购物车失败", err)
			return
		}
		response.Success(c, gin.H{"updated": true})
		return
	}

	if err := h.CartService.UpsertItem(service.UpsertCartItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "商品不存在", nil)
		case errors.Is(err, service.ErrProductUnavailable):
			respondError(c, response.CodeBadRequest, "商品已下架", nil)
		case errors.Is(err, service.ErrInvalidOrderItem):
			respondError(c, response.CodeBadRequest, "购物车项参数无效", nil)
		default:
			respondError(c, response.CodeInternal, "更新购物车失败", err)
		}
		return
	}

	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品标识无效", nil)
		return
	}

	if err := h.CartService.RemoveItem(uid, uint(productID)); err != nil {
		respondError(c, response.CodeInternal, "删除购物车项失败", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.ClearByUser(uid); err != nil {
		respondError(c, response.CodeInternal, "清空购物车失败", err)
		return
	}

	response.Success(c, gin.H{"cleared": true})
}
