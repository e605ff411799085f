package public

import (
	"errors"
	"strconv"

	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 收货地址请求
type AddressRequest struct {
	ReceiverName string `json:"receiver_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Province     string `json:"province" binding:"required"`
	District     string `json:"district" binding:"required"`
	Ward         string `json:"ward"`
	Street       string `json:"street" binding:"required"`
	IsDefault    bool   `json:"is_default"`
}

// ListAddresses 地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addresses, err := h.AddressService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "获取地址列表失败", err)
		return
	}

	response.Success(c, gin.H{"addresses": addresses})
}

// CreateAddress 新增地址
func (h *Handler) CreateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	address, err := h.AddressService.Create(service.AddressInput{
		UserID:       uid,
		ReceiverName: req.ReceiverName,
		Phone:        req.Phone,
		Province:     req.Province,
		District:     req.District,
		Ward:         req.Ward,
		Street:       req.Street,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "地址信息不完整", nil)
			return
		}
		respondError(c, response.CodeInternal, "创建地址失败", err)
		return
	}

	response.Success(c, address)
}

// UpdateAddress 更新地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addressID, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "地址标识无效", nil)
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	address, err := h.AddressService.Update(service.AddressInput{
		UserID:       uid,
		AddressID:    uint(addressID),
		ReceiverName: req.ReceiverName,
		Phone:        req.Phone,
		Province:     req.Province,
		District:     req.District,
		Ward:         req.Ward,
		Street:       req.Street,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAddressNotFound):
			respondError(c, response.CodeNotFound, "地址不存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "地址信息不完整", nil)
		default:
			respondError(c, response.CodeInternal, "更新地址失败", err)
		}
		return
	}

	response.Success(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addressID, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "地址标识无效", nil)
		return
	}

	if err := h.AddressService.Delete(uint(addressID), uid); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondError(c, response.CodeNotFound, "地址不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除地址失败", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// SetDefaultAddress 设为默认地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addressID, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "地址标识无效", nil)
		return
	}

	if err := h.AddressService.SetDefault(uint(addressID), uid); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondError(c, response.CodeNotFound, "地址不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "设置默认地址失败", err)
		return
	}

	response.Success(c, gin.H{"updated": true})
}
