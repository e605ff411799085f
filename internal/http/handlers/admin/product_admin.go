package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/repository"
	"github.com/vietcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	CategoryID    uint    `json:"category_id" binding:"required"`
	Slug          string  `json:"slug" binding:"required"`
	SKU           string  `json:"sku" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         int64   `json:"price" binding:"required"`
	SalePrice     *int64  `json:"sale_price"`
	StockQuantity int     `json:"stock_quantity"`
	ImageURL      string  `json:"image_url"`
	IsActive      *bool   `json:"is_active"`
	SortOrder     int     `json:"sort_order"`
}

func (req ProductRequest) toModel() *models.Product {
	product := &models.Product{
		CategoryID:    req.CategoryID,
		Slug:          strings.TrimSpace(req.Slug),
		SKU:           strings.TrimSpace(req.SKU),
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         models.NewMoneyFromInt(req.Price),
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		IsActive:      true,
		SortOrder:     req.SortOrder,
	}
	if req.SalePrice != nil {
		salePrice := models.NewMoneyFromInt(*req.SalePrice)
		product.SalePrice = &salePrice
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	return product
}

// ListAdminProducts 商品列表 (Admin，含下架商品)
func (h *Handler) ListAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetAdminProduct 商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品标识无效", nil)
		return
	}

	product, err := h.ProductService.GetByID(uint(productID))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取商品详情失败", err)
		return
	}

	response.Success(c, product)
}

// CreateAdminProduct 创建商品 (Admin)
func (h *Handler) CreateAdminProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	product := req.toModel()
	if err := h.ProductService.Create(product); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeBadRequest, "分类不存在", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeConflict, "slug 已存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "商品信息不完整", nil)
		default:
			respondError(c, response.CodeInternal, "创建商品失败", err)
		}
		return
	}

	response.Success(c, product)
}

// UpdateAdminProduct 更新商品 (Admin)
func (h *Handler) UpdateAdminProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品标识无效", nil)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	product := req.toModel()
	product.ID = uint(productID)
	if err := h.ProductService.Update(product); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "商品不存在", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeBadRequest, "分类不存在", nil)
		default:
			respondError(c, response.CodeInternal, "更新商品失败", err)
		}
		return
	}

	response.Success(c, product)
}

// DeleteAdminProduct 删除商品 (Admin)
func (h *Handler) DeleteAdminProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品标识无效", nil)
		return
	}

	if err := h.ProductService.Delete(uint(productID)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除商品失败", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
