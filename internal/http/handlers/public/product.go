package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/repository"
	"github.com/vietcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品列表（仅上架商品）
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	search := strings.TrimSpace(c.Query("search"))
	onlyInStock := c.Query("in_stock") == "1"

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       search,
		OnlyActive:   true,
		OnlyInStock:  onlyInStock,
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetProductBySlug 商品详情（含累计销量）
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "商品标识无效", nil)
		return
	}

	product, err := h.ProductService.GetBySlug(slug, true)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取商品详情失败", err)
		return
	}
	if product == nil {
		respondError(c, response.CodeNotFound, "商品不存在", nil)
		return
	}

	response.Success(c, product)
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "获取分类列表失败", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}
