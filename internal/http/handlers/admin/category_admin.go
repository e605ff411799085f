package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

// ListAdminCategories 分类列表 (Admin)
func (h *Handler) ListAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "获取分类列表失败", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// CreateAdminCategory 创建分类 (Admin)
func (h *Handler) CreateAdminCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	category := &models.Category{
		Slug:      strings.TrimSpace(req.Slug),
		Name:      strings.TrimSpace(req.Name),
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	}
	if err := h.CategoryService.Create(category); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "分类信息不完整", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeConflict, "slug 已存在", nil)
		default:
			respondError(c, response.CodeInternal, "创建分类失败", err)
		}
		return
	}

	response.Success(c, category)
}

// UpdateAdminCategory 更新分类 (Admin)
func (h *Handler) UpdateAdminCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "分类标识无效", nil)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	category := &models.Category{
		ID:        uint(categoryID),
		Slug:      strings.TrimSpace(req.Slug),
		Name:      strings.TrimSpace(req.Name),
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	}
	if err := h.CategoryService.Update(category); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "分类不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "更新分类失败", err)
		return
	}

	response.Success(c, category)
}

// DeleteAdminCategory 删除分类 (Admin)
func (h *Handler) DeleteAdminCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "分类标识无效", nil)
		return
	}

	if err := h.CategoryService.Delete(uint(categoryID)); err != nil {
		respondError(c, response.CodeInternal, "删除分类失败", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
