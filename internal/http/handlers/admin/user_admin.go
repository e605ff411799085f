package admin

import (
	"strconv"
	"strings"

	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAdminUsers 用户列表 (Admin)
func (h *Handler) ListAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取用户列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, users, pagination)
}

// GetAdminUser 用户详情 (Admin)
func (h *Handler) GetAdminUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		respondError(c, response.CodeBadRequest, "用户标识无效", nil)
		return
	}

	user, err := h.UserRepo.GetByID(uint(userID))
	if err != nil {
		respondError(c, response.CodeInternal, "获取用户详情失败", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "用户不存在", nil)
		return
	}

	response.Success(c, user)
}
