package admin

import (
	"errors"
	"time"

	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 管理员登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest 管理员改密请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "账号或密码错误", nil)
			return
		}
		respondError(c, response.CodeInternal, "登录失败", err)
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
	})
}

// GetCurrentAdmin 获取当前管理员信息
func (h *Handler) GetCurrentAdmin(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取管理员信息失败", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "管理员不存在", nil)
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取管理员角色失败", err)
		return
	}

	response.Success(c, gin.H{
		"id":            admin.ID,
		"username":      admin.Username,
		"is_super":      admin.IsSuper,
		"roles":         roles,
		"last_login_at": admin.LastLoginAt,
	})
}

// ChangeAdminPassword 修改管理员密码（改密后旧 Token 全部失效）
func (h *Handler) ChangeAdminPassword(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "原密码错误", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "管理员不存在", nil)
		default:
			respondError(c, response.CodeInternal, "修改密码失败", err)
		}
		return
	}

	response.Success(c, gin.H{"updated": true})
}
