package public

import (
	"errors"

	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 用户注册请求
type UserRegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

// UserLoginRequest 用户登录请求
type UserLoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// UpdateProfileRequest 用户资料更新请求
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

// UserRegister 用户注册（成功即自动登录）
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(req.Email, req.Password, req.DisplayName, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "邮箱已被注册", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "邮箱或密码格式无效", nil)
		default:
			respondError(c, response.CodeInternal, "注册失败", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user":       userProfileView(user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "邮箱或密码错误", nil)
		case errors.Is(err, service.ErrUserDisabled):
			respondError(c, response.CodeForbidden, "账号已被禁用", nil)
		default:
			respondError(c, response.CodeInternal, "登录失败", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user":       userProfileView(user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// GetCurrentUser 获取当前登录用户资料
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserRepo.GetByID(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "获取用户信息失败", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "用户不存在", nil)
		return
	}

	response.Success(c, userProfileView(user))
}

// UpdateUserProfile 更新当前用户资料
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(uid, req.DisplayName, req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "用户不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "更新用户信息失败", err)
		return
	}

	response.Success(c, userProfileView(user))
}

func userProfileView(user *models.User) gin.H {
	if user == nil {
		return gin.H{}
	}
	return gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"display_name":  user.DisplayName,
		"phone":         user.Phone,
		"status":        user.Status,
		"last_login_at": user.LastLoginAt,
		"created_at":    user.CreatedAt,
	}
}
