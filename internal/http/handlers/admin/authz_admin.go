package admin

import (
	"strconv"

	"github.com/vietcart-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RolePolicyRequest 角色策略授予/撤销请求
type RolePolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// SetAdminRolesRequest 管理员角色设置请求
type SetAdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// ListAuthzRoles 角色列表 (Admin)
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "获取角色列表失败", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// GrantRolePolicy 授予角色策略 (Admin)
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeInternal, "授予角色策略失败", err)
		return
	}

	response.Success(c, gin.H{"granted": true})
}

// RevokeRolePolicy 撤销角色策略 (Admin)
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeInternal, "撤销角色策略失败", err)
		return
	}

	response.Success(c, gin.H{"revoked": true})
}

// SetAdminRoles 设置管理员角色 (Admin)
func (h *Handler) SetAdminRoles(c *gin.Context) {
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || adminID == 0 {
		respondError(c, response.CodeBadRequest, "管理员标识无效", nil)
		return
	}

	var req SetAdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(uint(adminID), req.Roles); err != nil {
		respondError(c, response.CodeInternal, "设置管理员角色失败", err)
		return
	}

	response.Success(c, gin.H{"updated": true})
}

// GetAdminRolePolicies 查询管理员生效策略 (Admin)
func (h *Handler) GetAdminRolePolicies(c *gin.Context) {
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || adminID == 0 {
		respondError(c, response.CodeBadRequest, "管理员标识无效", nil)
		return
	}

	policies, err := h.AuthzService.GetAdminPolicies(uint(adminID))
	if err != nil {
		respondError(c, response.CodeInternal, "获取管理员策略失败", err)
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(uint(adminID))
	if err != nil {
		respondError(c, response.CodeInternal, "获取管理员角色失败", err)
		return
	}

	response.Success(c, gin.H{
		"roles":    roles,
		"policies": policies,
	})
}
