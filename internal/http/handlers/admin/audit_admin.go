package admin

import (
	"strconv"
	"strings"

	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs 审计日志列表 (Admin)
func (h *Handler) ListAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	adminID, _ := strconv.ParseUint(c.Query("admin_id"), 10, 64)

	logs, total, err := h.AuditService.List(repository.AuditLogListFilter{
		Page:     page,
		PageSize: pageSize,
		Action:   strings.TrimSpace(c.Query("action")),
		UserID:   uint(userID),
		AdminID:  uint(adminID),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取审计日志失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, logs, pagination)
}
