package service

import (
	"encoding/json"

	"github.com/vietcart-next/internal/logger"
	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/queue"
	"github.com/vietcart-next/internal/repository"
)

// AuditEntry 审计条目
type AuditEntry struct {
	Action  string
	UserID  uint
	AdminID uint
	OrderNo string
	Detail  map[string]interface{}
}

// AuditService 审计日志服务：优先推送队列异步落库，
// 队列不可用时退化为同步写库；记录失败只打日志，不阻断主流程。
type AuditService struct {
	auditRepo   repository.AuditLogRepository
	queueClient *queue.Client
}

// NewAuditService 创建审计服务
func NewAuditService(auditRepo repository.AuditLogRepository, queueClient *queue.Client) *AuditService {
	return &AuditService{
		auditRepo:   auditRepo,
		queueClient: queueClient,
	}
}

// Record 记录一条审计日志（尽力而为）
func (s *AuditService) Record(entry AuditEntry) {
	if s == nil || entry.Action == "" {
		return
	}
	detail := ""
	if len(entry.Detail) > 0 {
		if raw, err := json.Marshal(entry.Detail); err == nil {
			detail = string(raw)
		}
	}

	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueAuditLogRecord(queue.AuditLogRecordPayload{
			Action:  entry.Action,
			UserID:  entry.UserID,
			AdminID: entry.AdminID,
			OrderNo: entry.OrderNo,
			Detail:  detail,
		})
		if err == nil {
			return
		}
		logger.Warnw("audit_enqueue_failed", "action", entry.Action, "order_no", entry.OrderNo, "error", err)
	}

	if err := s.Persist(queue.AuditLogRecordPayload{
		Action:  entry.Action,
		UserID:  entry.UserID,
		AdminID: entry.AdminID,
		OrderNo: entry.OrderNo,
		Detail:  detail,
	}); err != nil {
		logger.Warnw("audit_record_failed", "action", entry.Action, "order_no", entry.OrderNo, "error", err)
	}
}

// Persist 将审计载荷写入数据库（队列 worker 与同步退化共用）
func (s *AuditService) Persist(payload queue.AuditLogRecordPayload) error {
	return s.auditRepo.Create(&models.AuditLog{
		Action:  payload.Action,
		UserID:  payload.UserID,
		AdminID: payload.AdminID,
		OrderNo: payload.OrderNo,
		Detail:  payload.Detail,
	})
}

// List 审计日志列表
func (s *AuditService) List(filter repository.AuditLogListFilter) ([]models.AuditLog, int64, error) {
	return s.auditRepo.List(filter)
}
