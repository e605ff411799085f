package queue

import (
	"encoding/json"

	"github.com/vietcart-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskAuditLogRecord 审计日志落库任务
	TaskAuditLogRecord = constants.TaskAuditLogRecord
	// TaskOrderStatusAlert 订单状态提醒任务
	TaskOrderStatusAlert = constants.TaskOrderStatusAlert
)

// AuditLogRecordPayload 审计日志任务载荷
type AuditLogRecordPayload struct {
	Action  string `json:"action"`
	UserID  uint   `json:"user_id"`
	AdminID uint   `json:"admin_id"`
	OrderNo string `json:"order_no"`
	Detail  string `json:"detail"`
}

// OrderStatusAlertPayload 订单状态提醒任务载荷
type OrderStatusAlertPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewAuditLogRecordTask 创建审计日志任务
func NewAuditLogRecordTask(payload AuditLogRecordPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditLogRecord, body), nil
}

// NewOrderStatusAlertTask 创建订单状态提醒任务
func NewOrderStatusAlertTask(payload OrderStatusAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusAlert, body), nil
}
