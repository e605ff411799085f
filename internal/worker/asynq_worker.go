package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/vietcart-next/internal/logger"
	"github.com/vietcart-next/internal/provider"
	"github.com/vietcart-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskAuditLogRecord, c.handleAuditLogRecord)
	mux.HandleFunc(queue.TaskOrderStatusAlert, c.handleOrderStatusAlert)
}

func (c *Consumer) handleAuditLogRecord(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_audit_record_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.AuditLogRecordPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_audit_record_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.Action) == "" {
		logger.Debugw("worker_audit_record_skip_empty_action")
		return nil
	}
	if c.AuditService == nil {
		logger.Warnw("worker_audit_record_skip_audit_service_nil", "action", payload.Action)
		return nil
	}
	if err := c.AuditService.Persist(payload); err != nil {
		logger.Warnw("worker_audit_record_persist_failed", "action", payload.Action, "order_no", payload.OrderNo, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderStatusAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_alert_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_alert_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_alert_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	// 告警通道（站内信/IM webhook）尚未接入，先落结构化日志供外部采集。
	logger.Infow("order_status_alert",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"status", status,
		"payment_status", order.PaymentStatus,
		"total_amount", order.TotalAmount.String(),
	)
	return nil
}
