package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/provider"
	"github.com/vietcart-next/internal/queue"
	"github.com/vietcart-next/internal/repository"
	"github.com/vietcart-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestConsumer(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.AuditLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	auditRepo := repository.NewAuditLogRepository(db)
	consumer := NewConsumer(&provider.Container{
		OrderRepo:    repository.NewOrderRepository(db),
		AuditLogRepo: auditRepo,
		AuditService: service.NewAuditService(auditRepo, nil),
	})
	return consumer, db
}

func TestHandleAuditLogRecordPersists(t *testing.T) {
	consumer, db := newTestConsumer(t)

	payload, _ := json.Marshal(queue.AuditLogRecordPayload{
		Action:  "order_created",
		UserID:  3,
		OrderNo: "ORD20260829001",
		Detail:  `{"total_amount":"175000"}`,
	})
	task := asynq.NewTask(queue.TaskAuditLogRecord, payload)
	if err := consumer.handleAuditLogRecord(context.Background(), task); err != nil {
		t.Fatalf("handle audit record failed: %v", err)
	}

	var logs []models.AuditLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("load audit logs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("audit logs = %d, want 1", len(logs))
	}
	if logs[0].Action != "order_created" || logs[0].OrderNo != "ORD20260829001" || logs[0].UserID != 3 {
		t.Fatalf("audit log = %+v", logs[0])
	}
}

func TestHandleAuditLogRecordSkipsEmptyAction(t *testing.T) {
	consumer, db := newTestConsumer(t)

	payload, _ := json.Marshal(queue.AuditLogRecordPayload{Action: "  "})
	task := asynq.NewTask(queue.TaskAuditLogRecord, payload)
	if err := consumer.handleAuditLogRecord(context.Background(), task); err != nil {
		t.Fatalf("handle audit record failed: %v", err)
	}

	var count int64
	db.Model(&models.AuditLog{}).Count(&count)
	if count != 0 {
		t.Fatalf("audit logs = %d, want 0", count)
	}
}

func TestHandleAuditLogRecordRejectsBadPayload(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	task := asynq.NewTask(queue.TaskAuditLogRecord, []byte("{invalid"))
	if err := consumer.handleAuditLogRecord(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestHandleOrderStatusAlertMissingOrder(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	payload, _ := json.Marshal(queue.OrderStatusAlertPayload{OrderID: 42, Status: "shipping"})
	task := asynq.NewTask(queue.TaskOrderStatusAlert, payload)
	// 订单不存在时跳过而非重试
	if err := consumer.handleOrderStatusAlert(context.Background(), task); err != nil {
		t.Fatalf("handle alert failed: %v", err)
	}
}
