package service

import (
	"time"

	"github.com/vietcart-next/internal/constants"
	"github.com/vietcart-next/internal/logger"
	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/queue"

	"gorm.io/gorm"
)

// allowedTransitions 订单状态流转表：所有状态变更必须经由此表校验。
// returned 与 canceled 为终态；canceled 仅能从 processing 进入。
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipping: true,
		constants.OrderStatusCanceled: true,
	},
	constants.OrderStatusShipping: {
		constants.OrderStatusDelivered: true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusReturned: true,
	},
}

func isTransitionAllowed(current, target string) bool {
	targets, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return targets[target]
}

// notifyStatusAlert 投递状态变更告警任务，worker 消费后输出结构化日志。
// 与审计记录同为尽力而为的附带效果，失败只记日志。
func (s *OrderService) notifyStatusAlert(orderID uint, status string) {
	if !s.queueClient.Enabled() {
		return
	}
	err := s.queueClient.EnqueueOrderStatusAlert(queue.OrderStatusAlertPayload{
		OrderID: orderID,
		Status:  status,
	})
	if err != nil {
		logger.Warnw("order_status_alert_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}

// UpdateStatus 管理端流转订单状态。目标状态为 canceled 时走取消流程（回补库存）。
func (s *OrderService) UpdateStatus(orderNo, target, note string, operatorID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, &StateError{Current: order.Status, Target: target}
	}
	if target == constants.OrderStatusCanceled {
		return s.cancel(order, note, operatorID)
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	if target == constants.OrderStatusDelivered {
		updates["delivered_at"] = now
	}

	from := order.Status
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, target, updates); err != nil {
			return err
		}
		return s.historyRepo.WithTx(tx).Append(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   target,
			Note:       note,
			OperatorID: operatorID,
		})
	})
	if err != nil {
		return nil, err
	}
	order.Status = target
	if target == constants.OrderStatusDelivered {
		order.DeliveredAt = &now
	}

	s.notifyStatusAlert(order.ID, target)
	s.audit.Record(AuditEntry{
		Action:  constants.AuditActionOrderStatus,
		AdminID: operatorID,
		UserID:  order.UserID,
		OrderNo: order.OrderNo,
		Detail: map[string]interface{}{
			"from": from,
			"to":   target,
		},
	})
	logger.Infow("order_status_changed", "order_no", order.OrderNo, "from", from, "to", target)
	return order, nil
}

// CancelByUser 用户取消订单：仅 processing 状态可取消。
func (s *OrderService) CancelByUser(orderNo string, userID uint, note string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusProcessing {
		return nil, ErrOrderCancelNotAllowed
	}
	return s.cancel(order, note, 0)
}

// cancel 取消订单：状态置为 canceled 并回补全部订单项库存。
func (s *OrderService) cancel(order *models.Order, note string, operatorID uint) (*models.Order, error) {
	if order.Status != constants.OrderStatusProcessing {
		return nil, ErrOrderCancelNotAllowed
	}

	now := time.Now()
	from := order.Status
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"updated_at":  now,
			"canceled_at": now,
		}
		if err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusCanceled, updates); err != nil {
			return err
		}

		productRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return s.historyRepo.WithTx(tx).Append(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   constants.OrderStatusCanceled,
			Note:       note,
			OperatorID: operatorID,
		})
	})
	if err != nil {
		return nil, err
	}
	order.Status = constants.OrderStatusCanceled
	order.CanceledAt = &now

	s.notifyStatusAlert(order.ID, constants.OrderStatusCanceled)
	s.audit.Record(AuditEntry{
		Action:  constants.AuditActionOrderCanceled,
		AdminID: operatorID,
		UserID:  order.UserID,
		OrderNo: order.OrderNo,
		Detail:  map[string]interface{}{"from": from},
	})
	logger.Infow("order_canceled", "order_no", order.OrderNo, "operator_id", operatorID)
	return order, nil
}

// ConfirmPayment 确认支付：支付状态 unpaid -> paid，不推进订单状态。
// 重复确认视为幂等 no-op。预付订单在此时清理购物车中已结算的商品。
func (s *OrderService) ConfirmPayment(orderNo string, operatorID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return order, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
		"paid_at":    now,
	}
	if err := s.orderRepo.UpdatePaymentStatus(order.ID, constants.PaymentStatusPaid, updates); err != nil {
		return nil, err
	}
	order.PaymentStatus = constants.PaymentStatusPaid
	order.PaidAt = &now

	// 预付方式：支付确认后清理购物车；货到付款已在下单时清理
	if order.PaymentMethod != constants.PaymentMethodCOD {
		ids := make([]uint, 0, len(order.Items))
		for _, item := range order.Items {
			ids = append(ids, item.ProductID)
		}
		s.reconciler.RemoveCheckedOut(order.UserID, ids)
	}

	s.notifyStatusAlert(order.ID, order.Status)
	s.audit.Record(AuditEntry{
		Action:  constants.AuditActionPaymentConfirmed,
		AdminID: operatorID,
		UserID:  order.UserID,
		OrderNo: order.OrderNo,
		Detail:  map[string]interface{}{"payment_method": order.PaymentMethod},
	})
	logger.Infow("order_payment_confirmed", "order_no", order.OrderNo, "payment_method", order.PaymentMethod)
	return order, nil
}
