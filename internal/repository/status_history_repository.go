package repository

import (
	"github.com/vietcart-next/internal/models"

	"gorm.io/gorm"
)

// StatusHistoryRepository 订单状态流转记录数据访问接口
type StatusHistoryRepository interface {
	Append(history *models.OrderStatusHistory) error
	ListByOrder(orderID uint) ([]models.OrderStatusHistory, error)
	WithTx(tx *gorm.DB) *GormStatusHistoryRepository
}

// GormStatusHistoryRepository GORM 实现
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

// NewStatusHistoryRepository 创建状态流转记录仓库
func NewStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStatusHistoryRepository) WithTx(tx *gorm.DB) *GormStatusHistoryRepository {
	if tx == nil {
		return r
	}
	return &GormStatusHistoryRepository{db: tx}
}

// Append 追加一条流转记录
func (r *GormStatusHistoryRepository) Append(history *models.OrderStatusHistory) error {
	if history == nil {
		return nil
	}
	return r.db.Create(history).Error
}

// ListByOrder 获取订单的流转记录（时间正序）
func (r *GormStatusHistoryRepository) ListByOrder(orderID uint) ([]models.OrderStatusHistory, error) {
	histories := make([]models.OrderStatusHistory, 0)
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}
