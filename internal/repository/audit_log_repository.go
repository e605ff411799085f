package repository

import (
	"github.com/vietcart-next/internal/models"

	"gorm.io/gorm"
)

// AuditLogRepository 审计日志数据访问接口
type AuditLogRepository interface {
	Create(log *models.AuditLog) error
	List(filter AuditLogListFilter) ([]models.AuditLog, int64, error)
}

// GormAuditLogRepository GORM 实现
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository 创建审计日志仓库
func NewAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Create 写入审计日志
func (r *GormAuditLogRepository) Create(log *models.AuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// List 审计日志列表
func (r *GormAuditLogRepository) List(filter AuditLogListFilter) ([]models.AuditLog, int64, error) {
	query := r.db.Model(&models.AuditLog{})

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.AdminID != 0 {
		query = query.Where("admin_id = ?", filter.AdminID)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	logs := make([]models.AuditLog, 0)
	if err := query.Order("id desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
