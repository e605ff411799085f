package repository

import (
	"github.com/vietcart-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderSequenceRepository 订单号日序列数据访问接口
type OrderSequenceRepository interface {
	Next(dateKey string) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderSequenceRepository
}

// GormOrderSequenceRepository GORM 实现
type GormOrderSequenceRepository struct {
	db *gorm.DB
}

// NewOrderSequenceRepository 创建订单号序列仓库
func NewOrderSequenceRepository(db *gorm.DB) *GormOrderSequenceRepository {
	return &GormOrderSequenceRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderSequenceRepository) WithTx(tx *gorm.DB) *GormOrderSequenceRepository {
	if tx == nil {
		return r
	}
	return &GormOrderSequenceRepository{db: tx}
}

// Next 分配指定日期键的下一个序号。
// 通过 upsert 原子自增后回读，保证并发下单时序号单调且不重复。
func (r *GormOrderSequenceRepository) Next(dateKey string) (int64, error) {
	seq := models.OrderSequence{DateKey: dateKey, Seq: 1}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"seq": gorm.Expr("order_sequences.seq + 1"),
		}),
	}).Create(&seq).Error
	if err != nil {
		return 0, err
	}

	var row models.OrderSequence
	if err := r.db.Where("date_key = ?", dateKey).First(&row).Error; err != nil {
		return 0, err
	}
	return row.Seq, nil
}
