package repository

import (
	"errors"

	"github.com/vietcart-next/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 收货地址数据访问接口
type AddressRepository interface {
	GetByIDAndUser(id, userID uint) (*models.Address, error)
	ListByUser(userID uint) ([]models.Address, error)
	GetDefaultByUser(userID uint) (*models.Address, error)
	Create(address *models.Address) error
	Update(address *models.Address) error
	Delete(id, userID uint) error
	SetDefault(id, userID uint) error
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// GetByIDAndUser 获取用户名下的地址（地址必须归属该用户）
func (r *GormAddressRepository) GetByIDAndUser(id, userID uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// ListByUser 获取用户地址列表
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	addresses := make([]models.Address, 0)
	if err := r.db.Where("user_id = ?", userID).Order("is_default DESC, id DESC").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetDefaultByUser 获取用户默认地址
func (r *GormAddressRepository) GetDefaultByUser(userID uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.Where("user_id = ? AND is_default = ?", userID, true).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// Create 创建地址
func (r *GormAddressRepository) Create(address *models.Address) error {
	return r.db.Create(address).Error
}

// Update 更新地址
func (r *GormAddressRepository) Update(address *models.Address) error {
	return r.db.Save(address).Error
}

// Delete 删除地址（软删除）
func (r *GormAddressRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{}).Error
}

// SetDefault 设置默认地址（同用户其余地址取消默认）
func (r *GormAddressRepository) SetDefault(id, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND id <> ?", userID, id).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Address{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true).Error
	})
}
