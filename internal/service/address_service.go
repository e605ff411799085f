package service

import (
	"strings"

	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/repository"
)

// AddressInput 地址创建/更新输入
type AddressInput struct {
	UserID       uint
	AddressID    uint
	ReceiverName string
	Phone        string
	Province     string
	District     string
	Ward         string
	Street       string
	IsDefault    bool
}

// AddressService 收货地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// ListByUser 用户地址列表
func (s *AddressService) ListByUser(userID uint) ([]models.Address, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.addressRepo.ListByUser(userID)
}

// Create 创建地址
func (s *AddressService) Create(input AddressInput) (*models.Address, error) {
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}
	address := &models.Address{
		UserID:       input.UserID,
		ReceiverName: strings.TrimSpace(input.ReceiverName),
		Phone:        strings.TrimSpace(input.Phone),
		Province:     strings.TrimSpace(input.Province),
		District:     strings.TrimSpace(input.District),
		Ward:         strings.TrimSpace(input.Ward),
		Street:       strings.TrimSpace(input.Street),
		IsDefault:    input.IsDefault,
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	if input.IsDefault {
		if err := s.addressRepo.SetDefault(address.ID, input.UserID); err != nil {
			return nil, err
		}
	}
	return address, nil
}

// Update 更新地址（仅限本人地址）
func (s *AddressService) Update(input AddressInput) (*models.Address, error) {
	if input.AddressID == 0 {
		return nil, ErrAddressNotFound
	}
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}
	address, err := s.addressRepo.GetByIDAndUser(input.AddressID, input.UserID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	address.ReceiverName = strings.TrimSpace(input.ReceiverName)
	address.Phone = strings.TrimSpace(input.Phone)
	address.Province = strings.TrimSpace(input.Province)
	address.District = strings.TrimSpace(input.District)
	address.Ward = strings.TrimSpace(input.Ward)
	address.Street = strings.TrimSpace(input.Street)
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	if input.IsDefault {
		if err := s.addressRepo.SetDefault(address.ID, input.UserID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}
	return address, nil
}

// Delete 删除地址（仅限本人地址）
func (s *AddressService) Delete(addressID, userID uint) error {
	if addressID == 0 || userID == 0 {
		return ErrAddressNotFound
	}
	return s.addressRepo.Delete(addressID, userID)
}

// SetDefault 设置默认地址（仅限本人地址）
func (s *AddressService) SetDefault(addressID, userID uint) error {
	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrAddressNotFound
	}
	return s.addressRepo.SetDefault(addressID, userID)
}

func validateAddressInput(input AddressInput) error {
	if input.UserID == 0 {
		return ErrInvalidInput
	}
	if strings.TrimSpace(input.ReceiverName) == "" ||
		strings.TrimSpace(input.Phone) == "" ||
		strings.TrimSpace(input.Province) == "" ||
		strings.TrimSpace(input.District) == "" ||
		strings.TrimSpace(input.Street) == "" {
		return ErrInvalidInput
	}
	return nil
}
