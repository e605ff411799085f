package service

import (
	"time"

	"github.com/vietcart-next/internal/constants"
	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/repository"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	ListPrice models.Money    `json:"list_price"`
	LineTotal models.Money    `json:"line_total"`
	Currency  string          `json:"currency"`
	Product   *models.Product `json:"product"`
}

// UpsertCartItemInput 购物车更新输入
type UpsertCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListByUser 获取用户购物车，下架商品顺带清出
func (s *CartService) ListByUser(userID uint) ([]CartItemDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidOrderItem
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || !product.IsActive {
			_ = s.cartRepo.DeleteByUserAndProduct(userID, item.ProductID)
			continue
		}

		unit := product.EffectivePrice()
		details = append(details, CartItemDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unit,
			ListPrice: product.Price,
			LineTotal: models.NewMoneyFromDecimal(unit.Decimal.Mul(intToDecimal(item.Quantity))),
			Currency:  constants.SiteCurrencyDefault,
			Product:   product,
		})
	}
	return details, nil
}

// UpsertItem 添加或更新购物车项
func (s *CartService) UpsertItem(input UpsertCartItemInput) error {
	if input.UserID == 0 || input.ProductID == 0 || input.Quantity <= 0 {
		return ErrInvalidOrderItem
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !product.IsActive {
		return ErrProductUnavailable
	}
	now := time.Now()
	return s.cartRepo.Upsert(&models.CartItem{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		UpdatedAt: now,
	})
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidOrderItem
	}
	return s.cartRepo.DeleteByUserAndProduct(userID, productID)
}

// ClearByUser 清空购物车
func (s *CartService) ClearByUser(userID uint) error {
	if userID == 0 {
		return ErrInvalidOrderItem
	}
	return s.cartRepo.ClearByUser(userID)
}
