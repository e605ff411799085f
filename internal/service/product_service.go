package service

import (
	"strings"

	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	orderRepo    repository.OrderRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, orderRepo repository.OrderRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
	}
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetBySlug 商品详情（附已售数量）
func (s *ProductService) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetBySlug(slug, onlyActive)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	sold, err := s.SoldCount(product.ID)
	if err != nil {
		return nil, err
	}
	product.SoldCount = sold
	return product, nil
}

// GetByID 商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// SoldCount 商品已售数量：已送达且未退货的订单中该商品数量之和。
func (s *ProductService) SoldCount(productID uint) (int64, error) {
	return s.orderRepo.SoldQuantityByProduct(productID)
}

// Create 创建商品
func (s *ProductService) Create(product *models.Product) error {
	if product == nil || strings.TrimSpace(product.Name) == "" || strings.TrimSpace(product.Slug) == "" {
		return ErrInvalidInput
	}
	category, err := s.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return s.productRepo.Create(product)
}

// Update 更新商品
func (s *ProductService) Update(product *models.Product) error {
	if product == nil || product.ID == 0 {
		return ErrProductNotFound
	}
	return s.productRepo.Update(product)
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	return s.productRepo.Delete(id)
}
