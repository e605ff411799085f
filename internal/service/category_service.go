package service

import (
	"strings"

	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// Create 创建分类
func (s *CategoryService) Create(category *models.Category) error {
	if category == nil || strings.TrimSpace(category.Name) == "" || strings.TrimSpace(category.Slug) == "" {
		return ErrInvalidInput
	}
	exist, err := s.categoryRepo.GetBySlug(category.Slug)
	if err != nil {
		return err
	}
	if exist != nil {
		return ErrSlugExists
	}
	return s.categoryRepo.Create(category)
}

// Update 更新分类
func (s *CategoryService) Update(category *models.Category) error {
	if category == nil || category.ID == 0 {
		return ErrNotFound
	}
	return s.categoryRepo.Update(category)
}

// Delete 删除分类
func (s *CategoryService) Delete(id uint) error {
	return s.categoryRepo.Delete(id)
}
