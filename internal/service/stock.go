package service

import "github.com/vietcart-next/internal/models"

// validateStockLine 校验单行库存：商品必须上架且库存足够。
// 库存不足时返回携带商品名与剩余量的 StockError，整单终止。
func validateStockLine(product *models.Product, quantity int) error {
	if product == nil {
		return ErrProductNotFound
	}
	if !product.IsActive {
		return ErrProductUnavailable
	}
	if quantity <= 0 {
		return ErrInvalidOrderItem
	}
	if product.StockQuantity < quantity {
		return &StockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Remaining:   product.StockQuantity,
		}
	}
	return nil
}
