package service

import (
	"github.com/vietcart-next/internal/logger"
	"github.com/vietcart-next/internal/repository"
)

// CartReconciler 购物车对账器：下单或支付确认后，从购物车移除已结算的商品。
// 清理属于尽力而为的附带效果，失败只记日志，不影响订单结果。
type CartReconciler struct {
	cartRepo repository.CartRepository
}

// NewCartReconciler 创建购物车对账器
func NewCartReconciler(cartRepo repository.CartRepository) *CartReconciler {
	return &CartReconciler{cartRepo: cartRepo}
}

// RemoveCheckedOut 移除购物车中指定商品的条目。
// 只删除显式给出的商品集合，用户后续加入的其它商品不受影响。
func (r *CartReconciler) RemoveCheckedOut(userID uint, productIDs []uint) {
	if r == nil || r.cartRepo == nil || userID == 0 || len(productIDs) == 0 {
		return
	}
	if err := r.cartRepo.DeleteByUserAndProducts(userID, productIDs); err != nil {
		logger.Warnw("cart_reconcile_failed",
			"user_id", userID,
			"product_ids", productIDs,
			"error", err,
		)
	}
}
