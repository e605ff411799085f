package service

import (
	"time"

	"github.com/vietcart-next/internal/constants"
	"github.com/vietcart-next/internal/logger"
	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/queue"
	"github.com/vietcart-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	addressRepo repository.AddressRepository
	seqRepo     repository.OrderSequenceRepository
	historyRepo repository.StatusHistoryRepository
	pricing     *PricingService
	numberGen   *OrderNumberGenerator
	reconciler  *CartReconciler
	audit       *AuditService
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, addressRepo repository.AddressRepository, seqRepo repository.OrderSequenceRepository, historyRepo repository.StatusHistoryRepository, pricing *PricingService, numberGen *OrderNumberGenerator, reconciler *CartReconciler, audit *AuditService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		seqRepo:     seqRepo,
		historyRepo: historyRepo,
		pricing:     pricing,
		numberGen:   numberGen,
		reconciler:  reconciler,
		audit:       audit,
		queueClient: queueClient,
	}
}

// CheckoutItem 结算订单项输入
type CheckoutItem struct {
	ProductID uint
	Quantity  int
}

// CheckoutInput 结算输入。
// ShippingFeeOverride 仅供内部调用方（如管理端补单）指定运费，公开接口不透出。
type CheckoutInput struct {
	UserID              uint
	AddressID           uint
	Items               []CheckoutItem
	PaymentMethod       string
	ShippingMethod      string
	ShippingFeeOverride *models.Money
	Notes               string
	ClientIP            string
}

// Checkout 结算下单：校验用户电话与地址归属，整单校验库存并计价，
// 在单个事务内分配订单号、创建订单与订单项并条件扣减库存。
// 货到付款订单创建后立即清理购物车；预付订单的清理推迟到支付确认。
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 || len(input.Items) == 0 {
		return nil, ErrInvalidOrderItem
	}
	if !isPaymentMethodSupported(input.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	if !isShippingMethodSupported(input.ShippingMethod) {
		return nil, ErrInvalidShipping
	}

	items, err := mergeCheckoutItems(input.Items)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.Phone == "" {
		return nil, ErrPhoneRequired
	}

	address, err := s.addressRepo.GetByIDAndUser(input.AddressID, input.UserID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	products, err := s.loadProducts(items)
	if err != nil {
		return nil, err
	}

	lines := make([]PricingLine, 0, len(items))
	for _, item := range items {
		product := products[item.ProductID]
		if err := validateStockLine(product, item.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, PricingLine{Product: product, Quantity: item.Quantity})
	}

	pricing, err := s.pricing.Calculate(lines, input.ShippingMethod, input.ShippingFeeOverride)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		UserID:          input.UserID,
		Status:          constants.OrderStatusProcessing,
		PaymentStatus:   constants.PaymentStatusUnpaid,
		PaymentMethod:   input.PaymentMethod,
		ShippingMethod:  input.ShippingMethod,
		Currency:        constants.SiteCurrencyDefault,
		Subtotal:        pricing.Subtotal,
		DiscountAmount:  pricing.DiscountAmount,
		ShippingFee:     pricing.ShippingFee,
		TotalAmount:     pricing.TotalAmount,
		ReceiverName:    address.ReceiverName,
		ReceiverPhone:   address.Phone,
		ShippingAddress: address.FullText(),
		Notes:           input.Notes,
		ClientIP:        input.ClientIP,
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product := products[item.ProductID]
		unit := product.EffectivePrice()
		orderItems = append(orderItems, models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductSKU:   product.SKU,
			ProductImage: product.ImageURL,
			ListPrice:    product.Price,
			UnitPrice:    unit,
			Quantity:     item.Quantity,
			TotalPrice:   models.NewMoneyFromDecimal(unit.Decimal.Mul(intToDecimal(item.Quantity))),
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderNo, err := s.numberGen.WithSequenceRepo(s.seqRepo.WithTx(tx)).Next(now)
		if err != nil {
			return err
		}
		order.OrderNo = orderNo

		productRepo := s.productRepo.WithTx(tx)
		for _, item := range items {
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				// 校验后被并发订单抢占，回读剩余量报给用户
				current, err := productRepo.GetByID(item.ProductID)
				if err != nil {
					return err
				}
				remaining := 0
				name := ""
				if current != nil {
					remaining = current.StockQuantity
					name = current.Name
				}
				return &StockError{
					ProductID:   item.ProductID,
					ProductName: name,
					Requested:   item.Quantity,
					Remaining:   remaining,
				}
			}
		}

		if err := s.orderRepo.WithTx(tx).Create(order, orderItems); err != nil {
			return err
		}
		order.Items = orderItems

		return s.historyRepo.WithTx(tx).Append(&models.OrderStatusHistory{
			OrderID:  order.ID,
			ToStatus: constants.OrderStatusProcessing,
			Note:     "订单创建",
		})
	})
	if err != nil {
		return nil, err
	}

	// 货到付款：下单即清理购物车；预付方式留待支付确认后清理
	if input.PaymentMethod == constants.PaymentMethodCOD {
		s.reconciler.RemoveCheckedOut(input.UserID, productIDsOf(items))
	}

	s.audit.Record(AuditEntry{
		Action:  constants.AuditActionOrderCreated,
		UserID:  input.UserID,
		OrderNo: order.OrderNo,
		Detail: map[string]interface{}{
			"payment_method":  order.PaymentMethod,
			"shipping_method": order.ShippingMethod,
			"total_amount":    order.TotalAmount.String(),
			"item_count":      len(orderItems),
		},
	})

	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"user_id", input.UserID,
		"payment_method", order.PaymentMethod,
		"total_amount", order.TotalAmount.String(),
	)
	return order, nil
}

// GetByOrderNoForUser 获取用户订单详情（含状态流转记录）
func (s *OrderService) GetByOrderNoForUser(orderNo string, userID uint) (*models.Order, error) {
	if orderNo == "" || userID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	histories, err := s.historyRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	order.Histories = histories
	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrOrderNotFound
	}
	return s.orderRepo.ListByUser(filter)
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetByOrderNo 管理端获取订单详情（含状态流转记录）
func (s *OrderService) GetByOrderNo(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	histories, err := s.historyRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	order.Histories = histories
	return order, nil
}

func (s *OrderService) loadProducts(items []CheckoutItem) (map[uint]*models.Product, error) {
	ids := productIDsOf(items)
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, id := range ids {
		if byID[id] == nil {
			return nil, ErrProductNotFound
		}
	}
	return byID, nil
}

// mergeCheckoutItems 合并重复商品行并校验数量
func mergeCheckoutItems(items []CheckoutItem) ([]CheckoutItem, error) {
	merged := make([]CheckoutItem, 0, len(items))
	index := make(map[uint]int, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		if pos, ok := index[item.ProductID]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

func productIDsOf(items []CheckoutItem) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

func isPaymentMethodSupported(method string) bool {
	switch method {
	case constants.PaymentMethodCOD,
		constants.PaymentMethodBankTransfer,
		constants.PaymentMethodMomo,
		constants.PaymentMethodVNPay:
		return true
	}
	return false
}

func intToDecimal(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}

func isShippingMethodSupported(method string) bool {
	switch method {
	case constants.ShippingMethodStandard, constants.ShippingMethodFast:
		return true
	}
	return false
}
