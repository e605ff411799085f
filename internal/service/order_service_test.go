package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vietcart-next/internal/constants"
	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/repository"

	"gorm.io/gorm"
)

type orderTestEnv struct {
	db          *gorm.DB
	orderSvc    *OrderService
	cartRepo    *repository.GormCartRepository
	productRepo *repository.GormProductRepository
	orderRepo   *repository.GormOrderRepository
	historyRepo *repository.GormStatusHistoryRepository
	user        *models.User
	address     *models.Address
}

// newOrderTestEnv 搭建下单链路的完整测试环境：内存库 + 真实仓库 + 种子用户与地址。
func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	db := openTestDB(t)
	models.DB = db

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	historyRepo := repository.NewStatusHistoryRepository(db)

	orderSvc := NewOrderService(
		orderRepo,
		productRepo,
		repository.NewUserRepository(db),
		repository.NewAddressRepository(db),
		repository.NewOrderSequenceRepository(db),
		historyRepo,
		newTestPricingService(),
		NewOrderNumberGenerator("ORD", repository.NewOrderSequenceRepository(db)),
		NewCartReconciler(cartRepo),
		NewAuditService(repository.NewAuditLogRepository(db), nil),
		nil,
	)

	user := &models.User{
		Email:        "khach@vietcart.local",
		PasswordHash: "x",
		Phone:        "0901234567",
		Status:       "active",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	address := &models.Address{
		UserID:       user.ID,
		ReceiverName: "Nguyen Van A",
		Phone:        "0901234567",
		Province:     "Hà Nội",
		District:     "Ba Đình",
		Ward:         "Điện Biên",
		Street:       "12 Hoàng Diệu",
		IsDefault:    true,
	}
	if err := db.Create(address).Error; err != nil {
		t.Fatalf("seed address failed: %v", err)
	}

	return &orderTestEnv{
		db:          db,
		orderSvc:    orderSvc,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		user:        user,
		address:     address,
	}
}

func (env *orderTestEnv) createProduct(t *testing.T, slug string, list, sale int64, stock int) *models.Product {
	t.Helper()
	category := &models.Category{Name: "điện thoại", Slug: "dien-thoai-" + slug}
	if err := env.db.Create(category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:    category.ID,
		Slug:          slug,
		SKU:           "SKU-" + strings.ToUpper(slug),
		Name:          "Sản phẩm " + slug,
		Price:         models.NewMoneyFromInt(list),
		StockQuantity: stock,
		IsActive:      true,
	}
	if sale > 0 {
		m := models.NewMoneyFromInt(sale)
		product.SalePrice = &m
	}
	if err := env.db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func (env *orderTestEnv) addCartItem(t *testing.T, productID uint, quantity int) {
	t.Helper()
	err := env.cartRepo.Upsert(&models.CartItem{
		UserID:    env.user.ID,
		ProductID: productID,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed cart item failed: %v", err)
	}
}

func (env *orderTestEnv) stockOf(t *testing.T, productID uint) int {
	t.Helper()
	product, err := env.productRepo.GetByID(productID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if product == nil {
		t.Fatalf("product %d not found", productID)
	}
	return product.StockQuantity
}

func (env *orderTestEnv) cartProductIDs(t *testing.T) map[uint]bool {
	t.Helper()
	items, err := env.cartRepo.ListByUser(env.user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	ids := make(map[uint]bool, len(items))
	for _, item := range items {
		ids[item.ProductID] = true
	}
	return ids
}

func TestCheckoutCODClearsOrderedCartLines(t *testing.T) {
	env := newOrderTestEnv(t)
	ordered := env.createProduct(t, "tai-nghe", 100000, 80000, 10)
	kept := env.createProduct(t, "sac-du-phong", 450000, 0, 5)
	env.addCartItem(t, ordered.ID, 2)
	env.addCartItem(t, kept.ID, 1)

	order, err := env.orderSvc.Checkout(CheckoutInput{
		UserID:         env.user.ID,
		AddressID:      env.address.ID,
		Items:          []CheckoutItem{{ProductID: ordered.ID, Quantity: 2}},
		PaymentMethod:  constants.PaymentMethodCOD,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if !strings.HasPrefix(order.OrderNo, "ORD") || len(order.OrderNo) != len("ORD20260829001") {
		t.Fatalf("order no = %s, want ORD+日期+三位序号", order.OrderNo)
	}
	if order.Status != constants.OrderStatusProcessing {
		t.Fatalf("status = %s, want processing", order.Status)
	}
	if order.PaymentStatus != constants.PaymentStatusUnpaid {
		t.Fatalf("payment status = %s, want unpaid", order.PaymentStatus)
	}
	if got := order.Subtotal.String(); got != "160000" {
		t.Fatalf("subtotal = %s, want 160000", got)
	}
	if got := order.DiscountAmount.String(); got != "40000" {
		t.Fatalf("discount = %s, want 40000", got)
	}
	if got := order.ShippingFee.String(); got != "15000" {
		t.Fatalf("shipping fee = %s, want 15000", got)
	}
	if got := order.TotalAmount.String(); got != "175000" {
		t.Fatalf("total = %s, want 175000", got)
	}
	if order.ShippingAddress != env.address.FullText() {
		t.Fatalf("shipping address = %s, want %s", order.ShippingAddress, env.address.FullText())
	}

	if got := env.stockOf(t, ordered.ID); got != 8 {
		t.Fatalf("stock = %d, want 8", got)
	}

	// 货到付款：已结算商品立即清出购物车，其余商品保留
	ids := env.cartProductIDs(t)
	if ids[ordered.ID] {
		t.Fatalf("ordered product still in cart")
	}
	if !ids[kept.ID] {
		t.Fatalf("unrelated cart line was removed")
	}

	histories, err := env.historyRepo.ListByOrder(order.ID)
	if err != nil {
		t.Fatalf("list histories failed: %v", err)
	}
	if len(histories) != 1 || histories[0].ToStatus != constants.OrderStatusProcessing {
		t.Fatalf("histories = %+v, want single processing entry", histories)
	}
}

func TestCheckoutPrepaidKeepsCartUntilPaymentConfirmed(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.createProduct(t, "noi-chien", 1590000, 0, 3)
	env.addCartItem(t, product.ID, 1)

	order, err := env.orderSvc.Checkout(CheckoutInput{
		UserID:         env.user.ID,
		AddressID:      env.address.ID,
		Items:          []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod:  constants.PaymentMethodBankTransfer,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// 预付订单创建后购物车保持不变
	if ids := env.cartProductIDs(t); !ids[product.ID] {
		t.Fatalf("cart line removed before payment confirmation")
	}

	confirmed, err := env.orderSvc.ConfirmPayment(order.OrderNo, 7)
	if err != nil {
		t.Fatalf("confirm payment failed: %v", err)
	}
	if confirmed.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("payment status = %s, want paid", confirmed.PaymentStatus)
	}
	if confirmed.PaidAt == nil {
		t.Fatalf("paid_at not set")
	}
	if confirmed.Status != constants.OrderStatusProcessing {
		t.Fatalf("status = %s, confirm payment must not advance order status", confirmed.Status)
	}

	// 支付确认后才清理购物车
	if ids := env.cartProductIDs(t); ids[product.ID] {
		t.Fatalf("cart line not removed after payment confirmation")
	}

	// 重复确认为幂等 no-op
	again, err := env.orderSvc.ConfirmPayment(order.OrderNo, 7)
	if err != nil {
		t.Fatalf("repeat confirm payment failed: %v", err)
	}
	if again.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("payment status = %s after repeat confirm, want paid", again.PaymentStatus)
	}
}

func TestCheckoutInsufficientStockFailsWholeOrder(t *testing.T) {
	env := newOrderTestEnv(t)
	enough := env.createProduct(t, "tai-nghe", 100000, 0, 10)
	scarce := env.createProduct(t, "sac-du-phong", 450000, 0, 1)
	env.addCartItem(t, enough.ID, 2)
	env.addCartItem(t, scarce.ID, 3)

	_, err := env.orderSvc.Checkout(CheckoutInput{
		UserID:    env.user.ID,
		AddressID: env.address.ID,
		Items: []CheckoutItem{
			{ProductID: enough.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 3},
		},
		PaymentMethod:  constants.PaymentMethodCOD,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err == nil {
		t.Fatalf("expected stock error")
	}
	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %T(%v), want *StockError", err, err)
	}
	if stockErr.ProductID != scarce.ID || stockErr.Requested != 3 || stockErr.Remaining != 1 {
		t.Fatalf("stock error = %+v, want product %d requested 3 remaining 1", stockErr, scarce.ID)
	}
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("stock error must match ErrStockInsufficient")
	}

	// 整单失败：不创建订单、不扣库存、不动购物车
	var orderCount int64
	env.db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("order count = %d, want 0", orderCount)
	}
	if got := env.stockOf(t, enough.ID); got != 10 {
		t.Fatalf("stock = %d, want 10 untouched", got)
	}
	ids := env.cartProductIDs(t)
	if !ids[enough.ID] || !ids[scarce.ID] {
		t.Fatalf("cart lines must stay after failed checkout")
	}
}

func TestCheckoutRequiresUserPhone(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.createProduct(t, "tai-nghe", 100000, 0, 10)

	if err := env.db.Model(env.user).Update("phone", "").Error; err != nil {
		t.Fatalf("clear phone failed: %v", err)
	}

	_, err := env.orderSvc.Checkout(CheckoutInput{
		UserID:         env.user.ID,
		AddressID:      env.address.ID,
		Items:          []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod:  constants.PaymentMethodCOD,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if !errors.Is(err, ErrPhoneRequired) {
		t.Fatalf("err = %v, want ErrPhoneRequired", err)
	}
}

func TestCheckoutRejectsForeignAddress(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.createProduct(t, "tai-nghe", 100000, 0, 10)

	other := &models.User{Email: "khac@vietcart.local", PasswordHash: "x", Phone: "0912345678", Status: "active"}
	if err := env.db.Create(other).Error; err != nil {
		t.Fatalf("seed other user failed: %v", err)
	}
	foreign := &models.Address{
		UserID:       other.ID,
		ReceiverName: "Tran Thi B",
		Phone:        "0912345678",
		Province:     "Hồ Chí Minh",
		District:     "Quận 1",
		Street:       "5 Lê Lợi",
	}
	if err := env.db.Create(foreign).Error; err != nil {
		t.Fatalf("seed foreign address failed: %v", err)
	}

	_, err := env.orderSvc.Checkout(CheckoutInput{
		UserID:         env.user.ID,
		AddressID:      foreign.ID,
		Items:          []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod:  constants.PaymentMethodCOD,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("err = %v, want ErrAddressNotFound", err)
	}
}

func TestCheckoutMergesDuplicateItemLines(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.createProduct(t, "tai-nghe", 100000, 0, 10)

	order, err := env.orderSvc.Checkout(CheckoutInput{
		UserID:    env.user.ID,
		AddressID: env.address.ID,
		Items: []CheckoutItem{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: product.ID, Quantity: 2},
		},
		PaymentMethod:  constants.PaymentMethodCOD,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if len(order.Items) != 1 {
		t.Fatalf("order items = %d, want 1 merged line", len(order.Items))
	}
	if order.Items[0].Quantity != 3 {
		t.Fatalf("merged quantity = %d, want 3", order.Items[0].Quantity)
	}
	if got := env.stockOf(t, product.ID); got != 7 {
		t.Fatalf("stock = %d, want 7", got)
	}
}

func TestCheckoutValidatesMethodsAndItems(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.createProduct(t, "tai-nghe", 100000, 0, 10)

	base := CheckoutInput{
		UserID:         env.user.ID,
		AddressID:      env.address.ID,
		Items:          []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod:  constants.PaymentMethodCOD,
		ShippingMethod: constants.ShippingMethodStandard,
	}

	input := base
	input.PaymentMethod = "paypal"
	if _, err := env.orderSvc.Checkout(input); !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Fatalf("err = %v, want ErrInvalidPaymentMethod", err)
	}

	input = base
	input.ShippingMethod = "drone"
	if _, err := env.orderSvc.Checkout(input); !errors.Is(err, ErrInvalidShipping) {
		t.Fatalf("err = %v, want ErrInvalidShipping", err)
	}

	input = base
	input.Items = nil
	if _, err := env.orderSvc.Checkout(input); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("err = %v, want ErrInvalidOrderItem", err)
	}

	input = base
	input.Items = []CheckoutItem{{ProductID: product.ID, Quantity: 0}}
	if _, err := env.orderSvc.Checkout(input); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("err = %v, want ErrInvalidOrderItem", err)
	}
}

func TestCheckoutRejectsInactiveProduct(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.createProduct(t, "tai-nghe", 100000, 0, 10)
	if err := env.db.Model(product).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	_, err := env.orderSvc.Checkout(CheckoutInput{
		UserID:         env.user.ID,
		AddressID:      env.address.ID,
		Items:          []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod:  constants.PaymentMethodCOD,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("err = %v, want ErrProductUnavailable", err)
	}
}
