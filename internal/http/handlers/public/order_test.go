package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vietcart-next/internal/constants"
	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/provider"
	"github.com/vietcart-next/internal/repository"
	"github.com/vietcart-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type orderHandlerFixture struct {
	UserID    uint
	AddressID uint
	ProductID uint
}

func setupOrderHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB, orderHandlerFixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.OrderSequence{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cartRepo := repository.NewCartRepository(db)
	orderService := service.NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		repository.NewAddressRepository(db),
		repository.NewOrderSequenceRepository(db),
		repository.NewStatusHistoryRepository(db),
		service.NewPricingService(service.PricingOptions{
			FreeShippingThreshold: 500000,
			StandardShippingFee:   15000,
			FastShippingFee:       30000,
		}),
		service.NewOrderNumberGenerator("ORD", repository.NewOrderSequenceRepository(db)),
		service.NewCartReconciler(cartRepo),
		service.NewAuditService(repository.NewAuditLogRepository(db), nil),
		nil,
	)

	user := models.User{Email: "khach@vietcart.local", PasswordHash: "x", Phone: "0901234567", Status: "active"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	address := models.Address{
		UserID:       user.ID,
		ReceiverName: "Nguyen Van A",
		Phone:        "0901234567",
		Province:     "Hà Nội",
		District:     "Ba Đình",
		Street:       "12 Hoàng Diệu",
	}
	if err := db.Create(&address).Error; err != nil {
		t.Fatalf("seed address failed: %v", err)
	}
	category := models.Category{Name: "điện thoại", Slug: "dien-thoai"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	sale := models.NewMoneyFromInt(80000)
	product := models.Product{
		CategoryID:    category.ID,
		Slug:          "tai-nghe",
		SKU:           "VC-TN-0001",
		Name:          "Tai nghe bluetooth",
		Price:         models.NewMoneyFromInt(100000),
		SalePrice:     &sale,
		StockQuantity: 10,
		IsActive:      true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	h := &Handler{Container: &provider.Container{OrderService: orderService}}
	r := gin.New()
	authed := r.Group("/", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Next()
	})
	authed.POST("/checkout", h.Checkout)
	authed.GET("/orders/:order_no", h.GetOrderByOrderNo)
	authed.POST("/orders/:order_no/cancel", h.CancelOrder)

	return r, db, orderHandlerFixture{UserID: user.ID, AddressID: address.ID, ProductID: product.ID}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v (body=%s)", err, w.Body.String())
	}
	return w, resp
}

func TestCheckoutHandlerCreatesOrder(t *testing.T) {
	r, _, fix := setupOrderHandlerTest(t)

	body := fmt.Sprintf(`{
		"address_id": %d,
		"items": [{"product_id": %d, "quantity": 2}],
		"payment_method": "cod",
		"shipping_method": "standard"
	}`, fix.AddressID, fix.ProductID)

	w, resp := doJSON(t, r, http.MethodPost, "/checkout", body)
	if w.Code != http.StatusOK {
		t.Fatalf("http status = %d, want 200", w.Code)
	}
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("status_code = %d, msg = %s", resp.StatusCode, resp.Msg)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data type = %T", resp.Data)
	}
	orderNo, _ := data["order_no"].(string)
	if !strings.HasPrefix(orderNo, "ORD") {
		t.Fatalf("order_no = %v", data["order_no"])
	}
	if data["status"] != constants.OrderStatusProcessing {
		t.Fatalf("status = %v, want processing", data["status"])
	}
	if data["total_amount"] != "175000" {
		t.Fatalf("total_amount = %v, want 175000", data["total_amount"])
	}

	// 详情接口可回查到刚创建的订单
	w, resp = doJSON(t, r, http.MethodGet, "/orders/"+orderNo, "")
	if w.Code != http.StatusOK || resp.StatusCode != response.CodeOK {
		t.Fatalf("get order: http=%d status_code=%d", w.Code, resp.StatusCode)
	}
}

func TestCheckoutHandlerStockErrorDetail(t *testing.T) {
	r, _, fix := setupOrderHandlerTest(t)

	body := fmt.Sprintf(`{
		"address_id": %d,
		"items": [{"product_id": %d, "quantity": 99}],
		"payment_method": "cod",
		"shipping_method": "standard"
	}`, fix.AddressID, fix.ProductID)

	w, resp := doJSON(t, r, http.MethodPost, "/checkout", body)
	if w.Code != http.StatusOK {
		t.Fatalf("http status = %d, want 200", w.Code)
	}
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code = %d, want %d", resp.StatusCode, response.CodeBadRequest)
	}
	detail, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data type = %T, want 库存明细", resp.Data)
	}
	if detail["requested"] != float64(99) || detail["remaining"] != float64(10) {
		t.Fatalf("detail = %+v", detail)
	}
}

func TestCheckoutHandlerDefaultsShippingMethod(t *testing.T) {
	r, _, fix := setupOrderHandlerTest(t)

	body := fmt.Sprintf(`{
		"address_id": %d,
		"items": [{"product_id": %d, "quantity": 1}],
		"payment_method": "cod"
	}`, fix.AddressID, fix.ProductID)

	_, resp := doJSON(t, r, http.MethodPost, "/checkout", body)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("status_code = %d, msg = %s", resp.StatusCode, resp.Msg)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data type = %T", resp.Data)
	}
	if data["shipping_method"] != constants.ShippingMethodStandard {
		t.Fatalf("shipping_method = %v, want standard", data["shipping_method"])
	}
	// 低于免运费门槛，默认标准配送收取标准运费
	if data["shipping_fee"] != "15000" {
		t.Fatalf("shipping_fee = %v, want 15000", data["shipping_fee"])
	}
}

func TestCheckoutHandlerRejectsUnknownPaymentMethod(t *testing.T) {
	r, _, fix := setupOrderHandlerTest(t)

	body := fmt.Sprintf(`{
		"address_id": %d,
		"items": [{"product_id": %d, "quantity": 1}],
		"payment_method": "paypal",
		"shipping_method": "standard"
	}`, fix.AddressID, fix.ProductID)

	_, resp := doJSON(t, r, http.MethodPost, "/checkout", body)
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code = %d, want %d", resp.StatusCode, response.CodeBadRequest)
	}
}

func TestCancelOrderHandler(t *testing.T) {
	r, _, fix := setupOrderHandlerTest(t)

	body := fmt.Sprintf(`{
		"address_id": %d,
		"items": [{"product_id": %d, "quantity": 1}],
		"payment_method": "cod",
		"shipping_method": "standard"
	}`, fix.AddressID, fix.ProductID)
	_, resp := doJSON(t, r, http.MethodPost, "/checkout", body)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("checkout status_code = %d", resp.StatusCode)
	}
	data := resp.Data.(map[string]interface{})
	orderNo := data["order_no"].(string)

	_, resp = doJSON(t, r, http.MethodPost, "/orders/"+orderNo+"/cancel", `{"note":"đặt nhầm"}`)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("cancel status_code = %d, msg = %s", resp.StatusCode, resp.Msg)
	}
	canceled := resp.Data.(map[string]interface{})
	if canceled["status"] != constants.OrderStatusCanceled {
		t.Fatalf("status = %v, want canceled", canceled["status"])
	}

	// 已取消订单不可再次取消
	_, resp = doJSON(t, r, http.MethodPost, "/orders/"+orderNo+"/cancel", "")
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("repeat cancel status_code = %d, want %d", resp.StatusCode, response.CodeBadRequest)
	}
}
