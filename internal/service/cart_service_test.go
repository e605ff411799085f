package service

import (
	"errors"
	"testing"

	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/repository"
)

func newCartTestEnv(t *testing.T) (*orderTestEnv, *CartService) {
	t.Helper()
	env := newOrderTestEnv(t)
	svc := NewCartService(env.cartRepo, repository.NewProductRepository(env.db))
	return env, svc
}

func TestCartUpsertAndList(t *testing.T) {
	env, svc := newCartTestEnv(t)
	product := env.createProduct(t, "tai-nghe", 100000, 80000, 10)

	if err := svc.UpsertItem(UpsertCartItemInput{UserID: env.user.ID, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	details, err := svc.ListByUser(env.user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("cart lines = %d, want 1", len(details))
	}
	line := details[0]
	if line.Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", line.Quantity)
	}
	if got := line.UnitPrice.String(); got != "80000" {
		t.Fatalf("unit price = %s, want 促销价 80000", got)
	}
	if got := line.ListPrice.String(); got != "100000" {
		t.Fatalf("list price = %s, want 100000", got)
	}
	if got := line.LineTotal.String(); got != "160000" {
		t.Fatalf("line total = %s, want 160000", got)
	}
	if line.Currency != "VND" {
		t.Fatalf("currency = %s, want VND", line.Currency)
	}

	// 再次 upsert 覆盖数量而非累加
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: env.user.ID, ProductID: product.ID, Quantity: 5}); err != nil {
		t.Fatalf("upsert again failed: %v", err)
	}
	details, err = svc.ListByUser(env.user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(details) != 1 || details[0].Quantity != 5 {
		t.Fatalf("cart after upsert = %+v, want single line quantity 5", details)
	}
}

func TestCartUpsertValidation(t *testing.T) {
	env, svc := newCartTestEnv(t)
	product := env.createProduct(t, "tai-nghe", 100000, 0, 10)

	if err := svc.UpsertItem(UpsertCartItemInput{UserID: env.user.ID, ProductID: product.ID, Quantity: 0}); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("zero quantity err = %v, want ErrInvalidOrderItem", err)
	}
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: env.user.ID, ProductID: product.ID + 99, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product err = %v, want ErrProductNotFound", err)
	}

	if err := env.db.Model(product).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: env.user.ID, ProductID: product.ID, Quantity: 1}); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("inactive product err = %v, want ErrProductUnavailable", err)
	}
}

func TestCartListPrunesInactiveProducts(t *testing.T) {
	env, svc := newCartTestEnv(t)
	active := env.createProduct(t, "tai-nghe", 100000, 0, 10)
	retired := env.createProduct(t, "sac-du-phong", 450000, 0, 5)

	if err := svc.UpsertItem(UpsertCartItemInput{UserID: env.user.ID, ProductID: active.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: env.user.ID, ProductID: retired.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := env.db.Model(retired).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	details, err := svc.ListByUser(env.user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(details) != 1 || details[0].ProductID != active.ID {
		t.Fatalf("cart = %+v, want only active product", details)
	}

	// 下架商品已被顺带清出
	items, err := env.cartRepo.ListByUser(env.user.ID)
	if err != nil {
		t.Fatalf("list cart rows failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("cart rows = %d, want 1 after prune", len(items))
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	env, svc := newCartTestEnv(t)
	first := env.createProduct(t, "tai-nghe", 100000, 0, 10)
	second := env.createProduct(t, "sac-du-phong", 450000, 0, 5)

	for _, p := range []*models.Product{first, second} {
		if err := svc.UpsertItem(UpsertCartItemInput{UserID: env.user.ID, ProductID: p.ID, Quantity: 1}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	if err := svc.RemoveItem(env.user.ID, first.ID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	details, err := svc.ListByUser(env.user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(details) != 1 || details[0].ProductID != second.ID {
		t.Fatalf("cart after remove = %+v", details)
	}

	if err := svc.ClearByUser(env.user.ID); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	details, err = svc.ListByUser(env.user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("cart after clear = %+v, want empty", details)
	}
}
