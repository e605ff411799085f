package service

import (
	"errors"
	"testing"

	"github.com/vietcart-next/internal/constants"
	"github.com/vietcart-next/internal/models"
)

func newTestPricingService() *PricingService {
	return NewPricingService(PricingOptions{
		FreeShippingThreshold: 500000,
		StandardShippingFee:   15000,
		FastShippingFee:       30000,
	})
}

func saleProduct(id uint, list, sale int64, stock int) *models.Product {
	p := &models.Product{
		ID:            id,
		Name:          "商品",
		Price:         models.NewMoneyFromInt(list),
		StockQuantity: stock,
		IsActive:      true,
	}
	if sale > 0 {
		m := models.NewMoneyFromInt(sale)
		p.SalePrice = &m
	}
	return p
}

func TestPricingCalculateWithoutSalePrice(t *testing.T) {
	svc := newTestPricingService()
	result, err := svc.Calculate([]PricingLine{
		{Product: saleProduct(1, 100000, 0, 10), Quantity: 3},
	}, constants.ShippingMethodStandard, nil)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if got := result.Subtotal.String(); got != "300000" {
		t.Fatalf("subtotal = %s, want 300000", got)
	}
	if got := result.DiscountAmount.String(); got != "0" {
		t.Fatalf("discount = %s, want 0", got)
	}
	if got := result.ShippingFee.String(); got != "15000" {
		t.Fatalf("shipping fee = %s, want 15000", got)
	}
	if got := result.TotalAmount.String(); got != "315000" {
		t.Fatalf("total = %s, want 315000", got)
	}
}

func TestPricingCalculateWithSaleDiscount(t *testing.T) {
	svc := newTestPricingService()
	result, err := svc.Calculate([]PricingLine{
		{Product: saleProduct(1, 100000, 80000, 10), Quantity: 2},
	}, constants.ShippingMethodStandard, nil)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if got := result.Subtotal.String(); got != "160000" {
		t.Fatalf("subtotal = %s, want 160000", got)
	}
	if got := result.DiscountAmount.String(); got != "40000" {
		t.Fatalf("discount = %s, want 40000", got)
	}
	if got := result.TotalAmount.String(); got != "175000" {
		t.Fatalf("total = %s, want 175000", got)
	}
}

func TestPricingFreeShippingThreshold(t *testing.T) {
	svc := newTestPricingService()

	// 恰好达到门槛，免运费
	result, err := svc.Calculate([]PricingLine{
		{Product: saleProduct(1, 250000, 0, 10), Quantity: 2},
	}, constants.ShippingMethodFast, nil)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if got := result.ShippingFee.String(); got != "0" {
		t.Fatalf("shipping fee = %s, want 0", got)
	}
	if got := result.TotalAmount.String(); got != "500000" {
		t.Fatalf("total = %s, want 500000", got)
	}

	// 低于门槛，快速配送收费
	result, err = svc.Calculate([]PricingLine{
		{Product: saleProduct(1, 250000, 0, 10), Quantity: 1},
	}, constants.ShippingMethodFast, nil)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if got := result.ShippingFee.String(); got != "30000" {
		t.Fatalf("shipping fee = %s, want 30000", got)
	}
}

func TestPricingShippingFeeOverride(t *testing.T) {
	svc := newTestPricingService()

	override := models.NewMoneyFromInt(5000)
	result, err := svc.Calculate([]PricingLine{
		{Product: saleProduct(1, 100000, 0, 10), Quantity: 1},
	}, constants.ShippingMethodStandard, &override)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if got := result.ShippingFee.String(); got != "5000" {
		t.Fatalf("shipping fee = %s, want override 5000", got)
	}
	if got := result.TotalAmount.String(); got != "105000" {
		t.Fatalf("total = %s, want 105000", got)
	}

	negative := models.NewMoneyFromInt(-1)
	if _, err := svc.Calculate([]PricingLine{
		{Product: saleProduct(1, 100000, 0, 10), Quantity: 1},
	}, constants.ShippingMethodStandard, &negative); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative override err = %v, want ErrInvalidInput", err)
	}
}

func TestPricingInvalidShippingMethod(t *testing.T) {
	svc := newTestPricingService()
	_, err := svc.Calculate([]PricingLine{
		{Product: saleProduct(1, 100000, 0, 10), Quantity: 1},
	}, "drone", nil)
	if !errors.Is(err, ErrInvalidShipping) {
		t.Fatalf("err = %v, want ErrInvalidShipping", err)
	}
}

func TestPricingInvalidLine(t *testing.T) {
	svc := newTestPricingService()
	if _, err := svc.Calculate([]PricingLine{{Product: nil, Quantity: 1}}, constants.ShippingMethodStandard, nil); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("nil product err = %v, want ErrInvalidOrderItem", err)
	}
	if _, err := svc.Calculate([]PricingLine{{Product: saleProduct(1, 100000, 0, 10), Quantity: 0}}, constants.ShippingMethodStandard, nil); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("zero quantity err = %v, want ErrInvalidOrderItem", err)
	}
}
