package service

import (
	"github.com/vietcart-next/internal/constants"
	"github.com/vietcart-next/internal/models"

	"github.com/shopspring/decimal"
)

// PricingOptions 计价参数（来自配置）
type PricingOptions struct {
	FreeShippingThreshold int64 // 免运费门槛（VND）
	StandardShippingFee   int64 // 标准配送运费（VND）
	FastShippingFee       int64 // 快速配送运费（VND）
}

// PricingLine 计价输入行：下单时商品快照与数量
type PricingLine struct {
	Product  *models.Product
	Quantity int
}

// PricingResult 计价结果
type PricingResult struct {
	Subtotal       models.Money `json:"subtotal"`        // 商品小计（生效单价×数量之和）
	DiscountAmount models.Money `json:"discount_amount"` // 促销优惠（标价与生效单价差额之和）
	ShippingFee    models.Money `json:"shipping_fee"`    // 运费
	TotalAmount    models.Money `json:"total_amount"`    // 实付金额
}

// PricingService 订单计价服务
type PricingService struct {
	options PricingOptions
}

// NewPricingService 创建计价服务
func NewPricingService(options PricingOptions) *PricingService {
	return &PricingService{options: options}
}

// Calculate 计算订单金额。
// 单价取商品生效价（有促销价时用促销价），优惠为标价与生效价的差额；
// 商品小计达到免运费门槛时运费为 0，否则按配送方式收取固定运费；
// feeOverride 非空时直接采用给定运费，不再按配送方式计算。
func (s *PricingService) Calculate(lines []PricingLine, shippingMethod string, feeOverride *models.Money) (*PricingResult, error) {
	subtotal := decimal.Zero
	discount := decimal.Zero

	for _, line := range lines {
		if line.Product == nil || line.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		effective := line.Product.EffectivePrice().Decimal
		list := line.Product.Price.Decimal

		subtotal = subtotal.Add(effective.Mul(qty))
		if list.GreaterThan(effective) {
			discount = discount.Add(list.Sub(effective).Mul(qty))
		}
	}

	var fee decimal.Decimal
	if feeOverride != nil {
		if feeOverride.Decimal.IsNegative() {
			return nil, ErrInvalidInput
		}
		fee = feeOverride.Decimal.Round(0)
	} else {
		computed, err := s.shippingFee(subtotal, shippingMethod)
		if err != nil {
			return nil, err
		}
		fee = computed
	}

	return &PricingResult{
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		DiscountAmount: models.NewMoneyFromDecimal(discount),
		ShippingFee:    models.NewMoneyFromDecimal(fee),
		TotalAmount:    models.NewMoneyFromDecimal(subtotal.Add(fee)),
	}, nil
}

func (s *PricingService) shippingFee(subtotal decimal.Decimal, shippingMethod string) (decimal.Decimal, error) {
	if subtotal.GreaterThanOrEqual(decimal.NewFromInt(s.options.FreeShippingThreshold)) {
		return decimal.Zero, nil
	}
	switch shippingMethod {
	case constants.ShippingMethodStandard:
		return decimal.NewFromInt(s.options.StandardShippingFee), nil
	case constants.ShippingMethodFast:
		return decimal.NewFromInt(s.options.FastShippingFee), nil
	default:
		return decimal.Zero, ErrInvalidShipping
	}
}
