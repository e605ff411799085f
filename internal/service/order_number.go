package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/vietcart-next/internal/constants"
	"github.com/vietcart-next/internal/repository"
)

// OrderNumberGenerator 订单号生成器：前缀 + 日期 + 当日三位序号。
// 序号由数据库日序列表原子分配，跨进程并发安全；
// 当日订单超过 999 时序号自然扩展为四位及以上。
type OrderNumberGenerator struct {
	prefix  string
	seqRepo repository.OrderSequenceRepository
}

// NewOrderNumberGenerator 创建订单号生成器
func NewOrderNumberGenerator(prefix string, seqRepo repository.OrderSequenceRepository) *OrderNumberGenerator {
	trimmed := strings.TrimSpace(prefix)
	if trimmed == "" {
		trimmed = constants.OrderNoPrefix
	}
	return &OrderNumberGenerator{prefix: trimmed, seqRepo: seqRepo}
}

// Next 生成下一个订单号，如 ORD20260829001。
func (g *OrderNumberGenerator) Next(now time.Time) (string, error) {
	dateKey := now.Format(constants.OrderNoDateLayout)
	seq, err := g.seqRepo.Next(dateKey)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s%03d", g.prefix, dateKey, seq), nil
}

// WithSequenceRepo 返回绑定到指定序列仓库的生成器（用于事务内分配）。
func (g *OrderNumberGenerator) WithSequenceRepo(seqRepo repository.OrderSequenceRepository) *OrderNumberGenerator {
	if seqRepo == nil {
		return g
	}
	return &OrderNumberGenerator{prefix: g.prefix, seqRepo: seqRepo}
}
