package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
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
	return db
}

func TestOrderNumberFormatAndSequence(t *testing.T) {
	db := openTestDB(t)
	gen := NewOrderNumberGenerator("ORD", repository.NewOrderSequenceRepository(db))

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	first, err := gen.Next(now)
	if err != nil {
		t.Fatalf("generate first order no failed: %v", err)
	}
	if first != "ORD20260829001" {
		t.Fatalf("order no = %s, want ORD20260829001", first)
	}

	second, err := gen.Next(now)
	if err != nil {
		t.Fatalf("generate second order no failed: %v", err)
	}
	if second != "ORD20260829002" {
		t.Fatalf("order no = %s, want ORD20260829002", second)
	}
}

func TestOrderNumberSequenceResetsPerDay(t *testing.T) {
	db := openTestDB(t)
	gen := NewOrderNumberGenerator("ORD", repository.NewOrderSequenceRepository(db))

	day1 := time.Date(2026, 8, 29, 23, 59, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 30, 0, 1, 0, 0, time.Local)

	if _, err := gen.Next(day1); err != nil {
		t.Fatalf("generate day1 order no failed: %v", err)
	}
	no, err := gen.Next(day2)
	if err != nil {
		t.Fatalf("generate day2 order no failed: %v", err)
	}
	if no != "ORD20260830001" {
		t.Fatalf("order no = %s, want ORD20260830001", no)
	}
}

func TestOrderNumberBlankPrefixFallsBack(t *testing.T) {
	db := openTestDB(t)
	gen := NewOrderNumberGenerator("  ", repository.NewOrderSequenceRepository(db))

	no, err := gen.Next(time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("generate order no failed: %v", err)
	}
	if !strings.HasPrefix(no, "ORD") {
		t.Fatalf("order no = %s, want ORD prefix", no)
	}
}
