package main

import (
	"github.com/vietcart-next/internal/config"
	"github.com/vietcart-next/internal/logger"
	"github.com/vietcart-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "dien-thoai", Name: "Điện thoại", SortOrder: 1},
		{Slug: "gia-dung", Name: "Đồ gia dụng", SortOrder: 2},
		{Slug: "phu-kien", Name: "Phụ kiện", SortOrder: 3},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"dien-thoai", "gia-dung", "phu-kien"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	salePrice := models.NewMoneyFromInt(18990000)

	// 添加商品
	products := []models.Product{
		{
			CategoryID:    categoryIDs["dien-thoai"],
			Slug:          "smartphone-pro-256gb",
			SKU:           "VC-DT-0001",
			Name:          "Smartphone Pro 256GB",
			Description:   "Màn hình OLED 6.7 inch, camera 48MP, pin 5000mAh.",
			Price:         models.NewMoneyFromInt(21990000),
			SalePrice:     &salePrice,
			StockQuantity: 50,
			ImageURL:      "https://images.unsplash.com/photo-1510557880182-3d4d3cba35a5?w=800",
			IsActive:      true,
			SortOrder:     1,
		},
		{
			CategoryID:    categoryIDs["gia-dung"],
			Slug:          "noi-chien-khong-dau-5l",
			SKU:           "VC-GD-0001",
			Name:          "Nồi chiên không dầu 5L",
			Description:   "Công suất 1500W, 8 chế độ nấu cài sẵn.",
			Price:         models.NewMoneyFromInt(1590000),
			StockQuantity: 120,
			ImageURL:      "https://images.unsplash.com/photo-1585515320310-259814833e62?w=800",
			IsActive:      true,
			SortOrder:     2,
		},
		{
			CategoryID:    categoryIDs["phu-kien"],
			Slug:          "tai-nghe-bluetooth",
			SKU:           "VC-PK-0001",
			Name:          "Tai nghe Bluetooth",
			Description:   "Chống ồn chủ động, pin 24 giờ.",
			Price:         models.NewMoneyFromInt(890000),
			StockQuantity: 200,
			ImageURL:      "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
			IsActive:      true,
			SortOrder:     3,
		},
		{
			CategoryID:    categoryIDs["phu-kien"],
			Slug:          "sac-du-phong-20000mah",
			SKU:           "VC-PK-0002",
			Name:          "Sạc dự phòng 20000mAh",
			Description:   "Sạc nhanh 18W, hai cổng USB.",
			Price:         models.NewMoneyFromInt(450000),
			StockQuantity: 300,
			ImageURL:      "https://images.unsplash.com/photo-1609592424109-dd9a1e1a5b5a?w=800",
			IsActive:      true,
			SortOrder:     4,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 添加演示用户
	var existingUser models.User
	if err := models.DB.Where("email = ?", "demo@vietcart.local").First(&existingUser).Error; err != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
		if hashErr != nil {
			stdLog.Printf("Failed to hash demo password: %v", hashErr)
		} else {
			user := models.User{
				Email:        "demo@vietcart.local",
				PasswordHash: string(hash),
				DisplayName:  "Demo User",
				Phone:        "0901234567",
				Status:       "active",
			}
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create demo user: %v", err)
			} else {
				stdLog.Printf("Created demo user: %s", user.Email)
			}
		}
	} else {
		stdLog.Printf("Demo user already exists: %s", existingUser.Email)
	}

	stdLog.Printf("Seed completed")
}
