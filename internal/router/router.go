package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vietcart-next/internal/authz"
	"github.com/vietcart-next/internal/cache"
	"github.com/vietcart-next/internal/config"
	"github.com/vietcart-next/internal/constants"
	adminhandlers "github.com/vietcart-next/internal/http/handlers/admin"
	publichandlers "github.com/vietcart-next/internal/http/handlers/public"
	"github.com/vietcart-next/internal/http/response"
	"github.com/vietcart-next/internal/logger"
	"github.com/vietcart-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的商品图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/categories", publicHandler.GetCategories)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.UpsertCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.GET("/addresses", publicHandler.ListAddresses)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.PUT("/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/addresses/:id", publicHandler.DeleteAddress)
			user.POST("/addresses/:id/default", publicHandler.SetDefaultAddress)

			user.POST("/checkout", publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:order_no", publicHandler.GetOrderByOrderNo)
			user.POST("/orders/:order_no/cancel", publicHandler.CancelOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetCurrentAdmin)
				authorized.PUT("/password", adminHandler.ChangeAdminPassword)

				// 订单管理
				authorized.GET("/orders", adminHandler.ListAdminOrders)
				authorized.GET("/orders/:order_no", adminHandler.GetAdminOrder)
				authorized.PATCH("/orders/:order_no/status", adminHandler.UpdateOrderStatus)
				authorized.POST("/orders/:order_no/confirm-payment", adminHandler.ConfirmOrderPayment)

				// 商品管理
				authorized.GET("/products", adminHandler.ListAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateAdminProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateAdminProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteAdminProduct)

				// 分类管理
				authorized.GET("/categories", adminHandler.ListAdminCategories)
				authorized.POST("/categories", adminHandler.CreateAdminCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateAdminCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteAdminCategory)

				// 用户管理
				authorized.GET("/users", adminHandler.ListAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)

				// 审计日志
				authorized.GET("/audit-logs", adminHandler.ListAuditLogs)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/policies", adminHandler.GrantRolePolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeRolePolicy)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
				authorized.GET("/authz/admins/:id/policies", adminHandler.GetAdminRolePolicies)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
