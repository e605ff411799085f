package provider

import (
	"github.com/vietcart-next/internal/authz"
	"github.com/vietcart-next/internal/cache"
	"github.com/vietcart-next/internal/config"
	"github.com/vietcart-next/internal/logger"
	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/queue"
	"github.com/vietcart-next/internal/repository"
	"github.com/vietcart-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	AddressRepo       repository.AddressRepository
	CategoryRepo      repository.CategoryRepository
	ProductRepo       repository.ProductRepository
	CartRepo          repository.CartRepository
	OrderRepo         repository.OrderRepository
	OrderSequenceRepo repository.OrderSequenceRepository
	StatusHistoryRepo repository.StatusHistoryRepository
	AuditLogRepo      repository.AuditLogRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	UserAuthService *service.UserAuthService
	AddressService  *service.AddressService
	CategoryService *service.CategoryService
	ProductService  *service.ProductService
	CartService     *service.CartService
	PricingService  *service.PricingService
	OrderService    *service.OrderService
	AuditService    *service.AuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.OrderSequenceRepo = repository.NewOrderSequenceRepository(db)
	c.StatusHistoryRepo = repository.NewStatusHistoryRepository(db)
	c.AuditLogRepo = repository.NewAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.OrderRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.AuditService = service.NewAuditService(c.AuditLogRepo, c.QueueClient)
	c.PricingService = service.NewPricingService(service.PricingOptions{
		FreeShippingThreshold: c.Config.Order.FreeShippingThreshold,
		StandardShippingFee:   c.Config.Order.StandardShippingFee,
		FastShippingFee:       c.Config.Order.FastShippingFee,
	})
	numberGen := service.NewOrderNumberGenerator(c.Config.Order.NumberPrefix, c.OrderSequenceRepo)
	reconciler := service.NewCartReconciler(c.CartRepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.ProductRepo,
		c.UserRepo,
		c.AddressRepo,
		c.OrderSequenceRepo,
		c.StatusHistoryRepo,
		c.PricingService,
		numberGen,
		reconciler,
		c.AuditService,
		c.QueueClient,
	)
}
