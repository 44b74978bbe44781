package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"petcare/api"
	apiattach "petcare/api/attach"
	apibooking "petcare/api/booking"
	apicommunity "petcare/api/community"
	apifeedback "petcare/api/feedback"
	"petcare/api/health"
	apiintegral "petcare/api/integral"
	apimall "petcare/api/mall"
	"petcare/api/middleware"
	apipayment "petcare/api/payment"
	apipet "petcare/api/pet"
	apistray "petcare/api/stray"
	apiuser "petcare/api/user"
	apiwallet "petcare/api/wallet"
	paymentapp "petcare/application/payment"
	"petcare/application/scheduler"
	"petcare/config"
	"petcare/infrastructure/cache"
	"petcare/infrastructure/persistence/mysql"
	"petcare/infrastructure/wechatpay"
	"petcare/pkg/logger"
	"petcare/pkg/storage"
	"petcare/pkg/token"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg         *config.Config
	db          *gorm.DB
	storage     storage.Provider
	gateway     paymentapp.Gateway
	controllers []api.RouteRegistrar
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithDB 使用已打开的连接，跳过 MySQL 连接与迁移
func (b *AppBuilder) WithDB(db *gorm.DB) *AppBuilder {
	b.db = db
	return b
}

func (b *AppBuilder) WithStorage(p storage.Provider) *AppBuilder {
	b.storage = p
	return b
}

func (b *AppBuilder) WithGateway(g paymentapp.Gateway) *AppBuilder {
	b.gateway = g
	return b
}

// WithController adds a controller to the app
func (b *AppBuilder) WithController(c api.RouteRegistrar) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

// Build creates the App instance
func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	db := b.db
	if db == nil {
		var err error
		if db, err = b.initDefaultDatabase(ctx); err != nil {
			return nil, err
		}
	}

	var rdb *redis.Client
	if b.cfg.Redis.Enabled {
		var err error
		if rdb, err = cache.InitRedis(ctx, b.cfg.Redis); err != nil {
			return nil, err
		}
		logger.Info("Connected to Redis", zap.String("addr", b.cfg.Redis.Addr))
	}

	provider := b.storage
	if provider == nil {
		var err error
		if provider, err = storage.New(ctx, b.cfg.Storage); err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
	}

	gateway := b.gateway
	if gateway == nil && b.cfg.WechatPay.MchID != "" {
		gateway = wechatpay.NewClient(b.cfg.WechatPay)
	}
	if gateway == nil {
		logger.Warn("WeChat Pay is not configured; payment routes are disabled")
	}

	infra := Infra{
		Tokens:  token.NewManager(b.cfg.JWT),
		Storage: provider,
		Gateway: gateway,
	}
	if rdb != nil {
		infra.Views = cache.NewViewTracker(rdb)
	}

	repos := mysql.NewRepositories(db)
	uowFactory := mysql.NewUnitOfWorkFactory(db, NewRetryConfig(b.cfg))
	services := NewServices(b.cfg, repos, uowFactory, infra)

	loginLimit := middleware.LoginLimit(nil, 0)
	if rdb != nil {
		loginLimit = middleware.LoginLimit(cache.NewLimiter(rdb, "login"), b.cfg.Server.RateLimit.LoginPerMinute)
	}

	controllers := []api.RouteRegistrar{
		apiuser.NewController(services.User, loginLimit),
		apipet.NewController(services.Pet),
		apiwallet.NewController(services.Wallet),
		apibooking.NewController(services.Booking),
		apicommunity.NewController(services.Community),
		apimall.NewController(services.Mall),
		apiintegral.NewController(services.Integral),
		apistray.NewController(services.Stray),
		apifeedback.NewController(services.Feedback),
		apiattach.NewController(services.Attach),
	}
	if services.Payment != nil {
		controllers = append(controllers, apipayment.NewController(services.Payment))
	}
	controllers = append(controllers, b.controllers...)

	deps := map[string]health.Pinger{
		"database": health.PingFunc(func(ctx context.Context) error { return mysql.Ping(ctx, db) }),
	}
	if rdb != nil {
		deps["redis"] = health.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	auth := middleware.NewAuth(infra.Tokens, services.User)
	router := api.NewRouter(b.cfg, auth, health.NewController(b.cfg, deps), controllers...)
	if local, ok := provider.(*storage.LocalStorage); ok {
		router.ServeUploads(uploadPath(b.cfg.Storage.PublicURL), local.Dir())
	}
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	app := &App{
		config:   b.cfg,
		router:   router,
		server:   server,
		db:       db,
		rdb:      rdb,
		services: services,
	}

	if b.cfg.Worker.Enabled {
		dispatcher, err := NewEventDispatcher(services)
		if err != nil {
			return nil, fmt.Errorf("register event handlers: %w", err)
		}
		worker, err := mysql.NewOutboxWorker(repos.Outbox, dispatcher,
			b.cfg.Worker.PollInterval, b.cfg.Worker.BatchSize, b.cfg.Worker.MaxRetries)
		if err != nil {
			return nil, fmt.Errorf("create outbox worker: %w", err)
		}
		app.worker = worker
	}
	if b.cfg.Scheduler.Enabled {
		app.scheduler = scheduler.New(b.cfg.Scheduler, b.cfg.Worker.Retention, services.Mall, repos.Outbox)
	}

	return app, nil
}

func (b *AppBuilder) initDefaultDatabase(ctx context.Context) (*gorm.DB, error) {
	logger.Info("Using MySQL/GORM persistence layer")

	db, err := NewMySQLConfig(b.cfg).Connect()
	if err != nil {
		return nil, err
	}
	if err := mysql.Ping(ctx, db); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	logger.Info("Connected to MySQL successfully")

	// Auto migration in development environment
	if b.cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// uploadPath http://host/uploads -> /uploads
func uploadPath(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return ""
	}
	return u.Path
}
