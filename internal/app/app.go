package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"post_place_backend/internal/config"
	"post_place_backend/internal/controller"
	"post_place_backend/internal/repository"
	"post_place_backend/internal/service"
	"post_place_backend/pkg/database"
	"post_place_backend/pkg/logger"
	"post_place_backend/pkg/monitoring"
	"post_place_backend/pkg/security"
	"post_place_backend/pkg/tracing"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	mu             sync.RWMutex
	allowedOrigins []string
}

type repositories struct {
	user       *repository.UserRepository
	post       *repository.PostRepository
	comment    *repository.CommentRepository
	friendship *repository.FriendshipRepository
	group      *repository.GroupRepository
	interest   *repository.InterestRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	post       *service.PostService
	friendship *service.FriendshipService
	group      *service.GroupService
	interest   *service.InterestService
	storage    *service.StorageService
	eventHub   *service.EventHub
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	post       *controller.PostController
	friendship *controller.FriendshipController
	group      *controller.GroupController
	interest   *controller.InterestController
	ws         *controller.WSController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		post:       repository.NewPostRepository(db),
		comment:    repository.NewCommentRepository(db),
		friendship: repository.NewFriendshipRepository(db, rdb),
		group:      repository.NewGroupRepository(db),
		interest:   repository.NewInterestRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.post = service.NewPostService(repos.post, repos.comment, s.storage)
	s.friendship = service.NewFriendshipService(repos.friendship, repos.user)
	s.group = service.NewGroupService(repos.group)
	s.interest = service.NewInterestService(repos.interest)

	s.eventHub = service.NewEventHub(rdb)
	go s.eventHub.Run()

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		post:       controller.NewPostController(s.post, s.eventHub),
		friendship: controller.NewFriendshipController(s.friendship, s.eventHub),
		group:      controller.NewGroupController(s.group, s.eventHub),
		interest:   controller.NewInterestController(s.interest),
		ws:         controller.NewWSController(s.eventHub),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(a.currentOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) currentOrigins() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.allowedOrigins
}

// ApplyConfig 配置热更新回调，目前只有 CORS 白名单支持运行时调整
func (a *App) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	a.allowedOrigins = cfg.CORS.AllowedOrigins
	a.mu.Unlock()
	logger.Log.Info("Config reloaded", zap.Strings("allowedOrigins", cfg.CORS.AllowedOrigins))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Redis 不可达时降级为单实例模式：事件只在本进程内广播，好友缓存关闭
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, running without cache and cross-instance events", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config:         cfg,
		DB:             db,
		Redis:          rdb,
		allowedOrigins: cfg.CORS.AllowedOrigins,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("post-place", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 先断开 WebSocket 连接
	if a.services != nil && a.services.eventHub != nil {
		a.services.eventHub.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
