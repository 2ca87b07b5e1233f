package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gathered_backend/internal/config"
	"gathered_backend/internal/controller"
	"gathered_backend/internal/repository"
	"gathered_backend/internal/service"
	"gathered_backend/pkg/database"
	"gathered_backend/pkg/logger"
	"gathered_backend/pkg/monitoring"
	"gathered_backend/pkg/security"
	"gathered_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services *services
}

type repositories struct {
	user       *repository.UserRepository
	group      *repository.GroupRepository
	event      *repository.EventRepository
	devotional *repository.DevotionalRepository
	streak     *repository.StreakRepository
	activity   *repository.ActivityLogRepository
	badge      *repository.BadgeRepository
	pref       *repository.NotificationPreferenceRepository
	chat       *repository.ChatRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	storage      *service.StorageService
	group        *service.GroupService
	event        *service.EventService
	devotional   *service.DevotionalService
	badge        *service.BadgeService
	gamification *service.GamificationService
	nudgePlanner *service.NudgePlanner
	chat         *service.ChatService
	chatHub      *service.ChatHub
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	group        *controller.GroupController
	event        *controller.EventController
	devotional   *controller.DevotionalController
	gamification *controller.GamificationController
	chat         *controller.ChatController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		group:      repository.NewGroupRepository(db),
		event:      repository.NewEventRepository(db),
		devotional: repository.NewDevotionalRepository(db),
		streak:     repository.NewStreakRepository(db),
		activity:   repository.NewActivityLogRepository(db),
		badge:      repository.NewBadgeRepository(db),
		pref:       repository.NewNotificationPreferenceRepository(db),
		chat:       repository.NewChatRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)

	s.nudgePlanner = service.NewNudgePlanner(cfg.Nudge.Hour, nil)
	s.user = service.NewUserService(repos.user, repos.pref, s.nudgePlanner)

	s.group = service.NewGroupService(repos.group, repos.user)
	s.event = service.NewEventService(repos.event, repos.group, rdb)
	s.devotional = service.NewDevotionalService(repos.devotional)

	s.badge = service.NewBadgeService(repos.badge, repos.streak, repos.activity, repos.user)
	s.gamification = service.NewGamificationService(repos.streak, repos.activity, repos.user, s.badge, rdb)

	s.chatHub = service.NewChatHub(rdb, repos.chat, repos.group)
	go s.chatHub.Run()

	s.chat = service.NewChatService(repos.chat, repos.group)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth, s.user, s.gamification),
		user:         controller.NewUserController(s.user, s.storage),
		group:        controller.NewGroupController(s.group),
		event:        controller.NewEventController(s.event, s.group),
		devotional:   controller.NewDevotionalController(s.devotional, s.storage),
		gamification: controller.NewGamificationController(s.gamification, s.badge),
		chat:         controller.NewChatController(s.chat, s.chatHub),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
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

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("gathered-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// ApplyConfig picks up the runtime-tunable settings from a reloaded
// config file. Settings baked into running middleware need a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	if a.services != nil && a.services.nudgePlanner != nil {
		a.services.nudgePlanner.SetNudgeHour(cfg.Nudge.Hour)
	}
	logger.Log.Info("config reloaded", zap.Int("nudgeHour", cfg.Nudge.Hour))
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Disarm pending nudge timers and close websocket connections before
	// the HTTP listener goes away.
	if a.services != nil {
		if a.services.nudgePlanner != nil {
			a.services.nudgePlanner.Stop()
		}
		if a.services.chatHub != nil {
			a.services.chatHub.Stop()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
