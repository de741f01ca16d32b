package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openagora/agora-backend/internal/config"
	"github.com/openagora/agora-backend/internal/handler"
	"github.com/openagora/agora-backend/internal/middleware"
	"github.com/openagora/agora-backend/internal/migration"
	"github.com/openagora/agora-backend/internal/repository"
	"github.com/openagora/agora-backend/internal/routes"
	"github.com/openagora/agora-backend/internal/service"
	"github.com/openagora/agora-backend/internal/ws"
	"github.com/openagora/agora-backend/pkg/cache"
	"github.com/openagora/agora-backend/pkg/jwt"
	"github.com/openagora/agora-backend/pkg/logger"
	pkgredis "github.com/openagora/agora-backend/pkg/redis"
)

func main() {
	config.LoadDotEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Init()
		logger.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	logger.InitStructured(cfg.Server.Env)
	config.LogResolved(cfg)

	db, err := initDB(cfg)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := migration.Run(db); err != nil {
		logger.Error("Migration failed: %v", err)
		os.Exit(1)
	}

	// Redis is optional: without it the cache no-ops and the hub skips
	// cross-instance fan-out.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(
			cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize,
		)
		if err != nil {
			logger.Warn("Redis unavailable: %v (continuing without cache)", err)
			redisClient = nil
		} else {
			logger.Info("Connected to Redis at %s:%d", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	cacheSvc := cache.NewService(redisClient)

	hub := ws.NewHub(redisClient)
	go hub.Run()
	defer hub.Stop()

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	postRepo := repository.NewPostRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	tagRepo := repository.NewTagRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, jwtManager)
	userSvc := service.NewUserService(userRepo, cacheSvc)
	categorySvc := service.NewCategoryService(categoryRepo, cacheSvc)
	notificationSvc := service.NewNotificationService(notificationRepo, hub)
	threadSvc := service.NewThreadService(threadRepo, categoryRepo, tagRepo, cacheSvc)
	postSvc := service.NewPostService(postRepo, threadRepo, userRepo, notificationSvc, hub)
	reactionSvc := service.NewReactionService(reactionRepo, postRepo, notificationSvc, hub)
	tagSvc := service.NewTagService(tagRepo)

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "agora-backend",
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(router, &routes.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		User:         handler.NewUserHandler(userSvc),
		Category:     handler.NewCategoryHandler(categorySvc),
		Thread:       handler.NewThreadHandler(threadSvc),
		Post:         handler.NewPostHandler(postSvc),
		Reaction:     handler.NewReactionHandler(reactionSvc),
		Tag:          handler.NewTagHandler(tagSvc),
		Notification: handler.NewNotificationHandler(notificationSvc),
		WS:           handler.NewWSHandler(hub, jwtManager),
	}, jwtManager, userRepo)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the reaction repository relies on.
	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}
