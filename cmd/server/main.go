package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitfantasy/nimo-mes/internal/config"
	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/handler"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/bitfantasy/nimo-mes/internal/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting nimo-mes service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// 迁移MES表
	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to auto-migrate MES tables", zap.Error(err))
	}
	zapLogger.Info("MES database migration completed")

	// 初始化Redis（结存视图缓存）
	rdb := initRedis(cfg.Redis)

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb)
	handlers := handler.NewHandlers(services)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("MES Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down MES server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("MES Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Host == "" {
		// 没配Redis就不挂缓存
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(router *gin.Engine, handlers *handler.Handlers, cfg *config.Config) {
	// 健康检查
	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "nimo-mes"})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "nimo-mes"})
	})

	// 版本信息
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":    "nimo-mes",
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// MES API v1
	v1 := router.Group("/api/v1/mes")
	v1.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		// 零件（只读）
		details := v1.Group("/details")
		{
			details.GET("", handlers.Detail.ListDetails)
			details.GET("/:id", handlers.Detail.GetDetail)
		}

		// 车间（只读）
		workshops := v1.Group("/workshops")
		{
			workshops.GET("", handlers.Detail.ListWorkshops)
			workshops.GET("/:id", handlers.Detail.GetWorkshop)
		}

		// 转运单
		reports := v1.Group("/reports")
		{
			reports.GET("", handlers.Report.List)
			reports.POST("", handlers.Report.Create)
			reports.GET("/:id", handlers.Report.Get)
			reports.PUT("/:id", handlers.Report.Update)
			reports.DELETE("/:id", handlers.Report.Delete)
		}
		reportLines := v1.Group("/report-lines")
		{
			reportLines.GET("", handlers.Report.ListLines)
			reportLines.POST("", handlers.Report.CreateLine)
			reportLines.GET("/:id", handlers.Report.GetLine)
			reportLines.PUT("/:id", handlers.Report.UpdateLine)
			reportLines.DELETE("/:id", handlers.Report.DeleteLine)
		}

		// 盘存清单
		vedomosts := v1.Group("/vedomosts")
		{
			vedomosts.GET("", handlers.Vedomost.List)
			vedomosts.POST("", handlers.Vedomost.Create)
			vedomosts.GET("/:id", handlers.Vedomost.Get)
			vedomosts.PUT("/:id", handlers.Vedomost.Update)
			vedomosts.DELETE("/:id", handlers.Vedomost.Delete)
			vedomosts.POST("/:id/exploded-lines", handlers.Vedomost.AddExplodedLines)
		}
		vedomostLines := v1.Group("/vedomost-lines")
		{
			vedomostLines.GET("", handlers.Vedomost.ListLines)
			vedomostLines.POST("", handlers.Vedomost.CreateLine)
			vedomostLines.GET("/:id", handlers.Vedomost.GetLine)
			vedomostLines.PUT("/:id", handlers.Vedomost.UpdateLine)
			vedomostLines.DELETE("/:id", handlers.Vedomost.DeleteLine)
		}

		// 装入说明
		usings := v1.Group("/using-instructions")
		{
			usings.GET("", handlers.Using.List)
			usings.POST("", handlers.Using.Create)
			usings.GET("/:id", handlers.Using.Get)
			usings.DELETE("/:id", handlers.Using.Delete)
			usings.POST("/:id/lines", handlers.Using.AddLine)
		}
		v1.DELETE("/using-lines/:id", handlers.Using.DeleteLine)

		// 生产大纲
		programs := v1.Group("/programs")
		{
			programs.GET("", handlers.Program.List)
			programs.POST("", handlers.Program.Create)
			programs.GET("/:id", handlers.Program.Get)
			programs.PUT("/:id", handlers.Program.Update)
			programs.DELETE("/:id", handlers.Program.Delete)
			programs.POST("/:id/lines", handlers.Program.AddLine)
		}
		v1.DELETE("/program-lines/:id", handlers.Program.DeleteLine)

		// 计算视图
		v1.GET("/leftovers", handlers.Leftover.Leftovers)
		v1.GET("/accounting", handlers.Accounting.Accounting)
		v1.GET("/accounting/export", handlers.Accounting.Export)
	}
}
