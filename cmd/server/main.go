package main

// @title           D20 Solutions Catalog API
// @version         0.1.0
// @description     基于 Go(Gin) 的服务目录与用户目录后端：服务/用户 CRUD、演示登录与令牌校验。
// @schemes         http https
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/Dakotapog/D20-solutions/internal/config"
	"github.com/Dakotapog/D20-solutions/internal/handlers"
	"github.com/Dakotapog/D20-solutions/internal/metrics"
	"github.com/Dakotapog/D20-solutions/internal/middlewares"
	"github.com/Dakotapog/D20-solutions/internal/services"
	"github.com/Dakotapog/D20-solutions/internal/storage"
)

// main 为服务入口：加载配置、初始化日志/存储/服务、注册路由并启动 HTTP 服务。
func main() {
	// 配置结构化日志格式
	log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	// 加载配置（以配置文件为主，配合内置默认值）
	cfg := config.Load()
	if cfg.Env == "prod" && cfg.Auth.Password == "adminpass" {
		// 登录方案本身即为演示用途；生产部署至少不应保留默认口令
		log.Warn("default demo password in prod; set auth.password in config.yaml")
	}
	log.WithFields(log.Fields{
		"env":       cfg.Env,
		"http_addr": cfg.HTTPAddr,
		"driver":    cfg.Storage.Driver,
		"mysql_dsn": cfg.Storage.MySQL.DSNMasked(),
		"redis":     cfg.Redis.Enable,
	}).Info("configuration loaded")

	// 初始化存储（建表幂等）并写入种子数据
	db, err := storage.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer storage.Close(db)

	if err := storage.Seed(context.Background(), db); err != nil {
		log.WithError(err).Fatal("seed database")
	}

	// Redis 可选：仅用于登录限流
	var rdb *redis.Client
	if cfg.Redis.Enable {
		rdb, err = storage.InitRedis(cfg)
		if err != nil {
			log.WithError(err).Fatal("failed to connect redis")
		}
		defer func() { _ = rdb.Close() }()
	}

	// 初始化领域服务
	userSvc := services.NewUserService(db)
	catalogSvc := services.NewCatalogService(db)
	tokenSvc := services.NewTokenService()

	// HTTP 路由与中间件
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.SecurityHeaders(cfg))
	router.Use(middlewares.CORS(cfg))
	router.Use(metrics.Handler())

	// 装载 HTTP 处理器
	h := handlers.New(cfg, userSvc, catalogSvc, tokenSvc, rdb)
	h.RegisterRoutes(router)
	metrics.Expose(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.WithFields(log.Fields{
			"addr":        cfg.HTTPAddr,
			"login_url":   "http://" + cfg.HTTPAddr + "/auth/login",
			"admin_email": storage.AdminEmail,
		}).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()

	// 优雅退出
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	} else {
		log.Info("server stopped")
	}
}
