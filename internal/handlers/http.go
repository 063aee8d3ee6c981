package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/Dakotapog/D20-solutions/internal/config"
	"github.com/Dakotapog/D20-solutions/internal/middlewares"
	"github.com/Dakotapog/D20-solutions/internal/services"
)

// Handler 聚合全部 HTTP 处理器所需的依赖（配置与各领域服务）。
type Handler struct {
	cfg        config.Config
	userSvc    *services.UserService
	catalogSvc *services.CatalogService
	tokenSvc   *services.TokenService
	rdb        *redis.Client
}

// New 构造 Handler；rdb 可为 nil（关闭限流）。
func New(cfg config.Config, userSvc *services.UserService, catalogSvc *services.CatalogService, tokenSvc *services.TokenService, rdb *redis.Client) *Handler {
	return &Handler{cfg: cfg, userSvc: userSvc, catalogSvc: catalogSvc, tokenSvc: tokenSvc, rdb: rdb}
}

// RegisterRoutes 注册全部业务路由。
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/", h.home)

	auth := r.Group("/auth")
	auth.POST("/login",
		middlewares.RateLimit(h.rdb, "login", h.cfg.Limits.LoginPerMinute, h.cfg.Limits.Window,
			func(c *gin.Context) string { return c.ClientIP() }),
		h.authLogin)
	auth.POST("/verify", h.authVerify)

	svc := r.Group("/services")
	svc.POST("", h.createService)
	svc.GET("", h.listServices)
	svc.GET("/:id", h.getService)
	svc.PUT("/:id", h.updateService)
	svc.DELETE("/:id", h.deleteService)

	usr := r.Group("/users")
	usr.POST("", h.createUser)
	usr.GET("", h.listUsers)
	usr.GET("/:id", h.getUser)
	usr.PUT("/:id", h.updateUser)
	usr.DELETE("/:id", h.deleteUser)
}

// @Summary      健康检查
// @Tags         meta
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok", "message": "server is running"})
}

// @Summary      欢迎页
// @Tags         meta
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func (h *Handler) home(c *gin.Context) {
	c.JSON(200, gin.H{"message": "Welcome to the D20 Solutions backend!"})
}
