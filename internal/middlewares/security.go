package middlewares

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dakotapog/D20-solutions/internal/config"
)

// SecurityHeaders 设置通用的安全相关响应头（受配置控制）。
func SecurityHeaders(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		// 若请求经由 HTTPS（直连或反代）并且配置开启 HSTS，则设置 Strict-Transport-Security。
		if (c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https") && cfg.Security.HSTS.Enabled {
			v := fmt.Sprintf("max-age=%d", cfg.Security.HSTS.MaxAgeSeconds)
			if cfg.Security.HSTS.IncludeSubdomains {
				v += "; includeSubDomains"
			}
			c.Header("Strict-Transport-Security", v)
		}
		c.Next()
	}
}

// CORS 按配置放行跨域请求；origins 为空时允许任意来源（与原前端部署方式一致），
// 放行 Content-Type 与 Authorization 两个请求头。
func CORS(cfg config.Config) gin.HandlerFunc {
	allowed := cfg.CORS.AllowedOrigins
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if len(allowed) == 0 {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				for _, o := range allowed {
					if strings.EqualFold(o, origin) {
						c.Header("Access-Control-Allow-Origin", origin)
						c.Header("Vary", "Origin")
						break
					}
				}
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
