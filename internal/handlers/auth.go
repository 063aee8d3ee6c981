package handlers

// 演示认证接口：登录比较配置中的固定口令并签发前缀令牌，
// 校验仅做 Bearer 方案与前缀匹配。行为与原系统一致，已知不安全。

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dakotapog/D20-solutions/internal/metrics"
	"github.com/Dakotapog/D20-solutions/internal/services"
)

// @Summary      登录
// @Description  按邮箱查找用户并与固定口令比较，成功后返回演示令牌
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /auth/login [post]
func (h *Handler) authLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "no data sent"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(400, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.userSvc.FindByEmail(c, req.Email)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		h.writeServiceError(c, err)
		return
	}
	// 未知邮箱与口令错误返回同一响应，不向调用方区分两种失败
	if err != nil || req.Password != h.cfg.Auth.Password {
		metrics.Logins.WithLabelValues("failure").Inc()
		c.JSON(401, gin.H{"error": "invalid credentials"})
		return
	}

	metrics.Logins.WithLabelValues("success").Inc()
	c.JSON(200, gin.H{
		"message": "login successful",
		"token":   h.tokenSvc.Issue(user),
		"user":    userJSON(user),
	})
}

// @Summary      令牌校验
// @Description  要求 Authorization: Bearer 头，仅做前缀匹配，不回查用户
// @Tags         auth
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /auth/verify [post]
func (h *Handler) authVerify(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.JSON(401, gin.H{"error": "token missing or malformed"})
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if !h.tokenSvc.Verify(token) {
		c.JSON(401, gin.H{"error": "token invalid or expired"})
		return
	}
	c.JSON(200, gin.H{"message": "token is valid"})
}
