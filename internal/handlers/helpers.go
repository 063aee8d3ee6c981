package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Dakotapog/D20-solutions/internal/services"
	"github.com/Dakotapog/D20-solutions/internal/storage"
)

// parseID 解析路径参数中的数字 id；非法时返回 false 并已写出 404。
// 原系统的路由约束 <int:id> 使非数字路径直接 404，此处保持同样的对外表现。
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(404, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

var errBadPrice = errors.New("bad price")

// parsePrice 接受 JSON number 或数字字符串，返回有限浮点数。
func parsePrice(v interface{}) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, errBadPrice
		}
		f = parsed
	default:
		return 0, errBadPrice
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errBadPrice
	}
	return f, nil
}

// writeServiceError 将领域错误映射为 HTTP 状态码；未识别的错误
// 记录到运维日志并统一返回不泄露内部细节的 500。
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(404, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(409, gin.H{"error": "user or email already exists"})
	default:
		log.WithError(err).WithField("request_id", c.GetString("request_id")).Error("request failed")
		c.JSON(500, gin.H{"error": "internal server error"})
	}
}

// userJSON 序列化用户的公开字段。
func userJSON(u *storage.User) gin.H {
	return gin.H{"id": u.ID, "username": u.Username, "email": u.Email}
}

// serviceJSON 序列化服务行的全部七个字段；badge 为空时输出 null。
func serviceJSON(s *storage.Service) gin.H {
	return gin.H{
		"id":          s.ID,
		"name":        s.Name,
		"description": s.Description,
		"price":       s.Price,
		"category":    s.Category,
		"icon_url":    s.IconURL,
		"badge":       s.Badge,
	}
}
