package handlers

// 用户目录接口：/users 下的五个 CRUD 操作。

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/Dakotapog/D20-solutions/internal/services"
)

// @Summary      创建用户
// @Description  username/email 必填；任一字段与既有行重复时返回 409
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == nil || req.Email == nil {
		c.JSON(400, gin.H{"error": "incomplete data to create the user"})
		return
	}
	u, err := h.userSvc.Create(c, *req.Username, *req.Email)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(201, gin.H{"message": "user created successfully", "user_id": u.ID})
}

// @Summary      用户列表
// @Tags         users
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /users [get]
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.userSvc.List(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userJSON(&users[i]))
	}
	c.JSON(200, gin.H{"users": out})
}

// @Summary      读取单个用户
// @Tags         users
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]string
// @Router       /users/{id} [get]
func (h *Handler) getUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := h.userSvc.FindByID(c, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(200, userJSON(u))
}

// @Summary      更新用户（部分字段）
// @Description  仅请求中出现的字段被覆盖；不对新值重新校验唯一性（与原系统一致）
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.userSvc.FindByID(c, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		c.JSON(400, gin.H{"error": "no data to update"})
		return
	}
	var patch services.UserPatch
	if !decodeString(c, body, "username", &patch.Username) ||
		!decodeString(c, body, "email", &patch.Email) {
		return
	}

	if err := h.userSvc.Update(c, id, patch); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "user updated successfully"})
}

// @Summary      删除用户
// @Tags         users
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.userSvc.Delete(c, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "user deleted successfully"})
}
