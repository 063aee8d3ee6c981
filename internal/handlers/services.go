package handlers

// 服务目录接口：/services 下的五个 CRUD 操作。

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/Dakotapog/D20-solutions/internal/services"
)

// @Summary      创建服务
// @Description  name/description/price 必填；category、icon_url 缺省时落默认值
// @Tags         services
// @Accept       json
// @Produce      json
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Router       /services [post]
func (h *Handler) createService(c *gin.Context) {
	var req struct {
		Name        *string     `json:"name"`
		Description *string     `json:"description"`
		Price       interface{} `json:"price"`
		Category    string      `json:"category"`
		IconURL     string      `json:"icon_url"`
		Badge       *string     `json:"badge"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil || req.Description == nil || req.Price == nil {
		c.JSON(400, gin.H{"error": "incomplete data to create the service"})
		return
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		c.JSON(400, gin.H{"error": "price must be a valid number"})
		return
	}

	svc, err := h.catalogSvc.Create(c, services.NewServiceInput{
		Name:        *req.Name,
		Description: *req.Description,
		Price:       price,
		Category:    req.Category,
		IconURL:     req.IconURL,
		Badge:       req.Badge,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(201, gin.H{"message": "service created successfully", "service_id": svc.ID})
}

// @Summary      服务列表
// @Tags         services
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /services [get]
func (h *Handler) listServices(c *gin.Context) {
	list, err := h.catalogSvc.List(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for i := range list {
		out = append(out, serviceJSON(&list[i]))
	}
	c.JSON(200, gin.H{"services": out})
}

// @Summary      读取单个服务
// @Tags         services
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]string
// @Router       /services/{id} [get]
func (h *Handler) getService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	svc, err := h.catalogSvc.FindByID(c, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(200, serviceJSON(svc))
}

// @Summary      更新服务（部分字段）
// @Description  仅请求中出现的字段被覆盖；price 非法时整行不变
// @Tags         services
// @Accept       json
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /services/{id} [put]
func (h *Handler) updateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	// 先确认行存在：原系统对缺失 id 的 PUT 返回 404，优先于请求体校验
	if _, err := h.catalogSvc.FindByID(c, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		c.JSON(400, gin.H{"error": "no data to update"})
		return
	}

	var patch services.ServicePatch
	if !decodeString(c, body, "name", &patch.Name) ||
		!decodeString(c, body, "description", &patch.Description) ||
		!decodeString(c, body, "category", &patch.Category) ||
		!decodeString(c, body, "icon_url", &patch.IconURL) {
		return
	}
	if raw, present := body["badge"]; present {
		var badge *string
		if err := json.Unmarshal(raw, &badge); err != nil {
			c.JSON(400, gin.H{"error": "invalid request payload"})
			return
		}
		patch.Badge = &badge
	}
	if raw, present := body["price"]; present {
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			c.JSON(400, gin.H{"error": "invalid request payload"})
			return
		}
		price, err := parsePrice(v)
		if err != nil {
			c.JSON(400, gin.H{"error": "price must be a valid number"})
			return
		}
		patch.Price = &price
	}

	if err := h.catalogSvc.Update(c, id, patch); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "service updated successfully"})
}

// @Summary      删除服务
// @Tags         services
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /services/{id} [delete]
func (h *Handler) deleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalogSvc.Delete(c, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "service deleted successfully"})
}

// decodeString 从请求体取出可选字符串字段；类型不符时写出 400 并返回 false。
func decodeString(c *gin.Context, body map[string]json.RawMessage, key string, dst **string) bool {
	raw, present := body[key]
	if !present {
		return true
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		c.JSON(400, gin.H{"error": "invalid request payload"})
		return false
	}
	*dst = &v
	return true
}
