package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Dakotapog/D20-solutions/internal/config"
	"github.com/Dakotapog/D20-solutions/internal/services"
	"github.com/Dakotapog/D20-solutions/internal/storage"
)

// newTestEnv 构造内存 SQLite 上的完整路由与种子数据。
func newTestEnv(t *testing.T) (*gin.Engine, config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Load()
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.SQLite.Path = ":memory:"

	db, err := storage.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close(db) })
	require.NoError(t, storage.Seed(context.Background(), db))

	h := New(cfg, services.NewUserService(db), services.NewCatalogService(db), services.NewTokenService(), nil)
	r := gin.New()
	h.RegisterRoutes(r)
	return r, cfg
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func TestHealthAndHome(t *testing.T) {
	r, _ := newTestEnv(t)
	w, out := do(t, r, "GET", "/health", nil, nil)
	require.Equal(t, 200, w.Code)
	require.Equal(t, "ok", out["status"])

	w, out = do(t, r, "GET", "/", nil, nil)
	require.Equal(t, 200, w.Code)
	require.NotEmpty(t, out["message"])
}

func TestCreateServiceThenGet(t *testing.T) {
	r, _ := newTestEnv(t)
	w, out := do(t, r, "POST", "/services", map[string]interface{}{
		"name":        "Mesa de Ayuda",
		"description": "Soporte técnico para la institución.",
		"price":       99.5,
	}, nil)
	require.Equal(t, 201, w.Code)
	id := out["service_id"].(float64)

	w, out = do(t, r, "GET", fmt.Sprintf("/services/%d", int(id)), nil, nil)
	require.Equal(t, 200, w.Code)
	require.Equal(t, "Mesa de Ayuda", out["name"])
	require.Equal(t, 99.5, out["price"])
	// 未提供的字段落默认值，badge 为 null
	require.Equal(t, "general", out["category"])
	require.Equal(t, "images/icon-recursos.png", out["icon_url"])
	require.Nil(t, out["badge"])
}

func TestCreateServiceStringPriceAccepted(t *testing.T) {
	r, _ := newTestEnv(t)
	w, out := do(t, r, "POST", "/services", map[string]interface{}{
		"name":        "x",
		"description": "y",
		"price":       "123.45",
	}, nil)
	require.Equal(t, 201, w.Code)
	id := int(out["service_id"].(float64))
	_, out = do(t, r, "GET", fmt.Sprintf("/services/%d", id), nil, nil)
	require.Equal(t, 123.45, out["price"])
}

func TestCreateServiceBadPricePersistsNothing(t *testing.T) {
	r, _ := newTestEnv(t)
	_, before := do(t, r, "GET", "/services", nil, nil)
	w, _ := do(t, r, "POST", "/services", map[string]interface{}{
		"name":        "x",
		"description": "y",
		"price":       "abc",
	}, nil)
	require.Equal(t, 400, w.Code)
	_, after := do(t, r, "GET", "/services", nil, nil)
	require.Len(t, after["services"], len(before["services"].([]interface{})))
}

func TestCreateServiceMissingFields(t *testing.T) {
	r, _ := newTestEnv(t)
	w, _ := do(t, r, "POST", "/services", map[string]interface{}{"name": "only name"}, nil)
	require.Equal(t, 400, w.Code)
}

func TestListServicesSeeded(t *testing.T) {
	r, _ := newTestEnv(t)
	w, out := do(t, r, "GET", "/services", nil, nil)
	require.Equal(t, 200, w.Code)
	require.Len(t, out["services"], 10)
	first := out["services"].([]interface{})[0].(map[string]interface{})
	require.Equal(t, "Gestión Comercial", first["name"])
	require.Equal(t, "Popular", first["badge"])
}

func TestGetServiceNotFound(t *testing.T) {
	r, _ := newTestEnv(t)
	w, _ := do(t, r, "GET", "/services/9999", nil, nil)
	require.Equal(t, 404, w.Code)
	w, _ = do(t, r, "GET", "/services/abc", nil, nil)
	require.Equal(t, 404, w.Code)
}

func TestUpdateServicePriceOnly(t *testing.T) {
	r, _ := newTestEnv(t)
	w, _ := do(t, r, "PUT", "/services/1", map[string]interface{}{"price": 500.0}, nil)
	require.Equal(t, 200, w.Code)

	_, out := do(t, r, "GET", "/services/1", nil, nil)
	require.Equal(t, 500.0, out["price"])
	// 其余字段保持种子数据原值
	require.Equal(t, "Gestión Comercial", out["name"])
	require.Equal(t, "gestión", out["category"])
	require.Equal(t, "Popular", out["badge"])
}

func TestUpdateServiceBadPriceLeavesRow(t *testing.T) {
	r, _ := newTestEnv(t)
	w, _ := do(t, r, "PUT", "/services/1", map[string]interface{}{"price": "abc", "name": "should not stick"}, nil)
	require.Equal(t, 400, w.Code)

	_, out := do(t, r, "GET", "/services/1", nil, nil)
	require.Equal(t, "Gestión Comercial", out["name"])
	require.Equal(t, 299.0, out["price"])
}

func TestUpdateServiceNotFoundAndEmptyBody(t *testing.T) {
	r, _ := newTestEnv(t)
	w, _ := do(t, r, "PUT", "/services/9999", map[string]interface{}{"price": 1.0}, nil)
	require.Equal(t, 404, w.Code)
	w, _ = do(t, r, "PUT", "/services/1", map[string]interface{}{}, nil)
	require.Equal(t, 400, w.Code)
}

func TestUpdateServiceClearBadge(t *testing.T) {
	r, _ := newTestEnv(t)
	w, _ := do(t, r, "PUT", "/services/1", map[string]interface{}{"badge": nil}, nil)
	require.Equal(t, 200, w.Code)
	_, out := do(t, r, "GET", "/services/1", nil, nil)
	require.Nil(t, out["badge"])
}

func TestDeleteService(t *testing.T) {
	r, _ := newTestEnv(t)
	w, _ := do(t, r, "DELETE", "/services/2", nil, nil)
	require.Equal(t, 200, w.Code)
	w, _ = do(t, r, "GET", "/services/2", nil, nil)
	require.Equal(t, 404, w.Code)
	w, _ = do(t, r, "DELETE", "/services/2", nil, nil)
	require.Equal(t, 404, w.Code)
}

func TestCreateUserAndDuplicates(t *testing.T) {
	r, _ := newTestEnv(t)
	w, out := do(t, r, "POST", "/users", map[string]string{"username": "nuevo", "email": "nuevo@example.com"}, nil)
	require.Equal(t, 201, w.Code)
	require.NotZero(t, out["user_id"])

	// 重复邮箱 → 409，且不产生新行
	_, before := do(t, r, "GET", "/users", nil, nil)
	w, _ = do(t, r, "POST", "/users", map[string]string{"username": "otro", "email": "nuevo@example.com"}, nil)
	require.Equal(t, 409, w.Code)
	_, after := do(t, r, "GET", "/users", nil, nil)
	require.Len(t, after["users"], len(before["users"].([]interface{})))

	// 重复用户名同样 409
	w, _ = do(t, r, "POST", "/users", map[string]string{"username": "nuevo", "email": "distinto@example.com"}, nil)
	require.Equal(t, 409, w.Code)

	// 缺字段 → 400
	w, _ = do(t, r, "POST", "/users", map[string]string{"username": "solo"}, nil)
	require.Equal(t, 400, w.Code)
}

func TestUserLifecycle(t *testing.T) {
	r, _ := newTestEnv(t)
	_, out := do(t, r, "POST", "/users", map[string]string{"username": "ciclo", "email": "ciclo@example.com"}, nil)
	id := int(out["user_id"].(float64))
	path := fmt.Sprintf("/users/%d", id)

	w, out := do(t, r, "GET", path, nil, nil)
	require.Equal(t, 200, w.Code)
	require.Equal(t, "ciclo", out["username"])

	w, _ = do(t, r, "PUT", path, map[string]string{"username": "renombrado"}, nil)
	require.Equal(t, 200, w.Code)
	_, out = do(t, r, "GET", path, nil, nil)
	require.Equal(t, "renombrado", out["username"])
	require.Equal(t, "ciclo@example.com", out["email"])

	w, _ = do(t, r, "DELETE", path, nil, nil)
	require.Equal(t, 200, w.Code)
	w, _ = do(t, r, "GET", path, nil, nil)
	require.Equal(t, 404, w.Code)
	w, _ = do(t, r, "PUT", path, map[string]string{"username": "x"}, nil)
	require.Equal(t, 404, w.Code)
}

func TestLoginAdmin(t *testing.T) {
	r, _ := newTestEnv(t)
	w, out := do(t, r, "POST", "/auth/login", map[string]string{"email": storage.AdminEmail, "password": "adminpass"}, nil)
	require.Equal(t, 200, w.Code)
	tok := out["token"].(string)
	require.Contains(t, tok, services.TokenPrefix)
	require.Contains(t, tok, storage.AdminEmail)
	user := out["user"].(map[string]interface{})
	require.Equal(t, "admin", user["username"])
	// 令牌中嵌入用户 id
	require.Contains(t, tok, fmt.Sprintf("%s%v_", services.TokenPrefix, user["id"].(float64)))
}

func TestLoginFailures(t *testing.T) {
	r, _ := newTestEnv(t)
	// 错误口令与未知邮箱返回同样的 401
	w, _ := do(t, r, "POST", "/auth/login", map[string]string{"email": storage.AdminEmail, "password": "wrong"}, nil)
	require.Equal(t, 401, w.Code)
	w, _ = do(t, r, "POST", "/auth/login", map[string]string{"email": "nobody@example.com", "password": "adminpass"}, nil)
	require.Equal(t, 401, w.Code)
	// 缺字段 → 400
	w, _ = do(t, r, "POST", "/auth/login", map[string]string{"email": storage.AdminEmail}, nil)
	require.Equal(t, 400, w.Code)
	w, _ = do(t, r, "POST", "/auth/login", nil, nil)
	require.Equal(t, 400, w.Code)
}

func TestVerifyPrefixOnly(t *testing.T) {
	r, _ := newTestEnv(t)
	// 不存在的用户 id 也能通过：校验只看前缀
	w, _ := do(t, r, "POST", "/auth/verify", nil, map[string]string{"Authorization": "Bearer simple_token_1_x"})
	require.Equal(t, 200, w.Code)

	w, _ = do(t, r, "POST", "/auth/verify", nil, map[string]string{"Authorization": "Bearer other_token"})
	require.Equal(t, 401, w.Code)
	w, _ = do(t, r, "POST", "/auth/verify", nil, map[string]string{"Authorization": "simple_token_1_x"})
	require.Equal(t, 401, w.Code)
	w, _ = do(t, r, "POST", "/auth/verify", nil, nil)
	require.Equal(t, 401, w.Code)
}
