package main

// 端到端巡检命令：对运行中的实例依次走一遍健康检查、登录、令牌校验
// 与服务/用户 CRUD，用于部署后的冒烟验证。
// 用法：go run ./cmd/e2e -base http://127.0.0.1:5001 [-email ...] [-password ...] [-v]

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

var verbose bool

func banner(title string) {
	log.Printf("\n=== %s ===", title)
}

func step(format string, args ...interface{}) {
	log.Printf(" • "+format, args...)
}

// scenario 封装一次巡检过程中共享的资源。
type scenario struct {
	client *http.Client
	base   string
	token  string
}

func (s *scenario) request(method, path string, body interface{}, auth bool) (int, map[string]interface{}, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.base+path, rd)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	if verbose {
		log.Printf("   %s %s -> %d %s", method, path, resp.StatusCode, bytes.TrimSpace(raw))
	}
	var out map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out, nil
}

func (s *scenario) expect(method, path string, body interface{}, auth bool, want int) map[string]interface{} {
	code, out, err := s.request(method, path, body, auth)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	if code != want {
		log.Fatalf("%s %s: got status %d, want %d (%v)", method, path, code, want, out)
	}
	return out
}

func main() {
	var (
		base     string
		email    string
		password string
	)
	flag.StringVar(&base, "base", "http://127.0.0.1:5001", "base URL of the running server")
	flag.StringVar(&email, "email", "admin@d10solutions.com", "login email")
	flag.StringVar(&password, "password", "adminpass", "login password")
	flag.BoolVar(&verbose, "v", false, "log every request/response")
	flag.Parse()

	s := &scenario{client: &http.Client{Timeout: 10 * time.Second}, base: base}

	banner("health")
	out := s.expect("GET", "/health", nil, false, 200)
	step("status=%v", out["status"])

	banner("auth")
	out = s.expect("POST", "/auth/login", map[string]string{"email": email, "password": password}, false, 200)
	tok, _ := out["token"].(string)
	if tok == "" {
		log.Fatal("login returned no token")
	}
	s.token = tok
	step("token issued")
	s.expect("POST", "/auth/verify", nil, true, 200)
	step("token verified")
	s.expect("POST", "/auth/login", map[string]string{"email": email, "password": password + "x"}, false, 401)
	step("bad password rejected")

	banner("services")
	out = s.expect("POST", "/services", map[string]interface{}{
		"name":        "e2e probe",
		"description": "temporary row created by the smoke check",
		"price":       1.5,
	}, false, 201)
	sid := fmt.Sprintf("%v", out["service_id"])
	step("created service id=%s", sid)
	s.expect("GET", "/services/"+sid, nil, false, 200)
	s.expect("PUT", "/services/"+sid, map[string]interface{}{"price": "2.5"}, false, 200)
	s.expect("POST", "/services", map[string]interface{}{"name": "x", "description": "y", "price": "abc"}, false, 400)
	step("bad price rejected")
	s.expect("DELETE", "/services/"+sid, nil, false, 200)
	s.expect("GET", "/services/"+sid, nil, false, 404)
	step("service lifecycle ok")

	banner("users")
	suffix := time.Now().UnixNano()
	username := fmt.Sprintf("e2e.%d", suffix)
	mail := fmt.Sprintf("e2e.%d@example.com", suffix)
	out = s.expect("POST", "/users", map[string]string{"username": username, "email": mail}, false, 201)
	uid := fmt.Sprintf("%v", out["user_id"])
	step("created user id=%s", uid)
	s.expect("POST", "/users", map[string]string{"username": username, "email": mail}, false, 409)
	step("duplicate rejected")
	s.expect("PUT", "/users/"+uid, map[string]string{"username": username + ".renamed"}, false, 200)
	s.expect("DELETE", "/users/"+uid, nil, false, 200)
	s.expect("GET", "/users/"+uid, nil, false, 404)
	step("user lifecycle ok")

	banner("done")
	log.Print("all checks passed")
}
