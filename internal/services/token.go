package services

// 演示令牌服务：签发与校验形如 simple_token_<id>_<email> 的不透明字符串。
// 没有签名、过期时间，也不回查存储——任何携带正确前缀的字符串都会通过校验。
// 这是对原系统占位方案的忠实保留，不可用于真实认证场景。

import (
	"fmt"
	"strings"

	"github.com/Dakotapog/D20-solutions/internal/storage"
)

// TokenPrefix 为演示令牌的固定前缀，签发与校验共用。
const TokenPrefix = "simple_token_"

// TokenService 签发与校验演示令牌。
type TokenService struct{}

func NewTokenService() *TokenService { return &TokenService{} }

// Issue 为指定用户构造确定性的演示令牌。
func (s *TokenService) Issue(u *storage.User) string {
	return fmt.Sprintf("%s%d_%s", TokenPrefix, u.ID, u.Email)
}

// Verify 仅做前缀匹配；不校验嵌入的用户是否仍然存在。
func (s *TokenService) Verify(token string) bool {
	return strings.HasPrefix(token, TokenPrefix)
}
