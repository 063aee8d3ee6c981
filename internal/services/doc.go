// Package services 提供应用的领域服务层，封装用户目录、服务目录与演示令牌逻辑。
// 该层对 handlers 提供较为稳定的接口，避免在 HTTP 层直接操作数据访问细节。
package services
