// Package storage 提供底层持久化适配，实现数据库连接、自动迁移、GORM 模型声明与启动种子数据。
// 其它层应通过 services 间接访问存储。并发更新同一行时无乐观锁保护，
// 假定同一行同一时刻只有单个写入方（与原系统行为一致）。
package storage
