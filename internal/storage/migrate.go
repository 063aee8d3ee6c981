package storage

import (
	"gorm.io/gorm"
)

// 本文件定义目录与用户目录使用的全部 GORM 模型，集中管理数据结构。

// User 是用户目录中的一行；username 与 email 均要求全局唯一。
type User struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	Username string `gorm:"size:80;uniqueIndex;not null"`
	Email    string `gorm:"size:120;uniqueIndex;not null"`
}

// Service 是服务目录中的一行；name 不要求唯一，badge 可为空。
type Service struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"size:100;not null"`
	Description string  `gorm:"type:text;not null"`
	Price       float64 `gorm:"not null"`
	Category    string  `gorm:"size:100;not null"`
	IconURL     string  `gorm:"size:200;not null"`
	Badge       *string `gorm:"size:50"`
}

// autoMigrate 执行数据库自动迁移。
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Service{})
}
