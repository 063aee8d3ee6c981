package storage

import (
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Dakotapog/D20-solutions/internal/config"
)

// Open 按配置打开数据库连接（sqlite 单文件为默认，mysql 可选），
// 并通过 AutoMigrate 确保表结构存在。重复执行安全（幂等）。
func Open(cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Storage.Driver {
	case "", "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Storage.SQLite.Path), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	case "mysql":
		db, err = gorm.Open(gormmysql.Open(cfg.Storage.MySQL.DSN()), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	// 验证底层连接可用
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Close 关闭底层 sql.DB 连接。
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	var s *sql.DB
	var err error
	s, err = db.DB()
	if err == nil && s != nil {
		_ = s.Close()
	}
}
