package db

import (
	"context"
	"fmt"
	"log/slog"

	"app/internal/config"
	"app/internal/domain/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch cfg.DBDriver {
	case "mysql":
		slog.Info("connecting database", "driver", "mysql")
		return gorm.Open(mysql.Open(cfg.MySQLDSN), gcfg)
	case "postgres":
		slog.Info("connecting database", "driver", "postgres", "host", cfg.PostgresHost)
		return gorm.Open(postgres.Open(cfg.PostgresDSN()), gcfg)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.DBDriver)
	}
}

// スキーマ設計はしない。AutoMigrateのみ
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Inventory{},
		&model.Product{},
		&model.Category{},
		&model.ProductCategory{},
		&model.QuantityAdjustment{},
	)
}

// Ping はヘルスチェック用
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
