// Package gormdb provides the relational persistence layer. The driver is
// selectable: sqlite covers the single-binary deployment, postgres the shared
// one.
package gormdb

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

// Open connects to the configured database and migrates the gateway tables.
func Open(cfg *config.DatabaseConfig, log logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite", "":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "file:mosaic.db?_pragma=busy_timeout(5000)"
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, errors.Newf(constants.ErrCodeInvalidRequest, "unknown database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInternal, "failed to open database")
	}

	if cfg.MaxConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, constants.ErrCodeInternal, "failed to access connection pool")
		}
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
	}

	if err := db.AutoMigrate(&models.BlobRef{}, &models.EventIndexEntry{}, &models.TicketMintRecord{}); err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInternal, "failed to migrate schema")
	}

	log.Info(context.Background(), "database ready", logger.Fields{"driver": cfg.Driver})
	return db, nil
}
