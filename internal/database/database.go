package database

import (
	"context"
	"fmt"
	"time"

	"productos/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectionErrorMessage is logged when the store cannot be reached at startup.
const ConnectionErrorMessage = "Hubo un error al conectar la Base de Datos."

const pingTimeout = 5 * time.Second

// Config selects the store driver and DSN.
type Config struct {
	Driver string
	DSN    string
}

// Status reports the outcome of Bootstrap.
type Status struct {
	Connected bool
	Err       error
}

// Bootstrap opens the store, verifies it with a ping and migrates the schema.
//
// Failure is not fatal: it is logged, the returned *gorm.DB is nil and Status
// carries the cause, so the caller can keep serving requests that never touch
// the store.
func Bootstrap(ctx context.Context, cfg Config, log logrus.FieldLogger) (*gorm.DB, Status) {
	db, err := connect(ctx, cfg)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.Driver).Error(ConnectionErrorMessage)
		return nil, Status{Err: err}
	}
	log.WithField("driver", cfg.Driver).Info("Connected to database")
	return db, Status{Connected: true}
}

func connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	dialector, err := open(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&models.Product{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func open(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
