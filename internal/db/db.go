package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/shelfshare/internal/config"
	"github.com/snnyvrz/shelfshare/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultMaxAttempts     = 10
	defaultDelayBetweenTry = 2 * time.Second
)

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres", "":
		return postgres.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func gormConfig(cfg *config.Config) *gorm.Config {
	level := logger.Warn
	if cfg.GinMode == "debug" {
		level = logger.Info
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}
}

func ConnectWithRetry(cfg *config.Config) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	for attempt := 1; attempt <= defaultMaxAttempts; attempt++ {
		db, err = gorm.Open(d, gormConfig(cfg))
		if err == nil {
			sqlDB, err2 := db.DB()
			if err2 == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					return db, nil
				}
				err = pingErr
			} else {
				err = err2
			}
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", defaultMaxAttempts).
			Msg("db not ready")
		time.Sleep(defaultDelayBetweenTry)
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", defaultMaxAttempts, err)
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return err
	}
	return backfillSearchKeys(db)
}

// backfillSearchKeys fills folded search keys on rows written before the key
// columns existed.
func backfillSearchKeys(db *gorm.DB) error {
	var authors []model.Author
	err := db.Select("id", "name").Where("name_key = ''").
		FindInBatches(&authors, 500, func(tx *gorm.DB, batch int) error {
			for _, a := range authors {
				if err := db.Model(&model.Author{}).Where("id = ?", a.ID).
					UpdateColumn("name_key", model.SearchKey(a.Name)).Error; err != nil {
					return err
				}
			}
			return nil
		}).Error
	if err != nil {
		return fmt.Errorf("backfill author search keys: %w", err)
	}

	var books []model.Book
	err = db.Select("id", "title").Where("title_key = ''").
		FindInBatches(&books, 500, func(tx *gorm.DB, batch int) error {
			for _, b := range books {
				if err := db.Model(&model.Book{}).Where("id = ?", b.ID).
					UpdateColumn("title_key", model.SearchKey(b.Title)).Error; err != nil {
					return err
				}
			}
			return nil
		}).Error
	if err != nil {
		return fmt.Errorf("backfill book search keys: %w", err)
	}
	return nil
}
