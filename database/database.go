package database

import (
	"fmt"

	"rental-app/config"
	"rental-app/internal/domain/contact"
	"rental-app/internal/domain/content"
	"rental-app/internal/domain/media"
	"rental-app/internal/domain/properties"
	"rental-app/internal/domain/site"
	"rental-app/internal/domain/users"
	"rental-app/internal/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Models lists every table in dependency order. Tests migrate the same list.
func Models() []any {
	return []any{
		// core
		&users.User{},
		&users.RefreshToken{},

		// listings
		&properties.Amenity{},
		&properties.AmenityI18n{},
		&properties.Property{},
		&properties.PropertyI18n{},
		&media.PropertyImage{},

		// content
		&content.Page{},
		&content.PageI18n{},
		&site.Setting{},
		&site.SettingI18n{},

		// inbox
		&contact.Message{},
	}
}

// GormConfig is shared by production and tests so store errors translate the same way.
func GormConfig() *gorm.Config {
	level := gormlogger.Warn
	if !config.IsProduction() && config.LOG_LEVEL == "debug" {
		level = gormlogger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	}
}

func InitDB() error {
	log := logger.Get()

	if config.DB_URL == "" {
		return fmt.Errorf("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(config.DB_URL), GormConfig())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	DB = db
	log.Info("Connected to database")
	return nil
}

// Migrate creates or updates every table of the application.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database is not initialized")
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Get().Info("Migrated models", zap.Int("count", len(Models())))
	return nil
}
