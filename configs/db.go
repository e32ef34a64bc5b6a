package configs

import (
	"fmt"

	"github.com/ADat1304/Project-cafe/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectionDB opens the session database and migrates its schema.
func ConnectionDB(cfg *Config) (*gorm.DB, error) {
	if cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	db, err := gorm.Open(sqlite.Open(cfg.DBSource), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(&entity.Session{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
