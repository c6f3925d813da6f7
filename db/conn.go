// Package db opens the relational store and keeps its schema up to date
package db

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	v "github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database configured under database.* and migrates it
func New() (*gorm.DB, error) {
	driver := v.GetString("database.driver")
	dsn := v.GetString("database.dsn")

	// If running in a docker container don't allow the sqlite file to be created.
	// The host should instead mount it using volumes
	if driver == "sqlite" && inDocker() {
		path, _, _ := strings.Cut(dsn, "?")
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("SQLite database file not mounted, please use docker volumes to mount it to /app/%s", path)
		}
	}

	return Open(driver, dsn)
}

func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s database, %w", driver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.RefreshToken{},
		&model.Assessment{},
		&model.VitalReading{},
		&model.EmergencyContact{},
	)
	if err != nil {
		return fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return nil
}

func inDocker() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}
