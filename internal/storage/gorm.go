package storage

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const DefaultDriver = "sqlite"

// Drivers maps configuration driver names to gorm dialector constructors.
var Drivers = map[string]func(dsn string) gorm.Dialector{
	"sqlite":   sqlite.Open,
	"postgres": postgres.Open,
}

type Config struct {
	Driver string `yaml:"driver,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

func Open(config Config) (*gorm.DB, error) {
	driver := config.Driver
	if driver == "" {
		driver = DefaultDriver
	}

	open, ok := Drivers[driver]
	if !ok {
		return nil, errors.Errorf("unsupported driver %s", driver)
	}

	dsn := config.DSN
	if dsn == "" && driver == DefaultDriver {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(open(dsn), &gorm.Config{Logger: Logger})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", driver)
	}

	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
