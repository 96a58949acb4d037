package gdb

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	User         string `toml:"user" mapstructure:"user"`
	Password     string `toml:"password" mapstructure:"password"`
	Host         string `toml:"host" mapstructure:"host"`
	Database     string `toml:"database" mapstructure:"database"`
	MaxIdleConns int    `toml:"max_idle_conns" mapstructure:"max_idle_conns"`
	MaxOpenConns int    `toml:"max_open_conns" mapstructure:"max_open_conns"`
	LogLevel     string `toml:"log_level" mapstructure:"log_level"`
}

// NewDB opens a MySQL backed gorm handle with pooling configured.
func NewDB(c *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User, c.Password, c.Host, c.Database)

	logLevel := logger.Warn
	if c.LogLevel == "info" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed on open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed on get underlying sql.DB")
	}

	maxIdle := c.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	maxOpen := c.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 50
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
