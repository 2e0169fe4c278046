package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var validDrivers = map[string]bool{
	DriverMySQL:    true,
	DriverPostgres: true,
	DriverSQLite:   true,
}

// BuildDSN renders the connection string for the configured driver.
func (c *DatabaseConfig) BuildDSN() string {
	if c.DSN != "" {
		return c.DSN
	}

	switch c.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.Username, c.Password, c.DBName)
	case DriverSQLite:
		// Host is unused; DBName is the file path.
		return fmt.Sprintf("file:%s?_foreign_keys=on", c.DBName)
	}

	params := "charset=utf8mb4&parseTime=True&loc=Local"
	if c.UseUnixSock {
		return fmt.Sprintf("%s:%s@unix(%s)/%s?%s",
			c.Username, c.Password, c.Host, c.DBName, params)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName, params)
}

// Dialector picks the GORM driver for the configured database.
func (c *DatabaseConfig) Dialector() (gorm.Dialector, error) {
	dsn := c.BuildDSN()
	switch c.Driver {
	case DriverMySQL, "":
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// GormConfig returns the GORM settings shared by every driver.
func (c *DatabaseConfig) GormConfig() *gorm.Config {
	gormConfig := &gorm.Config{TranslateError: true}
	switch c.LogLevel {
	case "silent":
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	case "error":
		gormConfig.Logger = logger.Default.LogMode(logger.Error)
	case "warn":
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	case "info":
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	return gormConfig
}

func (c *Config) InitDB() (*gorm.DB, error) {
	dialector, err := c.Database.Dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, c.Database.GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(c.Database.MinPoolSize)
	sqlDB.SetMaxOpenConns(c.Database.MaxPoolSize)
	if c.Database.Driver == DriverSQLite {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}
