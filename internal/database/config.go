package database

import (
	"fmt"
	"net/url"
	"time"

	"rentalog/internal/config"
)

// Config holds database configuration
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// MigrationsSource is a golang-migrate source URL, e.g. file://migrations.
	MigrationsSource string
}

// NewConfig derives the database configuration from the application config.
func NewConfig(app *config.Config) *Config {
	return &Config{
		Host:             app.DBHost,
		Port:             app.DBPort,
		User:             app.DBUser,
		Password:         app.DBPassword,
		DBName:           app.DBName,
		SSLMode:          app.DBSSLMode,
		MaxOpenConns:     app.DBMaxOpenConns,
		MaxIdleConns:     app.DBMaxIdleConns,
		ConnMaxLifetime:  app.DBConnMaxLifetime,
		MigrationsSource: app.MigrationsSource,
	}
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the postgres:// URL form expected by golang-migrate.
func (c *Config) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}
