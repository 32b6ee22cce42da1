// Package config reads the service configuration from environment variables. A .env file in the
// working directory is loaded first if it exists; variables that are already set win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Config is the configuration of the contact management service.
type Config struct {
	Port       int
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	GinMode    string
	GinLogging bool
	LogLevel   string
}

// FromEnv builds the configuration from the environment. Usage example:
//
//	> PORT=8080 DBHOST=localhost DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=OFF go run main.go
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not load .env file: %w", err)
	}
	port, err := strconv.Atoi(getenv("PORT", "8080"))
	if err != nil || port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("could not parse PORT env variable %q", os.Getenv("PORT"))
	}
	return Config{
		Port:       port,
		DBHost:     getenv("DBHOST", "localhost:3306"),
		DBUser:     os.Getenv("DBUSER"),
		DBPassword: os.Getenv("DBPWD"),
		DBName:     getenv("DBNAME", "contacts"),
		GinMode:    os.Getenv("GIN_MODE"),
		GinLogging: !strings.EqualFold(os.Getenv("GIN_LOGGING"), "off"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
	}, nil
}

// DSN returns the data source name for the MySQL driver. Rows matched by an UPDATE are reported
// as affected even if no value changes, so that ownership checks on updates work.
func (c Config) DSN() string {
	m := mysql.NewConfig()
	m.User = c.DBUser
	m.Passwd = c.DBPassword
	m.Net = "tcp"
	m.Addr = c.DBHost
	m.DBName = c.DBName
	m.ParseTime = true
	m.ClientFoundRows = true
	return m.FormatDSN()
}

// Addr returns the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getenv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
