package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/contact-management/internal/api"
	"gitlab.com/dirk.krummacker/contact-management/internal/config"
	"gitlab.com/dirk.krummacker/contact-management/internal/logging"
	"gitlab.com/dirk.krummacker/contact-management/internal/metrics"
	"gitlab.com/dirk.krummacker/contact-management/internal/store"
	"go.uber.org/zap"
)

// Usage example on the command line:
// > PORT=8080 DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	sqlDB, err := store.Open(cfg.DSN())
	if err != nil {
		logger.Fatal("could not open database", zap.Error(err))
	}
	st, err := store.New(sqlDB)
	if err != nil {
		logger.Fatal("could not prepare statements", zap.Error(err))
	}
	defer st.Close()

	if !cfg.GinLogging {
		logger.Info("turning off HTTP request logging")
	}
	router := api.SetupHttpRouter(st, api.Options{
		Logger:         logger,
		Metrics:        metrics.New(),
		RequestLogging: cfg.GinLogging,
	})
	logger.Info("starting server", zap.String("addr", cfg.Addr()))
	if err := router.Run(cfg.Addr()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
