package main

import (
	"context"
	"flag"

	"gitlab.com/dirk.krummacker/contact-management/internal/config"
	"gitlab.com/dirk.krummacker/contact-management/internal/logging"
	"gitlab.com/dirk.krummacker/contact-management/internal/migrations"
	"gitlab.com/dirk.krummacker/contact-management/internal/store"
	"go.uber.org/zap"
)

// Usage example on the command line:
// > DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 go run main.go -command=up
func main() {
	commandPtr := flag.String("command", "up", "the migration command: up, down or status")
	flag.Parse()

	logger, err := logging.New("info")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	sqlDB, err := store.Open(cfg.DSN())
	if err != nil {
		logger.Fatal("could not open database", zap.Error(err))
	}
	defer sqlDB.Close()

	ctx := context.Background()
	switch *commandPtr {
	case "up":
		err = migrations.Up(ctx, sqlDB)
	case "down":
		err = migrations.Down(ctx, sqlDB)
	case "status":
		err = migrations.Status(ctx, sqlDB)
	default:
		logger.Fatal("unknown migration command", zap.String("command", *commandPtr))
	}
	if err != nil {
		logger.Fatal("migration failed", zap.String("command", *commandPtr), zap.Error(err))
	}
	logger.Info("migration done", zap.String("command", *commandPtr))
}
