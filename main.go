package main

import (
	"os"
	"time"

	"textdiff/config"
	"textdiff/db"
	"textdiff/platform/shutdown"
	"textdiff/web"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

func main() {
	cfg := config.Get()
	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}

	// Open the database early so a bad path fails at startup
	database, err := db.GetDB()
	if err != nil {
		logger.LogErr(err, "failed to open database", "path", cfg.DBPath)
		os.Exit(1)
	}
	logger.Info("Database ready", "path", database.Path())

	shutdown.RegisterHook("database", func(time.Duration) error {
		return db.CloseDB()
	})

	web.InitDiffService(cfg)

	// Create a new rweb server with options
	s := rweb.NewServer(rweb.ServerOptions{
		Address: cfg.Address,
		Verbose: cfg.Debug,
	})

	// Add middleware for request logging
	s.Use(rweb.RequestInfo)

	// Setup routes
	web.SetupRoutes(s)

	done := make(chan struct{})
	shutdown.InitShutdownService(done, shutdown.DefaultGracePeriod)

	go func() {
		logger.Info("Starting text diff server", "address", cfg.Address)
		if err := s.Run(); err != nil {
			logger.LogErr(err, "server stopped")
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("Server exiting")
}
