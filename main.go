package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cblls_server/api"
	"cblls_server/config"
	"cblls_server/services"
	"cblls_server/storage"
	"cblls_server/store"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

var logger *gecho.Logger
var cfg *structs.Config

// init function to load environment variables and initialize logger and storage
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	if err := storage.Initialize(); err != nil {
		logger.Fatal("Failed to initialize storage", gecho.Field("error", err), gecho.Field("driver", cfg.Storage.Driver))
	}
}

func main() {
	backend := storage.GetInstance()

	var emailService *services.EmailService
	if cfg.Email.Enabled {
		emailService = services.NewEmailService(logger, cfg)
	}
	accountService := services.NewAccountService(cfg, logger, backend, emailService)

	st := store.New(backend, accountService, logger)

	// Setup graceful shutdown BEFORE starting the server
	setupGracefulShutdown(logger, st)

	r := api.App(st, accountService)

	logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))

	// Start server
	if err := http.ListenAndServe(cfg.Server.Port, r); err != nil {
		logger.Error("Failed to start server", gecho.Field("error", err))
	}
}

// setupGracefulShutdown sets up signal handling for graceful application shutdown
func setupGracefulShutdown(logger *gecho.Logger, st *store.Store) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	logger.Info("Graceful shutdown handler initialized")

	go func() {
		sig := <-c
		logger.Info("Received shutdown signal", gecho.Field("signal", sig))

		st.Close()
		if err := storage.CloseInstance(); err != nil {
			logger.Error("Failed to close storage backend", gecho.Field("error", err))
		}

		os.Exit(0)
	}()
}
