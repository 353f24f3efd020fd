package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/logging"
	"inventory/internal/server"
	"inventory/internal/services"
	"inventory/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", ":8080", "Address to listen on")
	_ = v.BindPFlag("APP_PORT", serveCmd.Flags().Lookup("port"))
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db, cfg); err != nil {
			return err
		}
	}

	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:   cfg.RabbitMQURL,
			Queue: cfg.RabbitMQQueue,
			Log:   log,
		})
		if err != nil {
			return err
		}
		defer mqClient.Close()
		publisher = mqClient

		if cfg.AuditEvents {
			if err := mqClient.ConsumeProductEvents(rabbitmq.AuditHandler(log)); err != nil {
				log.WithError(err).Warn("failed to start product event consumer")
			}
		}
	}

	app := server.NewApp(server.Dependencies{
		DB:        db,
		Publisher: publisher,
		Log:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":   cfg.AppPort,
			"driver": cfg.DatabaseDriver,
			"events": cfg.EventsEnabled(),
		}).Info("starting server")
		errCh <- app.Listen(cfg.AppPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
	return nil
}
