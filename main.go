package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moneyhealth/backend/internal/advisor"
	"github.com/moneyhealth/backend/internal/config"
	v1 "github.com/moneyhealth/backend/internal/controllers/v1"
	"github.com/moneyhealth/backend/internal/events"
	"github.com/moneyhealth/backend/internal/models"
	"github.com/moneyhealth/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadDotenv()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Configuration")
	}

	// Create data directory
	err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database and migrate the schema
	err = models.Connect(cfg.DBPath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if cfg.AMQPURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			log.Fatal().Err(err).Msg("AMQP")
		}
		defer publisher.Close()

		events.SetPublisher(publisher)
		log.Info().Str("exchange", cfg.AMQPExchange).Str("queue", cfg.AMQPQueue).Msg("Publishing ledger changes")
	}

	var client *advisor.Client
	if cfg.AIBaseURL != "" {
		client = advisor.NewClient(cfg.AIBaseURL, cfg.AITimeout)
		log.Info().Str("url", cfg.AIBaseURL).Dur("timeout", cfg.AITimeout).Msg("Narrative service")
	}
	v1.SetAdvisor(advisor.New(client))

	r, teardown, err := router.Config(cfg.APIURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(r.Group(cfg.APIURL.Path))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	// In-flight report requests may wait for the narrative service
	ctx, cancel := context.WithTimeout(context.Background(), cfg.AITimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
