package main

import (
	"os"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"wedding-invite/config"
	"wedding-invite/internal/handler"
	"wedding-invite/internal/middleware"
	"wedding-invite/internal/repository"
	"wedding-invite/internal/service"
	"wedding-invite/pkg/database"
	"wedding-invite/pkg/musicsearch"
	"wedding-invite/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "wedding-invite").Logger()

	db := database.NewPostgresDB(cfg.DSN())

	// Notifications are optional: without a broker the service runs silent.
	var publisher service.Publisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer p.Close()
		publisher = p
	}

	guestRepo := repository.NewGuestRepository(db)
	householdRepo := repository.NewHouseholdRepository(db)
	questionnaireRepo := repository.NewQuestionnaireRepository(db)

	svc := service.NewPreferenceService(guestRepo, householdRepo, questionnaireRepo, publisher, logger)
	music := musicsearch.New(cfg.MusicSearchURL)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			logger.Info().Str("method", v.Method).Str("uri", v.URI).Int("status", v.Status).Msg("request")
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "wedding-invite"})
	})

	handler.NewGuestHandler(svc, music).RegisterRoutes(e)

	logger.Info().Str("port", cfg.ServerPort).Msg("starting")
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
