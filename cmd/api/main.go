package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/cargo-analytics/internal/application/analytics"
	"github.com/jhoicas/cargo-analytics/internal/application/auth"
	infraexport "github.com/jhoicas/cargo-analytics/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/cargo-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/cargo-analytics/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cargo-analytics/internal/interfaces/http"
	"github.com/jhoicas/cargo-analytics/pkg/config"
	"github.com/jhoicas/cargo-analytics/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	loc := cfg.Analytics.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	recordsRepo := postgres.NewRecordsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// PDF: reporte imprimible del panel (fuente TTF opcional para cirílico)
	reportGenerator, err := infrapdf.NewMarotoReportGenerator(cfg.Analytics.PDFFontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("generador PDF")
	}

	statisticsUC := appanalytics.NewStatisticsUseCase(
		recordsRepo,
		infraexport.NewCSVExporter(loc),
		reportGenerator,
		log,
		loc,
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cargo Analytics API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		StatisticsUC: statisticsUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
