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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/relojeria-admin/internal/application/analytics"
	"github.com/jhoicas/relojeria-admin/internal/application/fallback"
	"github.com/jhoicas/relojeria-admin/internal/application/usecase"
	infrapdf "github.com/jhoicas/relojeria-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/relojeria-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/relojeria-admin/internal/infrastructure/seed"
	"github.com/jhoicas/relojeria-admin/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/relojeria-admin/internal/interfaces/http"
	"github.com/jhoicas/relojeria-admin/pkg/config"
	"github.com/jhoicas/relojeria-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Remoto: sin configuración válida el cliente queda "sin configurar" y todo se sirve
	// desde el espejo local.
	var querier postgres.Querier
	pool, err := postgres.NewPool(ctx, cfg.Remote)
	if err != nil {
		log.Warn().Err(err).Msg("backend remoto sin configurar, solo espejo local")
	} else {
		querier = pool
		defer pool.Close()
	}
	remoteClient := postgres.NewClient(querier, log.Component("remote"))

	store, err := seed.OpenSeeded(ctx, cfg.Local.Path, log.Component("local"))
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Local.Path).Msg("abrir espejo local")
	}
	defer func() { _ = store.Close() }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	accessors := usecase.NewAccessors(
		fallback.NewCoordinator(log, registry),
		postgres.NewRemoteSet(remoteClient),
		sqlite.NewLocalSet(store),
	)
	aggregator := analytics.NewAggregator(accessors.Orders, accessors.Products)
	ticketUC := usecase.NewServiceTicketUseCase(
		accessors.ServiceRequests, infrapdf.NewTicketGenerator(cfg.App.Name),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Relojería Admin API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:      cfg.App.Name,
		RemoteConfigured: remoteClient.Configured(),
		Accessors:        accessors,
		Analytics:        aggregator,
		Tickets:          ticketUC,
		Metrics:          registry,
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
