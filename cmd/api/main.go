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
	"github.com/jhoicas/Aurea-api/internal/application/auth"
	"github.com/jhoicas/Aurea-api/internal/application/report"
	"github.com/jhoicas/Aurea-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Aurea-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Aurea-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Aurea-api/internal/interfaces/http"
	"github.com/jhoicas/Aurea-api/pkg/config"
	"github.com/jhoicas/Aurea-api/pkg/logger"
	"github.com/jhoicas/Aurea-api/pkg/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	equipoRepo := postgres.NewEquipmentRepository(pool)
	ordenRepo := postgres.NewWorkOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)

	val := validation.New()

	equipmentUC := usecase.NewEquipmentUseCase(equipoRepo, val)
	workOrderUC := usecase.NewWorkOrderUseCase(ordenRepo, equipoRepo, val, log)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo)

	// PDF: informe de servicio técnico de órdenes cerradas
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reporteUC := report.NewReporteUseCase(ordenRepo, equipoRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, val, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Aurea API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EquipmentUC: equipmentUC,
		WorkOrderUC: workOrderUC,
		DashboardUC: dashboardUC,
		ReporteUC:   reporteUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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
