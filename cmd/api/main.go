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

	"github.com/clinivac/npwt-inventario/internal/application/auth"
	"github.com/clinivac/npwt-inventario/internal/application/inventory"
	"github.com/clinivac/npwt-inventario/internal/application/procedures"
	"github.com/clinivac/npwt-inventario/internal/application/reports"
	"github.com/clinivac/npwt-inventario/internal/application/usecase"
	"github.com/clinivac/npwt-inventario/internal/domain/authz"
	infracache "github.com/clinivac/npwt-inventario/internal/infrastructure/cache"
	infrapdf "github.com/clinivac/npwt-inventario/internal/infrastructure/pdf"
	"github.com/clinivac/npwt-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/clinivac/npwt-inventario/internal/interfaces/http"
	"github.com/clinivac/npwt-inventario/pkg/config"
	"github.com/clinivac/npwt-inventario/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	procedureRepo := postgres.NewProcedureRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	machineRepo := postgres.NewMachineRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de reportes opcional: REDIS_ADDR vacío lo deshabilita.
	redisClient := infracache.NewRedisClient(ctx, cfg.Redis, log)
	var reportCache reports.Cache
	if redisClient != nil {
		defer redisClient.Close()
		reportCache = infracache.NewReportCache(
			redisClient, time.Duration(cfg.Redis.TTLSecs)*time.Second, log,
		)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de reportes habilitado")
	}

	checker := authz.NewRoleChecker()

	inventoryUC := inventory.NewUseCase(txRunner, productRepo, movementRepo, procedureRepo, patientRepo, checker, log)
	procedureUC := procedures.NewUseCase(procedureRepo, patientRepo, machineRepo, checker, log)
	productUC := usecase.NewProductUseCase(productRepo)
	patientUC := usecase.NewPatientUseCase(patientRepo, checker)
	machineUC := usecase.NewMachineUseCase(machineRepo, procedureRepo, checker)
	dashboardUC := usecase.NewDashboardUseCase(productRepo, procedureRepo, machineRepo, movementRepo)
	consumptionUC := reports.NewConsumptionUseCase(productRepo, movementRepo, procedureRepo, log)
	invReportUC := reports.NewInventoryUseCase(productRepo, reportCache, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // los PDFs de consumo pueden tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "NPWT Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		PatientUC:     patientUC,
		MachineUC:     machineUC,
		DashboardUC:   dashboardUC,
		InventoryUC:   inventoryUC,
		ProcedureUC:   procedureUC,
		ConsumptionUC: consumptionUC,
		InvReportUC:   invReportUC,
		PDFGen:        pdfGenerator,
		RateLimiter:   httpRouter.NewRateLimiter(20, 40),
		JWTSecret:     cfg.JWT.Secret,
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
