package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinivac/npwt-inventario/internal/application/auth"
	"github.com/clinivac/npwt-inventario/internal/application/inventory"
	"github.com/clinivac/npwt-inventario/internal/application/procedures"
	"github.com/clinivac/npwt-inventario/internal/application/reports"
	"github.com/clinivac/npwt-inventario/internal/application/usecase"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	PatientUC     *usecase.PatientUseCase
	MachineUC     *usecase.MachineUseCase
	DashboardUC   *usecase.DashboardUseCase
	InventoryUC   *inventory.UseCase
	ProcedureUC   *procedures.UseCase
	ConsumptionUC *reports.ConsumptionUseCase
	InvReportUC   *reports.InventoryUseCase
	PDFGen        reports.PDFGenerator
	RateLimiter   *RateLimiter
	JWTSecret     string
}

// Router registra las rutas de la API. Los gates de rol por grupo son el corte
// grueso; la autorización por acción se repite en los casos de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Handler())
	}

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	warehouseRoles := RequireRole(entity.RoleAdmin, entity.RoleBodega)
	clinicRoles := RequireRole(entity.RoleAdmin, entity.RoleEnfermeria)

	// Products (lecturas abiertas a todo rol autenticado; escrituras admin|bodega)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.InventoryUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", warehouseRoles, productHandler.Create)
	products.Put("/:id", warehouseRoles, productHandler.Update)

	// Inventory (ingreso masivo admin|bodega; consultas abiertas)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.InvReportUC)
	invGroup.Post("/entries", warehouseRoles, inventoryHandler.BulkStockEntry)
	invGroup.Get("/movements/:productId", inventoryHandler.MovementHistory)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/reconcile/:productId", RequireRole(entity.RoleAdmin), inventoryHandler.Reconcile)

	// Procedures (escrituras admin|enfermeria; lecturas abiertas)
	procGroup := protected.Group("/procedures")
	procedureHandler := NewProcedureHandler(deps.ProcedureUC, deps.InventoryUC)
	procGroup.Get("/", procedureHandler.List)
	procGroup.Get("/:id", procedureHandler.GetByID)
	procGroup.Get("/:id/products", procedureHandler.ListProducts)
	procGroup.Post("/", clinicRoles, procedureHandler.Create)
	procGroup.Post("/:id/products", clinicRoles, procedureHandler.Consume)
	procGroup.Post("/:id/close", clinicRoles, procedureHandler.Close)
	procGroup.Post("/:id/cancel", clinicRoles, procedureHandler.Cancel)

	// Patients (escrituras admin|enfermeria)
	patients := protected.Group("/patients")
	patientHandler := NewPatientHandler(deps.PatientUC)
	patients.Get("/", patientHandler.List)
	patients.Get("/:id", patientHandler.GetByID)
	patients.Post("/", clinicRoles, patientHandler.Create)
	patients.Put("/:id", clinicRoles, patientHandler.Update)

	// Machines (escrituras admin|enfermeria)
	machines := protected.Group("/machines")
	machineHandler := NewMachineHandler(deps.MachineUC)
	machines.Get("/", machineHandler.List)
	machines.Get("/:id", machineHandler.GetByID)
	machines.Post("/", clinicRoles, machineHandler.Create)
	machines.Put("/:id", clinicRoles, machineHandler.Update)

	// Reports
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ConsumptionUC, deps.InvReportUC, deps.PDFGen)
	reportsGroup.Get("/consumption", reportHandler.Consumption)
	reportsGroup.Get("/consumption/pdf", reportHandler.ConsumptionPDF)
	reportsGroup.Get("/inventory", reportHandler.Inventory)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
}
