package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Aurea-api/internal/application/auth"
	"github.com/jhoicas/Aurea-api/internal/application/report"
	"github.com/jhoicas/Aurea-api/internal/application/usecase"
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EquipmentUC *usecase.EquipmentUseCase
	WorkOrderUC *usecase.WorkOrderUseCase
	DashboardUC *usecase.DashboardUseCase
	ReporteUC   *report.ReporteUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	soloAdmin := RequireRole(entity.RolAdmin)
	adminOTecnico := RequireRole(entity.RolAdmin, entity.RolTecnico)

	// Equipos (protegido; escritura solo admin)
	equipos := protected.Group("/equipos")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC)
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC, deps.ReporteUC)
	equipos.Post("/", soloAdmin, equipmentHandler.Create)
	equipos.Get("/", equipmentHandler.List)
	equipos.Get("/:id", equipmentHandler.GetByID)
	equipos.Put("/:id", soloAdmin, equipmentHandler.Update)
	equipos.Post("/:id/baja", soloAdmin, equipmentHandler.Baja)
	equipos.Get("/:id/ordenes", workOrderHandler.ListByEquipo)

	// Órdenes de trabajo (protegido; cualquier rol reporta, transiciona admin/técnico)
	ordenes := protected.Group("/ordenes")
	ordenes.Post("/", workOrderHandler.Create)
	ordenes.Get("/abiertas", workOrderHandler.ListAbiertas)
	ordenes.Get("/:id", workOrderHandler.GetByID)
	ordenes.Put("/:id", adminOTecnico, workOrderHandler.Update)
	ordenes.Post("/:id/transicion", adminOTecnico, workOrderHandler.Transicionar)
	ordenes.Get("/:id/reporte", workOrderHandler.Reporte)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Resumen)
}
