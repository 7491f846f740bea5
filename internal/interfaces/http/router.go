package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-distribucion/internal/application/activity"
	"github.com/jhoicas/Inventario-distribucion/internal/application/analytics"
	"github.com/jhoicas/Inventario-distribucion/internal/application/auth"
	"github.com/jhoicas/Inventario-distribucion/internal/application/inventory"
	"github.com/jhoicas/Inventario-distribucion/internal/application/movement"
	"github.com/jhoicas/Inventario-distribucion/internal/application/usecase"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

// HealthChecker dependencia que /health consulta (DB, Redis). Nombre para el reporte.
type HealthChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName    string
	MovementUC *movement.MovementUseCase
	LedgerUC   *inventory.LedgerUseCase
	TrailUC    *activity.TrailUseCase
	LocationUC *usecase.LocationUseCase
	ProductUC  *usecase.ProductUseCase
	AuthUC     *auth.AuthUseCase
	Dashboard  *analytics.DashboardUseCase
	JWTSecret  string
	Health     []HealthChecker
	Logger     zerolog.Logger
}

// NewApp crea la app Fiber con los middlewares base y registra las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	errs := errorMapper{log: deps.Logger}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return errs.write(c, err)
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Logger))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	errs := errorMapper{log: deps.Logger}
	val := newRequestValidator()

	app.Get("/health", healthHandler(deps.AppName, deps.Health))

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth: login público, alta de usuarios solo admin.
	authHandler := NewAuthHandler(deps.AuthUC, errs, val)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", requireAuth, RequireRole(entity.RoleSuperAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)

	hierarchyHandler := NewHierarchyHandler(errs)
	protected.Get("/hierarchy", hierarchyHandler.Get)

	catalog := NewCatalogHandler(deps.LocationUC, deps.ProductUC, errs, val)
	protected.Get("/locations", catalog.ListLocations)
	protected.Post("/locations", catalog.CreateLocation)
	protected.Get("/locations/:id", catalog.GetLocation)
	protected.Get("/products", catalog.ListProducts)
	protected.Post("/products", catalog.CreateProduct)
	protected.Get("/products/:id", catalog.GetProduct)

	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, errs, val)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.Get)
	movements.Put("/:id", movementHandler.Update)
	movements.Get("/:id/delivery-note", movementHandler.DeliveryNote)

	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, errs, val)
	inv.Get("/", inventoryHandler.List)
	inv.Post("/initial-stock", RequireRole(entity.RoleSuperAdmin, entity.RoleWarehouseManager), inventoryHandler.AddInitialStock)
	inv.Post("/adjust", RequireRole(entity.RoleSuperAdmin), inventoryHandler.Adjust)

	logs := protected.Group("/activity-logs")
	activityHandler := NewActivityHandler(deps.TrailUC, errs, val)
	logs.Get("/", activityHandler.Recent)
	logs.Post("/", activityHandler.Record)

	dashboardHandler := NewDashboardHandler(deps.Dashboard, errs)
	protected.Get("/dashboard/stats", dashboardHandler.Stats)
}

// healthHandler responde 200 si todas las dependencias responden, 503 si alguna falla.
func healthHandler(service string, checks []HealthChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		status := fiber.StatusOK
		deps := fiber.Map{}
		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				status = fiber.StatusServiceUnavailable
				deps[hc.Name] = err.Error()
				continue
			}
			deps[hc.Name] = "ok"
		}
		state := "ok"
		if status != fiber.StatusOK {
			state = "degraded"
		}
		return c.Status(status).JSON(fiber.Map{"status": state, "service": service, "dependencies": deps})
	}
}
