package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-distribucion/internal/application/activity"
	"github.com/jhoicas/Inventario-distribucion/internal/application/analytics"
	"github.com/jhoicas/Inventario-distribucion/internal/application/auth"
	"github.com/jhoicas/Inventario-distribucion/internal/application/inventory"
	"github.com/jhoicas/Inventario-distribucion/internal/application/movement"
	"github.com/jhoicas/Inventario-distribucion/internal/application/ports"
	"github.com/jhoicas/Inventario-distribucion/internal/application/usecase"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
	"github.com/jhoicas/Inventario-distribucion/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Inventario-distribucion/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-distribucion/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Inventario-distribucion/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Inventario-distribucion/internal/interfaces/http"
	"github.com/jhoicas/Inventario-distribucion/pkg/config"
	"github.com/jhoicas/Inventario-distribucion/pkg/logger"
)

// repos agrupa los adaptadores de persistencia según STORAGE_DRIVER.
type repos struct {
	txRunner  ports.TxRunner
	locations repository.LocationRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	inventory repository.InventoryRepository
	movements repository.MovementRepository
	activity  repository.ActivityLogRepository
	analytics repository.AnalyticsRepository
}

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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var (
		r      repos
		health []httpRouter.HealthChecker
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		r = repos{
			txRunner:  memory.NewTxRunner(store),
			locations: store.Locations(),
			products:  store.Products(),
			users:     store.Users(),
			inventory: store.Inventory(),
			movements: store.Movements(),
			activity:  store.ActivityLog(),
			analytics: store.Analytics(),
		}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		r = repos{
			txRunner:  postgres.NewTxRunner(pool),
			locations: postgres.NewLocationRepository(pool),
			products:  postgres.NewProductRepository(pool),
			users:     postgres.NewUserRepository(pool),
			inventory: postgres.NewInventoryRepository(pool),
			movements: postgres.NewMovementRepository(pool),
			activity:  postgres.NewActivityLogRepository(pool),
			analytics: postgres.NewAnalyticsRepository(pool),
		}
		health = append(health, httpRouter.HealthChecker{Name: "postgres", Check: pool.Ping})
	}

	// Redis es opcional: sin REDIS_ADDR el header Idempotency-Key se ignora.
	var idempotency movement.IdempotencyStore
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func(c *goredis.Client) { _ = c.Close() }(client)
		idempotency = infraredis.NewIdempotencyStore(client)
		health = append(health, httpRouter.HealthChecker{Name: "redis", Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
	}

	movementUC := movement.NewMovementUseCase(
		r.txRunner, r.movements, idempotency,
		infrapdf.NewDeliveryNoteGenerator(cfg.App.Name),
		movement.Config{IdempotencyTTL: cfg.Redis.IdempotencyTTL},
		log.Component("movements"),
	)
	authUC := auth.NewAuthUseCase(r.users, r.locations, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:    cfg.App.Name,
		MovementUC: movementUC,
		LedgerUC:   inventory.NewLedgerUseCase(r.txRunner, r.inventory),
		TrailUC:    activity.NewTrailUseCase(r.activity),
		LocationUC: usecase.NewLocationUseCase(r.locations),
		ProductUC:  usecase.NewProductUseCase(r.products),
		AuthUC:     authUC,
		Dashboard:  analytics.NewDashboardUseCase(r.analytics),
		JWTSecret:  cfg.JWT.Secret,
		Health:     health,
		Logger:     log.Component("http"),
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Distribución API",
	}))

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
