// Command seed carga datos de demostración: ubicaciones de cada tipo, productos,
// un usuario por rol y stock inicial en la bodega. Requiere STORAGE_DRIVER=postgres.
package main

import (
	"context"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-distribucion/internal/application/auth"
	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/application/inventory"
	"github.com/jhoicas/Inventario-distribucion/internal/application/usecase"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/authz"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-distribucion/pkg/config"
	"github.com/jhoicas/Inventario-distribucion/pkg/logger"
)

const demoPassword = "admin123"

type seedLocation struct {
	name, typ, role, email, userName string
}

var seedLocations = []seedLocation{
	{"Bodega Principal", entity.LocationTypeWarehouse, entity.RoleWarehouseManager, "warehouse@inventory.com", "Jefe de Bodega"},
	{"Distribuidor A", entity.LocationTypeDistributor, entity.RoleDistributor, "distributor@inventory.com", "Distribuidor"},
	{"Distribuidor B", entity.LocationTypeDistributor, "", "", ""},
	{"Agente de Ventas 1", entity.LocationTypeSalesAgent, entity.RoleSalesAgent, "agent@inventory.com", "Agente de Ventas"},
	{"Agente de Ventas 2", entity.LocationTypeSalesAgent, "", "", ""},
	{"Tienda A", entity.LocationTypeStore, entity.RoleStoreManager, "store@inventory.com", "Encargado de Tienda"},
	{"Tienda B", entity.LocationTypeStore, "", "", ""},
}

var seedProducts = []dto.CreateProductRequest{
	{Name: "Arroz 500g", SKU: "ARZ-500", Category: "Granos", UnitPrice: decimal.RequireFromString("2.50")},
	{Name: "Frijol rojo 1kg", SKU: "FRJ-1000", Category: "Granos", UnitPrice: decimal.RequireFromString("4.20")},
	{Name: "Aceite vegetal 1L", SKU: "ACT-1000", Category: "Abarrotes", UnitPrice: decimal.RequireFromString("6.80")},
	{Name: "Azúcar 2kg", SKU: "AZC-2000", Category: "Abarrotes", UnitPrice: decimal.RequireFromString("3.10")},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if cfg.Storage.Driver != config.StoragePostgres {
		log.Error().Str("storage", cfg.Storage.Driver).Msg("seed solo aplica a STORAGE_DRIVER=postgres")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	users := postgres.NewUserRepository(pool)
	if existing, err := users.GetByEmail(ctx, "admin@inventory.com"); err != nil {
		log.Fatal().Err(err).Msg("consultar admin")
	} else if existing != nil {
		log.Info().Msg("la base ya tiene datos de demostración; nada que hacer")
		return
	}

	locationRepo := postgres.NewLocationRepository(pool)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	ledger := inventory.NewLedgerUseCase(postgres.NewTxRunner(pool), postgres.NewInventoryRepository(pool))
	authUC := auth.NewAuthUseCase(users, locationRepo, auth.JWTConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	root := authz.Actor{Role: entity.RoleSuperAdmin}
	admin, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
		Email: "admin@inventory.com", Password: demoPassword, Name: "Super Admin", Role: entity.RoleSuperAdmin,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear super admin")
	}
	root.UserID = admin.ID

	var warehouseID string
	for _, sl := range seedLocations {
		loc, err := locationUC.Create(ctx, root, dto.CreateLocationRequest{Name: sl.name, Type: sl.typ})
		if err != nil {
			log.Fatal().Err(err).Str("location", sl.name).Msg("crear ubicación")
		}
		if sl.typ == entity.LocationTypeWarehouse && warehouseID == "" {
			warehouseID = loc.ID
		}
		if sl.role == "" {
			continue
		}
		if _, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
			Email: sl.email, Password: demoPassword, Name: sl.userName, Role: sl.role, LocationID: loc.ID,
		}); err != nil {
			log.Fatal().Err(err).Str("email", sl.email).Msg("crear usuario")
		}
	}

	for i, p := range seedProducts {
		product, err := productUC.Create(ctx, root, p)
		if err != nil {
			log.Fatal().Err(err).Str("sku", p.SKU).Msg("crear producto")
		}
		if _, err := ledger.AddInitialStock(ctx, root, dto.InitialStockRequest{
			LocationID: warehouseID,
			ProductID:  product.ID,
			Quantity:   100 * (i + 1),
		}); err != nil {
			log.Fatal().Err(err).Str("sku", p.SKU).Msg("stock inicial")
		}
	}

	log.Info().
		Int("locations", len(seedLocations)).
		Int("products", len(seedProducts)).
		Str("password", demoPassword).
		Msg("datos de demostración cargados")
}
