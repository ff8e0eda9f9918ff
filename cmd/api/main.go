package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/config"
	"github.com/01moynul/storefront-golang/internal/database"
	"github.com/01moynul/storefront-golang/internal/handlers"
	"github.com/01moynul/storefront-golang/internal/middleware"
	"github.com/01moynul/storefront-golang/internal/port"
	"github.com/01moynul/storefront-golang/internal/repository/memstore"
	"github.com/01moynul/storefront-golang/internal/repository/mysqlstore"
	"github.com/01moynul/storefront-golang/internal/repository/pgstore"
	"github.com/01moynul/storefront-golang/internal/routes"
	"github.com/01moynul/storefront-golang/internal/storage"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 1. --- Database Connection + Schema ---
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.DBDriver, err)
	}
	defer closeStore()

	// 2. --- First-run data ---
	seed := database.SeedOptions{AdminName: cfg.AdminName, Catalog: cfg.SeedCatalog}
	if cfg.AdminPassword != "" {
		seed.AdminEmail = cfg.AdminEmail
		seed.AdminPassword = cfg.AdminPassword
	} else {
		log.Println("WARNING: ADMIN_PASSWORD is not set, no admin account will be seeded.")
	}
	if err := database.Seed(ctx, store, seed); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// --- Application Setup ---
	money, err := handlers.NewMoneyFormatter(cfg.Currency, language.BrazilianPortuguese)
	if err != nil {
		log.Fatalf("Invalid CURRENCY: %v", err)
	}
	app := handlers.New(store, storage.NewImageStore(cfg.UploadDir, cfg.MaxUploadBytes), money)
	codec := auth.NewSessionCodec([]byte(cfg.SessionSecret), cfg.SessionTTL)

	// --- Router Setup ---
	router := routes.SetupRouter(app, codec, routes.Options{
		CORSOrigin: cfg.CORSOrigin,
		Session:    middleware.SessionOptions{CookieName: "session", Secure: cfg.SecureCookie},
		UploadDir:  cfg.UploadDir,
	})

	// --- Start Server ---
	log.Printf("Starting storefront API server on %s (store: %s)...", cfg.HTTPAddr, cfg.DBDriver)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStore connects to the configured backend and makes sure its schema
// exists. The returned func releases the connection pool.
func openStore(ctx context.Context, cfg config.Config) (port.Store, func(), error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := database.InitPostgresSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Println("Connected to PostgreSQL")
		return pgstore.New(pool), pool.Close, nil

	case config.DriverMemory:
		log.Println("WARNING: using the in-memory store, data is lost on restart.")
		return memstore.New(), func() {}, nil

	default:
		db, err := database.OpenMySQL(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := database.InitMySQLSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Println("Connected to MySQL")
		return mysqlstore.New(db), func() { db.Close() }, nil
	}
}
