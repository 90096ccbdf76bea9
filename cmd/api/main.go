package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pantrypal-api/internal/cache"
	"pantrypal-api/internal/config"
	"pantrypal-api/internal/genai"
	"pantrypal-api/internal/handler"
	"pantrypal-api/internal/middleware"
	"pantrypal-api/internal/repository"
	"pantrypal-api/internal/router"
	"pantrypal-api/internal/service"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting PantryPal API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize pantry repository based on config
	var pantryRepo repository.PantryRepository
	var sqliteStore *repository.SQLiteStore
	switch cfg.PantryDB.Type {
	case "mongodb", "mongo":
		mongoRepo, err := repository.NewMongoPantryRepository(
			cfg.PantryDB.MongoURI,
			cfg.PantryDB.MongoDatabase,
			cfg.PantryDB.MongoCollection,
		)
		if err != nil {
			log.Fatalf("Failed to initialize MongoDB: %v", err)
		}
		defer mongoRepo.Close()
		pantryRepo = mongoRepo
		log.Println("MongoDB pantry repository initialized")
	case "postgres", "postgresql":
		pgRepo, err := repository.NewPostgresPantryRepository(cfg.PantryDB.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		defer pgRepo.Close()
		pantryRepo = pgRepo
		log.Println("PostgreSQL pantry repository initialized")
	default: // sqlite
		store, err := repository.NewSQLiteStore(cfg.PantryDB.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		defer store.Close()
		sqliteStore = store
		pantryRepo = store
		log.Println("SQLite pantry repository initialized")
	}

	// Saved recipes and preferences always live in SQLite. When the pantry
	// itself runs on SQLite the same store is shared.
	if sqliteStore == nil {
		store, err := repository.NewSQLiteStore(cfg.PantryDB.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite for recipes: %v", err)
		}
		defer store.Close()
		sqliteStore = store
		log.Println("SQLite recipe/preference store initialized")
	}

	// Initialize MySQL connection for user accounts (optional)
	var err error
	var mysqlDB *sql.DB
	var accountRepo *repository.MySQLAccountRepository

	mysqlDSN := cfg.Database.DSN()
	mysqlDB, err = sql.Open("mysql", mysqlDSN)
	if err != nil {
		log.Printf("Warning: MySQL connection failed: %v", err)
	} else {
		mysqlDB.SetMaxOpenConns(10)
		mysqlDB.SetMaxIdleConns(5)
		mysqlDB.SetConnMaxLifetime(5 * time.Minute)

		if err := mysqlDB.Ping(); err != nil {
			log.Printf("Warning: MySQL ping failed: %v", err)
			mysqlDB.Close()
			mysqlDB = nil
		} else {
			accountRepo = repository.NewMySQLAccountRepository(mysqlDB)
			log.Println("MySQL account repository initialized")
		}
	}
	if mysqlDB != nil {
		defer mysqlDB.Close()
	}

	// Initialize Redis client
	redisAddr := cfg.Cache.RedisAddress()
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis connection failed: %v", err)
		redisClient = nil
	} else {
		log.Println("Redis client initialized")
	}
	cancel()

	// AI response cache: Redis when available, in-process otherwise
	var responseCache cache.Cache
	if redisClient != nil {
		responseCache = cache.NewRedisCache(redisClient, "pantrypal:ai:")
	} else {
		responseCache = cache.NewMemoryCache()
	}

	// Optional MongoDB-backed AI activity log
	var scanLogRepo repository.ScanLogRepository
	if cfg.PantryDB.MongoURI != "" {
		mongoLogs, err := repository.NewMongoScanLogRepository(
			cfg.PantryDB.MongoURI,
			cfg.PantryDB.MongoDatabase,
			cfg.PantryDB.MongoScanLogCollection,
		)
		if err != nil {
			log.Printf("Warning: scan log repository initialization failed: %v", err)
		} else {
			defer mongoLogs.Close()
			scanLogRepo = mongoLogs
			log.Println("MongoDB scan log repository initialized")
		}
	}

	// Initialize services
	pantryService := service.NewPantryService(pantryRepo, cfg.Expiration.SoonHorizonDays, cfg.Expiration.DefaultShelfLifeDays)
	preferenceService := service.NewPreferenceService(sqliteStore)

	var recipeService *service.RecipeService
	if cfg.AI.APIKey != "" {
		aiClient, err := genai.NewClient(genai.Config{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			log.Fatalf("Failed to initialize AI client: %v", err)
		}
		recipeService = service.NewRecipeService(service.RecipeServiceConfig{
			AI:          aiClient,
			ScanModel:   cfg.AI.ScanModel,
			RecipeModel: cfg.AI.RecipeModel,
			Responses:   responseCache,
			RecipeRepo:  sqliteStore,
			ScanLogRepo: scanLogRepo,
		})
		log.Println("AI recipe service initialized")
	} else {
		log.Println("GEMINI_API_KEY not set, AI endpoints disabled")
	}

	var tokenService *service.TokenService
	if redisClient != nil {
		tokenService = service.NewTokenService(redisClient)
	}

	// Background purge of long-expired items
	var purgeScheduler *service.PurgeScheduler
	if cfg.Expiration.PurgeEnabled {
		purgeScheduler = service.NewPurgeScheduler(pantryRepo, service.PurgeConfig{
			RetainExpired: time.Duration(cfg.Expiration.PurgeAfterDays) * 24 * time.Hour,
			PurgeInterval: cfg.Expiration.PurgeInterval,
		})
		purgeScheduler.Start()
		defer purgeScheduler.Stop()
	}

	// Initialize handlers
	healthHandler := handler.New(pantryRepo)
	pantryHandler := handler.NewPantryHandler(pantryService)
	preferenceHandler := handler.NewPreferenceHandler(preferenceService)
	adminHandler := handler.NewAdminHandler(pantryRepo, scanLogRepo, purgeScheduler, cfg.PantryDB.Type)

	var recipeHandler *handler.RecipeHandler
	if recipeService != nil {
		recipeHandler = handler.NewRecipeHandler(recipeService, preferenceService)
	}

	var authHandler *handler.AuthHandler
	if tokenService != nil && accountRepo != nil {
		authHandler = handler.NewAuthHandler(tokenService, accountRepo)
	}

	// Create auth middleware with injected dependencies (NO GLOBALS!)
	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthConfig{
		TokenService: tokenService,
	})

	// Create router
	r := router.New(router.Config{
		Handler:           healthHandler,
		PantryHandler:     pantryHandler,
		RecipeHandler:     recipeHandler,
		PreferenceHandler: preferenceHandler,
		AdminHandler:      adminHandler,
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	fmt.Println("Goodbye!")
}
