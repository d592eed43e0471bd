package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"cardbinder/internal/database"
	"cardbinder/internal/handlers"
	"cardbinder/internal/rates"
	"cardbinder/internal/repositories"
	"cardbinder/internal/routes"
	"cardbinder/internal/services"
	"cardbinder/internal/tcgapi"
)

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	pool, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", envOr("REDIS_HOST", "localhost"), envOr("REDIS_PORT", "6379")),
	})

	// Fail fast when Redis is unreachable
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis successfully")
	}

	// Dependency injection
	userRepo := repositories.NewUserRepository(pool)
	catalogRepo := repositories.NewCatalogRepository(pool)
	collectionRepo := repositories.NewCollectionRepository(pool)
	prefsRepo := repositories.NewPreferencesRepository(pool)
	activityRepo := repositories.NewActivityRepository(pool)
	redisRepo := repositories.NewRedisRepository(rdb)

	tcgClient := tcgapi.NewClient()
	converter := rates.NewConverter()

	userService := services.NewUserService(userRepo, redisRepo)
	pricingService := services.NewPricingService(tcgClient, redisRepo, converter)
	catalogService := services.NewCatalogService(catalogRepo, pricingService)
	prefsService := services.NewPreferencesService(prefsRepo)
	collectionService := services.NewCollectionService(collectionRepo, catalogRepo, activityRepo, redisRepo, pricingService)
	dashboardService := services.NewDashboardService(activityRepo, redisRepo, prefsRepo)

	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, prefsService)
	collectionHandler := handlers.NewCollectionHandler(collectionService, prefsService)
	preferencesHandler := handlers.NewPreferencesHandler(prefsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{envOr("FRONTEND_ORIGIN", "http://localhost:3000")},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(
		router,
		authHandler,
		userHandler,
		catalogHandler,
		collectionHandler,
		preferencesHandler,
		dashboardHandler,
		userRepo,
	)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
