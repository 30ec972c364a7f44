package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fasthttp/router"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"fitness-tracker/internal/cache"
	"fitness-tracker/internal/config"
	"fitness-tracker/internal/handlers"
	"fitness-tracker/internal/middleware"
	"fitness-tracker/internal/repository"
	"fitness-tracker/internal/services"
	"fitness-tracker/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil && os.Getenv("ENV") != "docker" {
		log.Println("No .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}
	defer dbPool.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := dbPool.Ping(pingCtx); err != nil {
		pingCancel()
		log.Fatalf("База данных недоступна: %v", err)
	}
	pingCancel()
	utils.LogSuccess("Main", "Подключение к базе данных установлено")

	if err := runMigrations(cfg); err != nil {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}
	utils.LogSuccess("Main", "Миграции применены")

	// Кеш опционален: без REDIS_ADDR каждый запрос идёт напрямую в БД
	var redisCache *cache.RedisCache
	if cfg.RedisAddr != "" {
		redisCache = cache.NewRedisCache(cfg.RedisAddr)
		redisCtx, redisCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(redisCtx); err != nil {
			utils.LogWarning("Main", "Redis недоступен (%v), работаем без кеша", err)
			_ = redisCache.Close()
			redisCache = nil
		} else {
			utils.LogSuccess("Main", "Подключение к Redis установлено: %s", cfg.RedisAddr)
			defer redisCache.Close()
		}
		redisCancel()
	}

	userRepo := repository.NewPostgresUserRepository(dbPool)
	exerciseRepo := repository.NewPostgresExerciseRepository(dbPool)

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpiration)
	var exerciseService *services.ExerciseService
	if redisCache != nil {
		exerciseService = services.NewExerciseServiceWithCache(exerciseRepo, redisCache)
	} else {
		exerciseService = services.NewExerciseService(exerciseRepo)
	}

	authHandler := handlers.NewAuthHandler(authService, userRepo)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)
	healthHandler := handlers.NewHealthHandler(dbPool)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := router.New()
	r.GET("/health", healthHandler.Health)
	r.POST("/api/auth/register", authHandler.RegisterHandler)
	r.POST("/api/auth/login", authHandler.LoginHandler)
	r.GET("/api/auth/me", authMiddleware.RequireAuth(authHandler.MeHandler))
	r.GET("/api/exercises", authMiddleware.RequireAuth(exerciseHandler.ListExercises))
	r.POST("/api/exercises", authMiddleware.RequireAuth(exerciseHandler.CreateExercise))
	r.DELETE("/api/exercises/{id}", authMiddleware.RequireAuth(exerciseHandler.DeleteExercise))
	r.GET("/api/stats", authMiddleware.RequireAuth(exerciseHandler.GetStats))

	handler := middleware.CORS(cfg.CORSOrigin)(middleware.RequestLogging(r.Handler))

	httpServer := &fasthttp.Server{
		Handler: handler,
		Name:    "fitness-tracker",
	}

	go func() {
		utils.LogInfo("Main", "Сервер запускается на порту %s", cfg.Port)
		if err := httpServer.ListenAndServe(":" + cfg.Port); err != nil {
			log.Fatalf("Сервер не запустился: %v", err)
		}
	}()

	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChannel

	log.Println("Останавливаем сервер...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Принудительная остановка сервера: %v", err)
	}
	log.Println("Сервер остановлен")
}

func runMigrations(cfg *config.Config) error {
	m, err := migrate.New("file://"+cfg.MigrationsDir, cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
