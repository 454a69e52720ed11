package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/warf-hq/warf-backend/pkg/validator"

	"github.com/warf-hq/warf-backend/internal/adapter/handler"
	"github.com/warf-hq/warf-backend/internal/adapter/repository"
	"github.com/warf-hq/warf-backend/internal/infrastructure/cache"
	"github.com/warf-hq/warf-backend/internal/infrastructure/database"
	"github.com/warf-hq/warf-backend/internal/infrastructure/external/aiengine"
	"github.com/warf-hq/warf-backend/internal/infrastructure/external/facematch"
	"github.com/warf-hq/warf-backend/internal/infrastructure/storage"
	"github.com/warf-hq/warf-backend/internal/usecase/auth"
	"github.com/warf-hq/warf-backend/internal/usecase/meeting"
	"github.com/warf-hq/warf-backend/internal/usecase/minutes"
	"github.com/warf-hq/warf-backend/internal/usecase/task"
	"github.com/warf-hq/warf-backend/pkg/config"
	"github.com/warf-hq/warf-backend/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Redis holds the session-scoped face verification flags
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	flagStore := cache.NewRedisFlagStore(redisClient, cfg.Meeting.SessionFlagTTL)

	// Object storage for face reference images and task files
	log.Println("🗄️  Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	attendeeRepo := repository.NewAttendeeRepository(db)
	minutesRepo := repository.NewMinutesRepository(db)
	aiOutputRepo := repository.NewAIOutputRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// External services
	log.Println("🤖 Initializing external clients...")
	faceMatcher := facematch.NewClient(&cfg.FaceMatch)
	engine := aiengine.NewClient(&cfg.AIEngine)
	references := storage.NewProfileImageResolver(userRepo, minioClient)

	// JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Use case services
	log.Println("✨ Initializing services...")
	authService := auth.NewService(userRepo, sessionRepo, jwtManager, logger)
	meetingService := meeting.NewService(
		meetingRepo,
		attendeeRepo,
		userRepo,
		faceMatcher,
		references,
		flagStore,
		cfg.Meeting.DefaultRoomDomain,
		logger,
	)
	minutesService := minutes.NewService(minutesRepo, aiOutputRepo, meetingRepo, engine, logger)
	taskService := task.NewService(taskRepo, minutesRepo, meetingRepo, userRepo, logger)

	// Handlers and routes
	log.Println("🛣️  Setting up routes...")
	authHandler := handler.NewAuthHandler(authService, minioClient, logger)
	meetingHandler := handler.NewMeetingHandler(meetingService, logger)
	minutesHandler := handler.NewMinutesHandler(minutesService, logger)
	taskHandler := handler.NewTaskHandler(taskService, minioClient, logger)

	router := handler.NewRouter(cfg, authService, authHandler, meetingHandler, minutesHandler, taskHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
