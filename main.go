package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tugas/internal/handlers"
	"tugas/internal/middleware"
	"tugas/internal/models"
	"tugas/internal/repositories"
	"tugas/internal/services"
	"tugas/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// --- Initialize Repositories ---
	// With a DATABASE_URL we run against PostgreSQL; without one the
	// in-memory repositories keep the service usable for local runs.
	var userRepo repositories.UserRepository
	var taskRepo repositories.TaskRepository
	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
		taskRepo = repositories.NewGORMTaskRepository(db)
	} else {
		log.Println("DATABASE_URL not set, using in-memory repositories")
		userRepo = repositories.NewMockUserRepository()
		taskRepo = repositories.NewMockTaskRepository()
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, task event publishing disabled")
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, jwtSecret)
	taskService := services.NewTaskService(taskRepo, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	authHandler.RegisterRoutes(apiV1)

	// Task routes (require a verified identity)
	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	taskHandler.RegisterRoutes(protectedRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for task events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Task Event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeTaskEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
