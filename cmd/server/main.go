package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/handlers"
	"taskboard/internal/logger"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	if err := logger.Init(cfg.GinMode != "release"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database (blocks until the store is reachable or the
	// retry budget is exhausted)
	if err := database.Connect(cfg); err != nil {
		logger.Error("failed to connect to database", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Error("failed to run migrations", err)
		os.Exit(1)
	}

	taskRepo := repository.NewTaskRepository(database.GetDB())
	taskService := services.NewTaskService(taskRepo)

	// Initialize AI service; without an API key the suggestion
	// endpoint answers 503 instead of crashing
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		logger.Warn("OPENAI_API_KEY not set, AI suggestions disabled")
	}

	webHandler := handlers.NewWebHandler(taskService)
	apiHandler := handlers.NewAPIHandler(taskService, aiService)

	// Initialize Gin router
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), gin.Recovery())

	// Cookie-backed session remembers the last-visited group
	store := cookie.NewStore([]byte(cfg.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == "release",
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("task_session", store))

	r.LoadHTMLGlob("web/templates/*")

	// Web routes
	r.GET("/", webHandler.Index)
	r.POST("/add", webHandler.AddTask)
	r.POST("/complete/:id", webHandler.CompleteTask)
	r.POST("/delete/:id", webHandler.DeleteTask)

	// Health check endpoint
	r.GET("/health", handlers.Health)

	// API routes
	api := r.Group("/api")
	api.Use(middleware.CORS(cfg.AllowedOrigins))
	{
		api.GET("/tasks", apiHandler.ListTasks)
		api.POST("/tasks", apiHandler.CreateTask)
		api.POST("/tasks/suggest", apiHandler.Suggest)
	}

	// Start server
	addr := ":" + cfg.ServerPort
	logger.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Error("server exited", err)
		os.Exit(1)
	}
}
