package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lampstand/berea/config"
	"github.com/lampstand/berea/database"
	_ "github.com/lampstand/berea/docs" // Swagger docs - auto-generated
	educatorctrl "github.com/lampstand/berea/internal/controller/educator"
	webhookctrl "github.com/lampstand/berea/internal/controller/webhook"
	"github.com/lampstand/berea/internal/generator"
	"github.com/lampstand/berea/internal/jobs"
	"github.com/lampstand/berea/internal/logger"
	"github.com/lampstand/berea/internal/model"
	"github.com/lampstand/berea/internal/repository"
	"github.com/lampstand/berea/internal/service"
	"github.com/rs/zerolog/log" // Global zerolog instance
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Berea Quiz Generation API
// @version 1.0
// @description API for biblical quiz creation with AI question generation. Supports a synchronous create-and-wait flow and an asynchronous job flow with callback and polling.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Job tracker and generator client
		fx.Provide(
			jobs.NewTracker,
			generator.NewClient,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewGenerationService,
			service.NewAsyncGenerationService,
			service.NewQuizService,
		),

		// API Controllers Layer
		fx.Provide(
			educatorctrl.NewQuizController,
			webhookctrl.NewCallbackController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Request logging through the global zerolog instance.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	quizCtrl *educatorctrl.QuizController,
	callbackCtrl *webhookctrl.CallbackController,
) {
	apiGroup := router.Group("/api/v1")
	{
		educatorGroup := apiGroup.Group("/educator")
		educatorGroup.POST("/quizzes", quizCtrl.CreateQuiz)
		educatorGroup.POST("/quizzes/async", quizCtrl.CreateQuizAsync)

		apiGroup.GET("/quizzes", quizCtrl.GetAllQuizzes)
		apiGroup.GET("/quizzes/generation-status", quizCtrl.GetGenerationStatus)
		apiGroup.GET("/quizzes/:quiz_id", quizCtrl.GetQuizDetails)

		apiGroup.POST("/webhooks/generation-callback", callbackCtrl.GenerationCallback)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Berea quiz API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Quiz{},
		&model.Question{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
