package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Servals/config"
	"github.com/lshigami/Servals/database"
	_ "github.com/lshigami/Servals/docs" // Swagger docs - auto-generated
	clubctrl "github.com/lshigami/Servals/internal/controller/club"
	studentctrl "github.com/lshigami/Servals/internal/controller/student"
	"github.com/lshigami/Servals/internal/logger"
	"github.com/lshigami/Servals/internal/middleware"
	"github.com/lshigami/Servals/internal/model"
	"github.com/lshigami/Servals/internal/repository"
	"github.com/lshigami/Servals/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Club Recruitment Test API
// @version 1.0
// @description API for club recruitment rounds: students apply for, start and submit timed tests; clubs manage rounds and rosters.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewRosterRepository,
			repository.NewLedgerRepository,
			repository.NewDomainRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewConsoleNotifier,
			func(
				testRepo repository.TestRepository,
				rosterRepo repository.RosterRepository,
				ledgerRepo repository.LedgerRepository,
				domainRepo repository.DomainRepository,
				notifier service.Notifier,
				db *gorm.DB,
			) service.TransitionService {
				return service.NewTransitionService(testRepo, rosterRepo, ledgerRepo, domainRepo, notifier, db)
			},
			service.NewDashboardService,
			service.NewAdminTestService,
			service.NewReconcileService,
		),

		// API Controllers Layer
		fx.Provide(
			studentctrl.NewTestController,
			clubctrl.NewAdminTestController,
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
	r := gin.New()

	// Route gin's request log through zerolog.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

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
	studentTestCtrl *studentctrl.TestController,
	clubTestCtrl *clubctrl.AdminTestController,
) {
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(cfg.JWTSecret))

	// Student routes: the lifecycle boundary plus the dashboard projections.
	studentGroup := api.Group("")
	studentGroup.Use(middleware.RequireRole(middleware.RoleStudent))
	{
		studentGroup.POST("/tests/:test_id/apply", studentTestCtrl.Apply)
		studentGroup.POST("/tests/:test_id/attempt", studentTestCtrl.Attempt)
		studentGroup.POST("/tests/:test_id/submit", studentTestCtrl.Submit)
		studentGroup.GET("/dashboard/applied", studentTestCtrl.AppliedDashboard)
		studentGroup.GET("/dashboard/started", studentTestCtrl.StartedDashboard)
	}

	// Club routes: test management and the reconciliation repair surface.
	clubGroup := api.Group("/club")
	clubGroup.Use(middleware.RequireRole(middleware.RoleClub))
	{
		clubGroup.POST("/tests", clubTestCtrl.CreateTest)
		clubGroup.GET("/tests", clubTestCtrl.ListTests)
		clubGroup.GET("/tests/:test_id", clubTestCtrl.GetTest)
		clubGroup.GET("/tests/:test_id/reconcile/:student_id", clubTestCtrl.ReconcileReport)
		clubGroup.POST("/tests/:test_id/reconcile/:student_id", clubTestCtrl.ReconcileRepair)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Recruitment test API server starting on port %s", cfg.Server.Port)
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
		&model.Club{},
		&model.Student{},
		&model.Test{},
		&model.TestParticipant{},
		&model.LedgerEntry{},
		&model.TestDomain{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
