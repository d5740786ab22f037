package main

import (
	"context"
	"fmt"
	common_api "go-dutyleave/internal/api"
	"go-dutyleave/internal/config"
	"go-dutyleave/internal/database"
	emails "go-dutyleave/internal/email"
	"go-dutyleave/internal/features/application"
	"go-dutyleave/internal/features/auth"
	"go-dutyleave/internal/features/faculty"
	"go-dutyleave/internal/features/notification"
	"go-dutyleave/internal/features/reminder"
	"go-dutyleave/internal/features/student"
	"go-dutyleave/internal/logger"
	"go-dutyleave/internal/middleware"
	"go-dutyleave/pkg/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, cfg *config.Config, appRepo application.ApplicationRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.UseMemoryStorage() {
				return nil
			}
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if impl, ok := appRepo.(*application.ApplicationRepositoryImpl); ok {
					if err := impl.EnsureIndexes(ctx); err != nil {
						log.Printf("Failed to ensure application indexes: %v", err)
					}
				}
			}()
			return nil
		},
	})
}

// @title           Duty Leave Approval API
// @version         1.0
// @description     Multi-level approval workflow for student duty leave applications.

// @host            localhost:8000
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			emails.NewRepository,
			student.NewStudentRepository,
			faculty.NewFacultyRepository,
			application.NewApplicationRepository,

			emails.NewService,
			student.NewStudentService,
			faculty.NewFacultyService,
			application.NewApplicationService,
			notification.NewNotificationService,
			auth.NewAuthService,
			reminder.NewReminderService,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(s *notification.NotificationService) application.Notifier { return s },

			// Initialize Controller
			auth.NewAuthController,
			student.NewStudentController,
			application.NewApplicationController,

			// Initialize API Routes
			AsRoute(common_api.NewHealthApi),
			AsRoute(auth.NewAuthApi),
			AsRoute(student.NewStudentApi),
			AsRoute(application.NewApplicationApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			InitializeIndexes,
			reminder.RegisterHooks,
		),
	)

	app.Run()
}
