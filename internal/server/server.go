package server

import (
	"context"
	"errors"
	"time"

	"productos/internal/config"
	"productos/internal/database"
	"productos/internal/docs"
	"productos/internal/handlers"
	"productos/internal/middleware"
	"productos/internal/repositories"
	"productos/internal/services"
	"productos/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Options are the collaborators New wires into the app.
type Options struct {
	FrontendURL string
	Log         *logrus.Logger
	Products    repositories.ProductRepository
	Publisher   services.EventPublisher
	DBStatus    database.Status
}

// New builds the Fiber app: middleware, product routes, health and docs.
func New(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "productos",
		ErrorHandler: errorHandler(opts.Log),
	})

	// --- Middleware ---
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: opts.Log.Writer(),
		Format: "${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.OriginGate(middleware.AllowOrigin(opts.FrontendURL), opts.Log))
	app.Use(middleware.CORS(opts.FrontendURL))

	// --- API Routes ---
	productService := services.NewProductService(opts.Products, opts.Publisher, opts.Log)
	productHandler := handlers.NewProductHandler(productService, opts.Log)
	productHandler.RegisterRoutes(app.Group("/api"))

	docs.RegisterRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		db := "connected"
		if !opts.DBStatus.Connected {
			db = "disconnected"
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"database": db,
			"time":     time.Now().Format(time.RFC3339),
		})
	})

	return app
}

// App is a fully wired server and the resources it owns.
type App struct {
	Fiber    *fiber.App
	DBStatus database.Status
	closers  []func() error
}

// Close releases the store and broker connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Setup bootstraps the store and the event publisher, then builds the app.
// Neither an unreachable store nor an unreachable broker stops it: the store
// is replaced by a repository that fails every call, and events are skipped.
func Setup(ctx context.Context, cfg config.Config, log *logrus.Logger) *App {
	app := &App{}

	var products repositories.ProductRepository
	if cfg.DBDriver == "memory" {
		products = repositories.NewMemoryProductRepository()
		app.DBStatus = database.Status{Connected: true}
		log.Warn("Using in-memory product store, data is lost on exit")
	} else {
		db, status := database.Bootstrap(ctx, database.Config{Driver: cfg.DBDriver, DSN: cfg.DatabaseURL}, log)
		app.DBStatus = status
		if status.Connected {
			products = repositories.NewGORMProductRepository(db)
			if sqlDB, err := db.DB(); err == nil {
				app.closers = append(app.closers, sqlDB.Close)
			}
		} else {
			products = repositories.NewUnavailableProductRepository(status.Err)
		}
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.WithError(err).Warn("Product events disabled")
		} else {
			publisher = mq
			app.closers = append(app.closers, mq.Close)
		}
	}

	app.Fiber = New(Options{
		FrontendURL: cfg.FrontendURL,
		Log:         log,
		Products:    products,
		Publisher:   publisher,
		DBStatus:    app.DBStatus,
	})
	return app
}

func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		log.WithError(err).WithField("request_id", c.Locals("requestid")).Error("Unhandled request error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": handlers.MsgServerError})
	}
}
