package server

import (
	"errors"

	"inventory/internal/handlers"
	"inventory/internal/middleware"
	"inventory/internal/repositories"
	"inventory/internal/response"
	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the HTTP app is built from.
// Publisher may be nil.
type Dependencies struct {
	DB        *gorm.DB
	Publisher services.EventPublisher
	Log       *logrus.Logger
}

// NewApp wires repositories, services and handlers into a Fiber app.
func NewApp(deps Dependencies) *fiber.App {
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	productRepo := repositories.NewGORMProductRepository(deps.DB)
	productService := services.NewProductService(productRepo, deps.Publisher, log)
	productHandler := handlers.NewProductHandler(productService, log)

	app := fiber.New(fiber.Config{
		AppName:               "inventory",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.CORS())

	app.Get("/health", productHandler.HandleHealth)
	productHandler.RegisterRoutes(app)

	return app
}

// errorHandler renders errors that escape the handlers, such as unknown
// routes and recovered panics, as error envelopes.
func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error."

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		}
		return response.Error(c, code, message)
	}
}
