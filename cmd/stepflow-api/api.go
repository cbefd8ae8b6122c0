// Package main provides the Stepflow API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/stepflow/stepflow/pkg/assets"
	"github.com/stepflow/stepflow/pkg/persistence"
	"github.com/stepflow/stepflow/pkg/preview"
	"github.com/stepflow/stepflow/pkg/services"
	"github.com/stepflow/stepflow/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	store       assets.Store
	cache       preview.Cache
	origin      string
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	store assets.Store,
	cache preview.Cache,
	origin string,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		store:       store,
		cache:       cache,
		origin:      origin,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	uploader := assets.NewUploader(a.store)
	documentService := services.NewDocument(a.persistence, uploader, a.origin)

	handlers := web.NewAPIHandlers(documentService, a.validate)
	previewHandlers := web.NewPreviewHandlers(preview.NewCardRenderer(), a.cache, a.logger)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Stepflow API")
	})

	w := app.Group("/workflows")
	w.Get("/", handlers.ListWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Get("/:locator", handlers.GetWorkflow)
	w.Put("/:locator/save", handlers.SaveWorkflow)
	w.Delete("/:locator", handlers.DeleteWorkflow)
	w.Post("/:locator/steps/:index/screenshot", handlers.UploadScreenshot)

	app.Get(preview.BasePath, previewHandlers.RenderPreview)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
