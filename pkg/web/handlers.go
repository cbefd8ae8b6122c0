// Package web provides HTTP handlers and REST API endpoints for workflow
// authoring.
package web

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stepflow/stepflow/pkg/identity"
	"github.com/stepflow/stepflow/pkg/models"
	"github.com/stepflow/stepflow/pkg/services"
)

type APIHandlers struct {
	documentService *services.Document
	validator       *validator.Validate
}

func NewAPIHandlers(documentService *services.Document, validator *validator.Validate) *APIHandlers {
	return &APIHandlers{
		documentService: documentService,
		validator:       validator,
	}
}

// currentUser resolves the acting identity from the request headers set by
// the upstream auth proxy.
func currentUser(c fiber.Ctx) (*identity.User, error) {
	id := c.Get("X-User-Id")
	if id == "" {
		return nil, identity.ErrUnauthenticated
	}

	return &identity.User{
		ID:        id,
		Email:     c.Get("X-User-Email"),
		Name:      c.Get("X-User-Name"),
		AvatarURL: c.Get("X-User-Avatar"),
	}, nil
}

func (h *APIHandlers) ListWorkflows(c fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	workflows, err := h.documentService.List(c.Context(), user.ID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"workflows": workflows,
		"count":     len(workflows),
	})
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	created, err := h.documentService.Create(c.Context(), user)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(CreateWorkflowResponse{
		Workflow: created,
		Locator:  created.Locator(),
	})
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	locator := c.Params("locator")
	if locator == "" {
		return badRequest(c, "Workflow locator is required")
	}

	workflow, err := h.documentService.GetByLocator(c.Context(), locator)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) SaveWorkflow(c fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	locator := c.Params("locator")
	if locator == "" {
		return badRequest(c, "Workflow locator is required")
	}

	var req SaveWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	items := []models.Step{}

	if len(req.Items) > 0 {
		if err := models.ValidateItemsJSON(req.Items); err != nil {
			return badRequest(c, err.Error())
		}

		if err := json.Unmarshal(req.Items, &items); err != nil {
			return badRequest(c, "Invalid items payload")
		}
	}

	result, err := h.documentService.Save(c.Context(), user, locator, services.SaveRequest{
		Title:       req.Title,
		Description: req.Description,
		Items:       items,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(SaveWorkflowResponse{
		Workflow:       result.Document,
		Locator:        result.Locator,
		LocatorChanged: result.LocatorChanged,
	})
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	locator := c.Params("locator")
	if locator == "" {
		return badRequest(c, "Workflow locator is required")
	}

	if err := h.documentService.Delete(c.Context(), user, locator); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) UploadScreenshot(c fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	locator := c.Params("locator")
	if locator == "" {
		return badRequest(c, "Workflow locator is required")
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return badRequest(c, "Step index must be a non-negative integer")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Multipart field 'file' is required")
	}

	file, err := header.Open()
	if err != nil {
		return badRequest(c, "Unable to read uploaded file")
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return badRequest(c, "Unable to read uploaded file")
	}

	screenshot, err := h.documentService.AttachScreenshot(c.Context(), user, locator, index, raw)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(ScreenshotResponse{URL: screenshot.URL})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.documentService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Stepflow API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "Stepflow API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
