package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
	"github.com/stepflow/stepflow/pkg/assets"
	"github.com/stepflow/stepflow/pkg/draft"
	"github.com/stepflow/stepflow/pkg/identity"
	"github.com/stepflow/stepflow/pkg/persistence"
	"github.com/stepflow/stepflow/pkg/services"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(fiber.StatusBadRequest).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func unauthorized(c fiber.Ctx) error {
	problem := problems.NewStatusProblem(fiber.StatusUnauthorized).
		WithInstance(c.Path()).
		WithType("unauthenticated").
		WithDetail("authentication required")

	return c.Status(fiber.StatusUnauthorized).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(fiber.StatusNotFound).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(fiber.StatusInternalServerError).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleServiceError maps domain errors onto problem responses.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case services.IsValidationError(err):
		return badRequest(c, err.Error())

	case services.IsForbiddenError(err):
		problem := problems.NewStatusProblem(fiber.StatusForbidden).
			WithInstance(c.Path()).
			WithType("forbidden").
			WithDetail(err.Error())

		return c.Status(fiber.StatusForbidden).JSON(problem)

	case errors.Is(err, identity.ErrUnauthenticated):
		return unauthorized(c)

	case persistence.IsDocumentNotFound(err):
		return notFound(c, "workflow not found")

	case errors.Is(err, assets.ErrTooLarge):
		problem := problems.NewStatusProblem(fiber.StatusRequestEntityTooLarge).
			WithInstance(c.Path()).
			WithType("image_too_large").
			WithDetail("file size must be less than 2MB")

		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(problem)

	case errors.Is(err, assets.ErrStepBusy):
		problem := problems.NewStatusProblem(fiber.StatusConflict).
			WithInstance(c.Path()).
			WithType("upload_in_flight").
			WithDetail(err.Error())

		return c.Status(fiber.StatusConflict).JSON(problem)

	case errors.Is(err, assets.ErrUploadFailed):
		problem := problems.NewStatusProblem(fiber.StatusBadGateway).
			WithInstance(c.Path()).
			WithType("upload_failed").
			WithDetail("something went wrong when uploading the image")

		return c.Status(fiber.StatusBadGateway).JSON(problem)

	case errors.Is(err, draft.ErrCommitFailed):
		problem := problems.NewStatusProblem(fiber.StatusInternalServerError).
			WithInstance(c.Path()).
			WithType("commit_failed").
			WithDetail("failed to save workflow, draft preserved")

		return c.Status(fiber.StatusInternalServerError).JSON(problem)

	default:
		return internalError(c, err)
	}
}
