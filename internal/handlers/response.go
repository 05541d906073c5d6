package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/career-architect/internal/models"
	"alfredoptarigan/career-architect/internal/services"
)

func parseSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID format")
	}
	return id, nil
}

// ErrorHandler renders errors that escape a handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

// serviceError maps service errors onto HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	case errors.Is(err, services.ErrAnalysisInProgress),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrWizardLocked),
		errors.Is(err, services.ErrNotOnFinalStep):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrWorkerStopped):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": models.AnalysisFailedMessage,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}

func toSessionResponse(session *models.Session) models.SessionResponse {
	response := models.SessionResponse{
		ID:        session.ID.String(),
		State:     string(session.State),
		Step:      session.Step,
		Draft:     session.Draft,
		HasResult: session.Result != nil,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	}
	if session.HasError() {
		message := session.ErrorMessage
		response.Error = &message
	}
	return response
}
