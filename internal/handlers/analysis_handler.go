package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/career-architect/internal/models"
	"alfredoptarigan/career-architect/internal/services"
)

type AnalysisHandler struct {
	sessions services.SessionService
}

func NewAnalysisHandler(sessions services.SessionService) *AnalysisHandler {
	return &AnalysisHandler{
		sessions: sessions,
	}
}

// HandleSubmit handles POST /sessions/:id/submit. The analysis runs in the
// background; poll GET /sessions/:id for the outcome.
func (h *AnalysisHandler) HandleSubmit(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	session, _, err := h.sessions.Submit(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.SubmitResponse{
		ID:    session.ID.String(),
		State: string(session.State),
	})
}

// HandleReset handles POST /sessions/:id/reset
func (h *AnalysisHandler) HandleReset(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.Reset(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toSessionResponse(session))
}

// HandleDismissError handles POST /sessions/:id/dismiss-error
func (h *AnalysisHandler) HandleDismissError(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.DismissError(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toSessionResponse(session))
}
