package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/career-architect/internal/dashboard"
	"alfredoptarigan/career-architect/internal/models"
	"alfredoptarigan/career-architect/internal/services"
)

type ResultHandler struct {
	sessions services.SessionService
}

func NewResultHandler(sessions services.SessionService) *ResultHandler {
	return &ResultHandler{
		sessions: sessions,
	}
}

func (h *ResultHandler) loadResult(c *fiber.Ctx) (*models.ArchitectResponse, error) {
	id, err := parseSessionID(c)
	if err != nil {
		return nil, err
	}

	session, err := h.sessions.Get(c.UserContext(), id)
	if err != nil {
		return nil, serviceError(c, err)
	}

	if session.State != models.StateResult || session.Result == nil {
		response := fiber.Map{
			"error": "Result not available",
			"state": session.State,
		}
		if session.HasError() {
			response["error"] = session.ErrorMessage
		}
		return nil, c.Status(fiber.StatusConflict).JSON(response)
	}

	return session.Result, nil
}

// HandleGetResult handles GET /sessions/:id/result
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	result, err := h.loadResult(c)
	if result == nil {
		return err
	}
	return c.JSON(result)
}

// HandleGetDashboard handles GET /sessions/:id/dashboard
func (h *ResultHandler) HandleGetDashboard(c *fiber.Ctx) error {
	result, err := h.loadResult(c)
	if result == nil {
		return err
	}
	return c.JSON(dashboard.Render(result))
}
