package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/career-architect/internal/services"
)

func RegisterRoutes(api fiber.Router, sessions services.SessionService) {
	sessionHandler := NewSessionHandler(sessions)
	wizardHandler := NewWizardHandler(sessions)
	analysisHandler := NewAnalysisHandler(sessions)
	resultHandler := NewResultHandler(sessions)

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/sessions", sessionHandler.HandleCreate)
	api.Get("/sessions/:id", sessionHandler.HandleGet)
	api.Delete("/sessions/:id", sessionHandler.HandleDelete)

	api.Post("/sessions/:id/wizard/advance", wizardHandler.HandleAdvance)
	api.Post("/sessions/:id/wizard/retreat", wizardHandler.HandleRetreat)
	api.Patch("/sessions/:id/wizard/profile", wizardHandler.HandleUpdateProfile)
	api.Post("/sessions/:id/wizard/skills", wizardHandler.HandleAddSkill)
	api.Delete("/sessions/:id/wizard/skills/:index", wizardHandler.HandleRemoveSkill)
	api.Post("/sessions/:id/wizard/target-roles", wizardHandler.HandleAddTargetRole)
	api.Delete("/sessions/:id/wizard/target-roles/:index", wizardHandler.HandleRemoveTargetRole)

	api.Post("/sessions/:id/submit", analysisHandler.HandleSubmit)
	api.Post("/sessions/:id/reset", analysisHandler.HandleReset)
	api.Post("/sessions/:id/dismiss-error", analysisHandler.HandleDismissError)

	api.Get("/sessions/:id/result", resultHandler.HandleGetResult)
	api.Get("/sessions/:id/dashboard", resultHandler.HandleGetDashboard)
}
