package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/career-architect/internal/models"
	"alfredoptarigan/career-architect/internal/services"
	"alfredoptarigan/career-architect/internal/wizard"
)

type WizardHandler struct {
	sessions services.SessionService
	validate *validator.Validate
}

func NewWizardHandler(sessions services.SessionService) *WizardHandler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &WizardHandler{
		sessions: sessions,
		validate: validate,
	}
}

func (h *WizardHandler) edit(c *fiber.Ctx, fn func(w *wizard.Wizard)) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.EditWizard(c.UserContext(), id, fn)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toSessionResponse(session))
}

// HandleAdvance handles POST /sessions/:id/wizard/advance
func (h *WizardHandler) HandleAdvance(c *fiber.Ctx) error {
	return h.edit(c, func(w *wizard.Wizard) { w.Advance() })
}

// HandleRetreat handles POST /sessions/:id/wizard/retreat
func (h *WizardHandler) HandleRetreat(c *fiber.Ctx) error {
	return h.edit(c, func(w *wizard.Wizard) { w.Retreat() })
}

// HandleUpdateProfile handles PATCH /sessions/:id/wizard/profile
func (h *WizardHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req models.ProfileUpdateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Invalid profile fields",
			"fields": fieldErrors(err),
		})
	}

	return h.edit(c, func(w *wizard.Wizard) {
		if req.Degree != nil {
			w.SetDegree(*req.Degree)
		}
		if req.Branch != nil {
			w.SetBranch(*req.Branch)
		}
		if req.Year != nil {
			w.SetYear(*req.Year)
		}
		if req.Availability != nil {
			w.SetAvailability(*req.Availability)
		}
		if req.Proficiency != nil {
			w.SetProficiency(models.Proficiency(*req.Proficiency))
		}
		if req.Timeline != nil {
			w.SetTimeline(models.Timeline(*req.Timeline))
		}
		if req.LearningStyle != nil {
			w.SetLearningStyle(models.LearningStyle(*req.LearningStyle))
		}
	})
}

// HandleAddSkill handles POST /sessions/:id/wizard/skills
func (h *WizardHandler) HandleAddSkill(c *fiber.Ctx) error {
	var req models.ListItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	return h.edit(c, func(w *wizard.Wizard) { w.AddSkill(req.Value) })
}

// HandleRemoveSkill handles DELETE /sessions/:id/wizard/skills/:index
func (h *WizardHandler) HandleRemoveSkill(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid index")
	}
	return h.edit(c, func(w *wizard.Wizard) { w.RemoveSkill(index) })
}

// HandleAddTargetRole handles POST /sessions/:id/wizard/target-roles
func (h *WizardHandler) HandleAddTargetRole(c *fiber.Ctx) error {
	var req models.ListItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	return h.edit(c, func(w *wizard.Wizard) { w.AddTargetRole(req.Value) })
}

// HandleRemoveTargetRole handles DELETE /sessions/:id/wizard/target-roles/:index
func (h *WizardHandler) HandleRemoveTargetRole(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid index")
	}
	return h.edit(c, func(w *wizard.Wizard) { w.RemoveTargetRole(index) })
}

func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range validationErrs {
		out[fe.Field()] = "must be one of " + fe.Param()
	}
	return out
}
