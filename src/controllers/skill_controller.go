package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/monk-io/network-nexus-project/src/lib"
	"github.com/monk-io/network-nexus-project/src/repository"
)

// SkillController handles profile skills and endorsements
type SkillController struct {
	skills repository.SkillRepository
	users  repository.UserRepository
}

func NewSkillController(skills repository.SkillRepository, users repository.UserRepository) *SkillController {
	return &SkillController{skills: skills, users: users}
}

// CreateSkillRequest is the body for POST /api/skills
type CreateSkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ListSkills returns a user's skills, most endorsed first
func (sc *SkillController) ListSkills(c *fiber.Ctx) error {
	userID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	skills, err := sc.skills.ListByUser(c.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to list skills")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(skills)
}

// CreateSkill adds a skill to the caller's profile. Skill names are unique
// per user.
func (sc *SkillController) CreateSkill(c *fiber.Ctx) error {
	user, err := currentUser(c, sc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	var req CreateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Name is required"))
	}

	skill, err := sc.skills.Create(c.Context(), user.Id, name, strings.TrimSpace(req.Category))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You already have this skill"))
		}
		log.Error().Err(err).Str("user_id", user.Id.Hex()).Msg("Failed to create skill")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create skill"))
	}

	return c.Status(fiber.StatusCreated).JSON(skill)
}

// DeleteSkill removes a skill the caller owns
func (sc *SkillController) DeleteSkill(c *fiber.Ctx) error {
	user, err := currentUser(c, sc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	skillID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := sc.skills.Delete(c.Context(), skillID, user.Id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Skill not found"))
		}
		log.Error().Err(err).Str("skill_id", skillID.Hex()).Msg("Failed to delete skill")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to delete skill"))
	}

	return c.JSON(lib.MessageResponse("Skill deleted"))
}

// EndorseSkill records the caller's endorsement on another user's skill
func (sc *SkillController) EndorseSkill(c *fiber.Ctx) error {
	user, err := currentUser(c, sc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	skillID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	skill, err := sc.skills.GetByID(c.Context(), skillID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Skill not found"))
		}
		log.Error().Err(err).Msg("Failed to get skill")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if skill.User == user.Id {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You can't endorse your own skill"))
	}

	if skill.EndorsedByUser(user.Id) {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You have already endorsed this skill"))
	}

	updated, err := sc.skills.Endorse(c.Context(), skillID, user.Id)
	if err != nil {
		log.Error().Err(err).Str("skill_id", skillID.Hex()).Msg("Failed to endorse skill")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to endorse skill"))
	}

	return c.JSON(updated)
}

// UnendorseSkill withdraws an endorsement the caller previously gave
func (sc *SkillController) UnendorseSkill(c *fiber.Ctx) error {
	user, err := currentUser(c, sc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	skillID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	skill, err := sc.skills.GetByID(c.Context(), skillID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Skill not found"))
		}
		log.Error().Err(err).Msg("Failed to get skill")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if !skill.EndorsedByUser(user.Id) {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You have not endorsed this skill"))
	}

	updated, err := sc.skills.Unendorse(c.Context(), skillID, user.Id)
	if err != nil {
		log.Error().Err(err).Str("skill_id", skillID.Hex()).Msg("Failed to withdraw endorsement")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to withdraw endorsement"))
	}

	return c.JSON(updated)
}
