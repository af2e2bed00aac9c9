package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/monk-io/network-nexus-project/src/lib"
	"github.com/monk-io/network-nexus-project/src/models"
	"github.com/monk-io/network-nexus-project/src/repository"
)

// ExperienceController handles work history entries on a profile
type ExperienceController struct {
	experiences repository.ExperienceRepository
	users       repository.UserRepository
}

func NewExperienceController(experiences repository.ExperienceRepository, users repository.UserRepository) *ExperienceController {
	return &ExperienceController{experiences: experiences, users: users}
}

// ListExperiences returns a user's work history, current first
func (ec *ExperienceController) ListExperiences(c *fiber.Ctx) error {
	userID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	experiences, err := ec.experiences.ListByUser(c.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to list experiences")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(experiences)
}

// CreateExperience adds a work history entry to the caller's profile
func (ec *ExperienceController) CreateExperience(c *fiber.Ctx) error {
	user, err := currentUser(c, ec.users)
	if err != nil {
		return respondUserError(c, err)
	}

	var in models.ExperienceInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if err := validateExperience(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	exp, err := ec.experiences.Create(c.Context(), user.Id, in)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.Id.Hex()).Msg("Failed to create experience")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create experience"))
	}

	return c.Status(fiber.StatusCreated).JSON(exp)
}

// UpdateExperience replaces the client-settable fields of an entry the
// caller owns
func (ec *ExperienceController) UpdateExperience(c *fiber.Ctx) error {
	user, err := currentUser(c, ec.users)
	if err != nil {
		return respondUserError(c, err)
	}

	expID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var in models.ExperienceInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if err := validateExperience(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	exp, err := ec.experiences.Update(c.Context(), expID, user.Id, in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Experience not found"))
		}
		log.Error().Err(err).Str("experience_id", expID.Hex()).Msg("Failed to update experience")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to update experience"))
	}

	return c.JSON(exp)
}

// DeleteExperience removes an entry the caller owns
func (ec *ExperienceController) DeleteExperience(c *fiber.Ctx) error {
	user, err := currentUser(c, ec.users)
	if err != nil {
		return respondUserError(c, err)
	}

	expID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := ec.experiences.Delete(c.Context(), expID, user.Id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Experience not found"))
		}
		log.Error().Err(err).Str("experience_id", expID.Hex()).Msg("Failed to delete experience")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to delete experience"))
	}

	return c.JSON(lib.MessageResponse("Experience deleted"))
}

func validateExperience(in models.ExperienceInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("Title is required")
	}
	if strings.TrimSpace(in.Company) == "" {
		return errors.New("Company is required")
	}
	if in.StartDate.IsZero() {
		return errors.New("Start date is required")
	}
	if !in.Current && in.EndDate == nil {
		return errors.New("End date is required unless the role is current")
	}
	return nil
}
