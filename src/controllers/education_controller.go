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

// EducationController handles education entries on a profile
type EducationController struct {
	educations repository.EducationRepository
	users      repository.UserRepository
}

func NewEducationController(educations repository.EducationRepository, users repository.UserRepository) *EducationController {
	return &EducationController{educations: educations, users: users}
}

// ListEducations returns a user's education history, current first
func (ec *EducationController) ListEducations(c *fiber.Ctx) error {
	userID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	educations, err := ec.educations.ListByUser(c.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to list education entries")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(educations)
}

// CreateEducation adds an education entry to the caller's profile
func (ec *EducationController) CreateEducation(c *fiber.Ctx) error {
	user, err := currentUser(c, ec.users)
	if err != nil {
		return respondUserError(c, err)
	}

	var in models.EducationInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if err := validateEducation(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	edu, err := ec.educations.Create(c.Context(), user.Id, in)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.Id.Hex()).Msg("Failed to create education entry")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create education entry"))
	}

	return c.Status(fiber.StatusCreated).JSON(edu)
}

// UpdateEducation replaces the client-settable fields of an entry the
// caller owns
func (ec *EducationController) UpdateEducation(c *fiber.Ctx) error {
	user, err := currentUser(c, ec.users)
	if err != nil {
		return respondUserError(c, err)
	}

	eduID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var in models.EducationInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if err := validateEducation(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	edu, err := ec.educations.Update(c.Context(), eduID, user.Id, in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Education entry not found"))
		}
		log.Error().Err(err).Str("education_id", eduID.Hex()).Msg("Failed to update education entry")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to update education entry"))
	}

	return c.JSON(edu)
}

// DeleteEducation removes an entry the caller owns
func (ec *EducationController) DeleteEducation(c *fiber.Ctx) error {
	user, err := currentUser(c, ec.users)
	if err != nil {
		return respondUserError(c, err)
	}

	eduID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := ec.educations.Delete(c.Context(), eduID, user.Id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Education entry not found"))
		}
		log.Error().Err(err).Str("education_id", eduID.Hex()).Msg("Failed to delete education entry")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to delete education entry"))
	}

	return c.JSON(lib.MessageResponse("Education entry deleted"))
}

func validateEducation(in models.EducationInput) error {
	if strings.TrimSpace(in.School) == "" {
		return errors.New("School is required")
	}
	if in.StartDate.IsZero() {
		return errors.New("Start date is required")
	}
	if !in.Current && in.EndDate == nil {
		return errors.New("End date is required unless currently enrolled")
	}
	return nil
}
