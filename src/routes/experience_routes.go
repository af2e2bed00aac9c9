package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monk-io/network-nexus-project/src/controllers"
)

// ExperienceRoutes sets up work history routes. Listing is keyed by user
// id; mutation always targets an entry owned by the caller.
func ExperienceRoutes(app *fiber.App, ec *controllers.ExperienceController, protect fiber.Handler) {
	experience := app.Group("/api/experiences", protect)

	experience.Get("/user/:id", ec.ListExperiences)
	experience.Post("/", ec.CreateExperience)
	experience.Put("/:id", ec.UpdateExperience)
	experience.Delete("/:id", ec.DeleteExperience)
}
