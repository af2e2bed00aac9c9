package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monk-io/network-nexus-project/src/controllers"
)

// EducationRoutes sets up education history routes, mirroring the
// experience routes
func EducationRoutes(app *fiber.App, ec *controllers.EducationController, protect fiber.Handler) {
	education := app.Group("/api/educations", protect)

	education.Get("/user/:id", ec.ListEducations)
	education.Post("/", ec.CreateEducation)
	education.Put("/:id", ec.UpdateEducation)
	education.Delete("/:id", ec.DeleteEducation)
}
