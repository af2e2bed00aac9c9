package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monk-io/network-nexus-project/src/controllers"
)

// SkillRoutes sets up skill routes: per-user listing, add/remove on the
// caller's own profile and endorsements on other profiles
func SkillRoutes(app *fiber.App, sc *controllers.SkillController, protect fiber.Handler) {
	skill := app.Group("/api/skills", protect)

	skill.Get("/user/:id", sc.ListSkills)
	skill.Post("/", sc.CreateSkill)
	skill.Delete("/:id", sc.DeleteSkill)
	skill.Post("/:id/endorse", sc.EndorseSkill)
	skill.Delete("/:id/endorse", sc.UnendorseSkill)
}
