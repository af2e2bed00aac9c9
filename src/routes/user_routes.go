package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monk-io/network-nexus-project/src/controllers"
)

// UserRoutes sets up profile routes: upsert, self lookup, search, lookup by
// id or username, and per-user connection and post listings
func UserRoutes(app *fiber.App, uc *controllers.UserController, protect fiber.Handler) {
	user := app.Group("/api/users", protect)

	user.Post("/", uc.UpsertUser)
	user.Get("/me", uc.GetCurrentUser)
	user.Get("/search", uc.SearchUsers)
	user.Get("/username/:username", uc.GetUserByUsername)
	user.Get("/:id", uc.GetUser)
	user.Get("/:id/connections", uc.GetUserConnections)
	user.Get("/:id/posts", uc.GetUserPosts)
}
