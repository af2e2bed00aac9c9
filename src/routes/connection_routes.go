package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monk-io/network-nexus-project/src/controllers"
)

// ConnectionRoutes sets up connection routes: listing connections and
// pending requests, suggestions, sending requests, accepting or rejecting
// them and removing edges
func ConnectionRoutes(app *fiber.App, cc *controllers.ConnectionController, protect fiber.Handler) {
	connection := app.Group("/api/connections", protect)

	connection.Get("/", cc.ListConnections)
	connection.Get("/pending", cc.ListPending)
	connection.Get("/suggestions", cc.GetSuggestions)
	connection.Post("/", cc.CreateConnection)
	connection.Patch("/:id", cc.UpdateConnection)
	connection.Delete("/:id", cc.DeleteConnection)
}
