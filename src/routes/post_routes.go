package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monk-io/network-nexus-project/src/controllers"
)

// PostRoutes sets up post routes: the global listing, the personalized
// feed, post CRUD, comments and likes
func PostRoutes(app *fiber.App, pc *controllers.PostController, protect fiber.Handler) {
	post := app.Group("/api/posts", protect)

	post.Get("/", pc.ListPosts)
	post.Get("/feed", pc.GetFeed)
	post.Post("/", pc.CreatePost)
	post.Get("/:id", pc.GetPost)
	post.Delete("/:id", pc.DeletePost)
	post.Get("/:id/comments", pc.ListComments)
	post.Post("/:id/comments", pc.CreateComment)
	post.Post("/:id/like", pc.LikePost)
	post.Delete("/:id/like", pc.UnlikePost)
}
