package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/monk-io/network-nexus-project/src/middleware"
	"github.com/monk-io/network-nexus-project/src/models"
	"github.com/monk-io/network-nexus-project/src/repository"
)

// errUnresolvedUser distinguishes "no profile for this subject" from other
// lookup failures; handlers map it to 404 before touching anything else.
var errUnresolvedUser = errors.New("user not resolvable from subject")

// currentUser maps the verified identity subject to the caller's profile
func currentUser(c *fiber.Ctx, users repository.UserRepository) (*models.User, error) {
	sub := middleware.Subject(c)
	if sub == "" {
		return nil, errUnresolvedUser
	}

	user, err := users.GetBySub(c.Context(), sub)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errUnresolvedUser
		}
		return nil, err
	}
	return user, nil
}

// paging reads page/limit query params with the given default page size.
// Page numbers start at 1; limits are clamped to keep per-request work bounded.
func paging(c *fiber.Ctx, defaultLimit int) (page, limit int64) {
	p := c.QueryInt("page", 1)
	if p < 1 {
		p = 1
	}

	l := c.QueryInt("limit", defaultLimit)
	if l < 1 {
		l = defaultLimit
	}
	if l > 100 {
		l = 100
	}

	return int64(p), int64(l)
}

// objectIDParam parses a path parameter as a Mongo object id
func objectIDParam(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid id format")
	}
	return id, nil
}
