package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/monk-io/network-nexus-project/src/lib"
	"github.com/monk-io/network-nexus-project/src/middleware"
	"github.com/monk-io/network-nexus-project/src/models"
	"github.com/monk-io/network-nexus-project/src/repository"
)

const searchResultLimit = 20

// UserController handles profile CRUD and lookup
type UserController struct {
	users       repository.UserRepository
	connections repository.ConnectionRepository
	posts       repository.PostRepository
}

func NewUserController(
	users repository.UserRepository,
	connections repository.ConnectionRepository,
	posts repository.PostRepository,
) *UserController {
	return &UserController{users: users, connections: connections, posts: posts}
}

// UpsertUser creates or updates the caller's profile, keyed by the
// identity provider's subject. Usernames are normalized to lowercase.
func (uc *UserController) UpsertUser(c *fiber.Ctx) error {
	sub := middleware.Subject(c)
	if sub == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized"))
	}

	var req models.UserUpsert
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Name is required"))
	}
	if strings.TrimSpace(req.Username) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Username is required"))
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))

	user, err := uc.users.Upsert(c.Context(), sub, req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Username is already taken"))
		}
		log.Error().Err(err).Str("sub", sub).Msg("Failed to upsert user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to save profile"))
	}

	return c.JSON(user)
}

// GetCurrentUser returns the caller's own profile
func (uc *UserController) GetCurrentUser(c *fiber.Ctx) error {
	user, err := currentUser(c, uc.users)
	if err != nil {
		return respondUserError(c, err)
	}
	return c.JSON(user)
}

// GetUser returns a user by id
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	userID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := uc.users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		log.Error().Err(err).Msg("Failed to get user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(user)
}

// GetUserByUsername returns a user by handle
func (uc *UserController) GetUserByUsername(c *fiber.Ctx) error {
	username := strings.ToLower(c.Params("username"))
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Username is required"))
	}

	user, err := uc.users.GetByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		log.Error().Err(err).Msg("Failed to get user by username")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(user)
}

// SearchUsers matches name, username and headline case-insensitively
func (uc *UserController) SearchUsers(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Query is required"))
	}

	users, err := uc.users.Search(c.Context(), query, searchResultLimit)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Failed to search users")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(users)
}

// GetUserConnections lists any user's connected peers, paginated
func (uc *UserController) GetUserConnections(c *fiber.Ctx) error {
	userID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	page, limit := paging(c, 50)

	conns, err := uc.connections.ListConnected(c.Context(), userID, page, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to list connections")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	otherIDs := make([]primitive.ObjectID, 0, len(conns))
	for i := range conns {
		otherIDs = append(otherIDs, conns[i].Other(userID))
	}

	users, err := uc.users.GetManyByIDs(c.Context(), otherIDs)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to resolve connected users")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(users)
}

// GetUserPosts lists posts authored by a user, newest first
func (uc *UserController) GetUserPosts(c *fiber.Ctx) error {
	userID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	page, limit := paging(c, 50)

	posts, err := uc.posts.ListByAuthor(c.Context(), userID, page, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to list user posts")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(posts)
}
