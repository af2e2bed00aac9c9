package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/monk-io/network-nexus-project/src/lib"
	"github.com/monk-io/network-nexus-project/src/models"
	"github.com/monk-io/network-nexus-project/src/repository"
)

const defaultSuggestionSize = 4

// ConnectionController handles the connection graph: listing, requests,
// accept/reject and suggestions
type ConnectionController struct {
	connections repository.ConnectionRepository
	users       repository.UserRepository
}

func NewConnectionController(connections repository.ConnectionRepository, users repository.UserRepository) *ConnectionController {
	return &ConnectionController{connections: connections, users: users}
}

// CreateConnectionRequest is the body for POST /api/connections
type CreateConnectionRequest struct {
	To string `json:"to"`
}

// UpdateConnectionRequest is the body for PATCH /api/connections/:id
type UpdateConnectionRequest struct {
	Status string `json:"status"`
}

// ListConnections returns the caller's connected peers as user profiles
func (cc *ConnectionController) ListConnections(c *fiber.Ctx) error {
	user, err := currentUser(c, cc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	page, limit := paging(c, 50)

	conns, err := cc.connections.ListConnected(c.Context(), user.Id, page, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.Id.Hex()).Msg("Failed to list connections")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	otherIDs := make([]primitive.ObjectID, 0, len(conns))
	for i := range conns {
		otherIDs = append(otherIDs, conns[i].Other(user.Id))
	}

	peers, err := cc.users.GetManyByIDs(c.Context(), otherIDs)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.Id.Hex()).Msg("Failed to resolve connected users")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(peers)
}

// ListPending returns requests awaiting the caller's decision. Only edges
// where the caller is the receiving endpoint appear here; outgoing pending
// requests are deliberately excluded.
func (cc *ConnectionController) ListPending(c *fiber.Ctx) error {
	user, err := currentUser(c, cc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	page, limit := paging(c, 50)

	conns, err := cc.connections.ListPending(c.Context(), user.Id, page, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.Id.Hex()).Msg("Failed to list pending connections")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(conns)
}

// GetSuggestions returns a random sample of users the caller might know,
// excluding everyone already sharing an edge with the caller
func (cc *ConnectionController) GetSuggestions(c *fiber.Ctx) error {
	user, err := currentUser(c, cc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	size := c.QueryInt("limit", defaultSuggestionSize)
	if size < 1 {
		size = defaultSuggestionSize
	}
	if size > 25 {
		size = 25
	}

	involved, err := cc.connections.InvolvedIDs(c.Context(), user.Id)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.Id.Hex()).Msg("Failed to resolve involved users")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	excluded := append(involved, user.Id)

	suggestions, err := cc.users.SampleExcluding(c.Context(), excluded, int64(size))
	if err != nil {
		log.Error().Err(err).Str("user_id", user.Id.Hex()).Msg("Failed to sample suggestions")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(suggestions)
}

// CreateConnection sends a connection request to another user
func (cc *ConnectionController) CreateConnection(c *fiber.Ctx) error {
	user, err := currentUser(c, cc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	var req CreateConnectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	targetID, err := primitive.ObjectIDFromHex(req.To)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid target user id"))
	}

	if targetID == user.Id {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You can't send a connection request to yourself"))
	}

	if _, err := cc.users.GetByID(c.Context(), targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		log.Error().Err(err).Msg("Failed to get target user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	exists, err := cc.connections.ExistsBetween(c.Context(), user.Id, targetID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check existing connection")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if exists {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("A connection or request already exists with this user"))
	}

	conn, err := cc.connections.Create(c.Context(), user.Id, targetID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.Id.Hex()).Msg("Failed to create connection request")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to send connection request"))
	}

	return c.Status(fiber.StatusCreated).JSON(conn)
}

// UpdateConnection lets the receiving endpoint accept or reject a pending
// request. Rejecting removes the edge; the persisted status domain stays
// {pending, connected}.
func (cc *ConnectionController) UpdateConnection(c *fiber.Ctx) error {
	user, err := currentUser(c, cc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	connID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateConnectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if req.Status != string(models.ConnectionStatusConnected) && req.Status != "rejected" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Status must be connected or rejected"))
	}

	conn, err := cc.connections.GetByID(c.Context(), connID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Connection not found"))
		}
		log.Error().Err(err).Msg("Failed to get connection")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if conn.To != user.Id {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to update this request"))
	}

	if conn.Status != models.ConnectionStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("This request has already been processed"))
	}

	if req.Status == "rejected" {
		if err := cc.connections.Delete(c.Context(), connID); err != nil {
			log.Error().Err(err).Str("connection_id", connID.Hex()).Msg("Failed to reject connection request")
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to reject connection request"))
		}
		return c.JSON(lib.MessageResponse("Connection request rejected"))
	}

	updated, err := cc.connections.SetStatus(c.Context(), connID, models.ConnectionStatusConnected)
	if err != nil {
		log.Error().Err(err).Str("connection_id", connID.Hex()).Msg("Failed to accept connection request")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to accept connection request"))
	}

	return c.JSON(updated)
}

// DeleteConnection removes an edge; either endpoint may do so, whether to
// cancel a sent request or to sever an existing connection
func (cc *ConnectionController) DeleteConnection(c *fiber.Ctx) error {
	user, err := currentUser(c, cc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	connID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	conn, err := cc.connections.GetByID(c.Context(), connID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Connection not found"))
		}
		log.Error().Err(err).Msg("Failed to get connection")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if !conn.Involves(user.Id) {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to remove this connection"))
	}

	if err := cc.connections.Delete(c.Context(), connID); err != nil {
		log.Error().Err(err).Str("connection_id", connID.Hex()).Msg("Failed to delete connection")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to remove connection"))
	}

	return c.JSON(lib.MessageResponse("Connection removed"))
}
