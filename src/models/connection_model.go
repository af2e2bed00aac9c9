package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Connection is an edge between two users. Direction is kept so the To
// endpoint is known to be the one who must approve a pending edge; once
// connected the edge is treated as undirected for querying.
type Connection struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	From      primitive.ObjectID `json:"from" bson:"from"`
	To        primitive.ObjectID `json:"to" bson:"to"`
	Status    ConnectionStatus   `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ConnectionStatus string

const (
	ConnectionStatusPending   ConnectionStatus = "pending"
	ConnectionStatusConnected ConnectionStatus = "connected"
)

// Other returns the endpoint that is not the given user
func (c *Connection) Other(userID primitive.ObjectID) primitive.ObjectID {
	if c.From == userID {
		return c.To
	}
	return c.From
}

// Involves reports whether the given user is one of the two endpoints
func (c *Connection) Involves(userID primitive.ObjectID) bool {
	return c.From == userID || c.To == userID
}
