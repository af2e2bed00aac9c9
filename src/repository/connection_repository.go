package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/monk-io/network-nexus-project/src/models"
)

type ConnectionRepository interface {
	Create(ctx context.Context, from, to primitive.ObjectID) (*models.Connection, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ConnectionStatus) (*models.Connection, error)

	// ExistsBetween reports whether any edge, of any status, links the two
	// users in either direction.
	ExistsBetween(ctx context.Context, a, b primitive.ObjectID) (bool, error)

	ListConnected(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]models.Connection, error)
	ListPending(ctx context.Context, to primitive.ObjectID, page, limit int64) ([]models.Connection, error)

	// PeerIDs maps every connected edge touching the user to "the other side".
	PeerIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)

	// InvolvedIDs returns the other endpoint of every edge touching the
	// user regardless of status, used to exclude them from suggestions.
	InvolvedIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

type connectionRepository struct {
	connections *mongo.Collection
}

func NewConnectionRepository(db *mongo.Database) ConnectionRepository {
	return &connectionRepository{connections: db.Collection("connections")}
}

func (r *connectionRepository) Create(ctx context.Context, from, to primitive.ObjectID) (*models.Connection, error) {
	now := time.Now().UTC()
	conn := &models.Connection{
		Id:        primitive.NewObjectID(),
		From:      from,
		To:        to,
		Status:    models.ConnectionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.connections.InsertOne(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}
	return conn, nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	err := r.connections.FindOne(ctx, bson.M{"_id": id}).Decode(&conn)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &conn, nil
}

func (r *connectionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.connections.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *connectionRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ConnectionStatus) (*models.Connection, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var conn models.Connection
	err := r.connections.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&conn)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &conn, nil
}

func (r *connectionRepository) ExistsBetween(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	filter := bson.M{"$or": []bson.M{
		{"from": a, "to": b},
		{"from": b, "to": a},
	}}

	count, err := r.connections.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check existing connection: %w", err)
	}
	return count > 0, nil
}

func (r *connectionRepository) ListConnected(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]models.Connection, error) {
	filter := touchingFilter(userID, models.ConnectionStatusConnected)
	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	return r.findConnections(ctx, filter, opts)
}

func (r *connectionRepository) ListPending(ctx context.Context, to primitive.ObjectID, page, limit int64) ([]models.Connection, error) {
	filter := bson.M{"status": models.ConnectionStatusPending, "to": to}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	return r.findConnections(ctx, filter, opts)
}

func (r *connectionRepository) PeerIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	conns, err := r.findConnections(ctx, touchingFilter(userID, models.ConnectionStatusConnected), options.Find())
	if err != nil {
		return nil, err
	}
	return otherSides(conns, userID), nil
}

func (r *connectionRepository) InvolvedIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{"$or": []bson.M{{"from": userID}, {"to": userID}}}
	conns, err := r.findConnections(ctx, filter, options.Find())
	if err != nil {
		return nil, err
	}
	return otherSides(conns, userID), nil
}

func (r *connectionRepository) findConnections(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Connection, error) {
	cursor, err := r.connections.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find connections: %w", err)
	}
	defer cursor.Close(ctx)

	conns := []models.Connection{}
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, fmt.Errorf("failed to decode connections: %w", err)
	}
	return conns, nil
}

func touchingFilter(userID primitive.ObjectID, status models.ConnectionStatus) bson.M {
	return bson.M{
		"status": status,
		"$or":    []bson.M{{"from": userID}, {"to": userID}},
	}
}

func otherSides(conns []models.Connection, userID primitive.ObjectID) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(conns))
	for i := range conns {
		ids = append(ids, conns[i].Other(userID))
	}
	return ids
}
