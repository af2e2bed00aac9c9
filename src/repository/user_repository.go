package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/monk-io/network-nexus-project/src/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetBySub(ctx context.Context, sub string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)

	// Upsert creates or updates the profile keyed by the identity subject
	// as a single atomic conditional write under the unique sub index.
	Upsert(ctx context.Context, sub string, in models.UserUpsert) (*models.User, error)

	Search(ctx context.Context, query string, limit int64) ([]models.User, error)

	// SampleExcluding draws a random sample at the database level; the user
	// collection can be large, so an in-memory shuffle is not an option.
	SampleExcluding(ctx context.Context, excluded []primitive.ObjectID, size int64) ([]models.User, error)
}

type userRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{users: db.Collection("users")}
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &user, nil
}

func (r *userRepository) GetBySub(ctx context.Context, sub string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"sub": sub}).Decode(&user)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &user, nil
}

func (r *userRepository) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Upsert(ctx context.Context, sub string, in models.UserUpsert) (*models.User, error) {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"username":  in.Username,
			"name":      in.Name,
			"headline":  in.Headline,
			"avatarUrl": in.AvatarURL,
			"bio":       in.Bio,
			"location":  in.Location,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"sub":       sub,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user models.User
	err := r.users.FindOneAndUpdate(ctx, bson.M{"sub": sub}, update, opts).Decode(&user)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &user, nil
}

func (r *userRepository) Search(ctx context.Context, query string, limit int64) ([]models.User, error) {
	pattern := regexp.QuoteMeta(query)
	re := primitive.Regex{Pattern: pattern, Options: "i"}

	filter := bson.M{"$or": []bson.M{
		{"name": re},
		{"username": re},
		{"headline": re},
	}}

	cursor, err := r.users.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *userRepository) SampleExcluding(ctx context.Context, excluded []primitive.ObjectID, size int64) ([]models.User, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$nin": excluded}}}},
		{{Key: "$sample", Value: bson.M{"size": size}}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode sampled users: %w", err)
	}
	return users, nil
}
