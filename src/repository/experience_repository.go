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

type ExperienceRepository interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Experience, error)
	Create(ctx context.Context, owner primitive.ObjectID, in models.ExperienceInput) (*models.Experience, error)

	// Update and Delete filter on both id and owner, so a record that
	// exists but belongs to someone else surfaces as ErrNotFound.
	Update(ctx context.Context, id, owner primitive.ObjectID, in models.ExperienceInput) (*models.Experience, error)
	Delete(ctx context.Context, id, owner primitive.ObjectID) error
}

type experienceRepository struct {
	experiences *mongo.Collection
}

func NewExperienceRepository(db *mongo.Database) ExperienceRepository {
	return &experienceRepository{experiences: db.Collection("experiences")}
}

func (r *experienceRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Experience, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "current", Value: -1},
		{Key: "endDate", Value: -1},
		{Key: "startDate", Value: -1},
	})

	cursor, err := r.experiences.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find experiences: %w", err)
	}
	defer cursor.Close(ctx)

	experiences := []models.Experience{}
	if err := cursor.All(ctx, &experiences); err != nil {
		return nil, fmt.Errorf("failed to decode experiences: %w", err)
	}
	return experiences, nil
}

func (r *experienceRepository) Create(ctx context.Context, owner primitive.ObjectID, in models.ExperienceInput) (*models.Experience, error) {
	now := time.Now().UTC()
	exp := &models.Experience{
		Id:             primitive.NewObjectID(),
		User:           owner,
		Title:          in.Title,
		Company:        in.Company,
		Location:       in.Location,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Current:        in.Current,
		Description:    in.Description,
		EmploymentType: in.EmploymentType,
		Industry:       in.Industry,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := r.experiences.InsertOne(ctx, exp); err != nil {
		return nil, fmt.Errorf("failed to create experience: %w", err)
	}
	return exp, nil
}

func (r *experienceRepository) Update(ctx context.Context, id, owner primitive.ObjectID, in models.ExperienceInput) (*models.Experience, error) {
	update := bson.M{"$set": bson.M{
		"title":          in.Title,
		"company":        in.Company,
		"location":       in.Location,
		"startDate":      in.StartDate,
		"endDate":        in.EndDate,
		"current":        in.Current,
		"description":    in.Description,
		"employmentType": in.EmploymentType,
		"industry":       in.Industry,
		"updatedAt":      time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var exp models.Experience
	err := r.experiences.FindOneAndUpdate(ctx, bson.M{"_id": id, "user": owner}, update, opts).Decode(&exp)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &exp, nil
}

func (r *experienceRepository) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	result, err := r.experiences.DeleteOne(ctx, bson.M{"_id": id, "user": owner})
	if err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
