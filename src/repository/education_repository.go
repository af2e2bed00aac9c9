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

type EducationRepository interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Education, error)
	Create(ctx context.Context, owner primitive.ObjectID, in models.EducationInput) (*models.Education, error)
	Update(ctx context.Context, id, owner primitive.ObjectID, in models.EducationInput) (*models.Education, error)
	Delete(ctx context.Context, id, owner primitive.ObjectID) error
}

type educationRepository struct {
	educations *mongo.Collection
}

func NewEducationRepository(db *mongo.Database) EducationRepository {
	return &educationRepository{educations: db.Collection("educations")}
}

func (r *educationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Education, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "current", Value: -1},
		{Key: "endDate", Value: -1},
		{Key: "startDate", Value: -1},
	})

	cursor, err := r.educations.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find education entries: %w", err)
	}
	defer cursor.Close(ctx)

	educations := []models.Education{}
	if err := cursor.All(ctx, &educations); err != nil {
		return nil, fmt.Errorf("failed to decode education entries: %w", err)
	}
	return educations, nil
}

func (r *educationRepository) Create(ctx context.Context, owner primitive.ObjectID, in models.EducationInput) (*models.Education, error) {
	now := time.Now().UTC()
	edu := &models.Education{
		Id:           primitive.NewObjectID(),
		User:         owner,
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Current:      in.Current,
		Grade:        in.Grade,
		Activities:   in.Activities,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := r.educations.InsertOne(ctx, edu); err != nil {
		return nil, fmt.Errorf("failed to create education entry: %w", err)
	}
	return edu, nil
}

func (r *educationRepository) Update(ctx context.Context, id, owner primitive.ObjectID, in models.EducationInput) (*models.Education, error) {
	update := bson.M{"$set": bson.M{
		"school":       in.School,
		"degree":       in.Degree,
		"fieldOfStudy": in.FieldOfStudy,
		"startDate":    in.StartDate,
		"endDate":      in.EndDate,
		"current":      in.Current,
		"grade":        in.Grade,
		"activities":   in.Activities,
		"description":  in.Description,
		"updatedAt":    time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var edu models.Education
	err := r.educations.FindOneAndUpdate(ctx, bson.M{"_id": id, "user": owner}, update, opts).Decode(&edu)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &edu, nil
}

func (r *educationRepository) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	result, err := r.educations.DeleteOne(ctx, bson.M{"_id": id, "user": owner})
	if err != nil {
		return fmt.Errorf("failed to delete education entry: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
