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

type SkillRepository interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Skill, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Skill, error)

	// Create returns ErrDuplicate when the user already lists the skill
	// name (unique compound index on user+name).
	Create(ctx context.Context, owner primitive.ObjectID, name, category string) (*models.Skill, error)
	Delete(ctx context.Context, id, owner primitive.ObjectID) error

	// Endorse and Unendorse apply the paired counter and set mutation in a
	// single update so the two cannot diverge on this path.
	Endorse(ctx context.Context, id, endorser primitive.ObjectID) (*models.Skill, error)
	Unendorse(ctx context.Context, id, endorser primitive.ObjectID) (*models.Skill, error)
}

type skillRepository struct {
	skills *mongo.Collection
}

func NewSkillRepository(db *mongo.Database) SkillRepository {
	return &skillRepository{skills: db.Collection("skills")}
}

func (r *skillRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Skill, error) {
	opts := options.Find().SetSort(bson.D{{Key: "endorsements", Value: -1}})

	cursor, err := r.skills.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find skills: %w", err)
	}
	defer cursor.Close(ctx)

	skills := []models.Skill{}
	if err := cursor.All(ctx, &skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}
	return skills, nil
}

func (r *skillRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Skill, error) {
	var skill models.Skill
	err := r.skills.FindOne(ctx, bson.M{"_id": id}).Decode(&skill)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &skill, nil
}

func (r *skillRepository) Create(ctx context.Context, owner primitive.ObjectID, name, category string) (*models.Skill, error) {
	skill := &models.Skill{
		Id:           primitive.NewObjectID(),
		User:         owner,
		Name:         name,
		Category:     category,
		Endorsements: 0,
		EndorsedBy:   []primitive.ObjectID{},
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := r.skills.InsertOne(ctx, skill); err != nil {
		return nil, mapMongoError(err)
	}
	return skill, nil
}

func (r *skillRepository) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	result, err := r.skills.DeleteOne(ctx, bson.M{"_id": id, "user": owner})
	if err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *skillRepository) Endorse(ctx context.Context, id, endorser primitive.ObjectID) (*models.Skill, error) {
	update := bson.M{
		"$inc":  bson.M{"endorsements": 1},
		"$push": bson.M{"endorsedBy": endorser},
	}
	return r.applyEndorsement(ctx, id, update)
}

func (r *skillRepository) Unendorse(ctx context.Context, id, endorser primitive.ObjectID) (*models.Skill, error) {
	update := bson.M{
		"$inc":  bson.M{"endorsements": -1},
		"$pull": bson.M{"endorsedBy": endorser},
	}
	return r.applyEndorsement(ctx, id, update)
}

func (r *skillRepository) applyEndorsement(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Skill, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var skill models.Skill
	err := r.skills.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&skill)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &skill, nil
}
