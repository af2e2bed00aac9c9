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

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, page, limit int64) ([]models.Post, error)
	ListByAuthor(ctx context.Context, author primitive.ObjectID, page, limit int64) ([]models.Post, error)

	// FeedPage returns the reverse-chronological page of posts authored by
	// the viewer or a peer, or carrying a comment from a peer.
	FeedPage(ctx context.Context, viewer primitive.ObjectID, peers, commented []primitive.ObjectID, page, limit int64) ([]models.Post, error)

	IncLikes(ctx context.Context, id primitive.ObjectID, delta int) error
	IncComments(ctx context.Context, id primitive.ObjectID, delta int) error

	CreateComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, postID primitive.ObjectID, page, limit int64) ([]models.Comment, error)
	DeleteCommentsByPost(ctx context.Context, postID primitive.ObjectID) error

	// CommentedPostIDs returns the distinct posts that received a comment
	// authored by any of the given users.
	CommentedPostIDs(ctx context.Context, authors []primitive.ObjectID) ([]primitive.ObjectID, error)
}

type postRepository struct {
	posts    *mongo.Collection
	comments *mongo.Collection
}

func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{
		posts:    db.Collection("posts"),
		comments: db.Collection("comments"),
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	post.Id = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()

	if _, err := r.posts.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, page, limit int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{}, page, limit)
}

func (r *postRepository) ListByAuthor(ctx context.Context, author primitive.ObjectID, page, limit int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"author": author}, page, limit)
}

func (r *postRepository) FeedPage(ctx context.Context, viewer primitive.ObjectID, peers, commented []primitive.ObjectID, page, limit int64) ([]models.Post, error) {
	filter := bson.M{"$or": []bson.M{
		{"author": bson.M{"$in": peers}},
		{"author": viewer},
		{"_id": bson.M{"$in": commented}},
	}}
	return r.findPosts(ctx, filter, page, limit)
}

func (r *postRepository) findPosts(ctx context.Context, filter bson.M, page, limit int64) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) IncLikes(ctx context.Context, id primitive.ObjectID, delta int) error {
	return r.inc(ctx, id, "likes", delta)
}

func (r *postRepository) IncComments(ctx context.Context, id primitive.ObjectID, delta int) error {
	return r.inc(ctx, id, "comments", delta)
}

func (r *postRepository) inc(ctx context.Context, id primitive.ObjectID, field string, delta int) error {
	result, err := r.posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return fmt.Errorf("failed to update %s counter: %w", field, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.Id = primitive.NewObjectID()
	comment.CreatedAt = time.Now().UTC()

	if _, err := r.comments.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postRepository) ListComments(ctx context.Context, postID primitive.ObjectID, page, limit int64) ([]models.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.comments.Find(ctx, bson.M{"post": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

func (r *postRepository) DeleteCommentsByPost(ctx context.Context, postID primitive.ObjectID) error {
	if _, err := r.comments.DeleteMany(ctx, bson.M{"post": postID}); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}

func (r *postRepository) CommentedPostIDs(ctx context.Context, authors []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if len(authors) == 0 {
		return nil, nil
	}

	raw, err := r.comments.Distinct(ctx, "post", bson.M{"author": bson.M{"$in": authors}})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve commented posts: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
