package controllers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/monk-io/network-nexus-project/src/lib"
	"github.com/monk-io/network-nexus-project/src/models"
	"github.com/monk-io/network-nexus-project/src/repository"
)

// PostController handles posts, comments, likes and the activity feed
type PostController struct {
	posts       repository.PostRepository
	users       repository.UserRepository
	connections repository.ConnectionRepository
	feedCache   repository.FeedCache
}

func NewPostController(
	posts repository.PostRepository,
	users repository.UserRepository,
	connections repository.ConnectionRepository,
	feedCache repository.FeedCache,
) *PostController {
	return &PostController{
		posts:       posts,
		users:       users,
		connections: connections,
		feedCache:   feedCache,
	}
}

// CreatePostRequest is the body for POST /api/posts
type CreatePostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

// CreateCommentRequest is the body for POST /api/posts/:id/comments
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// ListPosts returns a reverse-chronological page over all posts
func (pc *PostController) ListPosts(c *fiber.Ctx) error {
	page, limit := paging(c, 50)

	posts, err := pc.posts.List(c.Context(), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list posts")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(posts)
}

// GetFeed returns the caller's activity feed page. Pages are memoized in
// the cache for a short window; a hit is returned verbatim, a cache
// failure degrades to direct computation.
func (pc *PostController) GetFeed(c *fiber.Ctx) error {
	user, err := currentUser(c, pc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	page, limit := paging(c, 50)
	userID := user.Id.Hex()

	if cached, ok := pc.feedCache.Get(c.Context(), userID, int(page), int(limit)); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}

	peers, err := pc.connections.PeerIDs(c.Context(), user.Id)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to resolve connected peers")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	commented, err := pc.posts.CommentedPostIDs(c.Context(), peers)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to resolve commented posts")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	posts, err := pc.posts.FeedPage(c.Context(), user.Id, peers, commented, page, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to build feed page")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	payload, err := json.Marshal(posts)
	if err != nil {
		return err
	}

	// Store exactly the bytes served so a hit within the window is
	// byte-identical to the computed page
	pc.feedCache.Set(c.Context(), userID, int(page), int(limit), payload)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// CreatePost creates a post and invalidates the author's cached feed pages
func (pc *PostController) CreatePost(c *fiber.Ctx) error {
	user, err := currentUser(c, pc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if strings.TrimSpace(req.Content) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Content is required"))
	}

	post := &models.Post{
		Author:   user.Id,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := pc.posts.Create(c.Context(), post); err != nil {
		log.Error().Err(err).Str("user_id", user.Id.Hex()).Msg("Failed to create post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create post"))
	}

	// Best effort; the author tolerates a stale page for up to the TTL
	// everywhere else, but should see their own post immediately
	pc.feedCache.Invalidate(c.Context(), user.Id.Hex())

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost returns a single post by id
func (pc *PostController) GetPost(c *fiber.Ctx) error {
	postID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := pc.posts.GetByID(c.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		}
		log.Error().Err(err).Msg("Failed to get post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(post)
}

// DeletePost removes a post, its comments and the author's cached feed pages
func (pc *PostController) DeletePost(c *fiber.Ctx) error {
	user, err := currentUser(c, pc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	postID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := pc.posts.GetByID(c.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		}
		log.Error().Err(err).Msg("Failed to get post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if post.Author != user.Id {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to delete this post"))
	}

	if err := pc.posts.Delete(c.Context(), postID); err != nil {
		log.Error().Err(err).Str("post_id", postID.Hex()).Msg("Failed to delete post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to delete post"))
	}

	if err := pc.posts.DeleteCommentsByPost(c.Context(), postID); err != nil {
		// The post itself is gone; orphaned comments are unreachable
		log.Error().Err(err).Str("post_id", postID.Hex()).Msg("Failed to delete post comments")
	}

	pc.feedCache.Invalidate(c.Context(), user.Id.Hex())

	return c.SendStatus(fiber.StatusNoContent)
}

// ListComments returns a post's comments in ascending creation order
func (pc *PostController) ListComments(c *fiber.Ctx) error {
	postID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	page, limit := paging(c, 20)

	comments, err := pc.posts.ListComments(c.Context(), postID, page, limit)
	if err != nil {
		log.Error().Err(err).Str("post_id", postID.Hex()).Msg("Failed to list comments")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(comments)
}

// CreateComment inserts the comment, then bumps the post's denormalized
// comment counter as a separate write. A failed bump undercounts; it is
// logged and the request still succeeds.
func (pc *PostController) CreateComment(c *fiber.Ctx) error {
	user, err := currentUser(c, pc.users)
	if err != nil {
		return respondUserError(c, err)
	}

	postID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if strings.TrimSpace(req.Content) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Content is required"))
	}

	if _, err := pc.posts.GetByID(c.Context(), postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		}
		log.Error().Err(err).Msg("Failed to get post")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	comment := &models.Comment{
		Post:    postID,
		Author:  user.Id,
		Content: req.Content,
	}

	if err := pc.posts.CreateComment(c.Context(), comment); err != nil {
		log.Error().Err(err).Str("post_id", postID.Hex()).Msg("Failed to create comment")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create comment"))
	}

	if err := pc.posts.IncComments(c.Context(), postID, 1); err != nil {
		log.Error().Err(err).Str("post_id", postID.Hex()).Msg("Failed to bump comment counter")
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// LikePost increments a post's like counter
func (pc *PostController) LikePost(c *fiber.Ctx) error {
	return pc.applyLike(c, 1)
}

// UnlikePost decrements a post's like counter
func (pc *PostController) UnlikePost(c *fiber.Ctx) error {
	return pc.applyLike(c, -1)
}

func (pc *PostController) applyLike(c *fiber.Ctx, delta int) error {
	if _, err := currentUser(c, pc.users); err != nil {
		return respondUserError(c, err)
	}

	postID, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := pc.posts.IncLikes(c.Context(), postID, delta); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Post not found"))
		}
		log.Error().Err(err).Str("post_id", postID.Hex()).Msg("Failed to update like counter")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	post, err := pc.posts.GetByID(c.Context(), postID)
	if err != nil {
		log.Error().Err(err).Str("post_id", postID.Hex()).Msg("Failed to reload post after like")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(post)
}

// respondUserError maps caller-resolution failures onto the error taxonomy
func respondUserError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errUnresolvedUser) {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
	}
	log.Error().Err(err).Msg("Failed to resolve current user")
	return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
}
