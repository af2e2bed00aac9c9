package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/monk-io/network-nexus-project/src/lib"
	"github.com/monk-io/network-nexus-project/src/models"
	"github.com/monk-io/network-nexus-project/src/repository"
)

const testSecret = "test-secret"

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(lib.MessageResponse(message))
		},
	})
}

func signedToken(t *testing.T, sub string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func authedRequest(t *testing.T, method, target, sub string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signedToken(t, sub))
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return out
}

func newTestUser(sub, username string) *models.User {
	return &models.User{
		Id:       primitive.NewObjectID(),
		Sub:      sub,
		Username: username,
		Name:     username,
	}
}

type fakeUserRepo struct {
	users []*models.User

	searchResults []models.User
	samples       []models.User

	lastSampleExcluded []primitive.ObjectID

	takenUsername string
}

func (f *fakeUserRepo) add(users ...*models.User) {
	f.users = append(f.users, users...)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range f.users {
		if u.Id == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetBySub(ctx context.Context, sub string) (*models.User, error) {
	for _, u := range f.users {
		if u.Sub == sub {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	found := []models.User{}
	for _, id := range ids {
		for _, u := range f.users {
			if u.Id == id {
				found = append(found, *u)
			}
		}
	}
	return found, nil
}

func (f *fakeUserRepo) Upsert(ctx context.Context, sub string, in models.UserUpsert) (*models.User, error) {
	if in.Username == f.takenUsername {
		return nil, repository.ErrDuplicate
	}

	for _, u := range f.users {
		if u.Sub == sub {
			u.Username = in.Username
			u.Name = in.Name
			u.Headline = in.Headline
			return u, nil
		}
	}

	user := &models.User{
		Id:       primitive.NewObjectID(),
		Sub:      sub,
		Username: in.Username,
		Name:     in.Name,
		Headline: in.Headline,
	}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) Search(ctx context.Context, query string, limit int64) ([]models.User, error) {
	return f.searchResults, nil
}

func (f *fakeUserRepo) SampleExcluding(ctx context.Context, excluded []primitive.ObjectID, size int64) ([]models.User, error) {
	f.lastSampleExcluded = excluded
	return f.samples, nil
}

type fakePostRepo struct {
	posts    map[primitive.ObjectID]*models.Post
	comments []models.Comment

	feed      []models.Post
	commented []primitive.ObjectID

	lastFeedViewer    primitive.ObjectID
	lastFeedPeers     []primitive.ObjectID
	lastFeedCommented []primitive.ObjectID

	incCommentsErr  error
	deletedComments []primitive.ObjectID
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]*models.Post{}}
}

func (f *fakePostRepo) add(posts ...*models.Post) {
	for _, p := range posts {
		f.posts[p.Id] = p
	}
}

func (f *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	post.Id = primitive.NewObjectID()
	f.posts[post.Id] = post
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return post, nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) List(ctx context.Context, page, limit int64) ([]models.Post, error) {
	all := []models.Post{}
	for _, p := range f.posts {
		all = append(all, *p)
	}
	return all, nil
}

func (f *fakePostRepo) ListByAuthor(ctx context.Context, author primitive.ObjectID, page, limit int64) ([]models.Post, error) {
	byAuthor := []models.Post{}
	for _, p := range f.posts {
		if p.Author == author {
			byAuthor = append(byAuthor, *p)
		}
	}
	return byAuthor, nil
}

func (f *fakePostRepo) FeedPage(ctx context.Context, viewer primitive.ObjectID, peers, commented []primitive.ObjectID, page, limit int64) ([]models.Post, error) {
	f.lastFeedViewer = viewer
	f.lastFeedPeers = peers
	f.lastFeedCommented = commented
	return f.feed, nil
}

func (f *fakePostRepo) IncLikes(ctx context.Context, id primitive.ObjectID, delta int) error {
	post, ok := f.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	post.Likes += delta
	return nil
}

func (f *fakePostRepo) IncComments(ctx context.Context, id primitive.ObjectID, delta int) error {
	if f.incCommentsErr != nil {
		return f.incCommentsErr
	}
	post, ok := f.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	post.Comments += delta
	return nil
}

func (f *fakePostRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.Id = primitive.NewObjectID()
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakePostRepo) ListComments(ctx context.Context, postID primitive.ObjectID, page, limit int64) ([]models.Comment, error) {
	byPost := []models.Comment{}
	for _, c := range f.comments {
		if c.Post == postID {
			byPost = append(byPost, c)
		}
	}
	return byPost, nil
}

func (f *fakePostRepo) DeleteCommentsByPost(ctx context.Context, postID primitive.ObjectID) error {
	f.deletedComments = append(f.deletedComments, postID)
	return nil
}

func (f *fakePostRepo) CommentedPostIDs(ctx context.Context, authors []primitive.ObjectID) ([]primitive.ObjectID, error) {
	return f.commented, nil
}

type fakeConnectionRepo struct {
	conns map[primitive.ObjectID]*models.Connection

	peers    []primitive.ObjectID
	involved []primitive.ObjectID
}

func newFakeConnectionRepo() *fakeConnectionRepo {
	return &fakeConnectionRepo{conns: map[primitive.ObjectID]*models.Connection{}}
}

func (f *fakeConnectionRepo) add(conns ...*models.Connection) {
	for _, c := range conns {
		f.conns[c.Id] = c
	}
}

func (f *fakeConnectionRepo) Create(ctx context.Context, from, to primitive.ObjectID) (*models.Connection, error) {
	conn := &models.Connection{
		Id:     primitive.NewObjectID(),
		From:   from,
		To:     to,
		Status: models.ConnectionStatusPending,
	}
	f.conns[conn.Id] = conn
	return conn, nil
}

func (f *fakeConnectionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	conn, ok := f.conns[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return conn, nil
}

func (f *fakeConnectionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.conns[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.conns, id)
	return nil
}

func (f *fakeConnectionRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ConnectionStatus) (*models.Connection, error) {
	conn, ok := f.conns[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	conn.Status = status
	return conn, nil
}

func (f *fakeConnectionRepo) ExistsBetween(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	for _, c := range f.conns {
		if (c.From == a && c.To == b) || (c.From == b && c.To == a) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConnectionRepo) ListConnected(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]models.Connection, error) {
	connected := []models.Connection{}
	for _, c := range f.conns {
		if c.Status == models.ConnectionStatusConnected && c.Involves(userID) {
			connected = append(connected, *c)
		}
	}
	return connected, nil
}

func (f *fakeConnectionRepo) ListPending(ctx context.Context, to primitive.ObjectID, page, limit int64) ([]models.Connection, error) {
	pending := []models.Connection{}
	for _, c := range f.conns {
		if c.Status == models.ConnectionStatusPending && c.To == to {
			pending = append(pending, *c)
		}
	}
	return pending, nil
}

func (f *fakeConnectionRepo) PeerIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return f.peers, nil
}

func (f *fakeConnectionRepo) InvolvedIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return f.involved, nil
}

type fakeFeedCache struct {
	entries map[string][]byte

	sets          int
	invalidations []string
}

func newFakeFeedCache() *fakeFeedCache {
	return &fakeFeedCache{entries: map[string][]byte{}}
}

func (f *fakeFeedCache) key(userID string, page, limit int) string {
	return fmt.Sprintf("%s:%d:%d", userID, page, limit)
}

func (f *fakeFeedCache) Get(ctx context.Context, userID string, page, limit int) ([]byte, bool) {
	payload, ok := f.entries[f.key(userID, page, limit)]
	return payload, ok
}

func (f *fakeFeedCache) Set(ctx context.Context, userID string, page, limit int, payload []byte) {
	f.entries[f.key(userID, page, limit)] = payload
	f.sets++
}

func (f *fakeFeedCache) Invalidate(ctx context.Context, userID string) {
	f.invalidations = append(f.invalidations, userID)
	for key := range f.entries {
		if strings.HasPrefix(key, userID+":") {
			delete(f.entries, key)
		}
	}
}

type fakeSkillRepo struct {
	skills map[primitive.ObjectID]*models.Skill

	takenName string
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{skills: map[primitive.ObjectID]*models.Skill{}}
}

func (f *fakeSkillRepo) add(skills ...*models.Skill) {
	for _, s := range skills {
		f.skills[s.Id] = s
	}
}

func (f *fakeSkillRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Skill, error) {
	byUser := []models.Skill{}
	for _, s := range f.skills {
		if s.User == userID {
			byUser = append(byUser, *s)
		}
	}
	return byUser, nil
}

func (f *fakeSkillRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Skill, error) {
	skill, ok := f.skills[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return skill, nil
}

func (f *fakeSkillRepo) Create(ctx context.Context, owner primitive.ObjectID, name, category string) (*models.Skill, error) {
	if name == f.takenName {
		return nil, repository.ErrDuplicate
	}

	skill := &models.Skill{
		Id:         primitive.NewObjectID(),
		User:       owner,
		Name:       name,
		Category:   category,
		EndorsedBy: []primitive.ObjectID{},
	}
	f.skills[skill.Id] = skill
	return skill, nil
}

func (f *fakeSkillRepo) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	skill, ok := f.skills[id]
	if !ok || skill.User != owner {
		return repository.ErrNotFound
	}
	delete(f.skills, id)
	return nil
}

func (f *fakeSkillRepo) Endorse(ctx context.Context, id, endorser primitive.ObjectID) (*models.Skill, error) {
	skill, ok := f.skills[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	skill.Endorsements++
	skill.EndorsedBy = append(skill.EndorsedBy, endorser)
	return skill, nil
}

func (f *fakeSkillRepo) Unendorse(ctx context.Context, id, endorser primitive.ObjectID) (*models.Skill, error) {
	skill, ok := f.skills[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	skill.Endorsements--
	kept := skill.EndorsedBy[:0]
	for _, e := range skill.EndorsedBy {
		if e != endorser {
			kept = append(kept, e)
		}
	}
	skill.EndorsedBy = kept
	return skill, nil
}

type fakeExperienceRepo struct {
	experiences map[primitive.ObjectID]*models.Experience
}

func newFakeExperienceRepo() *fakeExperienceRepo {
	return &fakeExperienceRepo{experiences: map[primitive.ObjectID]*models.Experience{}}
}

func (f *fakeExperienceRepo) add(experiences ...*models.Experience) {
	for _, e := range experiences {
		f.experiences[e.Id] = e
	}
}

func (f *fakeExperienceRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Experience, error) {
	byUser := []models.Experience{}
	for _, e := range f.experiences {
		if e.User == userID {
			byUser = append(byUser, *e)
		}
	}
	return byUser, nil
}

func (f *fakeExperienceRepo) Create(ctx context.Context, owner primitive.ObjectID, in models.ExperienceInput) (*models.Experience, error) {
	exp := &models.Experience{
		Id:      primitive.NewObjectID(),
		User:    owner,
		Title:   in.Title,
		Company: in.Company,
	}
	f.experiences[exp.Id] = exp
	return exp, nil
}

func (f *fakeExperienceRepo) Update(ctx context.Context, id, owner primitive.ObjectID, in models.ExperienceInput) (*models.Experience, error) {
	exp, ok := f.experiences[id]
	if !ok || exp.User != owner {
		return nil, repository.ErrNotFound
	}
	exp.Title = in.Title
	exp.Company = in.Company
	return exp, nil
}

func (f *fakeExperienceRepo) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	exp, ok := f.experiences[id]
	if !ok || exp.User != owner {
		return repository.ErrNotFound
	}
	delete(f.experiences, id)
	return nil
}

type fakeEducationRepo struct {
	educations map[primitive.ObjectID]*models.Education
}

func newFakeEducationRepo() *fakeEducationRepo {
	return &fakeEducationRepo{educations: map[primitive.ObjectID]*models.Education{}}
}

func (f *fakeEducationRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Education, error) {
	byUser := []models.Education{}
	for _, e := range f.educations {
		if e.User == userID {
			byUser = append(byUser, *e)
		}
	}
	return byUser, nil
}

func (f *fakeEducationRepo) Create(ctx context.Context, owner primitive.ObjectID, in models.EducationInput) (*models.Education, error) {
	edu := &models.Education{
		Id:     primitive.NewObjectID(),
		User:   owner,
		School: in.School,
		Degree: in.Degree,
	}
	f.educations[edu.Id] = edu
	return edu, nil
}

func (f *fakeEducationRepo) Update(ctx context.Context, id, owner primitive.ObjectID, in models.EducationInput) (*models.Education, error) {
	edu, ok := f.educations[id]
	if !ok || edu.User != owner {
		return nil, repository.ErrNotFound
	}
	edu.School = in.School
	edu.Degree = in.Degree
	return edu, nil
}

func (f *fakeEducationRepo) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	edu, ok := f.educations[id]
	if !ok || edu.User != owner {
		return repository.ErrNotFound
	}
	delete(f.educations, id)
	return nil
}
