package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/monk-io/network-nexus-project/src/middleware"
	"github.com/monk-io/network-nexus-project/src/models"
)

func newUserTestApp(users *fakeUserRepo, conns *fakeConnectionRepo, posts *fakePostRepo) *fiber.App {
	app := newTestApp()
	uc := NewUserController(users, conns, posts)

	user := app.Group("/api/users", middleware.Protect(testSecret))
	user.Post("/", uc.UpsertUser)
	user.Get("/me", uc.GetCurrentUser)
	user.Get("/search", uc.SearchUsers)
	user.Get("/username/:username", uc.GetUserByUsername)
	user.Get("/:id", uc.GetUser)
	user.Get("/:id/connections", uc.GetUserConnections)
	user.Get("/:id/posts", uc.GetUserPosts)

	return app
}

func TestUpsertUserCreatesProfile(t *testing.T) {
	users := &fakeUserRepo{}
	app := newUserTestApp(users, newFakeConnectionRepo(), newFakePostRepo())

	body := models.UserUpsert{Username: "Ada-Lovelace", Name: "Ada Lovelace", Headline: "Analyst"}
	resp := doRequest(t, app, authedRequest(t, http.MethodPost, "/api/users", "auth0|ada", body))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	user := decodeBody[models.User](t, resp)
	if user.Username != "ada-lovelace" {
		t.Fatalf("expected lowercased username, got %q", user.Username)
	}
	if user.Sub != "auth0|ada" {
		t.Fatalf("expected subject binding, got %q", user.Sub)
	}
}

func TestUpsertUserDuplicateUsername(t *testing.T) {
	users := &fakeUserRepo{takenUsername: "taken"}
	app := newUserTestApp(users, newFakeConnectionRepo(), newFakePostRepo())

	body := models.UserUpsert{Username: "taken", Name: "Someone"}
	resp := doRequest(t, app, authedRequest(t, http.MethodPost, "/api/users", "auth0|someone", body))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for taken username, got %d", resp.StatusCode)
	}
}

func TestUpsertUserValidation(t *testing.T) {
	users := &fakeUserRepo{}
	app := newUserTestApp(users, newFakeConnectionRepo(), newFakePostRepo())

	resp := doRequest(t, app, authedRequest(t, http.MethodPost, "/api/users", "auth0|nameless", models.UserUpsert{Username: "nameless"}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, authedRequest(t, http.MethodPost, "/api/users", "auth0|nohandle", models.UserUpsert{Name: "No Handle"}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing username, got %d", resp.StatusCode)
	}
}

func TestGetCurrentUserUnprovisioned(t *testing.T) {
	app := newUserTestApp(&fakeUserRepo{}, newFakeConnectionRepo(), newFakePostRepo())

	resp := doRequest(t, app, authedRequest(t, http.MethodGet, "/api/users/me", "auth0|ghost", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before first upsert, got %d", resp.StatusCode)
	}
}

func TestGetCurrentUser(t *testing.T) {
	users := &fakeUserRepo{}
	me := newTestUser("auth0|me", "me")
	users.add(me)

	app := newUserTestApp(users, newFakeConnectionRepo(), newFakePostRepo())

	resp := doRequest(t, app, authedRequest(t, http.MethodGet, "/api/users/me", "auth0|me", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	user := decodeBody[models.User](t, resp)
	if user.Id != me.Id {
		t.Fatalf("expected own profile, got %s", user.Id.Hex())
	}
}

func TestGetUserByUsername(t *testing.T) {
	users := &fakeUserRepo{}
	target := newTestUser("auth0|target", "target")
	users.add(newTestUser("auth0|caller", "caller"), target)

	app := newUserTestApp(users, newFakeConnectionRepo(), newFakePostRepo())

	resp := doRequest(t, app, authedRequest(t, http.MethodGet, "/api/users/username/target", "auth0|caller", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, authedRequest(t, http.MethodGet, "/api/users/username/nobody", "auth0|caller", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown handle, got %d", resp.StatusCode)
	}
}

func TestSearchUsersRequiresQuery(t *testing.T) {
	users := &fakeUserRepo{}
	users.add(newTestUser("auth0|caller", "caller"))

	app := newUserTestApp(users, newFakeConnectionRepo(), newFakePostRepo())

	resp := doRequest(t, app, authedRequest(t, http.MethodGet, "/api/users/search", "auth0|caller", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without query, got %d", resp.StatusCode)
	}

	users.searchResults = []models.User{*newTestUser("auth0|found", "found")}

	resp = doRequest(t, app, authedRequest(t, http.MethodGet, "/api/users/search?query=fou", "auth0|caller", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	found := decodeBody[[]models.User](t, resp)
	if len(found) != 1 {
		t.Fatalf("expected one result, got %d", len(found))
	}
}

func TestGetUserPosts(t *testing.T) {
	users := &fakeUserRepo{}
	author := newTestUser("auth0|author", "author")
	users.add(newTestUser("auth0|caller", "caller"), author)

	posts := newFakePostRepo()
	posts.add(&models.Post{Id: primitive.NewObjectID(), Author: author.Id, Content: "theirs"})
	posts.add(&models.Post{Id: primitive.NewObjectID(), Author: primitive.NewObjectID(), Content: "not theirs"})

	app := newUserTestApp(users, newFakeConnectionRepo(), posts)

	resp := doRequest(t, app, authedRequest(t, http.MethodGet, "/api/users/"+author.Id.Hex()+"/posts", "auth0|caller", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	listed := decodeBody[[]models.Post](t, resp)
	if len(listed) != 1 || listed[0].Author != author.Id {
		t.Fatalf("expected only the author's posts, got %v", listed)
	}
}

func TestUserRoutesRequireAuth(t *testing.T) {
	app := newUserTestApp(&fakeUserRepo{}, newFakeConnectionRepo(), newFakePostRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}
