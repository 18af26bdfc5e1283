package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nutritrack/nutritrack/internal/auth"
	"github.com/nutritrack/nutritrack/internal/config"
	"github.com/nutritrack/nutritrack/internal/database"
	"github.com/nutritrack/nutritrack/internal/httpapi"
	"github.com/nutritrack/nutritrack/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var apiDBSeq atomic.Int64

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		HTTPAddr:         ":0",
		DatabaseDSN:      fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", apiDBSeq.Add(1)),
		SigningKey:       "httpapi-test-signing-key",
		TokenExpiration:  1,
		BcryptCost:       bcrypt.MinCost,
		AutoAuthOnSignup: true,
	}
	for _, m := range mutate {
		m(cfg)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))

	repos := repository.NewManager(db)
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.SigningKey), cfg.TokenExpiration, nil)
	auther := auth.NewAuthenticator(repos.Users(), hasher, tokens)

	return httpapi.New(cfg, repos, auther, tokens, hasher).App()
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	// List endpoints return arrays; leave decoded empty for those.
	_ = json.Unmarshal(raw, &decoded)

	return res.StatusCode, decoded, string(raw)
}

func signupAlice(t *testing.T, app *fiber.App) (string, map[string]any) {
	t.Helper()

	status, body, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": "alice",
		"name":     "Alice",
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)

	token, _ := body["token"].(string)
	user, _ := body["user"].(map[string]any)
	return token, user
}

func TestSignupIssuesUsableToken(t *testing.T) {
	app := newTestServer(t)

	token, user := signupAlice(t, app)
	require.NotEmpty(t, token)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user["username"])

	// The signup token resolves to the same user via WhoAmI.
	status, me, _ := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, user["id"], me["id"])
	assert.Equal(t, "alice", me["username"])
}

func TestSignupDefaultsProfile(t *testing.T) {
	app := newTestServer(t)

	_, user := signupAlice(t, app)

	assert.Equal(t, "moderate", user["activityLevel"])
	goals, ok := user["goals"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "maintenance", goals["type"])
	assert.Equal(t, float64(0), goals["target"])
	prefs, ok := user["dietaryPreferences"].([]any)
	require.True(t, ok)
	assert.Empty(t, prefs)
}

func TestSignupValidation(t *testing.T) {
	app := newTestServer(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing username", payload: map[string]any{"name": "A", "email": "a@x.com", "password": "secret1"}},
		{name: "missing name", payload: map[string]any{"username": "alice", "email": "a@x.com", "password": "secret1"}},
		{name: "missing email", payload: map[string]any{"username": "alice", "name": "A", "password": "secret1"}},
		{name: "missing password", payload: map[string]any{"username": "alice", "name": "A", "email": "a@x.com"}},
		{name: "bad email", payload: map[string]any{"username": "alice", "name": "A", "email": "not-an-email", "password": "secret1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", tt.payload)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	app := newTestServer(t)

	signupAlice(t, app)

	// Same email, different username.
	status, body, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": "alice2",
		"name":     "Alice Two",
		"email":    "a@x.com",
		"password": "secret2",
	})

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "email or username already exists", body["error"])
}

func TestSignupWithoutAutoAuth(t *testing.T) {
	app := newTestServer(t, func(cfg *config.Config) {
		cfg.AutoAuthOnSignup = false
	})

	status, body, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": "alice",
		"name":     "Alice",
		"email":    "a@x.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, body["user"])
	_, hasToken := body["token"]
	assert.False(t, hasToken)

	// The account still works through signin.
	status, body, _ = doJSON(t, app, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
}

func TestSigninWrongPassword(t *testing.T) {
	app := newTestServer(t)
	signupAlice(t, app)

	status, body, _ := doJSON(t, app, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email":    "a@x.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["error"])
	_, hasToken := body["token"]
	assert.False(t, hasToken)
}

func TestSigninUnknownEmailSameError(t *testing.T) {
	app := newTestServer(t)
	signupAlice(t, app)

	wrongPw, wrongBody, _ := doJSON(t, app, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email":    "a@x.com",
		"password": "wrong",
	})
	noUser, noUserBody, _ := doJSON(t, app, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email":    "ghost@x.com",
		"password": "secret1",
	})

	// Neither failure mode reveals whether the account exists.
	assert.Equal(t, http.StatusUnauthorized, wrongPw)
	assert.Equal(t, http.StatusUnauthorized, noUser)
	assert.Equal(t, wrongBody["error"], noUserBody["error"])
}

func TestSigninValidation(t *testing.T) {
	app := newTestServer(t)

	status, _, _ := doJSON(t, app, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email": "a@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = doJSON(t, app, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestWhoAmIWithoutToken(t *testing.T) {
	app := newTestServer(t)

	status, _, _ := doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestWhoAmITamperedToken(t *testing.T) {
	app := newTestServer(t)
	token, _ := signupAlice(t, app)

	status, _, _ := doJSON(t, app, http.MethodGet, "/api/auth/me", token+"x", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestWhoAmIMalformedHeader(t *testing.T) {
	app := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Token abc")

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	app := newTestServer(t)

	_, _, signupRaw := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": "alice",
		"name":     "Alice",
		"email":    "a@x.com",
		"password": "secret1",
	})
	assert.NotContains(t, signupRaw, "password")
	assert.NotContains(t, signupRaw, "$2a$")

	_, _, signinRaw := doJSON(t, app, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email":    "a@x.com",
		"password": "secret1",
	})
	assert.NotContains(t, signinRaw, "$2a$")

	status, body, _ := doJSON(t, app, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)

	_, _, meRaw := doJSON(t, app, http.MethodGet, "/api/auth/me", body["token"].(string), nil)
	assert.NotContains(t, meRaw, "password")
	assert.NotContains(t, meRaw, "$2a$")
}

func TestTokenNeverCrossesUsers(t *testing.T) {
	app := newTestServer(t)

	tokenA, userA := signupAlice(t, app)

	status, bodyB, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": "bob",
		"name":     "Bob",
		"email":    "b@x.com",
		"password": "secret2",
	})
	require.Equal(t, http.StatusOK, status)
	userB := bodyB["user"].(map[string]any)

	status, me, _ := doJSON(t, app, http.MethodGet, "/api/auth/me", tokenA, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, userA["id"], me["id"])
	assert.NotEqual(t, userB["id"], me["id"])
}

func TestMealsRoundTrip(t *testing.T) {
	app := newTestServer(t)
	token, _ := signupAlice(t, app)

	status, created, _ := doJSON(t, app, http.MethodPost, "/api/meals", token, map[string]any{
		"name":     "Oatmeal",
		"calories": 300,
		"protein":  10,
		"carbs":    50,
		"fat":      5,
		"date":     time.Now().Format(time.RFC3339),
		"type":     "breakfast",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Oatmeal", created["name"])
	assert.NotZero(t, created["id"])

	status, _, raw := doJSON(t, app, http.MethodGet, "/api/meals/today", token, nil)
	require.Equal(t, http.StatusOK, status)

	var meals []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &meals))
	require.Len(t, meals, 1)
	assert.Equal(t, "Oatmeal", meals[0]["name"])
}

func TestMealsRejectUnknownType(t *testing.T) {
	app := newTestServer(t)
	token, _ := signupAlice(t, app)

	status, body, _ := doJSON(t, app, http.MethodPost, "/api/meals", token, map[string]any{
		"name": "Mystery",
		"type": "brunch",
	})
	require.Equal(t, http.StatusBadRequest, status)

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "must be breakfast, lunch, dinner, or snack", details["type"])
}

func TestMealsRequireToken(t *testing.T) {
	app := newTestServer(t)

	status, _, _ := doJSON(t, app, http.MethodGet, "/api/meals/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = doJSON(t, app, http.MethodPost, "/api/meals", "bogus.token.here", map[string]any{
		"name": "Oatmeal",
		"type": "breakfast",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestNutritionRoundTrip(t *testing.T) {
	app := newTestServer(t)
	token, _ := signupAlice(t, app)

	for i := 0; i < 9; i++ {
		status, _, _ := doJSON(t, app, http.MethodPost, "/api/nutrition", token, map[string]any{
			"date":          time.Now().Add(time.Duration(-i) * 24 * time.Hour).Format(time.RFC3339),
			"totalCalories": 2000 + i,
			"totalProtein":  100,
			"totalCarbs":    250,
			"totalFat":      70,
		})
		require.Equal(t, http.StatusOK, status)
	}

	status, _, raw := doJSON(t, app, http.MethodGet, "/api/nutrition", token, nil)
	require.Equal(t, http.StatusOK, status)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))

	// Capped at the 7 most recent, newest first.
	require.Len(t, entries, 7)
	assert.Equal(t, float64(2000), entries[0]["totalCalories"])
}

func TestNutritionRequireToken(t *testing.T) {
	app := newTestServer(t)

	status, _, _ := doJSON(t, app, http.MethodGet, "/api/nutrition", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProfileUpdateRoundTrip(t *testing.T) {
	app := newTestServer(t)
	token, _ := signupAlice(t, app)

	status, updated, _ := doJSON(t, app, http.MethodPut, "/api/users/profile", token, map[string]any{
		"age":                30,
		"gender":             "female",
		"weight":             62,
		"height":             170,
		"activityLevel":      "active",
		"dietaryPreferences": []string{"vegetarian"},
		"goals":              map[string]any{"type": "cutting", "target": 1800},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(30), updated["age"])
	assert.Equal(t, "active", updated["activityLevel"])

	// The onboarding changes show up through WhoAmI.
	status, me, _ := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(30), me["age"])
	goals := me["goals"].(map[string]any)
	assert.Equal(t, "cutting", goals["type"])
}

func TestLegacyUserEndpoints(t *testing.T) {
	app := newTestServer(t)

	status, created, _ := doJSON(t, app, http.MethodPost, "/api/users", "", map[string]any{
		"username": "legacy",
		"name":     "Legacy User",
		"email":    "legacy@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotZero(t, created["id"])

	id := int64(created["id"].(float64))
	status, fetched, _ := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", id), "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "legacy", fetched["username"])

	status, _, _ = doJSON(t, app, http.MethodGet, "/api/users/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = doJSON(t, app, http.MethodGet, "/api/users/not-a-number", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSignupSigninFlow(t *testing.T) {
	app := newTestServer(t)

	// signup alice -> 200, non-empty token, username echoed back
	status, body, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": "alice",
		"name":     "Alice",
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.NotEmpty(t, body["token"])

	// same email under another username -> 409
	status, _, _ = doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": "alice2",
		"name":     "Alice Two",
		"email":    "a@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, status)

	// wrong password -> 401, no token in the response
	status, body, _ = doJSON(t, app, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email":    "a@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["error"])
	_, hasToken := body["token"]
	assert.False(t, hasToken)
}
