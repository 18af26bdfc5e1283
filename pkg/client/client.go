// Package client is the Go API client for the NutriTrack server. It mirrors
// the browser session cache: a stored bearer token plus an in-memory user,
// with route access gated on authentication state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// State is the session state machine: loading until the first identity check
// resolves, then authenticated or anonymous.
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrUnauthenticated is returned for calls that need a session while the
// client is anonymous.
var ErrUnauthenticated = errors.New("client: not authenticated")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// User is the wire representation of a user record.
type User struct {
	ID                 int64     `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Age                int       `json:"age"`
	Gender             string    `json:"gender"`
	Weight             int       `json:"weight"`
	Height             int       `json:"height"`
	ActivityLevel      string    `json:"activityLevel"`
	DietaryPreferences []string  `json:"dietaryPreferences"`
	Goals              Goals     `json:"goals"`
	CreatedAt          time.Time `json:"createdAt"`
}

type Goals struct {
	Type   string `json:"type"`
	Target int    `json:"target"`
}

type Meal struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Protein   int       `json:"protein"`
	Carbs     int       `json:"carbs"`
	Fat       int       `json:"fat"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	IsPlanned bool      `json:"isPlanned"`
}

type NutritionEntry struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	Date          time.Time `json:"date"`
	TotalCalories int       `json:"totalCalories"`
	TotalProtein  int       `json:"totalProtein"`
	TotalCarbs    int       `json:"totalCarbs"`
	TotalFat      int       `json:"totalFat"`
	Weight        *int      `json:"weight,omitempty"`
}

// SignupData is the signup payload.
type SignupData struct {
	Username           string   `json:"username"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	Age                int      `json:"age,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	Weight             int      `json:"weight,omitempty"`
	Height             int      `json:"height,omitempty"`
	ActivityLevel      string   `json:"activityLevel,omitempty"`
	DietaryPreferences []string `json:"dietaryPreferences,omitempty"`
}

// ProfileData is the onboarding profile payload.
type ProfileData struct {
	Age                int      `json:"age"`
	Gender             string   `json:"gender"`
	Weight             int      `json:"weight"`
	Height             int      `json:"height"`
	ActivityLevel      string   `json:"activityLevel"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	Goals              Goals    `json:"goals"`
}

type authResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client talks to the NutriTrack API and caches the session.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore

	mu    sync.RWMutex
	state State
	user  *User
}

// Option configures the Client.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithTokenStore(s TokenStore) Option {
	return func(c *Client) {
		if s != nil {
			c.store = s
		}
	}
}

// New returns a Client in StateLoading; call Load to resolve the session.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   NewMemoryStore(),
		state:   StateLoading,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns the current session state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// CurrentUser returns the cached user, nil while anonymous or loading.
func (c *Client) CurrentUser() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Load resolves the initial session: with no stored token the client goes
// anonymous; otherwise the identity endpoint decides.
func (c *Client) Load(ctx context.Context) error {
	token, err := c.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		c.setAnonymous()
		return nil
	}

	user := &User{}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, user); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			// The token was rejected, the session is simply gone.
			_ = c.store.Clear()
			c.setAnonymous()
			return nil
		}
		return err
	}

	c.setAuthenticated(user)
	return nil
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}

	out := &authResponse{}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", body, out); err != nil {
		return nil, err
	}

	if err := c.store.Save(out.Token); err != nil {
		return nil, err
	}

	c.setAuthenticated(out.User)
	return out.User, nil
}

// SignUp registers a new account. Whether the response carries a token is
// server policy; without one the client stays anonymous until SignIn.
func (c *Client) SignUp(ctx context.Context, data SignupData) (*User, error) {
	out := &authResponse{}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", data, out); err != nil {
		return nil, err
	}

	if out.Token == "" {
		c.setAnonymous()
		return out.User, nil
	}

	if err := c.store.Save(out.Token); err != nil {
		return nil, err
	}

	c.setAuthenticated(out.User)
	return out.User, nil
}

// SignOut discards the stored token. The server keeps no session state, so
// this is purely local.
func (c *Client) SignOut() error {
	if err := c.store.Clear(); err != nil {
		return err
	}
	c.setAnonymous()
	return nil
}

// Me fetches the authenticated user and refreshes the cache.
func (c *Client) Me(ctx context.Context) (*User, error) {
	user := &User{}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, user); err != nil {
		return nil, err
	}
	c.setAuthenticated(user)
	return user, nil
}

// UpdateProfile submits the onboarding profile.
func (c *Client) UpdateProfile(ctx context.Context, data ProfileData) (*User, error) {
	user := &User{}
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", data, user); err != nil {
		return nil, err
	}
	c.setAuthenticated(user)
	return user, nil
}

// TodayMeals lists the authenticated user's meals for the current day.
func (c *Client) TodayMeals(ctx context.Context) ([]Meal, error) {
	var out []Meal
	if err := c.do(ctx, http.MethodGet, "/api/meals/today", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LogMeal records a meal.
func (c *Client) LogMeal(ctx context.Context, meal Meal) (*Meal, error) {
	out := &Meal{}
	if err := c.do(ctx, http.MethodPost, "/api/meals", meal, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Nutrition lists recent daily totals, newest first.
func (c *Client) Nutrition(ctx context.Context) ([]NutritionEntry, error) {
	var out []NutritionEntry
	if err := c.do(ctx, http.MethodGet, "/api/nutrition", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LogNutrition records a day's totals.
func (c *Client) LogNutrition(ctx context.Context, entry NutritionEntry) (*NutritionEntry, error) {
	out := &NutritionEntry{}
	if err := c.do(ctx, http.MethodPost, "/api/nutrition", entry, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) setAuthenticated(user *User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateAuthenticated
	c.user = user
}

func (c *Client) setAnonymous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateAnonymous
	c.user = nil
}

// do runs one API call: attaches the bearer token when present, decodes the
// response, and clears the session on a 401.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.store.Load()
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		// Token is no longer honored anywhere, drop it.
		_ = c.store.Clear()
		c.setAnonymous()
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode, Message: "request failed"}
		var decoded errorResponse
		if err := json.NewDecoder(res.Body).Decode(&decoded); err == nil && decoded.Error != "" {
			apiErr.Message = decoded.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(res.Body).Decode(out)
}
