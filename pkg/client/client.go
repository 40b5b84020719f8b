// Package client is a typed API client for the blood donation service.
// It carries the session-handling rules every caller must follow: the
// token is re-read from the store on each call, and any 401/403 response
// tears the session down instead of being retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

// ErrSessionExpired signals that the server rejected the session and the
// local auth state has been cleared. Callers should send the user to login.
var ErrSessionExpired = errors.New("session expired")

// ErrNoSession signals a call that requires authentication was attempted
// without a stored token. Nothing is sent to the server.
var ErrNoSession = errors.New("not logged in")

// TokenStore holds the persisted auth state, the way the SPA kept token,
// user and userType in local storage.
type TokenStore interface {
	Token() string
	User() (models.User, bool)
	SetSession(token string, user models.User)
	Clear()
}

// MemoryStore is the default TokenStore.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  models.User
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.set
}

func (s *MemoryStore) SetSession(token string, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	s.set = true
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = models.User{}
	s.set = false
}

// APIError is a non-auth failure reported by the server. Message carries
// the first validation message when the server returned an errors list.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore
}

func New(store TokenStore) *Client {
	baseURL := os.Getenv("BLOODHERO_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		store: store,
	}
}

func NewWithBaseURL(store TokenStore, baseURL string) *Client {
	c := New(store)
	c.baseURL = baseURL
	return c
}

type errorBody struct {
	Error  string `json:"error"`
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

// do issues one request. The token is read fresh from the store so a
// rotated token is picked up immediately.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("x-auth-token", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.store.Clear()
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)

		message := eb.Error
		if len(eb.Errors) > 0 && eb.Errors[0].Msg != "" {
			message = eb.Errors[0].Msg
		}
		if message == "" {
			message = "request failed"
		}

		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Login authenticates and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}

	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return models.User{}, err
	}

	c.store.SetSession(resp.Token, resp.User)
	return resp.User, nil
}

// Logout drops the local session. Purely local, like the SPA.
func (c *Client) Logout() {
	c.store.Clear()
}

// CurrentSession returns the stored user if a session exists.
func (c *Client) CurrentSession() (models.User, bool) {
	if c.store.Token() == "" {
		return models.User{}, false
	}
	return c.store.User()
}

// ReverseGeocode resolves a human-readable address through the backend.
// A failure degrades to the raw-coordinate placeholder, never an error.
func (c *Client) ReverseGeocode(ctx context.Context, point models.Coordinates) string {
	var resp struct {
		Address string `json:"address"`
	}

	path := fmt.Sprintf("/geo/reverse-geocode?lat=%f&lng=%f", point.Lat, point.Lng)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil || resp.Address == "" {
		return point.Placeholder()
	}

	return resp.Address
}

// Directions fetches a normalized route through the backend.
func (c *Client) Directions(ctx context.Context, origin, destination models.Coordinates, mode string) (*models.DirectionsResult, error) {
	if mode == "" {
		mode = "driving"
	}

	var result models.DirectionsResult
	path := fmt.Sprintf("/geo/directions?origin_lat=%f&origin_lng=%f&dest_lat=%f&dest_lng=%f&mode=%s",
		origin.Lat, origin.Lng, destination.Lat, destination.Lng, mode)

	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ExternalMapsURL builds the deep link offered as a last resort when no
// directions provider answered. Always available, built from raw
// coordinates only.
func ExternalMapsURL(origin, destination models.Coordinates) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&origin=%f,%f&destination=%f,%f",
		origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}
