package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"inkwell/internal/models"
)

// ErrNotAuthenticated is returned by protected operations when no session
// is held. The refusal happens locally, before any network I/O.
var ErrNotAuthenticated = errors.New("not logged in")

// APIError carries the structured error body of a failed request.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the inkwell API and maintains the current session.
type Client struct {
	baseURL string
	http    *http.Client
	store   *SessionStore
	session *Session
}

// New creates a client for the API at baseURL, loading any persisted
// session from the store.
func New(baseURL string, store *SessionStore) (*Client, error) {
	sess, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
		session: sess,
	}, nil
}

// Session returns the current session, nil when anonymous.
func (c *Client) Session() *Session {
	return c.session
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Signup registers a new account and replaces the current session.
func (c *Client) Signup(ctx context.Context, username, email, password string) (*Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, false, &resp)
	if err != nil {
		return nil, err
	}
	return c.adopt(&resp)
}

// Login authenticates and replaces the current session wholesale.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, false, &resp)
	if err != nil {
		return nil, err
	}
	return c.adopt(&resp)
}

func (c *Client) adopt(resp *authResponse) (*Session, error) {
	sess := &Session{User: resp.User, Token: resp.Token}
	if err := c.store.Save(sess); err != nil {
		return nil, err
	}
	c.session = sess
	return sess, nil
}

// Logout clears both the in-memory and the persisted session.
func (c *Client) Logout() error {
	c.session = nil
	return c.store.Clear()
}

// ListPosts fetches posts newest-first.
func (c *Client) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	path := fmt.Sprintf("/api/posts/?limit=%d&offset=%d", limit, offset)
	if err := c.do(ctx, http.MethodGet, path, nil, false, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches a single post by ID.
func (c *Client) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, false, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post authored by the current user.
func (c *Client) CreatePost(ctx context.Context, title, content string) (*models.Post, error) {
	if !c.session.LoggedIn() {
		return nil, ErrNotAuthenticated
	}
	var post models.Post
	err := c.do(ctx, http.MethodPost, "/api/posts/", map[string]string{
		"title":   title,
		"content": content,
	}, true, &post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost replaces the title and content of a post owned by the
// current user.
func (c *Client) UpdatePost(ctx context.Context, id uint, title, content string) (*models.Post, error) {
	if !c.session.LoggedIn() {
		return nil, ErrNotAuthenticated
	}
	var post models.Post
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), map[string]string{
		"title":   title,
		"content": content,
	}, true, &post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post owned by the current user.
func (c *Client) DeletePost(ctx context.Context, id uint) error {
	if !c.session.LoggedIn() {
		return ErrNotAuthenticated
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, true, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, withAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var body models.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr == nil && body.Error != "" {
			apiErr.Message = body.Error
			apiErr.Code = body.Code
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
