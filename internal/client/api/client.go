// Package api is a typed client for the task manager HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/client/models"
	"github.com/amanda-parkwaylabs/task-manager/internal/common"
)

// ErrUnavailable is returned when the server cannot be reached at all.
var ErrUnavailable = errors.New("server unavailable")

// Error is a non-2xx API response. It unwraps to the matching common
// sentinel so callers can use errors.Is(err, common.ErrorNotFound) etc.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return common.ErrorValidation
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusForbidden:
		return common.ErrorForbidden
	case http.StatusNotFound:
		return common.ErrorNotFound
	default:
		return common.ErrorInternal
	}
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &Error{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates an account. role may be empty for a regular user.
func (c *Client) Register(ctx context.Context, username, email, password, role string) (string, error) {
	in := map[string]string{"username": username, "email": email, "password": password}
	if role != "" {
		in["role"] = role
	}
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, "/register", "", in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", "", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) CreateTask(ctx context.Context, token string, t models.NewTask) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", token, t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	var out []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, token, id string, p models.TaskPatch) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, token, id string) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), token, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Healthy reports whether the server answers its health check.
func (c *Client) Healthy(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}
