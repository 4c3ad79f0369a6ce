package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/common"
)

const maxResponseBytes = 1 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do sends in as JSON and decodes a 2xx body into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &common.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &common.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	reader := io.LimitReader(resp.Body, maxResponseBytes)

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.NewDecoder(reader).Decode(&eb)
		return mapStatus(resp.StatusCode, eb)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, reader)
		return nil
	}
	if err := json.NewDecoder(reader).Decode(out); err != nil {
		return &common.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	in := map[string]string{"name": name, "email": email, "password": password}
	var out models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	in := map[string]string{"email": email, "password": password}
	var out models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type userEnvelope struct {
	User models.User `json:"user"`
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPut, "/auth/profile", token, update, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	out := make([]models.Task, 0)
	if err := c.do(ctx, http.MethodGet, "/tasks", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, token, title, description string) (*models.Task, error) {
	in := map[string]string{"title": title}
	if description != "" {
		in["description"] = description
	}
	var out models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, token, id string, update models.TaskUpdate) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), token, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), token, nil, nil)
}

type healthBody struct {
	Status string `json:"status"`
}

// Ping reports a TransportError wrapping ErrUnavailable unless the server
// and its database are healthy.
func (c *HTTPClient) Ping(ctx context.Context) error {
	var out healthBody
	err := c.do(ctx, http.MethodGet, "/health", "", nil, &out)
	if err != nil && common.KindOf(err) == common.KindTransport {
		return err
	}
	if err != nil || out.Status != "OK" {
		return &common.TransportError{Op: "GET /health", Err: ErrUnavailable}
	}
	return nil
}
