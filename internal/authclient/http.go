package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"taskflow/internal/domain"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4 << 10

// HTTP talks to the TaskFlow API at Base.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for base using hc (http.DefaultClient when nil).
func NewHTTP(base string, hc *http.Client) *HTTP {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// Wire shapes. The core never sees these.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

type registerResponse struct {
	User userPayload `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Login implements domain.Verifier.
func (c *HTTP) Login(ctx context.Context, creds domain.Credentials) (domain.Identity, error) {
	var out loginResponse
	if err := c.post(ctx, "/api/auth/login", toRequest(creds), &out); err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{ID: out.User.ID, Username: domain.Username(out.User.Username), Token: out.Token}, nil
}

// Register implements domain.Verifier.
func (c *HTTP) Register(ctx context.Context, creds domain.Credentials) (domain.Identity, error) {
	var out registerResponse
	if err := c.post(ctx, "/api/auth/register", toRequest(creds), &out); err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{ID: out.User.ID, Username: domain.Username(out.User.Username)}, nil
}

// FetchTasks implements domain.TaskSource.
func (c *HTTP) FetchTasks(ctx context.Context, id domain.Identity) ([]domain.Task, error) {
	if id.Token == "" {
		return nil, domain.ErrNotAuthenticated
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/api/tasks", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+id.Token)
	var tasks []domain.Task
	if err := c.do(req, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func toRequest(creds domain.Credentials) credentialsRequest {
	return credentialsRequest{Username: creds.Username.String(), Password: string(creds.Password)}
}

func (c *HTTP) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTP) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &domain.AuthError{Kind: domain.AuthUnavailable, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return rejected(req, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.AuthError{
			Kind:   domain.AuthUnavailable,
			Status: resp.StatusCode,
			Cause:  fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err),
		}
	}
	return nil
}

func rejected(req *http.Request, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var e errorResponse
	_ = json.Unmarshal(body, &e)
	return &domain.AuthError{
		Kind:    domain.AuthRejected,
		Message: strings.TrimSpace(e.Message),
		Status:  resp.StatusCode,
		Cause:   fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, resp.Status),
	}
}

var (
	_ domain.Verifier   = (*HTTP)(nil)
	_ domain.TaskSource = (*HTTP)(nil)
)
