package authserver_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/authclient"
	"taskflow/internal/authserver"
	"taskflow/internal/dispatch"
	"taskflow/internal/domain"
	"taskflow/internal/services/session"
	"taskflow/internal/services/tasks"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	users, err := authserver.OpenUsers(filepath.Join(t.TempDir(), "users.db"), bcrypt.MinCost)
	require.NoError(t, err)
	t.Cleanup(func() { _ = users.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(authserver.New(users, logger, prom.NewRegistry()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestRegisterLoginTasks(t *testing.T) {
	srv := newServer(t)
	c := authclient.NewHTTP(srv.URL, srv.Client())
	ctx := context.Background()

	created, err := c.Register(ctx, domain.Credentials{Username: "alice", Password: []byte("secret")})
	require.NoError(t, err)
	assert.Equal(t, domain.Username("alice"), created.Username)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Token)

	_, err = c.Register(ctx, domain.Credentials{Username: "alice", Password: []byte("other")})
	assert.Equal(t, "Username already exists", domain.UserMessage(err))

	_, err = c.Login(ctx, domain.Credentials{Username: "alice", Password: []byte("wrong")})
	assert.Equal(t, "Invalid username or password", domain.UserMessage(err))

	_, err = c.Login(ctx, domain.Credentials{Username: "nobody", Password: []byte("secret")})
	assert.Equal(t, "Invalid username or password", domain.UserMessage(err))

	id, err := c.Login(ctx, domain.Credentials{Username: "alice", Password: []byte("secret")})
	require.NoError(t, err)
	assert.Equal(t, created.ID, id.ID)
	require.NotEmpty(t, id.Token)

	list, err := c.FetchTasks(ctx, id)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestMissingFields(t *testing.T) {
	srv := newServer(t)
	resp, err := srv.Client().Post(srv.URL+"/api/auth/register", "application/json", strings.NewReader(`{"username":"a"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"message":"Username and password are required"}`, string(body))
}

func TestTasksNeedToken(t *testing.T) {
	srv := newServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer nope")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newServer(t)
	c := authclient.NewHTTP(srv.URL, srv.Client())
	_, _ = c.Login(context.Background(), domain.Credentials{Username: "x", Password: []byte("y")})

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `taskflowd_auth_results_total{op="login",result="failure"} 1`)
}

func TestSessionAgainstServer(t *testing.T) {
	srv := newServer(t)
	c := authclient.NewHTTP(srv.URL, srv.Client())
	q := dispatch.New(8)
	t.Cleanup(q.Close)
	sess := session.New(q, c, nil, nil)
	cache := tasks.New(q, c, sess, nil)
	ctx := context.Background()

	out, err := sess.Register(ctx, domain.RegisterCredentials{
		Username: "bob", Password: []byte("hunter22"), Confirmation: []byte("hunter22"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRegistered, out.Kind)
	assert.Equal(t, domain.StatusAnonymous, sess.Snapshot().Status)

	out, err = sess.Login(ctx, domain.Credentials{Username: "bob", Password: []byte("nope")})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFailed, out.Kind)
	assert.Equal(t, "Invalid username or password", sess.Snapshot().ErrorMessage)

	out, err = sess.Login(ctx, domain.Credentials{Username: "bob", Password: []byte("hunter22")})
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeAuthenticated, out.Kind)

	items, ok, err := cache.Refresh(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, items, 3)
}
