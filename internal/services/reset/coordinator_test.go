package reset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/dispatch"
	"taskflow/internal/domain"
	"taskflow/internal/services/preference"
	"taskflow/internal/services/reset"
	"taskflow/internal/services/session"
	"taskflow/internal/services/tasks"
	"taskflow/internal/store"
)

type stubVerifier struct{}

func (stubVerifier) Login(_ context.Context, c domain.Credentials) (domain.Identity, error) {
	if string(c.Password) != "secret" {
		return domain.Identity{}, &domain.AuthError{Kind: domain.AuthRejected, Message: "Invalid username or password"}
	}
	return domain.Identity{ID: "1", Username: c.Username, Token: "tok"}, nil
}

func (stubVerifier) Register(_ context.Context, c domain.Credentials) (domain.Identity, error) {
	return domain.Identity{ID: "2", Username: c.Username}, nil
}

type stubSource struct{}

func (stubSource) FetchTasks(context.Context, domain.Identity) ([]domain.Task, error) {
	return []domain.Task{{ID: "t1", Title: "Ship it"}}, nil
}

type fixture struct {
	queue *dispatch.Queue
	sess  *session.Service
	tasks *tasks.Service
	coord *reset.Coordinator
	navs  int
	// stateAtNav records what navigation observed.
	stateAtNav domain.SessionState
	tasksAtNav int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{queue: dispatch.New(16)}
	t.Cleanup(f.queue.Close)
	f.sess = session.New(f.queue, stubVerifier{}, nil, nil)
	f.tasks = tasks.New(f.queue, stubSource{}, f.sess, nil)
	f.coord = reset.New(f.queue, f.sess, []reset.Dependent{f.tasks}, func() {
		f.navs++
		f.stateAtNav = f.sess.Snapshot()
		f.tasksAtNav = len(f.tasks.Items())
	}, nil, nil)
	return f
}

func (f *fixture) signIn(t *testing.T) {
	t.Helper()
	out, err := f.sess.Login(t.Context(), domain.Credentials{Username: "alice", Password: []byte("secret")})
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeAuthenticated, out.Kind)
	_, ok, err := f.tasks.Refresh(t.Context())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLogout_ClearsSessionAndTasksBeforeNavigation(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)

	changed, err := f.coord.Logout(t.Context())
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, 1, f.navs)
	assert.Equal(t, domain.SessionState{Status: domain.StatusAnonymous}, f.stateAtNav)
	assert.Zero(t, f.tasksAtNav)
	assert.Empty(t, f.tasks.Items())
}

func TestLogout_SecondCallIsNoop(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)

	_, err := f.coord.Logout(t.Context())
	require.NoError(t, err)
	changed, err := f.coord.Logout(t.Context())
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, 1, f.navs)
}

func TestLogout_FromFailedClearsError(t *testing.T) {
	f := newFixture(t)
	_, err := f.sess.Login(t.Context(), domain.Credentials{Username: "alice", Password: []byte("nope")})
	require.NoError(t, err)
	require.Equal(t, domain.StatusFailed, f.sess.Snapshot().Status)

	changed, err := f.coord.Logout(t.Context())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.SessionState{Status: domain.StatusAnonymous}, f.sess.Snapshot())
	assert.Empty(t, f.tasks.Items())
}

func TestLogout_LeavesPreferenceAlone(t *testing.T) {
	f := newFixture(t)
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(preference.StorageKey, "dark"))
	prefs, err := preference.New(t.Context(), preference.Options{Queue: f.queue, Storage: kv})
	require.NoError(t, err)

	f.signIn(t)
	_, err = f.coord.Logout(t.Context())
	require.NoError(t, err)

	assert.Equal(t, domain.ModeDark, prefs.Mode())
	v, ok, err := kv.Get(preference.StorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}
