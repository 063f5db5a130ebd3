package tasks_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/dispatch"
	"taskflow/internal/domain"
	"taskflow/internal/services/tasks"
)

type fakeSource struct {
	gate    chan struct{}
	started chan struct{}
	items   []domain.Task
	err     error
}

func (f *fakeSource) FetchTasks(ctx context.Context, _ domain.Identity) ([]domain.Task, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.items, f.err
}

var (
	alice = domain.Identity{ID: "1", Username: "alice", Token: "tok"}
	bob   = domain.Identity{ID: "2", Username: "bob", Token: "tok-b"}
)

// scope is a settable identity holder standing in for the session store.
type scope struct {
	mu       sync.Mutex
	id       domain.Identity
	signedIn bool
}

func signedIn(id domain.Identity) *scope { return &scope{id: id, signedIn: true} }

func (s *scope) Current() (domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.signedIn
}

func (s *scope) set(id domain.Identity, in bool) {
	s.mu.Lock()
	s.id, s.signedIn = id, in
	s.mu.Unlock()
}

func TestRefresh_CachesItems(t *testing.T) {
	q := dispatch.New(8)
	t.Cleanup(q.Close)
	src := &fakeSource{items: []domain.Task{{ID: "t1", Title: "Write report"}}}
	svc := tasks.New(q, src, signedIn(alice), nil)

	items, ok, err := svc.Refresh(t.Context())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, src.items, items)
	assert.Equal(t, src.items, svc.Items())
}

func TestRefresh_ErrorLeavesCacheUntouched(t *testing.T) {
	q := dispatch.New(8)
	t.Cleanup(q.Close)
	svc := tasks.New(q, &fakeSource{err: errors.New("boom")}, signedIn(alice), nil)

	_, ok, err := svc.Refresh(t.Context())
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Empty(t, svc.Items())
}

func TestRefresh_ClearDuringFetchWins(t *testing.T) {
	q := dispatch.New(8)
	t.Cleanup(q.Close)
	src := &fakeSource{
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
		items:   []domain.Task{{ID: "t1", Title: "Private"}},
	}
	svc := tasks.New(q, src, signedIn(alice), nil)

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		_, ok, err := svc.Refresh(context.Background())
		done <- result{ok, err}
	}()
	<-src.started
	require.NoError(t, q.Do(t.Context(), svc.Clear))
	close(src.gate)

	r := <-done
	require.NoError(t, r.err)
	assert.False(t, r.ok)
	assert.Empty(t, svc.Items())
}

func TestRefresh_AnonymousIsRejected(t *testing.T) {
	q := dispatch.New(8)
	t.Cleanup(q.Close)
	src := &fakeSource{started: make(chan struct{}, 1)}
	svc := tasks.New(q, src, &scope{}, nil)

	_, ok, err := svc.Refresh(t.Context())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.False(t, ok)
	assert.Empty(t, src.started, "source must not be called")
}

func TestRefresh_SignOutQueuedBeforeRefresh(t *testing.T) {
	q := dispatch.New(8)
	t.Cleanup(q.Close)
	sc := signedIn(alice)
	src := &fakeSource{started: make(chan struct{}, 1), items: []domain.Task{{ID: "t1", Title: "Private"}}}
	svc := tasks.New(q, src, sc, nil)

	block := make(chan struct{})
	require.True(t, q.Post(func() { <-block }))
	require.True(t, q.Post(func() {
		sc.set(domain.Identity{}, false)
		svc.Clear()
	}))
	close(block)

	_, ok, err := svc.Refresh(t.Context())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.False(t, ok)
	assert.Empty(t, src.started)
	assert.Empty(t, svc.Items())
}

func TestRefresh_IdentityChangeDuringFetchDiscards(t *testing.T) {
	q := dispatch.New(8)
	t.Cleanup(q.Close)
	sc := signedIn(alice)
	src := &fakeSource{
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
		items:   []domain.Task{{ID: "t1", Title: "Alice only"}},
	}
	svc := tasks.New(q, src, sc, nil)

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		_, ok, err := svc.Refresh(context.Background())
		done <- result{ok, err}
	}()
	<-src.started
	// Another user signs in without a Clear in between.
	require.NoError(t, q.Do(t.Context(), func() { sc.set(bob, true) }))
	close(src.gate)

	r := <-done
	require.NoError(t, r.err)
	assert.False(t, r.ok)
	assert.Empty(t, svc.Items())
}
