package preference_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/dispatch"
	"taskflow/internal/domain"
	"taskflow/internal/services/preference"
	"taskflow/internal/store"
	"taskflow/internal/ui"
)

type signal bool

func (s signal) PrefersDark() bool { return bool(s) }

// brokenKV fails every operation.
type brokenKV struct{ sets int }

func (b *brokenKV) Get(string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}
func (b *brokenKV) Set(string, string) error {
	b.sets++
	return errors.New("storage unavailable")
}

func newQueue(t *testing.T) *dispatch.Queue {
	t.Helper()
	q := dispatch.New(8)
	t.Cleanup(q.Close)
	return q
}

func TestNew_InitialisationChain(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		dark   bool
		want   domain.Mode
	}{
		{name: "stored dark beats light system", stored: "dark", dark: false, want: domain.ModeDark},
		{name: "stored light beats dark system", stored: "light", dark: true, want: domain.ModeLight},
		{name: "nothing stored, system prefers dark", dark: true, want: domain.ModeDark},
		{name: "nothing stored, no system preference", want: domain.ModeLight},
		{name: "garbage stored falls through to system", stored: "DARK", dark: true, want: domain.ModeDark},
		{name: "garbage stored falls through to default", stored: "blue", want: domain.ModeLight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := store.NewMemoryKV()
			if tt.stored != "" {
				require.NoError(t, kv.Set(preference.StorageKey, tt.stored))
			}
			palette := ui.NewPalette()

			svc, err := preference.New(t.Context(), preference.Options{
				Queue:   newQueue(t),
				Storage: kv,
				Signal:  signal(tt.dark),
				Marker:  palette,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.want, svc.Mode())
			assert.Equal(t, tt.want, palette.Mode(), "marker must be applied before New returns")
			got, ok, err := kv.Get(preference.StorageKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tt.want.String(), got, "resolved mode is written back")
		})
	}
}

func TestNew_NilSignalDefaultsToLight(t *testing.T) {
	svc, err := preference.New(t.Context(), preference.Options{Queue: newQueue(t), Storage: store.NewMemoryKV()})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeLight, svc.Mode())
}

func TestNew_RequiresQueueAndStorage(t *testing.T) {
	_, err := preference.New(t.Context(), preference.Options{Storage: store.NewMemoryKV()})
	assert.Error(t, err)
}

func TestToggle_TwiceRestoresOriginal(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(preference.StorageKey, "dark"))
	svc, err := preference.New(t.Context(), preference.Options{Queue: newQueue(t), Storage: kv})
	require.NoError(t, err)

	m, err := svc.Toggle(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.ModeLight, m)
	assert.Equal(t, domain.ModeLight, svc.Mode(), "readers see the new mode as soon as Toggle returns")
	stored, _, _ := kv.Get(preference.StorageKey)
	assert.Equal(t, "light", stored)

	_, err = svc.Toggle(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.ModeDark, svc.Mode())
	stored, _, _ = kv.Get(preference.StorageKey)
	assert.Equal(t, "dark", stored)
}

func TestToggle_RapidSuccessionLastWriteWins(t *testing.T) {
	kv := store.NewMemoryKV()
	svc, err := preference.New(t.Context(), preference.Options{Queue: newQueue(t), Storage: kv})
	require.NoError(t, err)

	for range 7 {
		_, err := svc.Toggle(t.Context())
		require.NoError(t, err)
	}
	assert.Equal(t, domain.ModeDark, svc.Mode())
	stored, _, _ := kv.Get(preference.StorageKey)
	assert.Equal(t, "dark", stored)
}

func TestStorageFailuresDegradeGracefully(t *testing.T) {
	kv := &brokenKV{}
	palette := ui.NewPalette()
	svc, err := preference.New(t.Context(), preference.Options{
		Queue:   newQueue(t),
		Storage: kv,
		Signal:  signal(true),
		Marker:  palette,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeDark, svc.Mode(), "unreadable storage falls through to the system signal")

	m, err := svc.Toggle(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.ModeLight, m)
	assert.Equal(t, domain.ModeLight, svc.Snapshot().Mode)
	assert.Equal(t, domain.ModeLight, palette.Mode())
	assert.Equal(t, 2, kv.sets)
}
