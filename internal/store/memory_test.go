package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiittsunne/wardle/internal/game"
	"github.com/kiittsunne/wardle/internal/match"
	"github.com/kiittsunne/wardle/internal/words"
)

func newMatch(t *testing.T) *match.Match {
	t.Helper()
	d, err := words.New([]string{"crane", "trace", "ghost"})
	require.NoError(t, err)
	m, err := match.NewFactory(d, game.NewSeededSelector(1), 0, game.Options{}).Start(game.ModeSolo, "", match.SourceRandom)
	require.NoError(t, err)
	return m
}

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	m := newMatch(t)

	require.NoError(t, s.Save(ctx, m))
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(ctx, m.ID())
	require.NoError(t, err)
	assert.Same(t, m, got)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, m.ID()))
	require.NoError(t, s.Delete(ctx, m.ID()))
	assert.Zero(t, s.Len())
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a, b := newMatch(t), newMatch(t)
	require.NoError(t, s.Save(ctx, a))
	require.NoError(t, s.Save(ctx, b))

	assert.Zero(t, s.Sweep(time.Now(), time.Hour))
	assert.Equal(t, 2, s.Sweep(time.Now().Add(2*time.Hour), time.Hour))
	assert.Zero(t, s.Len())
}

func TestMemory_JanitorStops(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Save(context.Background(), newMatch(t)))

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Janitor(ctx, time.Millisecond, 0, nil) }()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-errc)
}

func TestMemory_JanitorZeroIntervalAndTick(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan int, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- s.Janitor(ctx, 0, time.Hour, func(_ time.Time, n int) {
			select {
			case ticks <- n:
			default:
			}
		})
	}()

	select {
	case n := <-ticks:
		assert.Zero(t, n)
	case <-time.After(5 * time.Second):
		t.Fatal("janitor never ticked")
	}
	cancel()
	assert.NoError(t, <-errc)
}
