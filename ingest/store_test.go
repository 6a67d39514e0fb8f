package ingest_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/passgate/ingest"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestStore_CreateAndGet(t *testing.T) {
	st := ingest.NewStore(time.Hour)
	s := st.Create()

	got, err := st.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Len())
}

func TestStore_GetRejectsUnknownIDs(t *testing.T) {
	st := ingest.NewStore(time.Hour)

	_, err := st.Get("not-a-uuid")
	assert.ErrorIs(t, err, ingest.ErrStaleSession)

	_, err = st.Get("7d444840-9dc0-11d1-b245-5ffdce74fad2")
	assert.ErrorIs(t, err, ingest.ErrStaleSession)
}

func TestStore_Resolve(t *testing.T) {
	st := ingest.NewStore(time.Hour)

	s, created := st.Resolve("")
	assert.True(t, created)

	again, created := st.Resolve(s.ID())
	assert.False(t, created)
	assert.Same(t, s, again)
}

func TestStore_ExpiryAndSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	st := ingest.NewStore(10*time.Minute, ingest.WithClock(clock.Now))

	idle := st.Create()
	active := st.Create()

	clock.Advance(6 * time.Minute)
	_, err := st.Get(active.ID())
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	_, err = st.Get(idle.ID())
	assert.ErrorIs(t, err, ingest.ErrStaleSession)

	assert.Equal(t, 1, st.Sweep())
	assert.Equal(t, 1, st.Len())

	_, err = st.Get(active.ID())
	assert.NoError(t, err)
}

func TestStore_NoTTLNeverExpires(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	st := ingest.NewStore(0, ingest.WithClock(clock.Now))
	s := st.Create()

	clock.Advance(24 * 365 * time.Hour)

	_, err := st.Get(s.ID())
	assert.NoError(t, err)
	assert.Zero(t, st.Sweep())
}

func TestStore_RunStopsWithContext(t *testing.T) {
	st := ingest.NewStore(time.Millisecond)
	st.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- st.Run(ctx, time.Millisecond) }()

	require.Eventually(t, func() bool { return st.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
