package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetSet(t *testing.T) {
	m := New(time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	_, ok := m.Get("k")
	assert.False(t, ok)

	m.Set("k", 42)
	v, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	now = now.Add(2 * time.Minute)
	_, ok = m.Get("k")
	assert.False(t, ok)

	st := m.Stats()
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, uint64(2), st.Misses)
	assert.Equal(t, 1, st.Entries)

	assert.Equal(t, 1, m.Purge())
	assert.Equal(t, 0, m.Stats().Entries)
}

func TestManager_DisabledWithZeroTTL(t *testing.T) {
	m := New(0)
	m.Set("k", 1)
	_, ok := m.Get("k")
	assert.False(t, ok)
}

func TestManager_DeletePrefix(t *testing.T) {
	m := New(time.Minute)
	m.Set("analytics:b1:2024", 1)
	m.Set("analytics:b1:2025", 2)
	m.Set("analytics:b2:2025", 3)

	assert.Equal(t, 2, m.DeletePrefix("analytics:b1:"))
	_, ok := m.Get("analytics:b2:2025")
	assert.True(t, ok)

	m.Delete("analytics:b2:2025")
	_, ok = m.Get("analytics:b2:2025")
	assert.False(t, ok)
}

func TestManager_GetOrLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads once", func(t *testing.T) {
		m := New(time.Minute)
		var calls atomic.Int32
		load := func(ctx context.Context) (any, error) {
			calls.Add(1)
			time.Sleep(10 * time.Millisecond)
			return "report", nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := m.GetOrLoad(ctx, "k", load)
				assert.NoError(t, err)
				assert.Equal(t, "report", v)
			}()
		}
		wg.Wait()

		v, err := m.GetOrLoad(ctx, "k", load)
		require.NoError(t, err)
		assert.Equal(t, "report", v)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		m := New(time.Minute)
		_, err := m.GetOrLoad(ctx, "k", func(ctx context.Context) (any, error) {
			return nil, errors.New("db down")
		})
		assert.EqualError(t, err, "db down")
		assert.Equal(t, 0, m.Stats().Entries)
	})
}

func TestManager_Observer(t *testing.T) {
	m := New(time.Minute)
	var hits, misses int
	m.Observe(func(hit bool) {
		if hit {
			hits++
		} else {
			misses++
		}
	})
	m.Get("k")
	m.Set("k", 1)
	m.Get("k")
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	m := New(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
