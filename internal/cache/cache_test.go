package cache

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Life  int       `json:"life"`
	Capex []float64 `json:"capex"`
}

func TestKeyIsContentHash(t *testing.T) {
	a := sample{Life: 20, Capex: []float64{100}}
	b := sample{Life: 20, Capex: []float64{100}}

	ka, err := Key(a, []string{"x"})
	require.NoError(t, err)
	kb, err := Key(b, []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, ka, kb)
	assert.Len(t, ka, 64)

	b.Capex[0] = 101
	kc, err := Key(b, []string{"x"})
	require.NoError(t, err)
	assert.NotEqual(t, ka, kc)

	// part boundaries matter
	k1, _ := Key("ab", "c")
	k2, _ := Key("a", "bc")
	assert.NotEqual(t, k1, k2)
}

func TestMemoryStoreGetSetExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(50*time.Millisecond, 0)
	defer s.Close()

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	val := []byte("v1")
	require.NoError(t, s.Set(ctx, "k", val))
	val[0] = 'x'

	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	time.Sleep(80 * time.Millisecond)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)

	s.sweep(time.Now())
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute, 10*time.Millisecond)
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key, _ := Key(id, j%10)
				_ = s.Set(ctx, key, []byte{byte(j)})
				_, _, _ = s.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 80, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	s := NewRedisStore(addr, "feasibility-test:", time.Minute)
	defer s.Close()
	require.NoError(t, s.Ping(ctx))

	key, _ := Key(t.Name(), time.Now().UnixNano())
	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, key, []byte("payload")))
	got, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), got)
}
