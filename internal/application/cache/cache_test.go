package cache_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Brewlog-api/internal/application/cache"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type item struct {
	ID   string
	Name string
}

func idOf(it *item) string { return it.ID }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newClient(t *testing.T) (*cache.QueryClient, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return cache.New(cache.DefaultConfig(), cache.WithClock(clk.Now)), clk
}

// countingFetcher devuelve una copia de items y cuenta las llamadas.
func countingFetcher(items []*item, calls *int32) cache.Fetcher[*item] {
	return func(context.Context) ([]*item, error) {
		atomic.AddInt32(calls, 1)
		return append([]*item(nil), items...), nil
	}
}

var key = cache.CollectionKey("u1", cache.CollectionBeans)

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestFetch_FrescoNoVuelveAlStore(t *testing.T) {
	c, clk := newClient(t)
	var calls int32
	fetch := countingFetcher([]*item{{ID: "a"}}, &calls)

	_, err := cache.Fetch(context.Background(), c, key, fetch)
	require.NoError(t, err)
	clk.Advance(10 * time.Second)
	got, err := cache.Fetch(context.Background(), c, key, fetch)
	require.NoError(t, err)

	assert.Len(t, got, 1)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestFetch_ViejoDevuelveYRefrescaEnBackground(t *testing.T) {
	c, clk := newClient(t)
	var calls int32
	items := []*item{{ID: "a"}}
	_, err := cache.Fetch(context.Background(), c, key, countingFetcher(items, &calls))
	require.NoError(t, err)

	clk.Advance(31 * time.Second)
	got, err := cache.Fetch(context.Background(), c, key, countingFetcher([]*item{{ID: "b"}, {ID: "a"}}, &calls))
	require.NoError(t, err)
	assert.Len(t, got, 1, "la lectura vieja devuelve el dato en memoria")

	c.Wait()
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	fresh, ok := cache.Peek[*item](c, key)
	require.True(t, ok)
	assert.Len(t, fresh, 2)
}

func TestFetch_ConcurrentesSeDeduplican(t *testing.T) {
	c, _ := newClient(t)
	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]*item, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []*item{{ID: "a"}}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Fetch(context.Background(), c, key, fetch)
			assert.NoError(t, err)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestFetch_ErrorNoModificaLaCache(t *testing.T) {
	c, _ := newClient(t)
	_, err := cache.Fetch(context.Background(), c, key, func(context.Context) ([]*item, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.False(t, c.Has(key))
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestPrepend_NuevoQuedaPrimero(t *testing.T) {
	c, _ := newClient(t)
	var calls int32
	_, err := cache.Fetch(context.Background(), c, key, countingFetcher([]*item{{ID: "a"}, {ID: "b"}}, &calls))
	require.NoError(t, err)

	assert.True(t, cache.Prepend(c, key, &item{ID: "n"}, idOf))

	got, _ := cache.Peek[*item](c, key)
	require.Len(t, got, 3)
	assert.Equal(t, "n", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestPrepend_MismoIDNoSeDuplica(t *testing.T) {
	c, _ := newClient(t)
	var calls int32
	_, _ = cache.Fetch(context.Background(), c, key, countingFetcher([]*item{{ID: "a"}, {ID: "b"}}, &calls))

	cache.Prepend(c, key, &item{ID: "b", Name: "nuevo"}, idOf)

	got, _ := cache.Peek[*item](c, key)
	require.Len(t, got, 2)
	assert.Equal(t, "nuevo", got[0].Name)
}

func TestPrepend_SinEntradaNoCreaNada(t *testing.T) {
	c, _ := newClient(t)
	assert.False(t, cache.Prepend(c, key, &item{ID: "n"}, idOf))
	assert.False(t, c.Has(key))
}

func TestRemoveByID_QuitaSoloEseRegistro(t *testing.T) {
	c, _ := newClient(t)
	var calls int32
	a, b := &item{ID: "a"}, &item{ID: "b"}
	_, _ = cache.Fetch(context.Background(), c, key, countingFetcher([]*item{a, b}, &calls))

	cache.RemoveByID(c, key, "a", idOf)

	got, _ := cache.Peek[*item](c, key)
	require.Len(t, got, 1)
	assert.Same(t, b, got[0])
}

func TestReplace(t *testing.T) {
	c, _ := newClient(t)
	var calls int32
	_, _ = cache.Fetch(context.Background(), c, key, countingFetcher([]*item{{ID: "a"}, {ID: "b"}}, &calls))

	assert.True(t, cache.Replace(c, key, &item{ID: "b", Name: "x"}, idOf))
	assert.False(t, cache.Replace(c, key, &item{ID: "z"}, idOf))

	got, _ := cache.Peek[*item](c, key)
	assert.Equal(t, "x", got[1].Name)
}

func TestPrepend_ConcurrentesNoPierdenActualizaciones(t *testing.T) {
	c, _ := newClient(t)
	var calls int32
	_, _ = cache.Fetch(context.Background(), c, key, countingFetcher(nil, &calls))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cache.Prepend(c, key, &item{ID: strconv.Itoa(i)}, idOf)
		}(i)
	}
	wg.Wait()

	got, _ := cache.Peek[*item](c, key)
	assert.Len(t, got, 50)
}

func TestFetch_QueCompiteConMutacionNoLaPisa(t *testing.T) {
	c, _ := newClient(t)
	var calls int32
	_, _ = cache.Fetch(context.Background(), c, key, countingFetcher([]*item{{ID: "a"}}, &calls))
	c.Invalidate(key)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = cache.Fetch(context.Background(), c, key, func(context.Context) ([]*item, error) {
			close(started)
			<-release
			return []*item{{ID: "a"}}, nil // snapshot previo a la creación
		})
	}()
	<-started
	cache.Prepend(c, key, &item{ID: "n"}, idOf)
	close(release)
	<-done

	got, _ := cache.Peek[*item](c, key)
	require.Len(t, got, 2)
	assert.Equal(t, "n", got[0].ID)
	assert.True(t, c.IsInvalidated(key), "queda pendiente de un list() completo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Invalidación y desalojo
// ──────────────────────────────────────────────────────────────────────────────

func TestInvalidate_ProximaLecturaHaceList(t *testing.T) {
	c, _ := newClient(t)
	var calls int32
	fetch := countingFetcher([]*item{{ID: "a"}}, &calls)
	_, _ = cache.Fetch(context.Background(), c, key, fetch)

	c.Invalidate(key)
	assert.True(t, c.IsInvalidated(key))
	_, err := cache.Fetch(context.Background(), c, key, fetch)
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	assert.False(t, c.IsInvalidated(key))
}

func TestRemoveUser_SoloEseUsuario(t *testing.T) {
	c, _ := newClient(t)
	var calls int32
	other := cache.CollectionKey("u2", cache.CollectionBeans)
	_, _ = cache.Fetch(context.Background(), c, key, countingFetcher(nil, &calls))
	_, _ = cache.Fetch(context.Background(), c, cache.CollectionKey("u1", cache.CollectionBrews), countingFetcher(nil, &calls))
	_, _ = cache.Fetch(context.Background(), c, other, countingFetcher(nil, &calls))

	assert.Equal(t, 2, c.RemoveUser("u1"))
	assert.True(t, c.Has(other))
	assert.False(t, c.Has(key))
}

func TestCollect_DesalojaSinUsoTrasGCTime(t *testing.T) {
	c, clk := newClient(t)
	var calls int32
	_, _ = cache.Fetch(context.Background(), c, key, countingFetcher(nil, &calls))

	clk.Advance(4 * time.Minute)
	assert.Equal(t, 0, c.Collect())
	clk.Advance(time.Minute)
	assert.Equal(t, 1, c.Collect())
	assert.Equal(t, 0, c.Len())
}

func TestConfig_VentanasIndependientes(t *testing.T) {
	cfg := cache.DefaultConfig()
	assert.Equal(t, 30*time.Second, cfg.StaleTime)
	assert.Equal(t, 5*time.Minute, cfg.GCTime)
}
