// Package cache implementa el almacén de colecciones por clave que vive mientras dura la sesión:
// una entrada por colección de entidades de un usuario ("todos los brews de u1"), actualizada
// funcionalmente por las mutaciones confirmadas e invalidada cuando el efecto es ambiguo.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Colecciones conocidas.
const (
	CollectionBeans      = "beans"
	CollectionRoasteries = "roasteries"
	CollectionGrinders   = "grinders"
	CollectionBrewers    = "brewers"
	CollectionBrews      = "brews"
)

// Key identifica una colección de un usuario.
type Key string

// CollectionKey construye la clave "<userID>/<collection>".
func CollectionKey(userID, collection string) Key {
	return Key(userID + "/" + collection)
}

func (k Key) belongsTo(userID string) bool {
	return strings.HasPrefix(string(k), userID+"/")
}

// Config ventanas de frescura y de desalojo. Son independientes entre sí.
type Config struct {
	StaleTime time.Duration // tras este tiempo una lectura devuelve el dato y lo refresca en background
	GCTime    time.Duration // tras este tiempo sin uso la entrada se desaloja de memoria
}

// DefaultConfig 30 s de frescura, 5 min de desalojo.
func DefaultConfig() Config {
	return Config{StaleTime: 30 * time.Second, GCTime: 5 * time.Minute}
}

type entry struct {
	data       any // []T
	fetchedAt  time.Time
	lastUsed   time.Time
	invalid    bool
	refreshing bool
	version    uint64 // se incrementa con cada cambio de data o invalidación
}

// QueryClient almacén de colecciones. Seguro para uso concurrente.
type QueryClient struct {
	mu      sync.Mutex
	entries map[Key]*entry
	cfg     Config
	now     func() time.Time
	group   singleflight.Group
	log     zerolog.Logger
	bg      sync.WaitGroup

	refreshTimeout time.Duration
}

// Option configura el QueryClient.
type Option func(*QueryClient)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(c *QueryClient) { c.now = now }
}

// WithLogger inyecta el logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *QueryClient) { c.log = l }
}

// WithRefreshTimeout límite de cada refresco en background (por defecto 15 s).
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *QueryClient) { c.refreshTimeout = d }
}

// New construye el QueryClient.
func New(cfg Config, opts ...Option) *QueryClient {
	c := &QueryClient{
		entries:        make(map[Key]*entry),
		cfg:            cfg,
		now:            time.Now,
		log:            zerolog.Nop(),
		refreshTimeout: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config devuelve la configuración vigente.
func (c *QueryClient) Config() Config { return c.cfg }

// Invalidate marca la colección como inválida: la próxima lectura hace un list() completo.
func (c *QueryClient) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.invalid = true
		e.version++
	}
}

// InvalidateUser invalida todas las colecciones de un usuario.
func (c *QueryClient) InvalidateUser(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.belongsTo(userID) {
			e.invalid = true
			e.version++
		}
	}
}

// RemoveUser elimina de memoria todas las colecciones de un usuario (cierre de sesión).
func (c *QueryClient) RemoveUser(userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries {
		if k.belongsTo(userID) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Has indica si hay una entrada para key (válida o no).
func (c *QueryClient) Has(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// IsInvalidated indica si key existe y está marcada como inválida.
func (c *QueryClient) IsInvalidated(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && e.invalid
}

// Len número de entradas en memoria.
func (c *QueryClient) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Collect desaloja las entradas sin uso durante GCTime. Devuelve cuántas eliminó.
func (c *QueryClient) Collect() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for k, e := range c.entries {
		if !e.refreshing && now.Sub(e.lastUsed) >= c.cfg.GCTime {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Run ejecuta Collect periódicamente hasta que ctx se cancele.
func (c *QueryClient) Run(ctx context.Context) {
	interval := c.cfg.GCTime / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Collect(); n > 0 {
				c.log.Debug().Int("evicted", n).Msg("cache: entradas desalojadas")
			}
		}
	}
}

// Wait espera a que terminen los refrescos en background en curso.
func (c *QueryClient) Wait() {
	c.bg.Wait()
}
