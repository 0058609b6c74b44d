package cache

import (
	"context"
	"fmt"
	"slices"
)

// Fetcher obtiene la colección completa desde la capa de acceso a datos.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Fetch lee la colección key:
//   - entrada fresca: se devuelve sin tocar el store;
//   - entrada vieja (más de StaleTime): se devuelve y se refresca en background;
//   - sin entrada o invalidada: list() síncrono, deduplicado entre llamadas concurrentes.
//
// Un fetch fallido no modifica la caché.
func Fetch[T any](ctx context.Context, c *QueryClient, key Key, fn Fetcher[T]) ([]T, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.invalid {
		if data, typed := e.data.([]T); typed {
			now := c.now()
			e.lastUsed = now
			stale := now.Sub(e.fetchedAt) >= c.cfg.StaleTime
			startRefresh := stale && !e.refreshing
			if startRefresh {
				e.refreshing = true
			}
			out := slices.Clone(data)
			c.mu.Unlock()
			if startRefresh {
				refreshInBackground(c, key, fn)
			}
			return out, nil
		}
	}
	c.mu.Unlock()

	data, err := load(ctx, c, key, fn)
	if err != nil {
		return nil, err
	}
	return slices.Clone(data), nil
}

// Peek devuelve la colección en memoria sin disparar fetch (ok = false si no hay entrada).
func Peek[T any](c *QueryClient, key Key) ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	data, typed := e.data.([]T)
	if !typed {
		return nil, false
	}
	return slices.Clone(data), true
}

// SetQueryData aplica update sobre la lista actual bajo el lock. Cada mutación parte del
// estado vigente, nunca de una copia tomada antes de otra mutación concurrente.
// No crea la entrada si no existe (la lista completa todavía no se conoce).
func SetQueryData[T any](c *QueryClient, key Key, update func(old []T) []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	old, typed := e.data.([]T)
	if !typed {
		return false
	}
	e.data = update(slices.Clone(old))
	e.lastUsed = c.now()
	e.version++
	return true
}

// Prepend agrega item al inicio de la colección. Si ya estaba (mismo id) se mueve al inicio,
// así cada registro aparece una sola vez.
func Prepend[T any](c *QueryClient, key Key, item T, idOf func(T) string) bool {
	id := idOf(item)
	return SetQueryData(c, key, func(old []T) []T {
		out := make([]T, 0, len(old)+1)
		out = append(out, item)
		for _, it := range old {
			if idOf(it) != id {
				out = append(out, it)
			}
		}
		return out
	})
}

// Replace reemplaza en su posición el registro con el mismo id. Devuelve false si no estaba.
func Replace[T any](c *QueryClient, key Key, item T, idOf func(T) string) bool {
	id := idOf(item)
	found := false
	SetQueryData(c, key, func(old []T) []T {
		for i, it := range old {
			if idOf(it) == id {
				old[i] = item
				found = true
			}
		}
		return old
	})
	return found
}

// RemoveByID quita de la colección el registro con ese id; el resto no se toca.
func RemoveByID[T any](c *QueryClient, key Key, id string, idOf func(T) string) bool {
	return SetQueryData(c, key, func(old []T) []T {
		return slices.DeleteFunc(old, func(it T) bool { return idOf(it) == id })
	})
}

func load[T any](ctx context.Context, c *QueryClient, key Key, fn Fetcher[T]) ([]T, error) {
	v, err, _ := c.group.Do(string(key), func() (any, error) {
		c.mu.Lock()
		var startVersion uint64
		existed := false
		if e, ok := c.entries[key]; ok {
			startVersion, existed = e.version, true
		}
		c.mu.Unlock()

		data, err := fn(ctx)
		if err != nil {
			c.mu.Lock()
			if e, ok := c.entries[key]; ok {
				e.refreshing = false
			}
			c.mu.Unlock()
			return nil, err
		}
		c.store(key, data, startVersion, existed)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	data, ok := v.([]T)
	if !ok {
		return nil, fmt.Errorf("cache: tipo inesperado para %q", key)
	}
	return data, nil
}

// store guarda el resultado de un fetch salvo que una mutación o invalidación haya
// ocurrido mientras tanto: en ese caso se conserva la lista mutada y queda inválida,
// para que la siguiente lectura haga un list() que ya incluya el cambio.
func (c *QueryClient) store(key Key, data any, startVersion uint64, existed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	e, ok := c.entries[key]
	switch {
	case !ok:
		c.entries[key] = &entry{data: data, fetchedAt: now, lastUsed: now}
	case !existed || e.version != startVersion:
		e.refreshing = false
		e.invalid = true
	default:
		e.data = data
		e.fetchedAt = now
		e.lastUsed = now
		e.invalid = false
		e.refreshing = false
		e.version++
	}
}

func refreshInBackground[T any](c *QueryClient, key Key, fn Fetcher[T]) {
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.refreshTimeout)
		defer cancel()
		if _, err := load(ctx, c, key, fn); err != nil {
			c.log.Warn().Err(err).Str("key", string(key)).Msg("cache: refresco en background fallido")
		}
	}()
}
