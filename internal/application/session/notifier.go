package session

import (
	"slices"
	"sync"
)

// EventKind tipo de cambio de autenticación.
type EventKind int

const (
	SignedIn EventKind = iota + 1
	SignedOut
)

// Event cambio de autenticación de un usuario.
type Event struct {
	Kind     EventKind
	Identity Identity
}

// Notifier implementa onAuthChange: los suscriptores reciben cada Event publicado,
// en el orden de suscripción y en la goroutine de Publish.
type Notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

// NewNotifier construye el notificador.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Event))}
}

// OnAuthChange registra cb y devuelve la función para cancelar la suscripción.
func (n *Notifier) OnAuthChange(cb func(Event)) (unsubscribe func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = cb
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

// Publish entrega ev a todos los suscriptores.
func (n *Notifier) Publish(ev Event) {
	n.mu.RLock()
	ids := make([]int, 0, len(n.subs))
	for id := range n.subs {
		ids = append(ids, id)
	}
	n.mu.RUnlock()

	slices.Sort(ids)
	for _, id := range ids {
		n.mu.RLock()
		cb, ok := n.subs[id]
		n.mu.RUnlock()
		if ok {
			cb(ev)
		}
	}
}
