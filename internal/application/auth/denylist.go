package auth

import (
	"sync"
	"time"
)

// Denylist tokens revocados (jti) hasta su expiración. Vive en memoria del proceso.
type Denylist struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	now    func() time.Time
}

// NewDenylist construye la lista vacía.
func NewDenylist() *Denylist {
	return &Denylist{tokens: make(map[string]time.Time), now: time.Now}
}

// Revoke marca jti como revocado hasta expiresAt.
func (d *Denylist) Revoke(jti string, expiresAt time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tokens[jti] = expiresAt
}

// IsRevoked indica si jti fue revocado y todavía no expiró.
func (d *Denylist) IsRevoked(jti string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.tokens[jti]
	if !ok {
		return false
	}
	if !exp.IsZero() && d.now().After(exp) {
		delete(d.tokens, jti)
		return false
	}
	return true
}

// Prune elimina las entradas ya expiradas.
func (d *Denylist) Prune() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	n := 0
	for jti, exp := range d.tokens {
		if !exp.IsZero() && now.After(exp) {
			delete(d.tokens, jti)
			n++
		}
	}
	return n
}
