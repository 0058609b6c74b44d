// Package session transporta la identidad del usuario de forma explícita a través de la
// capa de acceso a datos, en lugar de leerla de estado global.
package session

import (
	"context"

	"github.com/jhoicas/Brewlog-api/internal/domain"
)

// Identity usuario que actúa. El valor cero representa "sin sesión".
type Identity struct {
	UserID string
	Email  string
}

// Anonymous identidad sin sesión.
var Anonymous = Identity{}

// IsAuthenticated indica si hay un usuario en sesión.
func (i Identity) IsAuthenticated() bool {
	return i.UserID != ""
}

// Require devuelve el UserID o domain.ErrUnauthenticated.
func (i Identity) Require() (string, error) {
	if !i.IsAuthenticated() {
		return "", domain.ErrUnauthenticated
	}
	return i.UserID, nil
}

type ctxKey struct{}

// WithIdentity adjunta la identidad al contexto (lo usa el middleware HTTP).
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext devuelve la identidad del contexto, o Anonymous.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(ctxKey{}).(Identity)
	return id
}
