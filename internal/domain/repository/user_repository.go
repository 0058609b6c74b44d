package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update actualiza el perfil; no toca password_hash.
	Update(ctx context.Context, user *entity.User) error
	// SetPasswordHash reemplaza el hash de la contraseña. domain.ErrNotFound si el usuario no existe.
	SetPasswordHash(ctx context.Context, id, hash string, updatedAt time.Time) error
}
