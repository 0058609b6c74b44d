package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
)

// BrewRepository define el puerto de persistencia para Brew (DIP).
type BrewRepository interface {
	Create(ctx context.Context, brew *entity.Brew) error
	// GetByID carga también Bean (con RoastDates), Grinder y Brewer si siguen existiendo.
	GetByID(ctx context.Context, userID, id string) (*entity.Brew, error)
	// Update no toca ai_suggestions: las sugerencias se escriben solo con SetAISuggestions.
	Update(ctx context.Context, brew *entity.Brew) error
	// SetAISuggestions actualiza únicamente ai_suggestions y updated_at; domain.ErrNotFound si no afectó filas.
	SetAISuggestions(ctx context.Context, userID, id, text string, updatedAt time.Time) error
	// ListByUser ordena por brewed_at DESC e incluye relaciones.
	ListByUser(ctx context.Context, userID string) ([]*entity.Brew, error)
	Delete(ctx context.Context, userID, id string) error
}
