package repository

import (
	"context"

	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
)

// BeanRepository define el puerto de persistencia para Bean (DIP).
// Toda operación filtra por userID: un id de otro usuario se comporta como inexistente.
type BeanRepository interface {
	Create(ctx context.Context, bean *entity.Bean) error
	// GetByID devuelve (nil, nil) si no existe o pertenece a otro usuario. Incluye RoastDates.
	GetByID(ctx context.Context, userID, id string) (*entity.Bean, error)
	// Update devuelve domain.ErrNotFound si no afectó filas.
	Update(ctx context.Context, bean *entity.Bean) error
	// ListByUser ordena por created_at DESC e incluye RoastDates.
	ListByUser(ctx context.Context, userID string) ([]*entity.Bean, error)
	// Delete devuelve domain.ErrNotFound si no afectó filas.
	Delete(ctx context.Context, userID, id string) error
}

// RoastDateRepository persistencia de fechas de tueste (propiedad del Bean padre).
type RoastDateRepository interface {
	Create(ctx context.Context, rd *entity.RoastDate) error
	GetByID(ctx context.Context, userID, id string) (*entity.RoastDate, error)
	// Update solo cambia Date; devuelve domain.ErrNotFound si no afectó filas.
	Update(ctx context.Context, rd *entity.RoastDate) error
	// ListByBean ordena por fecha DESC.
	ListByBean(ctx context.Context, userID, beanID string) ([]entity.RoastDate, error)
	Delete(ctx context.Context, userID, id string) error
}
