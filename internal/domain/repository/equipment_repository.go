package repository

import (
	"context"

	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
)

// RoasteryRepository define el puerto de persistencia para Roastery (DIP).
type RoasteryRepository interface {
	Create(ctx context.Context, roastery *entity.Roastery) error
	GetByID(ctx context.Context, userID, id string) (*entity.Roastery, error)
	Update(ctx context.Context, roastery *entity.Roastery) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Roastery, error)
	Delete(ctx context.Context, userID, id string) error
}

// GrinderRepository define el puerto de persistencia para Grinder (DIP).
type GrinderRepository interface {
	Create(ctx context.Context, grinder *entity.Grinder) error
	GetByID(ctx context.Context, userID, id string) (*entity.Grinder, error)
	Update(ctx context.Context, grinder *entity.Grinder) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Grinder, error)
	Delete(ctx context.Context, userID, id string) error
}

// BrewerRepository define el puerto de persistencia para Brewer (DIP).
type BrewerRepository interface {
	Create(ctx context.Context, brewer *entity.Brewer) error
	GetByID(ctx context.Context, userID, id string) (*entity.Brewer, error)
	Update(ctx context.Context, brewer *entity.Brewer) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Brewer, error)
	Delete(ctx context.Context, userID, id string) error
}
