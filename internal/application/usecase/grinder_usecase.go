package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

// GrinderUseCase casos de uso CRUD para molinos.
type GrinderUseCase struct {
	repo  repository.GrinderRepository
	retry RetryPolicy
	now   func() time.Time
}

// NewGrinderUseCase construye el caso de uso.
func NewGrinderUseCase(repo repository.GrinderRepository, retry RetryPolicy) *GrinderUseCase {
	return &GrinderUseCase{repo: repo, retry: retry, now: time.Now}
}

// List molinos del usuario, más recientes primero.
func (uc *GrinderUseCase) List(ctx context.Context, id session.Identity) ([]*dto.GrinderResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	list, err := retry(ctx, uc.retry, func() ([]*entity.Grinder, error) {
		return uc.repo.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return mapList(list, toGrinderResponse), nil
}

// Get obtiene un molino del usuario.
func (uc *GrinderUseCase) Get(ctx context.Context, id session.Identity, grinderID string) (*dto.GrinderResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	g, err := uc.load(ctx, userID, grinderID)
	if err != nil {
		return nil, err
	}
	return toGrinderResponse(g), nil
}

// Create persiste un molino.
func (uc *GrinderUseCase) Create(ctx context.Context, id session.Identity, in dto.CreateGrinderRequest) (*dto.GrinderResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	g := &entity.Grinder{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		BurrSize:  strings.TrimSpace(in.BurrSize),
		BurrType:  strings.TrimSpace(in.BurrType),
		IdealFor:  strings.TrimSpace(in.IdealFor),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return toGrinderResponse(g), nil
}

// Update aplica los campos presentes.
func (uc *GrinderUseCase) Update(ctx context.Context, id session.Identity, grinderID string, in dto.UpdateGrinderRequest) (*dto.GrinderResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	g, err := uc.load(ctx, userID, grinderID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		g.Name = strings.TrimSpace(*in.Name)
	}
	if in.BurrSize != nil {
		g.BurrSize = strings.TrimSpace(*in.BurrSize)
	}
	if in.BurrType != nil {
		g.BurrType = strings.TrimSpace(*in.BurrType)
	}
	if in.IdealFor != nil {
		g.IdealFor = strings.TrimSpace(*in.IdealFor)
	}
	g.UpdatedAt = uc.now()
	if err := retryErr(ctx, uc.retry, func() error { return uc.repo.Update(ctx, g) }); err != nil {
		return nil, err
	}
	return toGrinderResponse(g), nil
}

// Delete elimina el molino. Los brews que lo usaban quedan sin molino.
func (uc *GrinderUseCase) Delete(ctx context.Context, id session.Identity, grinderID string) error {
	userID, err := id.Require()
	if err != nil {
		return err
	}
	return retryErr(ctx, uc.retry, func() error { return uc.repo.Delete(ctx, userID, grinderID) })
}

func (uc *GrinderUseCase) load(ctx context.Context, userID, grinderID string) (*entity.Grinder, error) {
	g, err := retry(ctx, uc.retry, func() (*entity.Grinder, error) {
		return uc.repo.GetByID(ctx, userID, grinderID)
	})
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	return g, nil
}
