package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

// RoasteryUseCase casos de uso CRUD para tostadores (con logo opcional).
type RoasteryUseCase struct {
	repo        repository.RoasteryRepository
	attachments attachmentFlow
	retry       RetryPolicy
	now         func() time.Time
}

// NewRoasteryUseCase construye el caso de uso.
func NewRoasteryUseCase(repo repository.RoasteryRepository, store ports.AttachmentStore, retry RetryPolicy, log zerolog.Logger) *RoasteryUseCase {
	return &RoasteryUseCase{
		repo:        repo,
		attachments: attachmentFlow{store: store, log: log},
		retry:       retry,
		now:         time.Now,
	}
}

// List tostadores del usuario, más recientes primero.
func (uc *RoasteryUseCase) List(ctx context.Context, id session.Identity) ([]*dto.RoasteryResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	list, err := retry(ctx, uc.retry, func() ([]*entity.Roastery, error) {
		return uc.repo.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return mapList(list, toRoasteryResponse), nil
}

// Get obtiene un tostador del usuario.
func (uc *RoasteryUseCase) Get(ctx context.Context, id session.Identity, roasteryID string) (*dto.RoasteryResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	r, err := uc.load(ctx, userID, roasteryID)
	if err != nil {
		return nil, err
	}
	return toRoasteryResponse(r), nil
}

// Create sube el logo (si viene) y persiste el tostador.
func (uc *RoasteryUseCase) Create(ctx context.Context, id session.Identity, in dto.CreateRoasteryRequest) (*dto.RoasteryResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	logoURL, err := uc.attachments.upload(ctx, ports.FolderRoasteryLogos, userID, in.Logo)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	r := &entity.Roastery{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		LogoURL:   logoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		uc.attachments.release(ctx, logoURL)
		return nil, err
	}
	return toRoasteryResponse(r), nil
}

// Update aplica los campos presentes. El logo anterior se borra solo si la escritura tuvo éxito.
func (uc *RoasteryUseCase) Update(ctx context.Context, id session.Identity, roasteryID string, in dto.UpdateRoasteryRequest) (*dto.RoasteryResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	r, err := uc.load(ctx, userID, roasteryID)
	if err != nil {
		return nil, err
	}
	next, uploaded, stale, err := uc.attachments.resolve(ctx, ports.FolderRoasteryLogos, userID, r.LogoURL, in.Logo, in.RemoveLogo)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		r.Name = strings.TrimSpace(*in.Name)
	}
	r.LogoURL = next
	r.UpdatedAt = uc.now()
	if err := retryErr(ctx, uc.retry, func() error { return uc.repo.Update(ctx, r) }); err != nil {
		uc.attachments.release(ctx, uploaded)
		return nil, err
	}
	uc.attachments.release(ctx, stale)
	return toRoasteryResponse(r), nil
}

// Delete elimina el tostador y después su logo. Los beans quedan sin tostador.
func (uc *RoasteryUseCase) Delete(ctx context.Context, id session.Identity, roasteryID string) error {
	userID, err := id.Require()
	if err != nil {
		return err
	}
	r, err := uc.load(ctx, userID, roasteryID)
	if err != nil {
		return err
	}
	if err := retryErr(ctx, uc.retry, func() error { return uc.repo.Delete(ctx, userID, roasteryID) }); err != nil {
		return err
	}
	uc.attachments.release(ctx, r.LogoURL)
	return nil
}

func (uc *RoasteryUseCase) load(ctx context.Context, userID, roasteryID string) (*entity.Roastery, error) {
	r, err := retry(ctx, uc.retry, func() (*entity.Roastery, error) {
		return uc.repo.GetByID(ctx, userID, roasteryID)
	})
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}
