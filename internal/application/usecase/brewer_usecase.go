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

// BrewerUseCase casos de uso CRUD para métodos/máquinas (con imagen opcional).
type BrewerUseCase struct {
	repo        repository.BrewerRepository
	attachments attachmentFlow
	retry       RetryPolicy
	now         func() time.Time
}

// NewBrewerUseCase construye el caso de uso.
func NewBrewerUseCase(repo repository.BrewerRepository, store ports.AttachmentStore, retry RetryPolicy, log zerolog.Logger) *BrewerUseCase {
	return &BrewerUseCase{
		repo:        repo,
		attachments: attachmentFlow{store: store, log: log},
		retry:       retry,
		now:         time.Now,
	}
}

// List brewers del usuario, más recientes primero.
func (uc *BrewerUseCase) List(ctx context.Context, id session.Identity) ([]*dto.BrewerResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	list, err := retry(ctx, uc.retry, func() ([]*entity.Brewer, error) {
		return uc.repo.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return mapList(list, toBrewerResponse), nil
}

// Get obtiene un brewer del usuario.
func (uc *BrewerUseCase) Get(ctx context.Context, id session.Identity, brewerID string) (*dto.BrewerResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	b, err := uc.load(ctx, userID, brewerID)
	if err != nil {
		return nil, err
	}
	return toBrewerResponse(b), nil
}

// Create sube la imagen (si viene) y persiste el brewer.
func (uc *BrewerUseCase) Create(ctx context.Context, id session.Identity, in dto.CreateBrewerRequest) (*dto.BrewerResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	imageURL, err := uc.attachments.upload(ctx, ports.FolderBrewers, userID, in.Image)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	b := &entity.Brewer{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Type:      strings.TrimSpace(in.Type),
		Material:  strings.TrimSpace(in.Material),
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		uc.attachments.release(ctx, imageURL)
		return nil, err
	}
	return toBrewerResponse(b), nil
}

// Update aplica los campos presentes. La imagen anterior se borra solo si la escritura tuvo éxito.
func (uc *BrewerUseCase) Update(ctx context.Context, id session.Identity, brewerID string, in dto.UpdateBrewerRequest) (*dto.BrewerResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	b, err := uc.load(ctx, userID, brewerID)
	if err != nil {
		return nil, err
	}
	next, uploaded, stale, err := uc.attachments.resolve(ctx, ports.FolderBrewers, userID, b.ImageURL, in.Image, in.RemoveImage)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		b.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		b.Type = strings.TrimSpace(*in.Type)
	}
	if in.Material != nil {
		b.Material = strings.TrimSpace(*in.Material)
	}
	b.ImageURL = next
	b.UpdatedAt = uc.now()
	if err := retryErr(ctx, uc.retry, func() error { return uc.repo.Update(ctx, b) }); err != nil {
		uc.attachments.release(ctx, uploaded)
		return nil, err
	}
	uc.attachments.release(ctx, stale)
	return toBrewerResponse(b), nil
}

// Delete elimina el brewer y después su imagen.
func (uc *BrewerUseCase) Delete(ctx context.Context, id session.Identity, brewerID string) error {
	userID, err := id.Require()
	if err != nil {
		return err
	}
	b, err := uc.load(ctx, userID, brewerID)
	if err != nil {
		return err
	}
	if err := retryErr(ctx, uc.retry, func() error { return uc.repo.Delete(ctx, userID, brewerID) }); err != nil {
		return err
	}
	uc.attachments.release(ctx, b.ImageURL)
	return nil
}

func (uc *BrewerUseCase) load(ctx context.Context, userID, brewerID string) (*entity.Brewer, error) {
	b, err := retry(ctx, uc.retry, func() (*entity.Brewer, error) {
		return uc.repo.GetByID(ctx, userID, brewerID)
	})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}
