package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Brewlog-api/internal/application/auth"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

// UserUseCase perfil del usuario en sesión.
type UserUseCase struct {
	repo        repository.UserRepository
	attachments attachmentFlow
	retry       RetryPolicy
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, store ports.AttachmentStore, retry RetryPolicy, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, attachments: attachmentFlow{store: store, log: log}, retry: retry}
}

// Me obtiene el usuario en sesión.
func (uc *UserUseCase) Me(ctx context.Context, id session.Identity) (*dto.UserResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	u, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// UpdateProfile cambia nombre y/o avatar. El avatar anterior se borra tras la escritura.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, id session.Identity, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	userID, err := id.Require()
	if err != nil {
		return nil, err
	}
	u, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, uploaded, stale, err := uc.attachments.resolve(ctx, ports.FolderAvatars, userID, u.AvatarURL, in.Avatar, in.RemoveAvatar)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	u.AvatarURL = next
	u.UpdatedAt = time.Now()
	if err := retryErr(ctx, uc.retry, func() error { return uc.repo.Update(ctx, u) }); err != nil {
		uc.attachments.release(ctx, uploaded)
		return nil, err
	}
	uc.attachments.release(ctx, stale)
	return auth.ToUserResponse(u), nil
}

func (uc *UserUseCase) load(ctx context.Context, userID string) (*entity.User, error) {
	u, err := retry(ctx, uc.retry, func() (*entity.User, error) {
		return uc.repo.GetByID(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
