package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/application/validation"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
	"github.com/jhoicas/Brewlog-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y logout.
// Publica SignedIn / SignedOut en el notifier de sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	notifier *session.Notifier
	denylist *Denylist
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, notifier *session.Notifier, denylist *Denylist) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, notifier: notifier, denylist: denylist}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.notifier.Publish(session.Event{Kind: session.SignedIn, Identity: session.Identity{UserID: user.ID, Email: user.Email}})
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Logout revoca el token (jti) hasta su expiración y publica SignedOut.
func (uc *AuthUseCase) Logout(id session.Identity, tokenID string, expiresAt time.Time) error {
	if _, err := id.Require(); err != nil {
		return err
	}
	if tokenID != "" {
		uc.denylist.Revoke(tokenID, expiresAt)
	}
	uc.notifier.Publish(session.Event{Kind: session.SignedOut, Identity: id})
	return nil
}

// ChangePassword verifica la contraseña actual y guarda el hash de la nueva. Los tokens ya emitidos
// siguen siendo válidos hasta que expiren o se cierre sesión.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, id session.Identity, in dto.ChangePasswordRequest) error {
	userID, err := id.Require()
	if err != nil {
		return err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return &validation.Error{Fields: []validation.FieldError{{Field: "current_password", Message: "no es correcta"}}}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.SetPasswordHash(ctx, user.ID, string(hash), time.Now())
}

// ToUserResponse convierte la entidad en su salida (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
