package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Brewlog-api/internal/application/auth"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/application/validation"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/infrastructure/memory"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	uc := auth.NewAuthUseCase(st.Users(), auth.JWTConfig{Secret: "test-secret", ExpMinutes: 5, Issuer: "brewlog-test"}, session.NewNotifier(), auth.NewDenylist())
	return uc, st
}

func register(t *testing.T, uc *auth.AuthUseCase, email, password string) session.Identity {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: email, Password: password})
	require.NoError(t, err)
	return session.Identity{UserID: u.ID, Email: u.Email}
}

// ─── ChangePassword ───────────────────────────────────────────────────────────

func TestChangePassword_LaNuevaSirveParaEntrar(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	id := register(t, uc, "ana@brew.co", "supersecreta")

	err := uc.ChangePassword(ctx, id, dto.ChangePasswordRequest{CurrentPassword: "supersecreta", NewPassword: "otra-clave-9"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@brew.co", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@brew.co", Password: "otra-clave-9"})
	require.NoError(t, err)
	assert.Equal(t, id.UserID, out.User.ID)
}

func TestChangePassword_ActualIncorrecta(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	id := register(t, uc, "ana@brew.co", "supersecreta")

	err := uc.ChangePassword(ctx, id, dto.ChangePasswordRequest{CurrentPassword: "incorrecta", NewPassword: "otra-clave-9"})
	require.ErrorIs(t, err, domain.ErrValidation)
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "current_password", verr.Fields[0].Field)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@brew.co", Password: "supersecreta"})
	assert.NoError(t, err, "la contraseña no cambió")
}

func TestChangePassword_SinSesion(t *testing.T) {
	uc, _ := newAuth(t)
	err := uc.ChangePassword(context.Background(), session.Anonymous, dto.ChangePasswordRequest{CurrentPassword: "a", NewPassword: "bbbbbbbb"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestChangePassword_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuth(t)
	ghost := session.Identity{UserID: "u-ghost", Email: "ghost@brew.co"}
	err := uc.ChangePassword(context.Background(), ghost, dto.ChangePasswordRequest{CurrentPassword: "a", NewPassword: "bbbbbbbb"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdatePerfil_NoPisaElHash(t *testing.T) {
	uc, st := newAuth(t)
	ctx := context.Background()
	id := register(t, uc, "ana@brew.co", "supersecreta")

	stale, err := st.Users().GetByID(ctx, id.UserID)
	require.NoError(t, err)
	require.NoError(t, uc.ChangePassword(ctx, id, dto.ChangePasswordRequest{CurrentPassword: "supersecreta", NewPassword: "otra-clave-9"}))

	stale.Name = "Ana"
	require.NoError(t, st.Users().Update(ctx, stale))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@brew.co", Password: "otra-clave-9"})
	assert.NoError(t, err)
}
