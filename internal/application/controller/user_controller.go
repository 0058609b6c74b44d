package controller

import (
	"context"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/internal/application/usecase"
)

// ProfileController formulario de perfil.
type ProfileController struct {
	core *Core
	uc   *usecase.UserUseCase
}

// NewProfileController construye el controlador.
func NewProfileController(core *Core, uc *usecase.UserUseCase) *ProfileController {
	return &ProfileController{core: core, uc: uc}
}

func (c *ProfileController) Me(ctx context.Context, id session.Identity) (*dto.UserResponse, error) {
	return c.uc.Me(ctx, id)
}

func (c *ProfileController) Update(ctx context.Context, id session.Identity, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	return submit(ctx, c.core, id, FormProfileUpdate, "", &in,
		func(ctx context.Context) (*dto.UserResponse, error) { return c.uc.UpdateProfile(ctx, id, in) },
		nil,
	)
}
