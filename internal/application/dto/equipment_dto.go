package dto

import "time"

// CreateRoasteryRequest entrada para crear un tostador.
type CreateRoasteryRequest struct {
	Name string           `json:"name" validate:"required,notblank,max=200"`
	Logo *AttachmentInput `json:"logo" validate:"omitempty"`
}

// UpdateRoasteryRequest entrada para actualizar un tostador. RemoveLogo borra el logo actual.
type UpdateRoasteryRequest struct {
	Name       *string          `json:"name" validate:"omitempty,notblank,max=200"`
	Logo       *AttachmentInput `json:"logo" validate:"omitempty"`
	RemoveLogo bool             `json:"remove_logo"`
}

// RoasteryResponse salida de un tostador.
type RoasteryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateGrinderRequest entrada para crear un molino.
type CreateGrinderRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=200"`
	BurrSize string `json:"burr_size" validate:"required,notblank,max=50"`
	BurrType string `json:"burr_type" validate:"required,notblank,max=50"`
	IdealFor string `json:"ideal_for" validate:"omitempty,max=200"`
}

// UpdateGrinderRequest entrada para actualizar un molino.
type UpdateGrinderRequest struct {
	Name     *string `json:"name" validate:"omitempty,notblank,max=200"`
	BurrSize *string `json:"burr_size" validate:"omitempty,notblank,max=50"`
	BurrType *string `json:"burr_type" validate:"omitempty,notblank,max=50"`
	IdealFor *string `json:"ideal_for" validate:"omitempty,max=200"`
}

// GrinderResponse salida de un molino.
type GrinderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BurrSize  string    `json:"burr_size"`
	BurrType  string    `json:"burr_type"`
	IdealFor  string    `json:"ideal_for"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateBrewerRequest entrada para crear un método/máquina.
type CreateBrewerRequest struct {
	Name     string           `json:"name" validate:"required,notblank,max=200"`
	Type     string           `json:"type" validate:"required,notblank,max=100"`
	Material string           `json:"material" validate:"omitempty,max=100"`
	Image    *AttachmentInput `json:"image" validate:"omitempty"`
}

// UpdateBrewerRequest entrada para actualizar un brewer. RemoveImage borra la imagen actual.
type UpdateBrewerRequest struct {
	Name        *string          `json:"name" validate:"omitempty,notblank,max=200"`
	Type        *string          `json:"type" validate:"omitempty,notblank,max=100"`
	Material    *string          `json:"material" validate:"omitempty,max=100"`
	Image       *AttachmentInput `json:"image" validate:"omitempty"`
	RemoveImage bool             `json:"remove_image"`
}

// BrewerResponse salida de un brewer.
type BrewerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Material  string    `json:"material"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
