package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBrewRequest entrada para registrar un brew. Yield 0 es válido (se muestra sin ratio).
type CreateBrewRequest struct {
	BeanID      string           `json:"bean_id" validate:"required,uuid"`
	GrinderID   string           `json:"grinder_id" validate:"required,uuid"`
	BrewerID    string           `json:"brewer_id" validate:"required,uuid"`
	Date        string           `json:"date" validate:"required,datetime=2006-01-02"`
	Dose        *float64         `json:"dose" validate:"required,gt=0,lte=1000"`
	Yield       *float64         `json:"yield" validate:"required,gte=0,lte=5000"`
	BrewTime    *int             `json:"brew_time" validate:"required,gte=0,lte=86400"`
	GrindSize   string           `json:"grind_size" validate:"omitempty,max=50"`
	Notes       string           `json:"notes" validate:"omitempty,max=5000"`
	RoastDateID *string          `json:"roast_date_id" validate:"omitempty,uuid"`
	Image       *AttachmentInput `json:"image" validate:"omitempty"`
	Analyze     bool             `json:"analyze"`
}

// UpdateBrewRequest entrada para actualizar un brew. RemoveImage borra la imagen actual.
type UpdateBrewRequest struct {
	BeanID      *string          `json:"bean_id" validate:"omitempty,uuid"`
	GrinderID   *string          `json:"grinder_id" validate:"omitempty,uuid"`
	BrewerID    *string          `json:"brewer_id" validate:"omitempty,uuid"`
	Date        *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Dose        *float64         `json:"dose" validate:"omitempty,gt=0,lte=1000"`
	Yield       *float64         `json:"yield" validate:"omitempty,gte=0,lte=5000"`
	BrewTime    *int             `json:"brew_time" validate:"omitempty,gte=0,lte=86400"`
	GrindSize   *string          `json:"grind_size" validate:"omitempty,max=50"`
	Notes       *string          `json:"notes" validate:"omitempty,max=5000"`
	RoastDateID *string          `json:"roast_date_id" validate:"omitempty,uuid"`
	Image       *AttachmentInput `json:"image" validate:"omitempty"`
	RemoveImage bool             `json:"remove_image"`
}

// EntityRef referencia resumida a una entidad relacionada.
type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BrewResponse salida de un brew. Ratio es null cuando no es mostrable (dose 0, yield 0).
type BrewResponse struct {
	ID            string          `json:"id"`
	Bean          *EntityRef      `json:"bean"`
	Grinder       *EntityRef      `json:"grinder"`
	Brewer        *EntityRef      `json:"brewer"`
	RoastDateID   *string         `json:"roast_date_id"`
	RoastDate     *string         `json:"roast_date"`
	Date          string          `json:"date"`
	Dose          decimal.Decimal `json:"dose"`
	Yield         decimal.Decimal `json:"yield"`
	BrewTime      int             `json:"brew_time"`
	GrindSize     string          `json:"grind_size"`
	Notes         string          `json:"notes"`
	ImageURL      string          `json:"image_url"`
	AISuggestions string          `json:"ai_suggestions"`
	Ratio         *float64        `json:"ratio"`
	RatioLabel    string          `json:"ratio_label"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewBrewDefaults opciones y valores preseleccionados del formulario de nuevo brew.
type NewBrewDefaults struct {
	Beans       []*BeanResponse    `json:"beans"`
	Grinders    []*GrinderResponse `json:"grinders"`
	Brewers     []*BrewerResponse  `json:"brewers"`
	BeanID      string             `json:"bean_id,omitempty"`
	RoastDateID string             `json:"roast_date_id,omitempty"`
	RoastDate   string             `json:"roast_date,omitempty"`
	Date        string             `json:"date"`
}

// BrewAnalysisResponse resultado de un análisis solicitado explícitamente.
type BrewAnalysisResponse struct {
	BrewID        string `json:"brew_id"`
	AISuggestions string `json:"ai_suggestions"`
}
