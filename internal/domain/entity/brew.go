package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Brewlog-api/internal/domain/brewing"
)

// Brew registro de una extracción: un Bean (y una de sus fechas de tueste), un Grinder y un Brewer.
//
// RoastDate es una copia congelada de la fecha elegida al crear el brew; RoastDateID es solo
// una referencia débil y queda en nil si esa fecha se elimina después.
type Brew struct {
	ID              string
	UserID          string
	BeanID          *string
	RoastDateID     *string
	RoastDate       *time.Time
	GrinderID       *string
	BrewerID        *string
	BrewedAt        time.Time
	GrindSize       string
	BrewTimeSeconds int
	Dose            decimal.Decimal // gramos
	Yield           decimal.Decimal // gramos
	Notes           string
	ImageURL        string
	AISuggestions   string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Relaciones cargadas para lectura (no se persisten desde aquí).
	Bean    *Bean
	Grinder *Grinder
	Brewer  *Brewer
}

// Ratio yield/dose. Con dose = 0 devuelve +Inf (ver brewing.BrewRatio).
func (b *Brew) Ratio() float64 {
	return brewing.BrewRatio(b.Dose.InexactFloat64(), b.Yield.InexactFloat64())
}
