package entity

import (
	"time"

	"github.com/jhoicas/Brewlog-api/internal/domain/brewing"
)

// Tipos de tueste admitidos para Bean.RoastType.
const (
	RoastLight       = "light"
	RoastMediumLight = "medium-light"
	RoastMedium      = "medium"
	RoastMediumDark  = "medium-dark"
	RoastDark        = "dark"
)

// Bean representa un lote/bolsa de café. Puede tener varias fechas de tueste (re-tuestes, reposiciones).
type Bean struct {
	ID         string
	UserID     string
	RoasteryID *string // nil = sin tostador asociado
	Name       string
	Country    string
	Region     string
	Farm       string
	Altitude   string
	RoastType  string
	RoastDates []RoastDate // orden irrelevante
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RoastDate fecha de calendario (sin hora) en la que se tostó un Bean.
type RoastDate struct {
	ID        string
	UserID    string
	BeanID    string
	Date      time.Time // 00:00 UTC del día
	CreatedAt time.Time
}

// DateLayout formato de fecha de calendario usado en la API y en la DB.
const DateLayout = "2006-01-02"

// CalendarDate normaliza t a las 00:00 UTC de su día de calendario.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseCalendarDate interpreta "2006-01-02" como 00:00 UTC.
func ParseCalendarDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// RoastDateValues devuelve las fechas del bean en el orden almacenado.
func (b *Bean) RoastDateValues() []time.Time {
	out := make([]time.Time, 0, len(b.RoastDates))
	for _, rd := range b.RoastDates {
		out = append(out, rd.Date)
	}
	return out
}

// ClosestRoast fecha de tueste más cercana a now ("Latest roast"); nil si el bean no tiene fechas.
func (b *Bean) ClosestRoast(now time.Time) *RoastDate {
	rd, ok := brewing.Closest(b.RoastDates, func(r RoastDate) time.Time { return r.Date }, now)
	if !ok {
		return nil
	}
	return &rd
}
