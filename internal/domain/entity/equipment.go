package entity

import "time"

// Roastery tostador (proveedor) del usuario.
type Roastery struct {
	ID        string
	UserID    string
	Name      string
	LogoURL   string // vacío = sin logo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Grinder molino del usuario.
type Grinder struct {
	ID        string
	UserID    string
	Name      string
	BurrSize  string // ej. "64mm"
	BurrType  string // flat, conical, ...
	IdealFor  string // espresso, filtro, ...
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Brewer método o máquina de preparación.
type Brewer struct {
	ID        string
	UserID    string
	Name      string
	Type      string // espresso, pour-over, immersion, ...
	Material  string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
