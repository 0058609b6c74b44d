package dto

import "time"

// CreateBeanRequest entrada para crear un bean, opcionalmente con su primera fecha de tueste.
type CreateBeanRequest struct {
	Name       string  `json:"name" validate:"required,notblank,max=200"`
	Country    string  `json:"country" validate:"required,notblank,max=100"`
	Region     string  `json:"region" validate:"required,notblank,max=100"`
	Farm       string  `json:"farm" validate:"required,notblank,max=200"`
	Altitude   string  `json:"altitude" validate:"required,notblank,max=50"`
	RoastType  string  `json:"roast_type" validate:"required,oneof=light medium-light medium medium-dark dark"`
	RoasteryID *string `json:"roastery_id" validate:"omitempty,uuid"`
	RoastDate  *string `json:"roast_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateBeanRequest entrada para actualizar un bean. RoasteryID = "" quita el tostador.
type UpdateBeanRequest struct {
	Name       *string `json:"name" validate:"omitempty,notblank,max=200"`
	Country    *string `json:"country" validate:"omitempty,notblank,max=100"`
	Region     *string `json:"region" validate:"omitempty,notblank,max=100"`
	Farm       *string `json:"farm" validate:"omitempty,notblank,max=200"`
	Altitude   *string `json:"altitude" validate:"omitempty,notblank,max=50"`
	RoastType  *string `json:"roast_type" validate:"omitempty,oneof=light medium-light medium medium-dark dark"`
	RoasteryID *string `json:"roastery_id" validate:"omitempty,uuid|len=0"`
}

// RoastDateRequest fecha de tueste de un bean (alta o corrección).
type RoastDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// RoastDateResponse salida de una fecha de tueste (fecha de calendario "2006-01-02").
type RoastDateResponse struct {
	ID        string    `json:"id"`
	BeanID    string    `json:"bean_id"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// BeanResponse salida de un bean con sus fechas de tueste y la más cercana a hoy.
type BeanResponse struct {
	ID          string              `json:"id"`
	RoasteryID  *string             `json:"roastery_id"`
	Name        string              `json:"name"`
	Country     string              `json:"country"`
	Region      string              `json:"region"`
	Farm        string              `json:"farm"`
	Altitude    string              `json:"altitude"`
	RoastType   string              `json:"roast_type"`
	RoastDates  []RoastDateResponse `json:"roast_dates"`
	LatestRoast *RoastDateResponse  `json:"latest_roast"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
