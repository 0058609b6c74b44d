package ports

import "github.com/jhoicas/Brewlog-api/internal/domain/entity"

// BrewCardRenderer genera la ficha imprimible (PDF) de un brew.
type BrewCardRenderer interface {
	RenderBrewCard(brew *entity.Brew) ([]byte, error)
}
