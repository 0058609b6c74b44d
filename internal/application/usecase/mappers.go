package usecase

import (
	"time"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/domain/brewing"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
)

func toRoastDateResponse(rd entity.RoastDate) dto.RoastDateResponse {
	return dto.RoastDateResponse{
		ID:        rd.ID,
		BeanID:    rd.BeanID,
		Date:      rd.Date.Format(entity.DateLayout),
		CreatedAt: rd.CreatedAt,
	}
}

func toBeanResponse(b *entity.Bean, now time.Time) *dto.BeanResponse {
	if b == nil {
		return nil
	}
	dates := make([]dto.RoastDateResponse, 0, len(b.RoastDates))
	for _, rd := range b.RoastDates {
		dates = append(dates, toRoastDateResponse(rd))
	}
	out := &dto.BeanResponse{
		ID:         b.ID,
		RoasteryID: b.RoasteryID,
		Name:       b.Name,
		Country:    b.Country,
		Region:     b.Region,
		Farm:       b.Farm,
		Altitude:   b.Altitude,
		RoastType:  b.RoastType,
		RoastDates: dates,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	if latest := b.ClosestRoast(now); latest != nil {
		r := toRoastDateResponse(*latest)
		out.LatestRoast = &r
	}
	return out
}

func toRoasteryResponse(r *entity.Roastery) *dto.RoasteryResponse {
	if r == nil {
		return nil
	}
	return &dto.RoasteryResponse{
		ID:        r.ID,
		Name:      r.Name,
		LogoURL:   r.LogoURL,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toGrinderResponse(g *entity.Grinder) *dto.GrinderResponse {
	if g == nil {
		return nil
	}
	return &dto.GrinderResponse{
		ID:        g.ID,
		Name:      g.Name,
		BurrSize:  g.BurrSize,
		BurrType:  g.BurrType,
		IdealFor:  g.IdealFor,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func toBrewerResponse(b *entity.Brewer) *dto.BrewerResponse {
	if b == nil {
		return nil
	}
	return &dto.BrewerResponse{
		ID:        b.ID,
		Name:      b.Name,
		Type:      b.Type,
		Material:  b.Material,
		ImageURL:  b.ImageURL,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBrewResponse(b *entity.Brew) *dto.BrewResponse {
	if b == nil {
		return nil
	}
	ratio := b.Ratio()
	out := &dto.BrewResponse{
		ID:            b.ID,
		RoastDateID:   b.RoastDateID,
		Date:          b.BrewedAt.Format(entity.DateLayout),
		Dose:          b.Dose,
		Yield:         b.Yield,
		BrewTime:      b.BrewTimeSeconds,
		GrindSize:     b.GrindSize,
		Notes:         b.Notes,
		ImageURL:      b.ImageURL,
		AISuggestions: b.AISuggestions,
		RatioLabel:    brewing.FormatRatio(ratio),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if brewing.IsDisplayable(ratio) {
		out.Ratio = &ratio
	}
	if b.RoastDate != nil {
		d := b.RoastDate.Format(entity.DateLayout)
		out.RoastDate = &d
	}
	if b.Bean != nil {
		out.Bean = &dto.EntityRef{ID: b.Bean.ID, Name: b.Bean.Name}
	}
	if b.Grinder != nil {
		out.Grinder = &dto.EntityRef{ID: b.Grinder.ID, Name: b.Grinder.Name}
	}
	if b.Brewer != nil {
		out.Brewer = &dto.EntityRef{ID: b.Brewer.ID, Name: b.Brewer.Name}
	}
	return out
}

func mapList[E any, R any](items []E, fn func(E) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
