package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

var _ repository.BrewRepository = (*BrewRepository)(nil)

// BrewRepository implementación en memoria de repository.BrewRepository.
type BrewRepository struct {
	s *Store
}

func (r *BrewRepository) Create(ctx context.Context, brew *entity.Brew) error {
	return r.s.write("brews.create", func(st *state) error {
		st.brews[brew.ID] = record[entity.Brew]{value: storedBrew(brew), seq: st.next()}
		return nil
	})
}

func (r *BrewRepository) GetByID(ctx context.Context, userID, id string) (*entity.Brew, error) {
	var out *entity.Brew
	err := r.s.read("brews.get", func(st *state) error {
		if rec, ok := st.brews[id]; ok && rec.value.UserID == userID {
			out = st.loadBrew(rec.value)
		}
		return nil
	})
	return out, err
}

func (r *BrewRepository) Update(ctx context.Context, brew *entity.Brew) error {
	return r.s.write("brews.update", func(st *state) error {
		rec, ok := st.brews[brew.ID]
		if !ok || rec.value.UserID != brew.UserID {
			return domain.ErrNotFound
		}
		v := storedBrew(brew)
		v.CreatedAt = rec.value.CreatedAt
		v.AISuggestions = rec.value.AISuggestions
		rec.value = v
		st.brews[brew.ID] = rec
		return nil
	})
}

func (r *BrewRepository) SetAISuggestions(ctx context.Context, userID, id, text string, updatedAt time.Time) error {
	return r.s.write("brews.set_ai_suggestions", func(st *state) error {
		rec, ok := st.brews[id]
		if !ok || rec.value.UserID != userID {
			return domain.ErrNotFound
		}
		rec.value.AISuggestions = text
		rec.value.UpdatedAt = updatedAt
		st.brews[id] = rec
		return nil
	})
}

// ListByUser ordena por fecha de preparación DESC, luego created_at DESC.
func (r *BrewRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Brew, error) {
	var out []*entity.Brew
	err := r.s.read("brews.list", func(st *state) error {
		recs := filter(st.brews, func(b entity.Brew) bool { return b.UserID == userID })
		slices.SortFunc(recs, func(a, b record[entity.Brew]) int {
			if c := b.value.BrewedAt.Compare(a.value.BrewedAt); c != 0 {
				return c
			}
			if c := b.value.CreatedAt.Compare(a.value.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(b.seq, a.seq)
		})
		out = make([]*entity.Brew, 0, len(recs))
		for _, rec := range recs {
			out = append(out, st.loadBrew(rec.value))
		}
		return nil
	})
	return out, err
}

func (r *BrewRepository) Delete(ctx context.Context, userID, id string) error {
	return r.s.write("brews.delete", func(st *state) error {
		rec, ok := st.brews[id]
		if !ok || rec.value.UserID != userID {
			return domain.ErrNotFound
		}
		delete(st.brews, id)
		return nil
	})
}

func storedBrew(b *entity.Brew) entity.Brew {
	v := *b
	v.Bean, v.Grinder, v.Brewer = nil, nil, nil
	v.BeanID = clonePtr(b.BeanID)
	v.RoastDateID = clonePtr(b.RoastDateID)
	v.RoastDate = clonePtr(b.RoastDate)
	v.GrinderID = clonePtr(b.GrinderID)
	v.BrewerID = clonePtr(b.BrewerID)
	return v
}

// loadBrew copia del brew con sus relaciones (si siguen existiendo).
func (st *state) loadBrew(b entity.Brew) *entity.Brew {
	out := storedBrew(&b)
	if out.BeanID != nil {
		if rec, ok := st.beans[*out.BeanID]; ok {
			out.Bean = st.loadBean(rec.value)
		}
	}
	if out.GrinderID != nil {
		if rec, ok := st.grinders[*out.GrinderID]; ok {
			g := rec.value
			out.Grinder = &g
		}
	}
	if out.BrewerID != nil {
		if rec, ok := st.brewers[*out.BrewerID]; ok {
			br := rec.value
			out.Brewer = &br
		}
	}
	return &out
}
