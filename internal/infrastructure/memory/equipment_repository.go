package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

var (
	_ repository.RoasteryRepository = (*RoasteryRepository)(nil)
	_ repository.GrinderRepository  = (*GrinderRepository)(nil)
	_ repository.BrewerRepository   = (*BrewerRepository)(nil)
)

// RoasteryRepository implementación en memoria de repository.RoasteryRepository.
type RoasteryRepository struct {
	s *Store
}

func (r *RoasteryRepository) Create(ctx context.Context, roastery *entity.Roastery) error {
	return r.s.write("roasteries.create", func(st *state) error {
		st.roasteries[roastery.ID] = record[entity.Roastery]{value: *roastery, seq: st.next()}
		return nil
	})
}

func (r *RoasteryRepository) GetByID(ctx context.Context, userID, id string) (*entity.Roastery, error) {
	var out *entity.Roastery
	err := r.s.read("roasteries.get", func(st *state) error {
		if rec, ok := st.roasteries[id]; ok && rec.value.UserID == userID {
			v := rec.value
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *RoasteryRepository) Update(ctx context.Context, roastery *entity.Roastery) error {
	return r.s.write("roasteries.update", func(st *state) error {
		rec, ok := st.roasteries[roastery.ID]
		if !ok || rec.value.UserID != roastery.UserID {
			return domain.ErrNotFound
		}
		rec.value = *roastery
		st.roasteries[roastery.ID] = rec
		return nil
	})
}

func (r *RoasteryRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Roastery, error) {
	var out []*entity.Roastery
	err := r.s.read("roasteries.list", func(st *state) error {
		out = listOwned(st.roasteries, userID,
			func(v entity.Roastery) string { return v.UserID },
			func(v entity.Roastery) time.Time { return v.CreatedAt })
		return nil
	})
	return out, err
}

// Delete elimina el tostador; sus beans quedan sin tostador.
func (r *RoasteryRepository) Delete(ctx context.Context, userID, id string) error {
	return r.s.write("roasteries.delete", func(st *state) error {
		rec, ok := st.roasteries[id]
		if !ok || rec.value.UserID != userID {
			return domain.ErrNotFound
		}
		delete(st.roasteries, id)
		for beanID, b := range st.beans {
			if b.value.RoasteryID != nil && *b.value.RoasteryID == id {
				b.value.RoasteryID = nil
				st.beans[beanID] = b
			}
		}
		return nil
	})
}

// GrinderRepository implementación en memoria de repository.GrinderRepository.
type GrinderRepository struct {
	s *Store
}

func (r *GrinderRepository) Create(ctx context.Context, grinder *entity.Grinder) error {
	return r.s.write("grinders.create", func(st *state) error {
		st.grinders[grinder.ID] = record[entity.Grinder]{value: *grinder, seq: st.next()}
		return nil
	})
}

func (r *GrinderRepository) GetByID(ctx context.Context, userID, id string) (*entity.Grinder, error) {
	var out *entity.Grinder
	err := r.s.read("grinders.get", func(st *state) error {
		if rec, ok := st.grinders[id]; ok && rec.value.UserID == userID {
			v := rec.value
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *GrinderRepository) Update(ctx context.Context, grinder *entity.Grinder) error {
	return r.s.write("grinders.update", func(st *state) error {
		rec, ok := st.grinders[grinder.ID]
		if !ok || rec.value.UserID != grinder.UserID {
			return domain.ErrNotFound
		}
		rec.value = *grinder
		st.grinders[grinder.ID] = rec
		return nil
	})
}

func (r *GrinderRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Grinder, error) {
	var out []*entity.Grinder
	err := r.s.read("grinders.list", func(st *state) error {
		out = listOwned(st.grinders, userID,
			func(v entity.Grinder) string { return v.UserID },
			func(v entity.Grinder) time.Time { return v.CreatedAt })
		return nil
	})
	return out, err
}

func (r *GrinderRepository) Delete(ctx context.Context, userID, id string) error {
	return r.s.write("grinders.delete", func(st *state) error {
		rec, ok := st.grinders[id]
		if !ok || rec.value.UserID != userID {
			return domain.ErrNotFound
		}
		delete(st.grinders, id)
		for brewID, b := range st.brews {
			if b.value.GrinderID != nil && *b.value.GrinderID == id {
				b.value.GrinderID = nil
				st.brews[brewID] = b
			}
		}
		return nil
	})
}

// BrewerRepository implementación en memoria de repository.BrewerRepository.
type BrewerRepository struct {
	s *Store
}

func (r *BrewerRepository) Create(ctx context.Context, brewer *entity.Brewer) error {
	return r.s.write("brewers.create", func(st *state) error {
		st.brewers[brewer.ID] = record[entity.Brewer]{value: *brewer, seq: st.next()}
		return nil
	})
}

func (r *BrewerRepository) GetByID(ctx context.Context, userID, id string) (*entity.Brewer, error) {
	var out *entity.Brewer
	err := r.s.read("brewers.get", func(st *state) error {
		if rec, ok := st.brewers[id]; ok && rec.value.UserID == userID {
			v := rec.value
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *BrewerRepository) Update(ctx context.Context, brewer *entity.Brewer) error {
	return r.s.write("brewers.update", func(st *state) error {
		rec, ok := st.brewers[brewer.ID]
		if !ok || rec.value.UserID != brewer.UserID {
			return domain.ErrNotFound
		}
		rec.value = *brewer
		st.brewers[brewer.ID] = rec
		return nil
	})
}

func (r *BrewerRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Brewer, error) {
	var out []*entity.Brewer
	err := r.s.read("brewers.list", func(st *state) error {
		out = listOwned(st.brewers, userID,
			func(v entity.Brewer) string { return v.UserID },
			func(v entity.Brewer) time.Time { return v.CreatedAt })
		return nil
	})
	return out, err
}

func (r *BrewerRepository) Delete(ctx context.Context, userID, id string) error {
	return r.s.write("brewers.delete", func(st *state) error {
		rec, ok := st.brewers[id]
		if !ok || rec.value.UserID != userID {
			return domain.ErrNotFound
		}
		delete(st.brewers, id)
		for brewID, b := range st.brews {
			if b.value.BrewerID != nil && *b.value.BrewerID == id {
				b.value.BrewerID = nil
				st.brews[brewID] = b
			}
		}
		return nil
	})
}

// listOwned registros del usuario, más recientes primero, como punteros a copias.
func listOwned[T any](m map[string]record[T], userID string, owner func(T) string, at func(T) time.Time) []*T {
	recs := filter(m, func(v T) bool { return owner(v) == userID })
	sortNewest(recs, at)
	out := make([]*T, 0, len(recs))
	for _, rec := range recs {
		v := rec.value
		out = append(out, &v)
	}
	return out
}
