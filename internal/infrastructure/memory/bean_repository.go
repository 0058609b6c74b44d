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

var (
	_ repository.BeanRepository      = (*BeanRepository)(nil)
	_ repository.RoastDateRepository = (*RoastDateRepository)(nil)
)

// BeanRepository implementación en memoria de repository.BeanRepository.
type BeanRepository struct {
	s *Store
}

func (r *BeanRepository) Create(ctx context.Context, bean *entity.Bean) error {
	return r.s.write("beans.create", func(st *state) error {
		if _, ok := st.beans[bean.ID]; ok {
			return domain.ErrDuplicate
		}
		st.beans[bean.ID] = record[entity.Bean]{value: storedBean(bean), seq: st.next()}
		return nil
	})
}

func (r *BeanRepository) GetByID(ctx context.Context, userID, id string) (*entity.Bean, error) {
	var out *entity.Bean
	err := r.s.read("beans.get", func(st *state) error {
		rec, ok := st.beans[id]
		if ok && rec.value.UserID == userID {
			out = st.loadBean(rec.value)
		}
		return nil
	})
	return out, err
}

func (r *BeanRepository) Update(ctx context.Context, bean *entity.Bean) error {
	return r.s.write("beans.update", func(st *state) error {
		rec, ok := st.beans[bean.ID]
		if !ok || rec.value.UserID != bean.UserID {
			return domain.ErrNotFound
		}
		v := storedBean(bean)
		v.CreatedAt = rec.value.CreatedAt
		rec.value = v
		st.beans[bean.ID] = rec
		return nil
	})
}

func (r *BeanRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Bean, error) {
	var out []*entity.Bean
	err := r.s.read("beans.list", func(st *state) error {
		recs := filter(st.beans, func(b entity.Bean) bool { return b.UserID == userID })
		sortNewest(recs, func(b entity.Bean) time.Time { return b.CreatedAt })
		out = make([]*entity.Bean, 0, len(recs))
		for _, rec := range recs {
			out = append(out, st.loadBean(rec.value))
		}
		return nil
	})
	return out, err
}

// Delete elimina el bean y sus fechas; los brews pierden la referencia pero conservan la fecha copiada.
func (r *BeanRepository) Delete(ctx context.Context, userID, id string) error {
	return r.s.write("beans.delete", func(st *state) error {
		rec, ok := st.beans[id]
		if !ok || rec.value.UserID != userID {
			return domain.ErrNotFound
		}
		delete(st.beans, id)
		for rdID, rd := range st.roastDates {
			if rd.value.BeanID == id {
				delete(st.roastDates, rdID)
				st.detachRoastDate(rdID)
			}
		}
		for brewID, b := range st.brews {
			if b.value.BeanID != nil && *b.value.BeanID == id {
				b.value.BeanID = nil
				st.brews[brewID] = b
			}
		}
		return nil
	})
}

// RoastDateRepository implementación en memoria de repository.RoastDateRepository.
type RoastDateRepository struct {
	s *Store
}

func (r *RoastDateRepository) Create(ctx context.Context, rd *entity.RoastDate) error {
	return r.s.write("roast_dates.create", func(st *state) error {
		bean, ok := st.beans[rd.BeanID]
		if !ok || bean.value.UserID != rd.UserID {
			return domain.ErrNotFound
		}
		st.roastDates[rd.ID] = record[entity.RoastDate]{value: *rd, seq: st.next()}
		return nil
	})
}

func (r *RoastDateRepository) GetByID(ctx context.Context, userID, id string) (*entity.RoastDate, error) {
	var out *entity.RoastDate
	err := r.s.read("roast_dates.get", func(st *state) error {
		if rec, ok := st.roastDates[id]; ok && rec.value.UserID == userID {
			v := rec.value
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *RoastDateRepository) Update(ctx context.Context, rd *entity.RoastDate) error {
	return r.s.write("roast_dates.update", func(st *state) error {
		rec, ok := st.roastDates[rd.ID]
		if !ok || rec.value.UserID != rd.UserID {
			return domain.ErrNotFound
		}
		rec.value.Date = rd.Date
		st.roastDates[rd.ID] = rec
		return nil
	})
}

func (r *RoastDateRepository) ListByBean(ctx context.Context, userID, beanID string) ([]entity.RoastDate, error) {
	var out []entity.RoastDate
	err := r.s.read("roast_dates.list", func(st *state) error {
		out = st.roastDatesOf(userID, beanID)
		return nil
	})
	return out, err
}

func (r *RoastDateRepository) Delete(ctx context.Context, userID, id string) error {
	return r.s.write("roast_dates.delete", func(st *state) error {
		rec, ok := st.roastDates[id]
		if !ok || rec.value.UserID != userID {
			return domain.ErrNotFound
		}
		delete(st.roastDates, id)
		st.detachRoastDate(id)
		return nil
	})
}

// ── helpers de estado ─────────────────────────────────────────────────────────

func storedBean(b *entity.Bean) entity.Bean {
	v := *b
	v.RoastDates = nil
	v.RoasteryID = clonePtr(b.RoasteryID)
	return v
}

func (st *state) loadBean(b entity.Bean) *entity.Bean {
	b.RoasteryID = clonePtr(b.RoasteryID)
	b.RoastDates = st.roastDatesOf(b.UserID, b.ID)
	return &b
}

// roastDatesOf fechas del bean ordenadas por fecha DESC.
func (st *state) roastDatesOf(userID, beanID string) []entity.RoastDate {
	recs := filter(st.roastDates, func(rd entity.RoastDate) bool {
		return rd.UserID == userID && rd.BeanID == beanID
	})
	sortNewest(recs, func(rd entity.RoastDate) time.Time { return rd.Date })
	out := make([]entity.RoastDate, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.value)
	}
	return out
}

// detachRoastDate quita la referencia débil de los brews; la copia congelada se conserva.
func (st *state) detachRoastDate(id string) {
	for brewID, b := range st.brews {
		if b.value.RoastDateID != nil && *b.value.RoastDateID == id {
			b.value.RoastDateID = nil
			st.brews[brewID] = b
		}
	}
}

func filter[T any](m map[string]record[T], keep func(T) bool) []record[T] {
	out := make([]record[T], 0, len(m))
	for _, rec := range m {
		if keep(rec.value) {
			out = append(out, rec)
		}
	}
	return out
}

// sortNewest ordena por at DESC y, a igual instante, por inserción DESC.
func sortNewest[T any](recs []record[T], at func(T) time.Time) {
	slices.SortFunc(recs, func(a, b record[T]) int {
		if c := at(b.value).Compare(at(a.value)); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
