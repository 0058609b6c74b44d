package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository implementación en memoria de repository.UserRepository.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return r.s.write("users.create", func(st *state) error {
		for _, rec := range st.users {
			if strings.EqualFold(rec.value.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[user.ID] = record[entity.User]{value: *user, seq: st.next()}
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.s.read("users.get", func(st *state) error {
		if rec, ok := st.users[id]; ok {
			v := rec.value
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.s.read("users.get_by_email", func(st *state) error {
		for _, rec := range st.users {
			if strings.EqualFold(rec.value.Email, email) {
				v := rec.value
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	return r.s.write("users.update", func(st *state) error {
		rec, ok := st.users[user.ID]
		if !ok {
			return domain.ErrNotFound
		}
		hash := rec.value.PasswordHash
		rec.value = *user
		rec.value.PasswordHash = hash
		st.users[user.ID] = rec
		return nil
	})
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, id, hash string, updatedAt time.Time) error {
	return r.s.write("users.set_password", func(st *state) error {
		rec, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		rec.value.PasswordHash = hash
		rec.value.UpdatedAt = updatedAt
		st.users[id] = rec
		return nil
	})
}
