package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

var (
	_ repository.BeanRepository      = (*BeanRepo)(nil)
	_ repository.RoastDateRepository = (*RoastDateRepo)(nil)
)

const beanColumns = `id, user_id, roastery_id, name, country, region, farm, altitude, roast_type, created_at, updated_at`

// BeanRepo implementación del puerto BeanRepository sobre PostgreSQL (usable con pool o tx).
type BeanRepo struct {
	q Querier
}

// NewBeanRepository construye el adaptador de persistencia para beans. Pasar pool o tx (Querier).
func NewBeanRepository(q Querier) *BeanRepo {
	return &BeanRepo{q: q}
}

// Create persiste un bean (sin sus fechas de tueste).
func (r *BeanRepo) Create(ctx context.Context, b *entity.Bean) error {
	query := `
		INSERT INTO beans (` + beanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.UserID, b.RoasteryID, b.Name, b.Country, b.Region, b.Farm, b.Altitude, b.RoastType,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert bean", err)
	}
	return nil
}

// GetByID obtiene un bean del usuario con sus fechas de tueste.
func (r *BeanRepo) GetByID(ctx context.Context, userID, id string) (*entity.Bean, error) {
	query := `SELECT ` + beanColumns + ` FROM beans WHERE id = $1 AND user_id = $2`
	b, err := scanBean(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get bean", err)
	}
	dates, err := NewRoastDateRepository(r.q).ListByBean(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	b.RoastDates = dates
	return b, nil
}

// Update actualiza los datos del bean (las fechas de tueste van por RoastDateRepo).
func (r *BeanRepo) Update(ctx context.Context, b *entity.Bean) error {
	query := `
		UPDATE beans SET roastery_id = $3, name = $4, country = $5, region = $6, farm = $7,
			altitude = $8, roast_type = $9, updated_at = $10
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.UserID, b.RoasteryID, b.Name, b.Country, b.Region, b.Farm, b.Altitude, b.RoastType, b.UpdatedAt,
	)
	if err != nil {
		return storeErr("update bean", err)
	}
	return affected(tag)
}

// ListByUser lista los beans del usuario, más recientes primero, con sus fechas de tueste.
func (r *BeanRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Bean, error) {
	query := `SELECT ` + beanColumns + ` FROM beans WHERE user_id = $1 ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list beans", err)
	}
	beans, err := collect(rows, func(row pgx.Rows) (*entity.Bean, error) { return scanBean(row) })
	if err != nil {
		return nil, storeErr("scan bean", err)
	}
	if err := r.attachRoastDates(ctx, userID, beans); err != nil {
		return nil, err
	}
	return beans, nil
}

// Delete elimina el bean; roast_dates cae en cascada y los brews quedan con bean_id NULL.
func (r *BeanRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM beans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeErr("delete bean", err)
	}
	return affected(tag)
}

// byIDs carga los beans indicados del usuario (relaciones de los brews).
func (r *BeanRepo) byIDs(ctx context.Context, userID string, ids []string) (map[string]*entity.Bean, error) {
	out := make(map[string]*entity.Bean, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + beanColumns + ` FROM beans WHERE user_id = $1 AND id = ANY($2)`
	rows, err := r.q.Query(ctx, query, userID, ids)
	if err != nil {
		return nil, storeErr("load beans", err)
	}
	beans, err := collect(rows, func(row pgx.Rows) (*entity.Bean, error) { return scanBean(row) })
	if err != nil {
		return nil, storeErr("scan bean", err)
	}
	if err := r.attachRoastDates(ctx, userID, beans); err != nil {
		return nil, err
	}
	for _, b := range beans {
		out[b.ID] = b
	}
	return out, nil
}

func (r *BeanRepo) attachRoastDates(ctx context.Context, userID string, beans []*entity.Bean) error {
	if len(beans) == 0 {
		return nil
	}
	ids := make([]string, len(beans))
	for i, b := range beans {
		ids[i] = b.ID
	}
	query := `
		SELECT ` + roastDateColumns + ` FROM roast_dates
		WHERE user_id = $1 AND bean_id = ANY($2)
		ORDER BY roast_date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, userID, ids)
	if err != nil {
		return storeErr("list roast dates", err)
	}
	dates, err := collect(rows, scanRoastDate)
	if err != nil {
		return storeErr("scan roast date", err)
	}
	byBean := make(map[string][]entity.RoastDate, len(beans))
	for _, rd := range dates {
		byBean[rd.BeanID] = append(byBean[rd.BeanID], rd)
	}
	for _, b := range beans {
		b.RoastDates = byBean[b.ID]
		if b.RoastDates == nil {
			b.RoastDates = []entity.RoastDate{}
		}
	}
	return nil
}

func scanBean(row pgx.Row) (*entity.Bean, error) {
	var b entity.Bean
	err := row.Scan(
		&b.ID, &b.UserID, &b.RoasteryID, &b.Name, &b.Country, &b.Region, &b.Farm, &b.Altitude, &b.RoastType,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

const roastDateColumns = `id, user_id, bean_id, roast_date, created_at`

// RoastDateRepo implementación del puerto RoastDateRepository sobre PostgreSQL.
type RoastDateRepo struct {
	q Querier
}

// NewRoastDateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoastDateRepository(q Querier) *RoastDateRepo {
	return &RoastDateRepo{q: q}
}

// Create inserta la fecha solo si el bean es del mismo usuario.
func (r *RoastDateRepo) Create(ctx context.Context, rd *entity.RoastDate) error {
	query := `
		INSERT INTO roast_dates (` + roastDateColumns + `)
		SELECT $1, $2, $3, $4, $5
		WHERE EXISTS (SELECT 1 FROM beans WHERE id = $3 AND user_id = $2)`
	tag, err := r.q.Exec(ctx, query, rd.ID, rd.UserID, rd.BeanID, rd.Date, rd.CreatedAt)
	if err != nil {
		return storeErr("insert roast date", err)
	}
	return affected(tag)
}

func (r *RoastDateRepo) GetByID(ctx context.Context, userID, id string) (*entity.RoastDate, error) {
	query := `SELECT ` + roastDateColumns + ` FROM roast_dates WHERE id = $1 AND user_id = $2`
	var rd entity.RoastDate
	err := r.q.QueryRow(ctx, query, id, userID).Scan(&rd.ID, &rd.UserID, &rd.BeanID, &rd.Date, &rd.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get roast date", err)
	}
	rd.Date = entity.CalendarDate(rd.Date)
	return &rd, nil
}

func (r *RoastDateRepo) Update(ctx context.Context, rd *entity.RoastDate) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE roast_dates SET roast_date = $3 WHERE id = $1 AND user_id = $2`,
		rd.ID, rd.UserID, rd.Date,
	)
	if err != nil {
		return storeErr("update roast date", err)
	}
	return affected(tag)
}

func (r *RoastDateRepo) ListByBean(ctx context.Context, userID, beanID string) ([]entity.RoastDate, error) {
	query := `
		SELECT ` + roastDateColumns + ` FROM roast_dates
		WHERE user_id = $1 AND bean_id = $2
		ORDER BY roast_date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, userID, beanID)
	if err != nil {
		return nil, storeErr("list roast dates", err)
	}
	dates, err := collect(rows, scanRoastDate)
	if err != nil {
		return nil, storeErr("scan roast date", err)
	}
	if dates == nil {
		dates = []entity.RoastDate{}
	}
	return dates, nil
}

// Delete elimina la fecha; los brews conservan roast_date y su roast_date_id pasa a NULL.
func (r *RoastDateRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM roast_dates WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeErr("delete roast date", err)
	}
	return affected(tag)
}

func scanRoastDate(row pgx.Rows) (entity.RoastDate, error) {
	var rd entity.RoastDate
	if err := row.Scan(&rd.ID, &rd.UserID, &rd.BeanID, &rd.Date, &rd.CreatedAt); err != nil {
		return rd, err
	}
	rd.Date = entity.CalendarDate(rd.Date)
	return rd, nil
}
