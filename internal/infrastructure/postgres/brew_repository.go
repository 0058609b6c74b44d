package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

var _ repository.BrewRepository = (*BrewRepo)(nil)

const brewColumns = `id, user_id, bean_id, roast_date_id, roast_date, grinder_id, brewer_id, brewed_at,
	grind_size, brew_time_seconds, dose, yield, notes, image_url, ai_suggestions, created_at, updated_at`

// BrewRepo implementación del puerto BrewRepository sobre PostgreSQL.
// Las lecturas cargan Bean (con fechas de tueste), Grinder y Brewer en consultas por lote.
type BrewRepo struct {
	q        Querier
	beans    *BeanRepo
	grinders *GrinderRepo
	brewers  *BrewerRepo
}

// NewBrewRepository construye el adaptador de persistencia para brews.
func NewBrewRepository(q Querier) *BrewRepo {
	return &BrewRepo{
		q:        q,
		beans:    NewBeanRepository(q),
		grinders: NewGrinderRepository(q),
		brewers:  NewBrewerRepository(q),
	}
}

func (r *BrewRepo) Create(ctx context.Context, b *entity.Brew) error {
	query := `
		INSERT INTO brews (` + brewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.UserID, b.BeanID, b.RoastDateID, b.RoastDate, b.GrinderID, b.BrewerID, b.BrewedAt,
		b.GrindSize, b.BrewTimeSeconds, b.Dose, b.Yield, b.Notes, b.ImageURL, b.AISuggestions,
		b.CreatedAt, b.UpdatedAt,
	)
	return storeErr("insert brew", err)
}

func (r *BrewRepo) GetByID(ctx context.Context, userID, id string) (*entity.Brew, error) {
	query := `SELECT ` + brewColumns + ` FROM brews WHERE id = $1 AND user_id = $2`
	b, err := scanBrew(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get brew", err)
	}
	if err := r.loadRelations(ctx, userID, []*entity.Brew{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BrewRepo) Update(ctx context.Context, b *entity.Brew) error {
	query := `
		UPDATE brews SET bean_id = $3, roast_date_id = $4, roast_date = $5, grinder_id = $6, brewer_id = $7,
			brewed_at = $8, grind_size = $9, brew_time_seconds = $10, dose = $11, yield = $12, notes = $13,
			image_url = $14, updated_at = $15
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.UserID, b.BeanID, b.RoastDateID, b.RoastDate, b.GrinderID, b.BrewerID, b.BrewedAt,
		b.GrindSize, b.BrewTimeSeconds, b.Dose, b.Yield, b.Notes, b.ImageURL, b.UpdatedAt,
	)
	if err != nil {
		return storeErr("update brew", err)
	}
	return affected(tag)
}

// SetAISuggestions escribe solo las sugerencias: no pisa ediciones hechas mientras corría el análisis.
func (r *BrewRepo) SetAISuggestions(ctx context.Context, userID, id, text string, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE brews SET ai_suggestions = $3, updated_at = $4 WHERE id = $1 AND user_id = $2`,
		id, userID, text, updatedAt,
	)
	if err != nil {
		return storeErr("set ai_suggestions", err)
	}
	return affected(tag)
}

// ListByUser lista por fecha de preparación DESC y, a igual fecha, created_at DESC.
func (r *BrewRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Brew, error) {
	query := `SELECT ` + brewColumns + ` FROM brews WHERE user_id = $1 ORDER BY brewed_at DESC, created_at DESC, id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list brews", err)
	}
	list, err := collect(rows, func(row pgx.Rows) (*entity.Brew, error) { return scanBrew(row) })
	if err != nil {
		return nil, storeErr("scan brew", err)
	}
	if err := r.loadRelations(ctx, userID, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BrewRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM brews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeErr("delete brew", err)
	}
	return affected(tag)
}

func (r *BrewRepo) loadRelations(ctx context.Context, userID string, brews []*entity.Brew) error {
	var beanIDs, grinderIDs, brewerIDs []string
	for _, b := range brews {
		beanIDs = appendID(beanIDs, b.BeanID)
		grinderIDs = appendID(grinderIDs, b.GrinderID)
		brewerIDs = appendID(brewerIDs, b.BrewerID)
	}
	beans, err := r.beans.byIDs(ctx, userID, beanIDs)
	if err != nil {
		return err
	}
	grinders, err := r.grinders.byIDs(ctx, userID, grinderIDs)
	if err != nil {
		return err
	}
	brewers, err := r.brewers.byIDs(ctx, userID, brewerIDs)
	if err != nil {
		return err
	}
	for _, b := range brews {
		if b.BeanID != nil {
			b.Bean = beans[*b.BeanID]
		}
		if b.GrinderID != nil {
			b.Grinder = grinders[*b.GrinderID]
		}
		if b.BrewerID != nil {
			b.Brewer = brewers[*b.BrewerID]
		}
	}
	return nil
}

func appendID(ids []string, id *string) []string {
	if id == nil {
		return ids
	}
	for _, existing := range ids {
		if existing == *id {
			return ids
		}
	}
	return append(ids, *id)
}

func scanBrew(row pgx.Row) (*entity.Brew, error) {
	var b entity.Brew
	err := row.Scan(
		&b.ID, &b.UserID, &b.BeanID, &b.RoastDateID, &b.RoastDate, &b.GrinderID, &b.BrewerID, &b.BrewedAt,
		&b.GrindSize, &b.BrewTimeSeconds, &b.Dose, &b.Yield, &b.Notes, &b.ImageURL, &b.AISuggestions,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.BrewedAt = entity.CalendarDate(b.BrewedAt)
	if b.RoastDate != nil {
		d := entity.CalendarDate(*b.RoastDate)
		b.RoastDate = &d
	}
	return &b, nil
}
