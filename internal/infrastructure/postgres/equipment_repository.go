package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
	"github.com/jhoicas/Brewlog-api/internal/domain/repository"
)

var (
	_ repository.RoasteryRepository = (*RoasteryRepo)(nil)
	_ repository.GrinderRepository  = (*GrinderRepo)(nil)
	_ repository.BrewerRepository   = (*BrewerRepo)(nil)
)

// ─── Roastery ─────────────────────────────────────────────────────────────────

const roasteryColumns = `id, user_id, name, logo_url, created_at, updated_at`

// RoasteryRepo implementación del puerto RoasteryRepository sobre PostgreSQL.
type RoasteryRepo struct {
	q Querier
}

// NewRoasteryRepository construye el adaptador de persistencia para tostadores.
func NewRoasteryRepository(q Querier) *RoasteryRepo {
	return &RoasteryRepo{q: q}
}

func (r *RoasteryRepo) Create(ctx context.Context, x *entity.Roastery) error {
	query := `INSERT INTO roasteries (` + roasteryColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, x.ID, x.UserID, x.Name, x.LogoURL, x.CreatedAt, x.UpdatedAt)
	return storeErr("insert roastery", err)
}

func (r *RoasteryRepo) GetByID(ctx context.Context, userID, id string) (*entity.Roastery, error) {
	query := `SELECT ` + roasteryColumns + ` FROM roasteries WHERE id = $1 AND user_id = $2`
	x, err := scanRoastery(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get roastery", err)
	}
	return x, nil
}

func (r *RoasteryRepo) Update(ctx context.Context, x *entity.Roastery) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE roasteries SET name = $3, logo_url = $4, updated_at = $5 WHERE id = $1 AND user_id = $2`,
		x.ID, x.UserID, x.Name, x.LogoURL, x.UpdatedAt,
	)
	if err != nil {
		return storeErr("update roastery", err)
	}
	return affected(tag)
}

func (r *RoasteryRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Roastery, error) {
	query := `SELECT ` + roasteryColumns + ` FROM roasteries WHERE user_id = $1 ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list roasteries", err)
	}
	list, err := collect(rows, func(row pgx.Rows) (*entity.Roastery, error) { return scanRoastery(row) })
	return list, storeErr("scan roastery", err)
}

// Delete elimina el tostador; beans.roastery_id pasa a NULL.
func (r *RoasteryRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM roasteries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeErr("delete roastery", err)
	}
	return affected(tag)
}

func scanRoastery(row pgx.Row) (*entity.Roastery, error) {
	var x entity.Roastery
	if err := row.Scan(&x.ID, &x.UserID, &x.Name, &x.LogoURL, &x.CreatedAt, &x.UpdatedAt); err != nil {
		return nil, err
	}
	return &x, nil
}

// ─── Grinder ──────────────────────────────────────────────────────────────────

const grinderColumns = `id, user_id, name, burr_size, burr_type, ideal_for, created_at, updated_at`

// GrinderRepo implementación del puerto GrinderRepository sobre PostgreSQL.
type GrinderRepo struct {
	q Querier
}

// NewGrinderRepository construye el adaptador de persistencia para molinos.
func NewGrinderRepository(q Querier) *GrinderRepo {
	return &GrinderRepo{q: q}
}

func (r *GrinderRepo) Create(ctx context.Context, g *entity.Grinder) error {
	query := `INSERT INTO grinders (` + grinderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, g.ID, g.UserID, g.Name, g.BurrSize, g.BurrType, g.IdealFor, g.CreatedAt, g.UpdatedAt)
	return storeErr("insert grinder", err)
}

func (r *GrinderRepo) GetByID(ctx context.Context, userID, id string) (*entity.Grinder, error) {
	query := `SELECT ` + grinderColumns + ` FROM grinders WHERE id = $1 AND user_id = $2`
	g, err := scanGrinder(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get grinder", err)
	}
	return g, nil
}

func (r *GrinderRepo) Update(ctx context.Context, g *entity.Grinder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE grinders SET name = $3, burr_size = $4, burr_type = $5, ideal_for = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2`,
		g.ID, g.UserID, g.Name, g.BurrSize, g.BurrType, g.IdealFor, g.UpdatedAt,
	)
	if err != nil {
		return storeErr("update grinder", err)
	}
	return affected(tag)
}

func (r *GrinderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Grinder, error) {
	query := `SELECT ` + grinderColumns + ` FROM grinders WHERE user_id = $1 ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list grinders", err)
	}
	list, err := collect(rows, func(row pgx.Rows) (*entity.Grinder, error) { return scanGrinder(row) })
	return list, storeErr("scan grinder", err)
}

func (r *GrinderRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM grinders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeErr("delete grinder", err)
	}
	return affected(tag)
}

func (r *GrinderRepo) byIDs(ctx context.Context, userID string, ids []string) (map[string]*entity.Grinder, error) {
	out := make(map[string]*entity.Grinder, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+grinderColumns+` FROM grinders WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return nil, storeErr("load grinders", err)
	}
	list, err := collect(rows, func(row pgx.Rows) (*entity.Grinder, error) { return scanGrinder(row) })
	if err != nil {
		return nil, storeErr("scan grinder", err)
	}
	for _, g := range list {
		out[g.ID] = g
	}
	return out, nil
}

func scanGrinder(row pgx.Row) (*entity.Grinder, error) {
	var g entity.Grinder
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.BurrSize, &g.BurrType, &g.IdealFor, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

// ─── Brewer ───────────────────────────────────────────────────────────────────

const brewerColumns = `id, user_id, name, type, material, image_url, created_at, updated_at`

// BrewerRepo implementación del puerto BrewerRepository sobre PostgreSQL.
type BrewerRepo struct {
	q Querier
}

// NewBrewerRepository construye el adaptador de persistencia para brewers.
func NewBrewerRepository(q Querier) *BrewerRepo {
	return &BrewerRepo{q: q}
}

func (r *BrewerRepo) Create(ctx context.Context, b *entity.Brewer) error {
	query := `INSERT INTO brewers (` + brewerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, b.ID, b.UserID, b.Name, b.Type, b.Material, b.ImageURL, b.CreatedAt, b.UpdatedAt)
	return storeErr("insert brewer", err)
}

func (r *BrewerRepo) GetByID(ctx context.Context, userID, id string) (*entity.Brewer, error) {
	query := `SELECT ` + brewerColumns + ` FROM brewers WHERE id = $1 AND user_id = $2`
	b, err := scanBrewer(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get brewer", err)
	}
	return b, nil
}

func (r *BrewerRepo) Update(ctx context.Context, b *entity.Brewer) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE brewers SET name = $3, type = $4, material = $5, image_url = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2`,
		b.ID, b.UserID, b.Name, b.Type, b.Material, b.ImageURL, b.UpdatedAt,
	)
	if err != nil {
		return storeErr("update brewer", err)
	}
	return affected(tag)
}

func (r *BrewerRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Brewer, error) {
	query := `SELECT ` + brewerColumns + ` FROM brewers WHERE user_id = $1 ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list brewers", err)
	}
	list, err := collect(rows, func(row pgx.Rows) (*entity.Brewer, error) { return scanBrewer(row) })
	return list, storeErr("scan brewer", err)
}

func (r *BrewerRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM brewers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeErr("delete brewer", err)
	}
	return affected(tag)
}

func (r *BrewerRepo) byIDs(ctx context.Context, userID string, ids []string) (map[string]*entity.Brewer, error) {
	out := make(map[string]*entity.Brewer, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+brewerColumns+` FROM brewers WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return nil, storeErr("load brewers", err)
	}
	list, err := collect(rows, func(row pgx.Rows) (*entity.Brewer, error) { return scanBrewer(row) })
	if err != nil {
		return nil, storeErr("scan brewer", err)
	}
	for _, b := range list {
		out[b.ID] = b
	}
	return out, nil
}

func scanBrewer(row pgx.Row) (*entity.Brewer, error) {
	var b entity.Brewer
	if err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Type, &b.Material, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
