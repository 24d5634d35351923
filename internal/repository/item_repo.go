package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/driftboard/driftboard-go/internal/model"
)

// ItemRepo is the item lifecycle boundary. The planner and the ledger
// only ever read items (and the ledger rewrites rank_score); creating
// and hiding rows happens here and nowhere else.
type ItemRepo struct {
	pool *pgxpool.Pool
}

func NewItemRepo(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

// CreateItem inserts a new visible item with a zero rank score.
func (r *ItemRepo) CreateItem(ctx context.Context, title string, categoryID *int64) (*model.Item, error) {
	var it model.Item
	err := r.pool.QueryRow(ctx, `
		INSERT INTO items (title, category_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, title, category_id, rank_score, visible, created_at`,
		title, categoryID, time.Now().UTC()).Scan(
		&it.ID, &it.Title, &it.CategoryID, &it.RankScore, &it.Visible, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// FindItem returns a single visible item, or ErrNotFound.
func (r *ItemRepo) FindItem(ctx context.Context, itemID int64) (*model.Item, error) {
	var it model.Item
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, category_id, rank_score, visible, created_at
		FROM items
		WHERE id = $1 AND visible`,
		itemID).Scan(
		&it.ID, &it.Title, &it.CategoryID, &it.RankScore, &it.Visible, &it.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// HideItem marks an item invisible. Hidden items vanish from feed pages;
// in-flight cursors simply skip them. Returns false if the item is
// unknown or already hidden.
func (r *ItemRepo) HideItem(ctx context.Context, itemID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE items SET visible = FALSE WHERE id = $1 AND visible`, itemID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetStats returns aggregate counts across items, votes and voters.
func (r *ItemRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM items WHERE visible) AS total_items,
			(SELECT COUNT(*) FROM votes) AS total_votes,
			(SELECT COUNT(DISTINCT voter_id) FROM votes) AS total_voters,
			(SELECT COUNT(DISTINCT voter_id) FROM votes
			  WHERE created_at > NOW() - INTERVAL '24 hours') AS active_voters_24h`

	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalItems, &stats.TotalVotes, &stats.TotalVoters, &stats.ActiveVoters24h,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
