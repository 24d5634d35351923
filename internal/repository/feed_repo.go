package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/driftboard/driftboard-go/internal/model"
)

// FeedRepo executes ordered, filtered, keyset-paginated feed reads.
type FeedRepo struct {
	pool *pgxpool.Pool
}

func NewFeedRepo(pool *pgxpool.Pool) *FeedRepo {
	return &FeedRepo{pool: pool}
}

// ListPage returns up to q.Limit visible items in feed order, starting
// strictly past the cursor boundary when one is present.
//
// The cursor predicate is a single compound row comparison against the
// same tuple the ORDER BY sorts on. Postgres compares row values
// lexicographically, so with every key descending, "strictly past the
// boundary" is exactly (tuple) < (boundary).
func (r *FeedRepo) ListPage(ctx context.Context, q FeedQuery) ([]model.Item, error) {
	var (
		query string
		args  []any
	)

	switch {
	case q.Sort == model.SortRanked && q.After != nil:
		query = `
			SELECT id, title, category_id, rank_score, visible, created_at
			FROM items
			WHERE visible
			  AND ($1::BIGINT IS NULL OR category_id = $1)
			  AND (rank_score, created_at, id) < ($2, $3, $4)
			ORDER BY rank_score DESC, created_at DESC, id DESC
			LIMIT $5`
		args = []any{q.CategoryID, q.After.RankScore, q.After.CreatedAt, q.After.ID, q.Limit}

	case q.Sort == model.SortRanked:
		query = `
			SELECT id, title, category_id, rank_score, visible, created_at
			FROM items
			WHERE visible
			  AND ($1::BIGINT IS NULL OR category_id = $1)
			ORDER BY rank_score DESC, created_at DESC, id DESC
			LIMIT $2`
		args = []any{q.CategoryID, q.Limit}

	case q.After != nil:
		query = `
			SELECT id, title, category_id, rank_score, visible, created_at
			FROM items
			WHERE visible
			  AND ($1::BIGINT IS NULL OR category_id = $1)
			  AND (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $4`
		args = []any{q.CategoryID, q.After.CreatedAt, q.After.ID, q.Limit}

	default:
		query = `
			SELECT id, title, category_id, rank_score, visible, created_at
			FROM items
			WHERE visible
			  AND ($1::BIGINT IS NULL OR category_id = $1)
			ORDER BY created_at DESC, id DESC
			LIMIT $2`
		args = []any{q.CategoryID, q.Limit}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		err := rows.Scan(&it.ID, &it.Title, &it.CategoryID, &it.RankScore, &it.Visible, &it.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
