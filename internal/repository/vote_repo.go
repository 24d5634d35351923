package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/driftboard/driftboard-go/internal/voters"
)

// VoteRepo is the vote ledger: it owns the (item, voter) vote rows and
// the cached rank_score aggregate they feed. All mutations run inside a
// transaction holding the target item's row lock, so concurrent votes on
// the same item serialize while votes on different items do not block
// each other, and no reader ever sees a vote row without its matching
// score update.
type VoteRepo struct {
	pool    *pgxpool.Pool
	weights *voters.Weights
	quota   int
	now     func() time.Time
}

func NewVoteRepo(pool *pgxpool.Pool, weights *voters.Weights, dailyQuota int) *VoteRepo {
	return &VoteRepo{
		pool:    pool,
		weights: weights,
		quota:   dailyQuota,
		now:     time.Now,
	}
}

// CastVote inserts a vote for (itemID, voterID) and recomputes the
// item's rank score.
//
// Outcomes, in check order: the pair already voted (idempotent no-op,
// checked before quota so retries never burn quota), the voter's daily
// quota is spent, the item does not exist, or the vote is created. Only
// the last mutates anything.
func (r *VoteRepo) CastVote(ctx context.Context, itemID int64, voterID string) (CastStatus, error) {
	now := r.now().UTC()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	// Item row lock scopes the whole unit of work to this item. Hidden
	// items are gone as far as voters are concerned.
	var visible bool
	err = tx.QueryRow(ctx, `SELECT visible FROM items WHERE id = $1 FOR UPDATE`, itemID).Scan(&visible)
	if errors.Is(err, pgx.ErrNoRows) {
		return CastItemNotFound, nil
	}
	if err != nil {
		return 0, err
	}
	if !visible {
		return CastItemNotFound, nil
	}

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM votes WHERE item_id = $1 AND voter_id = $2)`,
		itemID, voterID).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists {
		return CastAlreadyVoted, nil
	}

	// Daily quota counts new vote rows this UTC day, across all items.
	// Elevated voters are exempt. Two concurrent casts by one voter on
	// different items can each pass this check; exceeding the quota by
	// one that way is accepted as best-effort anti-abuse.
	if !r.weights.Elevated(voterID) {
		var today int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM votes WHERE voter_id = $1 AND created_at >= $2`,
			voterID, UTCDayStart(now)).Scan(&today)
		if err != nil {
			return 0, err
		}
		if today >= r.quota {
			return CastQuotaExceeded, nil
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO votes (item_id, voter_id, created_at) VALUES ($1, $2, $3)`,
		itemID, voterID, now)
	if err != nil {
		return 0, err
	}

	if err := r.resumScore(ctx, tx, itemID); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return CastCreated, nil
}

// UndoVote deletes the vote for (itemID, voterID) and recomputes the
// item's rank score. A missing vote (or missing item) is the normal
// not_found outcome, not an error, so verbatim retries are safe.
func (r *VoteRepo) UndoVote(ctx context.Context, itemID int64, voterID string) (UndoStatus, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var visible bool
	err = tx.QueryRow(ctx, `SELECT visible FROM items WHERE id = $1 FOR UPDATE`, itemID).Scan(&visible)
	if errors.Is(err, pgx.ErrNoRows) {
		return UndoNotFound, nil
	}
	if err != nil {
		return 0, err
	}
	if !visible {
		return UndoNotFound, nil
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM votes WHERE item_id = $1 AND voter_id = $2`,
		itemID, voterID)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return UndoNotFound, nil
	}

	if err := r.resumScore(ctx, tx, itemID); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return UndoDeleted, nil
}

// resumScore rewrites rank_score as the full sum of the current voters'
// weights. Weights resolve in-process, so the aggregate self-heals if
// the override set changed since earlier votes were counted. Clamped at
// zero as a defensive floor; resummation from source rows cannot
// actually go negative.
func (r *VoteRepo) resumScore(ctx context.Context, tx pgx.Tx, itemID int64) error {
	rows, err := tx.Query(ctx, `SELECT voter_id FROM votes WHERE item_id = $1`, itemID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var score int64
	for rows.Next() {
		var voterID string
		if err := rows.Scan(&voterID); err != nil {
			return err
		}
		score += r.weights.Weight(voterID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if score < 0 {
		score = 0
	}

	_, err = tx.Exec(ctx, `UPDATE items SET rank_score = $2 WHERE id = $1`, itemID, score)
	return err
}
