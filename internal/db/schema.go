package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema applies the DDL statements below, one at a time. All
// statements are idempotent, so running it on every startup is safe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, query := range strings.Split(schema, "---") {
		if _, err := pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("apply schema: %w\n%s", err, query)
		}
	}
	return nil
}

// rank_score is a cached aggregate owned by the vote ledger: it always
// equals the sum of the current voters' weights and is rewritten inside
// the same transaction as every vote insert or delete. There is no
// trigger maintaining it.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id          BIGSERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    category_id BIGINT,
    rank_score  BIGINT NOT NULL DEFAULT 0 CHECK (rank_score >= 0),
    visible     BOOLEAN NOT NULL DEFAULT TRUE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

---

CREATE INDEX IF NOT EXISTS items_ranked_idx
    ON items (rank_score DESC, created_at DESC, id DESC)
    WHERE visible;

---

CREATE INDEX IF NOT EXISTS items_newest_idx
    ON items (created_at DESC, id DESC)
    WHERE visible;

---

CREATE TABLE IF NOT EXISTS votes (
    item_id     BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    voter_id    TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    PRIMARY KEY (item_id, voter_id)
);

---

CREATE INDEX IF NOT EXISTS votes_voter_created_idx
    ON votes (voter_id, created_at);
`
