package repository

import (
	"errors"
	"time"

	"github.com/driftboard/driftboard-go/internal/cursor"
	"github.com/driftboard/driftboard-go/internal/model"
)

// ErrNotFound is returned by item lookups when no visible row matches.
// Both the Postgres and the in-memory store return it, so callers never
// branch on driver error values.
var ErrNotFound = errors.New("not found")

// FeedQuery describes one keyset-paginated feed read. After is nil for a
// first-page read. Limit must already be clamped by the caller.
type FeedQuery struct {
	Sort       model.SortMode
	CategoryID *int64
	After      *cursor.Cursor
	Limit      int
}

// CastStatus is the outcome of a cast_vote operation.
type CastStatus int

const (
	CastCreated CastStatus = iota
	CastAlreadyVoted
	CastQuotaExceeded
	CastItemNotFound
)

// UndoStatus is the outcome of an undo_vote operation.
type UndoStatus int

const (
	UndoDeleted UndoStatus = iota
	UndoNotFound
)

// UTCDayStart returns the start of the UTC calendar day containing t.
// The daily vote quota counts rows created at or after this instant.
func UTCDayStart(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// feedCompare orders two sort-key tuples under the given mode. It returns
// a negative value when a precedes b in the feed, zero never (id is
// unique), and a positive value when a follows b. This is the single
// comparator both the ORDER BY and the cursor predicate derive from, so
// the two cannot drift apart.
func feedCompare(sort model.SortMode, aScore int64, aCreated time.Time, aID int64, bScore int64, bCreated time.Time, bID int64) int {
	if sort == model.SortRanked {
		if aScore != bScore {
			if aScore > bScore {
				return -1
			}
			return 1
		}
	}
	if !aCreated.Equal(bCreated) {
		if aCreated.After(bCreated) {
			return -1
		}
		return 1
	}
	switch {
	case aID > bID:
		return -1
	case aID < bID:
		return 1
	default:
		return 0
	}
}

// FeedLess reports whether a precedes b in feed order for the given mode.
func FeedLess(sort model.SortMode, a, b model.Item) bool {
	return feedCompare(sort, a.RankScore, a.CreatedAt, a.ID, b.RankScore, b.CreatedAt, b.ID) < 0
}

// AfterBoundary reports whether item falls strictly past the cursor
// boundary, i.e. whether it belongs on pages after the one the cursor
// terminated.
func AfterBoundary(sort model.SortMode, item model.Item, c *cursor.Cursor) bool {
	return feedCompare(sort, item.RankScore, item.CreatedAt, item.ID, c.RankScore, c.CreatedAt, c.ID) > 0
}
