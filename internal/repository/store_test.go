package repository

import (
	"testing"
	"time"

	"github.com/driftboard/driftboard-go/internal/cursor"
	"github.com/driftboard/driftboard-go/internal/model"
)

var (
	t1 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 = time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC) // earlier than t1
)

func item(id, rank int64, created time.Time) model.Item {
	return model.Item{ID: id, RankScore: rank, CreatedAt: created, Visible: true}
}

func TestFeedLess_RankedOrdersByScoreThenTimeThenID(t *testing.T) {
	tests := []struct {
		name string
		a, b model.Item
	}{
		{"higher score first", item(1, 9, t2), item(2, 5, t1)},
		{"equal score, newer first", item(1, 5, t1), item(2, 5, t2)},
		{"equal score and time, higher id first", item(2, 5, t1), item(1, 5, t1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !FeedLess(model.SortRanked, tt.a, tt.b) {
				t.Errorf("want %d before %d", tt.a.ID, tt.b.ID)
			}
			if FeedLess(model.SortRanked, tt.b, tt.a) {
				t.Errorf("ordering not antisymmetric for %d/%d", tt.a.ID, tt.b.ID)
			}
		})
	}
}

func TestFeedLess_NewestIgnoresScore(t *testing.T) {
	a := item(1, 0, t1)
	b := item(2, 100, t2)
	if !FeedLess(model.SortNewest, a, b) {
		t.Error("newest mode must order by time regardless of score")
	}
}

// The id tiebreaker makes the ordering a strict total order: any two
// distinct items compare consistently no matter how score and time
// collide.
func TestFeedLess_TotalOrderOnFullTies(t *testing.T) {
	a := item(1, 5, t1)
	b := item(2, 5, t1)
	for i := 0; i < 10; i++ {
		if FeedLess(model.SortRanked, a, b) {
			t.Fatal("id 2 must always precede id 1 on full tie")
		}
		if !FeedLess(model.SortRanked, b, a) {
			t.Fatal("tie-break must be deterministic across calls")
		}
	}
}

func TestAfterBoundary(t *testing.T) {
	boundary := &cursor.Cursor{Sort: model.SortRanked, RankScore: 5, CreatedAt: t1, ID: 1}

	tests := []struct {
		name string
		it   model.Item
		want bool
	}{
		{"lower score is past", item(3, 3, t2), true},
		{"same tuple is not past", item(1, 5, t1), false},
		{"higher id on tie is before boundary", item(2, 5, t1), false},
		{"same score, earlier time is past", item(4, 5, t2), true},
		{"higher score is before boundary", item(5, 8, t2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AfterBoundary(model.SortRanked, tt.it, boundary); got != tt.want {
				t.Errorf("AfterBoundary = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUTCDayStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"mid-day",
			time.Date(2025, 6, 1, 15, 42, 7, 0, time.UTC),
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"exactly midnight",
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"non-utc zone normalizes to utc day",
			time.Date(2025, 6, 1, 1, 30, 0, 0, time.FixedZone("east", 5*3600)),
			time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UTCDayStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("UTCDayStart = %v, want %v", got, tt.want)
			}
		})
	}
}
