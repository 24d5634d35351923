package repository

import (
	"context"
	"testing"
	"time"

	"github.com/driftboard/driftboard-go/internal/model"
	"github.com/driftboard/driftboard-go/internal/voters"
)

func newTestStore(t *testing.T, overrides map[string]int64, quota int) *MemStore {
	t.Helper()
	return NewMemStore(voters.New(overrides), quota)
}

func mustCreate(t *testing.T, s *MemStore, title string) int64 {
	t.Helper()
	it, err := s.CreateItem(context.Background(), title, nil)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return it.ID
}

func rankOf(t *testing.T, s *MemStore, itemID int64) int64 {
	t.Helper()
	it, err := s.FindItem(context.Background(), itemID)
	if err != nil {
		t.Fatalf("find item %d: %v", itemID, err)
	}
	return it.RankScore
}

func TestCastVote_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, 200)
	id := mustCreate(t, s, "first post")

	status, err := s.CastVote(ctx, id, "aa11")
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if status != CastCreated {
		t.Fatalf("first cast status = %v, want CastCreated", status)
	}
	if got := rankOf(t, s, id); got != 1 {
		t.Fatalf("rank after first cast = %d, want 1", got)
	}

	// Verbatim retry: no error, no second count.
	status, err = s.CastVote(ctx, id, "aa11")
	if err != nil {
		t.Fatalf("retry cast: %v", err)
	}
	if status != CastAlreadyVoted {
		t.Fatalf("retry status = %v, want CastAlreadyVoted", status)
	}
	if got := rankOf(t, s, id); got != 1 {
		t.Errorf("rank after retry = %d, want 1 (no double count)", got)
	}
}

func TestUndoVote_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, 200)
	id := mustCreate(t, s, "first post")

	if _, err := s.CastVote(ctx, id, "aa11"); err != nil {
		t.Fatalf("cast: %v", err)
	}

	status, err := s.UndoVote(ctx, id, "aa11")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if status != UndoDeleted {
		t.Fatalf("undo status = %v, want UndoDeleted", status)
	}
	if got := rankOf(t, s, id); got != 0 {
		t.Errorf("rank after undo = %d, want 0", got)
	}

	status, err = s.UndoVote(ctx, id, "aa11")
	if err != nil {
		t.Fatalf("retry undo: %v", err)
	}
	if status != UndoNotFound {
		t.Errorf("retry undo status = %v, want UndoNotFound", status)
	}
	if got := rankOf(t, s, id); got != 0 {
		t.Errorf("rank after retry undo = %d, want 0 (never negative)", got)
	}
}

func TestUndoVote_AbsentVoteLeavesScoreUntouched(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, 200)
	id := mustCreate(t, s, "first post")

	if _, err := s.CastVote(ctx, id, "aa11"); err != nil {
		t.Fatalf("cast: %v", err)
	}

	status, err := s.UndoVote(ctx, id, "bb22") // never voted
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if status != UndoNotFound {
		t.Errorf("status = %v, want UndoNotFound", status)
	}
	if got := rankOf(t, s, id); got != 1 {
		t.Errorf("rank = %d, want 1 (unchanged)", got)
	}
}

func TestCastVote_UnknownItem(t *testing.T) {
	s := newTestStore(t, nil, 200)
	status, err := s.CastVote(context.Background(), 999, "aa11")
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if status != CastItemNotFound {
		t.Errorf("status = %v, want CastItemNotFound", status)
	}
}

// rank_score must always equal the sum of current voter weights, with
// elevated weights counted at their override value.
func TestRankScore_SumOfWeights(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, map[string]int64{"e1f0": 5}, 200)
	id := mustCreate(t, s, "weighted")

	if _, err := s.CastVote(ctx, id, "aa11"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CastVote(ctx, id, "bb22"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CastVote(ctx, id, "e1f0"); err != nil {
		t.Fatal(err)
	}
	if got := rankOf(t, s, id); got != 7 { // 1 + 1 + 5
		t.Fatalf("rank = %d, want 7", got)
	}

	if _, err := s.UndoVote(ctx, id, "e1f0"); err != nil {
		t.Fatal(err)
	}
	if got := rankOf(t, s, id); got != 2 {
		t.Errorf("rank after elevated undo = %d, want 2", got)
	}
}

func TestDailyQuota(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, map[string]int64{"e1f0": 3}, 3)

	ids := make([]int64, 5)
	for i := range ids {
		ids[i] = mustCreate(t, s, "item")
	}

	// Regular voter: 3 allowed, 4th rejected.
	for i := 0; i < 3; i++ {
		status, err := s.CastVote(ctx, ids[i], "aa11")
		if err != nil {
			t.Fatal(err)
		}
		if status != CastCreated {
			t.Fatalf("cast %d status = %v, want CastCreated", i+1, status)
		}
	}
	status, err := s.CastVote(ctx, ids[3], "aa11")
	if err != nil {
		t.Fatal(err)
	}
	if status != CastQuotaExceeded {
		t.Fatalf("4th cast status = %v, want CastQuotaExceeded", status)
	}
	if got := rankOf(t, s, ids[3]); got != 0 {
		t.Errorf("rejected cast mutated rank: %d", got)
	}

	// Retrying an existing vote is still a no-op, not quota_exceeded.
	status, err = s.CastVote(ctx, ids[0], "aa11")
	if err != nil {
		t.Fatal(err)
	}
	if status != CastAlreadyVoted {
		t.Errorf("retry over quota status = %v, want CastAlreadyVoted", status)
	}

	// Elevated voter is exempt.
	for i := range ids {
		status, err := s.CastVote(ctx, ids[i], "e1f0")
		if err != nil {
			t.Fatal(err)
		}
		if status != CastCreated {
			t.Fatalf("elevated cast %d status = %v, want CastCreated", i+1, status)
		}
	}
}

// The quota counts surviving rows, so undoing a vote returns its slot
// for the rest of the day.
func TestDailyQuota_UndoReturnsSlot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, 1)

	a := mustCreate(t, s, "a")
	b := mustCreate(t, s, "b")

	if status, _ := s.CastVote(ctx, a, "aa11"); status != CastCreated {
		t.Fatalf("first cast status = %v", status)
	}
	if status, _ := s.CastVote(ctx, b, "aa11"); status != CastQuotaExceeded {
		t.Fatalf("over-quota cast status = %v, want CastQuotaExceeded", status)
	}

	if status, _ := s.UndoVote(ctx, a, "aa11"); status != UndoDeleted {
		t.Fatalf("undo status = %v", status)
	}
	if status, _ := s.CastVote(ctx, b, "aa11"); status != CastCreated {
		t.Errorf("cast after undo status = %v, want CastCreated", status)
	}
}

func TestDailyQuota_ResetsAtUTCMidnight(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, 1)

	now := time.Date(2025, 6, 1, 23, 50, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	a := mustCreate(t, s, "a")
	b := mustCreate(t, s, "b")

	if status, _ := s.CastVote(ctx, a, "aa11"); status != CastCreated {
		t.Fatalf("first cast status = %v", status)
	}
	if status, _ := s.CastVote(ctx, b, "aa11"); status != CastQuotaExceeded {
		t.Fatalf("same-day cast status = %v, want CastQuotaExceeded", status)
	}

	// Cross the UTC day boundary: the quota window starts fresh.
	now = time.Date(2025, 6, 2, 0, 10, 0, 0, time.UTC)
	if status, _ := s.CastVote(ctx, b, "aa11"); status != CastCreated {
		t.Errorf("next-day cast status = %v, want CastCreated", status)
	}
}

func TestHideItem_RemovesFromFeedAndLookup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, 200)
	a := mustCreate(t, s, "stays")
	b := mustCreate(t, s, "goes")

	hidden, err := s.HideItem(ctx, b)
	if err != nil || !hidden {
		t.Fatalf("hide: hidden=%v err=%v", hidden, err)
	}

	// Hiding twice reports false.
	hidden, err = s.HideItem(ctx, b)
	if err != nil || hidden {
		t.Fatalf("second hide: hidden=%v err=%v", hidden, err)
	}

	if _, err := s.FindItem(ctx, b); err != ErrNotFound {
		t.Errorf("FindItem on hidden = %v, want ErrNotFound", err)
	}

	items, err := s.ListPage(ctx, FeedQuery{Sort: model.SortNewest, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != a {
		t.Errorf("feed = %v, want only item %d", items, a)
	}
}

func TestListPage_CategoryFilter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, 200)

	cat := int64(7)
	other := int64(9)
	if _, err := s.CreateItem(ctx, "in category", &cat); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateItem(ctx, "other category", &other); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateItem(ctx, "no category", nil); err != nil {
		t.Fatal(err)
	}

	items, err := s.ListPage(ctx, FeedQuery{Sort: model.SortRanked, CategoryID: &cat, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Title != "in category" {
		t.Errorf("filtered feed = %v, want only the matching item", items)
	}
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, 200)

	a := mustCreate(t, s, "a")
	b := mustCreate(t, s, "b")
	if _, err := s.CastVote(ctx, a, "aa11"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CastVote(ctx, b, "aa11"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CastVote(ctx, a, "bb22"); err != nil {
		t.Fatal(err)
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalItems != 2 {
		t.Errorf("totalItems = %d, want 2", stats.TotalItems)
	}
	if stats.TotalVotes != 3 {
		t.Errorf("totalVotes = %d, want 3", stats.TotalVotes)
	}
	if stats.TotalVoters != 2 {
		t.Errorf("totalVoters = %d, want 2", stats.TotalVoters)
	}
	if stats.ActiveVoters24h != 2 {
		t.Errorf("activeVoters24h = %d, want 2", stats.ActiveVoters24h)
	}
}
