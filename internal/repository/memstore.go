package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/driftboard/driftboard-go/internal/model"
	"github.com/driftboard/driftboard-go/internal/voters"
)

type voteKey struct {
	itemID  int64
	voterID string
}

// MemStore is an in-memory implementation of the feed, ledger and item
// stores. It backs the server when no DATABASE_URL is configured (local
// development) and the ledger/planner property tests. Semantics mirror
// the SQL implementations exactly: same comparator, same cursor
// predicate, same quota window, same resummation.
type MemStore struct {
	mu      sync.Mutex
	items   map[int64]*model.Item
	votes   map[voteKey]time.Time
	nextID  int64
	weights *voters.Weights
	quota   int

	// now is swappable so tests can pin the quota day boundary.
	now func() time.Time
}

func NewMemStore(weights *voters.Weights, dailyQuota int) *MemStore {
	return &MemStore{
		items:   make(map[int64]*model.Item),
		votes:   make(map[voteKey]time.Time),
		nextID:  1,
		weights: weights,
		quota:   dailyQuota,
		now:     time.Now,
	}
}

// SetClock overrides the store's clock. Intended for tests.
func (s *MemStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// ListPage implements the same keyset read as FeedRepo.ListPage.
func (s *MemStore) ListPage(_ context.Context, q FeedQuery) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var eligible []model.Item
	for _, it := range s.items {
		if !it.Visible {
			continue
		}
		if q.CategoryID != nil && (it.CategoryID == nil || *it.CategoryID != *q.CategoryID) {
			continue
		}
		if q.After != nil && !AfterBoundary(q.Sort, *it, q.After) {
			continue
		}
		eligible = append(eligible, *it)
	}

	sort.Slice(eligible, func(i, j int) bool {
		return FeedLess(q.Sort, eligible[i], eligible[j])
	})

	if len(eligible) > q.Limit {
		eligible = eligible[:q.Limit]
	}
	return eligible, nil
}

// CastVote implements the same ledger transition as VoteRepo.CastVote.
func (s *MemStore) CastVote(_ context.Context, itemID int64, voterID string) (CastStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it, ok := s.items[itemID]; !ok || !it.Visible {
		return CastItemNotFound, nil
	}
	if _, ok := s.votes[voteKey{itemID, voterID}]; ok {
		return CastAlreadyVoted, nil
	}

	now := s.now().UTC()
	if !s.weights.Elevated(voterID) {
		dayStart := UTCDayStart(now)
		today := 0
		for k, created := range s.votes {
			if k.voterID == voterID && !created.Before(dayStart) {
				today++
			}
		}
		if today >= s.quota {
			return CastQuotaExceeded, nil
		}
	}

	s.votes[voteKey{itemID, voterID}] = now
	s.resumScore(itemID)
	return CastCreated, nil
}

// UndoVote implements the same ledger transition as VoteRepo.UndoVote.
func (s *MemStore) UndoVote(_ context.Context, itemID int64, voterID string) (UndoStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it, ok := s.items[itemID]; !ok || !it.Visible {
		return UndoNotFound, nil
	}
	key := voteKey{itemID, voterID}
	if _, ok := s.votes[key]; !ok {
		return UndoNotFound, nil
	}

	delete(s.votes, key)
	s.resumScore(itemID)
	return UndoDeleted, nil
}

// resumScore rewrites rank_score as the full sum of current voter
// weights, clamped at zero. Caller holds the lock.
func (s *MemStore) resumScore(itemID int64) {
	var score int64
	for k := range s.votes {
		if k.itemID == itemID {
			score += s.weights.Weight(k.voterID)
		}
	}
	if score < 0 {
		score = 0
	}
	s.items[itemID].RankScore = score
}

// CreateItem inserts a new visible item with a zero rank score.
func (s *MemStore) CreateItem(_ context.Context, title string, categoryID *int64) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := &model.Item{
		ID:         s.nextID,
		Title:      title,
		CategoryID: categoryID,
		Visible:    true,
		CreatedAt:  s.now().UTC(),
	}
	s.nextID++
	s.items[it.ID] = it
	out := *it
	return &out, nil
}

// FindItem returns a single visible item, or ErrNotFound.
func (s *MemStore) FindItem(_ context.Context, itemID int64) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[itemID]
	if !ok || !it.Visible {
		return nil, ErrNotFound
	}
	out := *it
	return &out, nil
}

// HideItem marks an item invisible.
func (s *MemStore) HideItem(_ context.Context, itemID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[itemID]
	if !ok || !it.Visible {
		return false, nil
	}
	it.Visible = false
	return true, nil
}

// GetStats returns aggregate counts across items, votes and voters.
func (s *MemStore) GetStats(_ context.Context) (*model.StatsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &model.StatsResponse{TotalVotes: len(s.votes)}
	for _, it := range s.items {
		if it.Visible {
			stats.TotalItems++
		}
	}
	seen := make(map[string]bool)
	active := make(map[string]bool)
	cutoff := s.now().UTC().Add(-24 * time.Hour)
	for k, created := range s.votes {
		seen[k.voterID] = true
		if created.After(cutoff) {
			active[k.voterID] = true
		}
	}
	stats.TotalVoters = len(seen)
	stats.ActiveVoters24h = len(active)
	return stats, nil
}
