package service

import (
	"context"
	"log"

	"github.com/driftboard/driftboard-go/internal/model"
	"github.com/driftboard/driftboard-go/internal/repository"
)

// VoteService maps ledger outcomes onto the reconciliation contract:
// quota_exceeded and not_found travel as structured response fields the
// caller branches on, never as errors. Only an absent item (on cast) and
// store failures surface as errors.
type VoteService struct {
	ledger VoteLedger
	cache  *CacheService
}

func NewVoteService(ledger VoteLedger, cache *CacheService) *VoteService {
	return &VoteService{ledger: ledger, cache: cache}
}

// Cast processes a cast_vote request. Returns repository.ErrNotFound
// when the item does not exist.
func (s *VoteService) Cast(ctx context.Context, itemID int64, voterID string) (*model.CastVoteResponse, error) {
	status, err := s.ledger.CastVote(ctx, itemID, voterID)
	if err != nil {
		return nil, err
	}

	switch status {
	case repository.CastCreated:
		s.invalidateItem(ctx, itemID)
		return &model.CastVoteResponse{Voted: true}, nil
	case repository.CastAlreadyVoted:
		return &model.CastVoteResponse{Voted: false}, nil
	case repository.CastQuotaExceeded:
		return &model.CastVoteResponse{Voted: false, Error: model.ErrCodeQuotaExceeded}, nil
	default:
		return nil, repository.ErrNotFound
	}
}

// Undo processes an undo_vote request. A missing vote is the normal
// not_found outcome, returned in-band.
func (s *VoteService) Undo(ctx context.Context, itemID int64, voterID string) (*model.UndoVoteResponse, error) {
	status, err := s.ledger.UndoVote(ctx, itemID, voterID)
	if err != nil {
		return nil, err
	}

	if status == repository.UndoDeleted {
		s.invalidateItem(ctx, itemID)
		return &model.UndoVoteResponse{Unvoted: true}, nil
	}
	return &model.UndoVoteResponse{Unvoted: false, Error: model.ErrCodeNotFound}, nil
}

// invalidateItem drops the item's cache entry so the next read sees the
// new score. First feed pages are not invalidated; they expire on their
// short TTL.
func (s *VoteService) invalidateItem(ctx context.Context, itemID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateItem(ctx, itemID); err != nil {
		log.Printf("cache: invalidate item error: %v", err)
	}
}
