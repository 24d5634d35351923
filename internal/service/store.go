package service

import (
	"context"

	"github.com/driftboard/driftboard-go/internal/model"
	"github.com/driftboard/driftboard-go/internal/repository"
)

// The services are written against these narrow store interfaces.
// repository.FeedRepo / VoteRepo / ItemRepo satisfy them over Postgres;
// repository.MemStore satisfies all three in one value for local
// development and tests.

// FeedStore executes keyset-paginated feed reads.
type FeedStore interface {
	ListPage(ctx context.Context, q repository.FeedQuery) ([]model.Item, error)
}

// VoteLedger applies idempotent vote transitions and keeps rank_score
// equal to the sum of current voter weights.
type VoteLedger interface {
	CastVote(ctx context.Context, itemID int64, voterID string) (repository.CastStatus, error)
	UndoVote(ctx context.Context, itemID int64, voterID string) (repository.UndoStatus, error)
}

// ItemStore is the item lifecycle boundary plus aggregate stats.
type ItemStore interface {
	CreateItem(ctx context.Context, title string, categoryID *int64) (*model.Item, error)
	FindItem(ctx context.Context, itemID int64) (*model.Item, error)
	HideItem(ctx context.Context, itemID int64) (bool, error)
	GetStats(ctx context.Context) (*model.StatsResponse, error)
}
