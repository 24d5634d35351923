package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/driftboard/driftboard-go/internal/cursor"
	"github.com/driftboard/driftboard-go/internal/model"
	"github.com/driftboard/driftboard-go/internal/repository"
)

// FeedService is the feed query planner: it turns a validated read
// request into a keyset query, and a full page into a continuation
// token.
type FeedService struct {
	store FeedStore
	cache *CacheService
}

func NewFeedService(store FeedStore, cache *CacheService) *FeedService {
	return &FeedService{store: store, cache: cache}
}

// List returns one feed page.
//
// The cursor token is client-held and untrusted: a malformed or stale
// token degrades to a first-page read instead of failing. NextCursor is
// set only when the page came back full; a short page means end of feed.
// That signal can be wrong when items were hidden concurrently, which is
// accepted in exchange for skipping an existence probe per page.
func (s *FeedService) List(ctx context.Context, sort model.SortMode, categoryID *int64, cursorToken string, limit int) (*model.FeedResponse, error) {
	limit = model.ClampPageSize(limit)
	after, _ := cursor.Decode(cursorToken, sort)

	// Only cursor-less pages hit the cache: they are the hot path and
	// the only ones with a stable key.
	var cacheKey string
	if after == nil && s.cache != nil {
		cacheKey = FeedPageKey(string(sort), categoryID, limit)
		cached, err := s.cache.GetFeedPage(ctx, cacheKey)
		if err != nil {
			log.Printf("cache: feed get error: %v", err)
		} else if cached != nil {
			var resp model.FeedResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	items, err := s.store.ListPage(ctx, repository.FeedQuery{
		Sort:       sort,
		CategoryID: categoryID,
		After:      after,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &model.FeedResponse{Items: make([]model.ItemResponse, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, itemResponse(it))
	}
	if len(items) == limit {
		token := cursor.Encode(items[len(items)-1], sort)
		resp.NextCursor = &token
	}

	if cacheKey != "" {
		if err := s.cache.SetFeedPage(ctx, cacheKey, resp); err != nil {
			log.Printf("cache: feed set error: %v", err)
		}
	}

	return resp, nil
}

func itemResponse(it model.Item) model.ItemResponse {
	return model.ItemResponse{
		ID:         it.ID,
		Title:      it.Title,
		CategoryID: it.CategoryID,
		RankScore:  it.RankScore,
		CreatedAt:  it.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
