package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/driftboard/driftboard-go/internal/model"
)

// ItemService hosts the item lifecycle boundary. The planner and the
// ledger never create or hide items; all lifecycle writes come through
// here.
type ItemService struct {
	store ItemStore
	cache *CacheService
}

func NewItemService(store ItemStore, cache *CacheService) *ItemService {
	return &ItemService{store: store, cache: cache}
}

// Create submits a new item. It starts visible with a zero rank score.
func (s *ItemService) Create(ctx context.Context, title string, categoryID *int64) (*model.ItemResponse, error) {
	it, err := s.store.CreateItem(ctx, title, categoryID)
	if err != nil {
		return nil, err
	}
	resp := itemResponse(*it)
	return &resp, nil
}

// Get returns a single visible item, cache-aside.
func (s *ItemService) Get(ctx context.Context, itemID int64) (*model.ItemResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetItem(ctx, itemID)
		if err != nil {
			log.Printf("cache: item get error: %v", err)
		} else if cached != nil {
			var resp model.ItemResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	it, err := s.store.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := itemResponse(*it)

	if s.cache != nil {
		if err := s.cache.SetItem(ctx, itemID, resp); err != nil {
			log.Printf("cache: item set error: %v", err)
		}
	}

	return &resp, nil
}

// Hide marks an item invisible and drops its cache entry. Returns false
// when the item is unknown or already hidden.
func (s *ItemService) Hide(ctx context.Context, itemID int64) (bool, error) {
	hidden, err := s.store.HideItem(ctx, itemID)
	if err != nil {
		return false, err
	}
	if hidden && s.cache != nil {
		if err := s.cache.InvalidateItem(ctx, itemID); err != nil {
			log.Printf("cache: invalidate item error: %v", err)
		}
	}
	return hidden, nil
}

// Stats returns aggregate counts for the stats endpoint.
func (s *ItemService) Stats(ctx context.Context) (*model.StatsResponse, error) {
	return s.store.GetStats(ctx)
}
