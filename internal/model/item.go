package model

import "time"

// Item represents a community-submitted entry in the feed.
type Item struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	CategoryID *int64    `json:"categoryId,omitempty"`
	RankScore  int64     `json:"rankScore"`
	Visible    bool      `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ItemCreateRequest is the API request body for submitting an item.
type ItemCreateRequest struct {
	Title      string `json:"title"`
	CategoryID *int64 `json:"categoryId,omitempty"`
}

// ItemResponse is the API response for single-item lookups.
type ItemResponse struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	CategoryID *int64  `json:"categoryId,omitempty"`
	RankScore  int64   `json:"rankScore"`
	CreatedAt  string  `json:"createdAt"`
}

// StatsResponse is the API response for global statistics.
type StatsResponse struct {
	TotalItems      int `json:"totalItems"`
	TotalVotes      int `json:"totalVotes"`
	TotalVoters     int `json:"totalVoters"`
	ActiveVoters24h int `json:"activeVoters24h"`
}
