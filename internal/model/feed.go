package model

// SortMode selects the feed ordering.
type SortMode string

const (
	// SortRanked orders by (rank_score DESC, created_at DESC, id DESC).
	SortRanked SortMode = "ranked"
	// SortNewest orders by (created_at DESC, id DESC).
	SortNewest SortMode = "newest"
)

// ParseSortMode validates a sort query parameter. An empty value defaults
// to ranked; anything else unknown is rejected.
func ParseSortMode(s string) (SortMode, bool) {
	switch s {
	case "", string(SortRanked):
		return SortRanked, true
	case string(SortNewest):
		return SortNewest, true
	default:
		return "", false
	}
}

// Page size bounds for feed reads.
const (
	MinPageSize     = 1
	MaxPageSize     = 50
	DefaultPageSize = 25
)

// ClampPageSize forces a requested limit into [MinPageSize, MaxPageSize].
// Zero (unset) falls back to the default.
func ClampPageSize(n int) int {
	if n == 0 {
		return DefaultPageSize
	}
	if n < MinPageSize {
		return MinPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// FeedResponse is the API response for a feed page. NextCursor is null
// when the page was short, which the planner treats as end of feed.
type FeedResponse struct {
	Items      []ItemResponse `json:"items"`
	NextCursor *string        `json:"nextCursor"`
}
