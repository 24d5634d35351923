// Package cursor encodes feed page boundaries as opaque continuation
// tokens. Tokens are client-held and unsigned: decoding is tolerant and
// any malformed or incomplete token falls back to first-page semantics
// instead of failing the request.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/driftboard/driftboard-go/internal/model"
)

// Cursor is the decoded sort-key tuple of the last item on the previous
// page. RankScore is only meaningful in ranked mode.
type Cursor struct {
	Sort      model.SortMode
	RankScore int64
	CreatedAt time.Time
	ID        int64
}

// wire is the JSON shape of an encoded cursor. Short keys keep the token
// compact; created_at travels as RFC3339Nano.
type wire struct {
	Sort      string `json:"s"`
	RankScore int64  `json:"r"`
	CreatedAt string `json:"c"`
	ID        int64  `json:"i"`
}

// Encode builds a continuation token from the last item of a page.
func Encode(item model.Item, sort model.SortMode) string {
	w := wire{
		Sort:      string(sort),
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:        item.ID,
	}
	if sort == model.SortRanked {
		w.RankScore = item.RankScore
	}
	b, _ := json.Marshal(w)
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode parses a continuation token. It returns (nil, true) for an empty
// token (first page) and (nil, false) for a malformed one; callers treat
// both as first-page reads. A well-formed token whose sort mode does not
// match the request is stale and also decodes to nil.
func Decode(token string, sort model.SortMode) (*Cursor, bool) {
	if token == "" {
		return nil, true
	}

	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, false
	}

	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, false
	}
	if w.Sort != string(sort) || w.ID <= 0 {
		return nil, false
	}

	createdAt, err := time.Parse(time.RFC3339Nano, w.CreatedAt)
	if err != nil {
		return nil, false
	}
	if sort == model.SortRanked && w.RankScore < 0 {
		return nil, false
	}

	return &Cursor{
		Sort:      sort,
		RankScore: w.RankScore,
		CreatedAt: createdAt,
		ID:        w.ID,
	}, true
}
