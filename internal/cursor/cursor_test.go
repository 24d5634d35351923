package cursor

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/driftboard/driftboard-go/internal/model"
)

func testItem() model.Item {
	return model.Item{
		ID:        42,
		RankScore: 17,
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 123456789, time.UTC),
	}
}

func TestEncodeDecode_Ranked(t *testing.T) {
	it := testItem()
	token := Encode(it, model.SortRanked)

	c, ok := Decode(token, model.SortRanked)
	if !ok || c == nil {
		t.Fatalf("decode failed for valid token %q", token)
	}
	if c.ID != it.ID {
		t.Errorf("id = %d, want %d", c.ID, it.ID)
	}
	if c.RankScore != it.RankScore {
		t.Errorf("rankScore = %d, want %d", c.RankScore, it.RankScore)
	}
	if !c.CreatedAt.Equal(it.CreatedAt) {
		t.Errorf("createdAt = %v, want %v", c.CreatedAt, it.CreatedAt)
	}
}

func TestEncodeDecode_NewestOmitsRank(t *testing.T) {
	it := testItem()
	token := Encode(it, model.SortNewest)

	c, ok := Decode(token, model.SortNewest)
	if !ok || c == nil {
		t.Fatal("decode failed for valid newest token")
	}
	if c.RankScore != 0 {
		t.Errorf("rankScore = %d, want 0 in newest mode", c.RankScore)
	}
}

func TestDecode_EmptyIsFirstPage(t *testing.T) {
	c, ok := Decode("", model.SortRanked)
	if c != nil || !ok {
		t.Errorf("empty token: got (%v, %v), want (nil, true)", c, ok)
	}
}

// Cursors are unsigned client-held values: every malformed shape must
// fall back to first-page semantics, never error.
func TestDecode_MalformedFallsBackToFirstPage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"not json", base64.RawURLEncoding.EncodeToString([]byte("not json"))},
		{"empty object", base64.RawURLEncoding.EncodeToString([]byte(`{}`))},
		{"zero id", base64.RawURLEncoding.EncodeToString([]byte(`{"s":"ranked","r":5,"c":"2025-06-01T00:00:00Z","i":0}`))},
		{"negative id", base64.RawURLEncoding.EncodeToString([]byte(`{"s":"ranked","r":5,"c":"2025-06-01T00:00:00Z","i":-3}`))},
		{"bad timestamp", base64.RawURLEncoding.EncodeToString([]byte(`{"s":"ranked","r":5,"c":"yesterday","i":1}`))},
		{"negative rank", base64.RawURLEncoding.EncodeToString([]byte(`{"s":"ranked","r":-1,"c":"2025-06-01T00:00:00Z","i":1}`))},
		{"unknown sort", base64.RawURLEncoding.EncodeToString([]byte(`{"s":"hot","r":5,"c":"2025-06-01T00:00:00Z","i":1}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Decode(tt.token, model.SortRanked)
			if c != nil {
				t.Errorf("got cursor %+v, want nil", c)
			}
			if ok {
				t.Error("ok = true, want false for malformed token")
			}
		})
	}
}

// A cursor minted under one sort mode is stale under another and must
// not be applied.
func TestDecode_SortModeMismatch(t *testing.T) {
	token := Encode(testItem(), model.SortRanked)
	c, ok := Decode(token, model.SortNewest)
	if c != nil || ok {
		t.Errorf("got (%v, %v), want (nil, false) for cross-mode token", c, ok)
	}
}
