// Package voters resolves vote weights for opaque voter identities.
//
// Every voter carries weight 1 unless a static override grants more. The
// override set is small, configured at startup, and doubles as the daily
// quota exemption list.
package voters

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultWeight is the weight of any voter without an override.
const DefaultWeight int64 = 1

// Weights is a pure, injectable voter weight resolver.
type Weights struct {
	overrides map[string]int64
}

// New builds a resolver from an override map. Overrides below 2 are
// ignored: weight 1 is already the default and zero/negative weights
// have no meaning in the ledger.
func New(overrides map[string]int64) *Weights {
	w := &Weights{overrides: make(map[string]int64, len(overrides))}
	for id, weight := range overrides {
		if weight >= 2 {
			w.overrides[id] = weight
		}
	}
	return w
}

// ParseOverrides parses the VOTER_WEIGHT_OVERRIDES env format:
// "voterid:weight,voterid:weight". Whitespace around entries is ignored.
func ParseOverrides(s string) (map[string]int64, error) {
	overrides := make(map[string]int64)
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, raw, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("weight override %q: missing ':'", entry)
		}
		weight, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("weight override %q: %w", entry, err)
		}
		if weight < 2 {
			return nil, fmt.Errorf("weight override %q: weight must be >= 2", entry)
		}
		overrides[strings.TrimSpace(id)] = weight
	}
	return overrides, nil
}

// Weight returns the vote weight for a voter.
func (w *Weights) Weight(voterID string) int64 {
	if weight, ok := w.overrides[voterID]; ok {
		return weight
	}
	return DefaultWeight
}

// Elevated reports whether a voter is on the override set. Elevated
// voters are exempt from the daily vote quota.
func (w *Weights) Elevated(voterID string) bool {
	_, ok := w.overrides[voterID]
	return ok
}
