package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field limits matching the database schema.
const (
	MaxVoterIDLen = 64  // votes.voter_id: hex hash, sha256 at most
	MaxTitleLen   = 300 // items.title
)

// voterIDRe matches opaque voter identities: hex hashes as issued by the
// identity provider.
var voterIDRe = regexp.MustCompile(`^[0-9a-f]+$`)

// ErrorResponse is a helper that returns the standard API error envelope.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVoterID checks that a voter ID is a well-formed hex hash.
func ValidateVoterID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "voter identity is required"
	}
	if len(id) > MaxVoterIDLen {
		return "", "voter id must be at most 64 characters"
	}
	if !voterIDRe.MatchString(id) {
		return "", "voter id must be a hexadecimal hash"
	}
	return id, ""
}

// ValidateItemID checks that an item ID is a positive integer.
func ValidateItemID(id int64) string {
	if id <= 0 {
		return "itemId must be a positive integer"
	}
	return ""
}

// ParseItemIDParam parses an :itemId path segment.
func ParseItemIDParam(raw string) (int64, string) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, "itemId must be a positive integer"
	}
	return id, ""
}

// ValidateTitle checks an item title for presence and length.
func ValidateTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "title is required"
	}
	if len(title) > MaxTitleLen {
		return "", "title must be at most 300 characters"
	}
	return title, ""
}

// ParseCategoryIDQuery parses an optional categoryId query value. Empty
// means no filter.
func ParseCategoryIDQuery(raw string) (*int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ""
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, "categoryId must be a positive integer"
	}
	return &id, ""
}

// ParseLimitQuery parses an optional limit query value. Zero means
// unset; range clamping happens in the planner, only non-numeric input
// is rejected here.
func ParseLimitQuery(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, "limit must be a non-negative integer"
	}
	return n, ""
}
