package model

import "time"

// Vote represents a single (item, voter) vote record. The pair is unique;
// a vote is only ever created or deleted, never updated.
type Vote struct {
	ItemID    int64     `json:"itemId"`
	VoterID   string    `json:"voterId"`
	CreatedAt time.Time `json:"createdAt"`
}

// VoteRequest is the API request body for casting a vote.
type VoteRequest struct {
	ItemID int64 `json:"itemId"`
}

// VoteDeleteRequest is the API request body for undoing a vote.
type VoteDeleteRequest struct {
	ItemID int64 `json:"itemId"`
}

// Business-outcome error values surfaced as structured response fields
// rather than HTTP errors. Callers branch on them to roll back their
// optimistic local count adjustment.
const (
	ErrCodeQuotaExceeded = "quota_exceeded"
	ErrCodeNotFound      = "not_found"
)

// CastVoteResponse is the API response after casting a vote.
//
// Voted=false with no Error means the vote already existed (idempotent
// retry); the caller must not apply its optimistic +1 a second time.
// The response deliberately carries neither the new score nor the voter's
// weight: displayed counts converge on the next full page refetch.
type CastVoteResponse struct {
	Voted bool   `json:"voted"`
	Error string `json:"error,omitempty"`
}

// UndoVoteResponse is the API response after undoing a vote.
// Unvoted=false with Error="not_found" is a normal outcome on retry.
type UndoVoteResponse struct {
	Unvoted bool   `json:"unvoted"`
	Error   string `json:"error,omitempty"`
}
