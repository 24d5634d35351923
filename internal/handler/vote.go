package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/driftboard/driftboard-go/internal/metrics"
	"github.com/driftboard/driftboard-go/internal/middleware"
	"github.com/driftboard/driftboard-go/internal/model"
	"github.com/driftboard/driftboard-go/internal/repository"
	"github.com/driftboard/driftboard-go/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// voterIdentity extracts the pre-authenticated voter from the request.
// A missing identity is an auth failure (401); a malformed one is a
// validation failure (400). Both reject before any store access.
//
// ok=false means the error response has already been written; the
// handler must stop and return err as-is. The response error cannot
// double as the signal because JSON returns nil on success.
func voterIdentity(c fiber.Ctx) (voterID string, ok bool, err error) {
	raw := c.Get("X-Voter-ID")
	if raw == "" {
		return "", false, middleware.ErrorResponse(c, fiber.StatusUnauthorized, "AUTH_REQUIRED",
			"X-Voter-ID header is required")
	}
	voterID, errMsg := middleware.ValidateVoterID(raw)
	if errMsg != "" {
		return "", false, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	return voterID, true, nil
}

// Cast handles POST /api/votes
//
// Duplicate votes and spent quotas come back as 200s with structured
// fields: they are business outcomes the client reconciles against its
// optimistic count, not failures.
func (h *VoteHandler) Cast(c fiber.Ctx) error {
	voterID, ok, err := voterIdentity(c)
	if !ok {
		return err
	}

	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if errMsg := middleware.ValidateItemID(req.ItemID); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.Cast(c.Context(), req.ItemID, voterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.IncVote("cast", "item_not_found")
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Item not found")
		}
		metrics.IncVote("cast", "error")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cast vote")
	}

	metrics.IncVote("cast", castOutcome(resp))
	return c.JSON(resp)
}

// Undo handles DELETE /api/votes
func (h *VoteHandler) Undo(c fiber.Ctx) error {
	voterID, ok, err := voterIdentity(c)
	if !ok {
		return err
	}

	var req model.VoteDeleteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if errMsg := middleware.ValidateItemID(req.ItemID); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.Undo(c.Context(), req.ItemID, voterID)
	if err != nil {
		metrics.IncVote("undo", "error")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to undo vote")
	}

	if resp.Unvoted {
		metrics.IncVote("undo", "deleted")
	} else {
		metrics.IncVote("undo", "not_found")
	}
	return c.JSON(resp)
}

func castOutcome(resp *model.CastVoteResponse) string {
	switch {
	case resp.Voted:
		return "created"
	case resp.Error == model.ErrCodeQuotaExceeded:
		return "quota_exceeded"
	default:
		return "already_voted"
	}
}
