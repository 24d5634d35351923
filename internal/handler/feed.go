package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/driftboard/driftboard-go/internal/middleware"
	"github.com/driftboard/driftboard-go/internal/model"
	"github.com/driftboard/driftboard-go/internal/service"
)

type FeedHandler struct {
	svc *service.FeedService
}

func NewFeedHandler(svc *service.FeedService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// List handles GET /api/feed?sort=&categoryId=&cursor=&limit=
//
// sort and limit are validated here, before any store access; the
// cursor is not — it is untrusted by design and decodes tolerantly
// inside the planner.
func (h *FeedHandler) List(c fiber.Ctx) error {
	sort, ok := model.ParseSortMode(fiber.Query[string](c, "sort"))
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SORT",
			"sort must be one of: ranked, newest")
	}

	categoryID, errMsg := middleware.ParseCategoryIDQuery(fiber.Query[string](c, "categoryId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	limit, errMsg := middleware.ParseLimitQuery(fiber.Query[string](c, "limit"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.List(c.Context(), sort, categoryID, fiber.Query[string](c, "cursor"), limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to read feed")
	}

	return c.JSON(resp)
}
