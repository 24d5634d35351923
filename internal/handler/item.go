package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/driftboard/driftboard-go/internal/middleware"
	"github.com/driftboard/driftboard-go/internal/model"
	"github.com/driftboard/driftboard-go/internal/repository"
	"github.com/driftboard/driftboard-go/internal/service"
)

// ItemHandler is the item lifecycle boundary over HTTP. Submissions
// require a voter identity; the feed planner and the vote ledger never
// touch these routes.
type ItemHandler struct {
	svc *service.ItemService
}

func NewItemHandler(svc *service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// Create handles POST /api/items
func (h *ItemHandler) Create(c fiber.Ctx) error {
	if _, ok, err := voterIdentity(c); !ok {
		return err
	}

	var req model.ItemCreateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	title, errMsg := middleware.ValidateTitle(req.Title)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if req.CategoryID != nil && *req.CategoryID <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD",
			"categoryId must be a positive integer")
	}

	resp, err := h.svc.Create(c.Context(), title, req.CategoryID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create item")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get handles GET /api/items/:itemId
func (h *ItemHandler) Get(c fiber.Ctx) error {
	itemID, errMsg := middleware.ParseItemIDParam(c.Params("itemId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.Get(c.Context(), itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Item not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup item")
	}

	return c.JSON(resp)
}

// Hide handles POST /api/items/:itemId/hide
//
// Hidden items silently drop out of subsequent feed pages; readers
// paging with an older cursor just see them vanish.
func (h *ItemHandler) Hide(c fiber.Ctx) error {
	if _, ok, err := voterIdentity(c); !ok {
		return err
	}

	itemID, errMsg := middleware.ParseItemIDParam(c.Params("itemId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	hidden, err := h.svc.Hide(c.Context(), itemID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to hide item")
	}
	if !hidden {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Item not found")
	}

	return c.JSON(fiber.Map{"hidden": true})
}
