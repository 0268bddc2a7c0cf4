package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invoicepdf/invoice-api/internal/application/dto"
	"github.com/invoicepdf/invoice-api/internal/application/presets"
	"github.com/invoicepdf/invoice-api/internal/domain"
	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
)

// PresetHandler handles the stored seller presets.
type PresetHandler struct {
	svc *presets.Service
}

func NewPresetHandler(svc *presets.Service) *PresetHandler {
	return &PresetHandler{svc: svc}
}

// List godoc
// @Summary      List seller presets
// @Tags         presets
// @Produce      json
// @Success      200  {object}  dto.SellerPresetListResponse
// @Router       /api/presets/sellers [get]
func (h *PresetHandler) List(c *fiber.Ctx) error {
	items, err := h.svc.List(c.UserContext())
	if err != nil {
		return internalError(c, err)
	}
	if items == nil {
		items = []invoice.Seller{}
	}
	return c.JSON(dto.SellerPresetListResponse{Items: items})
}

// Create godoc
// @Summary      Store a new seller preset
// @Tags         presets
// @Accept       json
// @Produce      json
// @Param        body  body  invoice.Seller  true  "Seller record"
// @Success      201   {object}  invoice.Seller
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/presets/sellers [post]
func (h *PresetHandler) Create(c *fiber.Ctx) error {
	seller, err := h.svc.Create(c.UserContext(), c.Body())
	if err != nil {
		return validationOrInternal(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(seller)
}

// Update godoc
// @Summary      Replace a seller preset
// @Tags         presets
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "Preset id"
// @Param        body  body  invoice.Seller  true  "Seller record"
// @Success      200   {object}  invoice.Seller
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/presets/sellers/{id} [put]
func (h *PresetHandler) Update(c *fiber.Ctx) error {
	seller, err := h.svc.Update(c.UserContext(), c.Params("id"), c.Body())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		return validationOrInternal(c, err)
	}
	return c.JSON(seller)
}

// Delete godoc
// @Summary      Delete a seller preset
// @Tags         presets
// @Param        id  path  string  true  "Preset id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/presets/sellers/{id} [delete]
func (h *PresetHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Apply godoc
// @Summary      Apply a stored seller preset onto a document
// @Tags         presets
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "Preset id"
// @Param        body  body  invoice.Document  true  "Document to apply the preset onto"
// @Success      200   {object}  invoice.Document
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/presets/sellers/{id}/apply [post]
func (h *PresetHandler) Apply(c *fiber.Ctx) error {
	doc, err := invoice.Validate(c.Body())
	if err != nil {
		return validationOrInternal(c, err)
	}
	out, err := h.svc.Apply(c.UserContext(), doc, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Code: "NOT_FOUND", Message: "seller preset not found",
	})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}
