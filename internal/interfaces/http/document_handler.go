package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invoicepdf/invoice-api/internal/application/document"
	"github.com/invoicepdf/invoice-api/internal/application/dto"
	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
)

// DocumentHandler handles the document lifecycle: load, edit, share,
// decode and PDF rendering.
type DocumentHandler struct {
	svc     *document.Service
	metrics *Metrics
}

func NewDocumentHandler(svc *document.Service, metrics *Metrics) *DocumentHandler {
	return &DocumentHandler{svc: svc, metrics: metrics}
}

// Get godoc
// @Summary      Load the current document
// @Tags         document
// @Produce      json
// @Param        data  query  string  false  "Compressed share link parameter"
// @Success      200   {object}  dto.DocumentResponse
// @Router       /api/document [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	res := h.svc.Load(c.UserContext(), c.Query("data"))
	h.metrics.DocumentLoads.WithLabelValues(string(res.Source)).Inc()
	return c.JSON(dto.DocumentResponse{Document: res.Document, Source: string(res.Source)})
}

// Put godoc
// @Summary      Apply one edit cycle: validate, recompute, persist
// @Tags         document
// @Accept       json
// @Produce      json
// @Param        data  query  string  false  "Share link parameter the session was opened with"
// @Param        body  body   invoice.Document  true  "Edited document"
// @Success      200   {object}  dto.EditResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document [put]
func (h *DocumentHandler) Put(c *fiber.Ctx) error {
	res, err := h.svc.ApplyEdit(c.UserContext(), c.Body(), c.Query("data"))
	if err != nil {
		h.metrics.Validations.WithLabelValues("rejected").Inc()
		return validationOrInternal(c, err)
	}
	h.metrics.Validations.WithLabelValues("accepted").Inc()
	return c.JSON(dto.EditResponse{
		Document:       res.Document,
		Recomputed:     res.Recomputed,
		ShareLinkStale: res.ShareLinkStale,
		Persisted:      res.PersistErr == nil,
	})
}

// Validate godoc
// @Summary      Dry-run validation of a document
// @Tags         document
// @Accept       json
// @Produce      json
// @Param        body  body  invoice.Document  true  "Document to validate"
// @Success      200   {object}  invoice.Document
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/document/validate [post]
func (h *DocumentHandler) Validate(c *fiber.Ctx) error {
	doc, err := invoice.Validate(c.Body())
	if err != nil {
		var verr *invoice.ValidationError
		if errors.As(err, &verr) {
			h.metrics.Validations.WithLabelValues("rejected").Inc()
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse(verr))
		}
		return validationOrInternal(c, err)
	}
	h.metrics.Validations.WithLabelValues("accepted").Inc()
	return c.JSON(doc)
}

// Share godoc
// @Summary      Encode a document into a share link parameter
// @Tags         document
// @Accept       json
// @Produce      json
// @Param        body  body  invoice.Document  true  "Document to share"
// @Success      200   {object}  dto.ShareResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document/share [post]
func (h *DocumentHandler) Share(c *fiber.Ctx) error {
	param, err := h.svc.Share(c.UserContext(), c.Body())
	if err != nil {
		return validationOrInternal(c, err)
	}
	h.metrics.ShareLinks.Inc()
	return c.JSON(dto.ShareResponse{Param: param})
}

// Decode godoc
// @Summary      Decode a share link parameter back into a document
// @Tags         document
// @Produce      json
// @Param        data  query  string  true  "Compressed share link parameter"
// @Success      200   {object}  invoice.Document
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document/decode [get]
func (h *DocumentHandler) Decode(c *fiber.Ctx) error {
	param := c.Query("data")
	if param == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "MISSING_PARAM", Message: "data query parameter is required",
		})
	}
	doc, err := h.svc.Decode(param)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "DECODE", Message: "share link parameter could not be decoded",
		})
	}
	return c.JSON(doc)
}

// RenderPDF godoc
// @Summary      Render the printable PDF of a document
// @Tags         document
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  invoice.Document  true  "Document to render"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document/pdf [post]
func (h *DocumentHandler) RenderPDF(c *fiber.Ctx) error {
	doc, err := invoice.Validate(c.Body())
	if err != nil {
		return validationOrInternal(c, err)
	}
	out, err := h.svc.RenderPDF(c.UserContext(), doc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "RENDER", Message: err.Error(),
		})
	}
	h.metrics.PDFRenders.Inc()
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoice.pdf"`)
	return c.Send(out)
}

// validationOrInternal maps a validation error to 400 with per-field
// violations, anything else to 500.
func validationOrInternal(c *fiber.Ctx, err error) error {
	var verr *invoice.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse(verr))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}
