package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/application/inventory"
	"github.com/jvivanco/micromercado-api/internal/domain"
)

// KardexHandler sirve el kardex de un producto, su versión PDF y sus lotes.
type KardexHandler struct {
	uc  *inventory.MovimientosUseCase
	pdf inventory.KardexPDFGenerator
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *inventory.MovimientosUseCase, pdf inventory.KardexPDFGenerator) *KardexHandler {
	return &KardexHandler{uc: uc, pdf: pdf}
}

// Kardex godoc
// @Summary      Kardex de un producto (historial con saldo acumulado)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.KardexResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/kardex [get]
func (h *KardexHandler) Kardex(c *fiber.Ctx) error {
	out, err := h.uc.Kardex(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// KardexPDF godoc
// @Summary      Kardex de un producto en PDF
// @Tags         kardex
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/kardex/pdf [get]
func (h *KardexHandler) KardexPDF(c *fiber.Ctx) error {
	kardex, err := h.uc.Kardex(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	raw, err := h.pdf.GenerateKardexPDF(c.Context(), kardex)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="kardex-%s.pdf"`, kardex.ProductoCodigo))
	return c.Send(raw)
}

// Lotes godoc
// @Summary      Lotes de un producto (más antiguos primero)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.LoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/lotes [get]
func (h *KardexHandler) Lotes(c *fiber.Ctx) error {
	out, err := h.uc.ListLotes(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
