package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tallersur/taller-api/internal/application/dto"
	"github.com/tallersur/taller-api/internal/application/purchasing"
	"github.com/tallersur/taller-api/internal/domain"
	domainpurch "github.com/tallersur/taller-api/internal/domain/purchasing"
)

// PurchasingHandler maneja las peticiones HTTP de compras: cobertura de
// solicitudes, recepción de órdenes y documento imprimible.
type PurchasingHandler struct {
	uc *purchasing.UseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(uc *purchasing.UseCase) *PurchasingHandler {
	return &PurchasingHandler{uc: uc}
}

// GetCoverage godoc
// @Summary      Cobertura derivada de una solicitud de compra
// @Tags         purchasing
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestCoverageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/coverage [get]
func (h *PurchasingHandler) GetCoverage(c *fiber.Ctx) error {
	coverage, err := h.uc.GetRequestLineCoverage(c.Context(), c.Params("id"))
	if err != nil {
		return purchasingError(c, err)
	}
	return c.JSON(coverageResponse(coverage))
}

// ApproveRequest godoc
// @Summary      Aprobar una solicitud de compra
// @Tags         purchasing
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/approve [post]
func (h *PurchasingHandler) ApproveRequest(c *fiber.Ctx) error {
	if err := h.uc.ApproveRequest(c.Context(), c.Params("id")); err != nil {
		return purchasingError(c, err)
	}
	return c.JSON(fiber.Map{"status": "APPROVED"})
}

// RejectRequest godoc
// @Summary      Rechazar una solicitud de compra
// @Tags         purchasing
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/reject [post]
func (h *PurchasingHandler) RejectRequest(c *fiber.Ctx) error {
	if err := h.uc.RejectRequest(c.Context(), c.Params("id")); err != nil {
		return purchasingError(c, err)
	}
	return c.JSON(fiber.Map{"status": "REJECTED"})
}

// GetReceipt godoc
// @Summary      Estado de recepción derivado de una orden de compra
// @Tags         purchasing
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receipt [get]
func (h *PurchasingHandler) GetReceipt(c *fiber.Ctx) error {
	receipt, err := h.uc.GetOrderLineReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return purchasingError(c, err)
	}
	return c.JSON(receiptResponse(receipt))
}

// IssueOrder godoc
// @Summary      Emitir una orden de compra al proveedor
// @Tags         purchasing
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/issue [post]
func (h *PurchasingHandler) IssueOrder(c *fiber.Ctx) error {
	if err := h.uc.IssueOrder(c.Context(), c.Params("id")); err != nil {
		return purchasingError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ISSUED"})
}

// ReceiveOrder godoc
// @Summary      Registrar una recepción física contra la orden
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ReceiveOrderRequest  true  "líneas recibidas"
// @Success      200   {object}  dto.OrderReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchasingHandler) ReceiveOrder(c *fiber.Ctx) error {
	var in dto.ReceiveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	lines := make([]purchasing.ReceiptLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, purchasing.ReceiptLineInput{
			SKU:      l.SKU,
			Cantidad: l.Cantidad,
			UnitCost: l.UnitCost,
			Note:     l.Note,
		})
	}

	receipt, err := h.uc.ReceiveOrder(c.Context(), c.Params("id"), lines)
	if err != nil {
		return purchasingError(c, err)
	}
	return c.JSON(receiptResponse(receipt))
}

// OrderPDF godoc
// @Summary      Documento PDF de la orden con su estado de recepción
// @Tags         purchasing
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *PurchasingHandler) OrderPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.OrderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return purchasingError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="orden-compra.pdf"`)
	return c.Send(pdfBytes)
}

// purchasingError mapea los errores de dominio de compras a códigos HTTP.
func purchasingError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud u orden no encontrada"})
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado inválida"})
	}
	if errors.Is(err, domain.ErrInconsistentState) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INCONSISTENT", Message: "datos de compras inconsistentes"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func coverageResponse(cov domainpurch.RequestCoverage) dto.RequestCoverageResponse {
	out := dto.RequestCoverageResponse{
		RequestID:    cov.RequestID,
		Status:       cov.Status,
		OrderedTotal: cov.OrderedTotal,
		PendingTotal: cov.PendingTotal,
	}
	for _, l := range cov.Lines {
		out.Lines = append(out.Lines, dto.LineCoverageDTO{
			LineID:     l.LineID,
			SKU:        l.SKU,
			Solicitado: l.Solicitado,
			Cubierto:   l.Cubierto,
			Pendiente:  l.Pendiente,
		})
	}
	return out
}

func receiptResponse(receipt domainpurch.OrderReceipt) dto.OrderReceiptResponse {
	out := dto.OrderReceiptResponse{
		OrderID:      receipt.OrderID,
		Status:       receipt.Status,
		PendingTotal: receipt.PendingTotal,
		Fulfilled:    receipt.Fulfilled(),
	}
	for _, l := range receipt.Lines {
		out.Lines = append(out.Lines, dto.LineReceiptDTO{
			LineID:    l.LineID,
			SKU:       l.SKU,
			Pedido:    l.Pedido,
			Recibido:  l.Recibido,
			Pendiente: l.Pendiente,
			Importe:   l.Importe,
		})
	}
	return out
}
