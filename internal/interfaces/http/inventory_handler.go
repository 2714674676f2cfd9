package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tallersur/taller-api/internal/application/dto"
	"github.com/tallersur/taller-api/internal/application/ledger"
	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
)

// validate valida los DTOs de entrada (tags `validate`).
var validate = validator.New()

// InventoryHandler maneja las peticiones HTTP del libro de movimientos y el
// motor de stock/valoración.
type InventoryHandler struct {
	uc            *ledger.UseCase
	wacSampleSize int
}

// NewInventoryHandler construye el handler. wacSampleSize es la ventana del
// promedio ponderado en el re-baseline.
func NewInventoryHandler(uc *ledger.UseCase, wacSampleSize int) *InventoryHandler {
	return &InventoryHandler{uc: uc, wacSampleSize: wacSampleSize}
}

// AppendMovement godoc
// @Summary      Asentar movimiento de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AppendMovementRequest  true  "sku, kind, quantity (con signo), unit_cost, ref_kind/ref_id opcionales"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) AppendMovement(c *fiber.Ctx) error {
	var in dto.AppendMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	ref := entity.NoRef()
	if in.RefKind != "" {
		ref = entity.DocumentRef{Kind: entity.RefKind(in.RefKind), ID: in.RefID}
	}

	entry, err := h.uc.AppendMovement(c.Context(), ledger.AppendMovementInput{
		SKU:      in.SKU,
		Kind:     in.Kind,
		Quantity: in.Quantity,
		UnitCost: in.UnitCost,
		Ref:      ref,
		Note:     in.Note,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrUnknownSKU) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_SKU", Message: "SKU no existe en el catálogo"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "asiento duplicado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(movementResponse(entry))
}

// GetStockAll godoc
// @Summary      Stock derivado de todos los SKUs con movimientos
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.StockResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStockAll(c *fiber.Ctx) error {
	stocks, err := h.uc.GetStockAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockResponse, 0, len(stocks))
	for sku, qty := range stocks {
		out = append(out, dto.StockResponse{SKU: sku, Stock: qty})
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Stock derivado de un SKU
// @Tags         inventory
// @Produce      json
// @Param        sku  path  string  true  "código del producto"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/inventory/stock/{sku} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	sku := c.Params("sku")
	stock, err := h.uc.GetStock(c.Context(), sku)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StockResponse{SKU: sku, Stock: stock})
}

// GetReferenceCost godoc
// @Summary      Costo de referencia vigente de un SKU
// @Tags         inventory
// @Produce      json
// @Param        sku  path  string  true  "código del producto"
// @Success      200  {object}  dto.ReferenceCostResponse
// @Router       /api/inventory/reference-cost/{sku} [get]
func (h *InventoryHandler) GetReferenceCost(c *fiber.Ctx) error {
	sku := c.Params("sku")
	cost, err := h.uc.GetReferenceCost(c.Context(), sku)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ReferenceCostResponse{SKU: sku, Cost: cost})
}

// Rebaseline godoc
// @Summary      Re-baseline de costos de referencia por promedio ponderado
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.RebaselineResponse
// @Router       /api/inventory/rebaseline [post]
func (h *InventoryHandler) Rebaseline(c *fiber.Ctx) error {
	updated, err := h.uc.RebaselineReferenceCosts(c.Context(), h.wacSampleSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.RebaselineResponse{UpdatedSKUs: updated})
}

func movementResponse(entry *entity.LedgerEntry) dto.MovementResponse {
	return dto.MovementResponse{
		ID:       entry.ID,
		SKU:      entry.SKU,
		Kind:     entry.Kind,
		Quantity: entry.Quantity,
		UnitCost: entry.UnitCost,
		RefKind:  string(entry.Ref.Kind),
		RefID:    entry.Ref.ID,
		Note:     entry.Note,
		Date:     entry.Date.Format("2006-01-02T15:04:05Z07:00"),
	}
}
