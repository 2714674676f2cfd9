package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tallersur/taller-api/internal/application/dto"
	"github.com/tallersur/taller-api/internal/application/workorder"
	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
)

// WorkOrderHandler maneja las peticiones HTTP de costeo de órdenes de trabajo.
type WorkOrderHandler struct {
	uc *workorder.UseCase
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(uc *workorder.UseCase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc}
}

// RecomputeCosts godoc
// @Summary      Recalcular el snapshot de costos de una OT
// @Tags         work-orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden de trabajo"
// @Success      200  {object}  dto.CostSnapshotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/recompute-costs [post]
func (h *WorkOrderHandler) RecomputeCosts(c *fiber.Ctx) error {
	snap, err := h.uc.RecomputeCosts(c.Context(), c.Params("id"))
	if err != nil {
		return workOrderError(c, err)
	}
	return c.JSON(snapshotResponse(snap))
}

// ChangeStatus godoc
// @Summary      Cambiar el estado de una OT
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden de trabajo"
// @Param        body  body  dto.ChangeStatusRequest  true  "estado destino"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/status [put]
func (h *WorkOrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.ChangeStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		return workOrderError(c, err)
	}
	return c.JSON(fiber.Map{"status": in.Status})
}

// IssueMaterial godoc
// @Summary      Emitir material de una OT (salida al libro + recálculo)
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden de trabajo"
// @Param        body  body  dto.IssueMaterialRequest  true  "material_line_id, cantidad positiva"
// @Success      200   {object}  dto.CostSnapshotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/issues [post]
func (h *WorkOrderHandler) IssueMaterial(c *fiber.Ctx) error {
	var in dto.IssueMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	snap, err := h.uc.IssueMaterial(c.Context(), workorder.IssueMaterialInput{
		WorkOrderID:    c.Params("id"),
		MaterialLineID: in.MaterialLineID,
		Qty:            in.Cantidad,
		Note:           in.Note,
	})
	if err != nil {
		return workOrderError(c, err)
	}
	return c.JSON(snapshotResponse(snap))
}

// LogProduction godoc
// @Summary      Registrar un parte de producción (horas sobre la OT)
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden de trabajo"
// @Param        body  body  dto.LogProductionRequest  true  "user_id, horas, machine_id y date opcionales"
// @Success      200   {object}  dto.CostSnapshotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/production-logs [post]
func (h *WorkOrderHandler) LogProduction(c *fiber.Ctx) error {
	var in dto.LogProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	date := time.Now()
	if in.Date != "" {
		parsed, err := time.Parse(time.RFC3339, in.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser RFC 3339"})
		}
		date = parsed
	}

	snap, err := h.uc.LogProduction(c.Context(), workorder.LogProductionInput{
		WorkOrderID: c.Params("id"),
		UserID:      in.UserID,
		MachineID:   in.MachineID,
		Horas:       in.Horas,
		Date:        date,
	})
	if err != nil {
		return workOrderError(c, err)
	}
	return c.JSON(snapshotResponse(snap))
}

// CompletePieces godoc
// @Summary      Fijar la cantidad hecha de una línea de piezas
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden de trabajo"
// @Param        body  body  dto.CompletePiecesRequest  true  "piece_line_id, qty_hecha"
// @Success      200   {object}  dto.CostSnapshotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/pieces [put]
func (h *WorkOrderHandler) CompletePieces(c *fiber.Ctx) error {
	var in dto.CompletePiecesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	snap, err := h.uc.CompletePieces(c.Context(), c.Params("id"), in.PieceLineID, in.QtyHecha)
	if err != nil {
		return workOrderError(c, err)
	}
	return c.JSON(snapshotResponse(snap))
}

// workOrderError mapea los errores de dominio de OT a códigos HTTP.
func workOrderError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden de trabajo o línea no encontrada"})
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado inválida"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func snapshotResponse(snap entity.CostSnapshot) dto.CostSnapshotResponse {
	return dto.CostSnapshotResponse{
		Materials: snap.Materials,
		Labor:     snap.Labor,
		Overhead:  snap.Overhead,
		Total:     snap.Total,
	}
}
