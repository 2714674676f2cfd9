package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tallersur/taller-api/internal/application/costing"
	"github.com/tallersur/taller-api/internal/application/dto"
	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
)

// SettingsHandler maneja las peticiones HTTP del almacén de parámetros de
// costeo.
type SettingsHandler struct {
	uc *costing.UseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *costing.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// ListParams godoc
// @Summary      Listar parámetros de costeo
// @Tags         settings
// @Produce      json
// @Success      200  {array}  dto.CostingParamDTO
// @Router       /api/settings/params [get]
func (h *SettingsHandler) ListParams(c *fiber.Ctx) error {
	params, err := h.uc.ListParams(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.CostingParamDTO, 0, len(params))
	for _, p := range params {
		out = append(out, dto.CostingParamDTO{
			Key:       p.Key,
			Type:      p.Type,
			NumValue:  p.NumValue,
			TextValue: p.TextValue,
			Label:     p.Label,
			Unit:      p.Unit,
			Group:     p.Group,
		})
	}
	return c.JSON(out)
}

// SetParam godoc
// @Summary      Crear o actualizar un parámetro de costeo
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CostingParamDTO  true  "key, type (number|text) y el valor correspondiente"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/params [put]
func (h *SettingsHandler) SetParam(c *fiber.Ctx) error {
	var in dto.CostingParamDTO
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	err := h.uc.SetParam(c.Context(), &entity.CostingParam{
		Key:       in.Key,
		Type:      in.Type,
		NumValue:  in.NumValue,
		TextValue: in.TextValue,
		Label:     in.Label,
		Unit:      in.Unit,
		Group:     in.Group,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"key": in.Key})
}

// ConvertCurrency godoc
// @Summary      Conversión masiva de moneda del almacén de parámetros
// @Description  Multiplica cada tarifa de categoría activa y cada parámetro
//
//	numérico por la tasa y voltea la bandera de moneda, todo en una
//	transacción.
//
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConvertCurrencyRequest  true  "from, to (ISO 4217), rate positiva"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/convert-currency [post]
func (h *SettingsHandler) ConvertCurrency(c *fiber.Ctx) error {
	var in dto.ConvertCurrencyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.ConvertCurrency(c.Context(), in.From, in.To, in.Rate); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "conversión inválida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"currency": in.To})
}
