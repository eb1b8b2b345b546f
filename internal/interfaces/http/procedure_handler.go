package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/application/inventory"
	"github.com/clinivac/npwt-inventario/internal/application/procedures"
)

// ProcedureHandler maneja el ciclo de vida de procedimientos y el consumo de
// insumos contra un procedimiento activo.
type ProcedureHandler struct {
	uc    *procedures.UseCase
	invUC *inventory.UseCase
}

// NewProcedureHandler construye el handler.
func NewProcedureHandler(uc *procedures.UseCase, invUC *inventory.UseCase) *ProcedureHandler {
	return &ProcedureHandler{uc: uc, invUC: invUC}
}

// Create godoc
// @Summary      Instalar procedimiento NPWT
// @Tags         procedures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProcedureRequest  true  "Paciente, máquina, cirujano"
// @Success      201   {object}  dto.ProcedureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/procedures [post]
func (h *ProcedureHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProcedureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(actorFrom(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener procedimiento por ID
// @Tags         procedures
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del procedimiento"
// @Success      200  {object}  dto.ProcedureResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procedures/{id} [get]
func (h *ProcedureHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "procedimiento no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar procedimientos
// @Tags         procedures
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.ProcedureResponse
// @Router       /api/procedures [get]
func (h *ProcedureHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Consume godoc
// @Summary      Registrar consumo de insumos en un procedimiento activo
// @Description  Batch todo-o-nada: un faltante de stock bloquea el conjunto completo sin efecto parcial.
// @Tags         procedures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del procedimiento"
// @Param        body  body  dto.ConsumeRequest  true  "Insumos y cantidades"
// @Success      204   "Consumo registrado"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/procedures/{id}/products [post]
func (h *ProcedureHandler) Consume(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.invUC.ConsumeForProcedure(c.Context(), actorFrom(c), id, in); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListProducts godoc
// @Summary      Listar consumo registrado de un procedimiento
// @Tags         procedures
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del procedimiento"
// @Success      200  {array}  dto.ProcedureProductResponse
// @Router       /api/procedures/{id}/products [get]
func (h *ProcedureHandler) ListProducts(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListProducts(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar procedimiento
// @Description  Procedimiento → completed y su paciente → completed. Un fallo en el segundo paso devuelve 500 PARTIAL_FAILURE con el procedimiento ya cerrado.
// @Tags         procedures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del procedimiento"
// @Param        body  body  dto.CloseProcedureRequest  false  "Hora de término opcional"
// @Success      204   "Procedimiento cerrado"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/procedures/{id}/close [post]
func (h *ProcedureHandler) Close(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.CloseProcedureRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	if err := h.uc.Close(actorFrom(c), id, in); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancel godoc
// @Summary      Cancelar procedimiento
// @Tags         procedures
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del procedimiento"
// @Success      204  "Procedimiento cancelado"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/procedures/{id}/cancel [post]
func (h *ProcedureHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Cancel(actorFrom(c), id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
