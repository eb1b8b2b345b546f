package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/application/usecase"
)

// MachineHandler maneja las peticiones HTTP para máquinas NPWT.
type MachineHandler struct {
	uc *usecase.MachineUseCase
}

// NewMachineHandler construye el handler.
func NewMachineHandler(uc *usecase.MachineUseCase) *MachineHandler {
	return &MachineHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar máquina
// @Tags         machines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMachineRequest  true  "Nombre y serial"
// @Success      201   {object}  dto.MachineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/machines [post]
func (h *MachineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMachineRequest
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
// @Summary      Obtener máquina por ID (con estado de uso derivado)
// @Tags         machines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la máquina"
// @Success      200  {object}  dto.MachineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/machines/{id} [get]
func (h *MachineHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "máquina no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar máquina
// @Description  No permite sacar de servicio una máquina con procedimiento activo (409).
// @Tags         machines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la máquina"
// @Param        body  body  dto.UpdateMachineRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.MachineResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/machines/{id} [put]
func (h *MachineHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateMachineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(actorFrom(c), id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar máquinas
// @Tags         machines
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.MachineResponse
// @Router       /api/machines [get]
func (h *MachineHandler) List(c *fiber.Ctx) error {
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
