package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/application/usecase"
)

// PatientHandler maneja las peticiones HTTP para pacientes.
type PatientHandler struct {
	uc *usecase.PatientUseCase
}

// NewPatientHandler construye el handler.
func NewPatientHandler(uc *usecase.PatientUseCase) *PatientHandler {
	return &PatientHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar paciente
// @Tags         patients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePatientRequest  true  "Datos del paciente"
// @Success      201   {object}  dto.PatientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/patients [post]
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePatientRequest
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
// @Summary      Obtener paciente por ID
// @Tags         patients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del paciente"
// @Success      200  {object}  dto.PatientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patients/{id} [get]
func (h *PatientHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos demográficos del paciente
// @Tags         patients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del paciente"
// @Param        body  body  dto.UpdatePatientRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PatientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/patients/{id} [put]
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdatePatientRequest
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
// @Summary      Listar pacientes
// @Tags         patients
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.PatientResponse
// @Router       /api/patients [get]
func (h *PatientHandler) List(c *fiber.Ctx) error {
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
