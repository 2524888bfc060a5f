package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Aurea-api/internal/application/dto"
	"github.com/jhoicas/Aurea-api/internal/application/usecase"
	"github.com/jhoicas/Aurea-api/internal/domain/entity"
)

// EquipmentHandler maneja las peticiones HTTP para equipos (protegido).
type EquipmentHandler struct {
	uc *usecase.EquipmentUseCase
}

// NewEquipmentHandler construye el handler.
func NewEquipmentHandler(uc *usecase.EquipmentUseCase) *EquipmentHandler {
	return &EquipmentHandler{uc: uc}
}

func actorDe(c *fiber.Ctx) entity.Actor {
	return entity.Actor{UserID: GetUserID(c), Nombre: GetNombre(c)}
}

// Create godoc
// @Summary      Registrar equipo biomédico
// @Tags         equipos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEquipoRequest  true  "Datos del equipo"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipos [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEquipoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), actorDe(c), in)
	if err != nil {
		return manejarError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener equipo por código IC
// @Tags         equipos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Código IC"
// @Success      200  {object}  dto.EquipoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipos/{id} [get]
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return manejarError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "equipo no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar equipos (máximo 50)
// @Tags         equipos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EquipoListResponse
// @Router       /api/equipos [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return manejarError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos administrativos del equipo
// @Description  El estado del sistema no se modifica por esta vía: solo el cierre de órdenes y la baja lo cambian.
// @Tags         equipos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Código IC"
// @Param        body  body  dto.UpdateEquipoRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.EquipoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/equipos/{id} [put]
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateEquipoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), actorDe(c), id, in)
	if err != nil {
		return manejarError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "equipo no encontrado"})
	}
	return c.JSON(out)
}

// Baja godoc
// @Summary      Dar de baja un equipo
// @Description  Baja lógica: el equipo pasa a BAJA y deja de admitir órdenes nuevas. No se elimina.
// @Tags         equipos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Código IC"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/equipos/{id}/baja [post]
func (h *EquipmentHandler) Baja(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Baja(c.UserContext(), actorDe(c), id); err != nil {
		return manejarError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
