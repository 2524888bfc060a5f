package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Aurea-api/internal/application/dto"
	"github.com/jhoicas/Aurea-api/internal/application/report"
	"github.com/jhoicas/Aurea-api/internal/application/usecase"
)

// WorkOrderHandler maneja las peticiones HTTP para órdenes de trabajo (protegido).
type WorkOrderHandler struct {
	uc      *usecase.WorkOrderUseCase
	reporte *report.ReporteUseCase
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(uc *usecase.WorkOrderUseCase, reporte *report.ReporteUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc, reporte: reporte}
}

// Create godoc
// @Summary      Reportar incidente (crear orden de trabajo)
// @Tags         ordenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrdenRequest  true  "Datos del incidente"
// @Success      201   {object}  dto.OrdenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ordenes [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrdenRequest
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
// @Summary      Obtener orden de trabajo por ID
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id} [get]
func (h *WorkOrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return manejarError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(out)
}

// ListAbiertas godoc
// @Summary      Listar órdenes en ABIERTO (máximo 50, más recientes primero)
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrdenListResponse
// @Router       /api/ordenes/abiertas [get]
func (h *WorkOrderHandler) ListAbiertas(c *fiber.Ctx) error {
	out, err := h.uc.ListAbiertas(c.UserContext())
	if err != nil {
		return manejarError(c, err)
	}
	return c.JSON(out)
}

// ListByEquipo godoc
// @Summary      Listar órdenes de un equipo (máximo 50, más recientes primero)
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Código IC del equipo"
// @Success      200  {object}  dto.OrdenListResponse
// @Router       /api/equipos/{id}/ordenes [get]
func (h *WorkOrderHandler) ListByEquipo(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListByEquipo(c.UserContext(), id)
	if err != nil {
		return manejarError(c, err)
	}
	return c.JSON(out)
}

// Transicionar godoc
// @Summary      Transicionar el estado de una orden
// @Description  Único camino para cambiar el status. Al cerrar, el estado final se propaga al equipo; si esa propagación falla la respuesta lo indica con proyeccionPendiente.
// @Tags         ordenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.TransicionRequest  true  "Transición"
// @Success      200   {object}  dto.TransicionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/transicion [post]
func (h *WorkOrderHandler) Transicionar(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.TransicionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Transicionar(c.UserContext(), actorDe(c), id, in)
	if err != nil {
		return manejarError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar detalle de una orden
// @Description  Campos de ejecución y cierre no gobernados por la máquina de estados. El status no se toca por esta vía.
// @Tags         ordenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrdenRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OrdenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id} [put]
func (h *WorkOrderHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ActualizarDetalle(c.UserContext(), actorDe(c), id, in)
	if err != nil {
		return manejarError(c, err)
	}
	return c.JSON(out)
}

// Reporte godoc
// @Summary      Descargar informe de servicio (PDF) de una orden cerrada
// @Tags         ordenes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/reporte [get]
func (h *WorkOrderHandler) Reporte(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdf, err := h.reporte.GenerarPDF(c.UserContext(), id)
	if err != nil {
		return manejarError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="informe-servicio-`+id+`.pdf"`)
	return c.Send(pdf)
}
