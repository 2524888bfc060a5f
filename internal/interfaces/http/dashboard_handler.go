package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Aurea-api/internal/application/usecase"
)

// DashboardHandler expone el resumen del tablero operativo (protegido).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Resumen godoc
// @Summary      Resumen del tablero: equipos por estado, valor por sede, órdenes abiertas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResumenResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Resumen(c.UserContext())
	if err != nil {
		return manejarError(c, err)
	}
	return c.JSON(out)
}
