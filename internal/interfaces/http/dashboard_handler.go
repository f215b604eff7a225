package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/chauhanravicr7-netizen/dockside-backend/internal/application/analytics"
)

// DashboardHandler resumen financiero e insights de inventario.
type DashboardHandler struct {
	dashboard *appanalytics.DashboardUseCase
	insights  *appanalytics.InsightsUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *appanalytics.DashboardUseCase, insights *appanalytics.InsightsUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, insights: insights}
}

// Financial godoc
// @Summary      Resumen financiero
// @Description  Ingresos (ventas entregadas), compras completadas, margen, inventario, cuentas por cobrar y por pagar.
// @Description  Sin year/month se consideran todos los periodos; month requiere year.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "Año (1970-9999)"
// @Param        month  query  int  false  "Mes (1-12)"
// @Success      200  {object}  dto.FinancialSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/financial [get]
func (h *DashboardHandler) Financial(c *fiber.Ctx) error {
	year, err := optionalInt(c, "year")
	if err != nil {
		return respondError(c, err)
	}
	month, err := optionalInt(c, "month")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.dashboard.FinancialSummary(c.UserContext(), GetCompanyID(c), year, month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Insights godoc
// @Summary      Insights de inventario
// @Description  Productos de lenta rotación (>60 días), stock muerto (>90 días) y bajo el mínimo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InsightsDTO
// @Router       /api/ai/insights [post]
func (h *DashboardHandler) Insights(c *fiber.Ctx) error {
	out, err := h.insights.Generate(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
