package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/inventory"
)

// MovementHandler ledger de movimientos de stock.
type MovementHandler struct {
	ledger *inventory.StockLedger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *inventory.StockLedger) *MovementHandler {
	return &MovementHandler{ledger: ledger}
}

// Create godoc
// @Summary      Registrar movimiento manual de stock
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.CreateMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.CreateMovement(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        productId      query  string  false  "Producto"
// @Param        movementType   query  string  false  "INBOUND | OUTBOUND | ADJUSTMENT_IN | ADJUSTMENT_OUT"
// @Param        referenceType  query  string  false  "PURCHASE | SALE | MANUAL | ..."
// @Param        referenceId    query  string  false  "Documento de origen"
// @Param        limit          query  int     false  "Límite"  default(50)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stock-movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.ListMovements(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
