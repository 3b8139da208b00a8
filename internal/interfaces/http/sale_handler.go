package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/checkout"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// SaleHandler maneja checkout y consulta de ventas.
type SaleHandler struct {
	checkoutUC *checkout.UseCase
	saleUC     *usecase.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(checkoutUC *checkout.UseCase, saleUC *usecase.SaleUseCase) *SaleHandler {
	return &SaleHandler{checkoutUC: checkoutUC, saleUC: saleUC}
}

// Checkout godoc
// @Summary      Convertir un carrito en una venta (todo o nada)
// @Description  Reserva stock de todas las líneas o de ninguna; totaliza con el precio de cada línea del carrito.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Líneas del carrito"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse  "carrito vacío o línea inválida"
// @Failure      404   {object}  dto.ErrorResponse  "producto inexistente (con productId)"
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente (con productId)"
// @Failure      503   {object}  dto.ErrorResponse  "venta no registrada, stock devuelto, reintentar"
// @Router       /api/sales [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.checkoutUC.Checkout(c.UserContext(), in.CartLines())
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSaleResponse(sale))
}

// List godoc
// @Summary      Listar ventas (la más reciente primero)
// @Tags         sales
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.saleUC.List(page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.saleUC.GetByID(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
