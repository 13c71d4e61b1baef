package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/application/inventory"
	"github.com/jvivanco/micromercado-api/internal/domain"
)

// MovimientoHandler maneja las operaciones del libro de movimientos: entradas,
// salidas, ajustes y reportes (protegido).
type MovimientoHandler struct {
	uc *inventory.MovimientosUseCase
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(uc *inventory.MovimientosUseCase) *MovimientoHandler {
	return &MovimientoHandler{uc: uc}
}

// movimientoError mapea los errores del libro a códigos HTTP. El rechazo por
// stock insuficiente viaja con detalle estructurado para que el punto de venta
// pueda mostrar cuánto queda.
func movimientoError(c *fiber.Ctx, err error) error {
	var stockErr *domain.StockInsuficienteError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "STOCK_INSUFICIENTE",
			Message: stockErr.Error(),
			Detail: fiber.Map{
				"producto_id":     stockErr.ProductoID,
				"stock_actual":    stockErr.StockActual,
				"cantidad_pedida": stockErr.CantidadPedida,
			},
		})
	}
	if errors.Is(err, domain.ErrStockInsuficiente) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INSUFICIENTE", Message: "stock insuficiente"})
	}
	if errors.Is(err, domain.ErrLotesInsuficientes) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOTES_INSUFICIENTES", Message: "lotes y stock desincronizados; revise el inventario"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// RegistrarEntrada godoc
// @Summary      Registrar entrada de mercadería (compra)
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarEntradaRequest  true  "Líneas de la entrada"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/entradas [post]
func (h *MovimientoHandler) RegistrarEntrada(c *fiber.Ctx) error {
	var in dto.RegistrarEntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegistrarEntrada(c.Context(), GetUserID(c), in)
	if err != nil {
		return movimientoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegistrarSalida godoc
// @Summary      Registrar salida de mercadería (venta)
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarSalidaRequest  true  "Líneas de la salida y método de valoración"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/salidas [post]
func (h *MovimientoHandler) RegistrarSalida(c *fiber.Ctx) error {
	var in dto.RegistrarSalidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegistrarSalida(c.Context(), GetUserID(c), in)
	if err != nil {
		return movimientoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegistrarAjuste godoc
// @Summary      Registrar ajuste de inventario por conteo físico
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarAjusteRequest  true  "Producto y cantidad contada"
// @Success      200   {object}  dto.AjusteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movimientos/ajuste [post]
func (h *MovimientoHandler) RegistrarAjuste(c *fiber.Ctx) error {
	var in dto.RegistrarAjusteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegistrarAjuste(c.Context(), GetUserID(c), in)
	if err != nil {
		return movimientoError(c, err)
	}
	return c.JSON(out)
}

// Reporte godoc
// @Summary      Reporte de movimientos por rango de fechas y tipo
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "Fecha inicial (YYYY-MM-DD o RFC3339)"
// @Param        hasta  query  string  false  "Fecha final (YYYY-MM-DD o RFC3339)"
// @Param        tipo   query  string  false  "ENTRADA | SALIDA | AJUSTE"
// @Success      200    {object}  dto.ReporteResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *MovimientoHandler) Reporte(c *fiber.Ctx) error {
	desde, err := parseFecha(c.Query("desde"), false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde: formato de fecha inválido"})
	}
	hasta, err := parseFecha(c.Query("hasta"), true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta: formato de fecha inválido"})
	}
	out, err := h.uc.Reporte(c.Context(), desde, hasta, c.Query("tipo"))
	if err != nil {
		return movimientoError(c, err)
	}
	return c.JSON(out)
}

// Recientes godoc
// @Summary      Últimos movimientos del libro
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad máxima"  default(100)
// @Success      200    {array}  dto.MovimientoItemResponse
// @Router       /api/movimientos/recientes [get]
func (h *MovimientoHandler) Recientes(c *fiber.Ctx) error {
	out, err := h.uc.MovimientosRecientes(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return movimientoError(c, err)
	}
	return c.JSON(out)
}

// GetEntrada godoc
// @Summary      Obtener una entrada con sus detalles
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.EntradaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entradas/{id} [get]
func (h *MovimientoHandler) GetEntrada(c *fiber.Ctx) error {
	out, err := h.uc.GetEntrada(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
		}
		return movimientoError(c, err)
	}
	return c.JSON(out)
}

// ListEntradas godoc
// @Summary      Listar entradas (más recientes primero)
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.EntradaResponse
// @Router       /api/entradas [get]
func (h *MovimientoHandler) ListEntradas(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.ListEntradas(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return movimientoError(c, err)
	}
	return c.JSON(out)
}

// GetSalida godoc
// @Summary      Obtener una salida con sus detalles
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.SalidaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/salidas/{id} [get]
func (h *MovimientoHandler) GetSalida(c *fiber.Ctx) error {
	out, err := h.uc.GetSalida(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "salida no encontrada"})
		}
		return movimientoError(c, err)
	}
	return c.JSON(out)
}

// ListSalidas godoc
// @Summary      Listar salidas (más recientes primero)
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.SalidaResponse
// @Router       /api/salidas [get]
func (h *MovimientoHandler) ListSalidas(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.ListSalidas(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return movimientoError(c, err)
	}
	return c.JSON(out)
}

// parseFecha acepta fecha corta (YYYY-MM-DD) o RFC3339. Para el extremo "hasta"
// la fecha corta se extiende al fin del día, así el rango es inclusivo.
func parseFecha(s string, finDeDia bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if finDeDia {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
