package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntradaDetalleRequest línea de una entrada.
type EntradaDetalleRequest struct {
	ProductoID   string          `json:"producto_id"`
	Cantidad     int64           `json:"cantidad"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
}

// RegistrarEntradaRequest body para POST /api/entradas.
type RegistrarEntradaRequest struct {
	ProveedorID   string                  `json:"proveedor_id"`
	Observaciones string                  `json:"observaciones"`
	Detalles      []EntradaDetalleRequest `json:"detalles"`
}

// SalidaDetalleRequest línea de una salida. DescuentoID es opcional; si el
// descuento no existe o venció se vende a precio pleno.
type SalidaDetalleRequest struct {
	ProductoID  string `json:"producto_id"`
	Cantidad    int64  `json:"cantidad"`
	DescuentoID string `json:"descuento_id,omitempty"`
}

// RegistrarSalidaRequest body para POST /api/salidas.
type RegistrarSalidaRequest struct {
	MetodoValoracion string                 `json:"metodo_valoracion"` // FIFO | LIFO | PROMEDIO
	Observaciones    string                 `json:"observaciones"`
	Detalles         []SalidaDetalleRequest `json:"detalles"`
}

// RegistrarAjusteRequest body para POST /api/movimientos/ajuste. CantidadReal
// es la cantidad contada físicamente.
type RegistrarAjusteRequest struct {
	ProductoID   string `json:"producto_id"`
	CantidadReal int64  `json:"cantidad_real"`
	Observacion  string `json:"observacion"`
}

// LineaResponse desglose por línea dentro de una respuesta de movimiento.
type LineaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario,omitempty"`
	Descuento      decimal.Decimal `json:"descuento"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	IVA            decimal.Decimal `json:"iva"`
	Total          decimal.Decimal `json:"total"`
	NuevoStock     int64           `json:"nuevo_stock"`
}

// MovimientoResponse resultado de registrar una entrada o salida.
type MovimientoResponse struct {
	ID       string          `json:"id"`
	Numero   string          `json:"numero"`
	Subtotal decimal.Decimal `json:"subtotal"`
	IVA      decimal.Decimal `json:"iva"`
	Total    decimal.Decimal `json:"total"`
	Detalles []LineaResponse `json:"detalles"`
}

// AjusteResponse resultado de un ajuste de inventario.
type AjusteResponse struct {
	MovimientoID  string `json:"movimiento_id,omitempty"` // vacío si no hubo diferencia
	Numero        string `json:"numero,omitempty"`
	StockAnterior int64  `json:"stock_anterior"`
	StockNuevo    int64  `json:"stock_nuevo"`
	Diferencia    int64  `json:"diferencia"`
}

// KardexItemResponse fila del kardex con saldo acumulado.
type KardexItemResponse struct {
	MovimientoID   string          `json:"movimiento_id"`
	Tipo           string          `json:"tipo"`
	Direccion      string          `json:"direccion"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	IVA            decimal.Decimal `json:"iva"`
	Total          decimal.Decimal `json:"total"`
	Observacion    string          `json:"observacion"`
	Fecha          time.Time       `json:"fecha"`
	SaldoAcumulado int64           `json:"saldo_acumulado"`
}

// KardexResponse historial completo de un producto con saldo final.
type KardexResponse struct {
	ProductoID     string               `json:"producto_id"`
	ProductoNombre string               `json:"producto_nombre"`
	ProductoCodigo string               `json:"producto_codigo"`
	Movimientos    []KardexItemResponse `json:"movimientos"`
	SaldoActual    int64                `json:"saldo_actual"`
}

// ReporteTotales agregados del reporte de movimientos.
type ReporteTotales struct {
	TotalEntradas    decimal.Decimal `json:"total_entradas"`
	TotalSalidas     decimal.Decimal `json:"total_salidas"`
	CantidadEntradas int64           `json:"cantidad_entradas"`
	CantidadSalidas  int64           `json:"cantidad_salidas"`
	IVATotal         decimal.Decimal `json:"iva_total"`
}

// MovimientoItemResponse una fila del libro de movimientos.
type MovimientoItemResponse struct {
	ID               string          `json:"id"`
	Numero           string          `json:"numero,omitempty"`
	ProductoID       string          `json:"producto_id"`
	Tipo             string          `json:"tipo"`
	Direccion        string          `json:"direccion"`
	Cantidad         int64           `json:"cantidad"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
	CostoUnitario    decimal.Decimal `json:"costo_unitario"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	IVA              decimal.Decimal `json:"iva"`
	Total            decimal.Decimal `json:"total"`
	MetodoValoracion string          `json:"metodo_valoracion,omitempty"`
	DescuentoID      string          `json:"descuento_id,omitempty"`
	UsuarioID        string          `json:"usuario_id"`
	Observacion      string          `json:"observacion"`
	Fecha            time.Time       `json:"fecha"`
}

// ReporteResponse movimientos filtrados más sus agregados.
type ReporteResponse struct {
	Movimientos []MovimientoItemResponse `json:"movimientos"`
	Totales     ReporteTotales           `json:"totales"`
}

// LoteResponse un lote de compra con su disponibilidad.
type LoteResponse struct {
	ID                 string          `json:"id"`
	ProductoID         string          `json:"producto_id"`
	EntradaDetalleID   string          `json:"entrada_detalle_id,omitempty"`
	PrecioCompra       decimal.Decimal `json:"precio_compra"`
	CantidadInicial    int64           `json:"cantidad_inicial"`
	CantidadDisponible int64           `json:"cantidad_disponible"`
	FechaIngreso       time.Time       `json:"fecha_ingreso"`
}

// EntradaDetalleResponse línea persistida de una entrada.
type EntradaDetalleResponse struct {
	ID           string          `json:"id"`
	ProductoID   string          `json:"producto_id"`
	Cantidad     int64           `json:"cantidad"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// EntradaResponse encabezado de entrada con sus detalles.
type EntradaResponse struct {
	ID            string                   `json:"id"`
	Numero        string                   `json:"numero"`
	ProveedorID   string                   `json:"proveedor_id"`
	UsuarioID     string                   `json:"usuario_id"`
	Subtotal      decimal.Decimal          `json:"subtotal"`
	IVA           decimal.Decimal          `json:"iva"`
	Total         decimal.Decimal          `json:"total"`
	Observaciones string                   `json:"observaciones"`
	Fecha         time.Time                `json:"fecha"`
	Detalles      []EntradaDetalleResponse `json:"detalles,omitempty"`
}

// SalidaDetalleResponse línea persistida de una salida, con precio cobrado y
// costo de valoración por separado.
type SalidaDetalleResponse struct {
	ID            string          `json:"id"`
	ProductoID    string          `json:"producto_id"`
	DescuentoID   string          `json:"descuento_id,omitempty"`
	Cantidad      int64           `json:"cantidad"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Descuento     decimal.Decimal `json:"descuento"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	IVA           decimal.Decimal `json:"iva"`
	Total         decimal.Decimal `json:"total"`
}

// SalidaResponse encabezado de salida con sus detalles.
type SalidaResponse struct {
	ID               string                  `json:"id"`
	Numero           string                  `json:"numero"`
	UsuarioID        string                  `json:"usuario_id"`
	MetodoValoracion string                  `json:"metodo_valoracion"`
	Subtotal         decimal.Decimal         `json:"subtotal"`
	IVA              decimal.Decimal         `json:"iva"`
	Total            decimal.Decimal         `json:"total"`
	Observaciones    string                  `json:"observaciones"`
	Fecha            time.Time               `json:"fecha"`
	Detalles         []SalidaDetalleResponse `json:"detalles,omitempty"`
}
