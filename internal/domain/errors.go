package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrStockInsuficiente  = errors.New("stock insuficiente")

	// ErrLotesInsuficientes indica que la suma de lotes disponibles no cubre la
	// cantidad solicitada. Si el stock del producto está bien mantenido esto no
	// puede ocurrir: es una alarma de integridad (lotes y stock desincronizados),
	// no una condición de negocio.
	ErrLotesInsuficientes = errors.New("lotes insuficientes: stock y lotes desincronizados")
)

// StockInsuficienteError transporta el detalle de una venta rechazada por falta
// de stock: cuánto hay y cuánto se pidió. Envuelve ErrStockInsuficiente para que
// errors.Is siga funcionando en los handlers.
type StockInsuficienteError struct {
	ProductoID     string
	StockActual    int64
	CantidadPedida int64
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %d, solicitado %d",
		e.ProductoID, e.StockActual, e.CantidadPedida)
}

func (e *StockInsuficienteError) Unwrap() error { return ErrStockInsuficiente }
