// Package costing implementa los métodos de valoración de salidas
// (FIFO, LIFO, promedio ponderado) sobre los lotes de un producto.
//
// El motor es puro: calcula el costo y el plan de consumo de lotes sin tocar
// estado. El libro de movimientos aplica el plan dentro de su transacción, de
// modo que el consumo solo se materializa si la operación completa confirma.
package costing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
)

// Metodo es la variante cerrada de métodos de valoración. Se resuelve una sola
// vez en el borde con ParseMetodo; nunca se re-interpreta el string por lote.
type Metodo string

const (
	FIFO     Metodo = "FIFO"
	LIFO     Metodo = "LIFO"
	Promedio Metodo = "PROMEDIO"
)

// ParseMetodo resuelve el método desde el request. Un valor desconocido o
// vacío degrada a PROMEDIO, que es el método por defecto del negocio.
func ParseMetodo(s string) Metodo {
	switch Metodo(s) {
	case FIFO:
		return FIFO
	case LIFO:
		return LIFO
	default:
		return Promedio
	}
}

// Consumo indica cuántas unidades tomar de un lote concreto.
type Consumo struct {
	LoteID   string
	Cantidad int64
}

// Valoracion es el resultado del costeo de una salida.
type Valoracion struct {
	// CostoUnitario es el costo promedio ponderado de las unidades realmente
	// consumidas, a 4 decimales (base de valoración, no importe persistible).
	CostoUnitario decimal.Decimal
	// CostoTotal es el costo de toda la salida, redondeado a 2 decimales.
	CostoTotal decimal.Decimal
	// Consumos es el plan de decremento por lote. Vacío para PROMEDIO: el
	// promedio usa los lotes solo para ponderar, no los agota.
	Consumos []Consumo
}

// ValorarSalida calcula el costo de sacar `cantidad` unidades del producto
// cuyos lotes disponibles son `lotes` (cualquier orden; se ordenan aquí).
//
// Si el producto no tiene lotes (productos cargados antes de llevar lotes),
// se usa `precioFallback` como base de costo, modo degradado heredado del
// sistema original. Si hay lotes pero no alcanzan, ErrLotesInsuficientes:
// con el invariante de stock vigente eso solo puede ser una deriva de datos.
func ValorarSalida(metodo Metodo, lotes []entity.Lote, cantidad int64, precioFallback decimal.Decimal) (Valoracion, error) {
	if cantidad <= 0 {
		return Valoracion{}, domain.ErrInvalidInput
	}

	disponibles := make([]entity.Lote, 0, len(lotes))
	for _, l := range lotes {
		if !l.Agotado() {
			disponibles = append(disponibles, l)
		}
	}

	if len(disponibles) == 0 {
		total := decimal.NewFromInt(cantidad).Mul(precioFallback)
		return Valoracion{
			CostoUnitario: precioFallback.Round(4),
			CostoTotal:    total.Round(2),
		}, nil
	}

	switch metodo {
	case FIFO:
		return consumir(disponibles, cantidad, true)
	case LIFO:
		return consumir(disponibles, cantidad, false)
	default:
		return promediar(disponibles, cantidad), nil
	}
}

// consumir recorre los lotes por fecha de ingreso (ascendente para FIFO,
// descendente para LIFO; empates por orden de inserción) y arma el plan de
// consumo hasta cubrir la cantidad pedida.
func consumir(lotes []entity.Lote, cantidad int64, ascendente bool) (Valoracion, error) {
	ordenados := make([]entity.Lote, len(lotes))
	copy(ordenados, lotes)
	sort.SliceStable(ordenados, func(i, j int) bool {
		if ascendente {
			return ordenados[i].FechaIngreso.Before(ordenados[j].FechaIngreso)
		}
		return ordenados[i].FechaIngreso.After(ordenados[j].FechaIngreso)
	})

	var (
		pendiente  = cantidad
		costoTotal = decimal.Zero
		consumos   []Consumo
	)
	for _, lote := range ordenados {
		if pendiente == 0 {
			break
		}
		tomar := lote.CantidadDisponible
		if tomar > pendiente {
			tomar = pendiente
		}
		costoTotal = costoTotal.Add(decimal.NewFromInt(tomar).Mul(lote.PrecioCompra))
		consumos = append(consumos, Consumo{LoteID: lote.ID, Cantidad: tomar})
		pendiente -= tomar
	}
	if pendiente > 0 {
		return Valoracion{}, domain.ErrLotesInsuficientes
	}

	return Valoracion{
		CostoUnitario: costoTotal.Div(decimal.NewFromInt(cantidad)).Round(4),
		CostoTotal:    costoTotal.Round(2),
		Consumos:      consumos,
	}, nil
}

// promediar calcula el costo promedio ponderado de todos los lotes con
// disponibilidad. No registra consumo por lote.
func promediar(lotes []entity.Lote, cantidad int64) Valoracion {
	var unidades int64
	valor := decimal.Zero
	for _, lote := range lotes {
		unidades += lote.CantidadDisponible
		valor = valor.Add(decimal.NewFromInt(lote.CantidadDisponible).Mul(lote.PrecioCompra))
	}
	promedio := valor.Div(decimal.NewFromInt(unidades))
	return Valoracion{
		CostoUnitario: promedio.Round(4),
		CostoTotal:    decimal.NewFromInt(cantidad).Mul(promedio).Round(2),
	}
}
