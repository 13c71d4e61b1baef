package inventory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
)

// Kardex reconstruye el historial de un producto con saldo acumulado,
// plegando el libro de movimientos en orden cronológico desde cero. Es una
// proyección pura de lectura: no toca producto, lotes ni movimientos, y debe
// poder rederivarse del historial en cualquier momento.
func (uc *MovimientosUseCase) Kardex(ctx context.Context, productoID string) (*dto.KardexResponse, error) {
	if productoID == "" {
		return nil, domain.ErrInvalidInput
	}
	prod, err := uc.productoRepo.GetByID(productoID)
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, domain.ErrNotFound
	}

	movs, err := uc.movRepo.ListByProductoAsc(productoID)
	if err != nil {
		return nil, err
	}

	resp := &dto.KardexResponse{
		ProductoID:     prod.ID,
		ProductoNombre: prod.Nombre,
		ProductoCodigo: prod.Codigo,
		Movimientos:    make([]dto.KardexItemResponse, 0, len(movs)),
	}

	var saldo int64
	for _, m := range movs {
		if m.Direccion == entity.DireccionEntrada {
			saldo += m.Cantidad
		} else {
			saldo -= m.Cantidad
		}
		resp.Movimientos = append(resp.Movimientos, dto.KardexItemResponse{
			MovimientoID:   m.ID,
			Tipo:           m.Tipo,
			Direccion:      m.Direccion,
			Cantidad:       m.Cantidad,
			PrecioUnitario: m.PrecioUnitario,
			CostoUnitario:  m.CostoUnitario,
			Subtotal:       m.Subtotal,
			IVA:            m.IVA,
			Total:          m.Total,
			Observacion:    m.Observacion,
			Fecha:          m.Fecha,
			SaldoAcumulado: saldo,
		})
	}
	resp.SaldoActual = saldo

	// El saldo reconstruido debe coincidir con el stock registrado; una
	// divergencia es un bug de consistencia, no una condición de negocio.
	if saldo != prod.Stock {
		log.Error().
			Str("alarma", "integridad").
			Str("producto_id", prod.ID).
			Int64("stock_registrado", prod.Stock).
			Int64("saldo_kardex", saldo).
			Msg("el kardex no cuadra con el stock registrado")
	}

	return resp, nil
}
