package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/costing"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/money"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

// RegistrarSalida procesa una venta: encabezado más líneas en una transacción.
// Por cada línea, en orden de envío: bloquea la fila del producto, valida
// stock bajo ese bloqueo, costea con el método del encabezado, consume lotes
// (FIFO/LIFO), registra el movimiento SALIDA con IVA y resta el stock.
// Cualquier falla en cualquier línea aborta la salida completa.
func (uc *MovimientosUseCase) RegistrarSalida(ctx context.Context, usuarioID string, in dto.RegistrarSalidaRequest) (*dto.MovimientoResponse, error) {
	if usuarioID == "" || len(in.Detalles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, d := range in.Detalles {
		if d.ProductoID == "" || d.Cantidad <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	// El método se resuelve una sola vez; desconocido degrada a PROMEDIO.
	metodo := costing.ParseMetodo(in.MetodoValoracion)

	now := time.Now()
	resp := &dto.MovimientoResponse{ID: uuid.New().String()}

	err := uc.txRunner.Run(ctx, func(
		productoRepo repository.ProductoRepository,
		loteRepo repository.LoteRepository,
		movRepo repository.MovimientoRepository,
		_ repository.EntradaRepository,
		salidaRepo repository.SalidaRepository,
		secuenciaRepo repository.SecuenciaRepository,
	) error {
		seq, err := secuenciaRepo.Next(repository.SecuenciaSalidas)
		if err != nil {
			return err
		}
		resp.Numero = fmt.Sprintf("SAL-%06d", seq)

		salida := &entity.Salida{
			ID:               resp.ID,
			Numero:           resp.Numero,
			UsuarioID:        usuarioID,
			MetodoValoracion: string(metodo),
			Observaciones:    in.Observaciones,
			Fecha:            now,
		}
		if err := salidaRepo.Create(salida); err != nil {
			return err
		}

		subtotal, iva, total := decimal.Zero, decimal.Zero, decimal.Zero
		for _, d := range in.Detalles {
			prod, err := productoRepo.GetForUpdate(d.ProductoID)
			if err != nil {
				return err
			}
			if prod == nil || !prod.Activo {
				return domain.ErrNotFound
			}

			// Validación de stock bajo el bloqueo de fila: dos ventas
			// concurrentes del mismo producto se serializan aquí y la segunda
			// ve el stock ya descontado.
			if prod.Stock < d.Cantidad {
				return &domain.StockInsuficienteError{
					ProductoID:     prod.ID,
					StockActual:    prod.Stock,
					CantidadPedida: d.Cantidad,
				}
			}

			lotes, err := loteRepo.ListDisponibles(prod.ID)
			if err != nil {
				return err
			}
			val, err := costing.ValorarSalida(metodo, lotes, d.Cantidad, prod.PrecioVenta)
			if err != nil {
				if errors.Is(err, domain.ErrLotesInsuficientes) {
					// Con el invariante de stock vigente esto es deriva de
					// datos entre lotes y stock, no una condición de negocio.
					log.Error().
						Str("alarma", "integridad").
						Str("producto_id", prod.ID).
						Int64("stock", prod.Stock).
						Int64("solicitado", d.Cantidad).
						Msg("lotes insuficientes con stock suficiente: lotes y stock desincronizados")
				}
				return err
			}

			// El cliente paga el precio de venta; el costo del motor es solo
			// base de valoración. Son importes deliberadamente distintos.
			descuento := uc.porcentajeDescuento(d.DescuentoID, prod, now)
			subLinea := money.Linea(d.Cantidad, prod.PrecioVenta, descuento)
			desglose := money.ApplyIVA(subLinea, uc.ivaRate)

			detalle := &entity.SalidaDetalle{
				ID:            uuid.New().String(),
				SalidaID:      salida.ID,
				ProductoID:    prod.ID,
				DescuentoID:   d.DescuentoID,
				Cantidad:      d.Cantidad,
				PrecioVenta:   prod.PrecioVenta,
				CostoUnitario: val.CostoUnitario,
				Descuento:     descuento,
				Subtotal:      desglose.Subtotal,
				IVA:           desglose.IVA,
				Total:         desglose.Total,
			}
			if err := salidaRepo.CreateDetalle(detalle); err != nil {
				return err
			}

			// Consumo de lotes dentro de la transacción: si algo posterior
			// falla, el rollback también deshace los decrementos.
			for _, c := range val.Consumos {
				if err := loteRepo.Consumir(c.LoteID, c.Cantidad); err != nil {
					return err
				}
			}

			mov := &entity.Movimiento{
				ID:               uuid.New().String(),
				ProductoID:       prod.ID,
				Tipo:             entity.MovimientoSalida,
				Direccion:        entity.DireccionSalida,
				Cantidad:         d.Cantidad,
				PrecioUnitario:   prod.PrecioVenta,
				CostoUnitario:    val.CostoUnitario,
				Subtotal:         desglose.Subtotal,
				IVA:              desglose.IVA,
				Total:            desglose.Total,
				MetodoValoracion: string(metodo),
				DescuentoID:      d.DescuentoID,
				UsuarioID:        usuarioID,
				Observacion:      in.Observaciones,
				Fecha:            now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}

			nuevoStock := prod.Stock - d.Cantidad
			if err := productoRepo.UpdateStock(prod.ID, nuevoStock); err != nil {
				return err
			}

			subtotal = subtotal.Add(desglose.Subtotal)
			iva = iva.Add(desglose.IVA)
			total = total.Add(desglose.Total)
			resp.Detalles = append(resp.Detalles, dto.LineaResponse{
				ProductoID:     prod.ID,
				Cantidad:       d.Cantidad,
				PrecioUnitario: prod.PrecioVenta,
				CostoUnitario:  val.CostoUnitario,
				Descuento:      descuento,
				Subtotal:       desglose.Subtotal,
				IVA:            desglose.IVA,
				Total:          desglose.Total,
				NuevoStock:     nuevoStock,
			})
		}

		// Totales del encabezado: suma de los importes por línea ya
		// redondeados, redondeada una vez más (no un re-redondeo global).
		resp.Subtotal = money.Round2(subtotal)
		resp.IVA = money.Round2(iva)
		resp.Total = money.Round2(total)
		return salidaRepo.UpdateTotales(salida.ID, resp.Subtotal, resp.IVA, resp.Total)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
