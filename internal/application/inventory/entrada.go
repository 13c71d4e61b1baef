package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/money"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

// RegistrarEntrada procesa una recepción de mercadería: encabezado más líneas,
// todo en una sola transacción. Por cada línea bloquea la fila del producto,
// crea el lote, registra el movimiento ENTRADA y suma el stock. Las entradas
// no llevan IVA (el IVA de compra está fuera del alcance del sistema).
func (uc *MovimientosUseCase) RegistrarEntrada(ctx context.Context, usuarioID string, in dto.RegistrarEntradaRequest) (*dto.MovimientoResponse, error) {
	// El actor y el proveedor son obligatorios: no hay identidades por defecto.
	if usuarioID == "" || in.ProveedorID == "" || len(in.Detalles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, d := range in.Detalles {
		if d.ProductoID == "" || d.Cantidad <= 0 || d.PrecioCompra.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	resp := &dto.MovimientoResponse{ID: uuid.New().String()}

	err := uc.txRunner.Run(ctx, func(
		productoRepo repository.ProductoRepository,
		loteRepo repository.LoteRepository,
		movRepo repository.MovimientoRepository,
		entradaRepo repository.EntradaRepository,
		_ repository.SalidaRepository,
		secuenciaRepo repository.SecuenciaRepository,
	) error {
		// Número de comprobante dentro de la misma transacción: sin huecos ni
		// duplicados bajo concurrencia.
		seq, err := secuenciaRepo.Next(repository.SecuenciaEntradas)
		if err != nil {
			return err
		}
		resp.Numero = fmt.Sprintf("ENT-%06d", seq)

		entrada := &entity.Entrada{
			ID:            resp.ID,
			Numero:        resp.Numero,
			ProveedorID:   in.ProveedorID,
			UsuarioID:     usuarioID,
			Observaciones: in.Observaciones,
			Fecha:         now,
		}
		if err := entradaRepo.Create(entrada); err != nil {
			return err
		}

		subtotal := decimal.Zero
		for _, d := range in.Detalles {
			prod, err := productoRepo.GetForUpdate(d.ProductoID)
			if err != nil {
				return err
			}
			if prod == nil || !prod.Activo {
				return domain.ErrNotFound
			}

			precio := money.Round2(d.PrecioCompra)
			subLinea := money.Linea(d.Cantidad, precio, decimal.Zero)

			detalle := &entity.EntradaDetalle{
				ID:           uuid.New().String(),
				EntradaID:    entrada.ID,
				ProductoID:   prod.ID,
				Cantidad:     d.Cantidad,
				PrecioCompra: precio,
				Subtotal:     subLinea,
			}
			if err := entradaRepo.CreateDetalle(detalle); err != nil {
				return err
			}

			// Cada línea de entrada abre un lote con toda su cantidad
			// disponible; es la materia prima del costeo FIFO/LIFO.
			lote := &entity.Lote{
				ID:                 uuid.New().String(),
				ProductoID:         prod.ID,
				EntradaDetalleID:   detalle.ID,
				PrecioCompra:       precio,
				CantidadInicial:    d.Cantidad,
				CantidadDisponible: d.Cantidad,
				FechaIngreso:       now,
			}
			if err := loteRepo.Create(lote); err != nil {
				return err
			}

			mov := &entity.Movimiento{
				ID:             uuid.New().String(),
				ProductoID:     prod.ID,
				Tipo:           entity.MovimientoEntrada,
				Direccion:      entity.DireccionEntrada,
				Cantidad:       d.Cantidad,
				PrecioUnitario: precio,
				Subtotal:       subLinea,
				IVA:            decimal.Zero,
				Total:          subLinea,
				UsuarioID:      usuarioID,
				Observacion:    in.Observaciones,
				Fecha:          now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}

			nuevoStock := prod.Stock + d.Cantidad
			if err := productoRepo.UpdateStock(prod.ID, nuevoStock); err != nil {
				return err
			}
			// La entrada actualiza el último costo de compra del producto.
			if err := productoRepo.UpdatePrecioCompra(prod.ID, precio); err != nil {
				return err
			}

			subtotal = subtotal.Add(subLinea)
			resp.Detalles = append(resp.Detalles, dto.LineaResponse{
				ProductoID:     prod.ID,
				Cantidad:       d.Cantidad,
				PrecioUnitario: precio,
				Descuento:      decimal.Zero,
				Subtotal:       subLinea,
				IVA:            decimal.Zero,
				Total:          subLinea,
				NuevoStock:     nuevoStock,
			})
		}

		// Totales del encabezado: suma de líneas ya redondeadas, redondeada
		// una vez más. Entradas sin IVA: total = subtotal.
		resp.Subtotal = money.Round2(subtotal)
		resp.IVA = decimal.Zero
		resp.Total = resp.Subtotal
		return entradaRepo.UpdateTotales(entrada.ID, resp.Subtotal, resp.IVA, resp.Total)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
