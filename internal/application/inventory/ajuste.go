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
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

// RegistrarAjuste concilia la cantidad contada físicamente contra el stock
// registrado. Si no hay diferencia no se registra nada; si la hay, se anota un
// único movimiento AJUSTE por el valor absoluto de la diferencia y el stock
// queda en la cantidad contada. El ajuste no lleva importes ni toca lotes: la
// dirección almacenada es solo para reportes.
func (uc *MovimientosUseCase) RegistrarAjuste(ctx context.Context, usuarioID string, in dto.RegistrarAjusteRequest) (*dto.AjusteResponse, error) {
	if usuarioID == "" || in.ProductoID == "" || in.CantidadReal < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	resp := &dto.AjusteResponse{StockNuevo: in.CantidadReal}

	err := uc.txRunner.Run(ctx, func(
		productoRepo repository.ProductoRepository,
		_ repository.LoteRepository,
		movRepo repository.MovimientoRepository,
		_ repository.EntradaRepository,
		_ repository.SalidaRepository,
		secuenciaRepo repository.SecuenciaRepository,
	) error {
		// El ajuste aplica también a productos inactivos: conciliar un conteo
		// físico no depende del estado comercial del producto.
		prod, err := productoRepo.GetForUpdate(in.ProductoID)
		if err != nil {
			return err
		}
		if prod == nil {
			return domain.ErrNotFound
		}

		resp.StockAnterior = prod.Stock
		resp.Diferencia = in.CantidadReal - prod.Stock
		if resp.Diferencia == 0 {
			// Conteo igual al registro: ni movimiento ni cambio de stock.
			return nil
		}

		direccion := entity.DireccionEntrada
		cantidad := resp.Diferencia
		if cantidad < 0 {
			direccion = entity.DireccionSalida
			cantidad = -cantidad
		}

		seq, err := secuenciaRepo.Next(repository.SecuenciaAjustes)
		if err != nil {
			return err
		}
		resp.Numero = fmt.Sprintf("AJU-%06d", seq)

		observacion := "AJUSTE: corrección de inventario"
		if in.Observacion != "" {
			observacion = "AJUSTE: " + in.Observacion
		}
		mov := &entity.Movimiento{
			ID:             uuid.New().String(),
			Numero:         resp.Numero,
			ProductoID:     prod.ID,
			Tipo:           entity.MovimientoAjuste,
			Direccion:      direccion,
			Cantidad:       cantidad,
			PrecioUnitario: decimal.Zero,
			Subtotal:       decimal.Zero,
			IVA:            decimal.Zero,
			Total:          decimal.Zero,
			UsuarioID:      usuarioID,
			Observacion:    observacion,
			Fecha:          now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		resp.MovimientoID = mov.ID

		return productoRepo.UpdateStock(prod.ID, in.CantidadReal)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
