package inventory

import (
	"context"
	"time"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/money"
)

// Reporte lista movimientos por rango de fechas y tipo, con totales agregados
// por dirección (el IVA acumulado solo suma sobre salidas). Los totales se
// redondean una última vez al cierre.
func (uc *MovimientosUseCase) Reporte(ctx context.Context, desde, hasta *time.Time, tipo string) (*dto.ReporteResponse, error) {
	movs, err := uc.movRepo.Reporte(desde, hasta, tipo)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReporteResponse{
		Movimientos: make([]dto.MovimientoItemResponse, 0, len(movs)),
	}
	for _, m := range movs {
		if m.Direccion == entity.DireccionEntrada {
			resp.Totales.TotalEntradas = resp.Totales.TotalEntradas.Add(m.Total)
			resp.Totales.CantidadEntradas += m.Cantidad
		} else {
			resp.Totales.TotalSalidas = resp.Totales.TotalSalidas.Add(m.Total)
			resp.Totales.CantidadSalidas += m.Cantidad
			resp.Totales.IVATotal = resp.Totales.IVATotal.Add(m.IVA)
		}
		resp.Movimientos = append(resp.Movimientos, toMovimientoItem(m))
	}
	resp.Totales.TotalEntradas = money.Round2(resp.Totales.TotalEntradas)
	resp.Totales.TotalSalidas = money.Round2(resp.Totales.TotalSalidas)
	resp.Totales.IVATotal = money.Round2(resp.Totales.IVATotal)

	return resp, nil
}

// MovimientosRecientes devuelve los últimos movimientos del libro.
func (uc *MovimientosUseCase) MovimientosRecientes(ctx context.Context, limit int) ([]dto.MovimientoItemResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	movs, err := uc.movRepo.ListRecientes(limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoItemResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovimientoItem(m))
	}
	return out, nil
}

func toMovimientoItem(m entity.Movimiento) dto.MovimientoItemResponse {
	return dto.MovimientoItemResponse{
		ID:               m.ID,
		Numero:           m.Numero,
		ProductoID:       m.ProductoID,
		Tipo:             m.Tipo,
		Direccion:        m.Direccion,
		Cantidad:         m.Cantidad,
		PrecioUnitario:   m.PrecioUnitario,
		CostoUnitario:    m.CostoUnitario,
		Subtotal:         m.Subtotal,
		IVA:              m.IVA,
		Total:            m.Total,
		MetodoValoracion: m.MetodoValoracion,
		DescuentoID:      m.DescuentoID,
		UsuarioID:        m.UsuarioID,
		Observacion:      m.Observacion,
		Fecha:            m.Fecha,
	}
}
