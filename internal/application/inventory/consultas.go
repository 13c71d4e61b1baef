package inventory

import (
	"context"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
)

// GetEntrada devuelve un encabezado de entrada con sus detalles.
func (uc *MovimientosUseCase) GetEntrada(ctx context.Context, id string) (*dto.EntradaResponse, error) {
	e, err := uc.entradaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	e.Detalles, err = uc.entradaRepo.ListDetalles(id)
	if err != nil {
		return nil, err
	}
	return toEntradaResponse(e), nil
}

// ListEntradas lista encabezados de entrada, más recientes primero.
func (uc *MovimientosUseCase) ListEntradas(ctx context.Context, limit, offset int) ([]dto.EntradaResponse, error) {
	list, err := uc.entradaRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntradaResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEntradaResponse(e))
	}
	return out, nil
}

// GetSalida devuelve un encabezado de salida con sus detalles.
func (uc *MovimientosUseCase) GetSalida(ctx context.Context, id string) (*dto.SalidaResponse, error) {
	s, err := uc.salidaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Detalles, err = uc.salidaRepo.ListDetalles(id)
	if err != nil {
		return nil, err
	}
	return toSalidaResponse(s), nil
}

// ListSalidas lista encabezados de salida, más recientes primero.
func (uc *MovimientosUseCase) ListSalidas(ctx context.Context, limit, offset int) ([]dto.SalidaResponse, error) {
	list, err := uc.salidaRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalidaResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSalidaResponse(s))
	}
	return out, nil
}

// ListLotes devuelve los lotes de un producto, incluidos los agotados (son
// historial de auditoría).
func (uc *MovimientosUseCase) ListLotes(ctx context.Context, productoID string) ([]dto.LoteResponse, error) {
	prod, err := uc.productoRepo.GetByID(productoID)
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, domain.ErrNotFound
	}
	lotes, err := uc.loteRepo.ListByProducto(productoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LoteResponse, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, dto.LoteResponse{
			ID:                 l.ID,
			ProductoID:         l.ProductoID,
			EntradaDetalleID:   l.EntradaDetalleID,
			PrecioCompra:       l.PrecioCompra,
			CantidadInicial:    l.CantidadInicial,
			CantidadDisponible: l.CantidadDisponible,
			FechaIngreso:       l.FechaIngreso,
		})
	}
	return out, nil
}

func toEntradaResponse(e *entity.Entrada) *dto.EntradaResponse {
	resp := &dto.EntradaResponse{
		ID:            e.ID,
		Numero:        e.Numero,
		ProveedorID:   e.ProveedorID,
		UsuarioID:     e.UsuarioID,
		Subtotal:      e.Subtotal,
		IVA:           e.IVA,
		Total:         e.Total,
		Observaciones: e.Observaciones,
		Fecha:         e.Fecha,
	}
	for _, d := range e.Detalles {
		resp.Detalles = append(resp.Detalles, dto.EntradaDetalleResponse{
			ID:           d.ID,
			ProductoID:   d.ProductoID,
			Cantidad:     d.Cantidad,
			PrecioCompra: d.PrecioCompra,
			Subtotal:     d.Subtotal,
		})
	}
	return resp
}

func toSalidaResponse(s *entity.Salida) *dto.SalidaResponse {
	resp := &dto.SalidaResponse{
		ID:               s.ID,
		Numero:           s.Numero,
		UsuarioID:        s.UsuarioID,
		MetodoValoracion: s.MetodoValoracion,
		Subtotal:         s.Subtotal,
		IVA:              s.IVA,
		Total:            s.Total,
		Observaciones:    s.Observaciones,
		Fecha:            s.Fecha,
	}
	for _, d := range s.Detalles {
		resp.Detalles = append(resp.Detalles, dto.SalidaDetalleResponse{
			ID:            d.ID,
			ProductoID:    d.ProductoID,
			DescuentoID:   d.DescuentoID,
			Cantidad:      d.Cantidad,
			PrecioVenta:   d.PrecioVenta,
			CostoUnitario: d.CostoUnitario,
			Descuento:     d.Descuento,
			Subtotal:      d.Subtotal,
			IVA:           d.IVA,
			Total:         d.Total,
		})
	}
	return resp
}
