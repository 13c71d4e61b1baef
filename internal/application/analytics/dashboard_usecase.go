// Package analytics contiene los casos de uso de lectura agregada: el tablero
// principal del micromercado.
package analytics

import (
	"context"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

const (
	dashboardTopAlertas    = 5  // filas por widget de alerta
	dashboardDiasPorVencer = 30 // ventana de vencimiento del tablero
	dashboardMovimientos   = 10 // últimos movimientos mostrados
)

// DashboardUseCase arma el resumen del tablero principal.
//
// Fuente de datos: DashboardRepository (consultas read-only) más el libro de
// movimientos para el widget de actividad reciente.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
	movRepo       repository.MovimientoRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository, movRepo repository.MovimientoRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo, movRepo: movRepo}
}

// GetResumen construye el DashboardResponse.
//
// Cuatro consultas en paralelo: resumen agregado, top stock bajo, top por
// vencer y movimientos recientes.
func (uc *DashboardUseCase) GetResumen(ctx context.Context) (*dto.DashboardResponse, error) {
	type resumenResult struct {
		resumen *repository.ResumenInventario
		err     error
	}
	type productosResult struct {
		productos []*entity.Producto
		err       error
	}
	type movsResult struct {
		movs []entity.Movimiento
		err  error
	}

	resumenCh := make(chan resumenResult, 1)
	stockBajoCh := make(chan productosResult, 1)
	porVencerCh := make(chan productosResult, 1)
	movsCh := make(chan movsResult, 1)

	go func() {
		r, err := uc.dashboardRepo.Resumen()
		resumenCh <- resumenResult{r, err}
	}()
	go func() {
		p, err := uc.dashboardRepo.TopStockBajo(dashboardTopAlertas)
		stockBajoCh <- productosResult{p, err}
	}()
	go func() {
		p, err := uc.dashboardRepo.TopPorVencer(dashboardDiasPorVencer, dashboardTopAlertas)
		porVencerCh <- productosResult{p, err}
	}()
	go func() {
		m, err := uc.movRepo.ListRecientes(dashboardMovimientos)
		movsCh <- movsResult{m, err}
	}()

	resumen := <-resumenCh
	stockBajo := <-stockBajoCh
	porVencer := <-porVencerCh
	movs := <-movsCh
	for _, err := range []error{resumen.err, stockBajo.err, porVencer.err, movs.err} {
		if err != nil {
			return nil, err
		}
	}

	resp := &dto.DashboardResponse{
		TotalProductos:  resumen.resumen.TotalProductos,
		ValorInventario: resumen.resumen.ValorInventario,
		StockBajo:       resumen.resumen.StockBajo,
		PorVencer:       resumen.resumen.PorVencer,
	}
	for _, p := range stockBajo.productos {
		resp.ProductosStockBajo = append(resp.ProductosStockBajo, toProductoResumen(p))
	}
	for _, p := range porVencer.productos {
		resp.ProductosPorVencer = append(resp.ProductosPorVencer, toProductoResumen(p))
	}
	for _, m := range movs.movs {
		resp.MovimientosRecientes = append(resp.MovimientosRecientes, dto.MovimientoItemResponse{
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
			UsuarioID:        m.UsuarioID,
			Observacion:      m.Observacion,
			Fecha:            m.Fecha,
		})
	}
	return resp, nil
}

func toProductoResumen(p *entity.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:               p.ID,
		CategoriaID:      p.CategoriaID,
		Codigo:           p.Codigo,
		Nombre:           p.Nombre,
		PrecioVenta:      p.PrecioVenta,
		Stock:            p.Stock,
		StockMinimo:      p.StockMinimo,
		FechaVencimiento: p.FechaVencimiento,
		Activo:           p.Activo,
	}
}
