package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

// MovimientosUseCase registra entradas, salidas y ajustes de inventario de
// forma transaccional, con bloqueo de fila por producto (SELECT FOR UPDATE)
// dentro de TxRunner. También expone las lecturas del libro (kardex, reporte,
// consultas de encabezados), que van directo a los repos atados al pool.
type MovimientosUseCase struct {
	txRunner      TxRunner
	productoRepo  repository.ProductoRepository
	loteRepo      repository.LoteRepository
	movRepo       repository.MovimientoRepository
	entradaRepo   repository.EntradaRepository
	salidaRepo    repository.SalidaRepository
	descuentoRepo repository.DescuentoRepository
	ivaRate       decimal.Decimal
}

// NewMovimientosUseCase construye el caso de uso. ivaRate es la tasa de IVA
// configurada (0.15 por defecto en config).
func NewMovimientosUseCase(
	txRunner TxRunner,
	productoRepo repository.ProductoRepository,
	loteRepo repository.LoteRepository,
	movRepo repository.MovimientoRepository,
	entradaRepo repository.EntradaRepository,
	salidaRepo repository.SalidaRepository,
	descuentoRepo repository.DescuentoRepository,
	ivaRate decimal.Decimal,
) *MovimientosUseCase {
	return &MovimientosUseCase{
		txRunner:      txRunner,
		productoRepo:  productoRepo,
		loteRepo:      loteRepo,
		movRepo:       movRepo,
		entradaRepo:   entradaRepo,
		salidaRepo:    salidaRepo,
		descuentoRepo: descuentoRepo,
		ivaRate:       ivaRate,
	}
}

// porcentajeDescuento resuelve el descuento de una línea de salida. Un
// descuento inexistente, vencido, inactivo o cuyo alcance no corresponde al
// producto degrada silenciosamente a 0% (precio pleno): no es un error.
func (uc *MovimientosUseCase) porcentajeDescuento(descuentoID string, prod *entity.Producto, at time.Time) decimal.Decimal {
	if descuentoID == "" {
		return decimal.Zero
	}
	desc, err := uc.descuentoRepo.GetActivo(descuentoID, at)
	if err != nil || desc == nil {
		return decimal.Zero
	}
	if desc.ProductoID != "" && desc.ProductoID != prod.ID {
		return decimal.Zero
	}
	if desc.CategoriaID != "" && desc.CategoriaID != prod.CategoriaID {
		return decimal.Zero
	}
	return desc.Porcentaje
}
