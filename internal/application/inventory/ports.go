package inventory

import (
	"context"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. Es la garantía de atomicidad del
// libro de movimientos: o se confirma todo (encabezado, detalles, lotes,
// movimientos, stock) o nada queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productoRepo repository.ProductoRepository,
		loteRepo repository.LoteRepository,
		movRepo repository.MovimientoRepository,
		entradaRepo repository.EntradaRepository,
		salidaRepo repository.SalidaRepository,
		secuenciaRepo repository.SecuenciaRepository,
	) error) error
}

// KardexPDFGenerator produce la versión imprimible del kardex de un producto.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, kardex *dto.KardexResponse) ([]byte, error)
}
