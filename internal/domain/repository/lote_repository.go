package repository

import "github.com/jvivanco/micromercado-api/internal/domain/entity"

// LoteRepository define el puerto de persistencia para lotes de compra.
// Los lotes nunca se borran; un lote agotado solo deja de aparecer en
// ListDisponibles.
type LoteRepository interface {
	Create(l *entity.Lote) error
	// ListDisponibles devuelve los lotes con cantidad disponible > 0 de un
	// producto, ordenados por fecha de ingreso ascendente (empates por orden
	// de inserción). El motor de costeo los reordena según el método.
	ListDisponibles(productoID string) ([]entity.Lote, error)
	ListByProducto(productoID string) ([]entity.Lote, error)
	// Consumir decrementa la cantidad disponible del lote. Falla si el
	// decremento dejaría el lote en negativo.
	Consumir(loteID string, cantidad int64) error
}
