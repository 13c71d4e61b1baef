package postgres

import (
	"context"
	"fmt"

	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

var _ repository.SecuenciaRepository = (*SecuenciaRepo)(nil)

// SecuenciaRepo asigna números de comprobante por tipo. El UPSERT con
// RETURNING corre dentro de la misma transacción del movimiento: el bloqueo de
// la fila de secuencia garantiza números únicos y consecutivos bajo
// concurrencia.
type SecuenciaRepo struct {
	q Querier
}

// NewSecuenciaRepository construye el adaptador. Pasar la tx del movimiento.
func NewSecuenciaRepository(q Querier) *SecuenciaRepo {
	return &SecuenciaRepo{q: q}
}

// Next incrementa y devuelve el siguiente valor de la secuencia nombrada.
func (r *SecuenciaRepo) Next(nombre string) (int64, error) {
	var valor int64
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO secuencias (nombre, valor) VALUES ($1, 1)
		ON CONFLICT (nombre) DO UPDATE SET valor = secuencias.valor + 1
		RETURNING valor`, nombre).Scan(&valor)
	if err != nil {
		return 0, fmt.Errorf("next secuencia %s: %w", nombre, err)
	}
	return valor, nil
}
