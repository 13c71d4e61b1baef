package repository

// Nombres de secuencias del libro.
const (
	SecuenciaEntradas = "entradas"
	SecuenciaSalidas  = "salidas"
	SecuenciaAjustes  = "ajustes"
)

// SecuenciaRepository entrega números de comprobante monótonos. Next debe
// ejecutarse dentro de la misma transacción que inserta el encabezado para que
// no haya números duplicados ni huecos bajo concurrencia (reemplaza el
// COUNT(*)+1 del sistema original).
type SecuenciaRepository interface {
	Next(nombre string) (int64, error)
}
