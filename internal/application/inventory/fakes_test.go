package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

// memStore es el almacén en memoria compartido por los repos falsos. El
// memTxRunner toma un snapshot antes de cada transacción y lo restaura si la
// función devuelve error, imitando el rollback de PostgreSQL.
type memStore struct {
	mu sync.Mutex

	productos       map[string]*entity.Producto
	lotes           []*entity.Lote
	movimientos     []*entity.Movimiento
	entradas        map[string]*entity.Entrada
	entradaDetalles []entity.EntradaDetalle
	salidas         map[string]*entity.Salida
	salidaDetalles  []entity.SalidaDetalle
	descuentos      map[string]*entity.Descuento
	secuencias      map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		productos:  map[string]*entity.Producto{},
		entradas:   map[string]*entity.Entrada{},
		salidas:    map[string]*entity.Salida{},
		descuentos: map[string]*entity.Descuento{},
		secuencias: map[string]int64{},
	}
}

type memSnapshot struct {
	productos       map[string]*entity.Producto
	lotes           []*entity.Lote
	movimientos     []*entity.Movimiento
	entradas        map[string]*entity.Entrada
	entradaDetalles []entity.EntradaDetalle
	salidas         map[string]*entity.Salida
	salidaDetalles  []entity.SalidaDetalle
	secuencias      map[string]int64
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		productos:       make(map[string]*entity.Producto, len(s.productos)),
		entradas:        make(map[string]*entity.Entrada, len(s.entradas)),
		salidas:         make(map[string]*entity.Salida, len(s.salidas)),
		secuencias:      make(map[string]int64, len(s.secuencias)),
		lotes:           make([]*entity.Lote, len(s.lotes)),
		movimientos:     make([]*entity.Movimiento, len(s.movimientos)),
		entradaDetalles: append([]entity.EntradaDetalle(nil), s.entradaDetalles...),
		salidaDetalles:  append([]entity.SalidaDetalle(nil), s.salidaDetalles...),
	}
	for id, p := range s.productos {
		cp := *p
		snap.productos[id] = &cp
	}
	for id, e := range s.entradas {
		cp := *e
		snap.entradas[id] = &cp
	}
	for id, sa := range s.salidas {
		cp := *sa
		snap.salidas[id] = &cp
	}
	for k, v := range s.secuencias {
		snap.secuencias[k] = v
	}
	for i, l := range s.lotes {
		cp := *l
		snap.lotes[i] = &cp
	}
	for i, m := range s.movimientos {
		cp := *m
		snap.movimientos[i] = &cp
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.productos = snap.productos
	s.lotes = snap.lotes
	s.movimientos = snap.movimientos
	s.entradas = snap.entradas
	s.entradaDetalles = snap.entradaDetalles
	s.salidas = snap.salidas
	s.salidaDetalles = snap.salidaDetalles
	s.secuencias = snap.secuencias
}

// memTxRunner serializa las transacciones con el mutex del store (el
// equivalente de prueba del bloqueo de fila) y restaura el snapshot ante
// error, de modo que una línea fallida no deja efectos parciales.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	productoRepo repository.ProductoRepository,
	loteRepo repository.LoteRepository,
	movRepo repository.MovimientoRepository,
	entradaRepo repository.EntradaRepository,
	salidaRepo repository.SalidaRepository,
	secuenciaRepo repository.SecuenciaRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	err := fn(
		&memProductoRepo{r.s},
		&memLoteRepo{r.s},
		&memMovimientoRepo{r.s},
		&memEntradaRepo{r.s},
		&memSalidaRepo{r.s},
		&memSecuenciaRepo{r.s},
	)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

type memProductoRepo struct{ s *memStore }

func (r *memProductoRepo) Create(p *entity.Producto) error {
	cp := *p
	r.s.productos[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) GetByID(id string) (*entity.Producto, error) {
	p, ok := r.s.productos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	for _, p := range r.s.productos {
		if p.Codigo == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	return r.GetByID(id)
}

func (r *memProductoRepo) Update(p *entity.Producto) error {
	cp := *p
	r.s.productos[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) UpdateStock(id string, stock int64) error {
	p, ok := r.s.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *memProductoRepo) UpdatePrecioCompra(id string, precio decimal.Decimal) error {
	p, ok := r.s.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.PrecioCompra = precio
	return nil
}

func (r *memProductoRepo) List(bool) ([]*entity.Producto, error)      { return nil, nil }
func (r *memProductoRepo) Buscar(string) ([]*entity.Producto, error)  { return nil, nil }
func (r *memProductoRepo) ListStockBajo() ([]*entity.Producto, error) { return nil, nil }
func (r *memProductoRepo) ListPorVencer(int) ([]*entity.Producto, error) {
	return nil, nil
}
func (r *memProductoRepo) Delete(id string) error { return nil }

type memLoteRepo struct{ s *memStore }

func (r *memLoteRepo) Create(l *entity.Lote) error {
	cp := *l
	r.s.lotes = append(r.s.lotes, &cp)
	return nil
}

func (r *memLoteRepo) ListDisponibles(productoID string) ([]entity.Lote, error) {
	var out []entity.Lote
	for _, l := range r.s.lotes {
		if l.ProductoID == productoID && l.CantidadDisponible > 0 {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *memLoteRepo) ListByProducto(productoID string) ([]entity.Lote, error) {
	var out []entity.Lote
	for _, l := range r.s.lotes {
		if l.ProductoID == productoID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *memLoteRepo) Consumir(loteID string, cantidad int64) error {
	for _, l := range r.s.lotes {
		if l.ID == loteID {
			if l.CantidadDisponible < cantidad {
				return domain.ErrLotesInsuficientes
			}
			l.CantidadDisponible -= cantidad
			return nil
		}
	}
	return domain.ErrNotFound
}

type memMovimientoRepo struct{ s *memStore }

func (r *memMovimientoRepo) Create(m *entity.Movimiento) error {
	cp := *m
	r.s.movimientos = append(r.s.movimientos, &cp)
	return nil
}

func (r *memMovimientoRepo) ListByProductoAsc(productoID string) ([]entity.Movimiento, error) {
	var out []entity.Movimiento
	for _, m := range r.s.movimientos {
		if m.ProductoID == productoID {
			out = append(out, *m)
		}
	}
	// Los fakes insertan en orden cronológico, no hace falta reordenar.
	return out, nil
}

func (r *memMovimientoRepo) ListRecientes(limit int) ([]entity.Movimiento, error) {
	var out []entity.Movimiento
	for i := len(r.s.movimientos) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.s.movimientos[i])
	}
	return out, nil
}

func (r *memMovimientoRepo) Reporte(desde, hasta *time.Time, tipo string) ([]entity.Movimiento, error) {
	var out []entity.Movimiento
	for _, m := range r.s.movimientos {
		if tipo != "" && m.Tipo != tipo {
			continue
		}
		if desde != nil && m.Fecha.Before(*desde) {
			continue
		}
		if hasta != nil && m.Fecha.After(*hasta) {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

type memEntradaRepo struct{ s *memStore }

func (r *memEntradaRepo) Create(e *entity.Entrada) error {
	cp := *e
	r.s.entradas[e.ID] = &cp
	return nil
}

func (r *memEntradaRepo) CreateDetalle(d *entity.EntradaDetalle) error {
	r.s.entradaDetalles = append(r.s.entradaDetalles, *d)
	return nil
}

func (r *memEntradaRepo) UpdateTotales(id string, subtotal, iva, total decimal.Decimal) error {
	e, ok := r.s.entradas[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Subtotal, e.IVA, e.Total = subtotal, iva, total
	return nil
}

func (r *memEntradaRepo) GetByID(id string) (*entity.Entrada, error) {
	e, ok := r.s.entradas[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memEntradaRepo) ListDetalles(entradaID string) ([]entity.EntradaDetalle, error) {
	var out []entity.EntradaDetalle
	for _, d := range r.s.entradaDetalles {
		if d.EntradaID == entradaID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memEntradaRepo) List(limit, offset int) ([]*entity.Entrada, error) { return nil, nil }

type memSalidaRepo struct{ s *memStore }

func (r *memSalidaRepo) Create(sa *entity.Salida) error {
	cp := *sa
	r.s.salidas[sa.ID] = &cp
	return nil
}

func (r *memSalidaRepo) CreateDetalle(d *entity.SalidaDetalle) error {
	r.s.salidaDetalles = append(r.s.salidaDetalles, *d)
	return nil
}

func (r *memSalidaRepo) UpdateTotales(id string, subtotal, iva, total decimal.Decimal) error {
	sa, ok := r.s.salidas[id]
	if !ok {
		return domain.ErrNotFound
	}
	sa.Subtotal, sa.IVA, sa.Total = subtotal, iva, total
	return nil
}

func (r *memSalidaRepo) GetByID(id string) (*entity.Salida, error) {
	sa, ok := r.s.salidas[id]
	if !ok {
		return nil, nil
	}
	cp := *sa
	return &cp, nil
}

func (r *memSalidaRepo) ListDetalles(salidaID string) ([]entity.SalidaDetalle, error) {
	var out []entity.SalidaDetalle
	for _, d := range r.s.salidaDetalles {
		if d.SalidaID == salidaID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memSalidaRepo) List(limit, offset int) ([]*entity.Salida, error) { return nil, nil }

type memSecuenciaRepo struct{ s *memStore }

func (r *memSecuenciaRepo) Next(nombre string) (int64, error) {
	r.s.secuencias[nombre]++
	return r.s.secuencias[nombre], nil
}

type memDescuentoRepo struct{ s *memStore }

func (r *memDescuentoRepo) GetByID(id string) (*entity.Descuento, error) {
	d, ok := r.s.descuentos[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memDescuentoRepo) GetActivo(id string, at time.Time) (*entity.Descuento, error) {
	d, ok := r.s.descuentos[id]
	if !ok || !d.VigenteEn(at) {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}
