package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumns = `id, categoria_id, proveedor_id, codigo, nombre, descripcion,
		precio_compra, precio_venta, stock, stock_minimo, fecha_vencimiento, activo, created_at, updated_at`

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(
		&p.ID, &p.CategoriaID, &p.ProveedorID, &p.Codigo, &p.Nombre, &p.Descripcion,
		&p.PrecioCompra, &p.PrecioVenta, &p.Stock, &p.StockMinimo, &p.FechaVencimiento,
		&p.Activo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. Stock inicia en 0.
func (r *ProductoRepo) Create(p *entity.Producto) error {
	query := `
		INSERT INTO productos (id, categoria_id, proveedor_id, codigo, nombre, descripcion,
			precio_compra, precio_venta, stock, stock_minimo, fecha_vencimiento, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoriaID, p.ProveedorID, p.Codigo, p.Nombre, p.Descripcion,
		p.PrecioCompra, p.PrecioVenta, p.Stock, p.StockMinimo, p.FechaVencimiento,
		p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(context.Background(),
		`SELECT `+productoColumns+` FROM productos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetByCodigo obtiene un producto por su código.
func (r *ProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(context.Background(),
		`SELECT `+productoColumns+` FROM productos WHERE codigo = $1`, codigo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto by codigo: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Es el punto de serialización de todo el motor de movimientos: dos
// transacciones sobre el mismo producto se encolan aquí.
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(context.Background(),
		`SELECT `+productoColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto for update: %w", err)
	}
	return p, nil
}

// Update actualiza los datos comerciales. No toca stock ni precio_compra (se manejan vía movimientos).
func (r *ProductoRepo) Update(p *entity.Producto) error {
	query := `
		UPDATE productos SET categoria_id = $2, proveedor_id = $3, nombre = $4, descripcion = $5,
			precio_venta = $6, stock_minimo = $7, fecha_vencimiento = $8, activo = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoriaID, p.ProveedorID, p.Nombre, p.Descripcion,
		p.PrecioVenta, p.StockMinimo, p.FechaVencimiento, p.Activo, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// UpdateStock fija el stock del producto (usado solo por el motor de movimientos, dentro de tx).
func (r *ProductoRepo) UpdateStock(id string, stock int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// UpdatePrecioCompra actualiza el último costo de compra (lo fija cada entrada).
func (r *ProductoRepo) UpdatePrecioCompra(id string, precio decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET precio_compra = $2, updated_at = now() WHERE id = $1`,
		id, precio,
	)
	if err != nil {
		return fmt.Errorf("update precio compra: %w", err)
	}
	return nil
}

// List lista productos; con soloActivos filtra los desactivados.
func (r *ProductoRepo) List(soloActivos bool) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos`
	if soloActivos {
		query += ` WHERE activo`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	return collectProductos(rows)
}

// Buscar busca productos activos por nombre, código o descripción. El término
// llega ya normalizado (minúsculas, sin tildes); las columnas se normalizan
// igual del lado SQL.
func (r *ProductoRepo) Buscar(termino string) ([]*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos
		WHERE activo AND (
			lower(translate(nombre,      'áéíóúüñÁÉÍÓÚÜÑ', 'aeiouunAEIOUUN')) LIKE '%' || $1 || '%'
			OR lower(codigo) LIKE '%' || $1 || '%'
			OR lower(translate(descripcion, 'áéíóúüñÁÉÍÓÚÜÑ', 'aeiouunAEIOUUN')) LIKE '%' || $1 || '%'
		)
		ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query, termino)
	if err != nil {
		return nil, fmt.Errorf("buscar productos: %w", err)
	}
	defer rows.Close()
	return collectProductos(rows)
}

// ListStockBajo lista productos activos en o bajo su stock mínimo.
func (r *ProductoRepo) ListStockBajo() ([]*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos
		WHERE activo AND stock <= stock_minimo
		ORDER BY stock - stock_minimo, nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock bajo: %w", err)
	}
	defer rows.Close()
	return collectProductos(rows)
}

// ListPorVencer lista productos activos que vencen dentro de la ventana de días dada.
func (r *ProductoRepo) ListPorVencer(dias int) ([]*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos
		WHERE activo AND fecha_vencimiento IS NOT NULL
			AND fecha_vencimiento <= now() + ($1 || ' days')::interval
		ORDER BY fecha_vencimiento`
	rows, err := r.q.Query(context.Background(), query, dias)
	if err != nil {
		return nil, fmt.Errorf("list por vencer: %w", err)
	}
	defer rows.Close()
	return collectProductos(rows)
}

// Delete desactiva el producto (soft-delete). El historial queda intacto.
func (r *ProductoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET activo = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}

func collectProductos(rows pgx.Rows) ([]*entity.Producto, error) {
	var list []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
