package usecase

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/money"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

// ProductoUseCase casos de uso CRUD para productos. Stock y precio de compra
// no se tocan por aquí: los maneja el motor de movimientos.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// Create crea un producto. El stock inicia en cero: el inventario inicial se
// carga con una entrada o un ajuste, para que el kardex cuadre desde el día uno.
func (uc *ProductoUseCase) Create(in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if in.Codigo == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PrecioVenta.IsNegative() || in.PrecioCompra.IsNegative() || in.StockMinimo < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCodigo(in.Codigo)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:               uuid.New().String(),
		CategoriaID:      in.CategoriaID,
		ProveedorID:      in.ProveedorID,
		Codigo:           in.Codigo,
		Nombre:           in.Nombre,
		Descripcion:      in.Descripcion,
		PrecioCompra:     money.Round2(in.PrecioCompra),
		PrecioVenta:      money.Round2(in.PrecioVenta),
		Stock:            0,
		StockMinimo:      in.StockMinimo,
		FechaVencimiento: in.FechaVencimiento,
		Activo:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	return toProductoResponse(producto), nil
}

// GetByCodigo obtiene un producto por su código de barras o interno.
func (uc *ProductoUseCase) GetByCodigo(codigo string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByCodigo(codigo)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	return toProductoResponse(producto), nil
}

// Update modifica los datos comerciales de un producto.
func (uc *ProductoUseCase) Update(id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	if in.CategoriaID != nil {
		producto.CategoriaID = *in.CategoriaID
	}
	if in.ProveedorID != nil {
		producto.ProveedorID = *in.ProveedorID
	}
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.PrecioVenta != nil {
		if in.PrecioVenta.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.PrecioVenta = money.Round2(*in.PrecioVenta)
	}
	if in.StockMinimo != nil {
		if *in.StockMinimo < 0 {
			return nil, domain.ErrInvalidInput
		}
		producto.StockMinimo = *in.StockMinimo
	}
	if in.FechaVencimiento != nil {
		producto.FechaVencimiento = in.FechaVencimiento
	}
	if in.Activo != nil {
		producto.Activo = *in.Activo
	}
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// List lista productos (solo activos por defecto).
func (uc *ProductoUseCase) List(incluirInactivos bool) ([]dto.ProductoResponse, error) {
	list, err := uc.repo.List(!incluirInactivos)
	if err != nil {
		return nil, err
	}
	return toProductoResponses(list), nil
}

// Buscar busca por nombre, código o descripción, sin distinguir mayúsculas ni
// tildes ("cafe" encuentra "Café").
func (uc *ProductoUseCase) Buscar(termino string) ([]dto.ProductoResponse, error) {
	termino = strings.TrimSpace(termino)
	if termino == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.Buscar(NormalizarTermino(termino))
	if err != nil {
		return nil, err
	}
	return toProductoResponses(list), nil
}

// StockBajo lista productos en o bajo su stock mínimo.
func (uc *ProductoUseCase) StockBajo() ([]dto.ProductoResponse, error) {
	list, err := uc.repo.ListStockBajo()
	if err != nil {
		return nil, err
	}
	return toProductoResponses(list), nil
}

// PorVencer lista productos que vencen dentro de la ventana de días dada
// (30 por defecto).
func (uc *ProductoUseCase) PorVencer(dias int) ([]dto.ProductoResponse, error) {
	if dias <= 0 {
		dias = 30
	}
	list, err := uc.repo.ListPorVencer(dias)
	if err != nil {
		return nil, err
	}
	return toProductoResponses(list), nil
}

// Delete desactiva un producto (soft-delete). Su historial de movimientos y
// lotes queda intacto.
func (uc *ProductoUseCase) Delete(id string) error {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductoResponse{
		ID:               p.ID,
		CategoriaID:      p.CategoriaID,
		ProveedorID:      p.ProveedorID,
		Codigo:           p.Codigo,
		Nombre:           p.Nombre,
		Descripcion:      p.Descripcion,
		PrecioCompra:     p.PrecioCompra,
		PrecioVenta:      p.PrecioVenta,
		Stock:            p.Stock,
		StockMinimo:      p.StockMinimo,
		FechaVencimiento: p.FechaVencimiento,
		Activo:           p.Activo,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toProductoResponses(list []*entity.Producto) []dto.ProductoResponse {
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return items
}

// NormalizarTermino pasa a minúsculas y quita marcas diacríticas, para que la
// búsqueda no distinga tildes. La contraparte SQL hace lo propio con las
// columnas (ver producto_repository).
func NormalizarTermino(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
