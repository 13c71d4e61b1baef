package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jvivanco/micromercado-api/internal/application/analytics"
	"github.com/jvivanco/micromercado-api/internal/application/auth"
	"github.com/jvivanco/micromercado-api/internal/application/inventory"
	"github.com/jvivanco/micromercado-api/internal/application/usecase"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductoUC  *usecase.ProductoUseCase
	CategoriaUC *usecase.CategoriaUseCase
	ProveedorUC *usecase.ProveedorUseCase
	UsuarioUC   *usecase.UsuarioUseCase
	Movimientos *inventory.MovimientosUseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	KardexPDF   inventory.KardexPDFGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos y su kardex (protegido). Las rutas fijas van antes de /:id.
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	kardexHandler := NewKardexHandler(deps.Movimientos, deps.KardexPDF)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/buscar", productoHandler.Buscar)
	productos.Get("/stock-bajo", productoHandler.StockBajo)
	productos.Get("/por-vencer", productoHandler.PorVencer)
	productos.Get("/codigo/:codigo", productoHandler.GetByCodigo)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Delete("/:id", productoHandler.Delete)
	productos.Get("/:id/kardex", kardexHandler.Kardex)
	productos.Get("/:id/kardex/pdf", kardexHandler.KardexPDF)
	productos.Get("/:id/lotes", kardexHandler.Lotes)

	// Libro de movimientos (protegido)
	movimientoHandler := NewMovimientoHandler(deps.Movimientos)
	entradas := protected.Group("/entradas")
	entradas.Post("/", movimientoHandler.RegistrarEntrada)
	entradas.Get("/", movimientoHandler.ListEntradas)
	entradas.Get("/:id", movimientoHandler.GetEntrada)
	salidas := protected.Group("/salidas")
	salidas.Post("/", movimientoHandler.RegistrarSalida)
	salidas.Get("/", movimientoHandler.ListSalidas)
	salidas.Get("/:id", movimientoHandler.GetSalida)
	movimientos := protected.Group("/movimientos")
	movimientos.Get("/", movimientoHandler.Reporte)
	movimientos.Get("/recientes", movimientoHandler.Recientes)
	movimientos.Post("/ajuste", movimientoHandler.RegistrarAjuste)

	// Catálogos (protegido)
	categorias := protected.Group("/categorias")
	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC)
	categorias.Post("/", categoriaHandler.Create)
	categorias.Get("/", categoriaHandler.List)
	categorias.Get("/:id", categoriaHandler.GetByID)
	categorias.Put("/:id", categoriaHandler.Update)
	categorias.Delete("/:id", categoriaHandler.Delete)

	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Post("/", proveedorHandler.Create)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Put("/:id", proveedorHandler.Update)
	proveedores.Delete("/:id", proveedorHandler.Delete)

	// Usuarios (solo ADMIN)
	usuarios := protected.Group("/usuarios", RequireRol(entity.RolAdmin))
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Put("/:id", usuarioHandler.Update)
	usuarios.Delete("/:id", usuarioHandler.Delete)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Resumen)
}
