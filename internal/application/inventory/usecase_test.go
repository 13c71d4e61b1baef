package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/application/inventory"
	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
)

func newTestUseCase(t *testing.T) (*inventory.MovimientosUseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	uc := inventory.NewMovimientosUseCase(
		&memTxRunner{s},
		&memProductoRepo{s},
		&memLoteRepo{s},
		&memMovimientoRepo{s},
		&memEntradaRepo{s},
		&memSalidaRepo{s},
		&memDescuentoRepo{s},
		decimal.NewFromFloat(0.15),
	)
	return uc, s
}

func seedProducto(s *memStore, id string, precioVenta float64, stock int64) *entity.Producto {
	p := &entity.Producto{
		ID:          id,
		CategoriaID: "cat-1",
		Codigo:      "COD-" + id,
		Nombre:      "Producto " + id,
		PrecioVenta: decimal.NewFromFloat(precioVenta),
		Stock:       stock,
		Activo:      true,
	}
	s.productos[id] = p
	return p
}

func seedLote(s *memStore, id, productoID string, precioCompra float64, cantidad int64, ingreso time.Time) {
	s.lotes = append(s.lotes, &entity.Lote{
		ID:                 id,
		ProductoID:         productoID,
		PrecioCompra:       decimal.NewFromFloat(precioCompra),
		CantidadInicial:    cantidad,
		CantidadDisponible: cantidad,
		FechaIngreso:       ingreso,
	})
}

func loteDisponible(s *memStore, id string) int64 {
	for _, l := range s.lotes {
		if l.ID == id {
			return l.CantidadDisponible
		}
	}
	return -1
}

func TestRegistrarEntrada_CreaLoteMovimientoYStock(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 2.50, 3)
	seedProducto(s, "p2", 5.00, 0)

	resp, err := uc.RegistrarEntrada(context.Background(), "u1", dto.RegistrarEntradaRequest{
		ProveedorID: "prov-1",
		Detalles: []dto.EntradaDetalleRequest{
			{ProductoID: "p1", Cantidad: 10, PrecioCompra: decimal.NewFromFloat(1.25)},
			{ProductoID: "p2", Cantidad: 4, PrecioCompra: decimal.NewFromFloat(0.333)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ENT-000001", resp.Numero)
	require.Len(t, resp.Detalles, 2)

	// 10×1.25 = 12.50; el precio 0.333 se redondea a 0.33 antes de multiplicar.
	assert.Equal(t, "12.50", resp.Detalles[0].Subtotal.StringFixed(2))
	assert.Equal(t, "1.32", resp.Detalles[1].Subtotal.StringFixed(2))
	assert.Equal(t, "13.82", resp.Subtotal.StringFixed(2))
	assert.True(t, resp.IVA.IsZero(), "las entradas no llevan IVA")
	assert.Equal(t, "13.82", resp.Total.StringFixed(2))

	assert.Equal(t, int64(13), s.productos["p1"].Stock)
	assert.Equal(t, int64(4), s.productos["p2"].Stock)
	assert.Equal(t, "0.33", s.productos["p2"].PrecioCompra.StringFixed(2))

	require.Len(t, s.lotes, 2)
	assert.Equal(t, int64(10), s.lotes[0].CantidadDisponible)
	assert.Equal(t, s.lotes[0].CantidadInicial, s.lotes[0].CantidadDisponible)

	require.Len(t, s.movimientos, 2)
	for _, m := range s.movimientos {
		assert.Equal(t, entity.MovimientoEntrada, m.Tipo)
		assert.Equal(t, entity.DireccionEntrada, m.Direccion)
		assert.True(t, m.IVA.IsZero())
	}

	enc, ok := s.entradas[resp.ID]
	require.True(t, ok)
	assert.Equal(t, "13.82", enc.Total.StringFixed(2))
}

func TestRegistrarEntrada_ValidaEntrada(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 2.50, 0)
	linea := []dto.EntradaDetalleRequest{{ProductoID: "p1", Cantidad: 5, PrecioCompra: decimal.NewFromInt(1)}}

	casos := []struct {
		nombre  string
		usuario string
		req     dto.RegistrarEntradaRequest
	}{
		{"sin usuario", "", dto.RegistrarEntradaRequest{ProveedorID: "prov-1", Detalles: linea}},
		{"sin proveedor", "u1", dto.RegistrarEntradaRequest{Detalles: linea}},
		{"sin detalles", "u1", dto.RegistrarEntradaRequest{ProveedorID: "prov-1"}},
		{"cantidad cero", "u1", dto.RegistrarEntradaRequest{ProveedorID: "prov-1", Detalles: []dto.EntradaDetalleRequest{{ProductoID: "p1", PrecioCompra: decimal.NewFromInt(1)}}}},
		{"precio negativo", "u1", dto.RegistrarEntradaRequest{ProveedorID: "prov-1", Detalles: []dto.EntradaDetalleRequest{{ProductoID: "p1", Cantidad: 5, PrecioCompra: decimal.NewFromInt(-1)}}}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.RegistrarEntrada(context.Background(), c.usuario, c.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, s.movimientos)
}

func TestRegistrarEntrada_LineaInvalidaRevierteTodo(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 2.50, 3)

	_, err := uc.RegistrarEntrada(context.Background(), "u1", dto.RegistrarEntradaRequest{
		ProveedorID: "prov-1",
		Detalles: []dto.EntradaDetalleRequest{
			{ProductoID: "p1", Cantidad: 10, PrecioCompra: decimal.NewFromFloat(1.25)},
			{ProductoID: "no-existe", Cantidad: 1, PrecioCompra: decimal.NewFromInt(1)},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	// La primera línea válida también se revierte: ni stock, ni lote, ni
	// movimiento, ni número de secuencia consumido.
	assert.Equal(t, int64(3), s.productos["p1"].Stock)
	assert.Empty(t, s.lotes)
	assert.Empty(t, s.movimientos)
	assert.Empty(t, s.entradas)

	resp, err := uc.RegistrarEntrada(context.Background(), "u1", dto.RegistrarEntradaRequest{
		ProveedorID: "prov-1",
		Detalles:    []dto.EntradaDetalleRequest{{ProductoID: "p1", Cantidad: 1, PrecioCompra: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ENT-000001", resp.Numero)
}

func TestRegistrarEntrada_ProductoInactivo(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 2.50, 0).Activo = false

	_, err := uc.RegistrarEntrada(context.Background(), "u1", dto.RegistrarEntradaRequest{
		ProveedorID: "prov-1",
		Detalles:    []dto.EntradaDetalleRequest{{ProductoID: "p1", Cantidad: 5, PrecioCompra: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrarSalida_DesgloseIVA(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 10.004, 20)
	seedLote(s, "l1", "p1", 6.00, 20, time.Now().Add(-24*time.Hour))

	resp, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "FIFO",
		Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "SAL-000001", resp.Numero)

	// El subtotal se redondea antes de calcular el IVA: 10.004 → 10.00,
	// IVA 1.50, total 11.50 (no 11.5046 redondeado).
	assert.Equal(t, "10.00", resp.Subtotal.StringFixed(2))
	assert.Equal(t, "1.50", resp.IVA.StringFixed(2))
	assert.Equal(t, "11.50", resp.Total.StringFixed(2))

	require.Len(t, s.salidaDetalles, 1)
	det := s.salidaDetalles[0]
	assert.Equal(t, "6.0000", det.CostoUnitario.StringFixed(4))
	assert.Equal(t, "10.004", det.PrecioVenta.String())
	assert.Equal(t, int64(19), s.productos["p1"].Stock)
}

func TestRegistrarSalida_FIFOConsumeLotesMasAntiguos(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 15)
	base := time.Now().Add(-48 * time.Hour)
	seedLote(s, "viejo", "p1", 2.00, 10, base)
	seedLote(s, "nuevo", "p1", 2.50, 5, base.Add(24*time.Hour))

	resp, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "FIFO",
		Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 12}},
	})
	require.NoError(t, err)

	// (10×2.00 + 2×2.50) / 12 = 2.0833: agota el lote viejo y toma 2 del nuevo.
	assert.Equal(t, "2.0833", resp.Detalles[0].CostoUnitario.StringFixed(4))
	assert.Equal(t, int64(0), loteDisponible(s, "viejo"))
	assert.Equal(t, int64(3), loteDisponible(s, "nuevo"))
	assert.Equal(t, int64(3), s.productos["p1"].Stock)
}

func TestRegistrarSalida_LIFOConsumeLotesMasRecientes(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 15)
	base := time.Now().Add(-48 * time.Hour)
	seedLote(s, "viejo", "p1", 2.00, 10, base)
	seedLote(s, "nuevo", "p1", 2.50, 5, base.Add(24*time.Hour))

	resp, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "LIFO",
		Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 12}},
	})
	require.NoError(t, err)

	// (5×2.50 + 7×2.00) / 12 = 2.2083: agota el nuevo y toma 7 del viejo.
	assert.Equal(t, "2.2083", resp.Detalles[0].CostoUnitario.StringFixed(4))
	assert.Equal(t, int64(3), loteDisponible(s, "viejo"))
	assert.Equal(t, int64(0), loteDisponible(s, "nuevo"))
}

func TestRegistrarSalida_PromedioNoConsumeLotes(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 15)
	base := time.Now().Add(-48 * time.Hour)
	seedLote(s, "l1", "p1", 2.00, 10, base)
	seedLote(s, "l2", "p1", 2.50, 5, base.Add(time.Hour))

	resp, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "PROMEDIO",
		Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 12}},
	})
	require.NoError(t, err)

	// Promedio ponderado sobre lo disponible: 32.50 / 15 = 2.1667. Los lotes
	// quedan intactos aunque el stock sí baja.
	assert.Equal(t, "2.1667", resp.Detalles[0].CostoUnitario.StringFixed(4))
	assert.Equal(t, int64(10), loteDisponible(s, "l1"))
	assert.Equal(t, int64(5), loteDisponible(s, "l2"))
	assert.Equal(t, int64(3), s.productos["p1"].Stock)
}

func TestRegistrarSalida_MetodoDesconocidoDegradaAPromedio(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 10)
	seedLote(s, "l1", "p1", 2.00, 10, time.Now().Add(-time.Hour))

	_, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "pepe",
		Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 4}},
	})
	require.NoError(t, err)

	require.Len(t, s.movimientos, 1)
	assert.Equal(t, "PROMEDIO", s.movimientos[0].MetodoValoracion)
	assert.Equal(t, int64(10), loteDisponible(s, "l1"))
}

func TestRegistrarSalida_SinLotesUsaPrecioVentaComoCosto(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 7.50, 10) // stock sin lotes: inventario inicial

	resp, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "FIFO",
		Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "7.5000", resp.Detalles[0].CostoUnitario.StringFixed(4))
}

func TestRegistrarSalida_StockInsuficienteNoDejaEfectos(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 5)
	seedLote(s, "l1", "p1", 2.00, 5, time.Now().Add(-time.Hour))

	_, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "FIFO",
		Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 8}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p1", stockErr.ProductoID)
	assert.Equal(t, int64(5), stockErr.StockActual)
	assert.Equal(t, int64(8), stockErr.CantidadPedida)

	assert.Equal(t, int64(5), s.productos["p1"].Stock)
	assert.Equal(t, int64(5), loteDisponible(s, "l1"))
	assert.Empty(t, s.salidas)
	assert.Empty(t, s.movimientos)
}

func TestRegistrarSalida_DescuentoVigente(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 10.00, 20)
	seedLote(s, "l1", "p1", 6.00, 20, time.Now().Add(-time.Hour))
	s.descuentos["d1"] = &entity.Descuento{
		ID:           "d1",
		Porcentaje:   decimal.NewFromInt(10),
		ProductoID:   "p1",
		VigenteDesde: time.Now().Add(-time.Hour),
		VigenteHasta: time.Now().Add(time.Hour),
		Activo:       true,
	}

	resp, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "FIFO",
		Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 3, DescuentoID: "d1"}},
	})
	require.NoError(t, err)

	// 3×10.00 con 10% = 27.00; IVA 4.05; total 31.05.
	assert.Equal(t, "27.00", resp.Subtotal.StringFixed(2))
	assert.Equal(t, "4.05", resp.IVA.StringFixed(2))
	assert.Equal(t, "31.05", resp.Total.StringFixed(2))
	assert.Equal(t, "10", resp.Detalles[0].Descuento.String())
}

func TestRegistrarSalida_DescuentoNoAplicableDegradaACero(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 10.00, 20)
	seedLote(s, "l1", "p1", 6.00, 20, time.Now().Add(-time.Hour))
	s.descuentos["vencido"] = &entity.Descuento{
		ID:           "vencido",
		Porcentaje:   decimal.NewFromInt(50),
		ProductoID:   "p1",
		VigenteDesde: time.Now().Add(-48 * time.Hour),
		VigenteHasta: time.Now().Add(-24 * time.Hour),
		Activo:       true,
	}
	s.descuentos["otro-producto"] = &entity.Descuento{
		ID:           "otro-producto",
		Porcentaje:   decimal.NewFromInt(50),
		ProductoID:   "p2",
		VigenteDesde: time.Now().Add(-time.Hour),
		VigenteHasta: time.Now().Add(time.Hour),
		Activo:       true,
	}

	for _, descuentoID := range []string{"vencido", "otro-producto", "inexistente"} {
		resp, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
			MetodoValoracion: "PROMEDIO",
			Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 1, DescuentoID: descuentoID}},
		})
		require.NoError(t, err, descuentoID)
		assert.Equal(t, "10.00", resp.Subtotal.StringFixed(2), "descuento %s debe degradar a precio pleno", descuentoID)
		assert.True(t, resp.Detalles[0].Descuento.IsZero())
	}
}

func TestRegistrarSalida_MismoProductoEnDosLineas(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 10)
	seedLote(s, "l1", "p1", 2.00, 10, time.Now().Add(-time.Hour))

	resp, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "FIFO",
		Detalles: []dto.SalidaDetalleRequest{
			{ProductoID: "p1", Cantidad: 6},
			{ProductoID: "p1", Cantidad: 3},
		},
	})
	require.NoError(t, err)

	// La segunda línea ve el stock ya descontado por la primera.
	assert.Equal(t, int64(4), resp.Detalles[0].NuevoStock)
	assert.Equal(t, int64(1), resp.Detalles[1].NuevoStock)
	assert.Equal(t, int64(1), s.productos["p1"].Stock)
	assert.Equal(t, int64(1), loteDisponible(s, "l1"))
}

func TestRegistrarSalida_MismoProductoDosLineasSinStockRevierteTodo(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 10)
	seedLote(s, "l1", "p1", 2.00, 10, time.Now().Add(-time.Hour))

	_, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "FIFO",
		Detalles: []dto.SalidaDetalleRequest{
			{ProductoID: "p1", Cantidad: 6},
			{ProductoID: "p1", Cantidad: 6},
		},
	})
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Equal(t, int64(10), s.productos["p1"].Stock)
	assert.Equal(t, int64(10), loteDisponible(s, "l1"))
	assert.Empty(t, s.movimientos)
}

func TestRegistrarSalida_ConcurrenciaNoSobrevende(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 100)
	seedLote(s, "l1", "p1", 2.00, 100, time.Now().Add(-time.Hour))

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RegistrarSalida(context.Background(), "u1", dto.RegistrarSalidaRequest{
				MetodoValoracion: "FIFO",
				Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 60}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var fallas []error
	for err := range errs {
		if err != nil {
			fallas = append(fallas, err)
		}
	}
	// Exactamente una de las dos ventas debe fallar por stock; jamás las dos
	// pueden pasar (stock llegaría a -20).
	require.Len(t, fallas, 1)
	assert.ErrorIs(t, fallas[0], domain.ErrStockInsuficiente)
	assert.Equal(t, int64(40), s.productos["p1"].Stock)
	assert.Len(t, s.movimientos, 1)
	assert.Len(t, s.salidas, 1)
}

func TestRegistrarAjuste_SinDiferenciaNoRegistraNada(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 10)

	resp, err := uc.RegistrarAjuste(context.Background(), "u1", dto.RegistrarAjusteRequest{
		ProductoID:   "p1",
		CantidadReal: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.MovimientoID)
	assert.Empty(t, resp.Numero)
	assert.Equal(t, int64(0), resp.Diferencia)
	assert.Empty(t, s.movimientos)
	assert.Equal(t, int64(10), s.productos["p1"].Stock)
}

func TestRegistrarAjuste_ReduceStock(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 10)

	resp, err := uc.RegistrarAjuste(context.Background(), "u1", dto.RegistrarAjusteRequest{
		ProductoID:   "p1",
		CantidadReal: 7,
		Observacion:  "conteo físico agosto",
	})
	require.NoError(t, err)
	assert.Equal(t, "AJU-000001", resp.Numero)
	assert.Equal(t, int64(10), resp.StockAnterior)
	assert.Equal(t, int64(7), resp.StockNuevo)
	assert.Equal(t, int64(-3), resp.Diferencia)
	assert.Equal(t, int64(7), s.productos["p1"].Stock)

	require.Len(t, s.movimientos, 1)
	m := s.movimientos[0]
	assert.Equal(t, entity.MovimientoAjuste, m.Tipo)
	assert.Equal(t, entity.DireccionSalida, m.Direccion)
	assert.Equal(t, int64(3), m.Cantidad) // valor absoluto de la diferencia
	assert.True(t, m.Subtotal.IsZero())
	assert.True(t, m.IVA.IsZero())
	assert.True(t, m.Total.IsZero())
	assert.Equal(t, "AJUSTE: conteo físico agosto", m.Observacion)
}

func TestRegistrarAjuste_AumentaStock(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 4)

	resp, err := uc.RegistrarAjuste(context.Background(), "u1", dto.RegistrarAjusteRequest{
		ProductoID:   "p1",
		CantidadReal: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Diferencia)
	assert.Equal(t, int64(9), s.productos["p1"].Stock)

	require.Len(t, s.movimientos, 1)
	assert.Equal(t, entity.DireccionEntrada, s.movimientos[0].Direccion)
	assert.Equal(t, int64(5), s.movimientos[0].Cantidad)
	assert.Equal(t, "AJUSTE: corrección de inventario", s.movimientos[0].Observacion)
}

func TestRegistrarAjuste_ProductoInactivoPermitido(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 10).Activo = false

	_, err := uc.RegistrarAjuste(context.Background(), "u1", dto.RegistrarAjusteRequest{
		ProductoID:   "p1",
		CantidadReal: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.productos["p1"].Stock)
}

func TestRegistrarAjuste_Valida(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.RegistrarAjuste(context.Background(), "u1", dto.RegistrarAjusteRequest{ProductoID: "p1", CantidadReal: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegistrarAjuste(context.Background(), "", dto.RegistrarAjusteRequest{ProductoID: "p1", CantidadReal: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegistrarAjuste(context.Background(), "u1", dto.RegistrarAjusteRequest{ProductoID: "no-existe", CantidadReal: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKardex_SaldoCoincideConStock(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 5.00, 0)
	ctx := context.Background()

	_, err := uc.RegistrarEntrada(ctx, "u1", dto.RegistrarEntradaRequest{
		ProveedorID: "prov-1",
		Detalles:    []dto.EntradaDetalleRequest{{ProductoID: "p1", Cantidad: 10, PrecioCompra: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	_, err = uc.RegistrarSalida(ctx, "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "FIFO",
		Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 4}},
	})
	require.NoError(t, err)
	_, err = uc.RegistrarAjuste(ctx, "u1", dto.RegistrarAjusteRequest{ProductoID: "p1", CantidadReal: 5})
	require.NoError(t, err)

	k, err := uc.Kardex(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, k.Movimientos, 3)
	assert.Equal(t, int64(10), k.Movimientos[0].SaldoAcumulado)
	assert.Equal(t, int64(6), k.Movimientos[1].SaldoAcumulado)
	assert.Equal(t, int64(5), k.Movimientos[2].SaldoAcumulado)
	assert.Equal(t, int64(5), k.SaldoActual)
	assert.Equal(t, s.productos["p1"].Stock, k.SaldoActual)
}

func TestKardex_ProductoInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)
	_, err := uc.Kardex(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReporte_TotalesPorDireccion(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 10.00, 0)
	ctx := context.Background()

	_, err := uc.RegistrarEntrada(ctx, "u1", dto.RegistrarEntradaRequest{
		ProveedorID: "prov-1",
		Detalles:    []dto.EntradaDetalleRequest{{ProductoID: "p1", Cantidad: 10, PrecioCompra: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)
	_, err = uc.RegistrarSalida(ctx, "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "FIFO",
		Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 3}},
	})
	require.NoError(t, err)

	rep, err := uc.Reporte(ctx, nil, nil, "")
	require.NoError(t, err)
	assert.Len(t, rep.Movimientos, 2)
	assert.Equal(t, int64(10), rep.Totales.CantidadEntradas)
	assert.Equal(t, int64(3), rep.Totales.CantidadSalidas)
	assert.Equal(t, "40.00", rep.Totales.TotalEntradas.StringFixed(2))
	// 3×10.00 = 30.00; IVA 4.50; total 34.50. El IVA agregado solo suma salidas.
	assert.Equal(t, "34.50", rep.Totales.TotalSalidas.StringFixed(2))
	assert.Equal(t, "4.50", rep.Totales.IVATotal.StringFixed(2))

	soloSalidas, err := uc.Reporte(ctx, nil, nil, entity.MovimientoSalida)
	require.NoError(t, err)
	assert.Len(t, soloSalidas.Movimientos, 1)
	assert.Equal(t, int64(0), soloSalidas.Totales.CantidadEntradas)
}

func TestSecuencias_IndependientesPorTipo(t *testing.T) {
	uc, s := newTestUseCase(t)
	seedProducto(s, "p1", 10.00, 0)
	ctx := context.Background()

	ent1, err := uc.RegistrarEntrada(ctx, "u1", dto.RegistrarEntradaRequest{
		ProveedorID: "prov-1",
		Detalles:    []dto.EntradaDetalleRequest{{ProductoID: "p1", Cantidad: 5, PrecioCompra: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	ent2, err := uc.RegistrarEntrada(ctx, "u1", dto.RegistrarEntradaRequest{
		ProveedorID: "prov-1",
		Detalles:    []dto.EntradaDetalleRequest{{ProductoID: "p1", Cantidad: 5, PrecioCompra: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	sal, err := uc.RegistrarSalida(ctx, "u1", dto.RegistrarSalidaRequest{
		MetodoValoracion: "FIFO",
		Detalles:         []dto.SalidaDetalleRequest{{ProductoID: "p1", Cantidad: 2}},
	})
	require.NoError(t, err)
	aju, err := uc.RegistrarAjuste(ctx, "u1", dto.RegistrarAjusteRequest{ProductoID: "p1", CantidadReal: 20})
	require.NoError(t, err)

	assert.Equal(t, "ENT-000001", ent1.Numero)
	assert.Equal(t, "ENT-000002", ent2.Numero)
	assert.Equal(t, "SAL-000001", sal.Numero)
	assert.Equal(t, "AJU-000001", aju.Numero)
}
