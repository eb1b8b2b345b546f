package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/application/inventory"
	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/authz"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	adminActor   = authz.Actor{ID: "user-admin", Role: entity.RoleAdmin}
	bodegaActor  = authz.Actor{ID: "user-bodega", Role: entity.RoleBodega}
	nurseActor   = authz.Actor{ID: "user-enf", Role: entity.RoleEnfermeria}
	unknownActor = authz.Actor{ID: "user-x", Role: "visitante"}
)

type fixture struct {
	uc         *inventory.UseCase
	tx         *memTxRunner
	products   *memProductRepo
	movements  *memMovementRepo
	procedures *memProcedureRepo
	patients   *memPatientRepo
}

func newFixture() *fixture {
	products := newMemProductRepo()
	movements := newMemMovementRepo()
	procedures := newMemProcedureRepo()
	patients := newMemPatientRepo()
	tx := &memTxRunner{products: products, movements: movements, procedures: procedures}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := inventory.NewUseCase(tx, products, movements, procedures, patients, authz.NewRoleChecker(), log)
	return &fixture{uc: uc, tx: tx, products: products, movements: movements, procedures: procedures, patients: patients}
}

func (f *fixture) seedProduct(t *testing.T, id, code string, stock int64, price string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:        id,
		Name:      "Producto " + code,
		Code:      code,
		Category:  entity.CategoryAposito,
		Stock:     stock,
		MinStock:  2,
		UnitPrice: decimal.RequireFromString(price),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.products.Create(p))
	return p
}

func (f *fixture) seedActiveProcedure(t *testing.T, procID, patientID, patientName string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.patients.Create(&entity.Patient{
		ID: patientID, Name: patientName, Document: "123", Status: entity.PatientActive,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, f.procedures.Create(&entity.Procedure{
		ID: procID, PatientID: patientID, MachineID: "maq-1", Surgeon: "Dra. Ruiz",
		Date: now, Status: entity.ProcedureActive, CreatedAt: now, UpdatedAt: now,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_ConStockInicialEscribeKardex(t *testing.T) {
	f := newFixture()

	out, err := f.uc.CreateProduct(context.Background(), bodegaActor, dto.CreateProductRequest{
		Name:         "Apósito de espuma",
		Code:         "  ap-001 ",
		Category:     entity.CategoryAposito,
		InitialStock: 10,
		MinStock:     3,
		UnitPrice:    decimal.RequireFromString("25000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "AP-001", out.Code, "el código debe normalizarse (trim + mayúsculas)")
	assert.Equal(t, int64(10), out.Stock)

	movs := f.movements.byProduct(out.ID, entity.RefInitialStock)
	require.Len(t, movs, 1, "stock inicial > 0 debe escribir un movimiento initial_stock")
	assert.Equal(t, entity.DirectionIn, movs[0].Direction)
	assert.Equal(t, int64(10), movs[0].Quantity)
	assert.Equal(t, bodegaActor.ID, movs[0].CreatedBy)
}

func TestCreateProduct_SinStockInicialNoEscribeKardex(t *testing.T) {
	f := newFixture()

	out, err := f.uc.CreateProduct(context.Background(), adminActor, dto.CreateProductRequest{
		Name: "Canister 300ml", Code: "CAN-300", Category: entity.CategoryCanister,
		UnitPrice: decimal.RequireFromString("80000"),
	})
	require.NoError(t, err)
	assert.Empty(t, f.movements.byProduct(out.ID, ""), "stock inicial 0 no genera movimiento")
}

func TestCreateProduct_CodigoDuplicado(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 5, "1000")

	_, err := f.uc.CreateProduct(context.Background(), adminActor, dto.CreateProductRequest{
		Name: "Otro apósito", Code: "ap-001", UnitPrice: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode,
		"el mismo código con distinta capitalización debe rechazarse")
}

func TestCreateProduct_RolSinPermiso(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateProduct(context.Background(), nurseActor, dto.CreateProductRequest{
		Name: "X", Code: "X-1", UnitPrice: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "enfermería no crea productos")

	_, err = f.uc.CreateProduct(context.Background(), unknownActor, dto.CreateProductRequest{
		Name: "X", Code: "X-2", UnitPrice: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "rol desconocido no tiene capacidades")
}

func TestCreateProduct_EntradaInvalida(t *testing.T) {
	f := newFixture()

	casos := []dto.CreateProductRequest{
		{Name: "", Code: "C-1", UnitPrice: decimal.Zero},
		{Name: "Ok", Code: "   ", UnitPrice: decimal.Zero},
		{Name: "Ok", Code: "C-1", InitialStock: -5, UnitPrice: decimal.Zero},
		{Name: "Ok", Code: "C-1", UnitPrice: decimal.RequireFromString("-1")},
	}
	for _, in := range casos {
		_, err := f.uc.CreateProduct(context.Background(), adminActor, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// EditProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestEditProduct_DeltaPositivoEscribeEntrada(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 5, "1000")

	out, err := f.uc.EditProduct(context.Background(), bodegaActor, "p1", dto.UpdateProductRequest{
		Name: "Producto AP-001", Code: "AP-001", Category: entity.CategoryAposito,
		Stock: 12, MinStock: 2, UnitPrice: decimal.RequireFromString("1000"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), out.Stock)

	movs := f.movements.byProduct("p1", entity.RefManualEdit)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.DirectionIn, movs[0].Direction)
	assert.Equal(t, int64(7), movs[0].Quantity, "el movimiento lleva la magnitud del delta")
	assert.Equal(t, "edición manual: stock 5 -> 12", movs[0].Note)
}

func TestEditProduct_DeltaNegativoEscribeSalida(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 10, "1000")

	_, err := f.uc.EditProduct(context.Background(), adminActor, "p1", dto.UpdateProductRequest{
		Name: "Producto AP-001", Code: "AP-001", Category: entity.CategoryAposito,
		Stock: 4, MinStock: 2, UnitPrice: decimal.RequireFromString("1000"),
	})
	require.NoError(t, err)

	movs := f.movements.byProduct("p1", entity.RefManualEdit)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.DirectionOut, movs[0].Direction)
	assert.Equal(t, int64(6), movs[0].Quantity)
}

func TestEditProduct_SinCambioDeStockNoTocaKardex(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 5, "1000")

	out, err := f.uc.EditProduct(context.Background(), adminActor, "p1", dto.UpdateProductRequest{
		Name: "Nombre nuevo", Code: "AP-001", Category: entity.CategoryAposito,
		Stock: 5, MinStock: 2, UnitPrice: decimal.RequireFromString("2000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nombre nuevo", out.Name)
	assert.Empty(t, f.movements.byProduct("p1", ""),
		"edición pura de metadatos no escribe kardex")
}

func TestEditProduct_NoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.uc.EditProduct(context.Background(), adminActor, "nope", dto.UpdateProductRequest{
		Name: "X", Code: "X-1", UnitPrice: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEditProduct_CodigoDeOtroProducto(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 5, "1000")
	f.seedProduct(t, "p2", "AP-002", 5, "1000")

	_, err := f.uc.EditProduct(context.Background(), adminActor, "p2", dto.UpdateProductRequest{
		Name: "Producto AP-002", Code: "AP-001", Category: entity.CategoryAposito,
		Stock: 5, MinStock: 2, UnitPrice: decimal.RequireFromString("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestEditProduct_EdicionConcurrenteMantieneKardexConsistente(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 20, "1000")
	require.NoError(t, f.movements.Create(&entity.Movement{
		ID: "m0", ProductID: "p1", Direction: entity.DirectionIn, Quantity: 20,
		RefKind: entity.RefInitialStock, CreatedAt: time.Now(),
	}))

	edit := func(stock int64) error {
		_, err := f.uc.EditProduct(context.Background(), adminActor, "p1", dto.UpdateProductRequest{
			Name: "Producto AP-001", Code: "AP-001", Category: entity.CategoryAposito,
			Stock: stock, MinStock: 2, UnitPrice: decimal.RequireFromString("1000"),
		})
		return err
	}

	// Otra edición commitea justo antes de que esta transacción tome el lock:
	// el delta debe calcularse contra el stock ya actualizado (15), no contra
	// la lectura original (20).
	f.tx.before = func() {
		f.tx.before = nil
		require.NoError(t, edit(15))
	}
	require.NoError(t, edit(18))

	p, _ := f.products.GetByID("p1")
	assert.Equal(t, int64(18), p.Stock)

	movs := f.movements.byProduct("p1", entity.RefManualEdit)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.DirectionIn, movs[1].Direction)
	assert.Equal(t, int64(3), movs[1].Quantity, "el segundo delta parte del stock vigente")
	assert.Equal(t, "edición manual: stock 15 -> 18", movs[1].Note)

	sum, err := f.movements.SignedSumByProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, p.Stock, sum, "el stock debe seguir igual a la suma firmada del kardex")
}

// ──────────────────────────────────────────────────────────────────────────────
// BulkStockEntry
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkStockEntry_AplicaYOmite(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 5, "1000")
	f.seedProduct(t, "p2", "AP-002", 0, "1000")

	out, err := f.uc.BulkStockEntry(context.Background(), bodegaActor, dto.StockEntryRequest{
		Items: []dto.StockEntryItem{
			{ProductID: "p1", Quantity: 10, Reason: "compra mensual"},
			{ProductID: "p2", Quantity: 0},
			{ProductID: "p1", Quantity: -3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"p1"}, out.Applied)
	assert.Equal(t, []string{"p2", "p1"}, out.Skipped, "cantidades <= 0 se omiten sin error")
	assert.Empty(t, out.Failed)

	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, int64(15), p1.Stock)

	movs := f.movements.byProduct("p1", entity.RefStockEntry)
	require.Len(t, movs, 1)
	assert.Equal(t, "compra mensual", movs[0].Note)
}

func TestBulkStockEntry_FalloDeUnProductoNoFrenaElBatch(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 5, "1000")
	f.seedProduct(t, "p2", "AP-002", 5, "1000")
	f.seedProduct(t, "p3", "AP-003", 5, "1000")
	f.products.failIncrementFor["p2"] = errSimulatedDB

	out, err := f.uc.BulkStockEntry(context.Background(), adminActor, dto.StockEntryRequest{
		Items: []dto.StockEntryItem{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p2", Quantity: 1},
			{ProductID: "p3", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p3"}, out.Applied,
		"los productos posteriores al fallo deben aplicarse igual")
	require.Len(t, out.Failed, 1)
	assert.Equal(t, "p2", out.Failed[0].ProductID)

	p2, _ := f.products.GetByID("p2")
	assert.Equal(t, int64(5), p2.Stock, "el producto fallido no cambia")
	assert.Empty(t, f.movements.byProduct("p2", ""),
		"el fallo de stock no deja movimiento huérfano (misma tx)")
}

func TestBulkStockEntry_ProductoInexistenteQuedaEnFailed(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 5, "1000")

	out, err := f.uc.BulkStockEntry(context.Background(), adminActor, dto.StockEntryRequest{
		Items: []dto.StockEntryItem{
			{ProductID: "fantasma", Quantity: 2},
			{ProductID: "p1", Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, "fantasma", out.Failed[0].ProductID)
	assert.Equal(t, []string{"p1"}, out.Applied)
}

func TestBulkStockEntry_SinItems(t *testing.T) {
	f := newFixture()
	_, err := f.uc.BulkStockEntry(context.Background(), adminActor, dto.StockEntryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBulkStockEntry_RolEnfermeriaBloqueado(t *testing.T) {
	f := newFixture()
	_, err := f.uc.BulkStockEntry(context.Background(), nurseActor, dto.StockEntryRequest{
		Items: []dto.StockEntryItem{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// ConsumeForProcedure
// ──────────────────────────────────────────────────────────────────────────────

func TestConsume_DescuentaYEscribeTodo(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 10, "1000")
	f.seedProduct(t, "p2", "CAN-300", 4, "5000")
	f.seedActiveProcedure(t, "proc-1", "pac-1", "Juan Pérez")

	err := f.uc.ConsumeForProcedure(context.Background(), nurseActor, "proc-1", dto.ConsumeRequest{
		Items: []dto.ConsumeItem{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	p1, _ := f.products.GetByID("p1")
	p2, _ := f.products.GetByID("p2")
	assert.Equal(t, int64(7), p1.Stock)
	assert.Equal(t, int64(3), p2.Stock)

	movs := f.movements.byProduct("p1", entity.RefProcedure)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.DirectionOut, movs[0].Direction)
	assert.Equal(t, "proc-1", movs[0].RefID)
	assert.Equal(t, "consumo en procedimiento de Juan Pérez", movs[0].Note)

	consumed, _ := f.procedures.ListProducts("proc-1")
	assert.Len(t, consumed, 2, "cada insumo deja su fila procedure_products")
}

func TestConsume_FaltanteDeStockRevierteTodoElBatch(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 10, "1000")
	f.seedProduct(t, "p2", "CAN-300", 2, "5000")
	f.seedActiveProcedure(t, "proc-1", "pac-1", "Juan Pérez")

	err := f.uc.ConsumeForProcedure(context.Background(), adminActor, "proc-1", dto.ConsumeRequest{
		Items: []dto.ConsumeItem{
			{ProductID: "p1", Quantity: 3}, // alcanzaría
			{ProductID: "p2", Quantity: 5}, // no alcanza
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p1, _ := f.products.GetByID("p1")
	p2, _ := f.products.GetByID("p2")
	assert.Equal(t, int64(10), p1.Stock, "todo-o-nada: el descuento previo se revierte")
	assert.Equal(t, int64(2), p2.Stock)
	assert.Empty(t, f.movements.byProduct("p1", ""), "ningún movimiento debe quedar escrito")
	consumed, _ := f.procedures.ListProducts("proc-1")
	assert.Empty(t, consumed)
}

func TestConsume_ItemsRepetidosSeConsolidan(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 10, "1000")
	f.seedActiveProcedure(t, "proc-1", "pac-1", "Juan Pérez")

	err := f.uc.ConsumeForProcedure(context.Background(), nurseActor, "proc-1", dto.ConsumeRequest{
		Items: []dto.ConsumeItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p1", Quantity: 3},
		},
	})
	require.NoError(t, err)

	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, int64(5), p1.Stock)
	movs := f.movements.byProduct("p1", entity.RefProcedure)
	require.Len(t, movs, 1, "los repetidos se consolidan en un solo movimiento")
	assert.Equal(t, int64(5), movs[0].Quantity)
}

func TestConsume_ProcedimientoNoActivo(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 10, "1000")
	f.seedActiveProcedure(t, "proc-1", "pac-1", "Juan Pérez")
	require.NoError(t, f.procedures.UpdateStatus("proc-1", entity.ProcedureCompleted, "10:00"))

	err := f.uc.ConsumeForProcedure(context.Background(), nurseActor, "proc-1", dto.ConsumeRequest{
		Items: []dto.ConsumeItem{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProcedureNotActive)
}

func TestConsume_FalloDelInsertDeConsumoRevierteDescuento(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 10, "1000")
	f.seedActiveProcedure(t, "proc-1", "pac-1", "Juan Pérez")
	f.procedures.failCreateProduct = errSimulatedDB

	err := f.uc.ConsumeForProcedure(context.Background(), adminActor, "proc-1", dto.ConsumeRequest{
		Items: []dto.ConsumeItem{{ProductID: "p1", Quantity: 3}},
	})
	require.Error(t, err)

	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, int64(10), p1.Stock, "el rollback cubre también el insert de consumo")
	assert.Empty(t, f.movements.byProduct("p1", ""))
}

func TestConsume_FalloAlLeerPacienteUsaNotaGenerica(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 10, "1000")
	f.seedActiveProcedure(t, "proc-1", "pac-1", "Juan Pérez")
	f.patients.failGetByID = errSimulatedDB

	err := f.uc.ConsumeForProcedure(context.Background(), nurseActor, "proc-1", dto.ConsumeRequest{
		Items: []dto.ConsumeItem{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err, "el nombre del paciente es decorativo: su fallo no bloquea el consumo")

	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, int64(8), p1.Stock)
	movs := f.movements.byProduct("p1", entity.RefProcedure)
	require.Len(t, movs, 1)
	assert.Equal(t, "consumo en procedimiento", movs[0].Note)
}

func TestConsume_CantidadInvalida(t *testing.T) {
	f := newFixture()
	f.seedActiveProcedure(t, "proc-1", "pac-1", "Juan Pérez")

	err := f.uc.ConsumeForProcedure(context.Background(), nurseActor, "proc-1", dto.ConsumeRequest{
		Items: []dto.ConsumeItem{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"en consumo clínico una cantidad <= 0 es error, no omisión")
}

func TestConsume_RolBodegaBloqueado(t *testing.T) {
	f := newFixture()
	f.seedActiveProcedure(t, "proc-1", "pac-1", "Juan Pérez")
	err := f.uc.ConsumeForProcedure(context.Background(), bodegaActor, "proc-1", dto.ConsumeRequest{
		Items: []dto.ConsumeItem{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "bodega no registra consumo clínico")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetMovementHistory
// ──────────────────────────────────────────────────────────────────────────────

func TestHistory_EnriqueceNotasConNombreActualDelPaciente(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 10, "1000")
	f.seedActiveProcedure(t, "proc-1", "pac-1", "Juan Pérez")

	require.NoError(t, f.uc.ConsumeForProcedure(context.Background(), nurseActor, "proc-1", dto.ConsumeRequest{
		Items: []dto.ConsumeItem{{ProductID: "p1", Quantity: 2}},
	}))

	// El paciente se renombra después del consumo: la vista debe mostrar el
	// nombre ACTUAL, no el almacenado en la nota.
	pac, _ := f.patients.GetByID("pac-1")
	pac.Name = "Juan P. Gómez"
	require.NoError(t, f.patients.Update(pac))

	out, err := f.uc.GetMovementHistory(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, out.Movements, 1)
	assert.Equal(t, "consumo en procedimiento de Juan P. Gómez", out.Movements[0].Note)
}

func TestHistory_ResumenYStockActual(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 0, "1000")

	now := time.Now()
	seed := []*entity.Movement{
		{ID: "m1", ProductID: "p1", Direction: entity.DirectionIn, Quantity: 10, RefKind: entity.RefStockEntry, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "m2", ProductID: "p1", Direction: entity.DirectionOut, Quantity: 4, RefKind: entity.RefManualAdjustment, CreatedAt: now.Add(-2 * time.Hour)},
		// Fila legada con cantidad negativa en salida: debe normalizarse por magnitud.
		{ID: "m3", ProductID: "p1", Direction: entity.DirectionOut, Quantity: -2, RefKind: entity.RefManualAdjustment, CreatedAt: now.Add(-1 * time.Hour)},
	}
	for _, m := range seed {
		require.NoError(t, f.movements.Create(m))
	}
	p, _ := f.products.GetByID("p1")
	p.Stock = 4
	require.NoError(t, f.products.Update(p))

	out, err := f.uc.GetMovementHistory(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, out.Movements, 3)
	assert.Equal(t, "m3", out.Movements[0].ID, "orden descendente por fecha")
	assert.Equal(t, int64(2), out.Movements[0].Quantity, "la magnitud normaliza cantidades legadas negativas")
	assert.Equal(t, int64(10), out.Summary.TotalIn)
	assert.Equal(t, int64(6), out.Summary.TotalOut)
	assert.Equal(t, int64(4), out.Summary.CurrentStock, "el stock del resumen sale del catálogo")
}

func TestHistory_ProductoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.GetMovementHistory(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReconcileStock
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_DetectaInconsistencia(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "AP-001", 10, "1000")

	require.NoError(t, f.movements.Create(&entity.Movement{
		ID: "m1", ProductID: "p1", Direction: entity.DirectionIn, Quantity: 10,
		RefKind: entity.RefInitialStock, CreatedAt: time.Now(),
	}))

	rec, err := f.uc.ReconcileStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.Equal(t, int64(10), rec.LedgerStock)

	// Se desalinea el stock denormalizado sin tocar el kardex.
	p, _ := f.products.GetByID("p1")
	p.Stock = 7
	require.NoError(t, f.products.Update(p))

	rec, err = f.uc.ReconcileStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, rec.Consistent)
	assert.Equal(t, int64(7), rec.CachedStock)
	assert.Equal(t, int64(10), rec.LedgerStock, "el kardex es la fuente de verdad")
}
