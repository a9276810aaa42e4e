package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelfabpro/inventory-service/internal/application/inventory"
	"github.com/steelfabpro/inventory-service/internal/domain"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testActor = "00000000-0000-0000-0000-0000000000aa"

// testEnv arma el caso de uso de stock sobre el driver en memoria, con los
// repos a mano para sembrar datos y verificar estado confirmado.
type testEnv struct {
	store   *memory.Store
	stockUC *inventory.StockUseCase
	alertUC *inventory.AlertUseCase
	auditUC *inventory.AuditUseCase

	materials *memory.MaterialRepo
	stocks    *memory.StockRepo
	movements *memory.StockMovementRepo
	audits    *memory.AuditRepo
	alerts    *memory.AlertRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	env := &testEnv{
		store:     store,
		materials: memory.NewMaterialRepository(store),
		stocks:    memory.NewStockRepository(store),
		movements: memory.NewStockMovementRepository(store),
		audits:    memory.NewAuditRepository(store),
		alerts:    memory.NewAlertRepository(store),
	}
	env.stockUC = inventory.NewStockUseCase(memory.NewTxRunner(store), env.materials, env.stocks, env.movements)
	env.alertUC = inventory.NewAlertUseCase(env.alerts)
	env.auditUC = inventory.NewAuditUseCase(env.audits, env.materials)
	return env
}

// seedMaterial crea un material de prueba; minStock vacío = sin umbral.
func (env *testEnv) seedMaterial(t *testing.T, minStock string) *entity.Material {
	t.Helper()
	m := &entity.Material{
		ID:        uuid.New().String(),
		Name:      "Lámina HR 3mm",
		Type:      "lamina",
		Unit:      "kg",
		CreatedAt: time.Now(),
	}
	if minStock != "" {
		v := decimal.RequireFromString(minStock)
		m.MinStock = &v
	}
	require.NoError(t, env.materials.Create(m))
	return m
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de signo y total acumulado
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_NormalizaSignoYActualizaTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "")

	// El caller manda -5: una entrada siempre se guarda positiva.
	mov, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: dec("-5")}, testActor)
	require.NoError(t, err)
	assert.True(t, mov.Quantity.Equal(dec("5")), "la entrada debe guardarse como +5, se guardó %s", mov.Quantity)
	assert.Equal(t, m.ID, mov.MaterialID)
	assert.Equal(t, testActor, mov.CreatedBy)

	total, err := env.stockUC.CurrentStock(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("5")), "total esperado 5, obtenido %s", total)
}

func TestStockOut_NormalizaSignoYActualizaTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "")

	_, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: dec("10")}, testActor)
	require.NoError(t, err)

	// El caller manda +4: una salida siempre se guarda negativa.
	mov, err := env.stockUC.StockOut(ctx, m.ID, inventory.MovementInput{Quantity: dec("4")}, testActor)
	require.NoError(t, err)
	assert.True(t, mov.Quantity.Equal(dec("-4")), "la salida debe guardarse como -4, se guardó %s", mov.Quantity)

	total, err := env.stockUC.CurrentStock(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("6")))
}

// El total materializado siempre coincide con la suma del libro completo.
func TestMovimientos_TotalCoincideConSumaDelLibro(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "")

	for _, q := range []string{"10", "3.5", "2"} {
		_, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: dec(q)}, testActor)
		require.NoError(t, err)
	}
	for _, q := range []string{"4", "0.5"} {
		_, err := env.stockUC.StockOut(ctx, m.ID, inventory.MovementInput{Quantity: dec(q)}, testActor)
		require.NoError(t, err)
	}

	total, err := env.stockUC.CurrentStock(ctx, m.ID)
	require.NoError(t, err)
	sum, err := env.movements.SumByMaterial(m.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(sum), "total materializado %s != suma del libro %s", total, sum)
	assert.True(t, total.Equal(dec("11")), "total esperado 11, obtenido %s", total)
}

// La cantidad cero es válida: queda en el libro y en la bitácora sin mover el total.
func TestStockIn_CantidadCeroEsValida(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "")

	mov, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: decimal.Zero}, testActor)
	require.NoError(t, err)
	assert.True(t, mov.Quantity.IsZero())

	movs, err := env.stockUC.ListMovements(ctx, m.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

// Una salida puede dejar el total negativo: el umbral solo dispara alertas,
// nunca bloquea el movimiento.
func TestStockOut_PermiteSobregiro(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "")

	_, err := env.stockUC.StockOut(ctx, m.ID, inventory.MovementInput{Quantity: dec("7")}, testActor)
	require.NoError(t, err)

	total, err := env.stockUC.CurrentStock(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("-7")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Material inexistente: nada queda escrito
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_MaterialInexistente_NoEscribeNada(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.stockUC.StockIn(ctx, uuid.New().String(), inventory.MovementInput{Quantity: dec("5")}, testActor)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.stockUC.StockOut(ctx, uuid.New().String(), inventory.MovementInput{Quantity: dec("5")}, testActor)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	alerts, err := env.alerts.List("", false, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, alerts, "no debe quedar ninguna alerta")
}

func TestCurrentStock_MaterialInexistente(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.stockUC.CurrentStock(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bitácora: un registro por movimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestAuditoria_UnRegistroPorMovimiento(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "")

	_, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: dec("8")}, testActor)
	require.NoError(t, err)
	_, err = env.stockUC.StockOut(ctx, m.ID, inventory.MovementInput{Quantity: dec("3")}, testActor)
	require.NoError(t, err)

	records, err := env.auditUC.ListByMaterial(ctx, m.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, entity.ChangeTypeIN, records[0].ChangeType)
	assert.True(t, records[0].Quantity.Equal(dec("8")), "la bitácora guarda la cantidad firmada")
	assert.Equal(t, entity.ChangeTypeOUT, records[1].ChangeType)
	assert.True(t, records[1].Quantity.Equal(dec("-3")))
	assert.Equal(t, testActor, records[1].UserID)
}

func TestAuditoria_AnotacionManual(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "")

	rec, err := env.auditUC.Annotate(ctx, m.ID, "conteo físico sin novedades", testActor)
	require.NoError(t, err)
	assert.Equal(t, entity.ChangeTypeNOTE, rec.ChangeType)
	assert.True(t, rec.Quantity.IsZero())

	_, err = env.auditUC.Annotate(ctx, m.ID, "", testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas de stock bajo: deduplicación y rearme
// ──────────────────────────────────────────────────────────────────────────────

// Solo el primer cruce del umbral levanta alerta; salidas posteriores con la
// alerta aún abierta no duplican.
func TestAlertas_SoloUnaAbiertaPorMaterial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "10")

	_, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: dec("12")}, testActor)
	require.NoError(t, err)

	// 12 - 5 = 7 < 10: primera alerta.
	_, err = env.stockUC.StockOut(ctx, m.ID, inventory.MovementInput{Quantity: dec("5")}, testActor)
	require.NoError(t, err)
	// 7 - 5 = 2 < 10: sigue bajo el umbral, pero la alerta ya existe.
	_, err = env.stockUC.StockOut(ctx, m.ID, inventory.MovementInput{Quantity: dec("5")}, testActor)
	require.NoError(t, err)

	open, err := env.alertUC.List(ctx, m.ID, true, 0, 0)
	require.NoError(t, err)
	require.Len(t, open, 1, "debe haber exactamente una alerta abierta")
	assert.Equal(t, entity.AlertTypeLowStock, open[0].AlertType)
	assert.True(t, open[0].IsOpen())
}

// Las entradas nunca levantan alerta, aun con el total bajo el umbral.
func TestAlertas_EntradaNoDisparaAlerta(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "100")

	_, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: dec("1")}, testActor)
	require.NoError(t, err)

	alerts, err := env.alertUC.List(ctx, m.ID, false, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

// Sin umbral configurado no hay alertas, sin importar qué tan bajo caiga el total.
func TestAlertas_SinUmbralNoHayAlertas(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "")

	_, err := env.stockUC.StockOut(ctx, m.ID, inventory.MovementInput{Quantity: dec("1000")}, testActor)
	require.NoError(t, err)

	alerts, err := env.alertUC.List(ctx, m.ID, false, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

// Resolver la alerta rearma el disparo: el siguiente cruce del umbral levanta
// una alerta nueva con identidad distinta.
func TestAlertas_ResolverRearmaElDisparo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "10")

	_, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: dec("12")}, testActor)
	require.NoError(t, err)
	_, err = env.stockUC.StockOut(ctx, m.ID, inventory.MovementInput{Quantity: dec("5")}, testActor)
	require.NoError(t, err)

	open, err := env.alertUC.List(ctx, m.ID, true, 0, 0)
	require.NoError(t, err)
	require.Len(t, open, 1)
	first := open[0]

	resolved, err := env.alertUC.Resolve(ctx, first.ID, testActor)
	require.NoError(t, err)
	assert.False(t, resolved.IsOpen())
	assert.Equal(t, testActor, resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAt)

	// Sigue bajo el umbral: la siguiente salida levanta una alerta nueva.
	_, err = env.stockUC.StockOut(ctx, m.ID, inventory.MovementInput{Quantity: dec("1")}, testActor)
	require.NoError(t, err)

	open, err = env.alertUC.List(ctx, m.ID, true, 0, 0)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.NotEqual(t, first.ID, open[0].ID, "la nueva alerta debe tener identidad propia")

	all, err := env.alertUC.List(ctx, m.ID, false, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2, "el historial conserva la alerta resuelta y la nueva")
}

func TestAlertas_ResolverDosVeces(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "10")

	_, err := env.stockUC.StockOut(ctx, m.ID, inventory.MovementInput{Quantity: dec("1")}, testActor)
	require.NoError(t, err)

	open, err := env.alertUC.List(ctx, m.ID, true, 0, 0)
	require.NoError(t, err)
	require.Len(t, open, 1)

	_, err = env.alertUC.Resolve(ctx, open[0].ID, testActor)
	require.NoError(t, err)

	_, err = env.alertUC.Resolve(ctx, open[0].ID, testActor)
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
}

func TestAlertas_ResolverInexistente(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.alertUC.Resolve(context.Background(), uuid.New().String(), testActor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: salidas simultáneas del mismo material
// ──────────────────────────────────────────────────────────────────────────────

// Dos salidas concurrentes de 6 sobre un total de 10 (umbral 5) deben
// serializarse: total final -2, libro con ambos movimientos, dos registros de
// bitácora y exactamente una alerta abierta.
func TestConcurrencia_SalidasSimultaneasUnaSolaAlerta(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "5")

	_, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: dec("10")}, testActor)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.stockUC.StockOut(ctx, m.ID, inventory.MovementInput{Quantity: dec("6")}, testActor)
		}(i)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	total, err := env.stockUC.CurrentStock(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("-2")), "total esperado -2, obtenido %s", total)

	movs, err := env.stockUC.ListMovements(ctx, m.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 3)

	records, err := env.auditUC.ListByMaterial(ctx, m.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	open, err := env.alertUC.List(ctx, m.ID, true, 0, 0)
	require.NoError(t, err)
	assert.Len(t, open, 1, "las salidas serializadas deben producir exactamente una alerta abierta")
}

// Movimientos de materiales distintos no se serializan entre sí; cada material
// mantiene su propio total.
func TestConcurrencia_MaterialesDistintosNoSeInterfieren(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.seedMaterial(t, "")
	b := env.seedMaterial(t, "")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = env.stockUC.StockIn(ctx, a.ID, inventory.MovementInput{Quantity: dec("1")}, testActor)
		}()
		go func() {
			defer wg.Done()
			_, _ = env.stockUC.StockOut(ctx, b.ID, inventory.MovementInput{Quantity: dec("1")}, testActor)
		}()
	}
	wg.Wait()

	totalA, err := env.stockUC.CurrentStock(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, totalA.Equal(dec("10")))

	totalB, err := env.stockUC.CurrentStock(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, totalB.Equal(dec("-10")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación: deriva entre la fila materializada y el libro
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_SinDerivaNoTocaNada(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "")

	_, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: dec("9")}, testActor)
	require.NoError(t, err)

	drift, err := env.stockUC.Reconcile(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, drift.IsZero())
}

func TestReconcile_ReparaDerivaInyectada(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "")

	_, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: dec("9")}, testActor)
	require.NoError(t, err)

	// Corromper la fila materializada directamente: el libro manda.
	require.NoError(t, env.stocks.Upsert(&entity.Stock{
		MaterialID: m.ID,
		Quantity:   dec("42"),
		UpdatedAt:  time.Now(),
	}))

	drift, err := env.stockUC.Reconcile(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, drift.Equal(dec("33")), "deriva esperada 33, obtenida %s", drift)

	total, err := env.stockUC.CurrentStock(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("9")), "la fila debe repararse con la suma del libro")
}

func TestReconcileAll_RecorreTodosLosMateriales(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.seedMaterial(t, "")
	b := env.seedMaterial(t, "")

	_, err := env.stockUC.StockIn(ctx, a.ID, inventory.MovementInput{Quantity: dec("5")}, testActor)
	require.NoError(t, err)
	_, err = env.stockUC.StockIn(ctx, b.ID, inventory.MovementInput{Quantity: dec("3")}, testActor)
	require.NoError(t, err)

	require.NoError(t, env.stocks.Upsert(&entity.Stock{MaterialID: a.ID, Quantity: dec("99"), UpdatedAt: time.Now()}))
	require.NoError(t, env.stocks.Upsert(&entity.Stock{MaterialID: b.ID, Quantity: dec("-1"), UpdatedAt: time.Now()}))

	require.NoError(t, env.stockUC.ReconcileAll(ctx))

	totalA, err := env.stockUC.CurrentStock(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, totalA.Equal(dec("5")))
	totalB, err := env.stockUC.CurrentStock(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, totalB.Equal(dec("3")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_OrdenCronologicoYPaginacion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.seedMaterial(t, "")

	for _, q := range []string{"1", "2", "3", "4", "5"} {
		_, err := env.stockUC.StockIn(ctx, m.ID, inventory.MovementInput{Quantity: dec(q)}, testActor)
		require.NoError(t, err)
	}

	page, err := env.stockUC.ListMovements(ctx, m.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, page[0].Quantity.Equal(dec("3")))
	assert.True(t, page[1].Quantity.Equal(dec("4")))

	_, err = env.stockUC.ListMovements(ctx, "no-existe", 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
