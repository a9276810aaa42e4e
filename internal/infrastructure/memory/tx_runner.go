package memory

import (
	"context"
	"sync"

	"github.com/steelfabpro/inventory-service/internal/application/inventory"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con semántica transaccional sobre el Store:
// las escrituras quedan en un buffer por transacción y se aplican todas
// juntas al confirmar; si fn falla, se descartan. Los candados de fila
// tomados vía GetForUpdate se liberan después del commit, de modo que la
// siguiente transacción del mismo material siempre ve el estado confirmado.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos atados a la transacción y hace commit o descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	auditRepo repository.AuditRepository,
	alertRepo repository.AlertRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{s: r.s, stocks: make(map[string]*entity.Stock), lockedIDs: make(map[string]bool)}
	defer tx.releaseLocks()

	movRepo := &StockMovementRepo{s: r.s, tx: tx}
	stockRepo := &StockRepo{s: r.s, tx: tx}
	auditRepo := &AuditRepo{s: r.s, tx: tx}
	alertRepo := &AlertRepo{s: r.s, tx: tx}

	if err := fn(movRepo, stockRepo, auditRepo, alertRepo); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// memTx buffer de escrituras de una transacción más los candados de fila que tiene tomados.
type memTx struct {
	s         *Store
	movements []*entity.StockMovement
	stocks    map[string]*entity.Stock
	audits    []*entity.AuditRecord
	alerts    []*entity.Alert
	locked    []*sync.Mutex
	lockedIDs map[string]bool
}

// lockRow toma el candado de fila del material (reentrante dentro de la misma tx).
func (tx *memTx) lockRow(materialID string) {
	if tx.lockedIDs[materialID] {
		return
	}
	m := tx.s.rowLock(materialID)
	m.Lock()
	tx.locked = append(tx.locked, m)
	tx.lockedIDs[materialID] = true
}

// commit aplica el buffer al estado confirmado en una sola sección crítica.
func (tx *memTx) commit() {
	s := tx.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = append(s.movements, tx.movements...)
	for id, st := range tx.stocks {
		s.stocks[id] = st
	}
	s.audits = append(s.audits, tx.audits...)
	s.alerts = append(s.alerts, tx.alerts...)
}

func (tx *memTx) releaseLocks() {
	for _, m := range tx.locked {
		m.Unlock()
	}
	tx.locked = nil
}
