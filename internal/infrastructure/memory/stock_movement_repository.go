package memory

import (
	"github.com/shopspring/decimal"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación en memoria del libro de movimientos.
type StockMovementRepo struct {
	s  *Store
	tx *memTx
}

// NewStockMovementRepository construye el adaptador de solo lectura (fuera de tx).
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

// Create agrega un movimiento al libro (buffer de la tx, o directo sin tx).
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	c := *movement
	if r.tx != nil {
		r.tx.movements = append(r.tx.movements, &c)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, &c)
	return nil
}

// ListByMaterial devuelve movimientos confirmados del material en orden
// cronológico (orden de append), paginados.
func (r *StockMovementRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.MaterialID == materialID {
			matched = append(matched, m)
		}
	}
	start, end := pageBounds(len(matched), limit, offset)
	list := make([]*entity.StockMovement, 0, end-start)
	for _, m := range matched[start:end] {
		c := *m
		list = append(list, &c)
	}
	return list, nil
}

// SumByMaterial re-suma el libro completo del material. Dentro de una tx
// incluye los movimientos aún no confirmados del buffer.
func (r *StockMovementRepo) SumByMaterial(materialID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	r.s.mu.RLock()
	for _, m := range r.s.movements {
		if m.MaterialID == materialID {
			sum = sum.Add(m.Quantity)
		}
	}
	r.s.mu.RUnlock()
	if r.tx != nil {
		for _, m := range r.tx.movements {
			if m.MaterialID == materialID {
				sum = sum.Add(m.Quantity)
			}
		}
	}
	return sum, nil
}
