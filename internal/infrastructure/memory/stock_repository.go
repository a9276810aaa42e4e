package memory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación en memoria de StockRepository. Con tx adjunta
// participa en la transacción (buffer + candado de fila); sin tx solo permite
// lecturas de estado confirmado.
type StockRepo struct {
	s  *Store
	tx *memTx
}

// NewStockRepository construye el adaptador de solo lectura (fuera de tx).
func NewStockRepository(s *Store) *StockRepo {
	return &StockRepo{s: s}
}

// Get devuelve la fila de stock confirmada; si no existe aún, una fila en cero.
func (r *StockRepo) Get(materialID string) (*entity.Stock, error) {
	if r.tx != nil {
		if st, ok := r.tx.stocks[materialID]; ok {
			return cloneStock(st), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if st, ok := r.s.stocks[materialID]; ok {
		return cloneStock(st), nil
	}
	return &entity.Stock{MaterialID: materialID, Quantity: decimal.Zero}, nil
}

// GetForUpdate toma el candado de fila del material (hasta el fin de la
// transacción) y devuelve el stock vigente. Solo válido dentro de una tx.
func (r *StockRepo) GetForUpdate(materialID string) (*entity.Stock, error) {
	if r.tx == nil {
		return nil, fmt.Errorf("get stock for update: fuera de transacción")
	}
	r.tx.lockRow(materialID)
	return r.Get(materialID)
}

// Upsert escribe la fila de stock en el buffer de la tx, o directo al estado
// confirmado si no hay transacción.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	c := cloneStock(stock)
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}
	if r.tx != nil {
		r.tx.stocks[stock.MaterialID] = c
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stocks[stock.MaterialID] = c
	return nil
}
