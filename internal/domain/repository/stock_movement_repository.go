package repository

import (
	"github.com/shopspring/decimal"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos (append-only: sin Update ni Delete).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByMaterial(materialID string, limit, offset int) ([]*entity.StockMovement, error)
	// SumByMaterial recalcula el total desde el libro completo. Solo para
	// reconciliación; las lecturas normales usan la fila de stock materializada.
	SumByMaterial(materialID string) (decimal.Decimal, error)
}
