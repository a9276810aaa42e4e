package repository

import "github.com/steelfabpro/inventory-service/internal/domain/entity"

// StockRepository define el puerto para la fila de total acumulado por material.
// Usado dentro de transacciones para garantizar consistencia con el libro.
type StockRepository interface {
	// Get devuelve la fila de stock; si no existe aún, una fila en cero.
	Get(materialID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// GetForUpdate bloquea la fila del material hasta el fin de la transacción
	// (SELECT FOR UPDATE). Serializa movimientos del mismo material; materiales
	// distintos avanzan en paralelo.
	GetForUpdate(materialID string) (*entity.Stock, error)
}
