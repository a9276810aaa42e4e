package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement representa una entrada del libro de movimientos de un material.
// El libro es append-only: un movimiento nunca se actualiza ni se elimina.
// Quantity lleva el signo: positivo para entradas, negativo para salidas; la
// magnitud es siempre la cantidad físicamente movida.
type StockMovement struct {
	ID         string
	MaterialID string
	Quantity   decimal.Decimal
	BatchNo    string
	ReceivedAt *time.Time
	ExpiryDate *time.Time
	Location   string
	CreatedAt  time.Time
	CreatedBy  string // UserID
}
