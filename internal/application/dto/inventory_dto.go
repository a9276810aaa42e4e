package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovementRequest body para POST /api/materials/{id}/stock-in y /stock-out.
// El signo de Quantity lo decide el endpoint, no el caller: stock-in guarda
// +abs(quantity) y stock-out guarda -abs(quantity). Cantidad cero se acepta
// (movimiento nulo, pero queda en el libro y la bitácora).
type StockMovementRequest struct {
	Quantity   decimal.Decimal `json:"quantity"`
	BatchNo    string          `json:"batch_no,omitempty"`
	ReceivedAt *time.Time      `json:"received_at,omitempty"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	Location   string          `json:"location,omitempty"`
}

// StockMovementResponse representación HTTP de un movimiento del libro.
type StockMovementResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	BatchNo    string          `json:"batch_no,omitempty"`
	ReceivedAt *time.Time      `json:"received_at,omitempty"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	Location   string          `json:"location,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	CreatedBy  string          `json:"created_by,omitempty"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// StockResponse total acumulado de un material.
type StockResponse struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}
