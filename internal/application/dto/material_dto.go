package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest body para POST /api/materials.
type CreateMaterialRequest struct {
	Name          string           `json:"name"`
	Type          string           `json:"type,omitempty"`
	Specification string           `json:"specification,omitempty"`
	Unit          string           `json:"unit,omitempty"`
	SupplierID    string           `json:"supplier_id,omitempty"`
	MinStock      *decimal.Decimal `json:"min_stock,omitempty"`
}

// UpdateMinStockRequest body para PUT /api/materials/{id}/min-stock.
// MinStock en nil desactiva las alertas del material.
type UpdateMinStockRequest struct {
	MinStock *decimal.Decimal `json:"min_stock"`
}

// MaterialResponse representación HTTP de un material.
type MaterialResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Type          string           `json:"type,omitempty"`
	Specification string           `json:"specification,omitempty"`
	Unit          string           `json:"unit,omitempty"`
	SupplierID    string           `json:"supplier_id,omitempty"`
	MinStock      *decimal.Decimal `json:"min_stock,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// MaterialListResponse listado paginado de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
