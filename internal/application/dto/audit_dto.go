package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnnotateRequest body para POST /api/materials/{id}/audit (anotación manual).
type AnnotateRequest struct {
	Note string `json:"note"`
}

// AuditRecordResponse representación HTTP de un registro de bitácora.
type AuditRecordResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	ChangeType string          `json:"change_type"`
	Quantity   decimal.Decimal `json:"quantity"`
	UserID     string          `json:"user_id,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	Note       string          `json:"note,omitempty"`
}

// AuditListResponse listado paginado de registros de bitácora.
type AuditListResponse struct {
	Items []AuditRecordResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
