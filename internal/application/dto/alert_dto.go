package dto

import "time"

// AlertResponse representación HTTP de una alerta de stock bajo.
type AlertResponse struct {
	ID          string     `json:"id"`
	MaterialID  string     `json:"material_id"`
	AlertType   string     `json:"alert_type"`
	TriggeredAt time.Time  `json:"triggered_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy  string     `json:"resolved_by,omitempty"`
	Open        bool       `json:"open"`
}

// AlertListResponse listado de alertas (filtrable por material y estado).
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
