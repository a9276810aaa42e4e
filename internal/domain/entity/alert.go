package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeLowStock = "LOW_STOCK"
)

// Alert representa una condición de stock bajo para un material.
// Ciclo de vida: abierta (ResolvedAt == nil) -> resuelta (terminal).
// A lo sumo una alerta abierta por material; resolverla rearma el disparo.
type Alert struct {
	ID          string
	MaterialID  string
	AlertType   string
	TriggeredAt time.Time
	ResolvedAt  *time.Time
	ResolvedBy  string // UserID; vacío mientras la alerta siga abierta
}

// IsOpen indica si la alerta sigue abierta (sin resolver).
func (a *Alert) IsOpen() bool {
	return a.ResolvedAt == nil
}
