package repository

import (
	"time"

	"github.com/steelfabpro/inventory-service/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para alertas de stock bajo.
type AlertRepository interface {
	Create(alert *entity.Alert) error
	GetByID(id string) (*entity.Alert, error)
	// FindOpenByMaterial devuelve la alerta abierta del material, o nil si no hay.
	// Invariante: a lo sumo una abierta por material.
	FindOpenByMaterial(materialID string) (*entity.Alert, error)
	// Resolve marca la alerta como resuelta solo si sigue abierta (update
	// condicional). Devuelve false si no existe o ya estaba resuelta.
	Resolve(alertID, resolvedBy string, resolvedAt time.Time) (bool, error)
	List(materialID string, openOnly bool, limit, offset int) ([]*entity.Alert, error)
}
