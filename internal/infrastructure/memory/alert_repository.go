package memory

import (
	"time"

	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación en memoria de AlertRepository.
type AlertRepo struct {
	s  *Store
	tx *memTx
}

// NewAlertRepository construye el adaptador de solo lectura/resolución (fuera de tx).
func NewAlertRepository(s *Store) *AlertRepo {
	return &AlertRepo{s: s}
}

// Create persiste una alerta (buffer de la tx, o directo sin tx).
func (r *AlertRepo) Create(alert *entity.Alert) error {
	c := cloneAlert(alert)
	if r.tx != nil {
		r.tx.alerts = append(r.tx.alerts, c)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.alerts = append(r.s.alerts, c)
	return nil
}

// GetByID devuelve la alerta o nil si no existe.
func (r *AlertRepo) GetByID(id string) (*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.alerts {
		if a.ID == id {
			return cloneAlert(a), nil
		}
	}
	return nil, nil
}

// FindOpenByMaterial devuelve la alerta abierta del material, o nil. Dentro de
// una tx considera también las alertas aún no confirmadas del buffer.
func (r *AlertRepo) FindOpenByMaterial(materialID string) (*entity.Alert, error) {
	if r.tx != nil {
		for _, a := range r.tx.alerts {
			if a.MaterialID == materialID && a.IsOpen() {
				return cloneAlert(a), nil
			}
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.alerts {
		if a.MaterialID == materialID && a.IsOpen() {
			return cloneAlert(a), nil
		}
	}
	return nil, nil
}

// Resolve marca la alerta como resuelta solo si sigue abierta (update
// condicional, seguro ante resoluciones concurrentes).
func (r *AlertRepo) Resolve(alertID, resolvedBy string, resolvedAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.alerts {
		if a.ID == alertID {
			if !a.IsOpen() {
				return false, nil
			}
			at := resolvedAt
			a.ResolvedAt = &at
			a.ResolvedBy = resolvedBy
			return true, nil
		}
	}
	return false, nil
}

// List devuelve alertas confirmadas en orden de disparo, con filtros
// opcionales por material y estado, paginadas.
func (r *AlertRepo) List(materialID string, openOnly bool, limit, offset int) ([]*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []*entity.Alert
	for _, a := range r.s.alerts {
		if materialID != "" && a.MaterialID != materialID {
			continue
		}
		if openOnly && !a.IsOpen() {
			continue
		}
		matched = append(matched, a)
	}
	start, end := pageBounds(len(matched), limit, offset)
	list := make([]*entity.Alert, 0, end-start)
	for _, a := range matched[start:end] {
		list = append(list, cloneAlert(a))
	}
	return list, nil
}
