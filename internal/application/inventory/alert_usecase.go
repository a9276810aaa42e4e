package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/steelfabpro/inventory-service/internal/domain"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

// AlertUseCase consulta y resuelve alertas de stock bajo. La creación de
// alertas pertenece al registro de salidas (StockUseCase); aquí solo vive el
// resto del ciclo de vida: OPEN -> RESOLVED, terminal.
type AlertUseCase struct {
	alertRepo repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(alertRepo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo}
}

// List lista alertas; materialID vacío = todas, openOnly = solo abiertas.
func (uc *AlertUseCase) List(ctx context.Context, materialID string, openOnly bool, limit, offset int) ([]*entity.Alert, error) {
	return uc.alertRepo.List(materialID, openOnly, limit, offset)
}

// Resolve marca una alerta como resuelta. Resolver dos veces devuelve
// ErrAlreadyResolved (señal idempotente, no un fallo duro); una alerta
// resuelta permite que un cruce posterior del umbral levante una nueva.
func (uc *AlertUseCase) Resolve(ctx context.Context, alertID, actorID string) (*entity.Alert, error) {
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	ok, err := uc.alertRepo.Resolve(alertID, actorID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		// Otra resolución llegó primero o la alerta ya estaba cerrada.
		return nil, domain.ErrAlreadyResolved
	}
	resolved, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("alert_id", alertID).
		Str("material_id", resolved.MaterialID).
		Str("resolved_by", actorID).
		Msg("alerta resuelta")
	return resolved, nil
}
