package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de alertas. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create persiste una alerta nueva (abierta).
func (r *AlertRepo) Create(alert *entity.Alert) error {
	query := `
		INSERT INTO alerts (id, material_id, alert_type, triggered_at, resolved_at, resolved_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	resolvedBy := (*string)(nil)
	if alert.ResolvedBy != "" {
		resolvedBy = &alert.ResolvedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.MaterialID, alert.AlertType, alert.TriggeredAt,
		alert.ResolvedAt, resolvedBy,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID; nil si no existe.
func (r *AlertRepo) GetByID(id string) (*entity.Alert, error) {
	query := `
		SELECT id, material_id, alert_type, triggered_at, resolved_at, resolved_by
		FROM alerts WHERE id = $1`
	a, err := scanAlert(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// FindOpenByMaterial devuelve la alerta abierta del material, o nil si no hay.
func (r *AlertRepo) FindOpenByMaterial(materialID string) (*entity.Alert, error) {
	query := `
		SELECT id, material_id, alert_type, triggered_at, resolved_at, resolved_by
		FROM alerts WHERE material_id = $1 AND resolved_at IS NULL
		ORDER BY triggered_at LIMIT 1`
	a, err := scanAlert(r.q.QueryRow(context.Background(), query, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open alert: %w", err)
	}
	return a, nil
}

// Resolve marca la alerta como resuelta solo si sigue abierta (update
// condicional: una segunda resolución concurrente no afecta filas).
func (r *AlertRepo) Resolve(alertID, resolvedBy string, resolvedAt time.Time) (bool, error) {
	query := `
		UPDATE alerts SET resolved_at = $2, resolved_by = $3
		WHERE id = $1 AND resolved_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, alertID, resolvedAt, resolvedBy)
	if err != nil {
		return false, fmt.Errorf("resolve alert: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List lista alertas en orden de disparo, con filtros opcionales, paginadas.
func (r *AlertRepo) List(materialID string, openOnly bool, limit, offset int) ([]*entity.Alert, error) {
	query := `
		SELECT id, material_id, alert_type, triggered_at, resolved_at, resolved_by
		FROM alerts WHERE 1=1`
	args := []any{}
	pos := 1
	if materialID != "" {
		query += fmt.Sprintf(" AND material_id = $%d", pos)
		args = append(args, materialID)
		pos++
	}
	if openOnly {
		query += " AND resolved_at IS NULL"
	}
	query += fmt.Sprintf(" ORDER BY triggered_at, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	var resolvedBy *string
	if err := row.Scan(&a.ID, &a.MaterialID, &a.AlertType, &a.TriggeredAt, &a.ResolvedAt, &resolvedBy); err != nil {
		return nil, err
	}
	if resolvedBy != nil {
		a.ResolvedBy = *resolvedBy
	}
	return &a, nil
}
