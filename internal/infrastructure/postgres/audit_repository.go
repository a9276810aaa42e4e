package postgres

import (
	"context"
	"fmt"

	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de la bitácora sobre PostgreSQL (usable con pool o
// tx). Tabla append-only.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de bitácora. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create agrega un registro a la bitácora.
func (r *AuditRepo) Create(record *entity.AuditRecord) error {
	query := `
		INSERT INTO audit_records (id, material_id, change_type, quantity, user_id, timestamp, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	userID := (*string)(nil)
	if record.UserID != "" {
		userID = &record.UserID
	}
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.MaterialID, record.ChangeType, record.Quantity,
		userID, record.Timestamp, record.Note,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// ListByMaterial lista registros del material en orden cronológico, paginados.
func (r *AuditRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.AuditRecord, error) {
	query := `
		SELECT id, material_id, change_type, quantity, user_id, timestamp, note
		FROM audit_records WHERE material_id = $1
		ORDER BY timestamp, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, materialID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditRecord
	for rows.Next() {
		var rec entity.AuditRecord
		var userID *string
		if err := rows.Scan(&rec.ID, &rec.MaterialID, &rec.ChangeType, &rec.Quantity,
			&userID, &rec.Timestamp, &rec.Note); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		if userID != nil {
			rec.UserID = *userID
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
