package repository

import "github.com/steelfabpro/inventory-service/internal/domain/entity"

// AuditRepository define el puerto de persistencia para la bitácora (append-only).
type AuditRepository interface {
	Create(record *entity.AuditRecord) error
	// ListByMaterial devuelve registros en orden cronológico, paginados para
	// poder recorrer historiales largos por tramos.
	ListByMaterial(materialID string, limit, offset int) ([]*entity.AuditRecord, error)
}
