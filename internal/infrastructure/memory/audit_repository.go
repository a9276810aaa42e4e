package memory

import (
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación en memoria de la bitácora.
type AuditRepo struct {
	s  *Store
	tx *memTx
}

// NewAuditRepository construye el adaptador de solo lectura (fuera de tx).
func NewAuditRepository(s *Store) *AuditRepo {
	return &AuditRepo{s: s}
}

// Create agrega un registro a la bitácora (buffer de la tx, o directo sin tx).
func (r *AuditRepo) Create(record *entity.AuditRecord) error {
	c := *record
	if r.tx != nil {
		r.tx.audits = append(r.tx.audits, &c)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audits = append(r.s.audits, &c)
	return nil
}

// ListByMaterial devuelve registros confirmados del material en orden
// cronológico, paginados.
func (r *AuditRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.AuditRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []*entity.AuditRecord
	for _, rec := range r.s.audits {
		if rec.MaterialID == materialID {
			matched = append(matched, rec)
		}
	}
	start, end := pageBounds(len(matched), limit, offset)
	list := make([]*entity.AuditRecord, 0, end-start)
	for _, rec := range matched[start:end] {
		c := *rec
		list = append(list, &c)
	}
	return list, nil
}
