package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/steelfabpro/inventory-service/internal/domain"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

// AuditUseCase consulta la bitácora y registra anotaciones manuales. Los
// registros IN/OUT los escribe el propio motor de movimientos en la misma
// transacción del movimiento; este caso de uso no participa en esa ruta.
type AuditUseCase struct {
	auditRepo    repository.AuditRepository
	materialRepo repository.MaterialRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(auditRepo repository.AuditRepository, materialRepo repository.MaterialRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo, materialRepo: materialRepo}
}

// ListByMaterial devuelve la bitácora del material en orden cronológico,
// paginada para recorrer historiales largos por tramos.
func (uc *AuditUseCase) ListByMaterial(ctx context.Context, materialID string, limit, offset int) ([]*entity.AuditRecord, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return uc.auditRepo.ListByMaterial(materialID, limit, offset)
}

// Annotate agrega una anotación manual a la bitácora (tipo NOTE, cantidad
// cero, sin movimiento asociado).
func (uc *AuditUseCase) Annotate(ctx context.Context, materialID, note, actorID string) (*entity.AuditRecord, error) {
	if note == "" {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	record := &entity.AuditRecord{
		ID:         uuid.New().String(),
		MaterialID: materialID,
		ChangeType: entity.ChangeTypeNOTE,
		Quantity:   decimal.Zero,
		UserID:     actorID,
		Timestamp:  time.Now(),
		Note:       note,
	}
	if err := uc.auditRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}
