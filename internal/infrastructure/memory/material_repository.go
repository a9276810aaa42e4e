package memory

import (
	"github.com/shopspring/decimal"
	"github.com/steelfabpro/inventory-service/internal/domain"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación en memoria de MaterialRepository.
type MaterialRepo struct {
	s *Store
}

// NewMaterialRepository construye el adaptador sobre el store.
func NewMaterialRepository(s *Store) *MaterialRepo {
	return &MaterialRepo{s: s}
}

// Create persiste un material nuevo, preservando el orden de alta.
func (r *MaterialRepo) Create(material *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[material.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.materials[material.ID] = cloneMaterial(material)
	r.s.materialOrder = append(r.s.materialOrder, material.ID)
	return nil
}

// GetByID devuelve el material o nil si no existe.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneMaterial(r.s.materials[id]), nil
}

// UpdateMinStock actualiza solo el umbral del material.
func (r *MaterialRepo) UpdateMinStock(materialID string, minStock *decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.materials[materialID]
	if !ok {
		return domain.ErrNotFound
	}
	if minStock == nil {
		m.MinStock = nil
		return nil
	}
	v := *minStock
	m.MinStock = &v
	return nil
}

// List devuelve materiales en orden de alta, paginados.
func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	start, end := pageBounds(len(r.s.materialOrder), limit, offset)
	list := make([]*entity.Material, 0, end-start)
	for _, id := range r.s.materialOrder[start:end] {
		list = append(list, cloneMaterial(r.s.materials[id]))
	}
	return list, nil
}
