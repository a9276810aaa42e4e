package memory

import (
	"github.com/steelfabpro/inventory-service/internal/domain"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación en memoria de SupplierRepository.
type SupplierRepo struct {
	s *Store
}

// NewSupplierRepository construye el adaptador sobre el store.
func NewSupplierRepository(s *Store) *SupplierRepo {
	return &SupplierRepo{s: s}
}

// Create persiste un proveedor nuevo.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *supplier
	r.s.suppliers[supplier.ID] = &c
	r.s.supplierOrder = append(r.s.supplierOrder, supplier.ID)
	return nil
}

// GetByID devuelve el proveedor o nil si no existe.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	s, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

// List devuelve proveedores en orden de alta, paginados.
func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	start, end := pageBounds(len(r.s.supplierOrder), limit, offset)
	list := make([]*entity.Supplier, 0, end-start)
	for _, id := range r.s.supplierOrder[start:end] {
		c := *r.s.suppliers[id]
		list = append(list, &c)
	}
	return list, nil
}
