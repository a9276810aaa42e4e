// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria, con la misma semántica transaccional que el adaptador PostgreSQL:
// las escrituras de una transacción se confirman juntas o no se confirma nada,
// y GetForUpdate bloquea la fila del material hasta el fin de la transacción.
// Se usa en tests y como driver de desarrollo (STORE_DRIVER=memory).
package memory

import (
	"sync"

	"github.com/steelfabpro/inventory-service/internal/domain/entity"
)

// Store estado compartido del driver en memoria. Las lecturas ven solo estado
// confirmado; mu protege los mapas y slices, rowLocks serializa los
// movimientos por material (candados creados de forma perezosa, uno por
// material, nunca compartidos entre materiales).
type Store struct {
	mu            sync.RWMutex
	materials     map[string]*entity.Material
	materialOrder []string
	suppliers     map[string]*entity.Supplier
	supplierOrder []string
	movements     []*entity.StockMovement
	stocks        map[string]*entity.Stock
	audits        []*entity.AuditRecord
	alerts        []*entity.Alert

	rowMu    sync.Mutex
	rowLocks map[string]*sync.Mutex
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		materials: make(map[string]*entity.Material),
		suppliers: make(map[string]*entity.Supplier),
		stocks:    make(map[string]*entity.Stock),
		rowLocks:  make(map[string]*sync.Mutex),
	}
}

// rowLock devuelve el candado de fila del material, creándolo si no existe.
func (s *Store) rowLock(materialID string) *sync.Mutex {
	s.rowMu.Lock()
	defer s.rowMu.Unlock()
	m, ok := s.rowLocks[materialID]
	if !ok {
		m = &sync.Mutex{}
		s.rowLocks[materialID] = m
	}
	return m
}

// pageBounds recorta una ventana [offset, offset+limit) sobre n elementos.
func pageBounds(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}

func cloneMaterial(m *entity.Material) *entity.Material {
	if m == nil {
		return nil
	}
	c := *m
	if m.MinStock != nil {
		v := *m.MinStock
		c.MinStock = &v
	}
	return &c
}

func cloneStock(st *entity.Stock) *entity.Stock {
	if st == nil {
		return nil
	}
	c := *st
	return &c
}

func cloneAlert(a *entity.Alert) *entity.Alert {
	if a == nil {
		return nil
	}
	c := *a
	if a.ResolvedAt != nil {
		v := *a.ResolvedAt
		c.ResolvedAt = &v
	}
	return &c
}
