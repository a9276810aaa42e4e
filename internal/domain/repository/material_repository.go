package repository

import (
	"github.com/shopspring/decimal"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	// UpdateMinStock actualiza solo el umbral; el resto del material es inmutable.
	UpdateMinStock(materialID string, minStock *decimal.Decimal) error
	List(limit, offset int) ([]*entity.Material, error)
}
