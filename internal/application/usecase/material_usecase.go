package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/steelfabpro/inventory-service/internal/application/dto"
	"github.com/steelfabpro/inventory-service/internal/domain"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

// MaterialUseCase registro y consulta del catálogo de materiales. Aquí no se
// toca ninguna cantidad: el catálogo es puramente descriptivo.
type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
	supplierRepo repository.SupplierRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(materialRepo repository.MaterialRepository, supplierRepo repository.SupplierRepository) *MaterialUseCase {
	return &MaterialUseCase{materialRepo: materialRepo, supplierRepo: supplierRepo}
}

// Register da de alta un material. Name es obligatorio; si viene SupplierID,
// el proveedor debe existir.
func (uc *MaterialUseCase) Register(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
	}
	material := &entity.Material{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Type:          in.Type,
		Specification: in.Specification,
		Unit:          in.Unit,
		SupplierID:    in.SupplierID,
		MinStock:      in.MinStock,
		CreatedAt:     time.Now(),
	}
	if err := uc.materialRepo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toMaterialResponse(material), nil
}

// List lista materiales en orden de alta, con paginación.
func (uc *MaterialUseCase) List(limit, offset int) (*dto.MaterialListResponse, error) {
	list, err := uc.materialRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateMinStock cambia el umbral de alerta del material (único campo mutable).
func (uc *MaterialUseCase) UpdateMinStock(id string, in dto.UpdateMinStockRequest) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	if err := uc.materialRepo.UpdateMinStock(id, in.MinStock); err != nil {
		return nil, err
	}
	material.MinStock = in.MinStock
	return toMaterialResponse(material), nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:            m.ID,
		Name:          m.Name,
		Type:          m.Type,
		Specification: m.Specification,
		Unit:          m.Unit,
		SupplierID:    m.SupplierID,
		MinStock:      m.MinStock,
		CreatedAt:     m.CreatedAt,
	}
}
