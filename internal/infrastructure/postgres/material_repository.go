package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/steelfabpro/inventory-service/internal/domain"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material nuevo.
func (r *MaterialRepo) Create(material *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, type, specification, unit, supplier_id, min_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	supplierID := (*string)(nil)
	if material.SupplierID != "" {
		supplierID = &material.SupplierID
	}
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.Type, material.Specification,
		material.Unit, supplierID, material.MinStock, material.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID; nil si no existe.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `
		SELECT id, name, type, specification, unit, supplier_id, min_stock, created_at
		FROM materials WHERE id = $1`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// UpdateMinStock actualiza solo el umbral de stock mínimo.
func (r *MaterialRepo) UpdateMinStock(materialID string, minStock *decimal.Decimal) error {
	query := `UPDATE materials SET min_stock = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, materialID, minStock)
	if err != nil {
		return fmt.Errorf("update min stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista materiales en orden de alta, paginados.
func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	query := `
		SELECT id, name, type, specification, unit, supplier_id, min_stock, created_at
		FROM materials ORDER BY created_at, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	var supplierID *string
	if err := row.Scan(&m.ID, &m.Name, &m.Type, &m.Specification, &m.Unit, &supplierID, &m.MinStock, &m.CreatedAt); err != nil {
		return nil, err
	}
	if supplierID != nil {
		m.SupplierID = *supplierID
	}
	return &m, nil
}
