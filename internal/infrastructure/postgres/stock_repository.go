package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila de total del material; si no existe aún, una fila en cero.
func (r *StockRepo) Get(materialID string) (*entity.Stock, error) {
	query := `
		SELECT material_id, quantity, updated_at
		FROM stock WHERE material_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, materialID).Scan(
		&s.MaterialID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{MaterialID: materialID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la fila y la bloquea hasta el fin de la transacción
// (SELECT FOR UPDATE): sección crítica por material. Si el material aún no
// tiene fila, primero la siembra en cero: FOR UPDATE sobre cero filas no
// bloquea nada y dos primeros movimientos podrían intercalarse.
func (r *StockRepo) GetForUpdate(materialID string) (*entity.Stock, error) {
	seed := `
		INSERT INTO stock (material_id, quantity, updated_at)
		VALUES ($1, 0, now())
		ON CONFLICT (material_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, materialID); err != nil {
		return nil, fmt.Errorf("seed stock row: %w", err)
	}
	query := `
		SELECT material_id, quantity, updated_at
		FROM stock WHERE material_id = $1
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, materialID).Scan(
		&s.MaterialID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la fila de total del material.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (material_id, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (material_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.MaterialID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
