package inventory

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/steelfabpro/inventory-service/internal/domain"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

const reconcilePageSize = 100

// Reconcile recalcula el total del material sumando el libro completo y lo
// compara con la fila materializada. Si hay deriva, repara la fila (el libro
// es la fuente de verdad) y deja constancia en el log. Devuelve la deriva
// encontrada (cero si la fila estaba correcta).
func (uc *StockUseCase) Reconcile(ctx context.Context, materialID string) (decimal.Decimal, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return decimal.Zero, err
	}
	if material == nil {
		return decimal.Zero, domain.ErrNotFound
	}

	drift := decimal.Zero
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.AuditRepository,
		_ repository.AlertRepository,
	) error {
		// Mismo bloqueo que un movimiento: ningún append puede intercalarse
		// entre la re-suma y la reparación.
		stock, err := stockRepo.GetForUpdate(materialID)
		if err != nil {
			return err
		}
		sum, err := movRepo.SumByMaterial(materialID)
		if err != nil {
			return err
		}
		drift = stock.Quantity.Sub(sum)
		if drift.IsZero() {
			return nil
		}
		log.Warn().
			Str("material_id", materialID).
			Str("stored", stock.Quantity.String()).
			Str("recomputed", sum.String()).
			Str("drift", drift.String()).
			Msg("deriva de stock detectada, reparando fila materializada")
		stock.Quantity = sum
		return stockRepo.Upsert(stock)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return drift, nil
}

// ReconcileAll recorre todos los materiales por páginas y reconcilia cada uno.
// Pensado para ejecutarse periódicamente desde el proceso principal.
func (uc *StockUseCase) ReconcileAll(ctx context.Context) error {
	for offset := 0; ; offset += reconcilePageSize {
		materials, err := uc.materialRepo.List(reconcilePageSize, offset)
		if err != nil {
			return err
		}
		if len(materials) == 0 {
			return nil
		}
		for _, m := range materials {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := uc.Reconcile(ctx, m.ID); err != nil {
				log.Error().Err(err).Str("material_id", m.ID).Msg("reconciliación fallida")
			}
		}
		if len(materials) < reconcilePageSize {
			return nil
		}
	}
}
