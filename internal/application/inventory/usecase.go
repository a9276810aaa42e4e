package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/steelfabpro/inventory-service/internal/domain"
	"github.com/steelfabpro/inventory-service/internal/domain/entity"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

// StockUseCase registra entradas y salidas de stock de forma transaccional:
// bloquea la fila de total del material (solo se serializan movimientos del
// mismo material), agrega el movimiento al libro, actualiza el total
// acumulado, escribe la bitácora y, en salidas, decide si se levanta una
// alerta de stock bajo — todo con Commit/Rollback.
type StockUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	stockRepo    repository.StockRepository
	movRepo      repository.StockMovementRepository
}

// NewStockUseCase construye el caso de uso. stockRepo y movRepo se usan solo
// para lecturas fuera de transacción (estado ya confirmado).
func NewStockUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		stockRepo:    stockRepo,
		movRepo:      movRepo,
	}
}

// MovementInput entrada para registrar un movimiento. Quantity se normaliza
// por signo según el tipo de operación; la magnitud es la cantidad movida.
type MovementInput struct {
	Quantity   decimal.Decimal
	BatchNo    string
	ReceivedAt *time.Time
	ExpiryDate *time.Time
	Location   string
}

// StockIn registra una entrada: guarda +abs(quantity) sin importar el signo
// que envíe el caller.
func (uc *StockUseCase) StockIn(ctx context.Context, materialID string, in MovementInput, actorID string) (*entity.StockMovement, error) {
	return uc.register(ctx, materialID, in, actorID, entity.ChangeTypeIN)
}

// StockOut registra una salida: guarda -abs(quantity). No bloquea sobregiros
// (el total puede quedar negativo); el umbral MinStock solo dispara alertas.
func (uc *StockUseCase) StockOut(ctx context.Context, materialID string, in MovementInput, actorID string) (*entity.StockMovement, error) {
	return uc.register(ctx, materialID, in, actorID, entity.ChangeTypeOUT)
}

func (uc *StockUseCase) register(ctx context.Context, materialID string, in MovementInput, actorID, changeType string) (*entity.StockMovement, error) {
	if materialID == "" {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}

	// Normalización de signo: entrada siempre positiva, salida siempre negativa.
	qty := in.Quantity.Abs()
	note := "Stock in"
	if changeType == entity.ChangeTypeOUT {
		qty = qty.Neg()
		note = "Stock out"
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		MaterialID: materialID,
		Quantity:   qty,
		BatchNo:    in.BatchNo,
		ReceivedAt: in.ReceivedAt,
		ExpiryDate: in.ExpiryDate,
		Location:   in.Location,
		CreatedAt:  now,
		CreatedBy:  actorID,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		auditRepo repository.AuditRepository,
		alertRepo repository.AlertRepository,
	) error {
		// Bloquea la fila de total del material: la secuencia append + total +
		// decisión de alerta es una sección crítica por material.
		stock, err := stockRepo.GetForUpdate(materialID)
		if err != nil {
			return err
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		stock.Quantity = stock.Quantity.Add(qty)
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		if err := auditRepo.Create(&entity.AuditRecord{
			ID:         uuid.New().String(),
			MaterialID: materialID,
			ChangeType: changeType,
			Quantity:   qty,
			UserID:     actorID,
			Timestamp:  now,
			Note:       note,
		}); err != nil {
			return err
		}
		if changeType == entity.ChangeTypeOUT {
			return uc.checkLowStock(alertRepo, material, stock.Quantity, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// checkLowStock levanta una alerta LOW_STOCK si el total tras la salida cayó
// bajo el umbral y no hay ya una alerta abierta para el material: solo el
// primer cruce del umbral genera alerta; resolverla rearma el disparo.
func (uc *StockUseCase) checkLowStock(alertRepo repository.AlertRepository, material *entity.Material, total decimal.Decimal, now time.Time) error {
	if material.MinStock == nil || !total.LessThan(*material.MinStock) {
		return nil
	}
	open, err := alertRepo.FindOpenByMaterial(material.ID)
	if err != nil {
		return err
	}
	if open != nil {
		return nil
	}
	alert := &entity.Alert{
		ID:          uuid.New().String(),
		MaterialID:  material.ID,
		AlertType:   entity.AlertTypeLowStock,
		TriggeredAt: now,
	}
	if err := alertRepo.Create(alert); err != nil {
		return err
	}
	log.Warn().
		Str("material_id", material.ID).
		Str("alert_id", alert.ID).
		Str("stock", total.String()).
		Str("min_stock", material.MinStock.String()).
		Msg("alerta de stock bajo levantada")
	return nil
}

// CurrentStock devuelve el total acumulado del material (lectura O(1) sobre la
// fila materializada, nunca re-suma el libro).
func (uc *StockUseCase) CurrentStock(ctx context.Context, materialID string) (decimal.Decimal, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return decimal.Zero, err
	}
	if material == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	stock, err := uc.stockRepo.Get(materialID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Quantity, nil
}

// ListMovements lista los movimientos del material en orden cronológico.
func (uc *StockUseCase) ListMovements(ctx context.Context, materialID string, limit, offset int) ([]*entity.StockMovement, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByMaterial(materialID, limit, offset)
}
