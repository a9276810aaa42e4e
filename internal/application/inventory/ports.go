package inventory

import (
	"context"

	"github.com/steelfabpro/inventory-service/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios
// atados a esa tx. Garantiza que movimiento + total + bitácora + decisión de
// alerta se confirmen juntos o no se confirme nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		auditRepo repository.AuditRepository,
		alertRepo repository.AlertRepository,
	) error) error
}
