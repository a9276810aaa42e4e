package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el total acumulado de un material (fila materializada).
// Se mantiene junto a cada append del libro, dentro de la misma transacción;
// la suma de todos los movimientos del material es la fuente de verdad y el
// proceso de reconciliación detecta y repara cualquier deriva.
type Stock struct {
	MaterialID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
