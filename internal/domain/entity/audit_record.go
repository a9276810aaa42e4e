package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cambio registrados en la bitácora.
const (
	ChangeTypeIN   = "IN"   // entrada de stock
	ChangeTypeOUT  = "OUT"  // salida de stock
	ChangeTypeNOTE = "NOTE" // anotación manual, sin movimiento asociado
)

// AuditRecord representa una entrada inmutable de la bitácora: quién movió qué,
// cuándo y por qué. Cada movimiento genera exactamente un registro (1:1, misma
// transacción); las anotaciones manuales usan ChangeTypeNOTE con cantidad cero.
type AuditRecord struct {
	ID         string
	MaterialID string
	ChangeType string
	Quantity   decimal.Decimal // con signo, igual al movimiento que describe
	UserID     string
	Timestamp  time.Time
	Note       string
}
