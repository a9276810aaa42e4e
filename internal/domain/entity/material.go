package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa un material rastreable del catálogo de inventario.
// Inmutable tras su creación, salvo MinStock (editable; lectura segura en
// paralelo con escrituras del libro de movimientos).
type Material struct {
	ID            string
	Name          string
	Type          string
	Specification string
	Unit          string           // unidad de medida (kg, m, unidad, etc.)
	SupplierID    string           // proveedor opcional
	MinStock      *decimal.Decimal // umbral de stock mínimo; nil = sin alertas
	CreatedAt     time.Time
}
