package entity

import "time"

// Supplier representa un proveedor de materiales.
type Supplier struct {
	ID          string
	Name        string
	ContactInfo string
	Address     string
	CreatedAt   time.Time
}
