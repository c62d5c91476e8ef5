package entity

import "time"

// Warehouse representa una bodega física que agrupa ubicaciones (multi-bodega).
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
}
