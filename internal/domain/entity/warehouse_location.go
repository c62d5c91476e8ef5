package entity

// Tipos de ubicación dentro de una bodega.
const (
	LocationTypeForwardPick = "forward_pick" // picking prioritario, se repone desde bulk
	LocationTypeBulkStorage = "bulk_storage" // almacenamiento masivo, fuente de reposición
	LocationTypeOverflow    = "overflow"     // sobrestock
	LocationTypeReceiving   = "receiving"    // muelle de recibo
	LocationTypeStaging     = "staging"      // consolidación de despacho
)

// WarehouseLocation representa una posición física (bin) dentro de una bodega.
// El catálogo de ubicaciones es un colaborador de solo lectura para el motor
// de inventario: aquí no se crea ni se modifica.
type WarehouseLocation struct {
	ID           string
	WarehouseID  string
	Code         string
	LocationType string
	IsPickable   bool

	// ParentLocationID es la ubicación origen de reposición (bulk → forward).
	ParentLocationID *string

	// MinQty dispara la revisión de reposición cuando on-hand cae por debajo.
	// nil = la ubicación no participa en reposición.
	MinQty *int64

	// Capacidad cúbica: CapacityCubicMm explícita tiene prioridad; si es nil
	// se deriva de ancho×alto×fondo. Todo nil = capacidad sin restricción.
	CapacityCubicMm *int64
	WidthMm         *int64
	HeightMm        *int64
	DepthMm         *int64
}
