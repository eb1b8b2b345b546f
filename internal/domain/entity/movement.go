package entity

import "time"

// Direcciones de movimiento.
const (
	DirectionIn  = "in"  // entrada: incrementa stock
	DirectionOut = "out" // salida: decrementa stock
)

// Motivos (reference kind) de un movimiento de kardex.
const (
	RefInitialStock     = "initial_stock"     // stock inicial al crear el producto
	RefManualEdit       = "manual_edit"       // delta por edición manual
	RefStockEntry       = "stock_entry"       // ingreso masivo de stock
	RefProcedure        = "procedure"         // consumo en procedimiento
	RefManualAdjustment = "manual_adjustment" // ajuste manual
)

// Movement es una fila inmutable del kardex: nunca se actualiza ni se borra.
// Quantity se almacena como magnitud; datos históricos pueden traer cantidades
// negativas en salidas, por lo que las lecturas deben normalizar con Magnitude().
type Movement struct {
	ID        string
	ProductID string
	Direction string // in, out
	Quantity  int64
	RefKind   string
	RefID     string // id del procedimiento para RefKind=procedure; vacío si no aplica
	Note      string
	CreatedBy string // id de usuario; vacío si no se capturó
	CreatedAt time.Time
}

// Magnitude devuelve el valor absoluto de la cantidad.
func (m *Movement) Magnitude() int64 {
	if m.Quantity < 0 {
		return -m.Quantity
	}
	return m.Quantity
}

// Signed devuelve la cantidad con signo según la dirección (in positivo, out negativo).
func (m *Movement) Signed() int64 {
	if m.Direction == DirectionOut {
		return -m.Magnitude()
	}
	return m.Magnitude()
}
