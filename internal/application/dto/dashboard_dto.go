package dto

// DashboardSummary tarjetas del tablero principal.
type DashboardSummary struct {
	Products          int `json:"products"`
	LowStockProducts  int `json:"low_stock_products"`
	ActiveProcedures  int `json:"active_procedures"`
	MachinesInUse     int `json:"machines_in_use"`
	MachinesAvailable int `json:"machines_available"`
	MovementsToday    int `json:"movements_today"`
}
