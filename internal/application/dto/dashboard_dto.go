package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO indicadores del tablero para el usuario autenticado.
type DashboardStatsDTO struct {
	TotalProducts    int             `json:"totalProducts"`  // productos activos del catálogo
	TotalInventory   int64           `json:"totalInventory"` // unidades en inventario
	PendingMovements int             `json:"pendingMovements"`
	ActivityLogs     int             `json:"activityLogs"`
	TotalValue       decimal.Decimal `json:"totalValue"` // SUM(quantity * unit_price)
	AvgValue         decimal.Decimal `json:"avgValue"`   // totalValue / totalInventory
	UniqueProducts   int             `json:"uniqueProducts"`
}

// DashboardResponse respuesta de GET /api/dashboard/stats.
type DashboardResponse struct {
	Stats DashboardStatsDTO `json:"stats"`
}
