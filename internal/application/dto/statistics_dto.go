package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// StatisticsRequest parámetros de GET /api/statistics y de las exportaciones.
type StatisticsRequest struct {
	TimeRange string `query:"time_range" json:"time_range"` // today|7days|30days|custom (default 30days)
	From      string `query:"from" json:"from"`             // YYYY-MM-DD, solo custom
	To        string `query:"to" json:"to"`                 // YYYY-MM-DD, solo custom
	OrderType string `query:"order_type" json:"order_type"` // all|retail|wholesale
	Category  string `query:"category" json:"category"`     // all|<id>
}

// ── Período y KPIs ────────────────────────────────────────────────────────────

// StatisticsPeriodDTO ventana actual y ventana de comparación.
type StatisticsPeriodDTO struct {
	Key       string    `json:"key"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	PrevStart time.Time `json:"prev_start"`
	PrevEnd   time.Time `json:"prev_end"`
}

// KPIsDTO métricas escalares; los *_change son % contra el período anterior.
type KPIsDTO struct {
	Revenue               decimal.Decimal `json:"revenue"`
	PrevRevenue           decimal.Decimal `json:"prev_revenue"`
	RevenueChange         decimal.Decimal `json:"revenue_change"`
	OrderCount            int             `json:"order_count"`
	PrevOrderCount        int             `json:"prev_order_count"`
	OrderCountChange      decimal.Decimal `json:"order_count_change"`
	AvgOrderValue         decimal.Decimal `json:"avg_order_value"`
	PrevAvgOrderValue     decimal.Decimal `json:"prev_avg_order_value"`
	AvgOrderValueChange   decimal.Decimal `json:"avg_order_value_change"`
	ActiveCustomers       int             `json:"active_customers"`
	PrevActiveCustomers   int             `json:"prev_active_customers"`
	ActiveCustomersChange decimal.Decimal `json:"active_customers_change"`
	ConversionRate        decimal.Decimal `json:"conversion_rate"` // activos / total clientes * 100
	TotalClients          int             `json:"total_clients"`
	PendingPayments       int             `json:"pending_payments"`
	FulfillmentRate       decimal.Decimal `json:"fulfillment_rate"` // entregados / pedidos * 100
}

// ── Serie y distribuciones ────────────────────────────────────────────────────

// DailyPointDTO punto de la serie diaria (máx. 14).
type DailyPointDTO struct {
	Date       string          `json:"date"`
	Label      string          `json:"label"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int             `json:"order_count"`
}

// StatusCountDTO conteo por estado; siempre están todos los estados conocidos.
type StatusCountDTO struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// PaymentDistributionDTO partición de pagos (failed siempre 0).
type PaymentDistributionDTO struct {
	Paid     int `json:"paid"`
	Pending  int `json:"pending"`
	Refunded int `json:"refunded"`
	Failed   int `json:"failed"`
}

// OrderTypeDistributionDTO minorista vs mayorista.
type OrderTypeDistributionDTO struct {
	Retail    int `json:"retail"`
	Wholesale int `json:"wholesale"`
}

// ── Rankings ──────────────────────────────────────────────────────────────────

// TopProductDTO fila del top 10 de productos.
type TopProductDTO struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// TopCategoryDTO fila del top 6 de categorías.
type TopCategoryDTO struct {
	CategoryID string          `json:"category_id"` // id o "uncategorized"
	Name       string          `json:"name"`
	Orders     int             `json:"orders"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopCustomerDTO fila del top 5 de clientes.
type TopCustomerDTO struct {
	ClientID int64           `json:"client_id"`
	Name     string          `json:"name"`
	Orders   int             `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// InsightDTO alerta del panel.
type InsightDTO struct {
	Severity string `json:"severity"` // warning|success|info
	Message  string `json:"message"`
}

// ── Respuesta combinada ───────────────────────────────────────────────────────

// StatisticsDTO respuesta completa de GET /api/statistics.
type StatisticsDTO struct {
	Period                StatisticsPeriodDTO      `json:"period"`
	Filter                StatisticsRequest        `json:"filter"`
	KPIs                  KPIsDTO                  `json:"kpis"`
	Series                []DailyPointDTO          `json:"series"`
	StatusDistribution    []StatusCountDTO         `json:"status_distribution"`
	PaymentDistribution   PaymentDistributionDTO   `json:"payment_distribution"`
	OrderTypeDistribution OrderTypeDistributionDTO `json:"order_type_distribution"`
	TopProducts           []TopProductDTO          `json:"top_products"`
	TopCategories         []TopCategoryDTO         `json:"top_categories"`
	TopCustomers          []TopCustomerDTO         `json:"top_customers"`
	Insights              []InsightDTO             `json:"insights"`
}

// ExportFile archivo generado para descarga.
type ExportFile struct {
	Name        string
	ContentType string
	Content     []byte
}
