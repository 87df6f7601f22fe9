package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

// Input registros ya cargados por el llamador más el estado de filtros.
// Cualquiera de las listas puede venir vacía.
type Input struct {
	Orders     []entity.Order
	Products   []entity.Product
	Clients    []entity.Client
	Categories []entity.Category
	Filter     Filter
}

// Snapshot resultado inmutable de una evaluación. Se reemplaza completo ante
// cualquier cambio de entradas; nunca se muta en sitio.
type Snapshot struct {
	Period          TimeRange
	Filter          Filter
	KPIs            KPIs
	Series          []DayBucket
	Statuses        StatusDistribution
	Payments        PaymentDistribution
	OrderTypes      OrderTypeDistribution
	TopProducts     []ProductStat
	TopCategories   []CategoryStat
	TopCustomers    []CustomerStat
	FulfillmentRate decimal.Decimal // % de pedidos entregados del período actual
	Insights        []Insight

	// Current pedidos del período actual con filtros aplicados (base de la exportación).
	Current []entity.Order
}

// Compute ejecuta el pipeline completo: período → filtros → KPIs, serie y
// agregados → alertas. now fija el "ahora" y la zona horaria local.
// Todos los acumuladores son locales a la llamada, por lo que es reentrante.
func Compute(in Input, now time.Time) Snapshot {
	period := ResolvePeriod(in.Filter.TimeRange, in.Filter.CustomFrom, in.Filter.CustomTo, now)

	current := FilterOrders(in.Orders, period.Start, period.End, in.Filter)
	previous := FilterWindow(in.Orders, period.PrevStart, period.PrevEnd)

	s := Snapshot{
		Period:        period,
		Filter:        in.Filter,
		KPIs:          CalculateKPIs(current, previous, len(in.Clients)),
		Series:        BuildDailySeries(current, period.Start, period.End),
		Statuses:      AggregateStatuses(current),
		Payments:      AggregatePayments(current),
		OrderTypes:    AggregateOrderTypes(current),
		TopProducts:   TopProducts(current, in.Products),
		TopCategories: TopCategories(current, in.Categories),
		TopCustomers:  TopCustomers(current),
		Current:       LabelProducts(current, in.Products),
	}
	s.FulfillmentRate = Ratio(
		decimal.NewFromInt(int64(DeliveredCount(current))),
		decimal.NewFromInt(int64(s.KPIs.OrderCount)),
	)
	s.Insights = GenerateInsights(&s)
	return s
}
