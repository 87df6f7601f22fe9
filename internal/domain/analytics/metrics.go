package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// KPIs métricas escalares del período actual y su variación porcentual
// contra el período de comparación.
type KPIs struct {
	Revenue               decimal.Decimal
	PrevRevenue           decimal.Decimal
	RevenueChange         decimal.Decimal
	OrderCount            int
	PrevOrderCount        int
	OrderCountChange      decimal.Decimal
	AvgOrderValue         decimal.Decimal
	PrevAvgOrderValue     decimal.Decimal
	AvgOrderValueChange   decimal.Decimal
	ActiveCustomers       int
	PrevActiveCustomers   int
	ActiveCustomersChange decimal.Decimal
	ConversionRate        decimal.Decimal
	TotalClients          int
}

// CalculateKPIs calcula los KPIs sobre el conjunto filtrado actual y el de comparación.
// totalClients es el tamaño de la lista completa de clientes, sin filtrar.
func CalculateKPIs(current, previous []entity.Order, totalClients int) KPIs {
	k := KPIs{
		Revenue:             sumAmounts(current),
		PrevRevenue:         sumAmounts(previous),
		OrderCount:          len(current),
		PrevOrderCount:      len(previous),
		ActiveCustomers:     distinctClients(current),
		PrevActiveCustomers: distinctClients(previous),
		TotalClients:        totalClients,
	}
	k.AvgOrderValue = average(k.Revenue, k.OrderCount)
	k.PrevAvgOrderValue = average(k.PrevRevenue, k.PrevOrderCount)

	k.RevenueChange = PercentChange(k.Revenue, k.PrevRevenue)
	k.OrderCountChange = PercentChange(decimal.NewFromInt(int64(k.OrderCount)), decimal.NewFromInt(int64(k.PrevOrderCount)))
	k.AvgOrderValueChange = PercentChange(k.AvgOrderValue, k.PrevAvgOrderValue)
	k.ActiveCustomersChange = PercentChange(
		decimal.NewFromInt(int64(k.ActiveCustomers)),
		decimal.NewFromInt(int64(k.PrevActiveCustomers)),
	)

	k.ConversionRate = decimal.Zero
	if totalClients > 0 {
		k.ConversionRate = decimal.NewFromInt(int64(k.ActiveCustomers)).
			Div(decimal.NewFromInt(int64(totalClients))).
			Mul(hundred)
	}
	return k
}

// PercentChange (current-previous)/previous*100; 0 si previous no es positivo.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}

// Ratio part/total*100 con el denominador protegido.
func Ratio(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

func sumAmounts(orders []entity.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalAmount)
	}
	return total
}

func average(sum decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

func distinctClients(orders []entity.Order) int {
	seen := make(map[int64]struct{}, len(orders))
	for _, o := range orders {
		seen[o.ClientID] = struct{}{}
	}
	return len(seen)
}
