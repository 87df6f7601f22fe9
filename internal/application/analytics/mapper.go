package analytics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cargo-analytics/internal/application/dto"
	engine "github.com/jhoicas/cargo-analytics/internal/domain/analytics"
	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

// ── Instantánea → DTO ─────────────────────────────────────────────────────────

func toStatisticsDTO(s engine.Snapshot) *dto.StatisticsDTO {
	out := &dto.StatisticsDTO{
		Period: dto.StatisticsPeriodDTO{
			Key:       string(s.Period.Key),
			Start:     s.Period.Start,
			End:       s.Period.End,
			PrevStart: s.Period.PrevStart,
			PrevEnd:   s.Period.PrevEnd,
		},
		Filter: dto.StatisticsRequest{
			TimeRange: string(s.Filter.TimeRange),
			From:      s.Filter.CustomFrom,
			To:        s.Filter.CustomTo,
			OrderType: s.Filter.OrderType,
			Category:  s.Filter.Category,
		},
		KPIs: dto.KPIsDTO{
			Revenue:               round2(s.KPIs.Revenue),
			PrevRevenue:           round2(s.KPIs.PrevRevenue),
			RevenueChange:         round2(s.KPIs.RevenueChange),
			OrderCount:            s.KPIs.OrderCount,
			PrevOrderCount:        s.KPIs.PrevOrderCount,
			OrderCountChange:      round2(s.KPIs.OrderCountChange),
			AvgOrderValue:         round2(s.KPIs.AvgOrderValue),
			PrevAvgOrderValue:     round2(s.KPIs.PrevAvgOrderValue),
			AvgOrderValueChange:   round2(s.KPIs.AvgOrderValueChange),
			ActiveCustomers:       s.KPIs.ActiveCustomers,
			PrevActiveCustomers:   s.KPIs.PrevActiveCustomers,
			ActiveCustomersChange: round2(s.KPIs.ActiveCustomersChange),
			ConversionRate:        round2(s.KPIs.ConversionRate),
			TotalClients:          s.KPIs.TotalClients,
			PendingPayments:       s.Payments.Pending,
			FulfillmentRate:       round2(s.FulfillmentRate),
		},
		Series:             make([]dto.DailyPointDTO, 0, len(s.Series)),
		StatusDistribution: make([]dto.StatusCountDTO, 0, len(entity.KnownOrderStatuses)),
		PaymentDistribution: dto.PaymentDistributionDTO{
			Paid:     s.Payments.Paid,
			Pending:  s.Payments.Pending,
			Refunded: s.Payments.Refunded,
			Failed:   s.Payments.Failed,
		},
		OrderTypeDistribution: dto.OrderTypeDistributionDTO{
			Retail:    s.OrderTypes.Retail,
			Wholesale: s.OrderTypes.Wholesale,
		},
		TopProducts:   make([]dto.TopProductDTO, 0, len(s.TopProducts)),
		TopCategories: make([]dto.TopCategoryDTO, 0, len(s.TopCategories)),
		TopCustomers:  make([]dto.TopCustomerDTO, 0, len(s.TopCustomers)),
		Insights:      make([]dto.InsightDTO, 0, len(s.Insights)),
	}

	for _, b := range s.Series {
		out.Series = append(out.Series, dto.DailyPointDTO{
			Date:       b.Date,
			Label:      b.Label,
			Revenue:    round2(b.Revenue),
			OrderCount: b.OrderCount,
		})
	}
	// Orden fijo del flujo logístico, no el del mapa.
	for _, st := range entity.KnownOrderStatuses {
		out.StatusDistribution = append(out.StatusDistribution, dto.StatusCountDTO{
			Status: string(st),
			Label:  st.Label(),
			Count:  s.Statuses[st],
		})
	}
	for _, p := range s.TopProducts {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID: p.ProductID,
			Name:      p.Name,
			Units:     p.Units,
			Revenue:   round2(p.Revenue),
		})
	}
	for _, c := range s.TopCategories {
		out.TopCategories = append(out.TopCategories, dto.TopCategoryDTO{
			CategoryID: c.Key,
			Name:       c.Name,
			Orders:     c.Orders,
			Revenue:    round2(c.Revenue),
		})
	}
	for _, c := range s.TopCustomers {
		out.TopCustomers = append(out.TopCustomers, dto.TopCustomerDTO{
			ClientID: c.ClientID,
			Name:     c.Name,
			Orders:   c.Orders,
			Revenue:  round2(c.Revenue),
		})
	}
	for _, in := range s.Insights {
		out.Insights = append(out.Insights, dto.InsightDTO{
			Severity: string(in.Severity),
			Message:  in.Message,
		})
	}
	return out
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ── Registros → entidades ─────────────────────────────────────────────────────

// recordsToInput convierte los registros sueltos del panel en entidades.
// Campos ausentes o ilegibles quedan en su valor neutro; nunca falla.
func recordsToInput(req dto.ComputeRequest, loc *time.Location) engine.Input {
	in := engine.Input{
		Orders:     make([]entity.Order, 0, len(req.Orders)),
		Products:   make([]entity.Product, 0, len(req.Products)),
		Clients:    make([]entity.Client, 0, len(req.Clients)),
		Categories: make([]entity.Category, 0, len(req.Categories)),
	}
	for _, r := range req.Orders {
		in.Orders = append(in.Orders, entity.Order{
			ID:          r.ID.Value,
			CreatedAt:   r.CreatedAt.In(loc),
			TotalAmount: r.TotalAmount.Decimal,
			Status:      entity.OrderStatus(strings.TrimSpace(r.Status)),
			IsPaid:      r.IsPaid,
			OrderType:   entity.OrderType(strings.TrimSpace(r.OrderType)),
			ClientID:    r.Client.Value,
			ClientName:  r.ClientName,
			ProductID:   r.Product.Ptr(),
			ProductName: r.ProductName,
			Quantity:    int(r.Quantity.Value),
			CategoryID:  r.CategoryID.Ptr(),
		})
	}
	for _, r := range req.Products {
		in.Products = append(in.Products, entity.Product{
			ID:         r.ID.Value,
			Name:       r.Name,
			CategoryID: r.Category.Ptr(),
		})
	}
	for _, r := range req.Clients {
		in.Clients = append(in.Clients, entity.Client{
			ID:        r.ID.Value,
			Name:      r.Name,
			CreatedAt: r.CreatedAt.In(loc),
		})
	}
	for _, r := range req.Categories {
		in.Categories = append(in.Categories, entity.Category{
			ID:   r.ID.Value,
			Name: r.Name,
		})
	}
	return in
}
