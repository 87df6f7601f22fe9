package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Severity nivel visual de una alerta.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
)

// MaxInsights tope de alertas en el panel.
const MaxInsights = 4

// Insight alerta textual derivada de reglas.
type Insight struct {
	Severity Severity
	Message  string
}

var (
	revenueDropThreshold     = decimal.NewFromInt(-10)
	revenueGrowthThreshold   = decimal.NewFromInt(20)
	pendingShareThreshold    = decimal.NewFromFloat(0.3)
	categoryShareThreshold   = decimal.NewFromInt(40)
	fulfillmentThreshold     = decimal.NewFromInt(50)
	customerGrowthThreshold  = decimal.NewFromInt(30)
	fulfillmentMinOrderCount = 10
)

// insightRule devuelve la alerta y true si la regla aplica.
type insightRule func(s *Snapshot) (Insight, bool)

// insightRules en orden de declaración; el panel muestra las primeras MaxInsights.
var insightRules = []insightRule{
	revenueDropRule,
	revenueGrowthRule,
	pendingPaymentsRule,
	categoryConcentrationRule,
	lowFulfillmentRule,
	customerGrowthRule,
}

// GenerateInsights evalúa las reglas sobre la instantánea ya calculada.
func GenerateInsights(s *Snapshot) []Insight {
	out := make([]Insight, 0, MaxInsights)
	for _, rule := range insightRules {
		if len(out) == MaxInsights {
			break
		}
		if in, ok := rule(s); ok {
			out = append(out, in)
		}
	}
	return out
}

func revenueDropRule(s *Snapshot) (Insight, bool) {
	if !s.KPIs.RevenueChange.LessThan(revenueDropThreshold) {
		return Insight{}, false
	}
	return Insight{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("Выручка снизилась на %s%% по сравнению с предыдущим периодом", pct(s.KPIs.RevenueChange.Abs())),
	}, true
}

func revenueGrowthRule(s *Snapshot) (Insight, bool) {
	if !s.KPIs.RevenueChange.GreaterThan(revenueGrowthThreshold) {
		return Insight{}, false
	}
	return Insight{
		Severity: SeveritySuccess,
		Message:  fmt.Sprintf("Выручка выросла на %s%% по сравнению с предыдущим периодом", pct(s.KPIs.RevenueChange)),
	}, true
}

func pendingPaymentsRule(s *Snapshot) (Insight, bool) {
	limit := decimal.NewFromInt(int64(s.KPIs.OrderCount)).Mul(pendingShareThreshold)
	if !decimal.NewFromInt(int64(s.Payments.Pending)).GreaterThan(limit) {
		return Insight{}, false
	}
	return Insight{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("Много неоплаченных заказов: %d из %d", s.Payments.Pending, s.KPIs.OrderCount),
	}, true
}

func categoryConcentrationRule(s *Snapshot) (Insight, bool) {
	if len(s.TopCategories) == 0 {
		return Insight{}, false
	}
	top := s.TopCategories[0]
	share := Ratio(top.Revenue, s.KPIs.Revenue)
	if !share.GreaterThan(categoryShareThreshold) {
		return Insight{}, false
	}
	return Insight{
		Severity: SeverityInfo,
		Message:  fmt.Sprintf("Категория «%s» приносит %s%% выручки", top.Name, pct(share)),
	}, true
}

func lowFulfillmentRule(s *Snapshot) (Insight, bool) {
	if s.KPIs.OrderCount <= fulfillmentMinOrderCount || !s.FulfillmentRate.LessThan(fulfillmentThreshold) {
		return Insight{}, false
	}
	return Insight{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("Низкий процент доставленных заказов: %s%%", pct(s.FulfillmentRate)),
	}, true
}

func customerGrowthRule(s *Snapshot) (Insight, bool) {
	if !s.KPIs.ActiveCustomersChange.GreaterThan(customerGrowthThreshold) {
		return Insight{}, false
	}
	return Insight{
		Severity: SeveritySuccess,
		Message:  fmt.Sprintf("Число активных клиентов выросло на %s%%", pct(s.KPIs.ActiveCustomersChange)),
	}, true
}

func pct(d decimal.Decimal) string {
	return d.StringFixed(1)
}
