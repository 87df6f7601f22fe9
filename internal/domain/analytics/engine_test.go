package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cargo-analytics/internal/domain/analytics"
	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

func todayFilter() analytics.Filter {
	return analytics.Filter{TimeRange: analytics.RangeToday, OrderType: analytics.FilterAll, Category: analytics.FilterAll}
}

func TestCompute_EscenarioHoy(t *testing.T) {
	delivered := order(1, "100", testNow.Add(-2*time.Hour))
	delivered.Status = entity.StatusDelivered
	delivered.IsPaid = true
	awaiting := order(2, "200", testNow.Add(-time.Hour))

	s := analytics.Compute(analytics.Input{
		Orders: []entity.Order{delivered, awaiting},
		Filter: todayFilter(),
	}, testNow)

	assertDecimal(t, "300", s.KPIs.Revenue)
	assert.Equal(t, 2, s.KPIs.OrderCount)
	assert.Equal(t, 1, s.Payments.Paid)
	assert.Equal(t, 1, s.Payments.Pending)
	assert.Equal(t, 0, s.Payments.Refunded)
	for _, st := range entity.KnownOrderStatuses {
		want := 0
		if st == entity.StatusDelivered || st == entity.StatusAwaitingPayment {
			want = 1
		}
		assert.Equal(t, want, s.Statuses[st], "estado %s", st)
	}
	require.Len(t, s.Series, 1)
	assertDecimal(t, "300", s.Series[0].Revenue)
	assertDecimal(t, "50", s.FulfillmentRate)
}

func TestCompute_SinPedidos(t *testing.T) {
	keys := []analytics.TimeRangeKey{analytics.RangeToday, analytics.Range7Days, analytics.Range30Days, analytics.RangeCustom}
	for _, k := range keys {
		t.Run(string(k), func(t *testing.T) {
			s := analytics.Compute(analytics.Input{
				Clients: []entity.Client{{ID: 1}, {ID: 2}},
				Filter:  analytics.Filter{TimeRange: k},
			}, testNow)

			assertDecimal(t, "0", s.KPIs.Revenue)
			assert.Zero(t, s.KPIs.OrderCount)
			assertDecimal(t, "0", s.KPIs.ConversionRate)
			assert.Empty(t, s.Insights)
			assert.NotEmpty(t, s.Series)
			for _, b := range s.Series {
				assertDecimal(t, "0", b.Revenue)
				assert.Zero(t, b.OrderCount)
			}
			assert.Empty(t, s.TopProducts)
			assert.Empty(t, s.TopCategories)
			assert.Empty(t, s.TopCustomers)
		})
	}
}

func TestCompute_CategoriaSinCoincidencias(t *testing.T) {
	o := order(1, "100", testNow)
	o.CategoryID = id(1)

	f := todayFilter()
	f.Category = "42"
	s := analytics.Compute(analytics.Input{Orders: []entity.Order{o}, Filter: f}, testNow)

	assert.Empty(t, s.Current)
	assert.Zero(t, s.KPIs.OrderCount)
	assertDecimal(t, "0", s.KPIs.Revenue)
	for _, n := range s.Statuses {
		assert.Zero(t, n)
	}
	assert.Zero(t, s.Payments.Paid+s.Payments.Pending+s.Payments.Refunded)
}

func TestCompute_ComparacionIgnoraFiltros(t *testing.T) {
	cur := order(1, "100", testNow)
	cur.OrderType = entity.OrderTypeWholesale
	prev := order(2, "400", testNow.AddDate(0, 0, -1)) // ayer, minorista

	f := todayFilter()
	f.OrderType = "wholesale"
	s := analytics.Compute(analytics.Input{Orders: []entity.Order{cur, prev}, Filter: f}, testNow)

	assertDecimal(t, "100", s.KPIs.Revenue)
	assertDecimal(t, "400", s.KPIs.PrevRevenue)
	assertDecimal(t, "-75", s.KPIs.RevenueChange)
	require.NotEmpty(t, s.Insights)
	assert.Equal(t, analytics.SeverityWarning, s.Insights[0].Severity)
}

func TestCompute_Idempotente(t *testing.T) {
	orders := make([]entity.Order, 0)
	for i := 0; i < 40; i++ {
		o := order(int64(i), "19.99", testNow.Add(-time.Duration(i)*7*time.Hour))
		o.Status = entity.KnownOrderStatuses[i%len(entity.KnownOrderStatuses)]
		o.IsPaid = i%2 == 0
		o.ClientID = int64(i % 6)
		o.ProductID = id(int64(i % 4))
		if i%3 == 0 {
			o.CategoryID = id(int64(i % 5))
		}
		orders = append(orders, o)
	}
	in := analytics.Input{
		Orders:  orders,
		Clients: make([]entity.Client, 10),
		Filter:  analytics.Filter{TimeRange: analytics.Range7Days},
	}

	first := analytics.Compute(in, testNow)
	second := analytics.Compute(in, testNow)

	assert.Equal(t, first, second)
}

func TestCompute_ReentranteEnParalelo(t *testing.T) {
	o := order(1, "10", testNow)
	in := analytics.Input{Orders: []entity.Order{o}, Filter: todayFilter()}
	want := analytics.Compute(in, testNow)

	done := make(chan analytics.Snapshot, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- analytics.Compute(in, testNow) }()
	}
	for i := 0; i < 8; i++ {
		got := <-done
		assert.True(t, want.KPIs.Revenue.Equal(got.KPIs.Revenue))
		assert.Equal(t, want.KPIs.OrderCount, got.KPIs.OrderCount)
	}
}
