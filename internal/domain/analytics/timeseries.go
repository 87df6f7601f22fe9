package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

// MaxSeriesPoints número de días que conserva la serie (los más recientes).
const MaxSeriesPoints = 14

// DayBucket totales de un día calendario local.
type DayBucket struct {
	Date       string // YYYY-MM-DD
	Label      string // ej: "19 окт"
	Revenue    decimal.Decimal
	OrderCount int
}

// BuildDailySeries recorre cada día calendario de start a end (inclusive) en la
// zona horaria de start y acumula los pedidos de current por su fecha local.
// La serie completa se construye primero y luego se recorta a los últimos
// MaxSeriesPoints días; los días descartados no se re-agregan.
func BuildDailySeries(current []entity.Order, start, end time.Time) []DayBucket {
	loc := start.Location()

	byDate := make(map[string]*DayBucket)
	series := make([]DayBucket, 0)
	for d := startOfDay(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		series = append(series, DayBucket{
			Date:    d.Format(dateLayout),
			Label:   dayLabel(d),
			Revenue: decimal.Zero,
		})
	}
	for i := range series {
		byDate[series[i].Date] = &series[i]
	}

	for _, o := range current {
		if o.CreatedAt == nil {
			continue
		}
		b, ok := byDate[o.CreatedAt.In(loc).Format(dateLayout)]
		if !ok {
			continue
		}
		b.Revenue = b.Revenue.Add(o.TotalAmount)
		b.OrderCount++
	}

	if len(series) > MaxSeriesPoints {
		series = series[len(series)-MaxSeriesPoints:]
	}
	return series
}

var shortMonths = [...]string{
	"янв", "фев", "мар", "апр", "май", "июн",
	"июл", "авг", "сен", "окт", "ноя", "дек",
}

// dayLabel etiqueta corta del eje X, ej: "19 окт".
func dayLabel(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), shortMonths[t.Month()-1])
}
