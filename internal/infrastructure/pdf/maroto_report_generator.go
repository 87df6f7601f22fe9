// Package pdf genera el reporte imprimible del panel de estadísticas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período          │  Filtros + fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Ingresos | Pedidos | Ticket medio | Clientes activos  │
//	│        Conversión | Entregados | Pendientes de pago          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS                                                     │
//	│  TABLAS: Estados | Top productos | Top categorías | Clientes │
//	│  SERIE DIARIA                                                │
//	└─────────────────────────────────────────────────────────────┘
//
// Las fuentes core de PDF no tienen cirílico: para textos en ruso se debe
// registrar una fuente TTF con NewMarotoReportGenerator(fontPath).
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cargo-analytics/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 20, Green: 130, Blue: 60}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

const (
	defaultFamily = "helvetica"
	customFamily  = "report-sans"
	periodLayout  = "02.01.2006"
)

var severityColors = map[string]*props.Color{
	"warning": colorRed,
	"success": colorGreen,
	"info":    colorPrimary,
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.StatisticsPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	family string
	fonts  []*entity.CustomFont
	now    func() time.Time
}

// NewMarotoReportGenerator construye el generador. fontPath vacío usa helvetica;
// si no, carga la TTF para estilo normal y negrita.
func NewMarotoReportGenerator(fontPath string) (*MarotoReportGenerator, error) {
	g := &MarotoReportGenerator{family: defaultFamily, now: time.Now}
	if fontPath == "" {
		return g, nil
	}
	fonts, err := repository.New().
		AddUTF8Font(customFamily, fontstyle.Normal, fontPath).
		AddUTF8Font(customFamily, fontstyle.Bold, fontPath).
		Load()
	if err != nil {
		return nil, fmt.Errorf("pdf: cargar fuente %s: %w", fontPath, err)
	}
	g.family = customFamily
	g.fonts = fonts
	return g, nil
}

// GenerateStatisticsPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStatisticsPDF(_ context.Context, report *dto.StatisticsDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: g.family, Size: 9}).
		WithTitle("Статистика заказов", true).
		WithAuthor("cargo-analytics", true)
	if len(g.fonts) > 0 {
		b = b.WithCustomFonts(g.fonts)
	}
	m := maroto.New(b.Build())

	m.AddRows(headerRow(report, g.now().In(report.Period.End.Location())))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRows(report.KPIs)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(report.Insights) > 0 {
		m.AddRows(sectionRow("Рекомендации"))
		m.AddRows(insightRows(report.Insights)...)
	}

	m.AddRows(sectionRow("Статусы заказов"))
	m.AddRows(statusRows(report.StatusDistribution, report.PaymentDistribution)...)

	m.AddRows(sectionRow("Топ товаров"))
	m.AddRows(tableHeaderRow("Товар", "Шт.", "Выручка"))
	for _, p := range report.TopProducts {
		m.AddRows(tableRow(p.Name, strconv.Itoa(p.Units), formatMoney(p.Revenue)))
	}

	m.AddRows(sectionRow("Топ категорий"))
	m.AddRows(tableHeaderRow("Категория", "Заказы", "Выручка"))
	for _, c := range report.TopCategories {
		m.AddRows(tableRow(c.Name, strconv.Itoa(c.Orders), formatMoney(c.Revenue)))
	}

	m.AddRows(sectionRow("Топ клиентов"))
	m.AddRows(tableHeaderRow("Клиент", "Заказы", "Выручка"))
	for _, c := range report.TopCustomers {
		m.AddRows(tableRow(c.Name, strconv.Itoa(c.Orders), formatMoney(c.Revenue)))
	}

	m.AddRows(sectionRow("Выручка по дням"))
	m.AddRows(tableHeaderRow("День", "Заказы", "Выручка"))
	for _, p := range report.Series {
		m.AddRows(tableRow(p.Label, strconv.Itoa(p.OrderCount), formatMoney(p.Revenue)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + período (izq) y filtros + fecha de generación (der).
func headerRow(r *dto.StatisticsDTO, generated time.Time) core.Row {
	period := r.Period.Start.Format(periodLayout) + " – " + r.Period.End.Format(periodLayout)
	filters := fmt.Sprintf("Тип: %s   |   Категория: %s", r.Filter.OrderType, r.Filter.Category)

	return row.New(18).Add(
		col.New(7).Add(
			text.New("СТАТИСТИКА ЗАКАЗОВ", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Период: "+period, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(filters, props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 2,
			}),
			text.New("Сформирован: "+generated.Format("02.01.2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// kpiRows: dos filas de tarjetas con valor y variación contra el período anterior.
func kpiRows(k dto.KPIsDTO) []core.Row {
	card := func(label, value string, change *decimal.Decimal) core.Col {
		c := col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)
		if change != nil {
			c.Add(text.New(formatChange(*change), props.Text{
				Size: 7, Top: 11, Color: changeColor(*change),
			}))
		}
		return c
	}
	return []core.Row{
		row.New(16).Add(
			card("Выручка", formatMoney(k.Revenue), &k.RevenueChange),
			card("Заказы", strconv.Itoa(k.OrderCount), &k.OrderCountChange),
			card("Средний чек", formatMoney(k.AvgOrderValue), &k.AvgOrderValueChange),
			card("Активные клиенты", strconv.Itoa(k.ActiveCustomers), &k.ActiveCustomersChange),
		),
		row.New(12).Add(
			card("Конверсия", k.ConversionRate.StringFixed(1)+"%", nil),
			card("Доставлено", k.FulfillmentRate.StringFixed(1)+"%", nil),
			card("Ожидают оплаты", strconv.Itoa(k.PendingPayments), nil),
			card("Всего клиентов", strconv.Itoa(k.TotalClients), nil),
		),
	}
}

func insightRows(insights []dto.InsightDTO) []core.Row {
	rows := make([]core.Row, 0, len(insights))
	for _, in := range insights {
		color, ok := severityColors[in.Severity]
		if !ok {
			color = colorGray
		}
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("• "+in.Message, props.Text{Size: 8, Color: color, Top: 1, Left: 2}),
		)))
	}
	return rows
}

// statusRows: estados (izq) y partición de pagos (der), una línea cada uno.
func statusRows(statuses []dto.StatusCountDTO, p dto.PaymentDistributionDTO) []core.Row {
	payments := []struct {
		label string
		count int
	}{
		{"Оплачено", p.Paid},
		{"Ожидает оплаты", p.Pending},
		{"Возврат", p.Refunded},
		{"Ошибка оплаты", p.Failed},
	}
	n := len(statuses)
	if len(payments) > n {
		n = len(payments)
	}
	rows := make([]core.Row, 0, n)
	for i := 0; i < n; i++ {
		r := row.New(5)
		if i < len(statuses) {
			r.Add(
				col.New(5).Add(text.New(statuses[i].Label, props.Text{Size: 8, Left: 2})),
				col.New(1).Add(text.New(strconv.Itoa(statuses[i].Count), props.Text{Size: 8, Align: align.Right})),
			)
		} else {
			r.Add(col.New(6))
		}
		if i < len(payments) {
			r.Add(
				col.New(5).Add(text.New(payments[i].label, props.Text{Size: 8, Left: 4})),
				col.New(1).Add(text.New(strconv.Itoa(payments[i].count), props.Text{Size: 8, Align: align.Right})),
			)
		} else {
			r.Add(col.New(6))
		}
		rows = append(rows, r)
	}
	return rows
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(strings.ToUpper(title), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
		}),
	))
}

func tableHeaderRow(name, qty, amount string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h(name, 7, align.Left),
		h(qty, 2, align.Right),
		h(amount, 3, align.Right),
	)
}

func tableRow(name, qty, amount string) core.Row {
	return row.New(5).Add(
		col.New(7).Add(text.New(name, props.Text{Size: 8, Left: 1})),
		col.New(2).Add(text.New(qty, props.Text{Size: 8, Align: align.Right, Right: 1})),
		col.New(3).Add(text.New(amount, props.Text{Size: 8, Align: align.Right, Right: 1})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney redondea a entero e inserta espacios de miles.
// Ej: 25000.4 → "25 000 ₽", -1500 → "-1 500 ₽"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + " ₽"
}

func formatChange(d decimal.Decimal) string {
	s := d.StringFixed(1) + "%"
	if d.IsPositive() {
		return "+" + s
	}
	return s
}

func changeColor(d decimal.Decimal) *props.Color {
	switch {
	case d.IsPositive():
		return colorGreen
	case d.IsNegative():
		return colorRed
	default:
		return colorGray
	}
}
