package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

// FilterAll valor comodín de los filtros de tipo de pedido y categoría.
const FilterAll = "all"

// Filter estado de filtros del panel.
type Filter struct {
	TimeRange  TimeRangeKey
	CustomFrom string // YYYY-MM-DD, solo con RangeCustom
	CustomTo   string
	OrderType  string // all | retail | wholesale
	Category   string // all | id numérico de la categoría
}

// categoryMatcher compara por valor numérico: "7", " 7" y 7 son la misma categoría.
type categoryMatcher struct {
	all bool
	id  int64
	ok  bool
}

func newCategoryMatcher(raw string) categoryMatcher {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == FilterAll {
		return categoryMatcher{all: true}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Un filtro no numérico no puede coincidir con ninguna categoría.
		return categoryMatcher{}
	}
	return categoryMatcher{id: id, ok: true}
}

func (m categoryMatcher) match(categoryID *int64) bool {
	if m.all {
		return true
	}
	return m.ok && categoryID != nil && *categoryID == m.id
}

// ValidCategoryFilter valida el filtro de categoría: "all"/"" o un entero.
func ValidCategoryFilter(raw string) bool {
	m := newCategoryMatcher(raw)
	return m.all || m.ok
}

// FilterOrders proyecta los pedidos cuya fecha cae en [start, end] y que cumplen
// los filtros de tipo de pedido y categoría. No modifica orders.
func FilterOrders(orders []entity.Order, start, end time.Time, f Filter) []entity.Order {
	orderType := strings.TrimSpace(f.OrderType)
	category := newCategoryMatcher(f.Category)

	out := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if !inWindow(o, start, end) {
			continue
		}
		if orderType != "" && orderType != FilterAll && string(o.OrderType) != orderType {
			continue
		}
		if !category.match(o.CategoryID) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// FilterWindow solo aplica la ventana de fechas; se usa para el período de comparación.
func FilterWindow(orders []entity.Order, start, end time.Time) []entity.Order {
	out := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if inWindow(o, start, end) {
			out = append(out, o)
		}
	}
	return out
}

// inWindow: pedidos sin fecha quedan fuera de cualquier ventana.
func inWindow(o entity.Order, start, end time.Time) bool {
	if o.CreatedAt == nil {
		return false
	}
	t := *o.CreatedAt
	return !t.Before(start) && !t.After(end)
}
