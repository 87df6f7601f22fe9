package analytics

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

// Límites de los rankings.
const (
	TopProductsLimit   = 10
	TopCategoriesLimit = 6
	TopCustomersLimit  = 5
)

// UncategorizedKey clave del grupo de pedidos sin categoría.
const UncategorizedKey = "uncategorized"

// StatusDistribution conteo por estado, siempre con todos los estados conocidos presentes.
type StatusDistribution map[entity.OrderStatus]int

// PaymentDistribution partición de pagos. Failed existe por contrato del panel y siempre es 0.
type PaymentDistribution struct {
	Paid     int
	Pending  int
	Refunded int
	Failed   int
}

// OrderTypeDistribution pedidos minoristas vs mayoristas.
type OrderTypeDistribution struct {
	Retail    int
	Wholesale int
}

// ProductStat fila del top de productos.
type ProductStat struct {
	ProductID int64
	Name      string
	Units     int
	Revenue   decimal.Decimal
}

// CategoryStat fila del top de categorías.
type CategoryStat struct {
	Key     string // id de la categoría o UncategorizedKey
	Name    string
	Orders  int
	Revenue decimal.Decimal
}

// CustomerStat fila del top de clientes.
type CustomerStat struct {
	ClientID int64
	Name     string
	Orders   int
	Revenue  decimal.Decimal
}

// AggregateStatuses inicializa todos los estados conocidos en 0 e ignora los desconocidos.
func AggregateStatuses(orders []entity.Order) StatusDistribution {
	dist := make(StatusDistribution, len(entity.KnownOrderStatuses))
	for _, s := range entity.KnownOrderStatuses {
		dist[s] = 0
	}
	for _, o := range orders {
		if _, ok := dist[o.Status]; ok {
			dist[o.Status]++
		}
	}
	return dist
}

// AggregatePayments: un pedido cancelado cuenta solo como reembolsado, aunque esté pagado.
func AggregatePayments(orders []entity.Order) PaymentDistribution {
	var p PaymentDistribution
	for _, o := range orders {
		switch {
		case o.IsCancelled():
			p.Refunded++
		case o.IsPaid:
			p.Paid++
		default:
			p.Pending++
		}
	}
	return p
}

// AggregateOrderTypes ignora tipos desconocidos.
func AggregateOrderTypes(orders []entity.Order) OrderTypeDistribution {
	var d OrderTypeDistribution
	for _, o := range orders {
		switch o.OrderType {
		case entity.OrderTypeRetail:
			d.Retail++
		case entity.OrderTypeWholesale:
			d.Wholesale++
		}
	}
	return d
}

// orderedGroups mapa con orden de inserción: el orden de primera aparición
// desempata los rankings.
type orderedGroups[K comparable, V any] struct {
	index map[K]int
	items []V
}

func newOrderedGroups[K comparable, V any]() *orderedGroups[K, V] {
	return &orderedGroups[K, V]{index: make(map[K]int)}
}

// get devuelve el acumulador de key, creándolo con init si no existe.
func (g *orderedGroups[K, V]) get(key K, init func() V) *V {
	i, ok := g.index[key]
	if !ok {
		i = len(g.items)
		g.index[key] = i
		g.items = append(g.items, init())
	}
	return &g.items[i]
}

// topByRevenue ordena de forma estable por ingreso descendente y recorta a limit.
func topByRevenue[V any](items []V, revenue func(V) decimal.Decimal, limit int) []V {
	slices.SortStableFunc(items, func(a, b V) int {
		return revenue(b).Cmp(revenue(a))
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// TopProducts agrupa por producto. Pedidos sin producto no participan.
// Etiqueta: product_name del pedido, luego el catálogo, luego "Товар #<id>".
func TopProducts(orders []entity.Order, catalog []entity.Product) []ProductStat {
	names := make(map[int64]string, len(catalog))
	for _, p := range catalog {
		names[p.ID] = p.Name
	}

	groups := newOrderedGroups[int64, ProductStat]()
	for _, o := range orders {
		if o.ProductID == nil {
			continue
		}
		id := *o.ProductID
		s := groups.get(id, func() ProductStat {
			return ProductStat{ProductID: id, Revenue: decimal.Zero}
		})
		if s.Name == "" {
			s.Name = o.ProductName
		}
		s.Units += o.Quantity
		s.Revenue = s.Revenue.Add(o.TotalAmount)
	}
	for i := range groups.items {
		s := &groups.items[i]
		if s.Name == "" {
			s.Name = names[s.ProductID]
		}
		if s.Name == "" {
			s.Name = fmt.Sprintf("Товар #%d", s.ProductID)
		}
	}
	return topByRevenue(groups.items, func(s ProductStat) decimal.Decimal { return s.Revenue }, TopProductsLimit)
}

// LabelProducts completa ProductName desde el catálogo en los pedidos que no lo traen,
// para que la exportación muestre el mismo nombre que TopProducts. Devuelve una copia.
func LabelProducts(orders []entity.Order, catalog []entity.Product) []entity.Order {
	names := make(map[int64]string, len(catalog))
	for _, p := range catalog {
		names[p.ID] = p.Name
	}
	out := make([]entity.Order, len(orders))
	copy(out, orders)
	for i := range out {
		if out[i].ProductName != "" || out[i].ProductID == nil {
			continue
		}
		out[i].ProductName = names[*out[i].ProductID]
	}
	return out
}

// TopCategories agrupa por categoría; los pedidos sin categoría van al grupo UncategorizedKey.
func TopCategories(orders []entity.Order, categories []entity.Category) []CategoryStat {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[strconv.FormatInt(c.ID, 10)] = c.Name
	}

	groups := newOrderedGroups[string, CategoryStat]()
	for _, o := range orders {
		key := UncategorizedKey
		if o.CategoryID != nil {
			key = strconv.FormatInt(*o.CategoryID, 10)
		}
		s := groups.get(key, func() CategoryStat {
			return CategoryStat{Key: key, Name: categoryName(key, names), Revenue: decimal.Zero}
		})
		s.Orders++
		s.Revenue = s.Revenue.Add(o.TotalAmount)
	}
	return topByRevenue(groups.items, func(s CategoryStat) decimal.Decimal { return s.Revenue }, TopCategoriesLimit)
}

func categoryName(key string, names map[string]string) string {
	if key == UncategorizedKey {
		return "Без категории"
	}
	if n := names[key]; n != "" {
		return n
	}
	return "Категория #" + key
}

// TopCustomers agrupa por cliente. Etiqueta: client_name o "Клиент #<id>".
func TopCustomers(orders []entity.Order) []CustomerStat {
	groups := newOrderedGroups[int64, CustomerStat]()
	for _, o := range orders {
		id := o.ClientID
		s := groups.get(id, func() CustomerStat {
			return CustomerStat{ClientID: id, Revenue: decimal.Zero}
		})
		if s.Name == "" {
			s.Name = o.ClientName
		}
		s.Orders++
		s.Revenue = s.Revenue.Add(o.TotalAmount)
	}
	for i := range groups.items {
		if groups.items[i].Name == "" {
			groups.items[i].Name = fmt.Sprintf("Клиент #%d", groups.items[i].ClientID)
		}
	}
	return topByRevenue(groups.items, func(s CustomerStat) decimal.Decimal { return s.Revenue }, TopCustomersLimit)
}

// DeliveredCount pedidos con estado delivered (base del fulfillment rate).
func DeliveredCount(orders []entity.Order) int {
	n := 0
	for _, o := range orders {
		if o.Status == entity.StatusDelivered {
			n++
		}
	}
	return n
}
