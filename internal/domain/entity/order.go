package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado logístico de un pedido (Estambul → Moscú → dirección del cliente).
type OrderStatus string

// Estados conocidos del pedido. Cualquier otro valor se conserva tal cual
// pero no entra en las distribuciones de forma fija.
const (
	StatusAwaitingPayment   OrderStatus = "awaiting_payment"
	StatusIstanbulWarehouse OrderStatus = "istanbul_warehouse"
	StatusToMoscow          OrderStatus = "to_moscow"
	StatusMoscowWarehouse   OrderStatus = "moscow_warehouse"
	StatusToAddress         OrderStatus = "to_address"
	StatusDelivered         OrderStatus = "delivered"
	StatusCancelled         OrderStatus = "cancelled"
)

// KnownOrderStatuses en el orden del flujo logístico.
var KnownOrderStatuses = []OrderStatus{
	StatusAwaitingPayment,
	StatusIstanbulWarehouse,
	StatusToMoscow,
	StatusMoscowWarehouse,
	StatusToAddress,
	StatusDelivered,
	StatusCancelled,
}

var statusLabels = map[OrderStatus]string{
	StatusAwaitingPayment:   "Ожидает оплаты",
	StatusIstanbulWarehouse: "На складе в Стамбуле",
	StatusToMoscow:          "В пути в Москву",
	StatusMoscowWarehouse:   "На складе в Москве",
	StatusToAddress:         "Доставляется по адресу",
	StatusDelivered:         "Доставлен",
	StatusCancelled:         "Отменён",
}

// IsKnown indica si el estado pertenece al catálogo fijo.
func (s OrderStatus) IsKnown() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label etiqueta visible del estado; para estados desconocidos devuelve el valor crudo.
func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// OrderType canal comercial del pedido.
type OrderType string

const (
	OrderTypeRetail    OrderType = "retail"
	OrderTypeWholesale OrderType = "wholesale"
)

// Order registro de pedido de solo lectura tal como lo entrega la fuente de datos.
// CreatedAt nil significa fecha ausente: el pedido no cae en ninguna ventana.
// TotalAmount ausente o no numérico ya llega normalizado a cero.
type Order struct {
	ID          int64
	CreatedAt   *time.Time
	TotalAmount decimal.Decimal
	Status      OrderStatus
	IsPaid      bool
	OrderType   OrderType
	ClientID    int64
	ClientName  string
	ProductID   *int64 // nil si el pedido no está ligado a un producto del catálogo
	ProductName string
	Quantity    int
	CategoryID  *int64
}

// IsCancelled atajo usado por la distribución de pagos.
func (o Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}
