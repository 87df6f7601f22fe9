package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

// msk zona fija para que los tests no dependan del TZ de la máquina.
var msk = time.FixedZone("MSK", 3*60*60)

// testNow lunes 19/10/2026 15:30 hora de Moscú.
var testNow = time.Date(2026, 10, 19, 15, 30, 0, 0, msk)

func at(t time.Time) *time.Time { return &t }

func id(v int64) *int64 { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// order construye un pedido mínimo válido; los campos restantes se ajustan en cada test.
func order(orderID int64, amount string, created time.Time) entity.Order {
	return entity.Order{
		ID:          orderID,
		CreatedAt:   at(created),
		TotalAmount: dec(amount),
		Status:      entity.StatusAwaitingPayment,
		OrderType:   entity.OrderTypeRetail,
		ClientID:    orderID,
		Quantity:    1,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "esperado %s, obtenido %s %v", want, got.String(), msgAndArgs)
}
