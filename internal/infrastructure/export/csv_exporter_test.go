package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
	"github.com/jhoicas/cargo-analytics/internal/infrastructure/export"
)

var (
	bom = []byte{0xEF, 0xBB, 0xBF}
	msk = time.FixedZone("MSK", 3*60*60)
)

// readCSV valida el BOM y parsea el resto con ';'.
func readCSV(t *testing.T, b []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(b, bom), "el archivo debe empezar con BOM UTF-8")
	r := csv.NewReader(bytes.NewReader(b[len(bom):]))
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportOrders_SinPedidos_SoloCabecera(t *testing.T) {
	out, err := export.NewCSVExporter(msk).ExportOrders(nil)
	require.NoError(t, err)

	rows := readCSV(t, out)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Номер заказа", "Дата", "Клиент", "Товар", "Сумма", "Статус", "Оплата"}, rows[0])
}

func TestExportOrders_FilasConFormatoLocal(t *testing.T) {
	// 23:30 UTC del 18/10 ya es 19/10 en Moscú.
	created := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
	pid := int64(9)
	orders := []entity.Order{
		{
			ID: 42, CreatedAt: &created, TotalAmount: decimal.RequireFromString("1500.5"),
			Status: entity.StatusToMoscow, IsPaid: true, ClientID: 3, ClientName: "ООО Ромашка",
			ProductName: "Куртка",
		},
		{
			ID: 43, TotalAmount: decimal.Zero, Status: entity.StatusCancelled,
			ClientID: 4, ProductID: &pid,
		},
	}

	out, err := export.NewCSVExporter(msk).ExportOrders(orders)
	require.NoError(t, err)

	rows := readCSV(t, out)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"42", "19.10.2026", "ООО Ромашка", "Куртка", "1500.50", "В пути в Москву", "Оплачен"}, rows[1])
	assert.Equal(t, []string{"43", "", "Клиент #4", "Товар #9", "0.00", "Отменён", "Не оплачен"}, rows[2])
}

func TestExportOrders_CamposConSeparadorSeEntrecomillan(t *testing.T) {
	orders := []entity.Order{{ID: 1, ClientName: "Иванов; ИП", TotalAmount: decimal.NewFromInt(10)}}

	out, err := export.NewCSVExporter(nil).ExportOrders(orders)
	require.NoError(t, err)

	assert.Contains(t, string(out), `"Иванов; ИП"`)
	rows := readCSV(t, out)
	assert.Equal(t, "Иванов; ИП", rows[1][2])
}
