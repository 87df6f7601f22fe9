package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cargo-analytics/internal/application/analytics"
	"github.com/jhoicas/cargo-analytics/internal/application/dto"
	"github.com/jhoicas/cargo-analytics/internal/domain"
	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
	"github.com/jhoicas/cargo-analytics/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

var msk = time.FixedZone("MSK", 3*60*60)

// testNow lunes 19/10/2026 15:30 hora de Moscú.
var testNow = time.Date(2026, 10, 19, 15, 30, 0, 0, msk)

type fakeRecords struct {
	orders     []entity.Order
	products   []entity.Product
	clients    []entity.Client
	categories []entity.Category
	err        error
}

func (f *fakeRecords) ListOrders(context.Context) ([]entity.Order, error) {
	return f.orders, f.err
}

func (f *fakeRecords) ListProducts(context.Context) ([]entity.Product, error) {
	return f.products, nil
}

func (f *fakeRecords) ListClients(context.Context) ([]entity.Client, error) {
	return f.clients, nil
}

func (f *fakeRecords) ListCategories(context.Context) ([]entity.Category, error) {
	return f.categories, nil
}

type fakeCSV struct {
	mu     sync.Mutex
	orders []entity.Order
}

func (f *fakeCSV) ExportOrders(orders []entity.Order) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = orders
	return []byte("csv"), nil
}

type fakePDF struct {
	report *dto.StatisticsDTO
	err    error
}

func (f *fakePDF) GenerateStatisticsPDF(_ context.Context, report *dto.StatisticsDTO) ([]byte, error) {
	f.report = report
	return []byte("%PDF"), f.err
}

func at(t time.Time) *time.Time { return &t }

func id(v int64) *int64 { return &v }

func sampleRecords() *fakeRecords {
	return &fakeRecords{
		orders: []entity.Order{
			{ID: 1, CreatedAt: at(testNow.Add(-2 * time.Hour)), TotalAmount: decimal.NewFromInt(100),
				Status: entity.StatusDelivered, IsPaid: true, OrderType: entity.OrderTypeRetail,
				ClientID: 10, ClientName: "Анна", ProductID: id(5), Quantity: 2, CategoryID: id(1)},
			{ID: 2, CreatedAt: at(testNow.Add(-time.Hour)), TotalAmount: decimal.NewFromInt(50),
				Status: entity.StatusToMoscow, OrderType: entity.OrderTypeWholesale,
				ClientID: 11, ProductID: id(6), Quantity: 1},
			{ID: 3, CreatedAt: at(testNow.AddDate(0, 0, -1)), TotalAmount: decimal.NewFromInt(80),
				Status: entity.StatusDelivered, IsPaid: true, OrderType: entity.OrderTypeRetail,
				ClientID: 10},
		},
		products:   []entity.Product{{ID: 5, Name: "Куртка"}, {ID: 6, Name: "Сумка"}},
		clients:    []entity.Client{{ID: 10, Name: "Анна"}, {ID: 11, Name: "Борис"}, {ID: 12, Name: "Вера"}, {ID: 13, Name: "Глеб"}},
		categories: []entity.Category{{ID: 1, Name: "Одежда"}},
	}
}

func newUseCase(repo *fakeRecords, csv *fakeCSV, pdf *fakePDF) *analytics.StatisticsUseCase {
	return analytics.NewStatisticsUseCase(repo, csv, pdf, logger.Nop(), msk).
		WithClock(func() time.Time { return testNow })
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseFilter
// ──────────────────────────────────────────────────────────────────────────────

func TestParseFilter_ValoresPorDefecto(t *testing.T) {
	f, err := analytics.ParseFilter(dto.StatisticsRequest{})
	require.NoError(t, err)
	assert.Equal(t, "30days", string(f.TimeRange))
	assert.Equal(t, "all", f.OrderType)
	assert.Equal(t, "all", f.Category)
}

func TestParseFilter_RangoDesconocido_ErrInvalidInput(t *testing.T) {
	_, err := analytics.ParseFilter(dto.StatisticsRequest{TimeRange: "year"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestParseFilter_TipoDePedidoDesconocido_ErrInvalidInput(t *testing.T) {
	_, err := analytics.ParseFilter(dto.StatisticsRequest{OrderType: "vip"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestParseFilter_CategoriaNoNumerica_ErrInvalidInput(t *testing.T) {
	_, err := analytics.ParseFilter(dto.StatisticsRequest{Category: "ropa"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestParseFilter_CustomConFechasIlegibles_NoEsError(t *testing.T) {
	f, err := analytics.ParseFilter(dto.StatisticsRequest{TimeRange: "custom", From: "ayer", To: ""})
	require.NoError(t, err)
	assert.Equal(t, "custom", string(f.TimeRange))
}

// ──────────────────────────────────────────────────────────────────────────────
// GetStatistics
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStatistics_Hoy(t *testing.T) {
	uc := newUseCase(sampleRecords(), &fakeCSV{}, &fakePDF{})

	got, err := uc.GetStatistics(context.Background(), dto.StatisticsRequest{TimeRange: "today"})
	require.NoError(t, err)

	assert.Equal(t, "today", got.Period.Key)
	assert.Equal(t, 2, got.KPIs.OrderCount)
	assert.True(t, decimal.NewFromInt(150).Equal(got.KPIs.Revenue), "revenue = %s", got.KPIs.Revenue)
	assert.True(t, decimal.NewFromInt(80).Equal(got.KPIs.PrevRevenue), "prev revenue = %s", got.KPIs.PrevRevenue)
	assert.True(t, decimal.NewFromInt(75).Equal(got.KPIs.AvgOrderValue))
	assert.Equal(t, 2, got.KPIs.ActiveCustomers)
	assert.Equal(t, 4, got.KPIs.TotalClients)
	assert.True(t, decimal.NewFromInt(50).Equal(got.KPIs.ConversionRate))
	assert.True(t, decimal.NewFromInt(50).Equal(got.KPIs.FulfillmentRate))
	assert.Equal(t, 1, got.KPIs.PendingPayments)

	require.Len(t, got.StatusDistribution, len(entity.KnownOrderStatuses))
	assert.Equal(t, "awaiting_payment", got.StatusDistribution[0].Status)
	assert.Equal(t, "cancelled", got.StatusDistribution[6].Status)

	require.Len(t, got.TopProducts, 2)
	assert.Equal(t, "Куртка", got.TopProducts[0].Name)
	assert.Equal(t, 2, got.TopProducts[0].Units)

	require.Len(t, got.Series, 1)
	assert.Equal(t, "2026-10-19", got.Series[0].Date)
}

func TestGetStatistics_SinPedidos_ListasVaciasNoNulas(t *testing.T) {
	uc := newUseCase(&fakeRecords{}, &fakeCSV{}, &fakePDF{})

	got, err := uc.GetStatistics(context.Background(), dto.StatisticsRequest{TimeRange: "7days"})
	require.NoError(t, err)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "null", "las listas vacías deben serializarse como []")
	assert.Equal(t, 0, got.KPIs.OrderCount)
	assert.True(t, got.KPIs.Revenue.IsZero())
}

func TestGetStatistics_FiltroInvalido_NoConsultaRepositorio(t *testing.T) {
	repo := &fakeRecords{err: errors.New("no debería llamarse")}
	uc := newUseCase(repo, &fakeCSV{}, &fakePDF{})

	_, err := uc.GetStatistics(context.Background(), dto.StatisticsRequest{Category: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestGetStatistics_ErrorDeRepositorio_SePropaga(t *testing.T) {
	dbErr := errors.New("conexión rechazada")
	repo := sampleRecords()
	repo.err = dbErr
	uc := newUseCase(repo, &fakeCSV{}, &fakePDF{})

	_, err := uc.GetStatistics(context.Background(), dto.StatisticsRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dbErr), "el error original debe quedar envuelto")
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeFromRecords
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeFromRecords_RegistrosHeterogeneos(t *testing.T) {
	body := `{
		"orders": [
			{"id": "1", "created_at": "2026-10-19T10:00:00+03:00", "total_amount": "1500.50",
			 "status": "delivered", "is_paid": true, "order_type": "retail", "client": 7,
			 "product": "3", "quantity": 2, "category_id": 4},
			{"id": 2, "created_at": "2026-10-19 12:00:00", "total_amount": null,
			 "status": "awaiting_payment", "order_type": "wholesale", "client": "8",
			 "product": null, "quantity": "1", "category_id": null},
			{"id": 3, "created_at": null, "total_amount": 99, "status": "delivered", "client": 9},
			{"id": 4.0, "created_at": "2026-10-19T11:00:00+03:00", "total_amount": 100,
			 "status": "to_moscow", "order_type": "retail", "client": 7,
			 "product": 3.0, "quantity": 2.0, "category_id": 4.0}
		],
		"products": [{"id": 3, "name": "Куртка", "category": 4}],
		"clients": [{"id": 7, "name": "Анна"}, {"id": 8, "name": "Борис"}],
		"categories": [{"id": "4", "name": "Одежда"}],
		"filter": {"time_range": "today"}
	}`
	var req dto.ComputeRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	uc := newUseCase(&fakeRecords{}, &fakeCSV{}, &fakePDF{})
	got, err := uc.ComputeFromRecords(req)
	require.NoError(t, err)

	assert.Equal(t, 3, got.KPIs.OrderCount, "el pedido sin fecha queda fuera de toda ventana")
	assert.True(t, decimal.RequireFromString("1600.5").Equal(got.KPIs.Revenue), "revenue = %s", got.KPIs.Revenue)
	require.Len(t, got.TopProducts, 1)
	assert.Equal(t, "Куртка", got.TopProducts[0].Name)
	assert.Equal(t, 4, got.TopProducts[0].Units, "quantity 2.0 cuenta como 2")
	require.Len(t, got.TopCategories, 2)
	assert.Equal(t, "Одежда", got.TopCategories[0].Name)
	assert.True(t, decimal.RequireFromString("1600.5").Equal(got.TopCategories[0].Revenue), "category_id 4.0 es la categoría 4")
	assert.Equal(t, "uncategorized", got.TopCategories[1].CategoryID)
}

func TestComputeFromRecords_CategoriaFlotanteCoincideConFiltro(t *testing.T) {
	body := `{
		"orders": [
			{"id": 1, "created_at": "2026-10-19T10:00:00+03:00", "total_amount": 70,
			 "status": "delivered", "client": 7, "category_id": 3.0},
			{"id": 2, "created_at": "2026-10-19T11:00:00+03:00", "total_amount": 30,
			 "status": "delivered", "client": 8, "category_id": 3.5}
		],
		"filter": {"time_range": "today", "category": "3"}
	}`
	var req dto.ComputeRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	uc := newUseCase(&fakeRecords{}, &fakeCSV{}, &fakePDF{})
	got, err := uc.ComputeFromRecords(req)
	require.NoError(t, err)

	assert.Equal(t, 1, got.KPIs.OrderCount, "3.0 coincide con la categoría 3; 3.5 no es un id")
	assert.True(t, decimal.RequireFromString("70").Equal(got.KPIs.Revenue), "revenue = %s", got.KPIs.Revenue)
}

func TestComputeFromRecords_FiltroInvalido(t *testing.T) {
	uc := newUseCase(&fakeRecords{}, &fakeCSV{}, &fakePDF{})
	_, err := uc.ComputeFromRecords(dto.ComputeRequest{Filter: dto.StatisticsRequest{TimeRange: "week"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestExportCSV_SoloPedidosFiltrados(t *testing.T) {
	csv := &fakeCSV{}
	uc := newUseCase(sampleRecords(), csv, &fakePDF{})

	file, err := uc.ExportCSV(context.Background(), dto.StatisticsRequest{TimeRange: "today", OrderType: "retail"})
	require.NoError(t, err)

	assert.Equal(t, "statistics_2026-10-19.csv", file.Name)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
	require.Len(t, csv.orders, 1)
	assert.Equal(t, int64(1), csv.orders[0].ID)
	assert.Equal(t, "Куртка", csv.orders[0].ProductName, "el CSV usa el mismo nombre de catálogo que el top de productos")
}

func TestExportPDF_UsaLaMismaInstantanea(t *testing.T) {
	pdf := &fakePDF{}
	uc := newUseCase(sampleRecords(), &fakeCSV{}, pdf)

	file, err := uc.ExportPDF(context.Background(), dto.StatisticsRequest{TimeRange: "today"})
	require.NoError(t, err)

	assert.Equal(t, "statistics_2026-10-19.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)
	require.NotNil(t, pdf.report)
	assert.Equal(t, 2, pdf.report.KPIs.OrderCount)
}

func TestExportPDF_ErrorDelGenerador(t *testing.T) {
	pdf := &fakePDF{err: errors.New("fuente no encontrada")}
	uc := newUseCase(sampleRecords(), &fakeCSV{}, pdf)

	_, err := uc.ExportPDF(context.Background(), dto.StatisticsRequest{})
	assert.Error(t, err)
}
