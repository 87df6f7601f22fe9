// Package analytics contiene los casos de uso del panel de estadísticas:
// carga de registros, ejecución del motor de agregación y exportaciones.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/cargo-analytics/internal/application/dto"
	"github.com/jhoicas/cargo-analytics/internal/domain"
	engine "github.com/jhoicas/cargo-analytics/internal/domain/analytics"
	"github.com/jhoicas/cargo-analytics/internal/domain/repository"
	"github.com/jhoicas/cargo-analytics/pkg/logger"
)

const fileDateLayout = "2006-01-02"

// StatisticsUseCase orquesta el panel de estadísticas:
//   - Carga en paralelo pedidos, productos, clientes y categorías.
//   - Ejecuta el motor puro (internal/domain/analytics) con el "ahora" en la zona del panel.
//   - Convierte la instantánea en DTO o en archivos de exportación (CSV, PDF).
//
// No guarda estado entre llamadas: cada petición recalcula todo desde cero.
type StatisticsUseCase struct {
	records repository.RecordsRepository
	csv     OrdersCSVExporter
	pdf     StatisticsPDFGenerator
	log     *logger.Logger
	loc     *time.Location
	now     func() time.Time
}

// NewStatisticsUseCase construye el caso de uso. loc nil equivale a UTC.
func NewStatisticsUseCase(
	records repository.RecordsRepository,
	csv OrdersCSVExporter,
	pdf StatisticsPDFGenerator,
	log *logger.Logger,
	loc *time.Location,
) *StatisticsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StatisticsUseCase{
		records: records,
		csv:     csv,
		pdf:     pdf,
		log:     log,
		loc:     loc,
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *StatisticsUseCase) WithClock(now func() time.Time) *StatisticsUseCase {
	uc.now = now
	return uc
}

func (uc *StatisticsUseCase) clock() time.Time {
	return uc.now().In(uc.loc)
}

// GetStatistics calcula la instantánea completa para los filtros dados.
func (uc *StatisticsUseCase) GetStatistics(ctx context.Context, req dto.StatisticsRequest) (*dto.StatisticsDTO, error) {
	snap, err := uc.snapshot(ctx, req)
	if err != nil {
		return nil, err
	}
	return toStatisticsDTO(snap), nil
}

// ComputeFromRecords ejecuta el motor sobre registros enviados por el llamador, sin tocar la DB.
func (uc *StatisticsUseCase) ComputeFromRecords(req dto.ComputeRequest) (*dto.StatisticsDTO, error) {
	filter, err := ParseFilter(req.Filter)
	if err != nil {
		return nil, err
	}
	in := recordsToInput(req, uc.loc)
	in.Filter = filter

	snap := engine.Compute(in, uc.clock())
	uc.logSnapshot(len(in.Orders), snap)
	return toStatisticsDTO(snap), nil
}

// ExportCSV exporta los pedidos del período actual con los filtros aplicados.
// Nombre del archivo: statistics_<YYYY-MM-DD>.csv.
func (uc *StatisticsUseCase) ExportCSV(ctx context.Context, req dto.StatisticsRequest) (*dto.ExportFile, error) {
	snap, err := uc.snapshot(ctx, req)
	if err != nil {
		return nil, err
	}
	content, err := uc.csv.ExportOrders(snap.Current)
	if err != nil {
		return nil, fmt.Errorf("statistics: exportar CSV: %w", err)
	}
	return &dto.ExportFile{
		Name:        exportName(uc.clock(), "csv"),
		ContentType: "text/csv; charset=utf-8",
		Content:     content,
	}, nil
}

// ExportPDF genera el reporte PDF de la instantánea.
func (uc *StatisticsUseCase) ExportPDF(ctx context.Context, req dto.StatisticsRequest) (*dto.ExportFile, error) {
	report, err := uc.GetStatistics(ctx, req)
	if err != nil {
		return nil, err
	}
	content, err := uc.pdf.GenerateStatisticsPDF(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("statistics: generar PDF: %w", err)
	}
	return &dto.ExportFile{
		Name:        exportName(uc.clock(), "pdf"),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func (uc *StatisticsUseCase) snapshot(ctx context.Context, req dto.StatisticsRequest) (engine.Snapshot, error) {
	filter, err := ParseFilter(req)
	if err != nil {
		return engine.Snapshot{}, err
	}
	in, err := uc.loadRecords(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("statistics: carga de registros")
		return engine.Snapshot{}, err
	}
	in.Filter = filter

	snap := engine.Compute(in, uc.clock())
	uc.logSnapshot(len(in.Orders), snap)
	return snap, nil
}

// loadRecords lanza las 4 lecturas en paralelo; cada goroutine escribe un campo distinto.
func (uc *StatisticsUseCase) loadRecords(ctx context.Context) (engine.Input, error) {
	var in engine.Input
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := uc.records.ListOrders(gctx)
		if err != nil {
			return fmt.Errorf("pedidos: %w", err)
		}
		in.Orders = orders
		return nil
	})
	g.Go(func() error {
		products, err := uc.records.ListProducts(gctx)
		if err != nil {
			return fmt.Errorf("productos: %w", err)
		}
		in.Products = products
		return nil
	})
	g.Go(func() error {
		clients, err := uc.records.ListClients(gctx)
		if err != nil {
			return fmt.Errorf("clientes: %w", err)
		}
		in.Clients = clients
		return nil
	})
	g.Go(func() error {
		categories, err := uc.records.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("categorías: %w", err)
		}
		in.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return engine.Input{}, fmt.Errorf("statistics: cargar registros: %w", err)
	}
	return in, nil
}

func (uc *StatisticsUseCase) logSnapshot(total int, snap engine.Snapshot) {
	uc.log.Debug().
		Str("time_range", string(snap.Period.Key)).
		Str("order_type", snap.Filter.OrderType).
		Str("category", snap.Filter.Category).
		Int("orders_total", total).
		Int("orders_filtered", snap.KPIs.OrderCount).
		Int("insights", len(snap.Insights)).
		Msg("estadísticas calculadas")
}

// ParseFilter valida y normaliza los parámetros del panel.
// Vacíos toman su valor por defecto (30days, all, all). Fechas custom ilegibles
// no son error: el motor cae a la ventana por defecto.
func ParseFilter(req dto.StatisticsRequest) (engine.Filter, error) {
	f := engine.Filter{
		TimeRange:  engine.TimeRangeKey(strings.TrimSpace(req.TimeRange)),
		CustomFrom: strings.TrimSpace(req.From),
		CustomTo:   strings.TrimSpace(req.To),
		OrderType:  strings.TrimSpace(req.OrderType),
		Category:   strings.TrimSpace(req.Category),
	}
	if f.TimeRange == "" {
		f.TimeRange = engine.Range30Days
	}
	if !f.TimeRange.IsValid() {
		return engine.Filter{}, fmt.Errorf("%w: time_range %q no soportado", domain.ErrInvalidInput, req.TimeRange)
	}
	switch f.OrderType {
	case "":
		f.OrderType = engine.FilterAll
	case engine.FilterAll, "retail", "wholesale":
	default:
		return engine.Filter{}, fmt.Errorf("%w: order_type %q no soportado", domain.ErrInvalidInput, req.OrderType)
	}
	if f.Category == "" {
		f.Category = engine.FilterAll
	}
	if !engine.ValidCategoryFilter(f.Category) {
		return engine.Filter{}, fmt.Errorf("%w: category debe ser 'all' o un id numérico", domain.ErrInvalidInput)
	}
	return f, nil
}

func exportName(now time.Time, ext string) string {
	return "statistics_" + now.Format(fileDateLayout) + "." + ext
}
