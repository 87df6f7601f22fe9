package analytics

import (
	"context"

	"github.com/jhoicas/cargo-analytics/internal/application/dto"
	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

// OrdersCSVExporter serializa los pedidos filtrados del período para descarga.
type OrdersCSVExporter interface {
	ExportOrders(orders []entity.Order) ([]byte, error)
}

// StatisticsPDFGenerator genera el reporte imprimible de la instantánea.
type StatisticsPDFGenerator interface {
	GenerateStatisticsPDF(ctx context.Context, report *dto.StatisticsDTO) ([]byte, error)
}
