package repository

import (
	"context"

	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

// RecordsRepository fuente de solo lectura de los registros crudos que alimentan
// el motor de estadísticas. Cada llamada devuelve la lista completa; el filtrado
// por período y filtros del panel lo hace el motor.
type RecordsRepository interface {
	ListOrders(ctx context.Context) ([]entity.Order, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListClients(ctx context.Context) ([]entity.Client, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
}
