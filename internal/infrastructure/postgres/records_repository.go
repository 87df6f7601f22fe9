package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
	"github.com/jhoicas/cargo-analytics/internal/domain/repository"
)

var _ repository.RecordsRepository = (*RecordsRepo)(nil)

// RecordsRepo lecturas completas de pedidos, productos, clientes y categorías.
// No filtra por período: esa responsabilidad es del motor de estadísticas.
type RecordsRepo struct {
	q Querier
}

// NewRecordsRepository construye el adaptador. Acepta pool o tx.
func NewRecordsRepository(q Querier) *RecordsRepo {
	return &RecordsRepo{q: q}
}

// ListOrders devuelve todos los pedidos con el nombre del cliente y la categoría
// del producto resueltos por JOIN. total_amount NULL se lee como 0.
func (r *RecordsRepo) ListOrders(ctx context.Context) ([]entity.Order, error) {
	const query = `
	SELECT
	    o.id,
	    o.created_at,
	    COALESCE(o.total_amount, 0)  AS total_amount,
	    COALESCE(o.status, '')       AS status,
	    COALESCE(o.is_paid, FALSE)   AS is_paid,
	    COALESCE(o.order_type, '')   AS order_type,
	    COALESCE(o.client_id, 0)     AS client_id,
	    COALESCE(c.name, '')         AS client_name,
	    o.product_id,
	    COALESCE(o.product_name, '') AS product_name,
	    COALESCE(o.quantity, 0)      AS quantity,
	    p.category_id
	FROM orders o
	LEFT JOIN clients  c ON c.id = o.client_id
	LEFT JOIN products p ON p.id = o.product_id
	ORDER BY o.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("records.ListOrders: %w", err)
	}
	defer rows.Close()

	orders := make([]entity.Order, 0)
	for rows.Next() {
		var (
			o         entity.Order
			status    string
			orderType string
		)
		if err := rows.Scan(
			&o.ID,
			&o.CreatedAt,
			&o.TotalAmount,
			&status,
			&o.IsPaid,
			&orderType,
			&o.ClientID,
			&o.ClientName,
			&o.ProductID,
			&o.ProductName,
			&o.Quantity,
			&o.CategoryID,
		); err != nil {
			return nil, fmt.Errorf("records.ListOrders scan: %w", err)
		}
		o.Status = entity.OrderStatus(status)
		o.OrderType = entity.OrderType(orderType)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("records.ListOrders rows: %w", err)
	}
	return orders, nil
}

// ListProducts catálogo completo.
func (r *RecordsRepo) ListProducts(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT id, COALESCE(name, ''), category_id FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("records.ListProducts: %w", err)
	}
	defer rows.Close()

	products := make([]entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID); err != nil {
			return nil, fmt.Errorf("records.ListProducts scan: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("records.ListProducts rows: %w", err)
	}
	return products, nil
}

// ListClients todos los clientes (denominador de la conversión).
func (r *RecordsRepo) ListClients(ctx context.Context) ([]entity.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT id, COALESCE(name, ''), created_at FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("records.ListClients: %w", err)
	}
	defer rows.Close()

	clients := make([]entity.Client, 0)
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("records.ListClients scan: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("records.ListClients rows: %w", err)
	}
	return clients, nil
}

// ListCategories todas las categorías.
func (r *RecordsRepo) ListCategories(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, COALESCE(name, '') FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("records.ListCategories: %w", err)
	}
	defer rows.Close()

	categories := make([]entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("records.ListCategories scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("records.ListCategories rows: %w", err)
	}
	return categories, nil
}
