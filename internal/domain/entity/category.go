package entity

// Category categoría de productos.
type Category struct {
	ID   int64
	Name string
}
