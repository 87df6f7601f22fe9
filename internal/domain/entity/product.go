package entity

// Product producto del catálogo; su nombre sirve de etiqueta de respaldo en el top de productos.
type Product struct {
	ID         int64
	Name       string
	CategoryID *int64
}
