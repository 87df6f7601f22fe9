package entity

import "time"

// Client cliente registrado. Para analítica solo importa el tamaño de la lista
// (denominador de la conversión).
type Client struct {
	ID        int64
	Name      string
	CreatedAt *time.Time
}
