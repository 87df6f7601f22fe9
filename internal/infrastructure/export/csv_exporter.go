// Package export serializa los pedidos del panel a formatos descargables.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/cargo-analytics/internal/domain/entity"
)

const csvDateLayout = "02.01.2006"

var csvHeader = []string{"Номер заказа", "Дата", "Клиент", "Товар", "Сумма", "Статус", "Оплата"}

// CSVExporter genera el CSV de pedidos: separador ';', UTF-8 con BOM para que
// Excel y LibreOffice detecten la codificación al abrirlo.
type CSVExporter struct {
	loc *time.Location
}

// NewCSVExporter loc es la zona en que se formatea la fecha del pedido (nil = UTC).
func NewCSVExporter(loc *time.Location) *CSVExporter {
	if loc == nil {
		loc = time.UTC
	}
	return &CSVExporter{loc: loc}
}

// ExportOrders escribe la cabecera fija y una fila por pedido, en el orden recibido.
// Un conjunto vacío produce solo la cabecera.
func (e *CSVExporter) ExportOrders(orders []entity.Order) ([]byte, error) {
	var buf bytes.Buffer
	enc := transform.NewWriter(&buf, unicode.UTF8BOM.NewEncoder())

	w := csv.NewWriter(enc)
	w.Comma = ';'
	w.UseCRLF = true

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export: cabecera CSV: %w", err)
	}
	for _, o := range orders {
		if err := w.Write(e.record(o)); err != nil {
			return nil, fmt.Errorf("export: pedido %d: %w", o.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: escribir CSV: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("export: codificar CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *CSVExporter) record(o entity.Order) []string {
	date := ""
	if o.CreatedAt != nil {
		date = o.CreatedAt.In(e.loc).Format(csvDateLayout)
	}
	client := o.ClientName
	if client == "" {
		client = "Клиент #" + strconv.FormatInt(o.ClientID, 10)
	}
	product := o.ProductName
	if product == "" && o.ProductID != nil {
		product = "Товар #" + strconv.FormatInt(*o.ProductID, 10)
	}
	paid := "Не оплачен"
	if o.IsPaid {
		paid = "Оплачен"
	}
	return []string{
		strconv.FormatInt(o.ID, 10),
		date,
		client,
		product,
		o.TotalAmount.StringFixed(2),
		o.Status.Label(),
		paid,
	}
}
