package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ── Tipos tolerantes ──────────────────────────────────────────────────────────
// El panel envía ids y montos a veces como número y a veces como texto; estos
// tipos aceptan ambas formas para que una diferencia de tipo no descarte filas.

// FlexibleInt entero (ids, cantidades) que acepta 7, "7", 7.0 o null.
type FlexibleInt struct {
	Value int64
	Valid bool
}

// UnmarshalJSON acepta número, texto numérico o null. Un valor no entero queda como inválido.
func (f *FlexibleInt) UnmarshalJSON(b []byte) error {
	*f = FlexibleInt{}
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == "" {
		return nil
	}
	raw = strings.TrimSpace(strings.Trim(raw, `"`))
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		f.Value, f.Valid = n, true
		return nil
	}
	// 4.0 o "2.0": números enteros escritos como flotantes.
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() {
		return nil
	}
	f.Value, f.Valid = d.IntPart(), true
	return nil
}

// MarshalJSON serializa como número o null.
func (f FlexibleInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// Ptr devuelve nil si el valor no es válido.
func (f FlexibleInt) Ptr() *int64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// FlexibleAmount monto que acepta número, texto o null; lo no numérico vale 0.
type FlexibleAmount struct {
	decimal.Decimal
}

// UnmarshalJSON nunca falla: cualquier valor ilegible se normaliza a cero.
func (a *FlexibleAmount) UnmarshalJSON(b []byte) error {
	a.Decimal = decimal.Zero
	raw := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	a.Decimal = d
	return nil
}

// FlexibleTime fecha en texto; se interpreta al mapear, en la zona horaria del panel.
// Acepta RFC3339, "YYYY-MM-DDTHH:MM:SS", "YYYY-MM-DD HH:MM:SS" y "YYYY-MM-DD".
type FlexibleTime struct {
	Raw string
}

var flexibleTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON nunca falla: null o valores que no son texto quedan como fecha ausente.
func (f *FlexibleTime) UnmarshalJSON(b []byte) error {
	*f = FlexibleTime{}
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	f.Raw = strings.TrimSpace(s)
	return nil
}

// In devuelve la fecha en loc, o nil si está ausente o es ilegible.
// Las fechas sin zona horaria se interpretan en loc.
func (f FlexibleTime) In(loc *time.Location) *time.Time {
	if f.Raw == "" {
		return nil
	}
	for _, layout := range flexibleTimeLayouts {
		if t, err := time.ParseInLocation(layout, f.Raw, loc); err == nil {
			t = t.In(loc)
			return &t
		}
	}
	return nil
}

// ── Registros de entrada ──────────────────────────────────────────────────────

// OrderRecord pedido tal como lo envía el panel.
type OrderRecord struct {
	ID          FlexibleInt    `json:"id"`
	CreatedAt   FlexibleTime   `json:"created_at"`
	TotalAmount FlexibleAmount `json:"total_amount"`
	Status      string         `json:"status"`
	IsPaid      bool           `json:"is_paid"`
	OrderType   string         `json:"order_type"`
	Client      FlexibleInt    `json:"client"`
	ClientName  string         `json:"client_name"`
	Product     FlexibleInt    `json:"product"`
	ProductName string         `json:"product_name"`
	Quantity    FlexibleInt    `json:"quantity"`
	CategoryID  FlexibleInt    `json:"category_id"`
}

// ProductRecord producto del catálogo.
type ProductRecord struct {
	ID       FlexibleInt `json:"id"`
	Name     string      `json:"name"`
	Category FlexibleInt `json:"category"`
}

// ClientRecord cliente.
type ClientRecord struct {
	ID        FlexibleInt  `json:"id"`
	Name      string       `json:"name"`
	CreatedAt FlexibleTime `json:"created_at"`
}

// CategoryRecord categoría.
type CategoryRecord struct {
	ID   FlexibleInt `json:"id"`
	Name string      `json:"name"`
}

// ComputeRequest cuerpo de POST /api/statistics/compute: registros ya cargados + filtros.
type ComputeRequest struct {
	Orders     []OrderRecord     `json:"orders"`
	Products   []ProductRecord   `json:"products"`
	Clients    []ClientRecord    `json:"clients"`
	Categories []CategoryRecord  `json:"categories"`
	Filter     StatisticsRequest `json:"filter"`
}
