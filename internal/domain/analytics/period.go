// Package analytics contiene el motor de agregación del panel de estadísticas:
// resolución de períodos, filtrado de pedidos, KPIs con variación contra el
// período anterior, serie diaria, distribuciones, rankings y alertas.
//
// Todo el paquete es puro: no guarda estado, no hace I/O y nunca devuelve
// errores. Ante datos incompletos prefiere un resultado en cero.
package analytics

import "time"

// TimeRangeKey selector del rango de tiempo del panel.
type TimeRangeKey string

const (
	RangeToday  TimeRangeKey = "today"
	Range7Days  TimeRangeKey = "7days"
	Range30Days TimeRangeKey = "30days"
	RangeCustom TimeRangeKey = "custom"
)

// IsValid indica si la clave pertenece al catálogo de rangos.
func (k TimeRangeKey) IsValid() bool {
	switch k {
	case RangeToday, Range7Days, Range30Days, RangeCustom:
		return true
	}
	return false
}

const (
	dateLayout = "2006-01-02"
	day        = 24 * time.Hour
)

// TimeRange ventana actual [Start, End] y ventana de comparación [PrevStart, PrevEnd].
// PrevEnd siempre coincide con Start: la comparación nunca se solapa con la actual.
type TimeRange struct {
	Key       TimeRangeKey
	Start     time.Time
	End       time.Time
	PrevStart time.Time
	PrevEnd   time.Time
}

// ResolvePeriod traduce el selector del panel en ventanas absolutas.
// "Local" es la zona horaria de now. from/to solo aplican a RangeCustom (YYYY-MM-DD).
// Claves desconocidas se resuelven como 30days.
func ResolvePeriod(key TimeRangeKey, from, to string, now time.Time) TimeRange {
	switch key {
	case RangeToday:
		start := startOfDay(now)
		return TimeRange{
			Key:       key,
			Start:     start,
			End:       now,
			PrevStart: start.AddDate(0, 0, -1),
			PrevEnd:   start,
		}
	case Range7Days:
		return lastNDays(key, 7, now)
	case RangeCustom:
		return customRange(from, to, now)
	default:
		return lastNDays(Range30Days, 30, now)
	}
}

func lastNDays(key TimeRangeKey, n int, now time.Time) TimeRange {
	start := now.AddDate(0, 0, -n)
	return TimeRange{
		Key:       key,
		Start:     start,
		End:       now,
		PrevStart: start.AddDate(0, 0, -n),
		PrevEnd:   start,
	}
}

// customRange: fin inclusivo hasta el último instante del día "to".
// Fechas ilegibles caen a sus valores por defecto; un rango invertido cae
// completo a la ventana por defecto (último mes hasta ahora).
func customRange(from, to string, now time.Time) TimeRange {
	defStart, defEnd := now.AddDate(0, -1, 0), now

	start, ok := parseDay(from, now.Location())
	if !ok {
		start = defStart
	}
	end, ok := parseDay(to, now.Location())
	if ok {
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	} else {
		end = defEnd
	}
	if start.After(end) {
		start, end = defStart, defEnd
	}

	span := end.Sub(start)
	days := int(span / day)
	if span%day != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return TimeRange{
		Key:       RangeCustom,
		Start:     start,
		End:       end,
		PrevStart: start.AddDate(0, 0, -days),
		PrevEnd:   start,
	}
}

func parseDay(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
