// Package report define las ventanas de tiempo usadas para agregar movimientos.
package report

import (
	"time"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
)

// Tipos de ventana para el resumen agregado.
const (
	KindDaily   = "daily"
	KindWeekly  = "weekly"
	KindMonthly = "monthly"
)

// Window rango de tiempo [Start, End). Las ventanas de resumen se expresan con fin inclusivo
// (23:59:59.999), por eso EndInclusive guarda el valor que se muestra al cliente.
type Window struct {
	Start        time.Time
	End          time.Time // exclusivo
	EndInclusive time.Time
}

// Contains indica si t cae dentro de la ventana.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDayMillis 23:59:59.999 del día de t.
func endOfDayMillis(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// fromInclusive arma la ventana con fin inclusivo al milisegundo.
func fromInclusive(start, endIncl time.Time) Window {
	return Window{Start: start, End: endIncl.Add(time.Millisecond), EndInclusive: endIncl}
}

// Day ventana del día calendario de date: [date 00:00, date+1 00:00).
func Day(date time.Time) Window {
	start := startOfDay(date)
	end := start.AddDate(0, 0, 1)
	return Window{Start: start, End: end, EndInclusive: end.Add(-time.Millisecond)}
}

// Month ventana del mes: [día 1 00:00, día 1 del mes siguiente 00:00).
func Month(year int, month time.Month, loc *time.Location) (Window, error) {
	if month < time.January || month > time.December || year < 1 {
		return Window{}, domain.ErrInvalidInput
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)
	return Window{Start: start, End: end, EndInclusive: end.Add(-time.Millisecond)}, nil
}

// ForKind calcula la ventana de resumen relativa a now.
//   - daily: hoy 00:00:00.000 – 23:59:59.999
//   - weekly: lunes 00:00:00.000 – hoy 23:59:59.999 (domingo retrocede 6 días)
//   - monthly: día 1 00:00:00.000 – último día 23:59:59.999
//
// kind vacío equivale a daily.
func ForKind(kind string, now time.Time) (Window, error) {
	switch kind {
	case "", KindDaily:
		return fromInclusive(startOfDay(now), endOfDayMillis(now)), nil
	case KindWeekly:
		back := int(now.Weekday()) - 1
		if now.Weekday() == time.Sunday {
			back = 6
		}
		monday := startOfDay(now).AddDate(0, 0, -back)
		return fromInclusive(monday, endOfDayMillis(now)), nil
	case KindMonthly:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return fromInclusive(first, endOfDayMillis(last)), nil
	}
	return Window{}, domain.ErrInvalidInput
}
