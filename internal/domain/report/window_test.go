package report_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bogota = time.FixedZone("COT", -5*3600)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, bogota)
}

func TestDay_ExcluyeMedianocheSiguiente(t *testing.T) {
	w := report.Day(at(2024, time.March, 15, 13, 45))

	assert.Equal(t, at(2024, time.March, 15, 0, 0), w.Start)
	assert.Equal(t, at(2024, time.March, 16, 0, 0), w.End)
	assert.True(t, w.Contains(at(2024, time.March, 15, 0, 0)))
	assert.True(t, w.Contains(w.EndInclusive))
	assert.False(t, w.Contains(at(2024, time.March, 16, 0, 0)), "D+1 00:00 no pertenece al día D")
}

func TestMonth(t *testing.T) {
	w, err := report.Month(2024, time.February, bogota)
	require.NoError(t, err)
	assert.Equal(t, at(2024, time.February, 1, 0, 0), w.Start)
	assert.Equal(t, at(2024, time.March, 1, 0, 0), w.End)
	assert.True(t, w.Contains(at(2024, time.February, 29, 23, 59)), "año bisiesto")

	w, err = report.Month(2023, time.December, bogota)
	require.NoError(t, err)
	assert.Equal(t, at(2024, time.January, 1, 0, 0), w.End, "diciembre cierra en enero del año siguiente")

	_, err = report.Month(2024, 13, bogota)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = report.Month(0, time.May, bogota)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestForKind_Daily(t *testing.T) {
	now := at(2024, time.March, 13, 10, 0)
	for _, kind := range []string{"", report.KindDaily} {
		w, err := report.ForKind(kind, now)
		require.NoError(t, err)
		assert.Equal(t, at(2024, time.March, 13, 0, 0), w.Start)
		assert.Equal(t, time.Date(2024, time.March, 13, 23, 59, 59, int(999*time.Millisecond), bogota), w.EndInclusive)
		assert.Equal(t, at(2024, time.March, 14, 0, 0), w.End)
	}
}

func TestForKind_WeeklyEmpiezaEnLunes(t *testing.T) {
	// Miércoles 13 de marzo de 2024 → lunes 11
	w, err := report.ForKind(report.KindWeekly, at(2024, time.March, 13, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, at(2024, time.March, 11, 0, 0), w.Start)
	assert.Equal(t, 13, w.EndInclusive.Day())

	// Lunes: la semana empieza hoy
	w, err = report.ForKind(report.KindWeekly, at(2024, time.March, 11, 8, 0))
	require.NoError(t, err)
	assert.Equal(t, at(2024, time.March, 11, 0, 0), w.Start)
}

func TestForKind_WeeklyDomingoRetrocedeSeisDias(t *testing.T) {
	w, err := report.ForKind(report.KindWeekly, at(2024, time.March, 17, 20, 0))
	require.NoError(t, err)
	assert.Equal(t, time.Monday, w.Start.Weekday())
	assert.Equal(t, at(2024, time.March, 11, 0, 0), w.Start)
	assert.Equal(t, 17, w.EndInclusive.Day())
}

func TestForKind_Monthly(t *testing.T) {
	w, err := report.ForKind(report.KindMonthly, at(2024, time.April, 10, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, at(2024, time.April, 1, 0, 0), w.Start)
	assert.Equal(t, 30, w.EndInclusive.Day())
	assert.Equal(t, at(2024, time.May, 1, 0, 0), w.End)
}

func TestForKind_Desconocido(t *testing.T) {
	_, err := report.ForKind("yearly", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
