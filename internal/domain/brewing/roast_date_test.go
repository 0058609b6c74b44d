package brewing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Brewlog-api/internal/domain/brewing"
)

var now = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

func daysFromNow(n int) time.Time { return now.AddDate(0, 0, n) }

func TestClosestRoastDate_Vacio(t *testing.T) {
	_, ok := brewing.ClosestRoastDateAt(nil, now)
	assert.False(t, ok)

	_, ok = brewing.ClosestRoastDate([]time.Time{})
	assert.False(t, ok)
}

// Escenario: Ethiopia Yirgacheffe con [hace 10 días, hace 2 días, dentro de 20 días].
func TestClosestRoastDate_EscenarioYirgacheffe(t *testing.T) {
	dates := []time.Time{daysFromNow(-10), daysFromNow(-2), daysFromNow(20)}

	got, ok := brewing.ClosestRoastDateAt(dates, now)
	require.True(t, ok)
	assert.Equal(t, daysFromNow(-2), got)

	dates = append(dates, now)
	got, ok = brewing.ClosestRoastDateAt(dates, now)
	require.True(t, ok)
	assert.Equal(t, now, got, "al agregar hoy debe pasar a ser la más cercana")
}

func TestClosestRoastDate_EmpateGanaLaPrimera(t *testing.T) {
	before, after := daysFromNow(-3), daysFromNow(3)

	got, ok := brewing.ClosestRoastDateAt([]time.Time{before, after}, now)
	require.True(t, ok)
	assert.Equal(t, before, got)

	got, ok = brewing.ClosestRoastDateAt([]time.Time{after, before}, now)
	require.True(t, ok)
	assert.Equal(t, after, got)
}

func TestClosestRoastDate_MiembroYMinimo(t *testing.T) {
	cases := [][]time.Time{
		{daysFromNow(5)},
		{daysFromNow(-1), daysFromNow(1), daysFromNow(-1)},
		{daysFromNow(-400), daysFromNow(90), daysFromNow(-30), daysFromNow(31)},
		{daysFromNow(7), daysFromNow(-7), daysFromNow(6), daysFromNow(-6)},
	}
	abs := func(d time.Duration) time.Duration {
		if d < 0 {
			return -d
		}
		return d
	}
	for _, dates := range cases {
		got, ok := brewing.ClosestRoastDateAt(dates, now)
		require.True(t, ok)
		assert.Contains(t, dates, got)
		for _, d := range dates {
			assert.GreaterOrEqual(t, abs(now.Sub(d)), abs(now.Sub(got)))
		}
	}
}

func TestClosestRoastDate_Idempotente(t *testing.T) {
	dates := []time.Time{daysFromNow(-4), daysFromNow(2), daysFromNow(-1)}
	first, _ := brewing.ClosestRoastDateAt(dates, now)
	second, _ := brewing.ClosestRoastDateAt(dates, now)
	assert.Equal(t, first, second)
}

func TestClosest_Registros(t *testing.T) {
	type roast struct {
		id   string
		date time.Time
	}
	roasts := []roast{{"a", daysFromNow(-15)}, {"b", daysFromNow(-1)}, {"c", daysFromNow(12)}}

	got, ok := brewing.Closest(roasts, func(r roast) time.Time { return r.date }, now)
	require.True(t, ok)
	assert.Equal(t, "b", got.id)
}
