package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
)

func TestParseWindow(t *testing.T) {
	for _, valid := range []string{"day", "week", "month", "year"} {
		w, ok := ParseWindow(valid)
		assert.True(t, ok)
		assert.Equal(t, Window(valid), w)
	}

	_, ok := ParseWindow("decade")
	assert.False(t, ok)
}

func TestFilterByWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	today := svc(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), 50)
	thisWeek := svc(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), 50)
	thisMonth := svc(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 50)
	thisYear := svc(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), 50)
	lastYear := svc(time.Date(2023, 12, 31, 9, 0, 0, 0, time.UTC), 50)

	all := []models.Service{today, thisWeek, thisMonth, thisYear, lastYear}

	assert.Len(t, FilterByWindow(all, WindowDay, now), 1)
	assert.Len(t, FilterByWindow(all, WindowWeek, now), 2)
	assert.Len(t, FilterByWindow(all, WindowMonth, now), 3)
	assert.Len(t, FilterByWindow(all, WindowYear, now), 4)
}

func TestFilterByMonth(t *testing.T) {
	services := []models.Service{
		svc(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), 50),
		svc(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 60),
		svc(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC), 70),
		svc(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 80),
	}

	march := FilterByMonth(services, 2024, time.March, time.UTC)

	require.Len(t, march, 2)
	assert.Equal(t, 60.0, march[0].Price)
	assert.Equal(t, 70.0, march[1].Price)
}
