package capacity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bay-golang/internal/storage"
)

func newBay(assembly, electrical int, hoursPerWeek float64) storage.Bay {
	return storage.Bay{
		ID:              1,
		Name:            "Пост 1",
		IsActive:        true,
		AssemblyStaff:   assembly,
		ElectricalStaff: electrical,
		HoursPerWeek:    hoursPerWeek,
	}
}

// Тест: 2 сборщика + 1 электрик по 40 часов → 120 ч/нед, 24 ч/день
func TestWeeklyAndDailyHours(t *testing.T) {
	bay := newBay(2, 1, 40)

	assert.Equal(t, 120.0, WeeklyHours(bay))
	assert.Equal(t, 24.0, DailyHours(bay))
}

// Тест: пост без штата — дневная мощность не падает ниже 1
func TestDailyHours_ZeroStaffFloor(t *testing.T) {
	bay := newBay(0, 0, 40)

	assert.Equal(t, 0.0, WeeklyHours(bay))
	assert.Equal(t, 1.0, DailyHours(bay))
}

// Тест: 96 часов проекта на посту с 24 ч/день → 4 календарных дня
func TestEstimateEndDate(t *testing.T) {
	bay := newBay(2, 1, 40)
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	end := EstimateEndDate(bay, 96, start)

	assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), end)
}

// Тест: минимум один день даже для крошечного объёма работ
func TestDaysNeeded_MinimumOneDay(t *testing.T) {
	bay := newBay(2, 1, 40)

	assert.Equal(t, 1, DaysNeeded(bay, 0.5))
	assert.Equal(t, 1, DaysNeeded(bay, 0))
}

// Тест: выходные не пропускаются — дни строго календарные
func TestEstimateEndDate_CalendarDays(t *testing.T) {
	bay := newBay(1, 0, 40) // 8 ч/день
	// Пятница; 24 часа работ = 3 дня, окончание в понедельник
	start := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	end := EstimateEndDate(bay, 24, start)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), end)
}

// Тест: монотонность — больше мощности, не позже окончание
func TestEstimateEndDate_MonotoneInCapacity(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	const hours = 200.0

	prev := EstimateEndDate(newBay(1, 0, 40), hours, start)
	for staff := 2; staff <= 10; staff++ {
		cur := EstimateEndDate(newBay(staff, 0, 40), hours, start)
		assert.False(t, cur.After(prev), "staff=%d: end date grew with capacity", staff)
		prev = cur
	}
}
