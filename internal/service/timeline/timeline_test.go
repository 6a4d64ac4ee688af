package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Тест: дневная ось — по слоту на каждый день, с флагом выходных
func TestComputeTimeAxis_Day(t *testing.T) {
	// 3 марта 2025 — понедельник
	slots := ComputeTimeAxis(date(2025, 3, 3), date(2025, 3, 9), GranularityDay)

	require.Len(t, slots, 7)
	assert.Equal(t, date(2025, 3, 3), slots[0].Date)
	assert.Equal(t, "03.03", slots[0].Label)
	assert.Equal(t, "Пн", slots[0].SubLabel)
	assert.Equal(t, 50, slots[0].Width)

	assert.False(t, slots[4].IsWeekend) // пятница
	assert.True(t, slots[5].IsWeekend)  // суббота
	assert.True(t, slots[6].IsWeekend)  // воскресенье
}

// Тест: перевёрнутый диапазон — пустая ось, не ошибка
func TestComputeTimeAxis_EmptyRange(t *testing.T) {
	slots := ComputeTimeAxis(date(2025, 3, 10), date(2025, 3, 3), GranularityDay)
	assert.Empty(t, slots)
}

// Тест: диапазон в один день — один слот
func TestComputeTimeAxis_SingleDay(t *testing.T) {
	slots := ComputeTimeAxis(date(2025, 3, 3), date(2025, 3, 3), GranularityDay)
	require.Len(t, slots, 1)
	assert.Equal(t, date(2025, 3, 3), slots[0].Date)
}

// Тест: недельная ось шагает по 7 дней от начала диапазона
func TestComputeTimeAxis_Week(t *testing.T) {
	slots := ComputeTimeAxis(date(2025, 3, 3), date(2025, 3, 31), GranularityWeek)

	require.Len(t, slots, 5)
	assert.Equal(t, date(2025, 3, 3), slots[0].Date)
	assert.Equal(t, date(2025, 3, 10), slots[1].Date)
	assert.Equal(t, "03.03–09.03", slots[0].SubLabel)
	assert.Equal(t, 100, slots[0].Width)
	// Выходные помечаются только на дневном шаге
	for _, s := range slots {
		assert.False(t, s.IsWeekend)
	}
}

// Тест: месячная ось — первый неполный месяц входит, дальше календарные границы
func TestComputeTimeAxis_MonthPartialFirst(t *testing.T) {
	slots := ComputeTimeAxis(date(2025, 1, 15), date(2025, 4, 10), GranularityMonth)

	require.Len(t, slots, 4)
	assert.Equal(t, date(2025, 1, 15), slots[0].Date)
	assert.Equal(t, date(2025, 2, 1), slots[1].Date)
	assert.Equal(t, date(2025, 3, 1), slots[2].Date)
	assert.Equal(t, date(2025, 4, 1), slots[3].Date)
	assert.Equal(t, "Январь", slots[0].Label)
	assert.Equal(t, "2025", slots[0].SubLabel)
	assert.Equal(t, 150, slots[0].Width)
}

// Тест: квартальная ось выравнивается на календарные кварталы
func TestComputeTimeAxis_Quarter(t *testing.T) {
	slots := ComputeTimeAxis(date(2025, 2, 10), date(2025, 11, 1), GranularityQuarter)

	require.Len(t, slots, 4)
	assert.Equal(t, date(2025, 2, 10), slots[0].Date)
	assert.Equal(t, date(2025, 4, 1), slots[1].Date)
	assert.Equal(t, date(2025, 7, 1), slots[2].Date)
	assert.Equal(t, date(2025, 10, 1), slots[3].Date)
	assert.Equal(t, "1 кв.", slots[0].Label)
	assert.Equal(t, "4 кв.", slots[3].Label)
	assert.Equal(t, 200, slots[0].Width)
}

// Тест: горизонт на несколько лет вперёд не обрезается
func TestComputeTimeAxis_MultiYearHorizon(t *testing.T) {
	slots := ComputeTimeAxis(date(2025, 1, 1), date(2028, 12, 31), GranularityMonth)
	assert.Len(t, slots, 48)
}

// Тест: покрытие — первый слот не позже начала диапазона, разрывов нет
func TestComputeTimeAxis_Coverage(t *testing.T) {
	start := date(2025, 2, 7)
	end := date(2026, 3, 19)

	for _, g := range []Granularity{GranularityDay, GranularityWeek, GranularityMonth, GranularityQuarter} {
		slots := ComputeTimeAxis(start, end, g)
		require.NotEmpty(t, slots, "granularity %s", g)

		assert.False(t, slots[0].Date.After(start), "granularity %s: first slot after range start", g)

		for i := 1; i < len(slots); i++ {
			// Начало каждого слота — граница предыдущего: промежутков нет
			assert.Equal(t, NextBoundary(slots[i-1].Date, g), slots[i].Date, "granularity %s: gap at slot %d", g, i)
		}

		last := slots[len(slots)-1]
		assert.False(t, last.Date.After(end), "granularity %s: slot past range end", g)
		assert.True(t, NextBoundary(last.Date, g).After(end), "granularity %s: range end not covered", g)
	}
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("week")
	assert.NoError(t, err)
	assert.Equal(t, GranularityWeek, g)

	// Пустое значение — дневной шаг по умолчанию
	g, err = ParseGranularity("")
	assert.NoError(t, err)
	assert.Equal(t, GranularityDay, g)

	_, err = ParseGranularity("hour")
	assert.Error(t, err)
}
