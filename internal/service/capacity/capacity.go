package capacity

import (
	"math"
	"time"

	"bay-golang/internal/storage"
)

// WorkDaysPerWeek — недельная мощность раскладывается на пятидневку.
const WorkDaysPerWeek = 5.0

// WeeklyHours возвращает недельную мощность поста в нормо-часах.
func WeeklyHours(bay storage.Bay) float64 {
	return float64(bay.TotalStaff()) * bay.HoursPerWeek
}

// DailyHours возвращает дневную мощность поста.
// Пол в 1 час защищает расчёт длительности от деления в ноль для
// поста без штата; такой пост отсекается валидатором раньше.
func DailyHours(bay storage.Bay) float64 {
	daily := WeeklyHours(bay) / WorkDaysPerWeek
	if daily < 1 {
		return 1
	}
	return daily
}

// DaysNeeded считает, сколько календарных дней займут totalHours на посту.
func DaysNeeded(bay storage.Bay, totalHours float64) int {
	days := int(math.Ceil(totalHours / DailyHours(bay)))
	if days < 1 {
		days = 1
	}
	return days
}

// EstimateEndDate считает дату окончания работ от startDate.
// Дни календарные, выходные не пропускаются.
func EstimateEndDate(bay storage.Bay, totalHours float64, startDate time.Time) time.Time {
	return startDate.AddDate(0, 0, DaysNeeded(bay, totalHours))
}
