package timeline

import (
	"fmt"
	"time"
)

// Granularity — шаг оси времени на диаграмме загрузки постов.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
)

// Ширина слота в пикселях для каждого шага. Геометрия раскладки
// считается от этих значений, поэтому они живут здесь, а не во фронте.
const (
	widthDay     = 50
	widthWeek    = 100
	widthMonth   = 150
	widthQuarter = 200
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityQuarter:
		return Granularity(s), nil
	case "":
		return GranularityDay, nil
	}
	return "", fmt.Errorf("неизвестный шаг оси: %q", s)
}

// SlotWidth возвращает ширину одного слота для данного шага.
func (g Granularity) SlotWidth() int {
	switch g {
	case GranularityWeek:
		return widthWeek
	case GranularityMonth:
		return widthMonth
	case GranularityQuarter:
		return widthQuarter
	}
	return widthDay
}

// TimeSlot — одна колонка оси. Не сохраняется, строится заново под каждый запрос.
type TimeSlot struct {
	Date      time.Time `json:"date"`
	Label     string    `json:"label"`
	SubLabel  string    `json:"sub_label"`
	Width     int       `json:"width"`
	IsWeekend bool      `json:"is_weekend"`
}

var ruWeekdays = [7]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

var ruMonths = [13]string{"", "Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"}

// ComputeTimeAxis строит упорядоченную ось слотов для диапазона [start, end].
// Пустой или перевёрнутый диапазон даёт пустую ось, это не ошибка.
// Диапазон может уходить на годы вперёд — верхней границы, кроме end, нет.
// Первый и последний слоты могут накрывать неполный период, они всё равно входят.
func ComputeTimeAxis(start, end time.Time, g Granularity) []TimeSlot {
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) {
		return nil
	}

	width := g.SlotWidth()

	var slots []TimeSlot
	for cur := start; !cur.After(end); cur = NextBoundary(cur, g) {
		slot := TimeSlot{
			Date:  cur,
			Width: width,
		}

		switch g {
		case GranularityWeek:
			span := cur.AddDate(0, 0, 6)
			slot.Label = cur.Format("02.01")
			slot.SubLabel = fmt.Sprintf("%s–%s", cur.Format("02.01"), span.Format("02.01"))
		case GranularityMonth:
			slot.Label = ruMonths[int(cur.Month())]
			slot.SubLabel = fmt.Sprintf("%d", cur.Year())
		case GranularityQuarter:
			slot.Label = fmt.Sprintf("%d кв.", (int(cur.Month())-1)/3+1)
			slot.SubLabel = fmt.Sprintf("%d", cur.Year())
		default:
			slot.Label = cur.Format("02.01")
			slot.SubLabel = ruWeekdays[int(cur.Weekday())]
			slot.IsWeekend = cur.Weekday() == time.Saturday || cur.Weekday() == time.Sunday
		}

		slots = append(slots, slot)
	}

	return slots
}

// NextBoundary возвращает начало следующего слота — верхнюю границу текущего.
// Для месяца и квартала это календарная граница, поэтому первый неполный
// период закрывается сам.
func NextBoundary(cur time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return cur.AddDate(0, 0, 7)
	case GranularityMonth:
		return time.Date(cur.Year(), cur.Month()+1, 1, 0, 0, 0, 0, cur.Location())
	case GranularityQuarter:
		qStart := (int(cur.Month())-1)/3*3 + 1
		return time.Date(cur.Year(), time.Month(qStart+3), 1, 0, 0, 0, 0, cur.Location())
	}
	return cur.AddDate(0, 0, 1)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
