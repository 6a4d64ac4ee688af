package validate

import (
	"errors"
	"time"

	"bay-golang/internal/service/capacity"
	"bay-golang/internal/storage"
)

var (
	// ErrCapacityViolation — целевой пост не принимает работы (нет штата или выключен).
	ErrCapacityViolation = errors.New("пост не принимает работы")
	// ErrTrackConflict — на выбранной дорожке уже есть пересекающееся расписание.
	ErrTrackConflict = errors.New("дорожка занята пересекающимся расписанием")
	// ErrInvalidRange — дата окончания раньше даты начала.
	ErrInvalidRange = errors.New("некорректный диапазон дат")
	// ErrUnknownBay — целевой пост отсутствует в снимке данных.
	ErrUnknownBay = errors.New("пост не найден")
)

// Placement — предлагаемое размещение расписания.
// ScheduleID == 0 означает новое расписание из пула проектов.
type Placement struct {
	ScheduleID int64
	BayID      int64
	Track      int
	StartDate  time.Time
	EndDate    time.Time
}

// CheckPlacement проверяет размещение против текущего подтверждённого состояния.
// Чистая функция от (размещение, посты, расписания) — без скрытого состояния.
//
// Раскладка по дорожкам на диаграмме совещательная, но дорожка, явно выбранная
// пользователем при сбросе, авторитетна и проверяется на пересечения заново.
func CheckPlacement(p Placement, bays []storage.Bay, schedules []storage.Schedule) error {
	if p.EndDate.Before(p.StartDate) {
		return ErrInvalidRange
	}

	var bay *storage.Bay
	for i := range bays {
		if bays[i].ID == p.BayID {
			bay = &bays[i]
			break
		}
	}
	if bay == nil {
		return ErrUnknownBay
	}

	if capacity.WeeklyHours(*bay) == 0 || !bay.IsActive {
		return ErrCapacityViolation
	}

	for _, s := range schedules {
		if s.ID == p.ScheduleID {
			// собственное старое размещение не конфликт
			continue
		}
		if s.BayID != p.BayID || s.Track != p.Track {
			continue
		}
		if s.Overlaps(p.StartDate, p.EndDate) {
			return ErrTrackConflict
		}
	}

	return nil
}
