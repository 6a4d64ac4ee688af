package storage

import "time"

// Schedule — привязка работ одного проекта к посту на интервал дат.
// BayID == 0 означает пул нераспределённых работ (пост удалён или ещё не назначен).
type Schedule struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"project_id"`
	BayID      int64     `json:"bay_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalHours float64   `json:"total_hours"`
	Track      int       `json:"track"`
}

// Unassigned reports whether the schedule sits in the unassigned pool.
func (s Schedule) Unassigned() bool {
	return s.BayID == 0
}

// Overlaps reports whether two date ranges intersect, [start, end) semantics.
func (s Schedule) Overlaps(start, end time.Time) bool {
	return s.StartDate.Before(end) && start.Before(s.EndDate)
}
