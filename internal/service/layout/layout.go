package layout

import (
	"sort"
	"time"

	"bay-golang/internal/service/timeline"
	"bay-golang/internal/storage"
)

// DefaultTrackBound — сколько дорожек рисуется внутри строки поста.
const DefaultTrackBound = 4

// ScheduleBar — проекция одного расписания на текущую ось времени.
// Чисто производная величина, пересчитывается при любом изменении данных.
type ScheduleBar struct {
	ScheduleID int64  `json:"schedule_id"`
	ProjectID  int64  `json:"project_id"`
	BayID      int64  `json:"bay_id"`
	Track      int    `json:"track"`
	Left       int    `json:"left"`
	Width      int    `json:"width"`
	Color      string `json:"color"`
}

var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// ColorFor выбирает цвет плашки по id проекта, детерминированно.
func ColorFor(projectID int64) string {
	if projectID < 0 {
		projectID = -projectID
	}
	return palette[projectID%int64(len(palette))]
}

// AssignTracks раскладывает расписания одного поста по дорожкам так, чтобы
// пересекающиеся по датам не попали на одну дорожку. Жадный проход по
// отсортированному списку, результат детерминирован для одинакового входа.
//
// Когда свободных дорожек нет, расписание кладётся на ту, что освобождается
// раньше всех — визуальное наложение допускается, молча ничего не выкидываем.
func AssignTracks(schedules []storage.Schedule, bound int) map[int64]int {
	if bound <= 0 {
		bound = DefaultTrackBound
	}

	sorted := make([]storage.Schedule, len(schedules))
	copy(sorted, schedules)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].StartDate.Equal(sorted[j].StartDate) {
			return sorted[i].StartDate.Before(sorted[j].StartDate)
		}
		return sorted[i].ID < sorted[j].ID
	})

	trackEnds := make([]time.Time, bound)
	tracks := make(map[int64]int, len(sorted))

	for _, s := range sorted {
		assigned := -1
		for t := 0; t < bound; t++ {
			if !trackEnds[t].After(s.StartDate) {
				assigned = t
				break
			}
		}
		if assigned == -1 {
			earliest := 0
			for t := 1; t < bound; t++ {
				if trackEnds[t].Before(trackEnds[earliest]) {
					earliest = t
				}
			}
			assigned = earliest
		}

		trackEnds[assigned] = s.EndDate
		tracks[s.ID] = assigned
	}

	return tracks
}

// ComputeScheduleBars строит плашки всех постов против готовой оси.
// Расписания из пула нераспределённых (BayID == 0) не рисуются.
func ComputeScheduleBars(bays []storage.Bay, schedules []storage.Schedule, axis []timeline.TimeSlot) []ScheduleBar {
	if len(axis) == 0 {
		return nil
	}

	byBay := make(map[int64][]storage.Schedule)
	for _, s := range schedules {
		if s.Unassigned() {
			continue
		}
		byBay[s.BayID] = append(byBay[s.BayID], s)
	}

	var bars []ScheduleBar
	for _, bay := range bays {
		list := byBay[bay.ID]
		if len(list) == 0 {
			continue
		}

		tracks := AssignTracks(list, DefaultTrackBound)

		sorted := make([]storage.Schedule, len(list))
		copy(sorted, list)
		sort.Slice(sorted, func(i, j int) bool {
			if !sorted[i].StartDate.Equal(sorted[j].StartDate) {
				return sorted[i].StartDate.Before(sorted[j].StartDate)
			}
			return sorted[i].ID < sorted[j].ID
		})

		for _, s := range sorted {
			left, width := project(s, axis)
			bars = append(bars, ScheduleBar{
				ScheduleID: s.ID,
				ProjectID:  s.ProjectID,
				BayID:      s.BayID,
				Track:      tracks[s.ID],
				Left:       left,
				Width:      width,
				Color:      ColorFor(s.ProjectID),
			})
		}
	}

	return bars
}

// project считает геометрию плашки: левый отступ и ширину в пикселях.
// Расписания, выходящие за ось, обрезаются по видимой области, а не выкидываются.
func project(s storage.Schedule, axis []timeline.TimeSlot) (left, width int) {
	slotWidth := axis[0].Width

	startIdx := len(axis)
	for i, slot := range axis {
		if !slot.Date.Before(s.StartDate) {
			startIdx = i
			break
		}
	}

	endIdx := len(axis)
	for i := startIdx; i < len(axis); i++ {
		if !axis[i].Date.Before(s.EndDate) {
			endIdx = i
			break
		}
	}

	left = startIdx * slotWidth
	width = (endIdx - startIdx) * slotWidth
	if width < 0 {
		width = 0
	}
	return left, width
}
