package storage

type Project struct {
	ID         int64   `json:"id"`
	Number     string  `json:"number"`
	Name       string  `json:"name"`
	TotalHours float64 `json:"total_hours"`
}
