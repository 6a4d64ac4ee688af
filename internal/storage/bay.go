package storage

// Bay — производственный пост (бухта) со своим штатом.
// Недельная мощность выводится из штата, в базе не хранится.
type Bay struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Number          int     `json:"number"`
	IsActive        bool    `json:"is_active"`
	AssemblyStaff   int     `json:"assembly_staff"`
	ElectricalStaff int     `json:"electrical_staff"`
	HoursPerWeek    float64 `json:"hours_per_week"`
}

// TotalStaff возвращает общий штат поста.
func (b Bay) TotalStaff() int {
	return b.AssemblyStaff + b.ElectricalStaff
}

type SaveBay struct {
	Name            string  `json:"name"`
	Number          int     `json:"number"`
	IsActive        bool    `json:"is_active"`
	AssemblyStaff   int     `json:"assembly_staff"`
	ElectricalStaff int     `json:"electrical_staff"`
	HoursPerWeek    float64 `json:"hours_per_week"`
}
