package mysql

import (
	"context"
	"fmt"

	"bay-golang/internal/storage"
)

func (s *Storage) GetProjects(ctx context.Context) ([]storage.Project, error) {
	const op = "storage.mysql.GetProjects"

	query := `SELECT id, number, name, total_hours FROM projects ORDER BY number ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения проектов: %w", op, err)
	}
	defer rows.Close()

	var projects []storage.Project
	for rows.Next() {
		var p storage.Project
		if err := rows.Scan(&p.ID, &p.Number, &p.Name, &p.TotalHours); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки проекта: %w", op, err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (s *Storage) GetProject(ctx context.Context, id int64) (*storage.Project, error) {
	const op = "storage.mysql.GetProject"

	query := `SELECT id, number, name, total_hours FROM projects WHERE id = ?`

	var p storage.Project
	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Number, &p.Name, &p.TotalHours)
	if err != nil {
		return nil, fmt.Errorf("%s: проект id=%d: %w", op, id, err)
	}

	return &p, nil
}

// GetUnassignedProjects возвращает пул нераспределённых проектов:
// без расписания вовсе или с расписанием, потерявшим пост.
func (s *Storage) GetUnassignedProjects(ctx context.Context) ([]storage.Project, error) {
	const op = "storage.mysql.GetUnassignedProjects"

	query := `
		SELECT DISTINCT p.id, p.number, p.name, p.total_hours
		FROM projects p
		LEFT JOIN schedules sc ON sc.project_id = p.id AND sc.bay_id IS NOT NULL
		WHERE sc.id IS NULL
		ORDER BY p.number ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения пула проектов: %w", op, err)
	}
	defer rows.Close()

	var projects []storage.Project
	for rows.Next() {
		var p storage.Project
		if err := rows.Scan(&p.ID, &p.Number, &p.Name, &p.TotalHours); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки проекта: %w", op, err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}
