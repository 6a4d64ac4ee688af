package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"bay-golang/internal/storage"
)

const scheduleColumns = `id, project_id, COALESCE(bay_id, 0), start_date, end_date, total_hours, track`

func scanSchedule(row interface{ Scan(...any) error }) (storage.Schedule, error) {
	var sched storage.Schedule
	err := row.Scan(&sched.ID, &sched.ProjectID, &sched.BayID,
		&sched.StartDate, &sched.EndDate, &sched.TotalHours, &sched.Track)
	return sched, err
}

func (s *Storage) GetSchedules(ctx context.Context) ([]storage.Schedule, error) {
	const op = "storage.mysql.GetSchedules"

	query := `SELECT ` + scheduleColumns + ` FROM schedules ORDER BY start_date ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения расписаний: %w", op, err)
	}
	defer rows.Close()

	var schedules []storage.Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки расписания: %w", op, err)
		}
		schedules = append(schedules, sched)
	}

	return schedules, rows.Err()
}

func (s *Storage) GetSchedulesByBay(ctx context.Context, bayID int64) ([]storage.Schedule, error) {
	const op = "storage.mysql.GetSchedulesByBay"

	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE bay_id = ? ORDER BY start_date ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, bayID)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения расписаний поста id=%d: %w", op, bayID, err)
	}
	defer rows.Close()

	var schedules []storage.Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки расписания: %w", op, err)
		}
		schedules = append(schedules, sched)
	}

	return schedules, rows.Err()
}

func (s *Storage) GetSchedule(ctx context.Context, id int64) (*storage.Schedule, error) {
	const op = "storage.mysql.GetSchedule"

	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = ?`

	sched, err := scanSchedule(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: расписание id=%d: %w", op, id, err)
	}

	return &sched, nil
}

// CommitSchedule подтверждает размещение из протокола переноса:
// новое расписание вставляется, существующее обновляется целиком.
func (s *Storage) CommitSchedule(ctx context.Context, sched storage.Schedule) (int64, error) {
	const op = "storage.mysql.CommitSchedule"

	bayID := sql.NullInt64{Int64: sched.BayID, Valid: sched.BayID != 0}

	if sched.ID == 0 {
		query := `
			INSERT INTO schedules (project_id, bay_id, start_date, end_date, total_hours, track)
			VALUES (?, ?, ?, ?, ?, ?)`

		res, err := s.db.ExecContext(ctx, query, sched.ProjectID, bayID,
			sched.StartDate, sched.EndDate, sched.TotalHours, sched.Track)
		if err != nil {
			return 0, fmt.Errorf("%s: ошибка вставки расписания проекта id=%d: %w", op, sched.ProjectID, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		return id, nil
	}

	query := `
		UPDATE schedules
		SET project_id = ?, bay_id = ?, start_date = ?, end_date = ?, total_hours = ?, track = ?
		WHERE id = ?`

	// RowsAffected здесь не проверяется: MySQL возвращает 0 и для
	// обновления теми же значениями (сброс на прежнее место)
	_, err := s.db.ExecContext(ctx, query, sched.ProjectID, bayID,
		sched.StartDate, sched.EndDate, sched.TotalHours, sched.Track, sched.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка обновления расписания id=%d: %w", op, sched.ID, err)
	}

	return sched.ID, nil
}

func (s *Storage) DeleteSchedule(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteSchedule"

	res, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления расписания id=%d: %w", op, id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: расписание id=%d: %w", op, id, sql.ErrNoRows)
	}

	return nil
}
