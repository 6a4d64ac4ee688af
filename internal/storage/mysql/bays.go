package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"bay-golang/internal/storage"
)

func (s *Storage) GetBays(ctx context.Context) ([]storage.Bay, error) {
	const op = "storage.mysql.GetBays"

	query := `
		SELECT id, name, number, is_active, assembly_staff, electrical_staff, hours_per_week
		FROM bays
		ORDER BY number ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения постов: %w", op, err)
	}
	defer rows.Close()

	var bays []storage.Bay
	for rows.Next() {
		var bay storage.Bay

		err := rows.Scan(&bay.ID, &bay.Name, &bay.Number, &bay.IsActive,
			&bay.AssemblyStaff, &bay.ElectricalStaff, &bay.HoursPerWeek)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки поста: %w", op, err)
		}

		bays = append(bays, bay)
	}

	return bays, rows.Err()
}

func (s *Storage) GetBay(ctx context.Context, id int64) (*storage.Bay, error) {
	const op = "storage.mysql.GetBay"

	query := `
		SELECT id, name, number, is_active, assembly_staff, electrical_staff, hours_per_week
		FROM bays
		WHERE id = ?`

	var bay storage.Bay
	err := s.db.QueryRowContext(ctx, query, id).Scan(&bay.ID, &bay.Name, &bay.Number,
		&bay.IsActive, &bay.AssemblyStaff, &bay.ElectricalStaff, &bay.HoursPerWeek)
	if err != nil {
		return nil, fmt.Errorf("%s: пост id=%d: %w", op, id, err)
	}

	return &bay, nil
}

func (s *Storage) SaveBay(ctx context.Context, bay storage.SaveBay) (int64, error) {
	const op = "storage.mysql.SaveBay"

	query := `
		INSERT INTO bays (name, number, is_active, assembly_staff, electrical_staff, hours_per_week)
		VALUES (?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query, bay.Name, bay.Number, bay.IsActive,
		bay.AssemblyStaff, bay.ElectricalStaff, bay.HoursPerWeek)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка добавления поста: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UpdateBay(ctx context.Context, id int64, bay storage.SaveBay) error {
	const op = "storage.mysql.UpdateBay"

	query := `
		UPDATE bays
		SET name = ?, number = ?, is_active = ?, assembly_staff = ?, electrical_staff = ?, hours_per_week = ?
		WHERE id = ?`

	_, err := s.db.ExecContext(ctx, query, bay.Name, bay.Number, bay.IsActive,
		bay.AssemblyStaff, bay.ElectricalStaff, bay.HoursPerWeek, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления поста id=%d: %w", op, id, err)
	}

	return nil
}

// DeleteBay удаляет пост одной транзакцией. Его расписания не удаляются,
// а уходят в пул нераспределённых (bay_id = NULL).
func (s *Storage) DeleteBay(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteBay"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `UPDATE schedules SET bay_id = NULL, track = 0 WHERE bay_id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка перевода расписаний поста id=%d в пул: %w", op, id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM bays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления поста id=%d: %w", op, id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: пост id=%d: %w", op, id, sql.ErrNoRows)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}
