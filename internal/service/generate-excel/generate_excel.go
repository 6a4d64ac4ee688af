package generate_excel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"bay-golang/internal/service/capacity"
	"bay-golang/internal/service/timeline"
	"bay-golang/internal/storage"
)

type ReportFilter struct {
	From time.Time
	To   time.Time
	View timeline.Granularity
}

type ScheduleReportStorage interface {
	GetBays(ctx context.Context) ([]storage.Bay, error)
	GetSchedules(ctx context.Context) ([]storage.Schedule, error)
	GetProjects(ctx context.Context) ([]storage.Project, error)
}

type ScheduleReportService struct {
	storage ScheduleReportStorage
}

func NewReportService(storage ScheduleReportStorage) *ScheduleReportService {
	return &ScheduleReportService{storage: storage}
}

// GenerateExcel строит сетку постов по слотам оси: в ячейке — номера проектов,
// работы которых попадают в слот.
func (g *ScheduleReportService) GenerateExcel(ctx context.Context, filter ReportFilter) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	var (
		bays      []storage.Bay
		schedules []storage.Schedule
		projects  []storage.Project
	)

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		bays, err = g.storage.GetBays(grpCtx)
		if err != nil {
			return fmt.Errorf("bays: %w", err)
		}
		return nil
	})
	grp.Go(func() error {
		var err error
		schedules, err = g.storage.GetSchedules(grpCtx)
		if err != nil {
			return fmt.Errorf("schedules: %w", err)
		}
		return nil
	})
	grp.Go(func() error {
		var err error
		projects, err = g.storage.GetProjects(grpCtx)
		if err != nil {
			return fmt.Errorf("projects: %w", err)
		}
		return nil
	})
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	projectNum := make(map[int64]string, len(projects))
	for _, p := range projects {
		projectNum[p.ID] = p.Number
	}

	axis := timeline.ComputeTimeAxis(filter.From, filter.To, filter.View)

	f := excelize.NewFile()
	defer f.Close()
	sheet := "График постов"
	f.SetSheetName("Sheet1", sheet)

	// Жирный шрифт для шапки
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	weekendStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F5F5F5"}, Pattern: 1},
	})

	// Шапка: пост, мощность, дальше слоты оси
	f.SetCellValue(sheet, "A1", "Пост")
	f.SetCellValue(sheet, "B1", "Мощность, ч/нед")
	for i, slot := range axis {
		cell, _ := excelize.CoordinatesToCellName(i+3, 1)
		f.SetCellValue(sheet, cell, slot.Label+" "+slot.SubLabel)
	}

	lastCol, _ := excelize.CoordinatesToCellName(len(axis)+2, 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	// Строки постов
	for rowIdx, bay := range bays {
		rowNum := rowIdx + 2

		f.SetCellValue(sheet, cellName(1, rowNum), fmt.Sprintf("№%d %s", bay.Number, bay.Name))
		f.SetCellValue(sheet, cellName(2, rowNum), capacity.WeeklyHours(bay))

		for i, slot := range axis {
			var nums []string
			for _, s := range schedules {
				if s.BayID != bay.ID {
					continue
				}
				if !s.Overlaps(slot.Date, nextSlotDate(axis, i, filter.View)) {
					continue
				}
				num := projectNum[s.ProjectID]
				if num == "" {
					num = fmt.Sprintf("#%d", s.ProjectID)
				}
				nums = append(nums, num)
			}
			if len(nums) == 0 {
				continue
			}

			cell := cellName(i+3, rowNum)
			f.SetCellValue(sheet, cell, strings.Join(nums, ", "))
			if slot.IsWeekend {
				f.SetCellStyle(sheet, cell, cell, weekendStyle)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка записи файла: %w", op, err)
	}

	return buf.Bytes(), nil
}

func nextSlotDate(axis []timeline.TimeSlot, i int, g timeline.Granularity) time.Time {
	if i+1 < len(axis) {
		return axis[i+1].Date
	}
	return timeline.NextBoundary(axis[i].Date, g)
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
