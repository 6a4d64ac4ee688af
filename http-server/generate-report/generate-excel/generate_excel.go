package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	generate_excel "bay-golang/internal/service/generate-excel"
	"bay-golang/internal/service/timeline"
)

type ScheduleReportGenerator interface {
	GenerateExcel(ctx context.Context, filter generate_excel.ReportFilter) ([]byte, error)
}

// GenerateScheduleExcel отдаёт сетку загрузки постов файлом xlsx
// (?start=&end=&view=). Без дат — текущий месяц плюс два следующих.
func GenerateScheduleExcel(log *slog.Logger, gen ScheduleReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateScheduleExcel"

		now := time.Now()
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

		startStr := r.URL.Query().Get("start")
		endStr := r.URL.Query().Get("end")

		start, err := time.Parse("2006-01-02", startStr)
		if err != nil && startStr != "" {
			http.Error(w, "invalid start date", http.StatusBadRequest)
			return
		}
		if startStr == "" {
			start = startOfMonth
		}

		end, err := time.Parse("2006-01-02", endStr)
		if err != nil && endStr != "" {
			http.Error(w, "invalid end date", http.StatusBadRequest)
			return
		}
		if endStr == "" {
			end = startOfMonth.AddDate(0, 3, -1)
		}

		view, err := timeline.ParseGranularity(r.URL.Query().Get("view"))
		if err != nil {
			http.Error(w, "invalid view", http.StatusBadRequest)
			return
		}

		// На Excel можно побольше времени
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, generate_excel.ReportFilter{
			From: start,
			To:   end,
			View: view,
		})
		if err != nil {
			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Bay_Schedule_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
