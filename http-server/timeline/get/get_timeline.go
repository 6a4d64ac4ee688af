package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"bay-golang/internal/service/layout"
	"bay-golang/internal/service/timeline"
	"bay-golang/internal/storage"
)

type TimelineProvider interface {
	GetBays(ctx context.Context) ([]storage.Bay, error)
	GetSchedules(ctx context.Context) ([]storage.Schedule, error)
}

type ResponseTimeline struct {
	Slots  []timeline.TimeSlot  `json:"slots"`
	Bars   []layout.ScheduleBar `json:"bars"`
	Bays   []storage.Bay        `json:"bays"`
	Status string               `json:"status"`
	Error  string               `json:"error"`
}

// GetTimeline строит ось времени и раскладку плашек всех постов для
// запрошенного диапазона и шага (?start=&end=&view=).
// Без параметров — текущий месяц плюс два следующих, дневной шаг.
func GetTimeline(log *slog.Logger, provider TimelineProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.timeline.GetTimeline"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		now := time.Now()
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

		startStr := r.URL.Query().Get("start")
		endStr := r.URL.Query().Get("end")

		start, err := time.Parse("2006-01-02", startStr)
		if err != nil && startStr != "" {
			http.Error(w, "Неверная дата start", http.StatusBadRequest)
			return
		}
		if startStr == "" {
			start = startOfMonth
		}

		end, err := time.Parse("2006-01-02", endStr)
		if err != nil && endStr != "" {
			http.Error(w, "Неверная дата end", http.StatusBadRequest)
			return
		}
		if endStr == "" {
			end = startOfMonth.AddDate(0, 3, -1)
		}

		view, err := timeline.ParseGranularity(r.URL.Query().Get("view"))
		if err != nil {
			http.Error(w, "Неверный шаг view", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var (
			bays      []storage.Bay
			schedules []storage.Schedule
		)

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			bays, err = provider.GetBays(gCtx)
			return err
		})
		g.Go(func() error {
			var err error
			schedules, err = provider.GetSchedules(gCtx)
			return err
		})

		if err := g.Wait(); err != nil {
			log.Error("Ошибка при получении данных для диаграммы", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseTimeline{Error: "не удалось построить диаграмму"})
			return
		}

		slots := timeline.ComputeTimeAxis(start, end, view)
		bars := layout.ComputeScheduleBars(bays, schedules, slots)

		render.JSON(w, r, ResponseTimeline{
			Slots:  slots,
			Bars:   bars,
			Bays:   bays,
			Status: strconv.Itoa(http.StatusOK),
		})
	}
}
