package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"bay-golang/internal/storage"
)

type SchedulesProvider interface {
	GetSchedules(ctx context.Context) ([]storage.Schedule, error)
	GetSchedulesByBay(ctx context.Context, bayID int64) ([]storage.Schedule, error)
}

type ResponseSchedules struct {
	Schedules []storage.Schedule `json:"schedules"`
	Status    string             `json:"status"`
	Error     string             `json:"error"`
}

func GetSchedules(log *slog.Logger, provider SchedulesProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.schedules.GetSchedules"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var (
			schedules []storage.Schedule
			err       error
		)

		// Без bay_id отдаём все расписания
		bayIDStr := r.URL.Query().Get("bay_id")
		if bayIDStr != "" {
			bayID, perr := strconv.ParseInt(bayIDStr, 10, 64)
			if perr != nil {
				http.Error(w, "Неверный bay_id", http.StatusBadRequest)
				return
			}
			schedules, err = provider.GetSchedulesByBay(ctx, bayID)
		} else {
			schedules, err = provider.GetSchedules(ctx)
		}

		if err != nil {
			log.Error("Ошибка при получении расписаний", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseSchedules{Error: "не удалось получить расписания"})
			return
		}

		render.JSON(w, r, ResponseSchedules{
			Schedules: schedules,
			Status:    strconv.Itoa(http.StatusOK),
		})
	}
}
