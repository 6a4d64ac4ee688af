package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"bay-golang/internal/service/capacity"
	"bay-golang/internal/storage"
)

type BaysProvider interface {
	GetBays(ctx context.Context) ([]storage.Bay, error)
}

// BayView — пост с производными мощностями для фронта.
type BayView struct {
	storage.Bay
	WeeklyHours float64 `json:"weekly_hours"`
	DailyHours  float64 `json:"daily_hours"`
}

type ResponseBays struct {
	Bays   []BayView `json:"bays"`
	Status string    `json:"status"`
	Error  string    `json:"error"`
}

func GetBays(log *slog.Logger, provider BaysProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.bays.GetBays"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		bays, err := provider.GetBays(ctx)
		if err != nil {
			log.Error("Ошибка при получении постов", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseBays{Error: "не удалось получить посты"})
			return
		}

		views := make([]BayView, 0, len(bays))
		for _, bay := range bays {
			views = append(views, BayView{
				Bay:         bay,
				WeeklyHours: capacity.WeeklyHours(bay),
				DailyHours:  capacity.DailyHours(bay),
			})
		}

		render.JSON(w, r, ResponseBays{
			Bays:   views,
			Status: strconv.Itoa(http.StatusOK),
		})
	}
}
