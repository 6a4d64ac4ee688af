package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"bay-golang/internal/service/capacity"
	"bay-golang/internal/storage"
)

type BayProvider interface {
	GetBay(ctx context.Context, id int64) (*storage.Bay, error)
}

type ResponseEstimate struct {
	EndDate string `json:"end_date"`
	Days    int    `json:"days"`
	Status  string `json:"status"`
	Error   string `json:"error"`
}

// GetEstimate считает дату окончания работ по мощности поста
// (?bay_id=&hours=&start=).
func GetEstimate(log *slog.Logger, provider BayProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.estimate.GetEstimate"

		bayID, err := strconv.ParseInt(r.URL.Query().Get("bay_id"), 10, 64)
		if err != nil {
			http.Error(w, "Неверный bay_id", http.StatusBadRequest)
			return
		}

		hours, err := strconv.ParseFloat(r.URL.Query().Get("hours"), 64)
		if err != nil || hours < 0 {
			http.Error(w, "Неверный объём часов", http.StatusBadRequest)
			return
		}

		start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
		if err != nil {
			http.Error(w, "Неверная дата start", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		bay, err := provider.GetBay(ctx, bayID)
		if err != nil {
			log.Error("Ошибка при получении поста", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Пост не найден", http.StatusNotFound)
			return
		}

		end := capacity.EstimateEndDate(*bay, hours, start)

		render.JSON(w, r, ResponseEstimate{
			EndDate: end.Format("2006-01-02"),
			Days:    capacity.DaysNeeded(*bay, hours),
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}
