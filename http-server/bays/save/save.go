package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"bay-golang/internal/storage"
)

type BaySaver interface {
	SaveBay(ctx context.Context, bay storage.SaveBay) (int64, error)
}

type Response struct {
	BayID  int64  `json:"bay_id"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

func SaveBayAdmin(log *slog.Logger, saver BaySaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bays.SaveBayAdmin"

		var req storage.SaveBay
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			log.Error("Неверный JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Неверные данные", http.StatusBadRequest)
			return
		}

		if req.Name == "" {
			http.Error(w, "Не указано название поста", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		bayID, err := saver.SaveBay(ctx, req)
		if err != nil {
			log.Error("Ошибка при сохранении поста", slog.String("op", op), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "не удалось сохранить пост"})
			return
		}

		render.JSON(w, r, Response{
			BayID:  bayID,
			Status: strconv.Itoa(http.StatusOK),
		})
	}
}
