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

type ProjectsProvider interface {
	GetProjects(ctx context.Context) ([]storage.Project, error)
	GetUnassignedProjects(ctx context.Context) ([]storage.Project, error)
}

type ResponseProjects struct {
	Projects []storage.Project `json:"projects"`
	Status   string            `json:"status"`
	Error    string            `json:"error"`
}

func GetProjects(log *slog.Logger, provider ProjectsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.GetProjects"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		projects, err := provider.GetProjects(ctx)
		if err != nil {
			log.Error("Ошибка при получении проектов", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseProjects{Error: "не удалось получить проекты"})
			return
		}

		render.JSON(w, r, ResponseProjects{
			Projects: projects,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}

// GetUnassignedProjects — пул проектов без поста, из него тащат на диаграмму.
func GetUnassignedProjects(log *slog.Logger, provider ProjectsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.GetUnassignedProjects"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		projects, err := provider.GetUnassignedProjects(ctx)
		if err != nil {
			log.Error("Ошибка при получении пула проектов", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseProjects{Error: "не удалось получить пул проектов"})
			return
		}

		render.JSON(w, r, ResponseProjects{
			Projects: projects,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}
