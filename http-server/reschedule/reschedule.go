package reschedule

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"bay-golang/internal/service/layout"
	"bay-golang/internal/service/reschedule"
	"bay-golang/internal/service/validate"
	"bay-golang/internal/storage"
)

type DragService interface {
	Begin(ctx context.Context, sessionID string, payload reschedule.Payload) (reschedule.Operation, error)
	Hover(ctx context.Context, sessionID string, target reschedule.Target) (reschedule.Operation, error)
	Drop(ctx context.Context, sessionID string, target reschedule.Target) (storage.Schedule, error)
	Cancel(sessionID string)
}

type RequestBegin struct {
	SessionID  string  `json:"session_id"`
	Kind       string  `json:"kind"`
	ScheduleID int64   `json:"schedule_id"`
	ProjectID  int64   `json:"project_id"`
	TotalHours float64 `json:"total_hours"`
}

type RequestTarget struct {
	SessionID string `json:"session_id"`
	BayID     int64  `json:"bay_id"`
	SlotDate  string `json:"slot_date"`
	Track     int    `json:"track"`
}

type ResponseOperation struct {
	Operation reschedule.Operation `json:"operation"`
	Status    string               `json:"status"`
	Error     string               `json:"error"`
}

type ResponseDrop struct {
	Schedule storage.Schedule `json:"schedule"`
	Status   string           `json:"status"`
	Error    string           `json:"error"`
}

// BeginDrag начинает перетаскивание расписания или проекта из пула.
func BeginDrag(log *slog.Logger, svc DragService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.reschedule.BeginDrag"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req RequestBegin
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			http.Error(w, "Не указан session_id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		operation, err := svc.Begin(ctx, req.SessionID, reschedule.Payload{
			Kind:       reschedule.Kind(req.Kind),
			ScheduleID: req.ScheduleID,
			ProjectID:  req.ProjectID,
			TotalHours: req.TotalHours,
		})
		if err != nil {
			log.Error("Ошибка начала перетаскивания", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, ResponseOperation{Error: "не удалось начать перетаскивание"})
			return
		}

		render.JSON(w, r, ResponseOperation{
			Operation: operation,
			Status:    strconv.Itoa(http.StatusOK),
		})
	}
}

// HoverDrag проверяет кандидата под курсором. Чисто совещательный ответ,
// данные не меняются.
func HoverDrag(log *slog.Logger, svc DragService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.reschedule.HoverDrag"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		target, sessionID, ok := decodeTarget(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		operation, err := svc.Hover(ctx, sessionID, target)
		if err != nil {
			if errors.Is(err, reschedule.ErrNoActiveDrag) {
				http.Error(w, "Нет активного перетаскивания", http.StatusBadRequest)
				return
			}
			log.Error("Ошибка проверки позиции", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseOperation{Error: "не удалось проверить позицию"})
			return
		}

		render.JSON(w, r, ResponseOperation{
			Operation: operation,
			Status:    strconv.Itoa(http.StatusOK),
		})
	}
}

// DropDrag завершает жест: повторная проверка в точке сброса, пересчёт
// длительности по мощности целевого поста, коммит во внешнее хранилище.
func DropDrag(log *slog.Logger, svc DragService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.reschedule.DropDrag"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		target, sessionID, ok := decodeTarget(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		committed, err := svc.Drop(ctx, sessionID, target)
		if err != nil {
			switch {
			case errors.Is(err, reschedule.ErrNoActiveDrag):
				http.Error(w, "Нет активного перетаскивания", http.StatusBadRequest)
			case errors.Is(err, validate.ErrCapacityViolation),
				errors.Is(err, validate.ErrTrackConflict),
				errors.Is(err, validate.ErrInvalidRange),
				errors.Is(err, validate.ErrUnknownBay):
				// отказ валидатора — жест отброшен, коммита не было
				w.WriteHeader(http.StatusConflict)
				render.JSON(w, r, ResponseDrop{Error: err.Error()})
			case errors.Is(err, reschedule.ErrCommitFailed):
				log.Error("Хранилище не подтвердило перенос", slog.String("error", err.Error()))
				w.WriteHeader(http.StatusBadGateway)
				render.JSON(w, r, ResponseDrop{Error: "перенос не подтверждён, изменения отменены"})
			default:
				log.Error("Ошибка завершения переноса", slog.String("error", err.Error()))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, ResponseDrop{Error: "не удалось завершить перенос"})
			}
			return
		}

		render.JSON(w, r, ResponseDrop{
			Schedule: committed,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}

// CancelDrag отменяет жест без побочных эффектов.
func CancelDrag(log *slog.Logger, svc DragService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RequestTarget
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			http.Error(w, "Не указан session_id", http.StatusBadRequest)
			return
		}

		svc.Cancel(req.SessionID)

		w.WriteHeader(http.StatusOK)
	}
}

func decodeTarget(w http.ResponseWriter, r *http.Request) (reschedule.Target, string, bool) {
	var req RequestTarget
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный JSON", http.StatusBadRequest)
		return reschedule.Target{}, "", false
	}
	if req.SessionID == "" {
		http.Error(w, "Не указан session_id", http.StatusBadRequest)
		return reschedule.Target{}, "", false
	}

	slotDate, err := time.Parse("2006-01-02", req.SlotDate)
	if err != nil {
		http.Error(w, "Неверная дата слота", http.StatusBadRequest)
		return reschedule.Target{}, "", false
	}

	if req.Track < 0 || req.Track >= layout.DefaultTrackBound {
		http.Error(w, "Неверная дорожка", http.StatusBadRequest)
		return reschedule.Target{}, "", false
	}

	return reschedule.Target{
		BayID:    req.BayID,
		SlotDate: slotDate,
		Track:    req.Track,
	}, req.SessionID, true
}
