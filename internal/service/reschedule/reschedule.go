package reschedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"bay-golang/internal/service/capacity"
	"bay-golang/internal/service/validate"
	"bay-golang/internal/storage"
)

var (
	// ErrCommitFailed — внешнее хранилище не подтвердило перенос (ошибка или таймаут).
	ErrCommitFailed = errors.New("хранилище не подтвердило перенос")
	// ErrNoActiveDrag — для сессии нет начатого перетаскивания.
	ErrNoActiveDrag = errors.New("нет активного перетаскивания")
)

// State — состояние протокола перетаскивания для одной сессии.
type State string

const (
	StateIdle     State = "idle"
	StatePickedUp State = "picked_up"
	StateHovering State = "hovering"
)

// Kind — что тащим: существующее расписание или проект из пула.
type Kind string

const (
	KindMove  Kind = "move"
	KindPlace Kind = "place"
)

type Payload struct {
	Kind       Kind    `json:"kind"`
	ScheduleID int64   `json:"schedule_id,omitempty"`
	ProjectID  int64   `json:"project_id,omitempty"`
	TotalHours float64 `json:"total_hours"`
}

// Target — кандидат на размещение: пост, дата слота под курсором, дорожка 0..3.
type Target struct {
	BayID    int64     `json:"bay_id"`
	SlotDate time.Time `json:"slot_date"`
	Track    int       `json:"track"`
}

// Operation — эфемерное состояние жеста. Живёт только между begin и drop/cancel,
// никогда не сохраняется. Подсветка на фронте — чистая функция от этого значения.
type Operation struct {
	State   State   `json:"state"`
	Payload Payload `json:"payload"`
	Target  Target  `json:"target"`
	Valid   bool    `json:"valid"`
	Reason  string  `json:"reason,omitempty"`
}

// session хранит операцию и снимок расписания до начала жеста.
// Снимок нужен для отката: локальное состояние меняется только после
// подтверждения хранилищем, так что откат — это просто отбросить операцию.
type session struct {
	op   Operation
	prev *storage.Schedule
}

type DragStorage interface {
	GetBays(ctx context.Context) ([]storage.Bay, error)
	GetSchedules(ctx context.Context) ([]storage.Schedule, error)
	GetSchedule(ctx context.Context, id int64) (*storage.Schedule, error)
	GetProject(ctx context.Context, id int64) (*storage.Project, error)
	CommitSchedule(ctx context.Context, sched storage.Schedule) (int64, error)
}

type Service struct {
	storage       DragStorage
	commitTimeout time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

func NewService(storage DragStorage, commitTimeout time.Duration) *Service {
	if commitTimeout <= 0 {
		commitTimeout = 5 * time.Second
	}
	return &Service{
		storage:       storage,
		commitTimeout: commitTimeout,
		sessions:      make(map[string]*session),
	}
}

// Begin начинает перетаскивание. Для существующего расписания объём часов и
// снимок до переноса берутся из хранилища, для проекта — заявленные часы.
// Повторный begin в той же сессии молча отменяет предыдущий жест.
func (s *Service) Begin(ctx context.Context, sessionID string, payload Payload) (Operation, error) {
	const op = "service.reschedule.Begin"

	sess := &session{}

	switch payload.Kind {
	case KindMove:
		prev, err := s.storage.GetSchedule(ctx, payload.ScheduleID)
		if err != nil {
			return Operation{}, fmt.Errorf("%s: расписание %d: %w", op, payload.ScheduleID, err)
		}
		payload.ProjectID = prev.ProjectID
		payload.TotalHours = prev.TotalHours
		sess.prev = prev
	case KindPlace:
		project, err := s.storage.GetProject(ctx, payload.ProjectID)
		if err != nil {
			return Operation{}, fmt.Errorf("%s: проект %d: %w", op, payload.ProjectID, err)
		}
		payload.TotalHours = project.TotalHours
	default:
		return Operation{}, fmt.Errorf("%s: неизвестный вид перетаскивания: %q", op, payload.Kind)
	}

	sess.op = Operation{State: StatePickedUp, Payload: payload}

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	return sess.op, nil
}

// Hover проверяет кандидата на размещение против текущего подтверждённого
// состояния и выставляет флаг валидности. Никаких побочных эффектов на данные.
func (s *Service) Hover(ctx context.Context, sessionID string, target Target) (Operation, error) {
	const op = "service.reschedule.Hover"

	sess, ok := s.session(sessionID)
	if !ok {
		return Operation{}, fmt.Errorf("%s: %w", op, ErrNoActiveDrag)
	}

	bays, schedules, err := s.snapshot(ctx)
	if err != nil {
		return Operation{}, fmt.Errorf("%s: %w", op, err)
	}

	verr := validate.CheckPlacement(s.placementFor(sess, target, bays), bays, schedules)

	s.mu.Lock()
	sess.op.State = StateHovering
	sess.op.Target = target
	sess.op.Valid = verr == nil
	sess.op.Reason = ""
	if verr != nil {
		sess.op.Reason = verr.Error()
	}
	current := sess.op
	s.mu.Unlock()

	return current, nil
}

// Drop завершает жест на целевой позиции. Валидность с hover могла устареть,
// поэтому проверка выполняется заново прямо по точке сброса. При отказе
// валидатора операция отбрасывается, в хранилище никто не ходит. При отказе
// хранилища локально ничего не менялось, состояние остаётся как до жеста.
func (s *Service) Drop(ctx context.Context, sessionID string, target Target) (storage.Schedule, error) {
	const op = "service.reschedule.Drop"

	sess, ok := s.session(sessionID)
	if !ok {
		return storage.Schedule{}, fmt.Errorf("%s: %w", op, ErrNoActiveDrag)
	}

	bays, schedules, err := s.snapshot(ctx)
	if err != nil {
		return storage.Schedule{}, fmt.Errorf("%s: %w", op, err)
	}

	placement := s.placementFor(sess, target, bays)
	if verr := validate.CheckPlacement(placement, bays, schedules); verr != nil {
		s.drop(sessionID)
		return storage.Schedule{}, fmt.Errorf("%s: %w", op, verr)
	}

	proposed := storage.Schedule{
		ID:         sess.op.Payload.ScheduleID,
		ProjectID:  sess.op.Payload.ProjectID,
		BayID:      target.BayID,
		StartDate:  placement.StartDate,
		EndDate:    placement.EndDate,
		TotalHours: sess.op.Payload.TotalHours,
		Track:      target.Track,
	}

	cctx, cancel := context.WithTimeout(ctx, s.commitTimeout)
	defer cancel()

	id, err := s.storage.CommitSchedule(cctx, proposed)
	if err != nil {
		// откат: до подтверждения локально ничего не менялось,
		// наружу уходит снимок расписания до жеста
		var restored storage.Schedule
		if sess.prev != nil {
			restored = *sess.prev
		}
		s.drop(sessionID)
		return restored, fmt.Errorf("%s: %w: %v", op, ErrCommitFailed, err)
	}

	proposed.ID = id
	s.drop(sessionID)

	return proposed, nil
}

// Cancel отменяет жест без побочных эффектов. Отмена из любого состояния.
func (s *Service) Cancel(sessionID string) {
	s.drop(sessionID)
}

// Current возвращает текущую операцию сессии, Idle если жеста нет.
func (s *Service) Current(sessionID string) Operation {
	sess, ok := s.session(sessionID)
	if !ok {
		return Operation{State: StateIdle}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return sess.op
}

func (s *Service) session(sessionID string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

func (s *Service) drop(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// placementFor строит предлагаемое размещение: дата начала — дата слота,
// дата окончания пересчитывается по мощности целевого поста. Перенос на более
// мощный пост укорачивает интервал.
func (s *Service) placementFor(sess *session, target Target, bays []storage.Bay) validate.Placement {
	start := time.Date(target.SlotDate.Year(), target.SlotDate.Month(), target.SlotDate.Day(),
		0, 0, 0, 0, target.SlotDate.Location())
	end := start

	for _, bay := range bays {
		if bay.ID == target.BayID {
			end = capacity.EstimateEndDate(bay, sess.op.Payload.TotalHours, start)
			break
		}
	}

	return validate.Placement{
		ScheduleID: sess.op.Payload.ScheduleID,
		BayID:      target.BayID,
		Track:      target.Track,
		StartDate:  start,
		EndDate:    end,
	}
}

// snapshot параллельно читает посты и расписания одной точкой согласованности.
func (s *Service) snapshot(ctx context.Context) ([]storage.Bay, []storage.Schedule, error) {
	var (
		bays      []storage.Bay
		schedules []storage.Schedule
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bays, err = s.storage.GetBays(gCtx)
		if err != nil {
			return fmt.Errorf("bays: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		schedules, err = s.storage.GetSchedules(gCtx)
		if err != nil {
			return fmt.Errorf("schedules: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return bays, schedules, nil
}
