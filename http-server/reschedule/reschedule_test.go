package reschedule

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	svc "bay-golang/internal/service/reschedule"
	"bay-golang/internal/service/validate"
	"bay-golang/internal/storage"
)

type MockDragService struct {
	mock.Mock
}

func (m *MockDragService) Begin(ctx context.Context, sessionID string, payload svc.Payload) (svc.Operation, error) {
	args := m.Called(ctx, sessionID, payload)
	return args.Get(0).(svc.Operation), args.Error(1)
}

func (m *MockDragService) Hover(ctx context.Context, sessionID string, target svc.Target) (svc.Operation, error) {
	args := m.Called(ctx, sessionID, target)
	return args.Get(0).(svc.Operation), args.Error(1)
}

func (m *MockDragService) Drop(ctx context.Context, sessionID string, target svc.Target) (storage.Schedule, error) {
	args := m.Called(ctx, sessionID, target)
	return args.Get(0).(storage.Schedule), args.Error(1)
}

func (m *MockDragService) Cancel(sessionID string) {
	m.Called(sessionID)
}

// Тест: начало перетаскивания проекта из пула
func TestBeginDrag_Success(t *testing.T) {
	mockService := new(MockDragService)

	operation := svc.Operation{
		State:   svc.StatePickedUp,
		Payload: svc.Payload{Kind: svc.KindPlace, ProjectID: 5, TotalHours: 96},
	}
	mockService.On("Begin", mock.Anything, "s1", mock.Anything).Return(operation, nil)

	handler := BeginDrag(slog.Default(), mockService)

	body := `{"session_id":"s1","kind":"place","project_id":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/reschedule/begin", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseOperation
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)

	assert.Equal(t, svc.StatePickedUp, resp.Operation.State)
	assert.Equal(t, 96.0, resp.Operation.Payload.TotalHours)

	mockService.AssertExpectations(t)
}

// Тест: begin без session_id
func TestBeginDrag_MissingSession(t *testing.T) {
	mockService := new(MockDragService)
	handler := BeginDrag(slog.Default(), mockService)

	body := `{"kind":"place","project_id":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/reschedule/begin", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "Begin")
}

// Тест: hover возвращает совещательный флаг валидности
func TestHoverDrag_Advisory(t *testing.T) {
	mockService := new(MockDragService)

	operation := svc.Operation{
		State:  svc.StateHovering,
		Valid:  false,
		Reason: "пост не принимает работы",
	}
	expectedTarget := svc.Target{
		BayID:    2,
		SlotDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Track:    0,
	}
	mockService.On("Hover", mock.Anything, "s1", expectedTarget).Return(operation, nil)

	handler := HoverDrag(slog.Default(), mockService)

	body := `{"session_id":"s1","bay_id":2,"slot_date":"2025-03-03","track":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/reschedule/hover", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseOperation
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)

	assert.False(t, resp.Operation.Valid)
	assert.NotEmpty(t, resp.Operation.Reason)

	mockService.AssertExpectations(t)
}

// Тест: успешный сброс — расписание подтверждено хранилищем
func TestDropDrag_Success(t *testing.T) {
	mockService := new(MockDragService)

	committed := storage.Schedule{
		ID: 11, ProjectID: 5, BayID: 1,
		StartDate:  time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		TotalHours: 96, Track: 0,
	}
	mockService.On("Drop", mock.Anything, "s1", mock.Anything).Return(committed, nil)

	handler := DropDrag(slog.Default(), mockService)

	body := `{"session_id":"s1","bay_id":1,"slot_date":"2025-03-03","track":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/reschedule/drop", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseDrop
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)

	assert.Equal(t, int64(11), resp.Schedule.ID)
	assert.Empty(t, resp.Error)
}

// Тест: отказ валидатора при сбросе — 409, жест отброшен
func TestDropDrag_Conflict(t *testing.T) {
	mockService := new(MockDragService)

	mockService.On("Drop", mock.Anything, "s1", mock.Anything).
		Return(storage.Schedule{}, fmt.Errorf("service.reschedule.Drop: %w", validate.ErrTrackConflict))

	handler := DropDrag(slog.Default(), mockService)

	body := `{"session_id":"s1","bay_id":1,"slot_date":"2025-03-03","track":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/reschedule/drop", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

// Тест: хранилище не подтвердило коммит — 502
func TestDropDrag_CommitFailed(t *testing.T) {
	mockService := new(MockDragService)

	mockService.On("Drop", mock.Anything, "s1", mock.Anything).
		Return(storage.Schedule{}, fmt.Errorf("service.reschedule.Drop: %w: таймаут", svc.ErrCommitFailed))

	handler := DropDrag(slog.Default(), mockService)

	body := `{"session_id":"s1","bay_id":1,"slot_date":"2025-03-03","track":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/reschedule/drop", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)

	var resp ResponseDrop
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Error)
}

// Тест: дорожка вне диапазона 0..3
func TestDropDrag_BadTrack(t *testing.T) {
	mockService := new(MockDragService)
	handler := DropDrag(slog.Default(), mockService)

	body := `{"session_id":"s1","bay_id":1,"slot_date":"2025-03-03","track":7}`
	req := httptest.NewRequest(http.MethodPost, "/api/reschedule/drop", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "Drop")
}

// Тест: отмена жеста
func TestCancelDrag(t *testing.T) {
	mockService := new(MockDragService)
	mockService.On("Cancel", "s1").Return()

	handler := CancelDrag(slog.Default(), mockService)

	body := `{"session_id":"s1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reschedule/cancel", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}
