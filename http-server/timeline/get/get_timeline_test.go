package get

import (
	"context"
	"errors"
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

	"bay-golang/internal/storage"
)

// MockTimelineProvider реализует интерфейс TimelineProvider для тестов
type MockTimelineProvider struct {
	mock.Mock
}

func (m *MockTimelineProvider) GetBays(ctx context.Context) ([]storage.Bay, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Bay), args.Error(1)
}

func (m *MockTimelineProvider) GetSchedules(ctx context.Context) ([]storage.Schedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Schedule), args.Error(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Тест: успешное построение диаграммы за период
func TestGetTimeline_Success(t *testing.T) {
	mockStorage := new(MockTimelineProvider)

	bays := []storage.Bay{
		{ID: 1, Name: "Пост 1", Number: 1, IsActive: true, AssemblyStaff: 2, ElectricalStaff: 1, HoursPerWeek: 40},
	}
	schedules := []storage.Schedule{
		{ID: 10, ProjectID: 5, BayID: 1, StartDate: date(2025, 3, 3), EndDate: date(2025, 3, 7), TotalHours: 96},
	}

	mockStorage.On("GetBays", mock.Anything).Return(bays, nil)
	mockStorage.On("GetSchedules", mock.Anything).Return(schedules, nil)

	logger := slog.Default()
	handler := GetTimeline(logger, mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/timeline?start=2025-03-01&end=2025-03-10&view=day", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseTimeline
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 10)
	require.Len(t, resp.Bars, 1)
	assert.Equal(t, int64(10), resp.Bars[0].ScheduleID)
	assert.Equal(t, 100, resp.Bars[0].Left)  // 3 марта — третий слот
	assert.Equal(t, 200, resp.Bars[0].Width) // 4 дня по 50
	assert.Len(t, resp.Bays, 1)
	assert.Empty(t, resp.Error)

	mockStorage.AssertExpectations(t)
}

// Тест: неверная дата
func TestGetTimeline_BadDate(t *testing.T) {
	mockStorage := new(MockTimelineProvider)
	handler := GetTimeline(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/timeline?start=03-01-2025", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockStorage.AssertNotCalled(t, "GetBays")
}

// Тест: неверный шаг оси
func TestGetTimeline_BadView(t *testing.T) {
	mockStorage := new(MockTimelineProvider)
	handler := GetTimeline(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/timeline?view=hour", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// Тест: ошибка базы данных (500)
func TestGetTimeline_DBError(t *testing.T) {
	mockStorage := new(MockTimelineProvider)

	mockStorage.On("GetBays", mock.Anything).Return(nil, errors.New("connection timeout"))
	mockStorage.On("GetSchedules", mock.Anything).Return([]storage.Schedule{}, nil).Maybe()

	handler := GetTimeline(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/timeline?start=2025-03-01&end=2025-03-10", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// Тест: перевёрнутый диапазон — пустая ось, не ошибка
func TestGetTimeline_InvertedRange(t *testing.T) {
	mockStorage := new(MockTimelineProvider)
	mockStorage.On("GetBays", mock.Anything).Return([]storage.Bay{}, nil)
	mockStorage.On("GetSchedules", mock.Anything).Return([]storage.Schedule{}, nil)

	handler := GetTimeline(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/timeline?start=2025-03-10&end=2025-03-01", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseTimeline
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Empty(t, resp.Bars)
}
