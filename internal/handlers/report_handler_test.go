package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pace/internal/models"
	"pace/internal/pdf"
	"pace/internal/services"
)

// Stub repos feeding the report service with fixed numbers; the handler
// tests only care about status codes and response shape.

type stubUserRepo struct{ premium bool }

func (r *stubUserRepo) EnsureExists(context.Context, string, string) error { return nil }
func (r *stubUserRepo) FindByID(context.Context, string) (*models.User, error) {
	return &models.User{}, nil
}
func (r *stubUserRepo) IsPremium(context.Context, string) (bool, error) { return r.premium, nil }
func (r *stubUserRepo) SetPremium(context.Context, string, models.PlanType, time.Time) error {
	return nil
}
func (r *stubUserRepo) SetTelegramChat(context.Context, string, int64) error { return nil }

type stubTaskRepo struct{}

func (r *stubTaskRepo) Store(context.Context, *models.Task) error { return nil }
func (r *stubTaskRepo) FindByID(context.Context, int64, string) (*models.Task, error) {
	return nil, services.ErrNotFound
}
func (r *stubTaskRepo) FindAll(context.Context, string, models.TaskFilter) ([]models.Task, error) {
	return nil, nil
}
func (r *stubTaskRepo) Update(context.Context, *models.Task) error { return nil }
func (r *stubTaskRepo) Delete(context.Context, int64, string) (int64, error) { return 0, nil }
func (r *stubTaskRepo) CountCompletedInRange(context.Context, string, string, string) (int, error) {
	return 3, nil
}
func (r *stubTaskRepo) CountDueInRange(context.Context, string, string, string) (int, error) {
	return 4, nil
}
func (r *stubTaskRepo) CompletedPerDay(context.Context, string, string, string) ([]models.TaskCompletionDay, error) {
	return nil, nil
}
func (r *stubTaskRepo) TotalsPerDueDate(context.Context, string, string) ([]models.TaskDayStat, error) {
	return []models.TaskDayStat{{Date: "2024-06-01", TotalTasks: 2, CompletedTasks: 1}}, nil
}

type stubLogRepo struct{}

func (r *stubLogRepo) Upsert(context.Context, *models.DailyLog) error { return nil }
func (r *stubLogRepo) FindByDate(context.Context, string, string) (*models.DailyLog, error) {
	return nil, nil
}
func (r *stubLogRepo) ListDatesDesc(context.Context, string, int) ([]time.Time, error) {
	return nil, nil
}
func (r *stubLogRepo) CountCalmInRange(context.Context, string, string, string) (int, error) {
	return 5, nil
}
func (r *stubLogRepo) ListWithHealth(context.Context, string, string) ([]models.DayHealth, error) {
	return nil, nil
}
func (r *stubLogRepo) MarkFlareUp(context.Context, string, string) error { return nil }
func (r *stubLogRepo) ListUsersLoggedOn(context.Context, string) ([]string, error) {
	return nil, nil
}

type stubHealthRepo struct{}

func (r *stubHealthRepo) Upsert(context.Context, *models.HealthMetric) error { return nil }
func (r *stubHealthRepo) FindByDate(context.Context, string, string) (*models.HealthMetric, error) {
	return nil, nil
}
func (r *stubHealthRepo) ListRange(context.Context, string, string, string) ([]models.HealthDay, error) {
	return nil, nil
}
func (r *stubHealthRepo) Aggregates(context.Context, string, string, string) (models.HealthAggregates, error) {
	return models.HealthAggregates{}, nil
}

type mapCache struct{ m map[string][]byte }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	return c.m[key], nil
}
func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.m[key] = value
	return nil
}
func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.m, k)
	}
	return nil
}
func (c *mapCache) DeleteByPrefix(context.Context, string) error { return nil }

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := services.NewReportService(
		&stubUserRepo{}, &stubTaskRepo{}, &stubLogRepo{}, &stubHealthRepo{},
		&mapCache{m: map[string][]byte{}},
	)
	h := NewReportHandler(svc, pdf.NewReportGenerator())

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "u1") })
	r.GET("/api/reports/stats", h.GetStats)
	r.GET("/api/reports/calendar", h.GetCalendar)
	r.GET("/api/reports/export", h.ExportPDF)
	return r
}

func TestGetStatsEndpoint(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/stats?range=30", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var report models.StatsReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	// free tier: requested 30 clamped down
	if report.RangeDays != services.FreeRangeDays {
		t.Errorf("RangeDays = %d, want %d", report.RangeDays, services.FreeRangeDays)
	}
	if report.Summary.TotalTasksCompleted != 3 || report.Summary.TasksDueInRange != 4 {
		t.Errorf("totals = %+v", report.Summary)
	}
}

func TestGetStatsEndpointRejectsBadRange(t *testing.T) {
	r := testRouter()

	for _, q := range []string{"range=0", "range=-3", "range=abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/reports/stats?"+q, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, w.Code)
		}
	}
}

func TestGetCalendarEndpoint(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/calendar", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var days map[string]models.CalendarDay
	if err := json.Unmarshal(w.Body.Bytes(), &days); err != nil {
		t.Fatal(err)
	}
	day, ok := days["2024-06-01"]
	if !ok {
		t.Fatalf("day 2024-06-01 missing: %v", days)
	}
	if day.TotalTasks != 2 || day.CompletionPercent != 50 {
		t.Errorf("day = %+v", day)
	}
}

func TestExportPDFEndpoint(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/export", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if body := w.Body.Bytes(); len(body) < 4 || string(body[:4]) != "%PDF" {
		t.Errorf("body does not look like a pdf (%d bytes)", w.Body.Len())
	}
}
