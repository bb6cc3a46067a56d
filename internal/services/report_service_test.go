package services

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"pace/internal/models"
)

// --- fakes ---

type fakeCache struct {
	m    map[string][]byte
	gets int
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{m: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.gets++
	b, ok := c.m[key]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.sets++
	c.m[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.m, k)
	}
	return nil
}

func (c *fakeCache) DeleteByPrefix(_ context.Context, prefix string) error {
	for k := range c.m {
		if strings.HasPrefix(k, prefix) {
			delete(c.m, k)
		}
	}
	return nil
}

type fakeUserRepo struct {
	premium map[string]bool
	calls   int
}

func (r *fakeUserRepo) EnsureExists(context.Context, string, string) error { return nil }
func (r *fakeUserRepo) FindByID(context.Context, string) (*models.User, error) {
	return nil, errors.New("not implemented")
}
func (r *fakeUserRepo) IsPremium(_ context.Context, id string) (bool, error) {
	r.calls++
	return r.premium[id], nil
}
func (r *fakeUserRepo) SetPremium(context.Context, string, models.PlanType, time.Time) error {
	return nil
}
func (r *fakeUserRepo) SetTelegramChat(context.Context, string, int64) error { return nil }

type fakeTaskRepo struct {
	completed int
	due       int
	perDay    []models.TaskCompletionDay
	dueTotals []models.TaskDayStat
	lastSince string
	fetches   int
	failFetch error
}

func (r *fakeTaskRepo) Store(context.Context, *models.Task) error { return nil }
func (r *fakeTaskRepo) FindByID(context.Context, int64, string) (*models.Task, error) {
	return nil, errors.New("not implemented")
}
func (r *fakeTaskRepo) FindAll(context.Context, string, models.TaskFilter) ([]models.Task, error) {
	return nil, nil
}
func (r *fakeTaskRepo) Update(context.Context, *models.Task) error { return nil }
func (r *fakeTaskRepo) Delete(context.Context, int64, string) (int64, error) {
	return 0, nil
}
func (r *fakeTaskRepo) CountCompletedInRange(context.Context, string, string, string) (int, error) {
	r.fetches++
	return r.completed, r.failFetch
}
func (r *fakeTaskRepo) CountDueInRange(context.Context, string, string, string) (int, error) {
	r.fetches++
	return r.due, r.failFetch
}
func (r *fakeTaskRepo) CompletedPerDay(context.Context, string, string, string) ([]models.TaskCompletionDay, error) {
	r.fetches++
	return r.perDay, r.failFetch
}
func (r *fakeTaskRepo) TotalsPerDueDate(_ context.Context, _ string, since string) ([]models.TaskDayStat, error) {
	r.fetches++
	r.lastSince = since
	return r.dueTotals, r.failFetch
}

type fakeLogRepo struct {
	dates     []time.Time
	calm      int
	dayRows   []models.DayHealth
	lastSince string
}

func (r *fakeLogRepo) Upsert(context.Context, *models.DailyLog) error { return nil }
func (r *fakeLogRepo) FindByDate(context.Context, string, string) (*models.DailyLog, error) {
	return nil, nil
}
func (r *fakeLogRepo) ListDatesDesc(context.Context, string, int) ([]time.Time, error) {
	return r.dates, nil
}
func (r *fakeLogRepo) CountCalmInRange(context.Context, string, string, string) (int, error) {
	return r.calm, nil
}
func (r *fakeLogRepo) ListWithHealth(_ context.Context, _ string, since string) ([]models.DayHealth, error) {
	r.lastSince = since
	return r.dayRows, nil
}
func (r *fakeLogRepo) MarkFlareUp(context.Context, string, string) error { return nil }
func (r *fakeLogRepo) ListUsersLoggedOn(context.Context, string) ([]string, error) {
	return nil, nil
}

type fakeHealthRepo struct {
	rows []models.HealthDay
	agg  models.HealthAggregates
}

func (r *fakeHealthRepo) Upsert(context.Context, *models.HealthMetric) error { return nil }
func (r *fakeHealthRepo) FindByDate(context.Context, string, string) (*models.HealthMetric, error) {
	return nil, nil
}
func (r *fakeHealthRepo) ListRange(context.Context, string, string, string) ([]models.HealthDay, error) {
	return r.rows, nil
}
func (r *fakeHealthRepo) Aggregates(context.Context, string, string, string) (models.HealthAggregates, error) {
	return r.agg, nil
}

func testService() (*ReportService, *fakeUserRepo, *fakeTaskRepo, *fakeLogRepo, *fakeHealthRepo, *fakeCache) {
	users := &fakeUserRepo{premium: map[string]bool{}}
	tasks := &fakeTaskRepo{}
	logs := &fakeLogRepo{}
	health := &fakeHealthRepo{}
	store := newFakeCache()
	svc := NewReportService(users, tasks, logs, health, store)
	svc.now = func() time.Time { return time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC) }
	return svc, users, tasks, logs, health, store
}

// --- tests ---

func TestGetSummaryRejectsInvalidRange(t *testing.T) {
	svc, users, tasks, _, _, store := testService()

	_, err := svc.GetSummary(context.Background(), "u1", -5)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
	// Rejected before any store access.
	if users.calls != 0 || tasks.fetches != 0 || store.gets != 0 {
		t.Errorf("stores touched on invalid range: users=%d tasks=%d cache=%d",
			users.calls, tasks.fetches, store.gets)
	}
}

func TestGetSummaryClampsFreeTier(t *testing.T) {
	svc, _, _, _, _, _ := testService()

	report, err := svc.GetSummary(context.Background(), "free-user", 30)
	if err != nil {
		t.Fatal(err)
	}
	if report.RangeDays != FreeRangeDays {
		t.Errorf("RangeDays = %d, want clamped %d", report.RangeDays, FreeRangeDays)
	}
}

func TestGetSummaryPremiumKeepsRange(t *testing.T) {
	svc, users, _, _, _, _ := testService()
	users.premium["pro"] = true

	report, err := svc.GetSummary(context.Background(), "pro", 90)
	if err != nil {
		t.Fatal(err)
	}
	if report.RangeDays != 90 {
		t.Errorf("RangeDays = %d, want 90", report.RangeDays)
	}
}

func TestGetSummaryNumbers(t *testing.T) {
	svc, _, tasks, logs, health, _ := testService()
	tasks.completed = 3
	tasks.due = 4
	tasks.perDay = []models.TaskCompletionDay{{Date: "2024-06-02", Count: 2}, {Date: "2024-06-03", Count: 1}}
	logs.calm = 5
	logs.dates = []time.Time{
		time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	health.agg = models.HealthAggregates{HighSeverityDays: 1, AvgPainLevel: 3.5, AvgFatigueLevel: 4.25}
	health.rows = []models.HealthDay{{Date: "2024-06-03", PainLevel: 4, FatigueLevel: 5}}

	report, err := svc.GetSummary(context.Background(), "u1", 7)
	if err != nil {
		t.Fatal(err)
	}

	sum := report.Summary
	if sum.TotalTasksCompleted != 3 || sum.TasksDueInRange != 4 {
		t.Errorf("tasks = %d/%d, want 3/4", sum.TotalTasksCompleted, sum.TasksDueInRange)
	}
	if sum.CompletionRate != 0.75 {
		t.Errorf("CompletionRate = %v, want 0.75", sum.CompletionRate)
	}
	if sum.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", sum.CurrentStreak)
	}
	if sum.CalmDays != 5 || sum.HighSeverityDays != 1 {
		t.Errorf("days = calm %d / severe %d, want 5/1", sum.CalmDays, sum.HighSeverityDays)
	}
	if len(report.History.Health) != 1 || len(report.History.Tasks) != 2 {
		t.Errorf("history sizes = %d/%d, want 1/2", len(report.History.Health), len(report.History.Tasks))
	}
}

func TestGetSummaryZeroTotalMeansZeroRate(t *testing.T) {
	svc, _, _, _, _, _ := testService()

	report, err := svc.GetSummary(context.Background(), "u1", 7)
	if err != nil {
		t.Fatal(err)
	}
	if report.Summary.CompletionRate != 0 {
		t.Errorf("CompletionRate = %v, want 0", report.Summary.CompletionRate)
	}
}

func TestGetSummaryServedFromCache(t *testing.T) {
	svc, _, tasks, _, _, store := testService()
	tasks.completed = 2
	tasks.due = 2

	first, err := svc.GetSummary(context.Background(), "u1", 7)
	if err != nil {
		t.Fatal(err)
	}
	fetchesAfterFirst := tasks.fetches

	second, err := svc.GetSummary(context.Background(), "u1", 7)
	if err != nil {
		t.Fatal(err)
	}

	if tasks.fetches != fetchesAfterFirst {
		t.Errorf("second call hit the fact store (%d -> %d fetches)", fetchesAfterFirst, tasks.fetches)
	}
	if store.sets != 1 {
		t.Errorf("cache sets = %d, want 1", store.sets)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached report differs from the computed one")
	}
}

func TestGetSummaryIgnoresForeignSchema(t *testing.T) {
	svc, _, _, _, _, store := testService()

	stale := models.StatsReport{SchemaVersion: models.StatsSchemaVersion - 1, RangeDays: 7}
	b, _ := json.Marshal(stale)
	store.m[statsKey("u1", 7)] = b

	report, err := svc.GetSummary(context.Background(), "u1", 7)
	if err != nil {
		t.Fatal(err)
	}
	if report.SchemaVersion != models.StatsSchemaVersion {
		t.Errorf("served schema %d, want rebuild at %d", report.SchemaVersion, models.StatsSchemaVersion)
	}
}

func TestGetSummaryCancelledRequestNeverCaches(t *testing.T) {
	svc, _, _, _, _, store := testService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The fakes do not observe ctx, so the computation itself succeeds;
	// what matters is that nothing lands in the cache.
	_, _ = svc.GetSummary(ctx, "u1", 7)
	if store.sets != 0 {
		t.Errorf("cancelled request wrote %d cache entries", store.sets)
	}
}

func TestGetCalendarRetentionGating(t *testing.T) {
	svc, users, tasks, logs, _, _ := testService()

	if _, err := svc.GetCalendar(context.Background(), "free-user"); err != nil {
		t.Fatal(err)
	}
	wantSince := "2024-04-04" // 60 days back from 2024-06-03
	if logs.lastSince != wantSince || tasks.lastSince != wantSince {
		t.Errorf("free-tier since = (%q, %q), want %q", logs.lastSince, tasks.lastSince, wantSince)
	}

	users.premium["pro"] = true
	if _, err := svc.GetCalendar(context.Background(), "pro"); err != nil {
		t.Fatal(err)
	}
	if logs.lastSince != "" || tasks.lastSince != "" {
		t.Errorf("premium since = (%q, %q), want full history", logs.lastSince, tasks.lastSince)
	}
}

func TestGetCalendarMergesSources(t *testing.T) {
	svc, _, tasks, logs, _, _ := testService()
	ft := models.DayTypeFlareUp
	pain := 8
	logs.dayRows = []models.DayHealth{{Date: "2024-06-01", DayType: &ft, PainLevel: &pain}}
	tasks.dueTotals = []models.TaskDayStat{
		{Date: "2024-06-01", TotalTasks: 2, CompletedTasks: 1},
		{Date: "2024-06-02", TotalTasks: 1, CompletedTasks: 1},
	}

	view, err := svc.GetCalendar(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Days) != 2 {
		t.Fatalf("calendar has %d days, want 2", len(view.Days))
	}
	if d := view.Days["2024-06-01"]; d.CompletionPercent != 50 || d.DayType == nil {
		t.Errorf("2024-06-01 = %+v, want 50%% FLARE_UP", d)
	}
	if d := view.Days["2024-06-02"]; d.CompletionPercent != 100 || d.DayType != nil {
		t.Errorf("2024-06-02 = %+v, want 100%% with nil day_type", d)
	}
}

func TestInvalidateOwnerCaches(t *testing.T) {
	svc, _, _, _, _, store := testService()

	ctx := context.Background()
	if _, err := svc.GetSummary(ctx, "u1", 7); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetSummary(ctx, "u1", 3); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetCalendar(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetCalendar(ctx, "u2"); err != nil {
		t.Fatal(err)
	}
	if len(store.m) != 4 {
		t.Fatalf("cache has %d entries, want 4", len(store.m))
	}

	if err := svc.InvalidateOwnerCaches(ctx, "u1", ScopeAll); err != nil {
		t.Fatal(err)
	}

	// Both of u1's summaries and its calendar are gone; u2 untouched.
	if len(store.m) != 1 {
		t.Errorf("cache has %d entries after invalidation, want 1", len(store.m))
	}
	if _, ok := store.m[calendarKey("u2")]; !ok {
		t.Error("another owner's calendar was dropped")
	}
}

func TestInvalidateScopeCalendarKeepsSummaries(t *testing.T) {
	svc, _, _, _, _, store := testService()

	ctx := context.Background()
	if _, err := svc.GetSummary(ctx, "u1", 7); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetCalendar(ctx, "u1"); err != nil {
		t.Fatal(err)
	}

	if err := svc.InvalidateOwnerCaches(ctx, "u1", ScopeCalendar); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.m[statsKey("u1", 7)]; !ok {
		t.Error("summary dropped by calendar-scoped invalidation")
	}
	if _, ok := store.m[calendarKey("u1")]; ok {
		t.Error("calendar survived its own invalidation")
	}
}

func TestGetSummaryFetchFailureAborts(t *testing.T) {
	svc, _, tasks, _, _, store := testService()
	tasks.failFetch = errors.New("connection refused")

	_, err := svc.GetSummary(context.Background(), "u1", 7)
	if err == nil {
		t.Fatal("expected an error")
	}
	if store.sets != 0 {
		t.Errorf("failed aggregation wrote %d cache entries", store.sets)
	}
}
