// internal/services/report_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"pace/internal/analytics"
	"pace/internal/cache"
	"pace/internal/models"
	"pace/internal/repositories"
)

const (
	// Free-tier ceilings. Premium owners are unbounded.
	FreeRangeDays    = 7
	FreeCalendarDays = 60

	// Streak correctness only needs the lookback to exceed any
	// realistic streak length.
	streakLookback = 365

	summaryTTL   = 10 * time.Minute
	calendarTTL  = 5 * time.Minute
	fetchTimeout = 10 * time.Second
)

// InvalidationScope identifies which derived artifacts a fact write
// touched.
type InvalidationScope string

const (
	ScopeSummary  InvalidationScope = "summary"
	ScopeCalendar InvalidationScope = "calendar"
	ScopeAll      InvalidationScope = "all"
)

// ReportService is the aggregator: it gates by subscription tier, pulls
// raw facts, runs the streak and calendar computations and owns the
// cache for its derived artifacts.
type ReportService struct {
	users  repositories.UserRepository
	tasks  repositories.TaskRepository
	logs   repositories.DailyLogRepository
	health repositories.HealthMetricRepository
	cache  cache.Store

	now func() time.Time // подменяется в тестах
}

func NewReportService(
	users repositories.UserRepository,
	tasks repositories.TaskRepository,
	logs repositories.DailyLogRepository,
	health repositories.HealthMetricRepository,
	store cache.Store,
) *ReportService {
	return &ReportService{
		users:  users,
		tasks:  tasks,
		logs:   logs,
		health: health,
		cache:  store,
		now:    time.Now,
	}
}

func statsKey(userID string, rangeDays int) string {
	return fmt.Sprintf("stats:v%d:%s:%d", models.StatsSchemaVersion, userID, rangeDays)
}

func statsKeyPrefix(userID string) string {
	return fmt.Sprintf("stats:v%d:%s:", models.StatsSchemaVersion, userID)
}

func calendarKey(userID string) string {
	return fmt.Sprintf("calendar:v%d:%s", models.CalendarSchemaVersion, userID)
}

// GetSummary builds (or serves from cache) the range-scoped stats
// report. Non-premium owners asking for more than the free ceiling are
// silently clamped to it; the response reflects the effective range.
func (s *ReportService) GetSummary(ctx context.Context, userID string, rangeDays int) (*models.StatsReport, error) {
	if rangeDays <= 0 {
		return nil, ErrInvalidRange
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	premium, err := s.users.IsPremium(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve tier: %w", err)
	}
	effective := rangeDays
	if !premium && effective > FreeRangeDays {
		effective = FreeRangeDays
	}

	key := statsKey(userID, effective)
	cached, err := s.cachedStats(ctx, key)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	today := analytics.DateOnly(s.now())
	from := today.AddDate(0, 0, -(effective - 1)).Format("2006-01-02")
	to := today.Format("2006-01-02")

	var (
		healthRows []models.HealthDay
		taskDays   []models.TaskCompletionDay
		agg        models.HealthAggregates
		completed  int
		dueInRange int
		calmDays   int
		logDates   []time.Time
	)

	// Independent sub-fetches; the streak snapshot comes from one query.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		healthRows, err = s.health.ListRange(gctx, userID, from, to)
		return
	})
	g.Go(func() (err error) {
		taskDays, err = s.tasks.CompletedPerDay(gctx, userID, from, to)
		return
	})
	g.Go(func() (err error) {
		agg, err = s.health.Aggregates(gctx, userID, from, to)
		return
	})
	g.Go(func() (err error) {
		completed, err = s.tasks.CountCompletedInRange(gctx, userID, from, to)
		return
	})
	g.Go(func() (err error) {
		dueInRange, err = s.tasks.CountDueInRange(gctx, userID, from, to)
		return
	})
	g.Go(func() (err error) {
		calmDays, err = s.logs.CountCalmInRange(gctx, userID, from, to)
		return
	})
	g.Go(func() (err error) {
		// Streak is range-independent: full (capped) history.
		logDates, err = s.logs.ListDatesDesc(gctx, userID, streakLookback)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate summary: %w", err)
	}

	completionRate := 0.0
	if dueInRange > 0 {
		completionRate = float64(completed) / float64(dueInRange)
	}

	report := &models.StatsReport{
		SchemaVersion: models.StatsSchemaVersion,
		RangeDays:     effective,
		Summary: models.SummaryTotals{
			TotalTasksCompleted: completed,
			TasksDueInRange:     dueInRange,
			CompletionRate:      completionRate,
			CalmDays:            calmDays,
			HighSeverityDays:    agg.HighSeverityDays,
			AvgPainLevel:        agg.AvgPainLevel,
			AvgFatigueLevel:     agg.AvgFatigueLevel,
			CurrentStreak:       analytics.Streak(logDates, today),
		},
		History: models.StatsHistory{
			Health: healthRows,
			Tasks:  taskDays,
		},
	}

	if err := s.storeArtifact(ctx, key, report, summaryTTL); err != nil {
		return nil, err
	}
	return report, nil
}

// GetCalendar builds (or serves from cache) the heat-map calendar.
// Non-premium owners see only the trailing retention window.
func (s *ReportService) GetCalendar(ctx context.Context, userID string) (*models.CalendarView, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	premium, err := s.users.IsPremium(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve tier: %w", err)
	}

	key := calendarKey(userID)
	cached, err := s.cachedCalendar(ctx, key)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	since := ""
	if !premium {
		since = analytics.DateOnly(s.now()).AddDate(0, 0, -FreeCalendarDays).Format("2006-01-02")
	}

	var (
		dayRows  []models.DayHealth
		taskRows []models.TaskDayStat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dayRows, err = s.logs.ListWithHealth(gctx, userID, since)
		return
	})
	g.Go(func() (err error) {
		taskRows, err = s.tasks.TotalsPerDueDate(gctx, userID, since)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate calendar: %w", err)
	}

	view := &models.CalendarView{
		SchemaVersion: models.CalendarSchemaVersion,
		Days:          analytics.MergeCalendar(dayRows, taskRows),
	}

	if err := s.storeArtifact(ctx, key, view, calendarTTL); err != nil {
		return nil, err
	}
	return view, nil
}

// InvalidateOwnerCaches drops the owner's derived artifacts. Callers
// must commit the fact write first and invalidate after; the reverse
// order reopens the stale-cache window.
func (s *ReportService) InvalidateOwnerCaches(ctx context.Context, userID string, scope InvalidationScope) error {
	if scope == ScopeSummary || scope == ScopeAll {
		if err := s.cache.DeleteByPrefix(ctx, statsKeyPrefix(userID)); err != nil {
			return fmt.Errorf("invalidate summary: %w", err)
		}
	}
	if scope == ScopeCalendar || scope == ScopeAll {
		if err := s.cache.Delete(ctx, calendarKey(userID)); err != nil {
			return fmt.Errorf("invalidate calendar: %w", err)
		}
	}
	return nil
}

func (s *ReportService) cachedStats(ctx context.Context, key string) (*models.StatsReport, error) {
	b, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	if b == nil {
		return nil, nil
	}
	var report models.StatsReport
	if err := json.Unmarshal(b, &report); err != nil || report.SchemaVersion != models.StatsSchemaVersion {
		// чужая схема или битый payload — промах, не ошибка
		log.Printf("[report][cache] stale entry %s, rebuilding", key)
		return nil, nil
	}
	return &report, nil
}

func (s *ReportService) cachedCalendar(ctx context.Context, key string) (*models.CalendarView, error) {
	b, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	if b == nil {
		return nil, nil
	}
	var view models.CalendarView
	if err := json.Unmarshal(b, &view); err != nil || view.SchemaVersion != models.CalendarSchemaVersion {
		log.Printf("[report][cache] stale entry %s, rebuilding", key)
		return nil, nil
	}
	return &view, nil
}

// storeArtifact writes a freshly computed artifact unless the request
// was cancelled: a cancelled computation must never populate the cache.
func (s *ReportService) storeArtifact(ctx context.Context, key string, artifact any, ttl time.Duration) error {
	if ctx.Err() != nil {
		return nil
	}
	b, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("marshal artifact %s: %w", key, err)
	}
	if err := s.cache.Set(ctx, key, b, ttl); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
