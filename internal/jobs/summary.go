// internal/jobs/summary.go
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"pace/internal/analytics"
	"pace/internal/repositories"
	"pace/internal/services"
)

const queueSize = 256

// SummaryDispatcher delivers the end-of-day recap: current streak plus
// today's completed tasks, over telegram when the user linked the bot,
// otherwise by email. Jobs flow through a buffered channel drained by a
// single worker; the nightly cron enqueues every user who logged today.
type SummaryDispatcher struct {
	users    repositories.UserRepository
	logs     repositories.DailyLogRepository
	tasks    repositories.TaskRepository
	email    services.EmailService
	telegram *services.TelegramService

	queue chan string
	cron  *cron.Cron
}

func NewSummaryDispatcher(
	users repositories.UserRepository,
	logs repositories.DailyLogRepository,
	tasks repositories.TaskRepository,
	email services.EmailService,
	telegram *services.TelegramService,
) *SummaryDispatcher {
	return &SummaryDispatcher{
		users:    users,
		logs:     logs,
		tasks:    tasks,
		email:    email,
		telegram: telegram,
		queue:    make(chan string, queueSize),
		cron:     cron.New(),
	}
}

// Start launches the worker and schedules the nightly fan-out.
// spec is a standard 5-field cron expression, e.g. "0 20 * * *".
func (d *SummaryDispatcher) Start(spec string) error {
	go d.worker()

	if _, err := d.cron.AddFunc(spec, d.enqueueAll); err != nil {
		return fmt.Errorf("schedule daily summary: %w", err)
	}
	d.cron.Start()
	log.Printf("[jobs] daily summary scheduled at %q", spec)
	return nil
}

func (d *SummaryDispatcher) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
	close(d.queue)
}

// Enqueue adds a one-off dispatch; false means the queue is saturated.
func (d *SummaryDispatcher) Enqueue(userID string) bool {
	select {
	case d.queue <- userID:
		return true
	default:
		return false
	}
}

func (d *SummaryDispatcher) enqueueAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := time.Now().Format("2006-01-02")
	ids, err := d.logs.ListUsersLoggedOn(ctx, today)
	if err != nil {
		log.Printf("[jobs][fanout][err] %v", err)
		return
	}
	for _, id := range ids {
		if !d.Enqueue(id) {
			log.Printf("[jobs][fanout] queue full, dropped user=%s", id)
		}
	}
	log.Printf("[jobs][fanout] enqueued %d users", len(ids))
}

func (d *SummaryDispatcher) worker() {
	for userID := range d.queue {
		if err := d.send(userID); err != nil {
			log.Printf("[jobs][summary][err] user=%s: %v", userID, err)
			continue
		}
		log.Printf("[jobs][summary][ok] user=%s", userID)
	}
}

func (d *SummaryDispatcher) send(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := d.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	today := analytics.DateOnly(time.Now())
	dates, err := d.logs.ListDatesDesc(ctx, userID, 365)
	if err != nil {
		return err
	}
	streak := analytics.Streak(dates, today)

	day := today.Format("2006-01-02")
	completed, err := d.tasks.CountCompletedInRange(ctx, userID, day, day)
	if err != nil {
		return err
	}

	if user.TelegramChatID != nil {
		text := fmt.Sprintf("Итоги дня\nЗадач выполнено: <b>%d</b>\nСтрик: <b>%d</b> дн.", completed, streak)
		return d.telegram.SendMessage(*user.TelegramChatID, text)
	}
	return d.email.SendDailySummary(user.Email, streak, completed)
}
