package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Jevon1999/api-presensi/internal/config"
	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
	"github.com/Jevon1999/api-presensi/internal/domain/member"
	"github.com/Jevon1999/api-presensi/internal/fixtures"
	"github.com/Jevon1999/api-presensi/internal/pkg/phone"
)

// Notifier delivers one rendered template to a chat.
type Notifier interface {
	Notify(ctx context.Context, chatID, key string, data map[string]string) error
}

// ReminderJobs nudges members who have not checked in or out yet. Each
// reminder goes out at most once per local day.
type ReminderJobs struct {
	memberRepo     member.MemberRepository
	attendanceRepo attendance.AttendanceRepository
	notifier       Notifier
	bot            config.BotConfigStore
	location       *time.Location
	now            func() time.Time

	mu   sync.Mutex
	sent map[string]string // template key -> last local date sent
}

func NewReminderJobs(
	memberRepo member.MemberRepository,
	attendanceRepo attendance.AttendanceRepository,
	notifier Notifier,
	bot config.BotConfigStore,
	location *time.Location,
	now func() time.Time,
) *ReminderJobs {
	if now == nil {
		now = time.Now
	}
	return &ReminderJobs{
		memberRepo:     memberRepo,
		attendanceRepo: attendanceRepo,
		notifier:       notifier,
		bot:            bot,
		location:       location,
		now:            now,
		sent:           make(map[string]string),
	}
}

func (j *ReminderJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("remind_check_in", time.Minute, j.RemindCheckIn)
	scheduler.AddJob("remind_check_out", time.Minute, j.RemindCheckOut)
}

// RemindCheckIn messages active members without a check-in today.
func (j *ReminderJobs) RemindCheckIn(ctx context.Context) error {
	cfg := j.bot.Current()
	return j.run(ctx, fixtures.MsgRemindCheckIn, cfg.ReminderEnabled, cfg.ReminderCheckIn, func(rec *attendance.Attendance) bool {
		return rec == nil || !rec.HasCheckedIn()
	})
}

// RemindCheckOut messages members who checked in but not out today.
func (j *ReminderJobs) RemindCheckOut(ctx context.Context) error {
	cfg := j.bot.Current()
	return j.run(ctx, fixtures.MsgRemindCheckOut, cfg.ReminderEnabled, cfg.ReminderCheckOut, func(rec *attendance.Attendance) bool {
		return rec != nil && rec.HasCheckedIn() && !rec.HasCheckedOut()
	})
}

func (j *ReminderJobs) run(ctx context.Context, key string, enabled bool, at string, needs func(*attendance.Attendance) bool) error {
	if !enabled {
		return nil
	}
	due, err := attendance.ParseTimeOfDay(at)
	if err != nil {
		return fmt.Errorf("invalid reminder time %q: %w", at, err)
	}

	now := j.now().In(j.location)
	if attendance.TimeOfDayOf(now) < due {
		return nil
	}
	today := attendance.DateOf(now)
	date := today.Format("2006-01-02")
	if !j.claim(key, date) {
		return nil
	}

	// a failed read leaves the day unclaimed so the next tick retries
	members, err := j.memberRepo.ListActive(ctx)
	if err != nil {
		j.release(key, date)
		return fmt.Errorf("failed to list active members: %w", err)
	}
	records, err := j.attendanceRepo.ListByDate(ctx, today)
	if err != nil {
		j.release(key, date)
		return fmt.Errorf("failed to list attendances: %w", err)
	}
	byMember := make(map[string]*attendance.Attendance, len(records))
	for i := range records {
		byMember[records[i].MemberID] = &records[i]
	}

	sent, failed := 0, 0
	for _, m := range members {
		if !needs(byMember[m.ID]) {
			continue
		}
		data := map[string]string{"name": m.Name, "office": m.OfficeName}
		if err := j.notifier.Notify(ctx, phone.ChatID(m.Phone), key, data); err != nil {
			failed++
			slog.Warn("failed to send reminder", "reminder", key, "member_id", m.ID, "error", err)
			continue
		}
		sent++
	}

	slog.Info("reminders sent", "reminder", key, "sent", sent, "failed", failed)
	return nil
}

// claim marks key as sent for date and reports whether this call won.
func (j *ReminderJobs) claim(key, date string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.sent[key] == date {
		return false
	}
	j.sent[key] = date
	return true
}

func (j *ReminderJobs) release(key, date string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.sent[key] == date {
		delete(j.sent, key)
	}
}
