package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"lexschedule-backend/store"
)

// reminderWindow is how far ahead an appointment may be for the 24-hour
// reminder to fire.
const reminderWindow = 24 * time.Hour

// ReminderService scans the appointment collection on a fixed cadence and
// fires an at-most-once reminder for every active appointment entering the
// next-24-hours window. Polling is deliberate: it survives restarts and needs
// no per-record timer bookkeeping, at the cost of up to one interval of drift.
type ReminderService struct {
	store    *store.Store
	notifier Notifier
	cron     *cron.Cron
	now      func() time.Time
}

func NewReminderService(st *store.Store, notifier Notifier) *ReminderService {
	return &ReminderService{
		store:    st,
		notifier: notifier,
		now:      time.Now,
	}
}

// StartScheduler runs one immediate check and then re-evaluates every
// 5 minutes.
func (s *ReminderService) StartScheduler() {
	s.cron = cron.New()
	s.cron.AddFunc("*/5 * * * *", s.CheckReminders)

	s.CheckReminders()

	s.cron.Start()
	log.Println("Reminder scheduler started")
}

// Stop cancels the recurring check.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// CheckReminders performs one evaluation pass. It is a no-op while the
// user-level toggle is off or no delivery channel is ready; in both cases
// nothing is marked notified, so enabling later still catches pending
// reminders.
func (s *ReminderService) CheckReminders() {
	if !s.store.NotificationsEnabled() {
		return
	}
	if s.notifier == nil || !s.notifier.Ready() {
		log.Println("Reminder check skipped: no notification channel ready")
		return
	}

	now := s.now()
	horizon := now.Add(reminderWindow)

	notified := make(map[uuid.UUID]bool)
	for _, id := range s.store.LoadNotifiedIDs() {
		notified[id] = true
	}

	var delivered []uuid.UUID
	for _, appt := range s.store.LoadAppointments() {
		if appt.Archived || notified[appt.ID] {
			continue
		}
		// Eligible iff scheduled strictly after now and no later than now+24h.
		if !appt.Date.After(now) || appt.Date.After(horizon) {
			continue
		}

		n := Notification{
			Tag:    appt.ID,
			Title:  "تذكير: جلسة " + appt.ClientName,
			Body:   fmt.Sprintf("موعد الجلسة غداً: %s - الساعة %s", appt.CaseType.Label(), appt.Date.Format("15:04")),
			SentAt: now,
		}
		if err := s.notifier.Notify(n); err != nil {
			// Not marked notified, so the next pass retries.
			log.Printf("Failed to deliver reminder for %s: %v", appt.ID, err)
			continue
		}
		delivered = append(delivered, appt.ID)
	}

	if len(delivered) > 0 {
		if err := s.store.MarkNotified(delivered...); err != nil {
			log.Printf("Failed to persist notified ids: %v", err)
		}
	}
}
