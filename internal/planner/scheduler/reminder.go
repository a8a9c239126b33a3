package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"voxplan-backend/internal/planner/domain"
	"voxplan-backend/internal/planner/repository"
	"voxplan-backend/pkg/fcm"

	authdomain "voxplan-backend/internal/auth/domain"
	authrepo "voxplan-backend/internal/auth/repository"

	"github.com/samber/lo"
)

// ReminderScheduler pushes FCM notifications for task reminders captured
// from voice input. Reminder times are free-form model output; anything
// that cannot be parsed is skipped rather than guessed at.
type ReminderScheduler struct {
	planRepo     repository.PlanRepository
	reminderRepo repository.ReminderRepository
	fcmRepo      authrepo.FCMTokenRepository
	fcmClient    *fcm.Client
	interval     time.Duration
	stopChan     chan struct{}
}

func NewReminderScheduler(
	planRepo repository.PlanRepository,
	reminderRepo repository.ReminderRepository,
	fcmRepo authrepo.FCMTokenRepository,
	fcmClient *fcm.Client,
) *ReminderScheduler {
	return &ReminderScheduler{
		planRepo:     planRepo,
		reminderRepo: reminderRepo,
		fcmRepo:      fcmRepo,
		fcmClient:    fcmClient,
		interval:     1 * time.Minute,
		stopChan:     make(chan struct{}),
	}
}

// Start begins the scheduler loop.
func (s *ReminderScheduler) Start() {
	if s.fcmClient == nil {
		log.Println("[ReminderScheduler] FCM client not available, scheduler disabled")
		return
	}

	log.Println("[ReminderScheduler] Starting reminder scheduler (interval: 1 minute)")

	go func() {
		s.checkAndSendReminders()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.checkAndSendReminders()
			case <-s.stopChan:
				log.Println("[ReminderScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *ReminderScheduler) Stop() {
	close(s.stopChan)
}

// checkAndSendReminders scans stored plans for tasks whose reminder time
// has passed and pushes each reminder exactly once.
func (s *ReminderScheduler) checkAndSendReminders() {
	now := time.Now()

	plans, err := s.planRepo.FindAll()
	if err != nil {
		log.Printf("[ReminderScheduler] Error loading plans: %v", err)
		return
	}

	for _, plan := range plans {
		for _, category := range plan.Categories {
			for _, task := range category.Tasks {
				if task.Reminder == nil || task.Status == domain.StatusDone {
					continue
				}

				due, ok := parseReminderTime(task.Reminder.Time, now)
				if !ok || due.After(now) {
					continue
				}

				sent, err := s.reminderRepo.WasSent(task.ID)
				if err != nil {
					log.Printf("[ReminderScheduler] Error checking dispatch record for task %s: %v", task.ID, err)
					continue
				}
				if sent {
					continue
				}

				s.sendReminder(plan, task)
			}
		}
	}
}

func (s *ReminderScheduler) sendReminder(plan *domain.StoredPlan, task domain.Task) {
	tokens, err := s.fcmRepo.GetTokensByUserID(plan.UserID)
	if err != nil {
		log.Printf("[ReminderScheduler] Error getting FCM tokens for user %s: %v", plan.UserID, err)
		return
	}

	if len(tokens) == 0 {
		log.Printf("[ReminderScheduler] No FCM tokens for user %s, marking reminder as sent", plan.UserID)
		s.reminderRepo.MarkSent(task.ID, plan.ID, time.Now())
		return
	}

	title := task.Description
	if task.Emoji != "" {
		title = task.Emoji + " " + title
	}
	body := task.Reminder.Question
	if body == "" {
		body = fmt.Sprintf("Reminder: %s", task.Description)
	}

	tokenStrings := lo.Map(tokens, func(t authdomain.FCMToken, _ int) string {
		return t.Token
	})

	notification := fcm.NotificationData{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":         "task_reminder",
			"task_id":      task.ID,
			"plan_id":      plan.ID,
			"click_action": "/plans/" + plan.ID,
		},
	}

	failedTokens, err := s.fcmClient.SendToDevices(context.Background(), tokenStrings, notification)
	if err != nil {
		log.Printf("[ReminderScheduler] Error sending reminder for task %s: %v", task.ID, err)
	} else {
		log.Printf("[ReminderScheduler] Sent reminder for task %q to %d devices", task.Description, len(tokenStrings)-len(failedTokens))
	}

	for _, token := range failedTokens {
		s.fcmRepo.DeleteToken(token)
	}

	// Mark as sent regardless of delivery outcome to avoid spamming.
	if err := s.reminderRepo.MarkSent(task.ID, plan.ID, time.Now()); err != nil {
		log.Printf("[ReminderScheduler] Error marking reminder as sent for task %s: %v", task.ID, err)
	}
}

// reminderTimeLayouts are tried in order against the model's reminder time
// string. Clock-only layouts resolve to the nearest occurrence.
var reminderTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

var reminderClockLayouts = []string{
	"15:04",
	"3:04 PM",
	"3 PM",
	"3PM",
}

// parseReminderTime interprets a spoken reminder time relative to now.
// "tomorrow at 8 AM" and similar prefixed phrases shift the clock time by a
// day; a bare clock time means the next occurrence of that time.
func parseReminderTime(raw string, now time.Time) (time.Time, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range reminderTimeLayouts {
		if t, err := time.ParseInLocation(layout, text, now.Location()); err == nil {
			return t, true
		}
	}

	dayOffset := 0
	lower := strings.ToLower(text)
	if rest, ok := strings.CutPrefix(lower, "tomorrow"); ok {
		dayOffset = 1
		lower = rest
	} else if rest, ok := strings.CutPrefix(lower, "today"); ok {
		lower = rest
	}
	lower = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lower), "at "))
	if lower == "" {
		return time.Time{}, false
	}

	for _, layout := range reminderClockLayouts {
		clock, err := time.Parse(layout, strings.ToUpper(lower))
		if err != nil {
			continue
		}
		candidate := time.Date(now.Year(), now.Month(), now.Day()+dayOffset,
			clock.Hour(), clock.Minute(), 0, 0, now.Location())
		if dayOffset == 0 && candidate.Before(now.Add(-12*time.Hour)) {
			// A bare clock time far in the past means the next day.
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate, true
	}

	return time.Time{}, false
}
