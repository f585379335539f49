package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/infrastructures"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/pkg/money"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderService is an independent consumer of the job collection. It runs
// on a fixed daily trigger, never touches the billing core, and a failed
// delivery is logged rather than retried.
type ReminderService struct {
	db       *gorm.DB
	telegram *infrastructures.TelegramClient
	redis    *redis.Client
}

func NewReminderService(db *gorm.DB, telegram *infrastructures.TelegramClient, redisClient *redis.Client) *ReminderService {
	return &ReminderService{
		db:       db,
		telegram: telegram,
		redis:    redisClient,
	}
}

// FormatReminderMessage renders the daily notification text for the
// assigned-but-unconfirmed jobs, already sorted ascending by service date.
func FormatReminderMessage(jobs []models.Job, today time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Pending job confirmations as of %s (%d):\n", money.FormatDate(today), len(jobs)))
	for _, job := range jobs {
		b.WriteString(fmt.Sprintf("- %s %s: %s - %s", money.FormatDate(job.DateOfService), job.JobNo, job.Origin, job.Destination))
		if job.DriverName != "" {
			b.WriteString(fmt.Sprintf(" (%s)", job.DriverName))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Run executes one reminder pass. A redis day marker keeps an external
// trigger that fires twice from sending the notification twice.
func (s *ReminderService) Run(ctx context.Context) error {
	dayKey := "reminder:sent:" + time.Now().Format("2006-01-02")
	acquired, err := s.redis.SetNX(ctx, dayKey, 1, 48*time.Hour).Result()
	if err != nil {
		return errors.NewInternalServerError(err, "Failed to check reminder day marker")
	}
	if !acquired {
		logrus.WithField("key", dayKey).Info("Reminder already sent today, skipping")
		return nil
	}

	var jobs []models.Job
	if err := s.db.Where("status = ?", models.JobStatusAssigned).
		Order("date_of_service ASC").
		Find(&jobs).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to load assigned jobs")
	}

	if len(jobs) == 0 {
		logrus.Info("No assigned jobs pending confirmation, nothing to send")
		return nil
	}

	message := FormatReminderMessage(jobs, time.Now())
	if err := s.telegram.SendMessage(ctx, message); err != nil {
		// Delivery failure is logged, not retried, and does not affect billing.
		logrus.WithError(err).Warn("Failed to deliver reminder notification")
		return nil
	}

	logrus.WithField("jobs", len(jobs)).Info("Reminder notification sent")
	return nil
}
