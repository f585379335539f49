package main

import (
	"context"
	"time"

	"github.com/neoKP/subcontractor-truck-management-system-sub002/injector"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

// Entrypoint for the morning reminder job. Run from cron shortly after
// midnight local time; the job itself guards against duplicate sends.
func main() {
	infrastructures.LoadConfig()

	reminder, err := injector.InitializeReminder()
	if err != nil {
		logrus.Fatalf("Failed to initialize reminder job: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := reminder.Run(ctx); err != nil {
		logrus.Fatalf("Reminder job failed: %v", err)
	}

	logrus.Info("Reminder job finished")
}
