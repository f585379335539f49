package services_test

import (
	"testing"

	apperrors "github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/services"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/infrastructures"
	"github.com/shopspring/decimal"
)

func TestUpdateCostRefusedOnceBaseCostLocked(t *testing.T) {
	db := openBillingDB(t)

	job := testJob(models.JobStatusCompleted, models.AccountingStatusApproved, true)
	job.IsBaseCostLocked = true
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("failed to insert job: %v", err)
	}

	svc := services.NewJobService(db, infrastructures.NewValidator())

	cost := "2500"
	_, err := svc.UpdateCost(job.ID.String(), &models.JobCostUpdateRequest{Cost: &cost})
	if !apperrors.HasCode(err, apperrors.ErrCodeBaseCostLocked) {
		t.Fatalf("expected code %s, got %v", apperrors.ErrCodeBaseCostLocked, err)
	}

	var reloaded models.Job
	if err := db.First(&reloaded, "id = ?", job.ID).Error; err != nil {
		t.Fatalf("failed to reload job: %v", err)
	}
	if !reloaded.Cost.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("cost after refused edit = %s, want unchanged 1000", reloaded.Cost)
	}
}

func TestUpdateCostPersistsWhileUnlocked(t *testing.T) {
	db := openBillingDB(t)

	job := testJob(models.JobStatusCompleted, models.AccountingStatusPendingReview, true)
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("failed to insert job: %v", err)
	}

	svc := services.NewJobService(db, infrastructures.NewValidator())

	cost := "2500"
	extra := "75.25"
	updated, err := svc.UpdateCost(job.ID.String(), &models.JobCostUpdateRequest{Cost: &cost, ExtraCharge: &extra})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Cost.Equal(decimal.RequireFromString("2500")) {
		t.Errorf("returned cost = %s, want 2500", updated.Cost)
	}

	var reloaded models.Job
	if err := db.First(&reloaded, "id = ?", job.ID).Error; err != nil {
		t.Fatalf("failed to reload job: %v", err)
	}
	if !reloaded.Cost.Equal(decimal.RequireFromString("2500")) {
		t.Errorf("persisted cost = %s, want 2500", reloaded.Cost)
	}
	if !reloaded.ExtraCharge.Equal(decimal.RequireFromString("75.25")) {
		t.Errorf("persisted extra charge = %s, want 75.25", reloaded.ExtraCharge)
	}
}
