package services_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/services"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/infrastructures"
	"github.com/shopspring/decimal"
)

func testActor() models.Actor {
	return models.Actor{
		ID:   uuid.MustParse("6f1d2e3c-4b5a-6978-8a9b-0c1d2e3f4a5b"),
		Name: "Somchai",
		Role: "accounting",
	}
}

func testJob(status models.JobStatus, accounting models.AccountingStatus, withPod bool) models.Job {
	job := models.Job{
		ID:               uuid.MustParse("0b4c9e2a-1d3f-4a5b-8c7d-9e0f1a2b3c4d"),
		JobNo:            "JOB-10000001",
		Status:           status,
		AccountingStatus: accounting,
		Cost:             decimal.RequireFromString("1000"),
		ExtraCharge:      decimal.Zero,
		Subcontractor:    "Thana Transport",
		Origin:           "Bangkok",
		Destination:      "Chonburi",
		TruckType:        "6W",
		DateOfService:    time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}
	if withPod {
		job.PodDocuments = []models.PodDocument{
			{ID: uuid.New(), JobID: job.ID, ContentType: "application/pdf", StorageKey: "pods/JOB-10000001.pdf"},
		}
	}
	return job
}

func TestApplyTransition(t *testing.T) {
	tests := []struct {
		name       string
		job        models.Job
		action     models.AccountingAction
		wantStatus models.AccountingStatus
		wantLocked bool
		wantCode   string
	}{
		{
			name:       "submit fresh job",
			job:        testJob(models.JobStatusCompleted, models.AccountingStatusNone, false),
			action:     models.AccountingActionSubmit,
			wantStatus: models.AccountingStatusPendingReview,
		},
		{
			name:       "resubmit rejected job",
			job:        testJob(models.JobStatusCompleted, models.AccountingStatusRejected, true),
			action:     models.AccountingActionSubmit,
			wantStatus: models.AccountingStatusPendingReview,
		},
		{
			name:       "approve with documentation",
			job:        testJob(models.JobStatusCompleted, models.AccountingStatusPendingReview, true),
			action:     models.AccountingActionApprove,
			wantStatus: models.AccountingStatusApproved,
			wantLocked: true,
		},
		{
			name:     "approve without documentation",
			job:      testJob(models.JobStatusCompleted, models.AccountingStatusPendingReview, false),
			action:   models.AccountingActionApprove,
			wantCode: apperrors.ErrCodeMissingDocumentation,
		},
		{
			name:       "reject pending job",
			job:        testJob(models.JobStatusCompleted, models.AccountingStatusPendingReview, false),
			action:     models.AccountingActionReject,
			wantStatus: models.AccountingStatusRejected,
		},
		{
			name:       "lock billed approved job",
			job:        testJob(models.JobStatusBilled, models.AccountingStatusApproved, true),
			action:     models.AccountingActionLock,
			wantStatus: models.AccountingStatusLocked,
			wantLocked: true,
		},
		{
			name:     "lock before billing",
			job:      testJob(models.JobStatusCompleted, models.AccountingStatusApproved, true),
			action:   models.AccountingActionLock,
			wantCode: apperrors.ErrCodeInvalidTransition,
		},
		{
			name:     "locked job is terminal",
			job:      testJob(models.JobStatusBilled, models.AccountingStatusLocked, true),
			action:   models.AccountingActionSubmit,
			wantCode: apperrors.ErrCodeInvalidTransition,
		},
		{
			name:     "approve skips review",
			job:      testJob(models.JobStatusCompleted, models.AccountingStatusNone, true),
			action:   models.AccountingActionApprove,
			wantCode: apperrors.ErrCodeInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, _, err := services.ApplyTransition(tt.job, tt.action, testActor(), "", time.Now())

			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("expected error with code %s, got nil", tt.wantCode)
				}
				if !apperrors.HasCode(err, tt.wantCode) {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.AccountingStatus != tt.wantStatus {
				t.Errorf("accounting status = %s, want %s", updated.AccountingStatus, tt.wantStatus)
			}
			if updated.IsBaseCostLocked != tt.wantLocked {
				t.Errorf("is_base_cost_locked = %v, want %v", updated.IsBaseCostLocked, tt.wantLocked)
			}
		})
	}
}

func TestApplyTransitionAudit(t *testing.T) {
	job := testJob(models.JobStatusCompleted, models.AccountingStatusPendingReview, true)
	actor := testActor()
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	updated, audit, err := services.ApplyTransition(job, models.AccountingActionApprove, actor, "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if audit.JobID != job.ID {
		t.Errorf("audit job id = %s, want %s", audit.JobID, job.ID)
	}
	if audit.UserID != actor.ID || audit.UserName != actor.Name || audit.UserRole != actor.Role {
		t.Errorf("audit actor = %s/%s/%s, want %s/%s/%s",
			audit.UserID, audit.UserName, audit.UserRole, actor.ID, actor.Name, actor.Role)
	}
	if audit.Field != "accounting_status" {
		t.Errorf("audit field = %q, want accounting_status", audit.Field)
	}
	if audit.OldValue != string(models.AccountingStatusPendingReview) {
		t.Errorf("audit old value = %q, want PENDING_REVIEW verbatim", audit.OldValue)
	}
	if audit.NewValue != string(models.AccountingStatusApproved) {
		t.Errorf("audit new value = %q, want APPROVED verbatim", audit.NewValue)
	}
	if !audit.CreatedAt.Equal(now) {
		t.Errorf("audit created at = %s, want %s", audit.CreatedAt, now)
	}
	if audit.Reason == nil || *audit.Reason == "" {
		t.Error("audit reason should fall back to the default remark")
	}
	if updated.AccountingRemark == nil || *updated.AccountingRemark != *audit.Reason {
		t.Error("job remark and audit reason should match")
	}
}

func TestApplyTransitionReasonIsRecorded(t *testing.T) {
	job := testJob(models.JobStatusCompleted, models.AccountingStatusPendingReview, true)

	_, audit, err := services.ApplyTransition(job, models.AccountingActionReject, testActor(), "duplicate entry", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if audit.Reason == nil || *audit.Reason != "duplicate entry" {
		t.Errorf("audit reason = %v, want duplicate entry", audit.Reason)
	}
}

func TestCollectReason(t *testing.T) {
	reason := "duplicate entry"

	tests := []struct {
		name       string
		action     models.AccountingAction
		prompt     services.ReasonPrompt
		wantReason string
		wantCode   string
	}{
		{
			name:   "approve needs no prompt",
			action: models.AccountingActionApprove,
			prompt: nil,
		},
		{
			name:       "reject with supplied reason",
			action:     models.AccountingActionReject,
			prompt:     services.StaticReason(&reason),
			wantReason: reason,
		},
		{
			name:     "reject with cancelled prompt",
			action:   models.AccountingActionReject,
			prompt:   services.StaticReason(nil),
			wantCode: apperrors.ErrCodeUserCancelled,
		},
		{
			name:     "lock without any prompt",
			action:   models.AccountingActionLock,
			prompt:   nil,
			wantCode: apperrors.ErrCodeUserCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.CollectReason(tt.action, tt.prompt)

			if tt.wantCode != "" {
				if !apperrors.HasCode(err, tt.wantCode) {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantReason {
				t.Errorf("reason = %q, want %q", got, tt.wantReason)
			}
		})
	}
}

func TestMarkBillable(t *testing.T) {
	tests := []struct {
		name     string
		job      models.Job
		wantCode string
	}{
		{
			name: "approved and completed",
			job:  testJob(models.JobStatusCompleted, models.AccountingStatusApproved, true),
		},
		{
			name:     "no documentation",
			job:      testJob(models.JobStatusCompleted, models.AccountingStatusApproved, false),
			wantCode: apperrors.ErrCodeMissingDocumentation,
		},
		{
			name:     "still under review",
			job:      testJob(models.JobStatusCompleted, models.AccountingStatusPendingReview, true),
			wantCode: apperrors.ErrCodeInvalidTransition,
		},
		{
			name:     "already billed",
			job:      testJob(models.JobStatusBilled, models.AccountingStatusApproved, true),
			wantCode: apperrors.ErrCodeInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := services.MarkBillable(tt.job)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Fatalf("expected code %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestTransitionRejectsMalformedRequest(t *testing.T) {
	svc := services.NewAccountingService(nil, infrastructures.NewValidator())

	req := &models.AccountingTransitionRequest{
		Action: "ARCHIVE",
		Actor: models.ActorRequest{
			UserID:   "6f1d2e3c-4b5a-6978-8a9b-0c1d2e3f4a5b",
			UserName: "Somchai",
			UserRole: "accounting",
		},
	}

	_, _, err := svc.Transition(uuid.NewString(), req, testActor(), services.StaticReason(nil))
	if err == nil {
		t.Fatal("expected a validation error for an unknown action")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected a bad request error, got %v", err)
	}
}

func TestMarkBillableErrorNamesJob(t *testing.T) {
	job := testJob(models.JobStatusCompleted, models.AccountingStatusApproved, false)

	err := services.MarkBillable(job)
	if err == nil || !strings.Contains(err.Error(), job.JobNo) {
		t.Errorf("error should name the offending job, got %v", err)
	}
}
