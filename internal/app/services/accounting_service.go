package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/infrastructures"
	"gorm.io/gorm"
)

// ReasonPrompt collects a free-text reason from the acting user before a
// transition that requires one. Returning ok=false means the user cancelled
// and the whole operation must abort with no side effect. The state machine
// never talks to a UI directly; delivery layers inject an implementation.
type ReasonPrompt interface {
	RequestReason(action models.AccountingAction) (string, bool)
}

type staticReason struct {
	reason *string
}

// StaticReason adapts an already-collected reason (for example from a request
// body) into a ReasonPrompt. A nil reason reads as a cancelled prompt.
func StaticReason(reason *string) ReasonPrompt {
	return staticReason{reason: reason}
}

func (s staticReason) RequestReason(models.AccountingAction) (string, bool) {
	if s.reason == nil {
		return "", false
	}
	return *s.reason, true
}

// Valid accounting transitions: current status -> action -> next status.
// LOCKED is terminal and deliberately absent.
var accountingTransitions = map[models.AccountingStatus]map[models.AccountingAction]models.AccountingStatus{
	models.AccountingStatusNone: {
		models.AccountingActionSubmit: models.AccountingStatusPendingReview,
	},
	models.AccountingStatusRejected: {
		models.AccountingActionSubmit: models.AccountingStatusPendingReview,
	},
	models.AccountingStatusPendingReview: {
		models.AccountingActionApprove: models.AccountingStatusApproved,
		models.AccountingActionReject:  models.AccountingStatusRejected,
	},
	models.AccountingStatusApproved: {
		models.AccountingActionLock: models.AccountingStatusLocked,
	},
}

var defaultRemarks = map[models.AccountingAction]string{
	models.AccountingActionSubmit:  "Submitted for accounting review",
	models.AccountingActionApprove: "Approved for billing",
	models.AccountingActionReject:  "Rejected by accounting review",
	models.AccountingActionLock:    "Locked after billing",
}

// reasonRequired reports whether the action must carry a user-supplied reason.
func reasonRequired(action models.AccountingAction) bool {
	return action == models.AccountingActionReject || action == models.AccountingActionLock
}

// CollectReason resolves the reason for an action through the injected
// prompt. Actions that need no reason skip the prompt entirely; a declined
// prompt aborts with USER_CANCELLED before any mutation.
func CollectReason(action models.AccountingAction, prompt ReasonPrompt) (string, error) {
	if !reasonRequired(action) {
		return "", nil
	}
	if prompt == nil {
		return "", errors.NewDomainError(errors.ErrCodeUserCancelled, fmt.Sprintf("A reason is required to %s", action))
	}
	reason, ok := prompt.RequestReason(action)
	if !ok {
		return "", errors.NewDomainError(errors.ErrCodeUserCancelled, fmt.Sprintf("Cancelled while collecting a reason to %s", action))
	}
	return reason, nil
}

// ApplyTransition runs the accounting state machine on an in-memory job
// snapshot. It either returns the updated job together with exactly one
// audit entry, or an error with the job untouched; a status change is never
// partially applied.
func ApplyTransition(job models.Job, action models.AccountingAction, actor models.Actor, reason string, now time.Time) (models.Job, models.AuditLog, error) {
	if job.AccountingStatus == models.AccountingStatusLocked {
		return job, models.AuditLog{}, errors.NewDomainError(errors.ErrCodeInvalidTransition,
			fmt.Sprintf("Job %s is locked and can no longer change", job.JobNo))
	}

	target, ok := accountingTransitions[job.AccountingStatus][action]
	if !ok {
		return job, models.AuditLog{}, errors.NewDomainError(errors.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot %s a job in accounting status %q", action, string(job.AccountingStatus)))
	}

	if (action == models.AccountingActionApprove || action == models.AccountingActionLock) && !job.HasDocumentation() {
		return job, models.AuditLog{}, errors.NewDomainError(errors.ErrCodeMissingDocumentation,
			fmt.Sprintf("Job %s has no proof of delivery document", job.JobNo))
	}

	if action == models.AccountingActionLock && job.Status != models.JobStatusBilled {
		return job, models.AuditLog{}, errors.NewDomainError(errors.ErrCodeInvalidTransition,
			fmt.Sprintf("Job %s must be billed before it can be locked", job.JobNo))
	}

	remark := reason
	if remark == "" {
		remark = defaultRemarks[action]
	}

	previous := job.AccountingStatus
	job.AccountingStatus = target
	job.IsBaseCostLocked = target == models.AccountingStatusApproved || target == models.AccountingStatusLocked
	job.AccountingRemark = &remark

	audit := models.AuditLog{
		JobID:     job.ID,
		UserID:    actor.ID,
		UserName:  actor.Name,
		UserRole:  actor.Role,
		Field:     "accounting_status",
		OldValue:  string(previous),
		NewValue:  string(target),
		Reason:    &remark,
		CreatedAt: now,
	}

	return job, audit, nil
}

// MarkBillable gates a job for the invoice batch builder. The job itself is
// not mutated; only the invoice commit advances status to BILLED.
func MarkBillable(job models.Job) error {
	if !job.HasDocumentation() {
		return errors.NewDomainError(errors.ErrCodeMissingDocumentation,
			fmt.Sprintf("Job %s has no proof of delivery document", job.JobNo))
	}
	if job.AccountingStatus != models.AccountingStatusApproved || job.Status != models.JobStatusCompleted {
		return errors.NewDomainError(errors.ErrCodeInvalidTransition,
			fmt.Sprintf("Job %s is not approved and completed", job.JobNo))
	}
	return nil
}

type AccountingService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewAccountingService(db *gorm.DB, validator *infrastructures.Validator) *AccountingService {
	return &AccountingService{
		db:        db,
		validator: validator,
	}
}

// Transition validates the request, loads the job, collects a reason when
// required, applies the state machine and persists the updated job together
// with its audit entry in one database transaction.
func (s *AccountingService) Transition(jobID string, req *models.AccountingTransitionRequest, actor models.Actor, prompt ReasonPrompt) (*models.Job, *models.AuditLog, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, nil, err
	}

	jobUUID, err := uuid.Parse(jobID)
	if err != nil {
		return nil, nil, errors.NewBadRequestError("Invalid job ID format")
	}

	var job models.Job
	if err := s.db.Preload("PodDocuments").First(&job, "id = ?", jobUUID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.NewNotFoundError("Job not found")
		}
		return nil, nil, errors.NewInternalServerError(err, "Failed to get job")
	}

	reason, err := CollectReason(req.Action, prompt)
	if err != nil {
		return nil, nil, err
	}

	updated, audit, err := ApplyTransition(job, req.Action, actor, reason, time.Now())
	if err != nil {
		return nil, nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"accounting_status":   updated.AccountingStatus,
			"is_base_cost_locked": updated.IsBaseCostLocked,
			"accounting_remark":   updated.AccountingRemark,
		}
		if err := tx.Model(&models.Job{}).Where("id = ?", job.ID).Updates(updates).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to update job accounting status")
		}
		if err := tx.Create(&audit).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to create audit log")
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &updated, &audit, nil
}
