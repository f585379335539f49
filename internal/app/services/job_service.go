package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/pkg"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/infrastructures"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type JobService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewJobService(db *gorm.DB, validator *infrastructures.Validator) *JobService {
	return &JobService{
		db:        db,
		validator: validator,
	}
}

func (s *JobService) parseUUID(id, fieldName string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, errors.NewBadRequestError(fmt.Sprintf("Invalid %s format", fieldName))
	}
	return parsed, nil
}

func (s *JobService) CreateJob(req *models.JobCreateRequest) (*models.Job, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	dateOfService, err := pkg.ParseServiceDate(req.DateOfService)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid date of service")
	}

	cost, err := decimal.NewFromString(req.Cost)
	if err != nil || cost.IsNegative() {
		return nil, errors.NewBadRequestError("Cost must be a non-negative amount")
	}

	extraCharge := decimal.Zero
	if req.ExtraCharge != nil {
		extraCharge, err = decimal.NewFromString(*req.ExtraCharge)
		if err != nil || extraCharge.IsNegative() {
			return nil, errors.NewBadRequestError("Extra charge must be a non-negative amount")
		}
	}

	job := &models.Job{
		JobNo:         "JOB-" + pkg.RandomNumberString(8),
		Status:        models.JobStatusAssigned,
		Cost:          cost,
		ExtraCharge:   extraCharge,
		Subcontractor: req.Subcontractor,
		Origin:        req.Origin,
		Destination:   req.Destination,
		TruckType:     req.TruckType,
		LicensePlate:  req.LicensePlate,
		DriverName:    req.DriverName,
		DateOfService: *dateOfService,
	}

	if err := s.db.Create(job).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create job")
	}

	return job, nil
}

func (s *JobService) GetJob(jobID string) (*models.Job, error) {
	jobUUID, err := s.parseUUID(jobID, "job ID")
	if err != nil {
		return nil, err
	}

	var job models.Job
	if err := s.db.Preload("PodDocuments").First(&job, "id = ?", jobUUID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Job not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get job")
	}

	return &job, nil
}

// CompleteJob advances the operational lifecycle from ASSIGNED to COMPLETED.
// The operational axis is monotonic except for cancellation; BILLED is only
// reachable through an invoice commit.
func (s *JobService) CompleteJob(jobID string, actor models.Actor) (*models.Job, error) {
	return s.changeStatus(jobID, actor, models.JobStatusCompleted, func(job *models.Job) error {
		if job.Status != models.JobStatusAssigned {
			return errors.NewDomainError(errors.ErrCodeInvalidTransition,
				fmt.Sprintf("Job %s cannot be completed from status %s", job.JobNo, job.Status))
		}
		return nil
	})
}

// CancelJob voids a job that has not been billed. A locked job never changes.
func (s *JobService) CancelJob(jobID string, actor models.Actor) (*models.Job, error) {
	return s.changeStatus(jobID, actor, models.JobStatusCancelled, func(job *models.Job) error {
		if job.AccountingStatus == models.AccountingStatusLocked {
			return errors.NewDomainError(errors.ErrCodeInvalidTransition,
				fmt.Sprintf("Job %s is locked and can no longer change", job.JobNo))
		}
		if job.Status == models.JobStatusBilled || job.Status == models.JobStatusCancelled {
			return errors.NewDomainError(errors.ErrCodeInvalidTransition,
				fmt.Sprintf("Job %s cannot be cancelled from status %s", job.JobNo, job.Status))
		}
		return nil
	})
}

func (s *JobService) changeStatus(jobID string, actor models.Actor, target models.JobStatus, guard func(*models.Job) error) (*models.Job, error) {
	jobUUID, err := s.parseUUID(jobID, "job ID")
	if err != nil {
		return nil, err
	}

	var job models.Job
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&job, "id = ?", jobUUID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError("Job not found")
			}
			return errors.NewInternalServerError(err, "Failed to get job")
		}

		if err := guard(&job); err != nil {
			return err
		}

		previous := job.Status
		job.Status = target
		if err := tx.Model(&models.Job{}).Where("id = ?", job.ID).Update("status", target).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to update job status")
		}

		audit := models.AuditLog{
			JobID:     job.ID,
			UserID:    actor.ID,
			UserName:  actor.Name,
			UserRole:  actor.Role,
			Field:     "status",
			OldValue:  string(previous),
			NewValue:  string(target),
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to create audit log")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// UpdateCost edits the base cost or extra charge. Once the accounting review
// has approved the job the base cost is locked and edits are refused.
func (s *JobService) UpdateCost(jobID string, req *models.JobCostUpdateRequest) (*models.Job, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	jobUUID, err := s.parseUUID(jobID, "job ID")
	if err != nil {
		return nil, err
	}

	var job models.Job
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the row so an approval cannot land between the lock check
		// and the write.
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&job, "id = ?", jobUUID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError("Job not found")
			}
			return errors.NewInternalServerError(err, "Failed to get job")
		}

		if job.IsBaseCostLocked {
			return errors.NewDomainError(errors.ErrCodeBaseCostLocked,
				fmt.Sprintf("Job %s is approved; its base cost can no longer change", job.JobNo))
		}

		updates := map[string]interface{}{}
		if req.Cost != nil {
			cost, err := decimal.NewFromString(*req.Cost)
			if err != nil || cost.IsNegative() {
				return errors.NewBadRequestError("Cost must be a non-negative amount")
			}
			job.Cost = cost
			updates["cost"] = cost
		}
		if req.ExtraCharge != nil {
			extra, err := decimal.NewFromString(*req.ExtraCharge)
			if err != nil || extra.IsNegative() {
				return errors.NewBadRequestError("Extra charge must be a non-negative amount")
			}
			job.ExtraCharge = extra
			updates["extra_charge"] = extra
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Job{}).Where("id = ?", job.ID).Updates(updates).Error; err != nil {
				return errors.NewInternalServerError(err, "Failed to update job cost")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// AttachPod records a content-addressed reference to an externally stored
// proof of delivery document. The bytes never pass through the core.
func (s *JobService) AttachPod(jobID string, req *models.PodAttachRequest) (*models.PodDocument, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	jobUUID, err := s.parseUUID(jobID, "job ID")
	if err != nil {
		return nil, err
	}

	var job models.Job
	if err := s.db.First(&job, "id = ?", jobUUID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Job not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get job")
	}

	if job.AccountingStatus == models.AccountingStatusLocked {
		return nil, errors.NewDomainError(errors.ErrCodeInvalidTransition,
			fmt.Sprintf("Job %s is locked and can no longer change", job.JobNo))
	}

	var position int64
	s.db.Model(&models.PodDocument{}).Where("job_id = ?", job.ID).Count(&position)

	pod := &models.PodDocument{
		JobID:       job.ID,
		ContentType: req.ContentType,
		StorageKey:  req.StorageKey,
		Position:    int(position),
	}
	if err := s.db.Create(pod).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to attach document")
	}

	return pod, nil
}

func (s *JobService) RemovePod(jobID, podID string) error {
	jobUUID, err := s.parseUUID(jobID, "job ID")
	if err != nil {
		return err
	}
	podUUID, err := s.parseUUID(podID, "document ID")
	if err != nil {
		return err
	}

	var job models.Job
	if err := s.db.First(&job, "id = ?", jobUUID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("Job not found")
		}
		return errors.NewInternalServerError(err, "Failed to get job")
	}

	if job.AccountingStatus == models.AccountingStatusLocked {
		return errors.NewDomainError(errors.ErrCodeInvalidTransition,
			fmt.Sprintf("Job %s is locked and can no longer change", job.JobNo))
	}

	result := s.db.Where("id = ? AND job_id = ?", podUUID, jobUUID).Delete(&models.PodDocument{})
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to remove document")
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("Document not found")
	}

	return nil
}
