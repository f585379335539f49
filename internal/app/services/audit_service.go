package services

import (
	"github.com/google/uuid"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"gorm.io/gorm"
)

// AuditService reads the append-only audit trail. Entries are written by the
// accounting and invoice services inside their own transactions so a trail
// row and its job mutation commit together; this service never mutates or
// deletes them.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		db: db,
	}
}

// GetJobAuditTrail retrieves the audit entries for one job, newest first.
func (s *AuditService) GetJobAuditTrail(jobID string, pagination *models.PaginationRequest) (*models.Pagination[[]models.AuditLog], error) {
	jobUUID, err := uuid.Parse(jobID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid job ID format")
	}

	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	var totalItems int64
	if err := s.db.Model(&models.AuditLog{}).Where("job_id = ?", jobUUID).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count audit logs")
	}

	var logs []models.AuditLog
	if err := s.db.Where("job_id = ?", jobUUID).
		Order("created_at DESC").
		Limit(pagination.Limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audit logs")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.AuditLog]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      logs,
	}, nil
}
