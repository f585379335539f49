package services

import (
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"gorm.io/gorm"
)

// PriceMatrixService resolves payment terms from the route/subcontractor
// price agreement table. The table is consulted read-only.
type PriceMatrixService struct {
	db *gorm.DB
}

func NewPriceMatrixService(db *gorm.DB) *PriceMatrixService {
	return &PriceMatrixService{
		db: db,
	}
}

// Lookup resolves terms by exact match on all four key fields. No match is
// not an error; the documented default of 30 days credit applies.
func (s *PriceMatrixService) Lookup(origin, destination, truckType, subcontractor string) models.PaymentTerms {
	var row models.PriceMatrix
	err := s.db.Where(
		"origin = ? AND destination = ? AND truck_type = ? AND subcontractor = ?",
		origin, destination, truckType, subcontractor,
	).First(&row).Error
	if err != nil {
		return models.DefaultPaymentTerms()
	}
	return models.PaymentTerms{PaymentType: row.PaymentType, CreditDays: row.CreditDays}
}

// GetEntries lists the price agreement rows, paginated.
func (s *PriceMatrixService) GetEntries(pagination *models.PaginationRequest) (*models.Pagination[[]models.PriceMatrix], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	var totalItems int64
	if err := s.db.Model(&models.PriceMatrix{}).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count price matrix entries")
	}

	var entries []models.PriceMatrix
	if err := s.db.Order("subcontractor ASC, origin ASC").
		Limit(pagination.Limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get price matrix entries")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.PriceMatrix]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      entries,
	}, nil
}
