package services

import (
	"sort"
	"strings"

	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillingPageSize is the fixed page size of the billing listing.
const BillingPageSize = 10

// ProjectBillingView derives the read-only billing listing from an in-memory
// job snapshot and an explicit filter state. The projection is recomputed on
// every call; nothing is cached and no job is mutated.
func ProjectBillingView(jobs []models.Job, state models.FilterState) models.BillingView {
	filtered := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if eligible(job) && matches(job, state) {
			filtered = append(filtered, job)
		}
	}

	// Most recent service date first; job number breaks ties for a stable
	// listing.
	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].DateOfService.Equal(filtered[j].DateOfService) {
			return filtered[i].DateOfService.After(filtered[j].DateOfService)
		}
		return filtered[i].JobNo > filtered[j].JobNo
	})

	totals := models.BillingTotals{
		TotalCost:        decimal.Zero,
		TotalExtraCharge: decimal.Zero,
	}
	for _, job := range filtered {
		totals.TotalCost = totals.TotalCost.Add(job.Cost)
		totals.TotalExtraCharge = totals.TotalExtraCharge.Add(job.ExtraCharge)
		if job.AccountingStatus == models.AccountingStatusPendingReview {
			totals.PendingReview++
		}
		if job.Status == models.JobStatusCompleted && job.AccountingStatus == models.AccountingStatusApproved {
			totals.ReadyToAcknowledge++
		}
		if job.Status == models.JobStatusBilled && job.AccountingStatus == models.AccountingStatusApproved {
			totals.ReadyToLock++
		}
	}

	page := state.Page
	if page < 1 {
		page = 1
	}
	totalItems := len(filtered)
	totalPages := (totalItems + BillingPageSize - 1) / BillingPageSize

	start := (page - 1) * BillingPageSize
	if start > totalItems {
		start = totalItems
	}
	end := start + BillingPageSize
	if end > totalItems {
		end = totalItems
	}

	return models.BillingView{
		Items:      filtered[start:end],
		Page:       page,
		PageSize:   BillingPageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && totalPages > 0,
		Totals:     totals,
	}
}

// eligible restricts the listing to jobs with billing relevance. Cancelled
// jobs never appear regardless of other filters.
func eligible(job models.Job) bool {
	return job.Status == models.JobStatusCompleted || job.Status == models.JobStatusBilled
}

func matches(job models.Job, state models.FilterState) bool {
	if q := strings.TrimSpace(state.Query); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(job.JobNo), q) &&
			!strings.Contains(strings.ToLower(job.ID.String()), q) &&
			!strings.Contains(strings.ToLower(job.Subcontractor), q) {
			return false
		}
	}
	if state.DateFrom != nil && job.DateOfService.Before(*state.DateFrom) {
		return false
	}
	if state.DateTo != nil && job.DateOfService.After(*state.DateTo) {
		return false
	}
	if state.Subcontractor != "" && job.Subcontractor != state.Subcontractor {
		return false
	}

	switch state.Bucket {
	case "", models.StatusBucketAll:
		return true
	case models.StatusBucketCompleted:
		return job.Status == models.JobStatusCompleted
	case models.StatusBucketBilled:
		return job.Status == models.JobStatusBilled
	case models.StatusBucketPendingBill:
		return job.Status == models.JobStatusCompleted && job.AccountingStatus == models.AccountingStatusApproved
	default:
		return false
	}
}

type BillingViewService struct {
	db *gorm.DB
}

func NewBillingViewService(db *gorm.DB) *BillingViewService {
	return &BillingViewService{
		db: db,
	}
}

// List loads the current job snapshot and projects it through the filter
// state. Cancelled jobs are excluded at the query already; the projection
// enforces the same rule for in-memory callers.
func (s *BillingViewService) List(state models.FilterState) (*models.BillingView, error) {
	var jobs []models.Job
	if err := s.db.Preload("PodDocuments").
		Where("status IN ?", []models.JobStatus{models.JobStatusCompleted, models.JobStatusBilled}).
		Find(&jobs).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to load jobs")
	}

	view := ProjectBillingView(jobs, state)
	return &view, nil
}
