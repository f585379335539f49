package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StatusBucket string

const (
	StatusBucketAll       StatusBucket = "ALL"
	StatusBucketCompleted StatusBucket = "COMPLETED"
	StatusBucketBilled    StatusBucket = "BILLED"
	// StatusBucketPendingBill is synthetic: completed jobs whose accounting
	// review has approved them but which are not yet on an invoice.
	StatusBucketPendingBill StatusBucket = "PENDING_BILL"
)

// FilterState is the explicit, serializable filter/pagination state the
// presentation layer holds. Filters compose conjunctively.
type FilterState struct {
	Query         string       `json:"query"`
	DateFrom      *time.Time   `json:"date_from,omitempty"`
	DateTo        *time.Time   `json:"date_to,omitempty"`
	Subcontractor string       `json:"subcontractor"`
	Bucket        StatusBucket `json:"bucket"`
	Page          int          `json:"page"`
}

// BillingTotals are recomputed on every projection, never cached across
// filter changes.
type BillingTotals struct {
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalExtraCharge   decimal.Decimal `json:"total_extra_charge"`
	PendingReview      int             `json:"pending_review"`
	ReadyToAcknowledge int             `json:"ready_to_acknowledge"`
	ReadyToLock        int             `json:"ready_to_lock"`
}

// BillingView is the read-only projection consumed by the presentation layer.
type BillingView struct {
	Items      []Job         `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
	TotalItems int           `json:"total_items"`
	HasNext    bool          `json:"has_next"`
	HasPrev    bool          `json:"has_prev"`
	Totals     BillingTotals `json:"totals"`
}
