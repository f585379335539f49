package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type JobStatus string

const (
	JobStatusAssigned  JobStatus = "ASSIGNED"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusBilled    JobStatus = "BILLED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

type AccountingStatus string

const (
	// AccountingStatusNone is the unset financial state of a freshly created job.
	AccountingStatusNone          AccountingStatus = ""
	AccountingStatusPendingReview AccountingStatus = "PENDING_REVIEW"
	AccountingStatusApproved      AccountingStatus = "APPROVED"
	AccountingStatusRejected      AccountingStatus = "REJECTED"
	AccountingStatusLocked        AccountingStatus = "LOCKED"
)

// Job is the central entity: one truck dispatch with its operational and
// financial lifecycle. Status and AccountingStatus are independent axes kept
// jointly consistent by the accounting service.
type Job struct {
	ID               uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobNo            string           `json:"job_no" gorm:"type:varchar(30);uniqueIndex;not null"`
	Status           JobStatus        `json:"status" gorm:"type:varchar(20);not null;index"`
	AccountingStatus AccountingStatus `json:"accounting_status" gorm:"type:varchar(20);default:'';index"`
	AccountingRemark *string          `json:"accounting_remark,omitempty" gorm:"type:text"`
	IsBaseCostLocked bool             `json:"is_base_cost_locked" gorm:"not null;default:false"`
	Cost             decimal.Decimal  `json:"cost" gorm:"type:decimal(18,2);not null"`
	ExtraCharge      decimal.Decimal  `json:"extra_charge" gorm:"type:decimal(18,2);not null;default:0"`
	Subcontractor    string           `json:"subcontractor" gorm:"type:varchar(255);not null;index"`
	Origin           string           `json:"origin" gorm:"type:varchar(255);not null"`
	Destination      string           `json:"destination" gorm:"type:varchar(255);not null"`
	TruckType        string           `json:"truck_type" gorm:"type:varchar(50);not null"`
	LicensePlate     string           `json:"license_plate" gorm:"type:varchar(20)"`
	DriverName       string           `json:"driver_name" gorm:"type:varchar(255)"`
	DateOfService    time.Time        `json:"date_of_service" gorm:"not null;index"`
	BillingDocNo     *string          `json:"billing_doc_no,omitempty" gorm:"type:varchar(30);index"`
	BillingDate      *time.Time       `json:"billing_date,omitempty"`
	ReferenceNo      *string          `json:"reference_no,omitempty" gorm:"type:varchar(50)"`
	PodDocuments     []PodDocument    `json:"pod_documents" gorm:"foreignKey:JobID"`
	CreatedAt        time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// HasDocumentation reports whether the job carries at least one proof of
// delivery document. It is the gate for financial approval and billing.
func (j *Job) HasDocumentation() bool {
	return len(j.PodDocuments) > 0
}

// TotalAmount returns base cost plus extra charge.
func (j *Job) TotalAmount() decimal.Decimal {
	return j.Cost.Add(j.ExtraCharge)
}

// PodDocument is a content-addressed reference to an externally stored proof
// of delivery file. The core never holds the bytes, only presence and a
// content-type tag for display routing.
type PodDocument struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobID       uuid.UUID `json:"job_id" gorm:"type:uuid;not null;index"`
	ContentType string    `json:"content_type" gorm:"type:varchar(100);not null"`
	StorageKey  string    `json:"storage_key" gorm:"type:varchar(255);not null"`
	Position    int       `json:"position" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// IsPDF reports whether the document should be routed to a PDF viewer rather
// than an image viewer. Content is never parsed.
func (d *PodDocument) IsPDF() bool {
	return strings.HasPrefix(d.ContentType, "application/pdf")
}

type JobCreateRequest struct {
	Subcontractor string  `json:"subcontractor" validate:"required,max=255"`
	Origin        string  `json:"origin" validate:"required,max=255"`
	Destination   string  `json:"destination" validate:"required,max=255"`
	TruckType     string  `json:"truck_type" validate:"required,max=50"`
	LicensePlate  string  `json:"license_plate" validate:"omitempty,max=20"`
	DriverName    string  `json:"driver_name" validate:"omitempty,max=255"`
	DateOfService string  `json:"date_of_service" validate:"required,datetime=2006-01-02"`
	Cost          string  `json:"cost" validate:"required,numeric"`
	ExtraCharge   *string `json:"extra_charge,omitempty" validate:"omitempty,numeric"`
}

type JobCostUpdateRequest struct {
	Cost        *string `json:"cost,omitempty" validate:"omitempty,numeric"`
	ExtraCharge *string `json:"extra_charge,omitempty" validate:"omitempty,numeric"`
}

type PodAttachRequest struct {
	ContentType string `json:"content_type" validate:"required,max=100"`
	StorageKey  string `json:"storage_key" validate:"required,max=255"`
}
