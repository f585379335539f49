package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is the persisted record of one committed billing document. The
// computed tax amounts are stored at commit time so a reopened invoice
// reproduces the exact figures shown at confirmation.
type Invoice struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentNumber string          `json:"document_number" gorm:"type:varchar(30);uniqueIndex;not null"`
	ReferenceNo    string          `json:"reference_no" gorm:"type:varchar(50);not null"`
	Subcontractor  string          `json:"subcontractor" gorm:"type:varchar(255);not null;index"`
	IssueDate      time.Time       `json:"issue_date" gorm:"not null"`
	DueDate        time.Time       `json:"due_date" gorm:"not null"`
	PaymentType    string          `json:"payment_type" gorm:"type:varchar(20);not null"`
	CreditDays     int             `json:"credit_days" gorm:"not null"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:decimal(18,2);not null"`
	VatRate        decimal.Decimal `json:"vat_rate" gorm:"type:decimal(5,2);not null;default:0"`
	VatAmount      decimal.Decimal `json:"vat_amount" gorm:"type:decimal(18,2);not null;default:0"`
	WhtRate        decimal.Decimal `json:"wht_rate" gorm:"type:decimal(5,2);not null;default:0"`
	WhtAmount      decimal.Decimal `json:"wht_amount" gorm:"type:decimal(18,2);not null;default:0"`
	NetTotal       decimal.Decimal `json:"net_total" gorm:"type:decimal(18,2);not null"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// InvoiceDocument is the fully resolved content handed to an external
// renderer. Everything a printed page shows is already formatted here;
// rendering adds no business logic.
type InvoiceDocument struct {
	Header    InvoiceHeader  `json:"header"`
	Pages     []InvoicePage  `json:"pages"`
	Tax       TaxBlock       `json:"tax"`
	Signature SignatureBlock `json:"signature"`
}

type InvoiceHeader struct {
	DocumentNumber string `json:"document_number"`
	ReferenceNo    string `json:"reference_no"`
	Subcontractor  string `json:"subcontractor"`
	IssueDate      string `json:"issue_date"`
	DueDate        string `json:"due_date"`
	PaymentType    string `json:"payment_type"`
	CreditDays     int    `json:"credit_days"`
}

// InvoicePage holds up to PageSize line items. Only the last page carries the
// tax and signature summary blocks; the others hold itemized rows only.
type InvoicePage struct {
	Number        int           `json:"number"`
	Lines         []InvoiceLine `json:"lines"`
	IsSummaryPage bool          `json:"is_summary_page"`
}

type InvoiceLine struct {
	JobID       string          `json:"job_id"`
	JobNo       string          `json:"job_no"`
	Description string          `json:"description"`
	ServiceDate string          `json:"service_date"`
	Amount      decimal.Decimal `json:"amount"`
	AmountText  string          `json:"amount_text"`
	IsExtra     bool            `json:"is_extra"`
}

type TaxBlock struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	VatRate      decimal.Decimal `json:"vat_rate"`
	VatAmount    decimal.Decimal `json:"vat_amount"`
	WhtRate      decimal.Decimal `json:"wht_rate"`
	WhtAmount    decimal.Decimal `json:"wht_amount"`
	NetTotal     decimal.Decimal `json:"net_total"`
	SubtotalText string          `json:"subtotal_text"`
	NetTotalText string          `json:"net_total_text"`
	NetTotalThai string          `json:"net_total_thai"`
}

type SignatureBlock struct {
	IssuerLabel   string `json:"issuer_label"`
	ReceiverLabel string `json:"receiver_label"`
	IssueDate     string `json:"issue_date"`
}

type InvoiceBuildRequest struct {
	JobIDs         []string      `json:"job_ids" validate:"required,min=1,dive,uuid"`
	ReferenceNo    string        `json:"reference_no" validate:"omitempty,max=50"`
	IssueDate      string        `json:"issue_date" validate:"required,datetime=2006-01-02"`
	DueDate        *string       `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ApplyVat       bool          `json:"apply_vat"`
	VatRate        *string       `json:"vat_rate,omitempty" validate:"omitempty,numeric"`
	ApplyWht       bool          `json:"apply_wht"`
	WhtRate        *string       `json:"wht_rate,omitempty" validate:"omitempty,numeric"`
	DocumentNumber *string       `json:"document_number,omitempty" validate:"omitempty,max=30"`
	Actor          *ActorRequest `json:"actor,omitempty"`
}
