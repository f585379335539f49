package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentTypeCredit PaymentType = "CREDIT"
	PaymentTypeCash   PaymentType = "CASH"
)

// DefaultCreditDays applies when a route has no price agreement on file.
const DefaultCreditDays = 30

// PriceMatrix is one row of the route/subcontractor price agreement table,
// consulted read-only for invoice payment terms. Lookup is an exact string
// match on all four key fields.
type PriceMatrix struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Origin        string      `json:"origin" gorm:"type:varchar(255);not null;uniqueIndex:idx_price_route"`
	Destination   string      `json:"destination" gorm:"type:varchar(255);not null;uniqueIndex:idx_price_route"`
	TruckType     string      `json:"truck_type" gorm:"type:varchar(50);not null;uniqueIndex:idx_price_route"`
	Subcontractor string      `json:"subcontractor" gorm:"type:varchar(255);not null;uniqueIndex:idx_price_route"`
	PaymentType   PaymentType `json:"payment_type" gorm:"type:varchar(20);not null"`
	CreditDays    int         `json:"credit_days" gorm:"not null"`
	CreatedAt     time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// PaymentTerms is the resolved due-date agreement for one invoice.
type PaymentTerms struct {
	PaymentType PaymentType `json:"payment_type"`
	CreditDays  int         `json:"credit_days"`
}

// DefaultPaymentTerms is the documented fallback when no agreement matches.
func DefaultPaymentTerms() PaymentTerms {
	return PaymentTerms{PaymentType: PaymentTypeCredit, CreditDays: DefaultCreditDays}
}
