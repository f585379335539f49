package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/infrastructures"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/pkg/bahttext"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/pkg/money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// InvoicePageSize is the fixed number of line items per document page.
	InvoicePageSize = 10

	invoiceDocPrefix = "INV"
)

// Observed default tax rates, independently toggle-able per invoice.
var (
	DefaultVatRate = decimal.NewFromInt(7)
	DefaultWhtRate = decimal.NewFromInt(1)
)

// TermsLookup resolves payment terms from the route/subcontractor price
// agreement. Absence of a match is not an error; implementations fall back
// to the documented defaults.
type TermsLookup interface {
	Lookup(origin, destination, truckType, subcontractor string) models.PaymentTerms
}

// DocumentRenderer turns a fully resolved invoice document into printable
// output. The core's contract ends at producing the document; rendering is
// an external collaborator.
type DocumentRenderer interface {
	Render(doc *models.InvoiceDocument) (contentType string, body []byte, err error)
}

// InvoiceOptions are the resolved build parameters for one invoice.
type InvoiceOptions struct {
	ReferenceNo    string
	IssueDate      time.Time
	DueDate        *time.Time
	ApplyVat       bool
	VatRate        decimal.Decimal
	ApplyWht       bool
	WhtRate        decimal.Decimal
	DocumentNumber string
}

// BuildInvoiceDocument validates a selection of jobs and computes the full
// billing document. All validation happens before any computation and no job
// is mutated; only Commit writes anything back.
func BuildInvoiceDocument(jobs []models.Job, opts InvoiceOptions, terms models.PaymentTerms) (*models.InvoiceDocument, error) {
	if err := validateSelection(jobs); err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, job := range jobs {
		subtotal = subtotal.Add(job.TotalAmount())
	}
	subtotal = money.RoundHalfUp(subtotal)

	vatAmount := decimal.Zero
	if opts.ApplyVat {
		vatAmount = money.RoundHalfUp(subtotal.Mul(opts.VatRate).Div(decimal.NewFromInt(100)))
	}
	whtAmount := decimal.Zero
	if opts.ApplyWht {
		whtAmount = money.RoundHalfUp(subtotal.Mul(opts.WhtRate).Div(decimal.NewFromInt(100)))
	}
	netTotal := money.RoundHalfUp(subtotal.Add(vatAmount).Sub(whtAmount))

	dueDate := opts.IssueDate.AddDate(0, 0, terms.CreditDays)
	if opts.DueDate != nil {
		dueDate = *opts.DueDate
	}

	docNumber := opts.DocumentNumber
	if docNumber == "" {
		docNumber = documentNumber(opts.IssueDate, jobs[0])
	}

	doc := &models.InvoiceDocument{
		Header: models.InvoiceHeader{
			DocumentNumber: docNumber,
			ReferenceNo:    opts.ReferenceNo,
			Subcontractor:  jobs[0].Subcontractor,
			IssueDate:      money.FormatDate(opts.IssueDate),
			DueDate:        money.FormatDate(dueDate),
			PaymentType:    string(terms.PaymentType),
			CreditDays:     terms.CreditDays,
		},
		Pages: paginate(lineItems(jobs)),
		Tax: models.TaxBlock{
			Subtotal:     subtotal,
			VatRate:      opts.VatRate,
			VatAmount:    vatAmount,
			WhtRate:      opts.WhtRate,
			WhtAmount:    whtAmount,
			NetTotal:     netTotal,
			SubtotalText: money.FormatCurrency(subtotal),
			NetTotalText: money.FormatCurrency(netTotal),
			NetTotalThai: bahttext.Convert(netTotal),
		},
		Signature: models.SignatureBlock{
			IssuerLabel:   "ผู้วางบิล",
			ReceiverLabel: "ผู้รับวางบิล",
			IssueDate:     money.FormatDate(opts.IssueDate),
		},
	}

	return doc, nil
}

func validateSelection(jobs []models.Job) error {
	if len(jobs) == 0 {
		return errors.NewDomainError(errors.ErrCodeEmptySelection, "No jobs selected for billing")
	}

	undocumented := 0
	for _, job := range jobs {
		if !job.HasDocumentation() {
			undocumented++
		}
	}
	if undocumented > 0 {
		return errors.NewDomainError(errors.ErrCodeMissingDocumentation,
			fmt.Sprintf("%d selected job(s) have no proof of delivery document", undocumented))
	}

	subcontractor := jobs[0].Subcontractor
	for _, job := range jobs[1:] {
		if job.Subcontractor != subcontractor {
			return errors.NewDomainError(errors.ErrCodeMixedSubcontractor,
				"Selected jobs span more than one subcontractor")
		}
	}

	return nil
}

// documentNumber is deterministic for identical inputs: the issue month plus
// the last segment of the first job's identifier.
func documentNumber(issueDate time.Time, first models.Job) string {
	segments := strings.Split(first.ID.String(), "-")
	suffix := segments[len(segments)-1]
	return fmt.Sprintf("%s-%s-%s", invoiceDocPrefix, issueDate.Format("200601"), suffix)
}

// lineItems emits one base line per job and one additional line beneath it
// when the job carries an extra charge.
func lineItems(jobs []models.Job) []models.InvoiceLine {
	var lines []models.InvoiceLine
	for _, job := range jobs {
		lines = append(lines, models.InvoiceLine{
			JobID:       job.ID.String(),
			JobNo:       job.JobNo,
			Description: fmt.Sprintf("%s - %s (%s)", job.Origin, job.Destination, job.LicensePlate),
			ServiceDate: money.FormatDate(job.DateOfService),
			Amount:      job.Cost,
			AmountText:  money.FormatCurrency(job.Cost),
		})
		if job.ExtraCharge.IsPositive() {
			lines = append(lines, models.InvoiceLine{
				JobID:       job.ID.String(),
				JobNo:       job.JobNo,
				Description: "Additional charge",
				ServiceDate: money.FormatDate(job.DateOfService),
				Amount:      job.ExtraCharge,
				AmountText:  money.FormatCurrency(job.ExtraCharge),
				IsExtra:     true,
			})
		}
	}
	return lines
}

// paginate splits line items into fixed-size pages for document layout. The
// last page carries the tax and signature summary block.
func paginate(lines []models.InvoiceLine) []models.InvoicePage {
	var pages []models.InvoicePage
	for start := 0; start < len(lines); start += InvoicePageSize {
		end := start + InvoicePageSize
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, models.InvoicePage{
			Number: len(pages) + 1,
			Lines:  lines[start:end],
		})
	}
	if len(pages) > 0 {
		pages[len(pages)-1].IsSummaryPage = true
	}
	return pages
}

type InvoiceService struct {
	db          *gorm.DB
	validator   *infrastructures.Validator
	priceMatrix TermsLookup
}

func NewInvoiceService(db *gorm.DB, validator *infrastructures.Validator, priceMatrix *PriceMatrixService) *InvoiceService {
	return &InvoiceService{
		db:          db,
		validator:   validator,
		priceMatrix: priceMatrix,
	}
}

// Preview builds the document for a selection without committing anything.
// The reference number is deliberately not required here; it is checked at
// confirmation time.
func (s *InvoiceService) Preview(req *models.InvoiceBuildRequest) (*models.InvoiceDocument, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	opts, err := resolveOptions(req)
	if err != nil {
		return nil, err
	}

	jobs, err := s.loadJobs(s.db, req.JobIDs)
	if err != nil {
		return nil, err
	}
	for _, job := range jobs {
		if err := MarkBillable(job); err != nil {
			return nil, err
		}
	}

	return BuildInvoiceDocument(jobs, opts, s.lookupTerms(jobs))
}

// Commit stamps every job in the batch BILLED and persists the invoice with
// its computed tax amounts in a single database transaction: either every
// job receives the stamp or none does.
func (s *InvoiceService) Commit(req *models.InvoiceBuildRequest, actor models.Actor) (*models.Invoice, *models.InvoiceDocument, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(req.ReferenceNo) == "" {
		return nil, nil, errors.NewDomainError(errors.ErrCodeMissingReference,
			"A billing reference number is required to confirm the invoice")
	}

	opts, err := resolveOptions(req)
	if err != nil {
		return nil, nil, err
	}

	var invoice models.Invoice
	var doc *models.InvoiceDocument
	now := time.Now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		jobs, err := s.loadJobsForUpdate(tx, req.JobIDs)
		if err != nil {
			return err
		}
		for _, job := range jobs {
			if err := MarkBillable(job); err != nil {
				return err
			}
		}

		terms := s.lookupTerms(jobs)
		doc, err = BuildInvoiceDocument(jobs, opts, terms)
		if err != nil {
			return err
		}

		issueDate := opts.IssueDate
		dueDate := issueDate.AddDate(0, 0, terms.CreditDays)
		if opts.DueDate != nil {
			dueDate = *opts.DueDate
		}

		invoice = models.Invoice{
			DocumentNumber: doc.Header.DocumentNumber,
			ReferenceNo:    opts.ReferenceNo,
			Subcontractor:  doc.Header.Subcontractor,
			IssueDate:      issueDate,
			DueDate:        dueDate,
			PaymentType:    doc.Header.PaymentType,
			CreditDays:     doc.Header.CreditDays,
			Subtotal:       doc.Tax.Subtotal,
			VatRate:        doc.Tax.VatRate,
			VatAmount:      doc.Tax.VatAmount,
			WhtRate:        doc.Tax.WhtRate,
			WhtAmount:      doc.Tax.WhtAmount,
			NetTotal:       doc.Tax.NetTotal,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to create invoice")
		}

		for _, job := range jobs {
			updates := map[string]interface{}{
				"status":         models.JobStatusBilled,
				"billing_doc_no": invoice.DocumentNumber,
				"billing_date":   issueDate,
				"reference_no":   invoice.ReferenceNo,
			}
			if err := tx.Model(&models.Job{}).Where("id = ?", job.ID).Updates(updates).Error; err != nil {
				return errors.NewInternalServerError(err, "Failed to stamp job as billed")
			}

			reason := fmt.Sprintf("Billed under %s", invoice.DocumentNumber)
			audit := models.AuditLog{
				JobID:     job.ID,
				UserID:    actor.ID,
				UserName:  actor.Name,
				UserRole:  actor.Role,
				Field:     "status",
				OldValue:  string(job.Status),
				NewValue:  string(models.JobStatusBilled),
				Reason:    &reason,
				CreatedAt: now,
			}
			if err := tx.Create(&audit).Error; err != nil {
				return errors.NewInternalServerError(err, "Failed to create audit log")
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &invoice, doc, nil
}

// GetInvoice reopens a committed invoice read-only. Line items are rebuilt
// from the constituent jobs while the tax figures come from the persisted
// record, so the document matches what was confirmed.
func (s *InvoiceService) GetInvoice(documentNumber string) (*models.InvoiceDocument, error) {
	var invoice models.Invoice
	if err := s.db.First(&invoice, "document_number = ?", documentNumber).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Invoice not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get invoice")
	}

	var jobs []models.Job
	if err := s.db.Preload("PodDocuments").
		Where("billing_doc_no = ?", documentNumber).
		Order("date_of_service ASC, id ASC").
		Find(&jobs).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get invoice jobs")
	}

	doc := &models.InvoiceDocument{
		Header: models.InvoiceHeader{
			DocumentNumber: invoice.DocumentNumber,
			ReferenceNo:    invoice.ReferenceNo,
			Subcontractor:  invoice.Subcontractor,
			IssueDate:      money.FormatDate(invoice.IssueDate),
			DueDate:        money.FormatDate(invoice.DueDate),
			PaymentType:    invoice.PaymentType,
			CreditDays:     invoice.CreditDays,
		},
		Pages: paginate(lineItems(jobs)),
		Tax: models.TaxBlock{
			Subtotal:     invoice.Subtotal,
			VatRate:      invoice.VatRate,
			VatAmount:    invoice.VatAmount,
			WhtRate:      invoice.WhtRate,
			WhtAmount:    invoice.WhtAmount,
			NetTotal:     invoice.NetTotal,
			SubtotalText: money.FormatCurrency(invoice.Subtotal),
			NetTotalText: money.FormatCurrency(invoice.NetTotal),
			NetTotalThai: bahttext.Convert(invoice.NetTotal),
		},
		Signature: models.SignatureBlock{
			IssuerLabel:   "ผู้วางบิล",
			ReceiverLabel: "ผู้รับวางบิล",
			IssueDate:     money.FormatDate(invoice.IssueDate),
		},
	}

	return doc, nil
}

func (s *InvoiceService) lookupTerms(jobs []models.Job) models.PaymentTerms {
	first := jobs[0]
	return s.priceMatrix.Lookup(first.Origin, first.Destination, first.TruckType, first.Subcontractor)
}

// Job ordering is part of the document contract: the number derives from the
// first job, so ties on service date break on id to stay deterministic.
func (s *InvoiceService) loadJobs(db *gorm.DB, ids []string) ([]models.Job, error) {
	var jobs []models.Job
	if err := db.Preload("PodDocuments").
		Where("id IN ?", ids).
		Order("date_of_service ASC, id ASC").
		Find(&jobs).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to load selected jobs")
	}
	if len(jobs) != len(ids) {
		return nil, errors.NewNotFoundError("One or more selected jobs were not found")
	}
	return jobs, nil
}

func (s *InvoiceService) loadJobsForUpdate(tx *gorm.DB, ids []string) ([]models.Job, error) {
	var jobs []models.Job
	if err := tx.Set("gorm:query_option", "FOR UPDATE").
		Preload("PodDocuments").
		Where("id IN ?", ids).
		Order("date_of_service ASC, id ASC").
		Find(&jobs).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to lock selected jobs")
	}
	if len(jobs) != len(ids) {
		return nil, errors.NewNotFoundError("One or more selected jobs were not found")
	}
	return jobs, nil
}

func resolveOptions(req *models.InvoiceBuildRequest) (InvoiceOptions, error) {
	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		return InvoiceOptions{}, errors.NewBadRequestError("Invalid issue date")
	}

	opts := InvoiceOptions{
		ReferenceNo: strings.TrimSpace(req.ReferenceNo),
		IssueDate:   issueDate,
		ApplyVat:    req.ApplyVat,
		VatRate:     DefaultVatRate,
		ApplyWht:    req.ApplyWht,
		WhtRate:     DefaultWhtRate,
	}

	if req.DueDate != nil {
		dueDate, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return InvoiceOptions{}, errors.NewBadRequestError("Invalid due date")
		}
		opts.DueDate = &dueDate
	}
	if req.VatRate != nil {
		rate, err := decimal.NewFromString(*req.VatRate)
		if err != nil {
			return InvoiceOptions{}, errors.NewBadRequestError("Invalid VAT rate")
		}
		opts.VatRate = rate
	}
	if req.WhtRate != nil {
		rate, err := decimal.NewFromString(*req.WhtRate)
		if err != nil {
			return InvoiceOptions{}, errors.NewBadRequestError("Invalid WHT rate")
		}
		opts.WhtRate = rate
	}
	if req.DocumentNumber != nil {
		opts.DocumentNumber = *req.DocumentNumber
	}

	return opts, nil
}
