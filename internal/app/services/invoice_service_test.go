package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/services"
	"github.com/shopspring/decimal"
)

func billableJob(id, jobNo, cost, extra, subcontractor string, serviceDate time.Time) models.Job {
	job := models.Job{
		ID:               uuid.MustParse(id),
		JobNo:            jobNo,
		Status:           models.JobStatusCompleted,
		AccountingStatus: models.AccountingStatusApproved,
		Cost:             decimal.RequireFromString(cost),
		ExtraCharge:      decimal.RequireFromString(extra),
		Subcontractor:    subcontractor,
		Origin:           "Bangkok",
		Destination:      "Chonburi",
		TruckType:        "6W",
		LicensePlate:     "1กข-1234",
		DateOfService:    serviceDate,
	}
	job.PodDocuments = []models.PodDocument{
		{ID: uuid.New(), JobID: job.ID, ContentType: "image/jpeg", StorageKey: "pods/" + jobNo + ".jpg"},
	}
	return job
}

func defaultOptions() services.InvoiceOptions {
	return services.InvoiceOptions{
		ReferenceNo: "REF-001",
		IssueDate:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		ApplyVat:    true,
		VatRate:     services.DefaultVatRate,
		ApplyWht:    true,
		WhtRate:     services.DefaultWhtRate,
	}
}

func TestBuildInvoiceDocumentTotals(t *testing.T) {
	jobs := []models.Job{
		billableJob("11111111-1111-4111-8111-111111111111", "JOB-00000001", "1000", "0", "Thana Transport",
			time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)),
		billableJob("22222222-2222-4222-8222-222222222222", "JOB-00000002", "500", "50", "Thana Transport",
			time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)),
	}

	doc, err := services.BuildInvoiceDocument(jobs, defaultOptions(), models.DefaultPaymentTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSubtotal := decimal.RequireFromString("1550.00")
	wantVat := decimal.RequireFromString("108.50")
	wantWht := decimal.RequireFromString("15.50")
	wantNet := decimal.RequireFromString("1643.00")

	if !doc.Tax.Subtotal.Equal(wantSubtotal) {
		t.Errorf("subtotal = %s, want %s", doc.Tax.Subtotal, wantSubtotal)
	}
	if !doc.Tax.VatAmount.Equal(wantVat) {
		t.Errorf("vat amount = %s, want %s", doc.Tax.VatAmount, wantVat)
	}
	if !doc.Tax.WhtAmount.Equal(wantWht) {
		t.Errorf("wht amount = %s, want %s", doc.Tax.WhtAmount, wantWht)
	}
	if !doc.Tax.NetTotal.Equal(wantNet) {
		t.Errorf("net total = %s, want %s", doc.Tax.NetTotal, wantNet)
	}
	if doc.Tax.NetTotalText != "1,643.00" {
		t.Errorf("net total text = %q, want 1,643.00", doc.Tax.NetTotalText)
	}
	if doc.Tax.NetTotalThai != "หนึ่งพันหกร้อยสี่สิบสามบาทถ้วน" {
		t.Errorf("net total thai = %q", doc.Tax.NetTotalThai)
	}
}

func TestBuildInvoiceDocumentTaxToggles(t *testing.T) {
	jobs := []models.Job{
		billableJob("11111111-1111-4111-8111-111111111111", "JOB-00000001", "1000", "0", "Thana Transport",
			time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)),
	}

	opts := defaultOptions()
	opts.ApplyVat = false
	opts.ApplyWht = false

	doc, err := services.BuildInvoiceDocument(jobs, opts, models.DefaultPaymentTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !doc.Tax.VatAmount.IsZero() || !doc.Tax.WhtAmount.IsZero() {
		t.Errorf("disabled taxes should be zero, got vat=%s wht=%s", doc.Tax.VatAmount, doc.Tax.WhtAmount)
	}
	if !doc.Tax.NetTotal.Equal(doc.Tax.Subtotal) {
		t.Errorf("net total = %s, want subtotal %s", doc.Tax.NetTotal, doc.Tax.Subtotal)
	}
}

func TestBuildInvoiceDocumentValidation(t *testing.T) {
	serviceDate := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	documented := billableJob("11111111-1111-4111-8111-111111111111", "JOB-00000001", "1000", "0", "Thana Transport", serviceDate)
	undocumentedA := billableJob("22222222-2222-4222-8222-222222222222", "JOB-00000002", "500", "0", "Thana Transport", serviceDate)
	undocumentedA.PodDocuments = nil
	undocumentedB := billableJob("33333333-3333-4333-8333-333333333333", "JOB-00000003", "700", "0", "Thana Transport", serviceDate)
	undocumentedB.PodDocuments = nil
	otherSub := billableJob("44444444-4444-4444-8444-444444444444", "JOB-00000004", "900", "0", "Krung Logistics", serviceDate)

	tests := []struct {
		name        string
		jobs        []models.Job
		wantCode    string
		wantMessage string
	}{
		{
			name:     "empty selection",
			jobs:     nil,
			wantCode: apperrors.ErrCodeEmptySelection,
		},
		{
			name:        "missing documentation reports count",
			jobs:        []models.Job{documented, undocumentedA, undocumentedB},
			wantCode:    apperrors.ErrCodeMissingDocumentation,
			wantMessage: "2",
		},
		{
			name:     "mixed subcontractors",
			jobs:     []models.Job{documented, otherSub},
			wantCode: apperrors.ErrCodeMixedSubcontractor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.BuildInvoiceDocument(tt.jobs, defaultOptions(), models.DefaultPaymentTerms())
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Fatalf("expected code %s, got %v", tt.wantCode, err)
			}
			if tt.wantMessage != "" && !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestBuildInvoiceDocumentPagination(t *testing.T) {
	serviceDate := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	var jobs []models.Job
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("%08d-1111-4111-8111-111111111111", i+1)
		jobs = append(jobs, billableJob(id, fmt.Sprintf("JOB-%08d", i+1), "100", "0", "Thana Transport", serviceDate))
	}

	doc, err := services.BuildInvoiceDocument(jobs, defaultOptions(), models.DefaultPaymentTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(doc.Pages))
	}
	if len(doc.Pages[0].Lines) != services.InvoicePageSize {
		t.Errorf("first page lines = %d, want %d", len(doc.Pages[0].Lines), services.InvoicePageSize)
	}
	if len(doc.Pages[1].Lines) != 2 {
		t.Errorf("last page lines = %d, want 2", len(doc.Pages[1].Lines))
	}
	if doc.Pages[0].IsSummaryPage {
		t.Error("first page should not carry the summary block")
	}
	if !doc.Pages[1].IsSummaryPage {
		t.Error("last page should carry the summary block")
	}
}

func TestBuildInvoiceDocumentExtraChargeLine(t *testing.T) {
	jobs := []models.Job{
		billableJob("11111111-1111-4111-8111-111111111111", "JOB-00000001", "1000", "150", "Thana Transport",
			time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)),
	}

	doc, err := services.BuildInvoiceDocument(jobs, defaultOptions(), models.DefaultPaymentTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := doc.Pages[0].Lines
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want base line plus extra charge line", len(lines))
	}
	if lines[0].IsExtra {
		t.Error("base line should not be flagged as extra")
	}
	if !lines[1].IsExtra {
		t.Error("second line should be the extra charge line")
	}
	if lines[1].JobNo != lines[0].JobNo {
		t.Errorf("extra line job = %s, want %s", lines[1].JobNo, lines[0].JobNo)
	}
	if lines[1].AmountText != "150.00" {
		t.Errorf("extra line amount text = %q, want 150.00", lines[1].AmountText)
	}
}

func TestBuildInvoiceDocumentNumber(t *testing.T) {
	jobs := []models.Job{
		billableJob("11111111-1111-4111-8111-abcdefabcdef", "JOB-00000001", "1000", "0", "Thana Transport",
			time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)),
	}

	first, err := services.BuildInvoiceDocument(jobs, defaultOptions(), models.DefaultPaymentTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Header.DocumentNumber != "INV-202608-abcdefabcdef" {
		t.Errorf("document number = %q, want INV-202608-abcdefabcdef", first.Header.DocumentNumber)
	}

	second, err := services.BuildInvoiceDocument(jobs, defaultOptions(), models.DefaultPaymentTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Header.DocumentNumber != first.Header.DocumentNumber {
		t.Errorf("document number should be deterministic, got %q then %q",
			first.Header.DocumentNumber, second.Header.DocumentNumber)
	}

	opts := defaultOptions()
	opts.DocumentNumber = "INV-202607-predates"
	reopened, err := services.BuildInvoiceDocument(jobs, opts, models.DefaultPaymentTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reopened.Header.DocumentNumber != "INV-202607-predates" {
		t.Errorf("supplied document number should be reused, got %q", reopened.Header.DocumentNumber)
	}
}

func TestBuildInvoiceDocumentDueDate(t *testing.T) {
	jobs := []models.Job{
		billableJob("11111111-1111-4111-8111-111111111111", "JOB-00000001", "1000", "0", "Thana Transport",
			time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)),
	}

	doc, err := services.BuildInvoiceDocument(jobs, defaultOptions(), models.PaymentTerms{
		PaymentType: models.PaymentTypeCredit,
		CreditDays:  45,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Header.IssueDate != "15/08/2026" {
		t.Errorf("issue date = %q, want 15/08/2026", doc.Header.IssueDate)
	}
	if doc.Header.DueDate != "29/09/2026" {
		t.Errorf("due date = %q, want issue date plus 45 credit days", doc.Header.DueDate)
	}

	opts := defaultOptions()
	explicit := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	opts.DueDate = &explicit
	doc, err = services.BuildInvoiceDocument(jobs, opts, models.DefaultPaymentTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Header.DueDate != "01/09/2026" {
		t.Errorf("due date = %q, want the explicit 01/09/2026", doc.Header.DueDate)
	}
}
