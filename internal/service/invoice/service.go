package invoice

import (
	"context"
	"errors"
	"time"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/invoice"
	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/classtrack/center-backend-go/internal/pkg/database"
	"github.com/classtrack/center-backend-go/internal/repository/postgresql"
	"github.com/classtrack/center-backend-go/internal/service/pricing"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type InvoiceServiceImpl struct {
	db          *database.DB
	invoiceRepo invoice.InvoiceRepository
	sessionRepo session.SessionRepository
	classRepo   class.ClassRepository
	courseRepo  class.CourseRepository
	resolver    *pricing.Resolver
	bankInfo    string
}

func NewInvoiceService(
	db *database.DB,
	invoiceRepo invoice.InvoiceRepository,
	sessionRepo session.SessionRepository,
	classRepo class.ClassRepository,
	courseRepo class.CourseRepository,
	resolver *pricing.Resolver,
	bankInfo string,
) invoice.InvoiceService {
	return &InvoiceServiceImpl{
		db:          db,
		invoiceRepo: invoiceRepo,
		sessionRepo: sessionRepo,
		classRepo:   classRepo,
		courseRepo:  courseRepo,
		resolver:    resolver,
		bankInfo:    bankInfo,
	}
}

func (s *InvoiceServiceImpl) GenerateInvoices(ctx context.Context, req invoice.GenerateInvoicesRequest) ([]invoice.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.List(ctx, session.SessionFilter{
		PeriodMonth: &req.PeriodMonth,
		PeriodYear:  &req.PeriodYear,
	})
	if err != nil {
		return nil, err
	}

	classes, courses, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	studentIDs := req.StudentIDs
	if len(studentIDs) == 0 {
		studentIDs = billableStudents(sessions)
	}

	results := make([]invoice.InvoiceResponse, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		resp, skip, err := s.generateOne(ctx, studentID, req.PeriodMonth, req.PeriodYear, sessions, classes, courses)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		results = append(results, resp)
	}
	return results, nil
}

// generateOne aggregates a single student's invoice for the period. A
// missing invoice is created, an unpaid one is merged into, a paid one is
// returned untouched.
func (s *InvoiceServiceImpl) generateOne(ctx context.Context, studentID string, month, year int, sessions []session.Session, classes map[string]class.Class, courses []class.Course) (invoice.InvoiceResponse, bool, error) {
	lines, err := BuildLines(studentID, sessions, classes, courses, s.resolver)
	if err != nil {
		return invoice.InvoiceResponse{}, false, err
	}

	existing, err := s.invoiceRepo.GetByStudentPeriod(ctx, studentID, month, year)
	if err != nil {
		if !errors.Is(err, invoice.ErrInvoiceNotFound) {
			return invoice.InvoiceResponse{}, false, err
		}
		if len(lines) == 0 {
			return invoice.InvoiceResponse{}, true, nil
		}

		inv := invoice.Invoice{
			StudentID:   studentID,
			PeriodMonth: month,
			PeriodYear:  year,
			ClassIDs:    classIDsOf(lines),
			Lines:       lines,
			Discount:    decimal.Zero,
			Status:      invoice.InvoiceStatusUnpaid,
		}
		inv.Recalculate()

		created, err := s.invoiceRepo.Create(ctx, inv)
		if err != nil {
			return invoice.InvoiceResponse{}, false, err
		}
		return toInvoiceResponse(created), false, nil
	}

	if existing.Status == invoice.InvoiceStatusPaid {
		return toInvoiceResponse(existing), false, nil
	}

	existing.Lines = MergeLines(existing.Lines, lines)
	existing.ClassIDs = classIDsOf(existing.Lines)
	existing.Recalculate()

	updated, err := s.invoiceRepo.Replace(ctx, existing)
	if err != nil {
		return invoice.InvoiceResponse{}, false, err
	}
	return toInvoiceResponse(updated), false, nil
}

func (s *InvoiceServiceImpl) GetInvoice(ctx context.Context, id string) (invoice.InvoiceResponse, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	return toInvoiceResponse(inv), nil
}

func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context, filter invoice.InvoiceFilter) (invoice.ListInvoiceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	invoices, total, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return invoice.ListInvoiceResponse{}, err
	}

	data := make([]invoice.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		data = append(data, toInvoiceResponse(inv))
	}
	return invoice.ListInvoiceResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *InvoiceServiceImpl) UpdateInvoice(ctx context.Context, req invoice.UpdateInvoiceRequest) (invoice.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	inv, err := s.invoiceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if inv.Status == invoice.InvoiceStatusPaid {
		return invoice.InvoiceResponse{}, invoice.ErrInvoiceAlreadyPaid
	}

	if req.Discount != nil {
		inv.Discount = *req.Discount
	}
	if req.Notes != nil {
		inv.Notes = req.Notes
	}
	inv.Recalculate()

	// The caller's version, not the freshly loaded one, guards the write:
	// an edit based on a stale read must fail even if nothing changed in
	// between the load above and the replace.
	inv.Version = req.Version

	updated, err := s.invoiceRepo.Replace(ctx, inv)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	return toInvoiceResponse(updated), nil
}

func (s *InvoiceServiceImpl) MarkPaid(ctx context.Context, req invoice.MarkPaidRequest, paidBy string) ([]invoice.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	results := make([]invoice.BulkResult, 0, len(req.InvoiceIDs))
	for _, id := range req.InvoiceIDs {
		if err := s.markOnePaid(ctx, id, paidBy); err != nil {
			results = append(results, invoice.BulkResult{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, invoice.BulkResult{ID: id, OK: true})
	}
	return results, nil
}

// markOnePaid finalizes one invoice and locks its source sessions in the
// same transaction, so a paid invoice's snapshot can never drift from the
// attendance it was built on.
func (s *InvoiceServiceImpl) markOnePaid(ctx context.Context, id, paidBy string) error {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status == invoice.InvoiceStatusPaid {
		return invoice.ErrInvoiceAlreadyPaid
	}

	sessionIDs := make([]string, 0, len(inv.Lines))
	seen := make(map[string]bool, len(inv.Lines))
	for _, l := range inv.Lines {
		if l.SessionID == "" || seen[l.SessionID] {
			continue
		}
		seen[l.SessionID] = true
		sessionIDs = append(sessionIDs, l.SessionID)
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if _, err := s.invoiceRepo.MarkPaid(txCtx, id, paidBy, s.bankInfo); err != nil {
			return err
		}
		if len(sessionIDs) > 0 {
			if err := s.sessionRepo.Lock(txCtx, sessionIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *InvoiceServiceImpl) DeleteInvoice(ctx context.Context, id string) error {
	return s.invoiceRepo.Delete(ctx, id)
}

func (s *InvoiceServiceImpl) BulkDelete(ctx context.Context, req invoice.BulkDeleteRequest) ([]invoice.BulkResult, error) {
	results := make([]invoice.BulkResult, 0, len(req.InvoiceIDs))
	for _, id := range req.InvoiceIDs {
		if err := s.invoiceRepo.Delete(ctx, id); err != nil {
			results = append(results, invoice.BulkResult{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, invoice.BulkResult{ID: id, OK: true})
	}
	return results, nil
}

func (s *InvoiceServiceImpl) GetOutstanding(ctx context.Context, studentID string, month, year int) (invoice.OutstandingResponse, error) {
	prior, err := s.invoiceRepo.ListBefore(ctx, studentID, month, year)
	if err != nil {
		return invoice.OutstandingResponse{}, err
	}

	estimates, err := s.estimateUninvoiced(ctx, studentID, month, year)
	if err != nil {
		return invoice.OutstandingResponse{}, err
	}

	entries, total := ComputeOutstanding(prior, estimates)
	return invoice.OutstandingResponse{
		StudentID:   studentID,
		PeriodMonth: month,
		PeriodYear:  year,
		Entries:     entries,
		Total:       total,
	}, nil
}

// estimateUninvoiced prices the student's billable sessions from months
// before the period, grouped per month. Pricing here is always lenient:
// debt is an estimate for the front desk, and a class with no price rule
// should show as zero owed rather than block the lookup.
func (s *InvoiceServiceImpl) estimateUninvoiced(ctx context.Context, studentID string, month, year int) ([]invoice.DebtEntry, error) {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	cutoff := periodStart.AddDate(0, 0, -1)

	sessions, err := s.sessionRepo.List(ctx, session.SessionFilter{
		StudentID: &studentID,
		DateTo:    &cutoff,
	})
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	classes, courses, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	lenient := pricing.NewResolver(nil, pricing.PolicyLenient)

	byPeriod := make(map[[2]int]decimal.Decimal)
	for _, sess := range sessions {
		rec, ok := sess.RecordFor(studentID)
		if !ok || !rec.Billable() {
			continue
		}
		c, ok := classes[sess.ClassID]
		if !ok {
			continue
		}
		price, err := lenient.SessionPrice(rec.PriceOverride, c, courses)
		if err != nil {
			return nil, err
		}
		key := [2]int{sess.Date.Year(), int(sess.Date.Month())}
		byPeriod[key] = byPeriod[key].Add(price)
	}

	entries := make([]invoice.DebtEntry, 0, len(byPeriod))
	for key, amount := range byPeriod {
		entries = append(entries, invoice.DebtEntry{
			PeriodYear:  key[0],
			PeriodMonth: key[1],
			Amount:      amount,
			Source:      "sessions",
		})
	}
	return entries, nil
}

func (s *InvoiceServiceImpl) GetSummary(ctx context.Context, month, year int) (invoice.InvoiceSummaryResponse, error) {
	return s.invoiceRepo.GetSummary(ctx, month, year)
}

func (s *InvoiceServiceImpl) loadCatalog(ctx context.Context) (map[string]class.Class, []class.Course, error) {
	classList, err := s.classRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	classes := make(map[string]class.Class, len(classList))
	for _, c := range classList {
		classes[c.ID] = c
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return classes, courses, nil
}

// billableStudents collects every student with at least one present or
// excused record across the sessions, in first-seen order.
func billableStudents(sessions []session.Session) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range sessions {
		for _, rec := range s.Records {
			if !rec.Billable() || seen[rec.StudentID] {
				continue
			}
			seen[rec.StudentID] = true
			ids = append(ids, rec.StudentID)
		}
	}
	return ids
}

func toInvoiceResponse(inv invoice.Invoice) invoice.InvoiceResponse {
	resp := invoice.InvoiceResponse{
		ID:            inv.ID,
		StudentID:     inv.StudentID,
		PeriodMonth:   inv.PeriodMonth,
		PeriodYear:    inv.PeriodYear,
		ClassIDs:      inv.ClassIDs,
		Lines:         inv.Lines,
		TotalSessions: inv.TotalSessions,
		TotalAmount:   inv.TotalAmount,
		Discount:      inv.Discount,
		FinalAmount:   inv.FinalAmount,
		Status:        string(inv.Status),
		PaidBy:        inv.PaidBy,
		BankInfo:      inv.BankInfo,
		Notes:         inv.Notes,
		Version:       inv.Version,
	}
	if inv.StudentName != nil {
		resp.StudentName = *inv.StudentName
	}
	if inv.PaidAt != nil {
		paidAt := inv.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}
