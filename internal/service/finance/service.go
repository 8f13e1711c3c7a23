package finance

import (
	"context"
	"fmt"

	"github.com/classtrack/center-backend-go/internal/domain/finance"
	"github.com/classtrack/center-backend-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

// maxExportMonths caps an XLSX export range; anything longer is almost
// certainly a typo in the request.
const maxExportMonths = 36

type FinanceServiceImpl struct {
	financeRepo finance.FinanceRepository
}

func NewFinanceService(financeRepo finance.FinanceRepository) finance.FinanceService {
	return &FinanceServiceImpl{financeRepo: financeRepo}
}

func (s *FinanceServiceImpl) GetMonthlySummary(ctx context.Context, month, year int) (finance.MonthlySummary, error) {
	if !validator.IsValidPeriod(month, year) {
		return finance.MonthlySummary{}, validator.ValidationErrors{
			{Field: "period", Message: "month must be 1-12 and year 2020 or later"},
		}
	}
	return s.financeRepo.GetMonthlySummary(ctx, month, year)
}

func (s *FinanceServiceImpl) ExportMonthlySummary(ctx context.Context, fromMonth, fromYear, toMonth, toYear int) ([]byte, error) {
	if !validator.IsValidPeriod(fromMonth, fromYear) || !validator.IsValidPeriod(toMonth, toYear) {
		return nil, validator.ValidationErrors{
			{Field: "period", Message: "month must be 1-12 and year 2020 or later"},
		}
	}

	months := monthRange(fromMonth, fromYear, toMonth, toYear)
	if months == nil {
		return nil, validator.ValidationErrors{
			{Field: "period", Message: "from must not be after to"},
		}
	}
	if len(months) > maxExportMonths {
		return nil, validator.ValidationErrors{
			{Field: "period", Message: fmt.Sprintf("range must not exceed %d months", maxExportMonths)},
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summary"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Period", "Invoices", "Paid", "Unpaid",
		"Invoiced Amount", "Collected Amount", "Unpaid Amount",
		"Salary Amount", "Salaries Paid", "Expenses", "Net Income",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, period := range months {
		summary, err := s.financeRepo.GetMonthlySummary(ctx, period[0], period[1])
		if err != nil {
			return nil, err
		}

		values := []interface{}{
			fmt.Sprintf("%02d/%d", summary.PeriodMonth, summary.PeriodYear),
			summary.InvoiceCount,
			summary.PaidInvoices,
			summary.UnpaidInvoices,
			summary.InvoicedAmount.InexactFloat64(),
			summary.CollectedAmount.InexactFloat64(),
			summary.UnpaidAmount.InexactFloat64(),
			summary.SalaryAmount.InexactFloat64(),
			summary.SalaryPaidAmount.InexactFloat64(),
			summary.ExpenseAmount.InexactFloat64(),
			summary.NetIncome.InexactFloat64(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// monthRange expands an inclusive (from, to) period pair into [month, year]
// steps; nil when from is after to.
func monthRange(fromMonth, fromYear, toMonth, toYear int) [][2]int {
	if fromYear > toYear || (fromYear == toYear && fromMonth > toMonth) {
		return nil
	}
	var months [][2]int
	m, y := fromMonth, fromYear
	for {
		months = append(months, [2]int{m, y})
		if m == toMonth && y == toYear {
			return months
		}
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
}
