package finance

import "github.com/shopspring/decimal"

// MonthlySummary is the per-month financial overview: tuition billed and
// collected, teacher pay, expenses, and the resulting net.
type MonthlySummary struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`

	InvoiceCount    int             `json:"invoice_count"`
	PaidInvoices    int             `json:"paid_invoices"`
	UnpaidInvoices  int             `json:"unpaid_invoices"`
	InvoicedAmount  decimal.Decimal `json:"invoiced_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	UnpaidAmount    decimal.Decimal `json:"unpaid_amount"`

	SalaryCount      int             `json:"salary_count"`
	SalaryAmount     decimal.Decimal `json:"salary_amount"`
	SalaryPaidAmount decimal.Decimal `json:"salary_paid_amount"`

	ExpenseCount  int             `json:"expense_count"`
	ExpenseAmount decimal.Decimal `json:"expense_amount"`

	// NetIncome = collected tuition − paid salaries − expenses.
	NetIncome decimal.Decimal `json:"net_income"`
}
