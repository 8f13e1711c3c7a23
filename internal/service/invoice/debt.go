package invoice

import (
	"sort"

	"github.com/classtrack/center-backend-go/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// ComputeOutstanding builds the debt carried into a period from two
// sources: persisted invoices from earlier months, and session-derived
// estimates for earlier months that were never invoiced. The sources are
// exclusive per month. Any invoice, paid or not, claims its month: a paid
// invoice contributes nothing and a session estimate for that month is
// discarded rather than double counted.
func ComputeOutstanding(prior []invoice.Invoice, estimates []invoice.DebtEntry) ([]invoice.DebtEntry, decimal.Decimal) {
	invoiced := make(map[[2]int]bool, len(prior))

	var entries []invoice.DebtEntry
	for _, inv := range prior {
		invoiced[[2]int{inv.PeriodYear, inv.PeriodMonth}] = true
		if inv.Status != invoice.InvoiceStatusUnpaid {
			continue
		}
		if !inv.FinalAmount.IsPositive() {
			continue
		}
		entries = append(entries, invoice.DebtEntry{
			PeriodMonth: inv.PeriodMonth,
			PeriodYear:  inv.PeriodYear,
			Amount:      inv.FinalAmount,
			Source:      "invoice",
		})
	}

	for _, est := range estimates {
		if invoiced[[2]int{est.PeriodYear, est.PeriodMonth}] {
			continue
		}
		if !est.Amount.IsPositive() {
			continue
		}
		est.Source = "sessions"
		entries = append(entries, est)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PeriodYear != entries[j].PeriodYear {
			return entries[i].PeriodYear < entries[j].PeriodYear
		}
		return entries[i].PeriodMonth < entries[j].PeriodMonth
	})

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return entries, total
}
