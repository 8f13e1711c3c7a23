package finance

import (
	"bytes"
	"context"
	"testing"

	"github.com/classtrack/center-backend-go/internal/domain/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeFinanceRepo struct {
	summaries map[[2]int]finance.MonthlySummary
}

func (r *fakeFinanceRepo) GetMonthlySummary(ctx context.Context, month, year int) (finance.MonthlySummary, error) {
	if s, ok := r.summaries[[2]int{month, year}]; ok {
		return s, nil
	}
	return finance.MonthlySummary{PeriodMonth: month, PeriodYear: year}, nil
}

func TestMonthRange(t *testing.T) {
	cases := []struct {
		name                   string
		fm, fy, tm, ty         int
		want                   int
		first, last            [2]int
	}{
		{"single month", 3, 2024, 3, 2024, 1, [2]int{3, 2024}, [2]int{3, 2024}},
		{"within a year", 1, 2024, 4, 2024, 4, [2]int{1, 2024}, [2]int{4, 2024}},
		{"across a year boundary", 11, 2023, 2, 2024, 4, [2]int{11, 2023}, [2]int{2, 2024}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := monthRange(c.fm, c.fy, c.tm, c.ty)
			require.Len(t, got, c.want)
			assert.Equal(t, c.first, got[0])
			assert.Equal(t, c.last, got[len(got)-1])
		})
	}

	assert.Nil(t, monthRange(4, 2024, 3, 2024))
	assert.Nil(t, monthRange(1, 2025, 12, 2024))
}

func TestExportMonthlySummary(t *testing.T) {
	repo := &fakeFinanceRepo{summaries: map[[2]int]finance.MonthlySummary{
		{1, 2024}: {
			PeriodMonth: 1, PeriodYear: 2024,
			InvoiceCount: 3, PaidInvoices: 2, UnpaidInvoices: 1,
			InvoicedAmount:  decimal.NewFromInt(2400000),
			CollectedAmount: decimal.NewFromInt(1600000),
			UnpaidAmount:    decimal.NewFromInt(800000),
			SalaryAmount:    decimal.NewFromInt(900000),
			ExpenseAmount:   decimal.NewFromInt(100000),
			NetIncome:       decimal.NewFromInt(600000),
		},
	}}
	svc := NewFinanceService(repo)

	data, err := svc.ExportMonthlySummary(context.Background(), 1, 2024, 2, 2024)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per month")
	assert.Equal(t, "Period", rows[0][0])
	assert.Equal(t, "01/2024", rows[1][0])
	assert.Equal(t, "3", rows[1][1])
	assert.Equal(t, "02/2024", rows[2][0])
}

func TestExportMonthlySummary_InvalidRange(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceRepo{})
	ctx := context.Background()

	_, err := svc.ExportMonthlySummary(ctx, 4, 2024, 3, 2024)
	assert.Error(t, err, "from after to")

	_, err = svc.ExportMonthlySummary(ctx, 13, 2024, 3, 2024)
	assert.Error(t, err, "invalid month")

	_, err = svc.ExportMonthlySummary(ctx, 1, 2020, 12, 2024)
	assert.Error(t, err, "range longer than the cap")
}

func TestGetMonthlySummary_ValidatesPeriod(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceRepo{})

	_, err := svc.GetMonthlySummary(context.Background(), 0, 2024)
	assert.Error(t, err)

	got, err := svc.GetMonthlySummary(context.Background(), 3, 2024)
	require.NoError(t, err)
	assert.Equal(t, 3, got.PeriodMonth)
}
