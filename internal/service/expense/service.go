package expense

import (
	"context"

	"github.com/classtrack/center-backend-go/internal/domain/expense"
)

type ExpenseServiceImpl struct {
	expenseRepo expense.ExpenseRepository
}

func NewExpenseService(expenseRepo expense.ExpenseRepository) expense.ExpenseService {
	return &ExpenseServiceImpl{expenseRepo: expenseRepo}
}

func (s *ExpenseServiceImpl) CreateExpense(ctx context.Context, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	created, err := s.expenseRepo.Create(ctx, expense.Expense{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return toExpenseResponse(created), nil
}

func (s *ExpenseServiceImpl) GetExpense(ctx context.Context, id string) (expense.ExpenseResponse, error) {
	rec, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return toExpenseResponse(rec), nil
}

func (s *ExpenseServiceImpl) ListExpenses(ctx context.Context, filter expense.ExpenseFilter) ([]expense.ExpenseResponse, error) {
	records, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]expense.ExpenseResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toExpenseResponse(rec))
	}
	return responses, nil
}

func (s *ExpenseServiceImpl) UpdateExpense(ctx context.Context, req expense.UpdateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	if err := s.expenseRepo.Update(ctx, req); err != nil {
		return expense.ExpenseResponse{}, err
	}
	rec, err := s.expenseRepo.GetByID(ctx, req.ID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return toExpenseResponse(rec), nil
}

func (s *ExpenseServiceImpl) DeleteExpense(ctx context.Context, id string) error {
	return s.expenseRepo.Delete(ctx, id)
}

func toExpenseResponse(rec expense.Expense) expense.ExpenseResponse {
	return expense.ExpenseResponse{
		ID:          rec.ID,
		Category:    rec.Category,
		Description: rec.Description,
		Amount:      rec.Amount,
		PeriodMonth: rec.PeriodMonth,
		PeriodYear:  rec.PeriodYear,
		ReceiptURL:  rec.ReceiptURL,
	}
}
