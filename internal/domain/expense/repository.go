package expense

import "context"

type ExpenseRepository interface {
	Create(ctx context.Context, e Expense) (Expense, error)
	GetByID(ctx context.Context, id string) (Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	Update(ctx context.Context, req UpdateExpenseRequest) error
	Delete(ctx context.Context, id string) error
}
