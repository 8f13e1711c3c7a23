package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/classtrack/center-backend-go/internal/domain/expense"
	"github.com/classtrack/center-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type expenseRepository struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	query := `
		INSERT INTO expenses (id, category, description, amount, period_month, period_year, receipt_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, category, description, amount, period_month, period_year, receipt_url, created_at, updated_at
	`

	var created expense.Expense
	err := q.QueryRow(ctx, query,
		e.ID, e.Category, e.Description, e.Amount, e.PeriodMonth, e.PeriodYear, e.ReceiptURL,
	).Scan(
		&created.ID, &created.Category, &created.Description, &created.Amount,
		&created.PeriodMonth, &created.PeriodYear, &created.ReceiptURL,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}

	return created, nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, category, description, amount, period_month, period_year, receipt_url, created_at, updated_at
		FROM expenses
		WHERE id = $1
	`

	var e expense.Expense
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Category, &e.Description, &e.Amount,
		&e.PeriodMonth, &e.PeriodYear, &e.ReceiptURL,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

func (r *expenseRepository) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, category, description, amount, period_month, period_year, receipt_url, created_at, updated_at
		FROM expenses
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		query += fmt.Sprintf(" AND period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		query += fmt.Sprintf(" AND period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, *filter.Category)
		argIdx++
	}

	query += " ORDER BY period_year DESC, period_month DESC, created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []expense.Expense
	for rows.Next() {
		var e expense.Expense
		if err := rows.Scan(
			&e.ID, &e.Category, &e.Description, &e.Amount,
			&e.PeriodMonth, &e.PeriodYear, &e.ReceiptURL,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (r *expenseRepository) Update(ctx context.Context, req expense.UpdateExpenseRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.Category != nil {
		updates = append(updates, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *req.Category)
		argIdx++
	}
	if req.Description != nil {
		updates = append(updates, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}
	if req.Amount != nil {
		updates = append(updates, fmt.Sprintf("amount = $%d", argIdx))
		args = append(args, *req.Amount)
		argIdx++
	}
	if req.ReceiptURL != nil {
		updates = append(updates, fmt.Sprintf("receipt_url = $%d", argIdx))
		args = append(args, *req.ReceiptURL)
		argIdx++
	}

	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(
		"UPDATE expenses SET %s WHERE id = $%d",
		strings.Join(updates, ", "), argIdx,
	)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}
