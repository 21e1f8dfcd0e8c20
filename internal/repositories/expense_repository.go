package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/models"
)

type ExpenseFilter struct {
	OwnerID    *uuid.UUID
	PropertyID *uuid.UUID
	StaffID    *uuid.UUID
	Category   *models.ExpenseCategoryType
	Status     *models.RecordStatusType

	// SalaryOnly / NonSalary split the consolidated finance listing.
	SalaryOnly bool
	NonSalary  bool
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *models.Expense) error

	// CreateIfAbsent inserts unless a salary record already exists for the
	// same (staff, category, billing period). Returns true when inserted.
	CreateIfAbsent(ctx context.Context, e *models.Expense) (bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, f ExpenseFilter, limit, offset int) ([]*models.Expense, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Expense, error)
	Update(ctx context.Context, e *models.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseRepo struct {
	db DB
}

func NewExpenseRepository(db DB) ExpenseRepository {
	return &expenseRepo{db: db}
}

func baseSelectExpense() string {
	return `
        SELECT
            id, owner_id, property_id, staff_id, category, amount,
            status, date, billing_period, paid_to, payment_method,
            description, created_at, updated_at
        FROM expenses
    `
}

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.PropertyID,
		&e.StaffID,
		&e.Category,
		&e.Amount,
		&e.Status,
		&e.Date,
		&e.BillingPeriod,
		&e.PaidTo,
		&e.PaymentMethod,
		&e.Description,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

const insertExpenseSQL = `
        INSERT INTO expenses (
            id, owner_id, property_id, staff_id, category, amount,
            status, date, billing_period, paid_to, payment_method,
            description, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, NOW(), NOW())
`

func expenseInsertArgs(e *models.Expense) []any {
	return []any{
		e.ID,
		e.OwnerID,
		e.PropertyID,
		e.StaffID,
		e.Category,
		e.Amount,
		e.Status,
		e.Date,
		e.BillingPeriod,
		e.PaidTo,
		e.PaymentMethod,
		e.Description,
	}
}

func (r *expenseRepo) Create(ctx context.Context, e *models.Expense) error {
	_, err := r.db.Exec(ctx, insertExpenseSQL, expenseInsertArgs(e)...)
	return err
}

func (r *expenseRepo) CreateIfAbsent(ctx context.Context, e *models.Expense) (bool, error) {
	tag, err := r.db.Exec(ctx,
		insertExpenseSQL+" ON CONFLICT (staff_id, category, billing_period) DO NOTHING",
		expenseInsertArgs(e)...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *expenseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	row := r.db.QueryRow(ctx, baseSelectExpense()+" WHERE id=$1", id)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return e, nil
}

func buildExpenseWhere(f ExpenseFilter, args *[]any) string {
	var conds []string
	idx := 1
	add := func(cond string, val any) {
		conds = append(conds, cond+"$"+strconv.Itoa(idx))
		*args = append(*args, val)
		idx++
	}
	if f.OwnerID != nil {
		add("owner_id=", *f.OwnerID)
	}
	if f.PropertyID != nil {
		add("property_id=", *f.PropertyID)
	}
	if f.StaffID != nil {
		add("staff_id=", *f.StaffID)
	}
	if f.Category != nil {
		add("category=", string(*f.Category))
	}
	if f.Status != nil {
		add("status=", string(*f.Status))
	}
	if f.SalaryOnly {
		conds = append(conds, "category='Staff Salary'")
	}
	if f.NonSalary {
		conds = append(conds, "category<>'Staff Salary'")
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *expenseRepo) List(ctx context.Context, f ExpenseFilter, limit, offset int) ([]*models.Expense, int, error) {
	var args []any
	where := buildExpenseWhere(f, &args)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM expenses"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	q := baseSelectExpense() + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(n+1) +
		" OFFSET $" + strconv.Itoa(n+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *expenseRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Expense, error) {
	rows, err := r.db.Query(ctx, baseSelectExpense()+" WHERE owner_id=$1", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *expenseRepo) Update(ctx context.Context, e *models.Expense) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE expenses SET
            category=$2, amount=$3, status=$4, date=$5, billing_period=$6,
            paid_to=$7, payment_method=$8, description=$9, updated_at=NOW()
        WHERE id=$1
    `,
		e.ID,
		e.Category,
		e.Amount,
		e.Status,
		e.Date,
		e.BillingPeriod,
		e.PaidTo,
		e.PaymentMethod,
		e.Description,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *expenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
