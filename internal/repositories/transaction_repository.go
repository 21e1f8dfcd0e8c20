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

type TransactionFilter struct {
	OwnerID *uuid.UUID
	Status  *models.TransactionStatusType
	Method  *string
}

type TransactionRepository interface {
	Create(ctx context.Context, t *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	GetByGatewayOrderID(ctx context.Context, orderID string) (*models.Transaction, error)
	List(ctx context.Context, f TransactionFilter, limit, offset int) ([]*models.Transaction, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TransactionStatusType, gatewayPaymentID string) error
}

type transactionRepo struct {
	db DB
}

func NewTransactionRepository(db DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func baseSelectTransaction() string {
	return `
        SELECT
            id, owner_id, plan_name, amount, currency, status, method,
            gateway_order_id, gateway_payment_id, description,
            created_at, updated_at
        FROM transactions
    `
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.PlanName,
		&t.Amount,
		&t.Currency,
		&t.Status,
		&t.Method,
		&t.GatewayOrderID,
		&t.GatewayPaymentID,
		&t.Description,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO transactions (
            id, owner_id, plan_name, amount, currency, status, method,
            gateway_order_id, gateway_payment_id, description,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW())
    `,
		t.ID,
		t.OwnerID,
		t.PlanName,
		t.Amount,
		t.Currency,
		t.Status,
		t.Method,
		t.GatewayOrderID,
		t.GatewayPaymentID,
		t.Description,
	)
	return err
}

func (r *transactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	row := r.db.QueryRow(ctx, baseSelectTransaction()+" WHERE id=$1", id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return t, nil
}

func (r *transactionRepo) GetByGatewayOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	row := r.db.QueryRow(ctx, baseSelectTransaction()+" WHERE gateway_order_id=$1", orderID)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return t, nil
}

func (r *transactionRepo) List(ctx context.Context, f TransactionFilter, limit, offset int) ([]*models.Transaction, int, error) {
	var (
		conds []string
		args  []any
		idx   = 1
	)
	add := func(cond string, val any) {
		conds = append(conds, cond+"$"+strconv.Itoa(idx))
		args = append(args, val)
		idx++
	}
	if f.OwnerID != nil {
		add("owner_id=", *f.OwnerID)
	}
	if f.Status != nil {
		add("status=", string(*f.Status))
	}
	if f.Method != nil {
		add("method=", *f.Method)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := baseSelectTransaction() + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(idx) +
		" OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *transactionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TransactionStatusType, gatewayPaymentID string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE transactions SET
            status=$2,
            gateway_payment_id=COALESCE(NULLIF($3,''), gateway_payment_id),
            updated_at=NOW()
        WHERE id=$1
    `, id, status, gatewayPaymentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
