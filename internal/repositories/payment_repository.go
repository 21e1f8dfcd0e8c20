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

type PaymentFilter struct {
	OwnerID    *uuid.UUID
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	Category   *models.PaymentCategoryType
	Status     *models.RecordStatusType
}

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error

	// CreateIfAbsent inserts unless a record already exists for the same
	// (tenant, category, billing period). Returns true when a row was
	// actually inserted. This is the storage-level idempotency guard for
	// bulk rent generation.
	CreateIfAbsent(ctx context.Context, p *models.Payment) (bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	List(ctx context.Context, f PaymentFilter, limit, offset int) ([]*models.Payment, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Payment, error)

	// ListByTenantAndCategories feeds the tenant status reconciler.
	ListByTenantAndCategories(ctx context.Context, tenantID uuid.UUID, categories []models.PaymentCategoryType) ([]*models.Payment, error)

	Update(ctx context.Context, p *models.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentRepo struct {
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func baseSelectPayment() string {
	return `
        SELECT
            id, owner_id, property_id, tenant_id, category, amount,
            status, due_date, paid_date, billing_period, method,
            description, created_at, updated_at
        FROM payments
    `
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.PropertyID,
		&p.TenantID,
		&p.Category,
		&p.Amount,
		&p.Status,
		&p.DueDate,
		&p.PaidDate,
		&p.BillingPeriod,
		&p.Method,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const insertPaymentSQL = `
        INSERT INTO payments (
            id, owner_id, property_id, tenant_id, category, amount,
            status, due_date, paid_date, billing_period, method,
            description, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, NOW(), NOW())
`

func paymentInsertArgs(p *models.Payment) []any {
	return []any{
		p.ID,
		p.OwnerID,
		p.PropertyID,
		p.TenantID,
		p.Category,
		p.Amount,
		p.Status,
		p.DueDate,
		p.PaidDate,
		p.BillingPeriod,
		p.Method,
		p.Description,
	}
}

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	_, err := r.db.Exec(ctx, insertPaymentSQL, paymentInsertArgs(p)...)
	return err
}

func (r *paymentRepo) CreateIfAbsent(ctx context.Context, p *models.Payment) (bool, error) {
	tag, err := r.db.Exec(ctx,
		insertPaymentSQL+" ON CONFLICT (tenant_id, category, billing_period) DO NOTHING",
		paymentInsertArgs(p)...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE id=$1", id)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return p, nil
}

func buildPaymentWhere(f PaymentFilter, args *[]any) string {
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
	if f.TenantID != nil {
		add("tenant_id=", *f.TenantID)
	}
	if f.Category != nil {
		add("category=", string(*f.Category))
	}
	if f.Status != nil {
		add("status=", string(*f.Status))
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *paymentRepo) List(ctx context.Context, f PaymentFilter, limit, offset int) ([]*models.Payment, int, error) {
	var args []any
	where := buildPaymentWhere(f, &args)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM payments"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	q := baseSelectPayment() + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(n+1) +
		" OFFSET $" + strconv.Itoa(n+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *paymentRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, baseSelectPayment()+" WHERE owner_id=$1", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepo) ListByTenantAndCategories(ctx context.Context, tenantID uuid.UUID, categories []models.PaymentCategoryType) ([]*models.Payment, error) {
	cats := make([]string, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, string(c))
	}

	rows, err := r.db.Query(ctx,
		baseSelectPayment()+" WHERE tenant_id=$1 AND category = ANY($2) ORDER BY due_date",
		tenantID, cats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepo) Update(ctx context.Context, p *models.Payment) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE payments SET
            category=$2, amount=$3, status=$4, due_date=$5, paid_date=$6,
            billing_period=$7, method=$8, description=$9, updated_at=NOW()
        WHERE id=$1
    `,
		p.ID,
		p.Category,
		p.Amount,
		p.Status,
		p.DueDate,
		p.PaidDate,
		p.BillingPeriod,
		p.Method,
		p.Description,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
