package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/models"
)

// TenantFilter narrows List queries. Nil fields are ignored.
type TenantFilter struct {
	OwnerID       *uuid.UUID
	PropertyID    *uuid.UUID
	RoomID        *uuid.UUID
	Status        *models.TenantStatusType
	PaymentStatus *models.TenantPaymentStatusType
	Search        *string // matched against name, email, phone
}

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	List(ctx context.Context, f TenantFilter, limit, offset int) ([]*models.Tenant, int, error)
	ListByStatus(ctx context.Context, f TenantFilter, status models.TenantStatusType) ([]*models.Tenant, error)
	Update(ctx context.Context, t *models.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateStatusIfVersion persists only the derived status fields,
	// guarded by row_version. Used by the reconciler's retry loop.
	UpdateStatusIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error)
}

type tenantRepo struct {
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	return &tenantRepo{db: db}
}

func baseSelectTenant() string {
	return `
        SELECT
            id, owner_id, property_id, room_id,
            name, email, phone, gender, occupation,
            rent_amount, security_deposit,
            joining_date, leaving_date,
            status, payment_status, deposit_status,
            notes, created_at, updated_at, row_version
        FROM tenants
    `
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.PropertyID,
		&t.RoomID,
		&t.Name,
		&t.Email,
		&t.Phone,
		&t.Gender,
		&t.Occupation,
		&t.RentAmount,
		&t.SecurityDeposit,
		&t.JoiningDate,
		&t.LeavingDate,
		&t.Status,
		&t.PaymentStatus,
		&t.DepositStatus,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.RowVersion,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO tenants (
            id, owner_id, property_id, room_id,
            name, email, phone, gender, occupation,
            rent_amount, security_deposit,
            joining_date, leaving_date,
            status, payment_status, deposit_status,
            notes, created_at, updated_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,
            NOW(), NOW(), 1
        )
    `,
		t.ID,
		t.OwnerID,
		t.PropertyID,
		t.RoomID,
		t.Name,
		t.Email,
		t.Phone,
		t.Gender,
		t.Occupation,
		t.RentAmount,
		t.SecurityDeposit,
		t.JoiningDate,
		t.LeavingDate,
		t.Status,
		t.PaymentStatus,
		t.DepositStatus,
		t.Notes,
	)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	row := r.db.QueryRow(ctx, baseSelectTenant()+" WHERE id=$1", id)
	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return t, nil
}

func buildTenantWhere(f TenantFilter, args *[]any) string {
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
	if f.RoomID != nil {
		add("room_id=", *f.RoomID)
	}
	if f.Status != nil {
		add("status=", string(*f.Status))
	}
	if f.PaymentStatus != nil {
		add("payment_status=", string(*f.PaymentStatus))
	}
	if f.Search != nil {
		pat := "%" + *f.Search + "%"
		conds = append(conds,
			"(name ILIKE $"+strconv.Itoa(idx)+" OR email ILIKE $"+strconv.Itoa(idx)+" OR phone ILIKE $"+strconv.Itoa(idx)+")")
		*args = append(*args, pat)
		idx++
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *tenantRepo) List(ctx context.Context, f TenantFilter, limit, offset int) ([]*models.Tenant, int, error) {
	var args []any
	where := buildTenantWhere(f, &args)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tenants"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	q := baseSelectTenant() + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(n+1) +
		" OFFSET $" + strconv.Itoa(n+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *tenantRepo) ListByStatus(ctx context.Context, f TenantFilter, status models.TenantStatusType) ([]*models.Tenant, error) {
	f.Status = &status
	var args []any
	where := buildTenantWhere(f, &args)

	rows, err := r.db.Query(ctx, baseSelectTenant()+where+" ORDER BY created_at", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tenantRepo) Update(ctx context.Context, t *models.Tenant) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE tenants SET
            room_id=$2, name=$3, email=$4, phone=$5, gender=$6,
            occupation=$7, rent_amount=$8, security_deposit=$9,
            joining_date=$10, leaving_date=$11, status=$12, notes=$13,
            updated_at=NOW()
        WHERE id=$1
    `,
		t.ID,
		t.RoomID,
		t.Name,
		t.Email,
		t.Phone,
		t.Gender,
		t.Occupation,
		t.RentAmount,
		t.SecurityDeposit,
		t.JoiningDate,
		t.LeavingDate,
		t.Status,
		t.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tenantRepo) UpdateStatusIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE tenants SET
            payment_status=$2, deposit_status=$3,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$1 AND row_version=$4
    `,
		t.ID,
		t.PaymentStatus,
		t.DepositStatus,
		expected,
	)
}
