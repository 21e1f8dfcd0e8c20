package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type OwnerRepository interface {
	Create(ctx context.Context, o *models.Owner) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Owner, error)
	GetByEmail(ctx context.Context, email string) (*models.Owner, error)
	Update(ctx context.Context, o *models.Owner) error
	SetPlan(ctx context.Context, ownerID, planID uuid.UUID, planName string, activeAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*models.Owner, int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type ownerRepo struct {
	db DB
}

func NewOwnerRepository(db DB) OwnerRepository {
	return &ownerRepo{db: db}
}

func baseSelectOwner() string {
	return `
        SELECT
            id, name, email, phone, password_hash, role, pg_name,
            plan_id, plan_name, plan_active_at, is_active,
            created_at, updated_at
        FROM owners
    `
}

func scanOwner(row pgx.Row) (*models.Owner, error) {
	var o models.Owner
	err := row.Scan(
		&o.ID,
		&o.Name,
		&o.Email,
		&o.Phone,
		&o.PasswordHash,
		&o.Role,
		&o.PGName,
		&o.PlanID,
		&o.PlanName,
		&o.PlanActiveAt,
		&o.IsActive,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ownerRepo) Create(ctx context.Context, o *models.Owner) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO owners (
            id, name, email, phone, password_hash, role, pg_name,
            plan_id, plan_name, plan_active_at, is_active,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, NOW(), NOW())
    `,
		o.ID,
		o.Name,
		o.Email,
		o.Phone,
		o.PasswordHash,
		o.Role,
		o.PGName,
		o.PlanID,
		o.PlanName,
		o.PlanActiveAt,
		o.IsActive,
	)
	return err
}

func (r *ownerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Owner, error) {
	row := r.db.QueryRow(ctx, baseSelectOwner()+" WHERE id=$1", id)
	o, err := scanOwner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return o, nil
}

func (r *ownerRepo) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	row := r.db.QueryRow(ctx, baseSelectOwner()+" WHERE email=$1", email)
	o, err := scanOwner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return o, nil
}

func (r *ownerRepo) Update(ctx context.Context, o *models.Owner) error {
	_, err := r.db.Exec(ctx, `
        UPDATE owners SET
            name=$2, phone=$3, pg_name=$4, is_active=$5, updated_at=NOW()
        WHERE id=$1
    `,
		o.ID,
		o.Name,
		o.Phone,
		o.PGName,
		o.IsActive,
	)
	return err
}

func (r *ownerRepo) SetPlan(ctx context.Context, ownerID, planID uuid.UUID, planName string, activeAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE owners SET plan_id=$2, plan_name=$3, plan_active_at=$4, updated_at=NOW()
        WHERE id=$1
    `, ownerID, planID, planName, activeAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ownerRepo) List(ctx context.Context, limit, offset int) ([]*models.Owner, int, error) {
	rows, err := r.db.Query(ctx, baseSelectOwner()+" ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Owner
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM owners`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
