package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/models"
)

type PlanRepository interface {
	Create(ctx context.Context, p *models.Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	GetByName(ctx context.Context, name string) (*models.Plan, error)
	ListAll(ctx context.Context) ([]*models.Plan, error)
	Update(ctx context.Context, p *models.Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type planRepo struct {
	db DB
}

func NewPlanRepository(db DB) PlanRepository {
	return &planRepo{db: db}
}

func baseSelectPlan() string {
	return `
        SELECT
            id, name, price_monthly, allowed_modules, max_properties,
            is_active, created_at, updated_at
        FROM plans
    `
}

func scanPlan(row pgx.Row) (*models.Plan, error) {
	var p models.Plan
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.PriceMonthly,
		&p.AllowedModules,
		&p.MaxProperties,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) Create(ctx context.Context, p *models.Plan) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO plans (
            id, name, price_monthly, allowed_modules, max_properties,
            is_active, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW())
    `,
		p.ID,
		p.Name,
		p.PriceMonthly,
		p.AllowedModules,
		p.MaxProperties,
		p.IsActive,
	)
	return err
}

func (r *planRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	row := r.db.QueryRow(ctx, baseSelectPlan()+" WHERE id=$1", id)
	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return p, nil
}

func (r *planRepo) GetByName(ctx context.Context, name string) (*models.Plan, error) {
	row := r.db.QueryRow(ctx, baseSelectPlan()+" WHERE name=$1", name)
	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return p, nil
}

func (r *planRepo) ListAll(ctx context.Context) ([]*models.Plan, error) {
	rows, err := r.db.Query(ctx, baseSelectPlan()+" ORDER BY price_monthly")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *planRepo) Update(ctx context.Context, p *models.Plan) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE plans SET
            name=$2, price_monthly=$3, allowed_modules=$4, max_properties=$5,
            is_active=$6, updated_at=NOW()
        WHERE id=$1
    `,
		p.ID,
		p.Name,
		p.PriceMonthly,
		p.AllowedModules,
		p.MaxProperties,
		p.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *planRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
