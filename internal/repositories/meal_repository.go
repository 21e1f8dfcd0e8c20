package repositories

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/models"
)

type MealFilter struct {
	OwnerID    *uuid.UUID
	PropertyID *uuid.UUID
	Diet       *models.DietType
	ActiveOnly bool
	Search     *string // matched against name
}

type MealRepository interface {
	Create(ctx context.Context, m *models.Meal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Meal, error)
	List(ctx context.Context, f MealFilter, limit, offset int) ([]*models.Meal, int, error)
	Update(ctx context.Context, m *models.Meal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type mealRepo struct {
	db DB
}

func NewMealRepository(db DB) MealRepository {
	return &mealRepo{db: db}
}

func baseSelectMeal() string {
	return `
        SELECT
            id, owner_id, property_id, name, slot, diet, cuisine,
            max_servings, subscribers, features, is_active, description,
            created_at, updated_at
        FROM meals
    `
}

func scanMeal(row pgx.Row) (*models.Meal, error) {
	var m models.Meal
	err := row.Scan(
		&m.ID,
		&m.OwnerID,
		&m.PropertyID,
		&m.Name,
		&m.Slot,
		&m.Diet,
		&m.Cuisine,
		&m.MaxServings,
		&m.Subscribers,
		&m.Features,
		&m.IsActive,
		&m.Description,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mealRepo) Create(ctx context.Context, m *models.Meal) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO meals (
            id, owner_id, property_id, name, slot, diet, cuisine,
            max_servings, subscribers, features, is_active, description,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, NOW(), NOW())
    `,
		m.ID,
		m.OwnerID,
		m.PropertyID,
		m.Name,
		m.Slot,
		m.Diet,
		m.Cuisine,
		m.MaxServings,
		m.Subscribers,
		m.Features,
		m.IsActive,
		m.Description,
	)
	return err
}

func (r *mealRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Meal, error) {
	row := r.db.QueryRow(ctx, baseSelectMeal()+" WHERE id=$1", id)
	return scanMeal(row)
}

func (r *mealRepo) List(ctx context.Context, f MealFilter, limit, offset int) ([]*models.Meal, int, error) {
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
	if f.PropertyID != nil {
		add("property_id=", *f.PropertyID)
	}
	if f.Diet != nil {
		add("diet=", string(*f.Diet))
	}
	if f.ActiveOnly {
		conds = append(conds, "is_active")
	}
	if f.Search != nil {
		add("name ILIKE ", "%"+*f.Search+"%")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM meals"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := baseSelectMeal() + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(idx) +
		" OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *mealRepo) Update(ctx context.Context, m *models.Meal) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE meals SET
            property_id=$2, name=$3, slot=$4, diet=$5, cuisine=$6,
            max_servings=$7, subscribers=$8, features=$9, is_active=$10,
            description=$11, updated_at=NOW()
        WHERE id=$1
    `,
		m.ID,
		m.PropertyID,
		m.Name,
		m.Slot,
		m.Diet,
		m.Cuisine,
		m.MaxServings,
		m.Subscribers,
		m.Features,
		m.IsActive,
		m.Description,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *mealRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM meals WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
