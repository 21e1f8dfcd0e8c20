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

type StaffFilter struct {
	OwnerID    *uuid.UUID
	PropertyID *uuid.UUID
	ActiveOnly bool
	Search     *string
}

type StaffRepository interface {
	Create(ctx context.Context, s *models.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error)
	List(ctx context.Context, f StaffFilter, limit, offset int) ([]*models.Staff, int, error)
	ListActive(ctx context.Context, f StaffFilter) ([]*models.Staff, error)
	Update(ctx context.Context, s *models.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type staffRepo struct {
	db DB
}

func NewStaffRepository(db DB) StaffRepository {
	return &staffRepo{db: db}
}

func baseSelectStaff() string {
	return `
        SELECT
            id, owner_id, property_id, name, email, phone, role,
            salary, joining_date, is_active, created_at, updated_at
        FROM staff
    `
}

func scanStaff(row pgx.Row) (*models.Staff, error) {
	var s models.Staff
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.PropertyID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.Role,
		&s.Salary,
		&s.JoiningDate,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepo) Create(ctx context.Context, s *models.Staff) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO staff (
            id, owner_id, property_id, name, email, phone, role,
            salary, joining_date, is_active, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW())
    `,
		s.ID,
		s.OwnerID,
		s.PropertyID,
		s.Name,
		s.Email,
		s.Phone,
		s.Role,
		s.Salary,
		s.JoiningDate,
		s.IsActive,
	)
	return err
}

func (r *staffRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	row := r.db.QueryRow(ctx, baseSelectStaff()+" WHERE id=$1", id)
	s, err := scanStaff(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return s, nil
}

func buildStaffWhere(f StaffFilter, args *[]any) string {
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
	if f.Search != nil {
		add("name ILIKE ", "%"+*f.Search+"%")
	}
	if f.ActiveOnly {
		conds = append(conds, "is_active=TRUE")
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *staffRepo) List(ctx context.Context, f StaffFilter, limit, offset int) ([]*models.Staff, int, error) {
	var args []any
	where := buildStaffWhere(f, &args)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM staff"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	q := baseSelectStaff() + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(n+1) +
		" OFFSET $" + strconv.Itoa(n+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *staffRepo) ListActive(ctx context.Context, f StaffFilter) ([]*models.Staff, error) {
	f.ActiveOnly = true
	var args []any
	where := buildStaffWhere(f, &args)

	rows, err := r.db.Query(ctx, baseSelectStaff()+where+" ORDER BY created_at", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *staffRepo) Update(ctx context.Context, s *models.Staff) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE staff SET
            name=$2, email=$3, phone=$4, role=$5, salary=$6,
            joining_date=$7, is_active=$8, updated_at=NOW()
        WHERE id=$1
    `,
		s.ID,
		s.Name,
		s.Email,
		s.Phone,
		s.Role,
		s.Salary,
		s.JoiningDate,
		s.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM staff WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
