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

type ComplaintFilter struct {
	OwnerID    *uuid.UUID
	PropertyID *uuid.UUID
	Status     *models.ComplaintStatusType
	Priority   *string
}

type ComplaintRepository interface {
	Create(ctx context.Context, c *models.Complaint) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error)
	List(ctx context.Context, f ComplaintFilter, limit, offset int) ([]*models.Complaint, int, error)
	Update(ctx context.Context, c *models.Complaint) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type complaintRepo struct {
	db DB
}

func NewComplaintRepository(db DB) ComplaintRepository {
	return &complaintRepo{db: db}
}

func baseSelectComplaint() string {
	return `
        SELECT
            id, owner_id, property_id, tenant_id, title, description,
            category, priority, status, resolved_at, created_at, updated_at
        FROM complaints
    `
}

func scanComplaint(row pgx.Row) (*models.Complaint, error) {
	var c models.Complaint
	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.PropertyID,
		&c.TenantID,
		&c.Title,
		&c.Description,
		&c.Category,
		&c.Priority,
		&c.Status,
		&c.ResolvedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *complaintRepo) Create(ctx context.Context, c *models.Complaint) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO complaints (
            id, owner_id, property_id, tenant_id, title, description,
            category, priority, status, resolved_at, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW())
    `,
		c.ID,
		c.OwnerID,
		c.PropertyID,
		c.TenantID,
		c.Title,
		c.Description,
		c.Category,
		c.Priority,
		c.Status,
		c.ResolvedAt,
	)
	return err
}

func (r *complaintRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	row := r.db.QueryRow(ctx, baseSelectComplaint()+" WHERE id=$1", id)
	c, err := scanComplaint(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return c, nil
}

func (r *complaintRepo) List(ctx context.Context, f ComplaintFilter, limit, offset int) ([]*models.Complaint, int, error) {
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
	if f.Status != nil {
		add("status=", string(*f.Status))
	}
	if f.Priority != nil {
		add("priority=", *f.Priority)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM complaints"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := baseSelectComplaint() + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(idx) +
		" OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *complaintRepo) Update(ctx context.Context, c *models.Complaint) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE complaints SET
            title=$2, description=$3, category=$4, priority=$5,
            status=$6, resolved_at=$7, updated_at=NOW()
        WHERE id=$1
    `,
		c.ID,
		c.Title,
		c.Description,
		c.Category,
		c.Priority,
		c.Status,
		c.ResolvedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
