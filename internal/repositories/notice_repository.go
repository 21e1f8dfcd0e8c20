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

type NoticeFilter struct {
	OwnerID    *uuid.UUID
	PropertyID *uuid.UUID
	Audience   *models.NoticeAudienceType
	ActiveOnly bool // effective now and not expired
}

type NoticeRepository interface {
	Create(ctx context.Context, n *models.Notice) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notice, error)
	List(ctx context.Context, f NoticeFilter, limit, offset int) ([]*models.Notice, int, error)
	Update(ctx context.Context, n *models.Notice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type noticeRepo struct {
	db DB
}

func NewNoticeRepository(db DB) NoticeRepository {
	return &noticeRepo{db: db}
}

func baseSelectNotice() string {
	return `
        SELECT
            id, owner_id, property_id, title, body, audience,
            effective_from, expires_at, created_at, updated_at
        FROM notices
    `
}

func scanNotice(row pgx.Row) (*models.Notice, error) {
	var n models.Notice
	err := row.Scan(
		&n.ID,
		&n.OwnerID,
		&n.PropertyID,
		&n.Title,
		&n.Body,
		&n.Audience,
		&n.EffectiveFrom,
		&n.ExpiresAt,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *noticeRepo) Create(ctx context.Context, n *models.Notice) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO notices (
            id, owner_id, property_id, title, body, audience,
            effective_from, expires_at, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW())
    `,
		n.ID,
		n.OwnerID,
		n.PropertyID,
		n.Title,
		n.Body,
		n.Audience,
		n.EffectiveFrom,
		n.ExpiresAt,
	)
	return err
}

func (r *noticeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Notice, error) {
	row := r.db.QueryRow(ctx, baseSelectNotice()+" WHERE id=$1", id)
	n, err := scanNotice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return n, nil
}

func (r *noticeRepo) List(ctx context.Context, f NoticeFilter, limit, offset int) ([]*models.Notice, int, error) {
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
	if f.Audience != nil {
		add("audience=", string(*f.Audience))
	}
	if f.ActiveOnly {
		conds = append(conds, "effective_from <= NOW() AND (expires_at IS NULL OR expires_at > NOW())")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM notices"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := baseSelectNotice() + where +
		" ORDER BY effective_from DESC LIMIT $" + strconv.Itoa(idx) +
		" OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

func (r *noticeRepo) Update(ctx context.Context, n *models.Notice) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE notices SET
            title=$2, body=$3, audience=$4, effective_from=$5,
            expires_at=$6, updated_at=NOW()
        WHERE id=$1
    `,
		n.ID,
		n.Title,
		n.Body,
		n.Audience,
		n.EffectiveFrom,
		n.ExpiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *noticeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
