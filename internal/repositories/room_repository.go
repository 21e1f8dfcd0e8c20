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

// RoomFilter narrows List queries. Nil fields are ignored.
type RoomFilter struct {
	OwnerID    *uuid.UUID
	PropertyID *uuid.UUID
	Status     *models.RoomStatusType
	RoomType   *string
	Search     *string // matched against room_number
}

type RoomRepository interface {
	Create(ctx context.Context, rm *models.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	List(ctx context.Context, f RoomFilter, limit, offset int) ([]*models.Room, int, error)
	Update(ctx context.Context, rm *models.Room) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustOccupancy atomically bumps current_occupancy by delta (may be
	// negative) and keeps status in sync with capacity.
	AdjustOccupancy(ctx context.Context, id uuid.UUID, delta int) error
}

type roomRepo struct {
	db DB
}

func NewRoomRepository(db DB) RoomRepository {
	return &roomRepo{db: db}
}

func baseSelectRoom() string {
	return `
        SELECT
            id, property_id, owner_id, room_number, room_type, floor,
            capacity, current_occupancy, rent, security_deposit, status,
            amenities, created_at, updated_at
        FROM rooms
    `
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	var rm models.Room
	err := row.Scan(
		&rm.ID,
		&rm.PropertyID,
		&rm.OwnerID,
		&rm.RoomNumber,
		&rm.RoomType,
		&rm.Floor,
		&rm.Capacity,
		&rm.CurrentOccupancy,
		&rm.Rent,
		&rm.SecurityDeposit,
		&rm.Status,
		&rm.Amenities,
		&rm.CreatedAt,
		&rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *roomRepo) Create(ctx context.Context, rm *models.Room) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO rooms (
            id, property_id, owner_id, room_number, room_type, floor,
            capacity, current_occupancy, rent, security_deposit, status,
            amenities, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, NOW(), NOW())
    `,
		rm.ID,
		rm.PropertyID,
		rm.OwnerID,
		rm.RoomNumber,
		rm.RoomType,
		rm.Floor,
		rm.Capacity,
		rm.CurrentOccupancy,
		rm.Rent,
		rm.SecurityDeposit,
		rm.Status,
		rm.Amenities,
	)
	return err
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	row := r.db.QueryRow(ctx, baseSelectRoom()+" WHERE id=$1", id)
	rm, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return rm, nil
}

func buildRoomWhere(f RoomFilter, args *[]any) string {
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
	if f.Status != nil {
		add("status=", string(*f.Status))
	}
	if f.RoomType != nil {
		add("room_type=", *f.RoomType)
	}
	if f.Search != nil {
		add("room_number ILIKE ", "%"+*f.Search+"%")
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *roomRepo) List(ctx context.Context, f RoomFilter, limit, offset int) ([]*models.Room, int, error) {
	var args []any
	where := buildRoomWhere(f, &args)

	countQ := "SELECT COUNT(*) FROM rooms" + where
	var total int
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	q := baseSelectRoom() + where +
		" ORDER BY property_id, room_number LIMIT $" + strconv.Itoa(n+1) +
		" OFFSET $" + strconv.Itoa(n+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rm)
	}
	return out, total, rows.Err()
}

func (r *roomRepo) Update(ctx context.Context, rm *models.Room) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE rooms SET
            room_number=$2, room_type=$3, floor=$4, capacity=$5,
            rent=$6, security_deposit=$7, status=$8, amenities=$9,
            updated_at=NOW()
        WHERE id=$1
    `,
		rm.ID,
		rm.RoomNumber,
		rm.RoomType,
		rm.Floor,
		rm.Capacity,
		rm.Rent,
		rm.SecurityDeposit,
		rm.Status,
		rm.Amenities,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roomRepo) AdjustOccupancy(ctx context.Context, id uuid.UUID, delta int) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE rooms SET
            current_occupancy = GREATEST(current_occupancy + $2, 0),
            status = CASE
                WHEN status IN ('Maintenance','Reserved') THEN status
                WHEN GREATEST(current_occupancy + $2, 0) >= capacity THEN 'Occupied'
                ELSE 'Available'
            END,
            updated_at = NOW()
        WHERE id=$1
    `, id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
