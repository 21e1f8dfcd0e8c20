package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mansionmuse/backend/internal/models"
)

type MenuRepository interface {
	// Upsert writes the weekly menu, replacing an existing row for the same
	// property and week.
	Upsert(ctx context.Context, m *models.Menu) error
	GetForWeek(ctx context.Context, ownerID, propertyID uuid.UUID, weekStart time.Time) (*models.Menu, error)
}

type menuRepo struct {
	db DB
}

func NewMenuRepository(db DB) MenuRepository {
	return &menuRepo{db: db}
}

func (r *menuRepo) Upsert(ctx context.Context, m *models.Menu) error {
	weekly, err := json.Marshal(m.Weekly)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO menus (
            id, owner_id, property_id, week_start, weekly, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5, NOW(), NOW())
        ON CONFLICT (property_id, week_start)
        DO UPDATE SET weekly=EXCLUDED.weekly, updated_at=NOW()
    `,
		m.ID,
		m.OwnerID,
		m.PropertyID,
		m.WeekStart,
		weekly,
	)
	return err
}

func (r *menuRepo) GetForWeek(ctx context.Context, ownerID, propertyID uuid.UUID, weekStart time.Time) (*models.Menu, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, owner_id, property_id, week_start, weekly, created_at, updated_at
        FROM menus
        WHERE owner_id=$1 AND property_id=$2 AND week_start=$3
    `, ownerID, propertyID, weekStart)

	var (
		m   models.Menu
		raw []byte
	)
	err := row.Scan(&m.ID, &m.OwnerID, &m.PropertyID, &m.WeekStart, &raw, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &m.Weekly); err != nil {
		return nil, err
	}
	return &m, nil
}
