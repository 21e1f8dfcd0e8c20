package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/require"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/utils"
)

type fakeMealRepo struct {
	mu    sync.Mutex
	meals map[uuid.UUID]*models.Meal
}

func newFakeMealRepo(ms ...*models.Meal) *fakeMealRepo {
	r := &fakeMealRepo{meals: map[uuid.UUID]*models.Meal{}}
	for _, m := range ms {
		cp := *m
		r.meals[m.ID] = &cp
	}
	return r
}

func (r *fakeMealRepo) Create(_ context.Context, m *models.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.meals[m.ID] = &cp
	return nil
}

func (r *fakeMealRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMealRepo) List(_ context.Context, f repositories.MealFilter, _, _ int) ([]*models.Meal, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Meal
	for _, m := range r.meals {
		if f.OwnerID != nil && m.OwnerID != *f.OwnerID {
			continue
		}
		if f.PropertyID != nil && (m.PropertyID == nil || *m.PropertyID != *f.PropertyID) {
			continue
		}
		if f.Diet != nil && m.Diet != *f.Diet {
			continue
		}
		if f.ActiveOnly && !m.IsActive {
			continue
		}
		if f.Search != nil && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(*f.Search)) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeMealRepo) Update(_ context.Context, m *models.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meals[m.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *m
	r.meals[m.ID] = &cp
	return nil
}

func (r *fakeMealRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meals[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.meals, id)
	return nil
}

// fakeMenuRepo keys rows by (property, week start), matching the unique
// constraint the real table enforces.
type fakeMenuRepo struct {
	mu    sync.Mutex
	menus map[string]*models.Menu
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{menus: map[string]*models.Menu{}}
}

func menuKey(propertyID uuid.UUID, weekStart time.Time) string {
	return propertyID.String() + "|" + weekStart.UTC().Format(time.RFC3339)
}

func (r *fakeMenuRepo) Upsert(_ context.Context, m *models.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := menuKey(m.PropertyID, m.WeekStart)
	if existing, ok := r.menus[key]; ok {
		existing.Weekly = m.Weekly
		return nil
	}
	cp := *m
	r.menus[key] = &cp
	return nil
}

func (r *fakeMenuRepo) GetForWeek(_ context.Context, ownerID, propertyID uuid.UUID, weekStart time.Time) (*models.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.menus[menuKey(propertyID, weekStart)]
	if !ok || m.OwnerID != ownerID {
		return nil, pgx.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMenuRepo) rowCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.menus)
}

func newTestMealService(mealRepo *fakeMealRepo, menuRepo *fakeMenuRepo, tenantRepo *fakeTenantRepo, propertyRepo *fakePropertyRepo) *MealService {
	return NewMealService(mealRepo, menuRepo, tenantRepo, propertyRepo, newTestEmailService())
}

func catalogMeal(ownerID uuid.UUID, diet models.DietType, active bool) *models.Meal {
	return &models.Meal{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Name:     "Thali",
		Slot:     models.MealSlotLunch,
		Diet:     diet,
		IsActive: active,
	}
}

func TestStartOfWeekNormalizesToMonday(t *testing.T) {
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	// A mid-week time collapses to that week's Monday midnight.
	wednesday := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)
	require.Equal(t, monday, StartOfWeek(wednesday))

	// Sunday belongs to the week that started the previous Monday, not the
	// next one.
	sunday := time.Date(2024, 6, 16, 23, 59, 0, 0, time.UTC)
	require.Equal(t, monday, StartOfWeek(sunday))

	require.Equal(t, monday, StartOfWeek(monday))
}

func TestMealUpdateAppliesPartialChanges(t *testing.T) {
	ownerID := uuid.New()
	meal := catalogMeal(ownerID, models.DietVegetarian, true)
	svc := newTestMealService(newFakeMealRepo(meal), newFakeMenuRepo(), newFakeTenantRepo(), newFakePropertyRepo())

	name := "Executive Thali"
	inactive := false
	got, err := svc.Update(context.Background(), meal.ID, dtos.UpdateMealRequest{
		Name:     &name,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	require.Equal(t, "Executive Thali", got.Name)
	require.False(t, got.IsActive)
	require.Equal(t, models.DietVegetarian, got.Diet)
}

func TestMealUpdateUnknownIDNotFound(t *testing.T) {
	svc := newTestMealService(newFakeMealRepo(), newFakeMenuRepo(), newFakeTenantRepo(), newFakePropertyRepo())

	name := "Anything"
	_, err := svc.Update(context.Background(), uuid.New(), dtos.UpdateMealRequest{Name: &name})
	require.ErrorIs(t, err, utils.ErrNotFound)

	require.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), utils.ErrNotFound)
}

func TestMealStatsCountsCatalog(t *testing.T) {
	ownerID := uuid.New()
	full := catalogMeal(ownerID, models.DietNonVegetarian, true)
	maxServings := 10
	full.MaxServings = &maxServings
	full.Subscribers = 10

	svc := newTestMealService(newFakeMealRepo(
		catalogMeal(ownerID, models.DietVegetarian, true),
		catalogMeal(ownerID, models.DietVegetarian, false),
		full,
		catalogMeal(uuid.New(), models.DietVegetarian, true), // someone else's catalog
	), newFakeMenuRepo(), newFakeTenantRepo(), newFakePropertyRepo())

	stats, err := svc.Stats(context.Background(), ownerID)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 1, stats.Available) // inactive and fully-booked excluded
	require.Equal(t, 2, stats.Vegetarian)
	require.Equal(t, 1, stats.NonVegetarian)
}

func TestGetMenuEmptyWeekCarriesWeekStart(t *testing.T) {
	svc := newTestMealService(newFakeMealRepo(), newFakeMenuRepo(), newFakeTenantRepo(), newFakePropertyRepo())

	date := time.Date(2024, 6, 13, 9, 0, 0, 0, time.UTC)
	resp, err := svc.GetMenu(context.Background(), uuid.New(), uuid.New(), date)
	require.NoError(t, err)
	require.Nil(t, resp.Menu)
	require.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), resp.WeekStart)
}

func TestUpsertMenuReplacesSameWeek(t *testing.T) {
	ownerID := uuid.New()
	property := &models.Property{ID: uuid.New(), OwnerID: ownerID, Name: "Sunrise Residency"}
	menuRepo := newFakeMenuRepo()
	svc := newTestMealService(newFakeMealRepo(), menuRepo, newFakeTenantRepo(), newFakePropertyRepo(property))

	date := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	first := models.WeeklyMenu{Monday: models.DayMenu{Breakfast: []string{"Poha"}}}
	menu, err := svc.UpsertMenu(context.Background(), ownerID, dtos.UpsertMenuRequest{
		PropertyID: property.ID,
		Date:       &date,
		Weekly:     first,
	})
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), menu.WeekStart)

	// A second write for any day of the same week replaces the menu instead
	// of adding a row.
	laterSameWeek := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
	second := models.WeeklyMenu{Monday: models.DayMenu{Breakfast: []string{"Idli"}}}
	_, err = svc.UpsertMenu(context.Background(), ownerID, dtos.UpsertMenuRequest{
		PropertyID: property.ID,
		Date:       &laterSameWeek,
		Weekly:     second,
	})
	require.NoError(t, err)
	require.Equal(t, 1, menuRepo.rowCount())

	resp, err := svc.GetMenu(context.Background(), ownerID, property.ID, date)
	require.NoError(t, err)
	require.NotNil(t, resp.Menu)
	require.Equal(t, []string{"Idli"}, resp.Menu.Weekly.Monday.Breakfast)
}

func TestUpsertMenuRejectsForeignProperty(t *testing.T) {
	otherOwners := &models.Property{ID: uuid.New(), OwnerID: uuid.New(), Name: "Elsewhere"}
	svc := newTestMealService(newFakeMealRepo(), newFakeMenuRepo(), newFakeTenantRepo(), newFakePropertyRepo(otherOwners))

	_, err := svc.UpsertMenu(context.Background(), uuid.New(), dtos.UpsertMenuRequest{PropertyID: uuid.New()})
	require.ErrorIs(t, err, utils.ErrNotFound)

	// A property that exists but belongs to someone else is indistinguishable
	// from a missing one.
	_, err = svc.UpsertMenu(context.Background(), uuid.New(), dtos.UpsertMenuRequest{PropertyID: otherOwners.ID})
	require.ErrorIs(t, err, utils.ErrNotFound)
}
