package services

import (
	"context"
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

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*models.Room
}

func newFakeRoomRepo(rs ...*models.Room) *fakeRoomRepo {
	r := &fakeRoomRepo{rooms: map[uuid.UUID]*models.Room{}}
	for _, rm := range rs {
		cp := *rm
		r.rooms[rm.ID] = &cp
	}
	return r
}

func (r *fakeRoomRepo) Create(_ context.Context, rm *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rm
	r.rooms[rm.ID] = &cp
	return nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *rm
	return &cp, nil
}

func (r *fakeRoomRepo) List(_ context.Context, _ repositories.RoomFilter, _, _ int) ([]*models.Room, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Room, 0, len(r.rooms))
	for _, rm := range r.rooms {
		cp := *rm
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRoomRepo) Update(_ context.Context, rm *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[rm.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *rm
	r.rooms[rm.ID] = &cp
	return nil
}

func (r *fakeRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.rooms, id)
	return nil
}

func (r *fakeRoomRepo) AdjustOccupancy(_ context.Context, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[id]
	if !ok {
		return pgx.ErrNoRows
	}
	rm.CurrentOccupancy += delta
	if rm.CurrentOccupancy >= rm.Capacity {
		rm.Status = models.RoomStatusOccupied
	} else {
		rm.Status = models.RoomStatusAvailable
	}
	return nil
}

type fakePropertyRepo struct {
	mu    sync.Mutex
	props map[uuid.UUID]*models.Property
}

func newFakePropertyRepo(ps ...*models.Property) *fakePropertyRepo {
	r := &fakePropertyRepo{props: map[uuid.UUID]*models.Property{}}
	for _, p := range ps {
		cp := *p
		r.props[p.ID] = &cp
	}
	return r
}

func (r *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.props[p.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.props[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (r *fakePropertyRepo) ListByOwnerID(_ context.Context, ownerID uuid.UUID, _, _ int) ([]*models.Property, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Property
	for _, p := range r.props {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.props[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *p
	r.props[p.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.props[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.props, id)
	return nil
}

func (r *fakePropertyRepo) CountByOwnerID(_ context.Context, ownerID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.props {
		if p.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

type onboardFixture struct {
	ownerID     uuid.UUID
	property    *models.Property
	room        *models.Room
	tenantRepo  *fakeTenantRepo
	roomRepo    *fakeRoomRepo
	paymentRepo *fakePaymentRepo
	svc         *TenantService
}

func newOnboardFixture() *onboardFixture {
	ownerID := uuid.New()
	property := &models.Property{ID: uuid.New(), OwnerID: ownerID, Name: "Sunrise PG"}
	room := &models.Room{
		ID:         uuid.New(),
		PropertyID: property.ID,
		OwnerID:    ownerID,
		RoomNumber: "101",
		RoomType:   "Double",
		Capacity:   2,
		Status:     models.RoomStatusAvailable,
	}

	tenantRepo := newFakeTenantRepo()
	roomRepo := newFakeRoomRepo(room)
	propertyRepo := newFakePropertyRepo(property)
	paymentRepo := newFakePaymentRepo()
	email := newTestEmailService()
	finance := NewFinanceService(newFakeOwnerRepo(), tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo(), email)

	return &onboardFixture{
		ownerID:     ownerID,
		property:    property,
		room:        room,
		tenantRepo:  tenantRepo,
		roomRepo:    roomRepo,
		paymentRepo: paymentRepo,
		svc:         NewTenantService(tenantRepo, roomRepo, propertyRepo, paymentRepo, finance, email),
	}
}

func (f *onboardFixture) createRequest(deposit float64) dtos.CreateTenantRequest {
	return dtos.CreateTenantRequest{
		PropertyID:      f.property.ID,
		RoomID:          f.room.ID,
		Name:            "Asha Verma",
		Email:           "asha@example.com",
		Phone:           "+919876543210",
		RentAmount:      8000,
		SecurityDeposit: deposit,
		JoiningDate:     time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestOnboardOpensMoveInRecords(t *testing.T) {
	f := newOnboardFixture()

	tenant, err := f.svc.Onboard(context.Background(), f.ownerID, f.createRequest(5000))
	require.NoError(t, err)
	require.Equal(t, models.TenantStatusActive, tenant.Status)
	require.Equal(t, models.TenantPaymentPending, tenant.PaymentStatus)
	require.Equal(t, models.DepositPending, tenant.DepositStatus)

	records, err := f.paymentRepo.ListByTenantAndCategories(context.Background(), tenant.ID, models.ReconcilableCategories)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byCategory := map[models.PaymentCategoryType]*models.Payment{}
	for _, r := range records {
		byCategory[r.Category] = r
	}
	require.Equal(t, 8000.0, byCategory[models.CategoryRent].Amount)
	require.Equal(t, 5000.0, byCategory[models.CategorySecurityDeposit].Amount)

	room, _ := f.roomRepo.GetByID(context.Background(), f.room.ID)
	require.Equal(t, 1, room.CurrentOccupancy)
}

func TestOnboardZeroDepositSkipsDepositRecord(t *testing.T) {
	f := newOnboardFixture()

	tenant, err := f.svc.Onboard(context.Background(), f.ownerID, f.createRequest(0))
	require.NoError(t, err)
	require.Equal(t, models.DepositPaid, tenant.DepositStatus)

	records, _ := f.paymentRepo.ListByTenantAndCategories(context.Background(), tenant.ID, models.ReconcilableCategories)
	require.Len(t, records, 1)
	require.Equal(t, models.CategoryRent, records[0].Category)
}

func TestOnboardRejectsFullRoom(t *testing.T) {
	f := newOnboardFixture()
	f.room.CurrentOccupancy = 2
	require.NoError(t, f.roomRepo.Update(context.Background(), f.room))

	_, err := f.svc.Onboard(context.Background(), f.ownerID, f.createRequest(5000))
	require.Error(t, err)

	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	require.Equal(t, 409, appErr.StatusCode)
}

func TestOnboardRejectsRoomUnderMaintenance(t *testing.T) {
	f := newOnboardFixture()
	f.room.Status = models.RoomStatusMaintenance
	require.NoError(t, f.roomRepo.Update(context.Background(), f.room))

	_, err := f.svc.Onboard(context.Background(), f.ownerID, f.createRequest(5000))
	require.Error(t, err)
}

func TestOnboardUnknownRoom(t *testing.T) {
	f := newOnboardFixture()
	req := f.createRequest(5000)
	req.RoomID = uuid.New()

	_, err := f.svc.Onboard(context.Background(), f.ownerID, req)
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestOverridePaymentStatus(t *testing.T) {
	f := newOnboardFixture()

	tenant, err := f.svc.Onboard(context.Background(), f.ownerID, f.createRequest(0))
	require.NoError(t, err)
	require.Equal(t, models.TenantPaymentPending, tenant.PaymentStatus)

	updated, err := f.svc.OverridePaymentStatus(context.Background(), tenant.ID, models.TenantPaymentPaid)
	require.NoError(t, err)
	require.Equal(t, models.TenantPaymentPaid, updated.PaymentStatus)

	_, err = f.svc.OverridePaymentStatus(context.Background(), uuid.New(), models.TenantPaymentPaid)
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDepartReleasesRoom(t *testing.T) {
	f := newOnboardFixture()

	tenant, err := f.svc.Onboard(context.Background(), f.ownerID, f.createRequest(0))
	require.NoError(t, err)

	require.NoError(t, f.svc.Depart(context.Background(), tenant.ID))

	_, err = f.tenantRepo.GetByID(context.Background(), tenant.ID)
	require.ErrorIs(t, err, pgx.ErrNoRows)

	room, _ := f.roomRepo.GetByID(context.Background(), f.room.ID)
	require.Equal(t, 0, room.CurrentOccupancy)
}
