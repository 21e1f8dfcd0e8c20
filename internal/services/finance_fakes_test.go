package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/mansionmuse/backend/internal/config"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
)

// In-memory repository fakes. They mimic the storage contracts the
// services rely on: pgx.ErrNoRows on missing rows, version-guarded tenant
// status writes, and uniqueness on billing-period inserts.

type fakeTenantRepo struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*models.Tenant

	// statusWrites counts successful UpdateStatusIfVersion applications.
	statusWrites int
	// failFirstStatusWrite simulates one lost optimistic-lock race.
	failFirstStatusWrite bool
}

func newFakeTenantRepo(ts ...*models.Tenant) *fakeTenantRepo {
	r := &fakeTenantRepo{tenants: map[uuid.UUID]*models.Tenant{}}
	for _, t := range ts {
		if t.RowVersion == 0 {
			t.RowVersion = 1
		}
		r.tenants[t.ID] = cloneTenant(t)
	}
	return r
}

func cloneTenant(t *models.Tenant) *models.Tenant {
	cp := *t
	return &cp
}

func (r *fakeTenantRepo) Create(_ context.Context, t *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[t.ID] = cloneTenant(t)
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cloneTenant(t), nil
}

func (r *fakeTenantRepo) List(_ context.Context, _ repositories.TenantFilter, _, _ int) ([]*models.Tenant, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		out = append(out, cloneTenant(t))
	}
	return out, len(out), nil
}

func (r *fakeTenantRepo) ListByStatus(_ context.Context, f repositories.TenantFilter, status models.TenantStatusType) ([]*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Tenant
	for _, t := range r.tenants {
		if t.Status != status {
			continue
		}
		if f.OwnerID != nil && t.OwnerID != *f.OwnerID {
			continue
		}
		if f.PropertyID != nil && t.PropertyID != *f.PropertyID {
			continue
		}
		out = append(out, cloneTenant(t))
	}
	return out, nil
}

func (r *fakeTenantRepo) Update(_ context.Context, t *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tenants[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.tenants[t.ID] = cloneTenant(t)
	return nil
}

func (r *fakeTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tenants[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tenants, id)
	return nil
}

func (r *fakeTenantRepo) UpdateStatusIfVersion(_ context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.tenants[t.ID]
	if !ok {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	if r.failFirstStatusWrite {
		r.failFirstStatusWrite = false
		cur.RowVersion++
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	if cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cur.PaymentStatus = t.PaymentStatus
	cur.DepositStatus = t.DepositStatus
	cur.RowVersion++
	r.statusWrites++
	return pgconn.CommandTag("UPDATE 1"), nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*models.Payment
}

func newFakePaymentRepo(ps ...*models.Payment) *fakePaymentRepo {
	r := &fakePaymentRepo{payments: map[uuid.UUID]*models.Payment{}}
	for _, p := range ps {
		r.payments[p.ID] = clonePayment(p)
	}
	return r
}

func clonePayment(p *models.Payment) *models.Payment {
	cp := *p
	return &cp
}

func (r *fakePaymentRepo) Create(_ context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.payments {
		if ex.TenantID == p.TenantID && ex.Category == p.Category && ex.BillingPeriod.Equal(p.BillingPeriod) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "payments_tenant_id_category_billing_period_key"}
		}
	}
	r.payments[p.ID] = clonePayment(p)
	return nil
}

func (r *fakePaymentRepo) CreateIfAbsent(_ context.Context, p *models.Payment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.payments {
		if ex.TenantID == p.TenantID && ex.Category == p.Category && ex.BillingPeriod.Equal(p.BillingPeriod) {
			return false, nil
		}
	}
	r.payments[p.ID] = clonePayment(p)
	return true, nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return clonePayment(p), nil
}

func (r *fakePaymentRepo) List(_ context.Context, _ repositories.PaymentFilter, _, _ int) ([]*models.Payment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, clonePayment(p))
	}
	return out, len(out), nil
}

func (r *fakePaymentRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Payment
	for _, p := range r.payments {
		if p.OwnerID == ownerID {
			out = append(out, clonePayment(p))
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListByTenantAndCategories(_ context.Context, tenantID uuid.UUID, categories []models.PaymentCategoryType) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Payment
	for _, p := range r.payments {
		if p.TenantID != tenantID {
			continue
		}
		for _, c := range categories {
			if p.Category == c {
				out = append(out, clonePayment(p))
				break
			}
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.payments[p.ID] = clonePayment(p)
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.payments, id)
	return nil
}

type fakeStaffRepo struct {
	mu    sync.Mutex
	staff map[uuid.UUID]*models.Staff
}

func newFakeStaffRepo(ss ...*models.Staff) *fakeStaffRepo {
	r := &fakeStaffRepo{staff: map[uuid.UUID]*models.Staff{}}
	for _, s := range ss {
		cp := *s
		r.staff[s.ID] = &cp
	}
	return r
}

func (r *fakeStaffRepo) Create(_ context.Context, s *models.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.staff[s.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.staff[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStaffRepo) List(_ context.Context, _ repositories.StaffFilter, _, _ int) ([]*models.Staff, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Staff, 0, len(r.staff))
	for _, s := range r.staff {
		cp := *s
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeStaffRepo) ListActive(_ context.Context, f repositories.StaffFilter) ([]*models.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Staff
	for _, s := range r.staff {
		if !s.IsActive {
			continue
		}
		if f.OwnerID != nil && s.OwnerID != *f.OwnerID {
			continue
		}
		if f.PropertyID != nil && s.PropertyID != *f.PropertyID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStaffRepo) Update(_ context.Context, s *models.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.staff[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *s
	r.staff[s.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.staff[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.staff, id)
	return nil
}

type fakeExpenseRepo struct {
	mu       sync.Mutex
	expenses map[uuid.UUID]*models.Expense
}

func newFakeExpenseRepo(es ...*models.Expense) *fakeExpenseRepo {
	r := &fakeExpenseRepo{expenses: map[uuid.UUID]*models.Expense{}}
	for _, e := range es {
		cp := *e
		r.expenses[e.ID] = &cp
	}
	return r
}

func (r *fakeExpenseRepo) Create(_ context.Context, e *models.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.expenses {
		if ex.StaffID != nil && e.StaffID != nil &&
			*ex.StaffID == *e.StaffID && ex.Category == e.Category && ex.BillingPeriod.Equal(e.BillingPeriod) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "expenses_staff_id_category_billing_period_key"}
		}
	}
	cp := *e
	r.expenses[e.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) CreateIfAbsent(_ context.Context, e *models.Expense) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.expenses {
		if ex.StaffID != nil && e.StaffID != nil &&
			*ex.StaffID == *e.StaffID && ex.Category == e.Category && ex.BillingPeriod.Equal(e.BillingPeriod) {
			return false, nil
		}
	}
	cp := *e
	r.expenses[e.ID] = &cp
	return true, nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseRepo) List(_ context.Context, _ repositories.ExpenseFilter, _, _ int) ([]*models.Expense, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Expense, 0, len(r.expenses))
	for _, e := range r.expenses {
		cp := *e
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeExpenseRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Expense
	for _, e := range r.expenses {
		if e.OwnerID == ownerID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) Update(_ context.Context, e *models.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[e.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *e
	r.expenses[e.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.expenses, id)
	return nil
}

type fakeOwnerRepo struct {
	mu     sync.Mutex
	owners map[uuid.UUID]*models.Owner
}

func newFakeOwnerRepo(os ...*models.Owner) *fakeOwnerRepo {
	r := &fakeOwnerRepo{owners: map[uuid.UUID]*models.Owner{}}
	for _, o := range os {
		cp := *o
		r.owners[o.ID] = &cp
	}
	return r
}

func (r *fakeOwnerRepo) Create(_ context.Context, o *models.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.owners[o.ID] = &cp
	return nil
}

func (r *fakeOwnerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.owners[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOwnerRepo) GetByEmail(_ context.Context, email string) (*models.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.owners {
		if o.Email == email {
			cp := *o
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeOwnerRepo) Update(_ context.Context, o *models.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owners[o.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *o
	r.owners[o.ID] = &cp
	return nil
}

func (r *fakeOwnerRepo) SetPlan(_ context.Context, ownerID, planID uuid.UUID, planName string, activeAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.owners[ownerID]
	if !ok {
		return pgx.ErrNoRows
	}
	o.PlanID = &planID
	o.PlanName = planName
	o.PlanActiveAt = &activeAt
	return nil
}

func (r *fakeOwnerRepo) List(_ context.Context, limit, offset int) ([]*models.Owner, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*models.Owner, 0, len(r.owners))
	for _, o := range r.owners {
		cp := *o
		all = append(all, &cp)
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// noopMailSender keeps service tests off the network.
type noopMailSender struct{}

func (noopMailSender) Send(*mail.SGMailV3) (*rest.Response, error) {
	return &rest.Response{StatusCode: 202}, nil
}

func newTestEmailService() *EmailService {
	return &EmailService{
		cfg:    &config.Config{OrganizationName: "MansionMuse", LDFlag_SendgridSandboxMode: true},
		client: noopMailSender{},
	}
}

func newTestFinanceService(
	tenants *fakeTenantRepo,
	staff *fakeStaffRepo,
	payments *fakePaymentRepo,
	expenses *fakeExpenseRepo,
) *FinanceService {
	return NewFinanceService(newFakeOwnerRepo(), tenants, staff, payments, expenses, newTestEmailService())
}
