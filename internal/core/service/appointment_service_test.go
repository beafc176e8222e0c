package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// --- stubs ---

type stubAppointmentRepo struct {
	byCode    map[string]*domain.Appointment
	createErr error
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{byCode: map[string]*domain.Appointment{}}
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byCode[a.Code] = a
	return nil
}

// FindByCode returns a copy, matching the decode-per-read behaviour of the
// real repository.
func (r *stubAppointmentRepo) FindByCode(_ context.Context, code string) (*domain.Appointment, error) {
	a, ok := r.byCode[code]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	cp := *a
	cp.StatusHistory = append([]domain.StatusHistoryEntry(nil), a.StatusHistory...)
	return &cp, nil
}

func (r *stubAppointmentRepo) List(_ context.Context, filter ports.ListAppointmentsFilter) ([]*domain.Appointment, int64, error) {
	out := make([]*domain.Appointment, 0, len(r.byCode))
	for _, a := range r.byCode {
		if filter.CustomerID != "" && a.CustomerID != filter.CustomerID {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *stubAppointmentRepo) UpdateStatus(_ context.Context, code string, status domain.AppointmentStatus, ts time.Time, notes, technicianID string) error {
	a, ok := r.byCode[code]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	a.Status = status
	if technicianID != "" {
		a.TechnicianID = technicianID
		a.SlotKey = technicianID
	}
	a.StatusHistory = append(a.StatusHistory, domain.StatusHistoryEntry{Status: status, Timestamp: ts, Notes: notes})
	return nil
}

type stubVehicleRepo struct {
	vehicles map[string]*domain.Vehicle
}

func (r *stubVehicleRepo) Create(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	r.vehicles[v.ID] = v
	return v, nil
}

func (r *stubVehicleRepo) FindByID(_ context.Context, id string) (*domain.Vehicle, error) {
	if v, ok := r.vehicles[id]; ok {
		return v, nil
	}
	return nil, domain.ErrVehicleNotFound
}

func (r *stubVehicleRepo) List(_ context.Context, _ ports.ListVehiclesFilter) ([]*domain.Vehicle, int64, error) {
	return nil, 0, nil
}

func (r *stubVehicleRepo) Update(_ context.Context, id string, _ ports.VehicleUpdate) (*domain.Vehicle, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubVehicleRepo) Delete(_ context.Context, _ string) error { return nil }

type stubCatalogRepo struct {
	services map[string]*domain.MaintenanceService
	packages map[string]*domain.ServicePackage
}

func (r *stubCatalogRepo) CreateService(_ context.Context, s *domain.MaintenanceService) (*domain.MaintenanceService, error) {
	r.services[s.ID] = s
	return s, nil
}

func (r *stubCatalogRepo) FindServiceByID(_ context.Context, id string) (*domain.MaintenanceService, error) {
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	return nil, domain.ErrServiceNotFound
}

func (r *stubCatalogRepo) FindServicesByIDs(_ context.Context, ids []string) ([]*domain.MaintenanceService, error) {
	out := make([]*domain.MaintenanceService, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubCatalogRepo) ListServices(_ context.Context, _ ports.ListServicesFilter) ([]*domain.MaintenanceService, int64, error) {
	return nil, 0, nil
}

func (r *stubCatalogRepo) UpdateService(_ context.Context, id string, _ ports.ServiceUpdate) (*domain.MaintenanceService, error) {
	return r.FindServiceByID(context.Background(), id)
}

func (r *stubCatalogRepo) DeleteService(_ context.Context, _ string) error { return nil }

func (r *stubCatalogRepo) CreatePackage(_ context.Context, p *domain.ServicePackage) (*domain.ServicePackage, error) {
	r.packages[p.ID] = p
	return p, nil
}

func (r *stubCatalogRepo) FindPackageByID(_ context.Context, id string) (*domain.ServicePackage, error) {
	if p, ok := r.packages[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPackageNotFound
}

func (r *stubCatalogRepo) ListPackages(_ context.Context, _ bool) ([]*domain.ServicePackage, error) {
	return nil, nil
}

func (r *stubCatalogRepo) DeletePackage(_ context.Context, _ string) error { return nil }

type stubPartRepo struct {
	adjusted map[string]int
}

func (r *stubPartRepo) Create(_ context.Context, p *domain.Part) (*domain.Part, error) { return p, nil }

func (r *stubPartRepo) FindBySKU(_ context.Context, sku string) (*domain.Part, error) {
	return &domain.Part{SKU: sku}, nil
}

func (r *stubPartRepo) List(_ context.Context, _ ports.ListPartsFilter) ([]*domain.Part, int64, error) {
	return nil, 0, nil
}

func (r *stubPartRepo) AdjustStock(_ context.Context, sku string, delta int) (*domain.Part, error) {
	r.adjusted[sku] += delta
	return &domain.Part{SKU: sku, Stock: r.adjusted[sku]}, nil
}

func (r *stubPartRepo) Delete(_ context.Context, _ string) error { return nil }

type stubSlotHolder struct {
	held     map[string]bool
	rejected bool
}

func slotKey(technicianID string, slot time.Time) string {
	return technicianID + "/" + slot.UTC().Format(time.RFC3339)
}

func (s *stubSlotHolder) Hold(_ context.Context, technicianID string, slot time.Time, _ string) (bool, error) {
	if s.rejected {
		return false, nil
	}
	key := slotKey(technicianID, slot)
	if s.held[key] {
		return false, nil
	}
	s.held[key] = true
	return true, nil
}

func (s *stubSlotHolder) Release(_ context.Context, technicianID string, slot time.Time) error {
	delete(s.held, slotKey(technicianID, slot))
	return nil
}

type recordingQueue struct {
	notifications []ports.Notification
}

func (q *recordingQueue) Enqueue(n ports.Notification) {
	q.notifications = append(q.notifications, n)
}

// --- fixture ---

type appointmentFixture struct {
	svc     *AppointmentService
	repo    *stubAppointmentRepo
	slots   *stubSlotHolder
	parts   *stubPartRepo
	queue   *recordingQueue
	catalog *stubCatalogRepo
}

func newAppointmentFixture() *appointmentFixture {
	repo := newStubAppointmentRepo()
	vehicles := &stubVehicleRepo{vehicles: map[string]*domain.Vehicle{
		"veh-1": {ID: "veh-1", OwnerID: "cust-1", Make: "Nio", Model: "ET5"},
	}}
	catalog := &stubCatalogRepo{
		services: map[string]*domain.MaintenanceService{
			"svc-1": {ID: "svc-1", Name: "battery check", Active: true},
			"svc-2": {ID: "svc-2", Name: "brake service", Active: true},
			"svc-3": {ID: "svc-3", Name: "retired", Active: false},
		},
		packages: map[string]*domain.ServicePackage{
			"pkg-1": {ID: "pkg-1", ServiceIDs: []string{"svc-1", "svc-2"}, Active: true},
		},
	}
	parts := &stubPartRepo{adjusted: map[string]int{}}
	slots := &stubSlotHolder{held: map[string]bool{}}
	queue := &recordingQueue{}

	svc := NewAppointmentService(repo, vehicles, catalog, parts, slots, queue, zerolog.Nop())
	return &appointmentFixture{svc: svc, repo: repo, slots: slots, parts: parts, queue: queue, catalog: catalog}
}

var testSlot = time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

func (f *appointmentFixture) book(t *testing.T) *ports.BookingResult {
	t.Helper()
	result, err := f.svc.Book(context.Background(), ports.BookAppointmentInput{
		CustomerID:  "cust-1",
		VehicleID:   "veh-1",
		ServiceIDs:  []string{"svc-1"},
		ScheduledAt: testSlot,
		Parts:       []domain.PartUsage{{SKU: "BRK-001", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return result
}

// --- tests ---

func TestAppointmentService_Book(t *testing.T) {
	f := newAppointmentFixture()

	result := f.book(t)

	if result.Status != string(domain.AppointmentPending) {
		t.Fatalf("expected pending, got %s", result.Status)
	}
	if len(result.Code) == 0 || result.Code[:3] != "EV-" {
		t.Fatalf("unexpected confirmation code %q", result.Code)
	}
	stored, err := f.repo.FindByCode(context.Background(), result.Code)
	if err != nil {
		t.Fatalf("stored appointment missing: %v", err)
	}
	if len(stored.StatusHistory) != 1 || stored.StatusHistory[0].Status != domain.AppointmentPending {
		t.Fatalf("unexpected history %+v", stored.StatusHistory)
	}
	if len(f.queue.notifications) != 1 || f.queue.notifications[0].Status != "pending" {
		t.Fatalf("expected a pending notification, got %+v", f.queue.notifications)
	}
}

func TestAppointmentService_Book_ResolvesPackage(t *testing.T) {
	f := newAppointmentFixture()

	result, err := f.svc.Book(context.Background(), ports.BookAppointmentInput{
		CustomerID:  "cust-1",
		VehicleID:   "veh-1",
		PackageID:   "pkg-1",
		ScheduledAt: testSlot,
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	stored, _ := f.repo.FindByCode(context.Background(), result.Code)
	if len(stored.ServiceIDs) != 2 {
		t.Fatalf("expected package services to be expanded, got %v", stored.ServiceIDs)
	}
}

func TestAppointmentService_Book_VehicleOwnership(t *testing.T) {
	f := newAppointmentFixture()

	_, err := f.svc.Book(context.Background(), ports.BookAppointmentInput{
		CustomerID:  "cust-2", // not the owner of veh-1
		VehicleID:   "veh-1",
		ServiceIDs:  []string{"svc-1"},
		ScheduledAt: testSlot,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAppointmentService_Book_InactiveService(t *testing.T) {
	f := newAppointmentFixture()

	_, err := f.svc.Book(context.Background(), ports.BookAppointmentInput{
		CustomerID:  "cust-1",
		VehicleID:   "veh-1",
		ServiceIDs:  []string{"svc-3"},
		ScheduledAt: testSlot,
	})
	if !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestAppointmentService_Book_SlotConflict(t *testing.T) {
	f := newAppointmentFixture()
	f.book(t)

	_, err := f.svc.Book(context.Background(), ports.BookAppointmentInput{
		CustomerID:  "cust-1",
		VehicleID:   "veh-1",
		ServiceIDs:  []string{"svc-2"},
		ScheduledAt: testSlot, // same slot, same (empty) technician pool
	})
	if !errors.Is(err, domain.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestAppointmentService_Book_ReleasesSlotOnCreateFailure(t *testing.T) {
	f := newAppointmentFixture()
	f.repo.createErr = errors.New("write failed")

	_, err := f.svc.Book(context.Background(), ports.BookAppointmentInput{
		CustomerID:  "cust-1",
		VehicleID:   "veh-1",
		ServiceIDs:  []string{"svc-1"},
		ScheduledAt: testSlot,
	})
	if err == nil {
		t.Fatalf("expected create error")
	}
	if len(f.slots.held) != 0 {
		t.Fatalf("slot must be released after a failed create")
	}
}

func TestAppointmentService_ChangeStatus_InvalidTransition(t *testing.T) {
	f := newAppointmentFixture()
	result := f.book(t)

	_, err := f.svc.ChangeStatus(context.Background(), ports.ChangeStatusInput{
		Code:   result.Code,
		Status: domain.AppointmentCompleted, // pending -> completed is not allowed
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestAppointmentService_ChangeStatus_CompletionConsumesParts(t *testing.T) {
	f := newAppointmentFixture()
	result := f.book(t)

	for _, status := range []domain.AppointmentStatus{
		domain.AppointmentConfirmed,
		domain.AppointmentInProgress,
		domain.AppointmentCompleted,
	} {
		if _, err := f.svc.ChangeStatus(context.Background(), ports.ChangeStatusInput{
			Code:   result.Code,
			Status: status,
		}); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}

	if f.parts.adjusted["BRK-001"] != -2 {
		t.Fatalf("expected BRK-001 stock reduced by 2, got %d", f.parts.adjusted["BRK-001"])
	}
	if len(f.slots.held) != 0 {
		t.Fatalf("slot must be released on completion")
	}
	// booked + 3 transitions
	if len(f.queue.notifications) != 4 {
		t.Fatalf("expected 4 notifications, got %d", len(f.queue.notifications))
	}
}

func TestAppointmentService_ChangeStatus_AssignmentMovesSlotHold(t *testing.T) {
	f := newAppointmentFixture()
	// Booked without a technician: the hold lives under the shared pool key.
	result := f.book(t)

	if _, err := f.svc.ChangeStatus(context.Background(), ports.ChangeStatusInput{
		Code:         result.Code,
		Status:       domain.AppointmentConfirmed,
		TechnicianID: "tech-1",
	}); err != nil {
		t.Fatalf("confirm with assignment: %v", err)
	}

	if f.slots.held[slotKey("pool", testSlot)] {
		t.Fatalf("pool hold must be released once a technician is assigned")
	}
	if !f.slots.held[slotKey("tech-1", testSlot)] {
		t.Fatalf("assigned technician's slot must be claimed")
	}

	// The technician's calendar is now guarded against double-booking.
	_, err := f.svc.Book(context.Background(), ports.BookAppointmentInput{
		CustomerID:   "cust-1",
		VehicleID:    "veh-1",
		ServiceIDs:   []string{"svc-2"},
		TechnicianID: "tech-1",
		ScheduledAt:  testSlot,
	})
	if !errors.Is(err, domain.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken for the assigned technician's slot, got %v", err)
	}

	for _, status := range []domain.AppointmentStatus{
		domain.AppointmentInProgress,
		domain.AppointmentCompleted,
	} {
		if _, err := f.svc.ChangeStatus(context.Background(), ports.ChangeStatusInput{
			Code:   result.Code,
			Status: status,
		}); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}

	if len(f.slots.held) != 0 {
		t.Fatalf("no hold may survive completion, got %v", f.slots.held)
	}
}

func TestAppointmentService_ChangeStatus_AssignmentConflict(t *testing.T) {
	f := newAppointmentFixture()
	result := f.book(t)
	// tech-1 already has a booking in that slot.
	f.slots.held[slotKey("tech-1", testSlot)] = true

	_, err := f.svc.ChangeStatus(context.Background(), ports.ChangeStatusInput{
		Code:         result.Code,
		Status:       domain.AppointmentConfirmed,
		TechnicianID: "tech-1",
	})
	if !errors.Is(err, domain.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	// The original hold stays in place and the booking is untouched.
	if !f.slots.held[slotKey("pool", testSlot)] {
		t.Fatalf("pool hold must survive a failed assignment")
	}
	stored, _ := f.repo.FindByCode(context.Background(), result.Code)
	if stored.Status != domain.AppointmentPending {
		t.Fatalf("expected pending after failed assignment, got %s", stored.Status)
	}
}

func TestAppointmentService_Cancel_OwnerOnly(t *testing.T) {
	f := newAppointmentFixture()
	result := f.book(t)

	_, err := f.svc.Cancel(context.Background(),
		ports.AccessScope{UserID: "cust-2", Role: domain.RoleCustomer}, result.Code)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	cancelled, err := f.svc.Cancel(context.Background(),
		ports.AccessScope{UserID: "cust-1", Role: domain.RoleCustomer}, result.Code)
	if err != nil {
		t.Fatalf("cancel by owner: %v", err)
	}
	if cancelled.Status != domain.AppointmentCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if len(f.slots.held) != 0 {
		t.Fatalf("slot must be released on cancellation")
	}
}

func TestAppointmentService_List_ScopesCustomers(t *testing.T) {
	f := newAppointmentFixture()
	f.book(t)

	// A different customer must not see cust-1's bookings.
	appointments, total, err := f.svc.List(context.Background(),
		ports.AccessScope{UserID: "cust-2", Role: domain.RoleCustomer},
		ports.ListAppointmentsFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 || len(appointments) != 0 {
		t.Fatalf("expected empty listing for another customer, got %d", total)
	}

	// Staff see everything.
	_, total, err = f.svc.List(context.Background(),
		ports.AccessScope{UserID: "staff-1", Role: domain.RoleStaff},
		ports.ListAppointmentsFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected staff to see 1 booking, got %d", total)
	}
}
