package dispatch

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

// --------------------------------------------------
// Mock Repository + ShopReader
// --------------------------------------------------

type MockRepository struct {
	bookings    map[string]*Booking
	assignments []*Assignment
	options     []TechnicianOption
	nextID      int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{bookings: make(map[string]*Booking), nextID: 1}
}

func (m *MockRepository) addBooking(id, shopID string, status BookingStatus) {
	m.bookings[id] = &Booking{
		ID:            id,
		CustomerID:    "cust-1",
		ShopID:        shopID,
		Status:        status,
		ScheduledDate: time.Now().Add(24 * time.Hour),
	}
}

func (m *MockRepository) GetBooking(ctx context.Context, bookingID string) (*Booking, error) {
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *MockRepository) Assign(ctx context.Context, booking *Booking, assignment *Assignment) error {
	stored, ok := m.bookings[booking.ID]
	if !ok {
		return ErrBookingNotFound
	}
	stored.Status = booking.Status
	stored.ShopTechnicianID = assignment.AssignedTo

	assignment.ID = "a-" + strconv.Itoa(m.nextID)
	m.nextID++
	assignment.Status = AssignmentAssigned
	assignment.CreatedAt = time.Now()
	m.assignments = append(m.assignments, assignment)
	return nil
}

func (m *MockRepository) Reassign(ctx context.Context, bookingID, newTechnicianID string, assignment *Assignment) error {
	stored, ok := m.bookings[bookingID]
	if !ok {
		return ErrBookingNotFound
	}

	for _, a := range m.assignments {
		if a.BookingID == bookingID && a.Status == AssignmentAssigned {
			a.Status = AssignmentReassigned
		}
	}

	stored.ShopTechnicianID = newTechnicianID

	assignment.ID = "a-" + strconv.Itoa(m.nextID)
	m.nextID++
	assignment.Status = AssignmentAssigned
	assignment.CreatedAt = time.Now()
	m.assignments = append(m.assignments, assignment)
	return nil
}

func (m *MockRepository) ListAvailableByWorkload(ctx context.Context, shopID string) ([]TechnicianOption, error) {
	return m.options, nil
}

func (m *MockRepository) ListAssignments(ctx context.Context, bookingID string) ([]*Assignment, error) {
	var out []*Assignment
	for _, a := range m.assignments {
		if a.BookingID == bookingID {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockShopReader struct{}

func (mockShopReader) IsOwner(ctx context.Context, shopID, userID string) (bool, error) {
	return shopID == "shop-1" && userID == "owner-1", nil
}

func (mockShopReader) ShopIDForOwner(ctx context.Context, ownerID string) (string, error) {
	if ownerID == "owner-1" {
		return "shop-1", nil
	}
	return "", ErrBookingNotFound
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestAssignJob_Success(t *testing.T) {
	repo := NewMockRepository()
	repo.addBooking("b1", "shop-1", StatusPending)
	service := NewService(repo, mockShopReader{})

	err := service.AssignJob(context.Background(), "owner-1", "b1", "tech-1", "shop-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	booking := repo.bookings["b1"]
	if booking.Status != StatusConfirmed {
		t.Errorf("expected confirmed, got %s", booking.Status)
	}
	if booking.ShopTechnicianID != "tech-1" {
		t.Errorf("expected tech-1, got %s", booking.ShopTechnicianID)
	}

	if len(repo.assignments) != 1 {
		t.Fatalf("expected 1 assignment record, got %d", len(repo.assignments))
	}
	a := repo.assignments[0]
	if a.AssignmentType != AssignmentManual || a.Status != AssignmentAssigned || a.AssignedBy != "owner-1" {
		t.Errorf("unexpected assignment record: %+v", a)
	}
}

func TestAssignJob_Unauthorized(t *testing.T) {
	repo := NewMockRepository()
	repo.addBooking("b1", "shop-1", StatusPending)
	service := NewService(repo, mockShopReader{})

	err := service.AssignJob(context.Background(), "intruder", "b1", "tech-1", "shop-1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(repo.assignments) != 0 {
		t.Error("expected no mutation on authorization failure")
	}
}

func TestAssignJob_BookingFromAnotherShop(t *testing.T) {
	repo := NewMockRepository()
	repo.addBooking("b1", "shop-2", StatusPending)
	service := NewService(repo, mockShopReader{})

	err := service.AssignJob(context.Background(), "owner-1", "b1", "tech-1", "shop-1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAssignJob_CompletedBookingRejected(t *testing.T) {
	repo := NewMockRepository()
	repo.addBooking("b1", "shop-1", StatusCompleted)
	service := NewService(repo, mockShopReader{})

	err := service.AssignJob(context.Background(), "owner-1", "b1", "tech-1", "shop-1")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestReassignJob_AuditTrail(t *testing.T) {
	repo := NewMockRepository()
	repo.addBooking("b1", "shop-1", StatusPending)
	service := NewService(repo, mockShopReader{})

	if err := service.AssignJob(context.Background(), "owner-1", "b1", "tech-A", "shop-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.ReassignJob(context.Background(), "owner-1", "b1", "tech-B", "shop-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	booking := repo.bookings["b1"]
	if booking.ShopTechnicianID != "tech-B" {
		t.Errorf("expected booking to point at tech-B, got %s", booking.ShopTechnicianID)
	}
	// Reassignment must not advance the status chain.
	if booking.Status != StatusConfirmed {
		t.Errorf("expected status to stay confirmed, got %s", booking.Status)
	}

	assignments, _ := repo.ListAssignments(context.Background(), "b1")
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignment records, got %d", len(assignments))
	}

	var assigned, reassigned int
	for _, a := range assignments {
		switch a.Status {
		case AssignmentAssigned:
			assigned++
			if a.AssignedTo != "tech-B" {
				t.Errorf("active assignment should point at tech-B, got %s", a.AssignedTo)
			}
		case AssignmentReassigned:
			reassigned++
			if a.AssignedTo != "tech-A" {
				t.Errorf("retired assignment should point at tech-A, got %s", a.AssignedTo)
			}
		}
	}
	if assigned != 1 || reassigned != 1 {
		t.Errorf("expected exactly one assigned and one reassigned record, got %d/%d", assigned, reassigned)
	}
}

func TestReassignJob_TerminalBookingRejected(t *testing.T) {
	repo := NewMockRepository()
	repo.addBooking("b1", "shop-1", StatusCancelled)
	service := NewService(repo, mockShopReader{})

	err := service.ReassignJob(context.Background(), "owner-1", "b1", "tech-B", "shop-1")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestAutoAssignJob_PicksLeastLoaded(t *testing.T) {
	repo := NewMockRepository()
	repo.addBooking("b1", "shop-1", StatusPending)
	repo.options = []TechnicianOption{
		{ID: "tech-idle", TotalJobs: 2},
		{ID: "tech-busy", TotalJobs: 9},
	}
	service := NewService(repo, mockShopReader{})

	techID, err := service.AutoAssignJob(context.Background(), "owner-1", "b1", "shop-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if techID != "tech-idle" {
		t.Errorf("expected tech-idle, got %s", techID)
	}

	if len(repo.assignments) != 1 || repo.assignments[0].AssignmentType != AssignmentAuto {
		t.Errorf("expected one auto assignment record, got %+v", repo.assignments)
	}
}

func TestAutoAssignJob_NoTechnicians(t *testing.T) {
	repo := NewMockRepository()
	repo.addBooking("b1", "shop-1", StatusPending)
	service := NewService(repo, mockShopReader{})

	_, err := service.AutoAssignJob(context.Background(), "owner-1", "b1", "shop-1")
	if !errors.Is(err, ErrNoAvailableTechnicians) {
		t.Fatalf("expected ErrNoAvailableTechnicians, got %v", err)
	}

	// No mutation on failure.
	if len(repo.assignments) != 0 {
		t.Error("expected no assignment records")
	}
	if repo.bookings["b1"].Status != StatusPending {
		t.Error("expected booking status untouched")
	}
}
