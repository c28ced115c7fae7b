package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/axis-meridian-dev/Luber-development/internal/auth"
	"github.com/axis-meridian-dev/Luber-development/internal/events"
	"github.com/axis-meridian-dev/Luber-development/internal/pricing"

	"github.com/stripe/stripe-go/v79"
)

// --------------------------------------------------
// Mocks
// --------------------------------------------------

type MockRepository struct {
	jobs           map[string]*Job
	vehicleTypes   map[string]pricing.VehicleType
	stripeAccounts map[string]string
	createErr      error
	created        []*Job
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		jobs:           make(map[string]*Job),
		vehicleTypes:   make(map[string]pricing.VehicleType),
		stripeAccounts: make(map[string]string),
	}
}

func (m *MockRepository) CreateJob(ctx context.Context, job *Job) error {
	if m.createErr != nil {
		return m.createErr
	}
	job.ID = "job-" + job.VehicleID
	job.Status = StatusPending
	m.jobs[job.ID] = job
	m.created = append(m.created, job)
	return nil
}

func (m *MockRepository) GetJob(ctx context.Context, id string) (*Job, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (m *MockRepository) AcceptPending(ctx context.Context, jobID, technicianID string, at time.Time) (*Job, error) {
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, ErrJobNotFound
	}
	if job.Status != StatusPending {
		return nil, ErrJobNotPending
	}
	job.Status = StatusAccepted
	job.TechnicianID = technicianID
	job.AcceptedAt = &at
	copied := *job
	return &copied, nil
}

func (m *MockRepository) MarkStarted(ctx context.Context, jobID string, at time.Time) error {
	job, ok := m.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	job.Status = StatusInProgress
	job.StartedAt = &at
	return nil
}

func (m *MockRepository) MarkCompleted(ctx context.Context, jobID string, at time.Time) error {
	job, ok := m.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	job.Status = StatusCompleted
	job.CompletedAt = &at
	return nil
}

func (m *MockRepository) MarkCancelled(ctx context.Context, jobID, reason string, at time.Time) error {
	job, ok := m.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	job.Status = StatusCancelled
	job.CancellationReason = reason
	job.CancelledAt = &at
	return nil
}

func (m *MockRepository) SetTransferID(ctx context.Context, jobID, transferID string) error {
	job, ok := m.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	job.StripeTransferID = transferID
	return nil
}

func (m *MockRepository) VehicleTypeForCustomer(ctx context.Context, vehicleID, customerID string) (pricing.VehicleType, error) {
	vt, ok := m.vehicleTypes[vehicleID]
	if !ok {
		return "", ErrVehicleNotFound
	}
	return vt, nil
}

func (m *MockRepository) TechnicianStripeAccount(ctx context.Context, technicianID string) (string, error) {
	return m.stripeAccounts[technicianID], nil
}

type MockPaymentClient struct {
	intentErr      error
	confirmErr     error
	confirmed      []string
	cancelled      []string
	transfers      []int64
	transferAccts  []string
	intentAmounts  []int64
}

func (m *MockPaymentClient) CreatePaymentIntent(amountCents int64, paymentMethodID string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	if m.intentErr != nil {
		return nil, m.intentErr
	}
	m.intentAmounts = append(m.intentAmounts, amountCents)
	return &stripe.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func (m *MockPaymentClient) ConfirmPaymentIntent(intentID string) error {
	if m.confirmErr != nil {
		return m.confirmErr
	}
	m.confirmed = append(m.confirmed, intentID)
	return nil
}

func (m *MockPaymentClient) CancelPaymentIntent(intentID string) error {
	m.cancelled = append(m.cancelled, intentID)
	return nil
}

func (m *MockPaymentClient) CreateTransfer(amountCents int64, accountID, transferGroup, description string) (string, error) {
	m.transfers = append(m.transfers, amountCents)
	m.transferAccts = append(m.transferAccts, accountID)
	return "tr_test", nil
}

type CapturePublisher struct {
	events []events.Event
}

func (p *CapturePublisher) Publish(ctx context.Context, routingKey string, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

func newTestService() (*Service, *MockRepository, *MockPaymentClient, *CapturePublisher) {
	repo := NewMockRepository()
	pay := &MockPaymentClient{}
	pub := &CapturePublisher{}
	return NewService(repo, pay, pub), repo, pay, pub
}

func validInput() CreateJobInput {
	return CreateJobInput{
		VehicleID:       "veh-1",
		AddressID:       "addr-1",
		OilType:         "full_synthetic",
		ScheduledTime:   time.Now().Add(24 * time.Hour),
		PaymentMethodID: "pm_card",
	}
}

// --------------------------------------------------
// CreateJob
// --------------------------------------------------

func TestCreateJobPricesAndStoresJob(t *testing.T) {
	svc, repo, pay, _ := newTestService()
	repo.vehicleTypes["veh-1"] = pricing.VehicleSUV

	job, secret, err := svc.CreateJob(context.Background(), "cust-1", validInput())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if secret != "pi_test_secret" {
		t.Errorf("expected client secret to be returned, got %q", secret)
	}
	if job.PriceCents != 9599 || job.PlatformFeeCents != 1920 || job.TechnicianEarningsCents != 7679 {
		t.Errorf("unexpected quote: %d / %d / %d",
			job.PriceCents, job.PlatformFeeCents, job.TechnicianEarningsCents)
	}
	if job.Status != StatusPending {
		t.Errorf("expected new job to be pending, got %s", job.Status)
	}
	if len(pay.intentAmounts) != 1 || pay.intentAmounts[0] != 9599 {
		t.Errorf("expected one intent for 9599 cents, got %v", pay.intentAmounts)
	}
	if job.StripePaymentIntentID != "pi_test" {
		t.Errorf("expected intent id on job, got %q", job.StripePaymentIntentID)
	}
}

func TestCreateJobCancelsIntentWhenInsertFails(t *testing.T) {
	svc, repo, pay, _ := newTestService()
	repo.vehicleTypes["veh-1"] = pricing.VehicleSedan
	repo.createErr = errors.New("db down")

	_, _, err := svc.CreateJob(context.Background(), "cust-1", validInput())
	if err == nil {
		t.Fatal("expected error when insert fails")
	}
	if len(pay.cancelled) != 1 || pay.cancelled[0] != "pi_test" {
		t.Errorf("expected intent to be cancelled, got %v", pay.cancelled)
	}
}

func TestCreateJobRejectsElectricVehicle(t *testing.T) {
	svc, repo, pay, _ := newTestService()
	repo.vehicleTypes["veh-1"] = pricing.VehicleElectric

	_, _, err := svc.CreateJob(context.Background(), "cust-1", validInput())
	if !errors.Is(err, pricing.ErrVehicleNotServiceable) {
		t.Fatalf("expected ErrVehicleNotServiceable, got %v", err)
	}
	if len(pay.intentAmounts) != 0 {
		t.Error("no payment intent should be created for an unserviceable vehicle")
	}
}

func TestCreateJobValidation(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.vehicleTypes["veh-1"] = pricing.VehicleSedan

	missing := validInput()
	missing.AddressID = ""
	if _, _, err := svc.CreateJob(context.Background(), "cust-1", missing); !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}

	badOil := validInput()
	badOil.OilType = "olive"
	if _, _, err := svc.CreateJob(context.Background(), "cust-1", badOil); err == nil {
		t.Error("expected error for unknown oil type")
	}

	unknownVehicle := validInput()
	unknownVehicle.VehicleID = "veh-missing"
	if _, _, err := svc.CreateJob(context.Background(), "cust-1", unknownVehicle); !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound, got %v", err)
	}
}

// --------------------------------------------------
// GetJob (participant-scoped reads)
// --------------------------------------------------

func TestGetJobVisibleToParticipants(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedJob(repo, StatusAccepted, "tech-1")

	if _, err := svc.GetJob(context.Background(), "cust-1", "job-1"); err != nil {
		t.Errorf("customer should see their own job, got %v", err)
	}
	if _, err := svc.GetJob(context.Background(), "tech-1", "job-1"); err != nil {
		t.Errorf("assigned technician should see the job, got %v", err)
	}
}

func TestGetJobHiddenFromOtherUsers(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedJob(repo, StatusAccepted, "tech-1")

	if _, err := svc.GetJob(context.Background(), "someone-else", "job-1"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for a non-participant, got %v", err)
	}

	// An unassigned technician is still a stranger to the job.
	repo.jobs["job-1"].TechnicianID = ""
	if _, err := svc.GetJob(context.Background(), "tech-2", "job-1"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for an unassigned technician, got %v", err)
	}
}

// --------------------------------------------------
// AcceptJob
// --------------------------------------------------

func seedJob(repo *MockRepository, status Status, technicianID string) *Job {
	job := &Job{
		ID:                      "job-1",
		CustomerID:              "cust-1",
		TechnicianID:            technicianID,
		Status:                  status,
		PriceCents:              9599,
		TechnicianEarningsCents: 7679,
		StripePaymentIntentID:   "pi_test",
	}
	repo.jobs[job.ID] = job
	return job
}

func TestAcceptJobRequiresTechnicianRole(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedJob(repo, StatusPending, "")

	customer := auth.Identity{UserID: "cust-1", Role: auth.RoleCustomer}
	if _, err := svc.AcceptJob(context.Background(), customer, "job-1"); !errors.Is(err, ErrNotTechnician) {
		t.Fatalf("expected ErrNotTechnician, got %v", err)
	}
}

func TestAcceptJobClaimsPendingJobAndNotifies(t *testing.T) {
	svc, repo, _, pub := newTestService()
	seedJob(repo, StatusPending, "")

	tech := auth.Identity{UserID: "tech-1", Role: auth.RoleTechnician}
	job, err := svc.AcceptJob(context.Background(), tech, "job-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if job.Status != StatusAccepted || job.TechnicianID != "tech-1" {
		t.Errorf("job not claimed: status=%s technician=%s", job.Status, job.TechnicianID)
	}
	if len(pub.events) != 1 || pub.events[0].Type != "job_accepted" || pub.events[0].UserID != "cust-1" {
		t.Errorf("expected job_accepted event for the customer, got %+v", pub.events)
	}
}

func TestAcceptJobLosesRaceWhenAlreadyAccepted(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedJob(repo, StatusAccepted, "tech-1")

	tech := auth.Identity{UserID: "tech-2", Role: auth.RoleTechnician}
	if _, err := svc.AcceptJob(context.Background(), tech, "job-1"); !errors.Is(err, ErrJobNotPending) {
		t.Fatalf("expected ErrJobNotPending, got %v", err)
	}
	if repo.jobs["job-1"].TechnicianID != "tech-1" {
		t.Error("losing technician must not overwrite the winner")
	}
}

// --------------------------------------------------
// StartJob
// --------------------------------------------------

func TestStartJobRejectsUnassignedTechnician(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedJob(repo, StatusAccepted, "tech-1")

	if _, err := svc.StartJob(context.Background(), "tech-2", "job-1"); !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}
}

func TestStartJobRejectsInvalidStatus(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedJob(repo, StatusPending, "tech-1")

	if _, err := svc.StartJob(context.Background(), "tech-1", "job-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestStartJobTransitions(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedJob(repo, StatusAccepted, "tech-1")

	job, err := svc.StartJob(context.Background(), "tech-1", "job-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if job.Status != StatusInProgress || job.StartedAt == nil {
		t.Errorf("expected in_progress with started_at set, got %s", job.Status)
	}
}

// --------------------------------------------------
// CompleteJob
// --------------------------------------------------

func TestCompleteJobCapturesAndPaysTechnician(t *testing.T) {
	svc, repo, pay, pub := newTestService()
	seedJob(repo, StatusInProgress, "tech-1")
	repo.stripeAccounts["tech-1"] = "acct_tech"

	job, err := svc.CompleteJob(context.Background(), "tech-1", "job-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if job.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", job.Status)
	}
	if len(pay.confirmed) != 1 || pay.confirmed[0] != "pi_test" {
		t.Errorf("expected payment intent confirmed, got %v", pay.confirmed)
	}
	if len(pay.transfers) != 1 || pay.transfers[0] != 7679 {
		t.Errorf("expected 7679 cent transfer, got %v", pay.transfers)
	}
	if len(pay.transferAccts) != 1 || pay.transferAccts[0] != "acct_tech" {
		t.Errorf("expected transfer to technician account, got %v", pay.transferAccts)
	}
	if job.StripeTransferID != "tr_test" {
		t.Errorf("expected transfer id recorded, got %q", job.StripeTransferID)
	}
	if len(pub.events) != 1 || pub.events[0].Type != "job_completed" {
		t.Errorf("expected job_completed event, got %+v", pub.events)
	}
}

func TestCompleteJobSkipsTransferWithoutConnectAccount(t *testing.T) {
	svc, repo, pay, _ := newTestService()
	seedJob(repo, StatusInProgress, "tech-1")

	job, err := svc.CompleteJob(context.Background(), "tech-1", "job-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(pay.transfers) != 0 {
		t.Errorf("no transfer expected without a Connect account, got %v", pay.transfers)
	}
	if job.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", job.Status)
	}
}

func TestCompleteJobStopsWhenCaptureFails(t *testing.T) {
	svc, repo, pay, _ := newTestService()
	seedJob(repo, StatusInProgress, "tech-1")
	pay.confirmErr = errors.New("card declined")

	if _, err := svc.CompleteJob(context.Background(), "tech-1", "job-1"); err == nil {
		t.Fatal("expected error when capture fails")
	}
	if repo.jobs["job-1"].Status != StatusInProgress {
		t.Error("job must not complete when the charge fails")
	}
}

// --------------------------------------------------
// CancelJob
// --------------------------------------------------

func TestCancelJobByCustomer(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedJob(repo, StatusAccepted, "tech-1")

	job, err := svc.CancelJob(context.Background(), "cust-1", "job-1", "changed my mind")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if job.Status != StatusCancelled || job.CancellationReason != "changed my mind" {
		t.Errorf("unexpected cancel result: %s %q", job.Status, job.CancellationReason)
	}
}

func TestCancelJobRejectsStrangers(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedJob(repo, StatusAccepted, "tech-1")

	if _, err := svc.CancelJob(context.Background(), "someone-else", "job-1", ""); !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}
}

func TestCancelJobRejectsTerminalStates(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedJob(repo, StatusCompleted, "tech-1")

	if _, err := svc.CancelJob(context.Background(), "cust-1", "job-1", ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
