package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/axis-meridian-dev/Luber-development/internal/auth"
	"github.com/axis-meridian-dev/Luber-development/internal/events"
	"github.com/axis-meridian-dev/Luber-development/internal/pricing"

	"github.com/stripe/stripe-go/v79"
)

var (
	ErrNotTechnician     = errors.New("only technicians can perform this action")
	ErrNotAssigned       = errors.New("job is not assigned to this technician")
	ErrInvalidTransition = errors.New("invalid job status transition")
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidOilType    = errors.New("unknown oil type")
)

// PaymentClient is the slice of the payment processor the job
// lifecycle needs.
type PaymentClient interface {
	CreatePaymentIntent(amountCents int64, paymentMethodID string, metadata map[string]string) (*stripe.PaymentIntent, error)
	ConfirmPaymentIntent(intentID string) error
	CancelPaymentIntent(intentID string) error
	CreateTransfer(amountCents int64, accountID, transferGroup, description string) (string, error)
}

type Service struct {
	repo      Repository
	payments  PaymentClient
	publisher events.Publisher
}

func NewService(repo Repository, payments PaymentClient, publisher events.Publisher) *Service {
	return &Service{repo: repo, payments: payments, publisher: publisher}
}

func (s *Service) notify(ctx context.Context, routingKey string, event events.Event) {
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		// Notifications are best-effort; the job mutation already
		// succeeded.
		log.Printf("failed to publish %s event: %v", routingKey, err)
	}
}

// --------------------------------------------------
// Create job (price + payment intent + insert)
// --------------------------------------------------
func (s *Service) CreateJob(ctx context.Context, customerID string, input CreateJobInput) (*Job, string, error) {
	if input.VehicleID == "" || input.AddressID == "" || input.OilType == "" || input.ScheduledTime.IsZero() {
		return nil, "", ErrMissingFields
	}

	oilType := pricing.OilType(input.OilType)
	if !oilType.Valid() {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidOilType, input.OilType)
	}

	vehicleType, err := s.repo.VehicleTypeForCustomer(ctx, input.VehicleID, customerID)
	if err != nil {
		return nil, "", err
	}

	quote, err := pricing.CalculateJobPrice(oilType, vehicleType)
	if err != nil {
		return nil, "", err
	}

	intent, err := s.payments.CreatePaymentIntent(quote.PriceCents, input.PaymentMethodID, map[string]string{
		"customer_id": customerID,
		"vehicle_id":  input.VehicleID,
		"oil_type":    input.OilType,
	})
	if err != nil {
		return nil, "", err
	}

	job := &Job{
		CustomerID:              customerID,
		VehicleID:               input.VehicleID,
		AddressID:               input.AddressID,
		OilType:                 oilType,
		PriceCents:              quote.PriceCents,
		PlatformFeeCents:        quote.PlatformFeeCents,
		TechnicianEarningsCents: quote.TechnicianEarningsCents,
		ScheduledTime:           input.ScheduledTime,
		SpecialInstructions:     input.SpecialInstructions,
		StripePaymentIntentID:   intent.ID,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		// Void the intent so the customer is never charged for a job
		// that was not recorded.
		if cancelErr := s.payments.CancelPaymentIntent(intent.ID); cancelErr != nil {
			log.Printf("failed to cancel payment intent %s: %v", intent.ID, cancelErr)
		}
		return nil, "", err
	}

	return job, intent.ClientSecret, nil
}

// --------------------------------------------------
// Read (scoped to job participants)
// --------------------------------------------------

// GetJob returns a job only to its customer or assigned technician.
// Everyone else gets ErrJobNotFound, so the route does not confirm
// that the id exists.
func (s *Service) GetJob(ctx context.Context, userID, jobID string) (*Job, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CustomerID != userID && job.TechnicianID != userID {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// --------------------------------------------------
// Accept
// --------------------------------------------------
func (s *Service) AcceptJob(ctx context.Context, identity auth.Identity, jobID string) (*Job, error) {
	if identity.Role != auth.RoleTechnician {
		return nil, ErrNotTechnician
	}

	job, err := s.repo.AcceptPending(ctx, jobID, identity.UserID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "job.accepted", events.Event{
		Type:   "job_accepted",
		UserID: job.CustomerID,
		Title:  "Technician Accepted Your Job",
		Body:   "A technician has accepted your oil change request.",
		Data:   map[string]string{"job_id": job.ID},
	})

	return job, nil
}

// --------------------------------------------------
// Start
// --------------------------------------------------
func (s *Service) StartJob(ctx context.Context, technicianID, jobID string) (*Job, error) {
	job, err := s.assignedJob(ctx, technicianID, jobID)
	if err != nil {
		return nil, err
	}
	if !job.Status.CanTransition(StatusInProgress) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, StatusInProgress)
	}

	if err := s.repo.MarkStarted(ctx, jobID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.repo.GetJob(ctx, jobID)
}

// --------------------------------------------------
// Complete (capture payment, pay the technician)
// --------------------------------------------------
func (s *Service) CompleteJob(ctx context.Context, technicianID, jobID string) (*Job, error) {
	job, err := s.assignedJob(ctx, technicianID, jobID)
	if err != nil {
		return nil, err
	}
	if !job.Status.CanTransition(StatusCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, StatusCompleted)
	}

	if job.StripePaymentIntentID != "" {
		if err := s.payments.ConfirmPaymentIntent(job.StripePaymentIntentID); err != nil {
			return nil, err
		}

		accountID, err := s.repo.TechnicianStripeAccount(ctx, technicianID)
		if err != nil {
			return nil, err
		}
		if accountID != "" {
			transferID, err := s.payments.CreateTransfer(
				job.TechnicianEarningsCents,
				accountID,
				job.ID,
				"Luber - oil change earnings",
			)
			if err != nil {
				return nil, err
			}
			if err := s.repo.SetTransferID(ctx, jobID, transferID); err != nil {
				return nil, err
			}
		}
	}

	if err := s.repo.MarkCompleted(ctx, jobID, time.Now().UTC()); err != nil {
		return nil, err
	}

	s.notify(ctx, "job.completed", events.Event{
		Type:   "job_completed",
		UserID: job.CustomerID,
		Title:  "Job Completed",
		Body:   "Your oil change has been completed!",
		Data:   map[string]string{"job_id": job.ID},
	})

	return s.repo.GetJob(ctx, jobID)
}

// --------------------------------------------------
// Cancel
// --------------------------------------------------
func (s *Service) CancelJob(ctx context.Context, userID, jobID, reason string) (*Job, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	// Only the customer or the assigned technician may cancel.
	if job.CustomerID != userID && job.TechnicianID != userID {
		return nil, ErrNotAssigned
	}
	if !job.Status.CanTransition(StatusCancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, StatusCancelled)
	}

	if err := s.repo.MarkCancelled(ctx, jobID, reason, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.repo.GetJob(ctx, jobID)
}

func (s *Service) assignedJob(ctx context.Context, technicianID, jobID string) (*Job, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.TechnicianID != technicianID {
		return nil, ErrNotAssigned
	}
	return job, nil
}
