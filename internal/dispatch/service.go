package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/axis-meridian-dev/Luber-development/internal/core"
)

var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrNoAvailableTechnicians = errors.New("no available technicians")
	ErrInvalidTransition      = errors.New("invalid booking status transition")
)

type Service struct {
	repo  Repository
	shops core.ShopReader
}

func NewService(repo Repository, shops core.ShopReader) *Service {
	return &Service{repo: repo, shops: shops}
}

func (s *Service) authorize(ctx context.Context, shopID, userID string) error {
	ok, err := s.shops.IsOwner(ctx, shopID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

// loadBookingForShop guards against a booking id belonging to a
// different shop than the one the caller was authorized for.
func (s *Service) loadBookingForShop(ctx context.Context, bookingID, shopID string) (*Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ShopID != shopID {
		return nil, ErrUnauthorized
	}
	return booking, nil
}

// --------------------------------------------------
// Manual assign
// --------------------------------------------------
func (s *Service) AssignJob(ctx context.Context, userID, bookingID, technicianID, shopID string) error {
	if err := s.authorize(ctx, shopID, userID); err != nil {
		return err
	}

	booking, err := s.loadBookingForShop(ctx, bookingID, shopID)
	if err != nil {
		return err
	}

	if !booking.Status.CanTransition(StatusConfirmed) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, StatusConfirmed)
	}
	booking.Status = StatusConfirmed

	return s.repo.Assign(ctx, booking, &Assignment{
		BookingID:      bookingID,
		ShopID:         shopID,
		AssignedTo:     technicianID,
		AssignedBy:     userID,
		AssignmentType: AssignmentManual,
	})
}

// --------------------------------------------------
// Reassign (status untouched, audit trail appended)
// --------------------------------------------------
func (s *Service) ReassignJob(ctx context.Context, userID, bookingID, newTechnicianID, shopID string) error {
	if err := s.authorize(ctx, shopID, userID); err != nil {
		return err
	}

	booking, err := s.loadBookingForShop(ctx, bookingID, shopID)
	if err != nil {
		return err
	}
	if booking.Status.Terminal() {
		return fmt.Errorf("%w: booking is %s", ErrInvalidTransition, booking.Status)
	}

	return s.repo.Reassign(ctx, bookingID, newTechnicianID, &Assignment{
		BookingID:      bookingID,
		ShopID:         shopID,
		AssignedTo:     newTechnicianID,
		AssignedBy:     userID,
		AssignmentType: AssignmentManual,
	})
}

// --------------------------------------------------
// Auto-assign (least loaded technician)
// --------------------------------------------------
func (s *Service) AutoAssignJob(ctx context.Context, userID, bookingID, shopID string) (string, error) {
	if err := s.authorize(ctx, shopID, userID); err != nil {
		return "", err
	}

	booking, err := s.loadBookingForShop(ctx, bookingID, shopID)
	if err != nil {
		return "", err
	}

	if !booking.Status.CanTransition(StatusConfirmed) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, StatusConfirmed)
	}

	options, err := s.repo.ListAvailableByWorkload(ctx, shopID)
	if err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", ErrNoAvailableTechnicians
	}

	selected := options[0]
	booking.Status = StatusConfirmed

	err = s.repo.Assign(ctx, booking, &Assignment{
		BookingID:      bookingID,
		ShopID:         shopID,
		AssignedTo:     selected.ID,
		AssignedBy:     userID,
		AssignmentType: AssignmentAuto,
	})
	if err != nil {
		return "", err
	}
	return selected.ID, nil
}
