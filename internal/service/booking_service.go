package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"sharent/internal/database"
	"sharent/internal/domain"
	"sharent/internal/events"
	"sharent/internal/metrics"
	"sharent/internal/models"

	"github.com/rs/zerolog"
)

// BookingService is the booking lifecycle and authorization engine. It
// owns creation, the waiting->approved/rejected transition, access-checked
// retrieval and state-filtered listings for both renter and owner views.
type BookingService struct {
	bookings domain.BookingStore
	items    domain.ItemDirectory
	users    domain.UserDirectory
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(bookings domain.BookingStore, items domain.ItemDirectory, users domain.UserDirectory, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateBookingInput carries a renter's booking request.
type CreateBookingInput struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// Create validates the request and persists a new waiting booking.
// The item's availability flag is a gate only; it is not flipped here.
func (s *BookingService) Create(ctx context.Context, bookerID int64, in CreateBookingInput) (*models.Booking, error) {
	if _, err := s.users.GetUser(ctx, bookerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, domain.ErrNoSuchUser
		}
		return nil, fmt.Errorf("resolve booker %d: %w", bookerID, err)
	}

	item, err := s.items.GetItem(ctx, in.ItemID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, domain.ErrNoSuchItem
		}
		return nil, fmt.Errorf("resolve item %d: %w", in.ItemID, err)
	}

	if item.OwnerID == bookerID {
		return nil, domain.ErrOwnershipConflict
	}
	if !item.Available {
		return nil, domain.ErrItemUnavailable
	}
	if in.Start.IsZero() || in.End.IsZero() || !in.Start.Before(in.End) {
		return nil, domain.ErrInvalidTimeRange
	}

	booking := &models.Booking{
		ItemID:   item.ID,
		BookerID: bookerID,
		Start:    in.Start,
		End:      in.End,
		Status:   models.StatusWaiting,
	}
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	metrics.IncBookingCreated()
	s.publish(events.EventBookingCreated, booking)
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", booking.ItemID).
		Int64("booker_id", bookerID).
		Msg("booking created")
	return booking, nil
}

// SetStatus applies the owner's decision. The only state machine in the
// system: WAITING -> APPROVED or REJECTED; an approved booking accepts
// no further transition.
func (s *BookingService) SetStatus(ctx context.Context, userID, bookingID int64, approved bool) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.itemOfBooking(ctx, booking)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, domain.ErrNotAuthorized
	}
	if booking.Status == models.StatusApproved {
		return nil, domain.ErrAlreadyDecided
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, fmt.Errorf("update booking %d status: %w", bookingID, err)
	}
	booking.Status = status

	metrics.IncBookingTransition(string(status))
	s.publish(eventType, booking)
	s.logger.Info().
		Int64("booking_id", bookingID).
		Int64("owner_id", userID).
		Str("status", string(status)).
		Msg("booking status set")
	return booking, nil
}

// Get returns the booking to its booker or the item's owner; anyone else
// is refused.
func (s *BookingService) Get(ctx context.Context, userID, bookingID int64) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.BookerID == userID {
		return booking, nil
	}

	item, err := s.itemOfBooking(ctx, booking)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, domain.ErrNotAuthorized
	}
	return booking, nil
}

// ListForBooker returns the renter's bookings under the state keyword,
// sorted by end descending. Pagination requires from >= 0 and size >= 1.
func (s *BookingService) ListForBooker(ctx context.Context, bookerID int64, stateKeyword string, page *models.Page) ([]*models.Booking, error) {
	if err := s.requireUser(ctx, bookerID); err != nil {
		return nil, err
	}
	if page != nil && (page.From < 0 || page.Size < 1) {
		return nil, domain.ErrInvalidPagination
	}

	state, ok := models.ParseState(stateKeyword)
	if !ok {
		return nil, domain.ErrUnsupportedState
	}

	bookings, err := s.bookings.BookingsByBooker(ctx, bookerID, state, time.Now(), page)
	if err != nil {
		return nil, fmt.Errorf("list bookings of booker %d: %w", bookerID, err)
	}
	return bookings, nil
}

// ListForOwner returns bookings of every item the caller owns, filtered
// and sorted like ListForBooker. Pagination here requires from >= 1;
// the asymmetry with the renter view is deliberate and preserved.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID int64, stateKeyword string, page *models.Page) ([]*models.Booking, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	state, ok := models.ParseState(stateKeyword)
	if !ok {
		return nil, domain.ErrUnsupportedState
	}

	items, err := s.items.ItemsOwnedBy(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("resolve items of owner %d: %w", ownerID, err)
	}
	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	all, err := s.bookings.BookingsByItems(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list bookings of owner %d: %w", ownerID, err)
	}

	now := time.Now()
	filtered := make([]*models.Booking, 0, len(all))
	for _, b := range all {
		if state.Matches(b, now) {
			filtered = append(filtered, b)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].End.After(filtered[j].End)
	})

	if page == nil {
		return filtered, nil
	}
	if page.From < 1 || page.Size < 1 {
		return nil, domain.ErrInvalidPagination
	}

	if page.From >= len(filtered) {
		return []*models.Booking{}, nil
	}
	end := page.From + page.Size
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[page.From:end], nil
}

// itemOfBooking resolves the booking's item. A dangling item reference
// surfaces as a missing item, not as an internal failure.
func (s *BookingService) itemOfBooking(ctx context.Context, booking *models.Booking) (*models.Item, error) {
	item, err := s.items.GetItem(ctx, booking.ItemID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, domain.ErrNoSuchItem
		}
		return nil, fmt.Errorf("resolve item %d of booking %d: %w", booking.ItemID, booking.ID, err)
	}
	return item, nil
}

func (s *BookingService) getBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, domain.ErrNoSuchBooking
		}
		return nil, fmt.Errorf("resolve booking %d: %w", id, err)
	}
	return booking, nil
}

func (s *BookingService) requireUser(ctx context.Context, id int64) error {
	exists, err := s.users.UserExists(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve user %d: %w", id, err)
	}
	if !exists {
		return domain.ErrNoSuchUser
	}
	return nil
}

func (s *BookingService) publish(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
