package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sharent/internal/database"
	"sharent/internal/domain"
	"sharent/internal/events"
	"sharent/internal/models"

	"github.com/rs/zerolog"
)

// ItemService manages the item directory: listing records, the item
// card with booking projections, search and renter comments.
type ItemService struct {
	items    domain.ItemStore
	bookings domain.BookingStore
	comments domain.CommentStore
	users    domain.UserDirectory
	requests domain.RequestDirectory
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewItemService(items domain.ItemStore, bookings domain.BookingStore, comments domain.CommentStore, users domain.UserDirectory, requests domain.RequestDirectory, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		items:    items,
		bookings: bookings,
		comments: comments,
		users:    users,
		requests: requests,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateItemInput carries a new listing. A non-zero RequestID offers
// the item in response to an existing item request.
type CreateItemInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   int64
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, in CreateItemInput) (*models.Item, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if in.RequestID != 0 {
		if _, err := s.requests.GetRequest(ctx, in.RequestID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, domain.ErrNoSuchRequest
			}
			return nil, fmt.Errorf("resolve request %d: %w", in.RequestID, err)
		}
	}

	item := &models.Item{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		RequestID:   in.RequestID,
	}
	if err := s.items.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("persist item: %w", err)
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return item, nil
}

// PatchItemInput updates only the fields that are set.
type PatchItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

// Patch applies a partial update; only the item's owner may change it.
func (s *ItemService) Patch(ctx context.Context, ownerID, itemID int64, in PatchItemInput) (*models.Item, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, domain.ErrNotAuthorized
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Available != nil {
		item.Available = *in.Available
	}

	if err := s.items.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item %d: %w", itemID, err)
	}
	return item, nil
}

// Detail builds the item card. Booking projections are visible to the
// owner only; comments to everyone.
func (s *ItemService) Detail(ctx context.Context, callerID, itemID int64) (*models.ItemDetail, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, callerID, item)
}

// ItemsOf lists the owner's items as full cards.
func (s *ItemService) ItemsOf(ctx context.Context, ownerID int64) ([]*models.ItemDetail, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.ItemsOwnedBy(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("resolve items of owner %d: %w", ownerID, err)
	}

	details := make([]*models.ItemDetail, 0, len(items))
	for _, item := range items {
		detail, err := s.buildDetail(ctx, ownerID, item)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// Search returns available items matching the text; blank text matches
// nothing.
func (s *ItemService) Search(ctx context.Context, text string) ([]*models.Item, error) {
	items, err := s.items.SearchItems(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// AddComment lets a renter review an item, but only after an approved
// booking of that item has ended.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	author, err := s.users.GetUser(ctx, authorID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, domain.ErrNoSuchUser
		}
		return nil, fmt.Errorf("resolve author %d: %w", authorID, err)
	}

	if _, err := s.getItem(ctx, itemID); err != nil {
		return nil, err
	}

	finished, err := s.bookings.HasFinishedBooking(ctx, itemID, authorID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("check finished bookings: %w", err)
	}
	if !finished {
		return nil, domain.ErrNoFinishedBooking
	}

	comment := &models.Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       text,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("persist comment: %w", err)
	}

	if s.eventBus != nil {
		_ = s.eventBus.PublishJSON(events.EventCommentAdded, comment)
	}
	return comment, nil
}

func (s *ItemService) buildDetail(ctx context.Context, callerID int64, item *models.Item) (*models.ItemDetail, error) {
	comments, err := s.comments.CommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("comments of item %d: %w", item.ID, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	detail := &models.ItemDetail{Item: *item, Comments: comments}
	if callerID != item.OwnerID {
		return detail, nil
	}

	now := time.Now()
	last, err := s.bookings.LastBookingOfItem(ctx, item.ID, now)
	if err != nil {
		return nil, fmt.Errorf("last booking of item %d: %w", item.ID, err)
	}
	next, err := s.bookings.NextBookingOfItem(ctx, item.ID, now)
	if err != nil {
		return nil, fmt.Errorf("next booking of item %d: %w", item.ID, err)
	}

	if last != nil {
		detail.LastBooking = &models.BookingRef{ID: last.ID, BookerID: last.BookerID}
	}
	if next != nil {
		detail.NextBooking = &models.BookingRef{ID: next.ID, BookerID: next.BookerID}
	}
	return detail, nil
}

func (s *ItemService) getItem(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.items.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, domain.ErrNoSuchItem
		}
		return nil, fmt.Errorf("resolve item %d: %w", id, err)
	}
	return item, nil
}

func (s *ItemService) requireUser(ctx context.Context, id int64) error {
	exists, err := s.users.UserExists(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve user %d: %w", id, err)
	}
	if !exists {
		return domain.ErrNoSuchUser
	}
	return nil
}
