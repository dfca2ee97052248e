package domain

import (
	"context"
	"time"

	"sharent/internal/models"
)

// BookingStore is the durable booking collection. A single booking row
// is the unit of consistency; the store does not enforce cross-booking
// invariants.
type BookingStore interface {
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error

	// BookingsByBooker returns the booker's bookings under the state
	// filter, sorted by end descending, optionally windowed by page.
	BookingsByBooker(ctx context.Context, bookerID int64, state models.State, now time.Time, page *models.Page) ([]*models.Booking, error)

	// BookingsByItems returns every booking whose item is in the set.
	BookingsByItems(ctx context.Context, itemIDs []int64) ([]*models.Booking, error)

	// LastBookingOfItem is the latest booking ending before now,
	// NextBookingOfItem the earliest starting after now. Both return
	// (nil, nil) when there is no such booking.
	LastBookingOfItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextBookingOfItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)

	// HasFinishedBooking reports whether the booker holds at least one
	// approved booking of the item that already ended.
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

// ItemDirectory resolves items and owner item sets.
type ItemDirectory interface {
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	ItemsOwnedBy(ctx context.Context, ownerID int64) ([]*models.Item, error)
}

// ItemStore extends the directory with the record management the item
// collaborator needs.
type ItemStore interface {
	ItemDirectory
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	SearchItems(ctx context.Context, text string) ([]*models.Item, error)
	ItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)
	AllItems(ctx context.Context) ([]*models.Item, error)
}

// RequestDirectory resolves item requests by id.
type RequestDirectory interface {
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
}

// RequestStore keeps renters' item requests.
type RequestStore interface {
	RequestDirectory
	CreateRequest(ctx context.Context, req *models.ItemRequest) error

	// RequestsByRequester returns the requester's own requests, newest
	// first; RequestsByOthers everyone else's, newest first, optionally
	// windowed by page.
	RequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error)
	RequestsByOthers(ctx context.Context, requesterID int64, page *models.Page) ([]*models.ItemRequest, error)
}

// UserDirectory resolves users by id.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

// UserStore extends the directory with user record management.
type UserStore interface {
	UserDirectory
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	AllUsers(ctx context.Context) ([]*models.User, error)
}

// CommentStore keeps item comments.
type CommentStore interface {
	CreateComment(ctx context.Context, c *models.Comment) error
	CommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error)
}

// ReportSource feeds the schedule report writer.
type ReportSource interface {
	AllItems(ctx context.Context) ([]*models.Item, error)
	AllBookings(ctx context.Context) ([]*models.Booking, error)
}

// EventPublisher fans booking lifecycle events out to subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimitRepository counts requests per user inside a rolling window.
type RateLimitRepository interface {
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}
