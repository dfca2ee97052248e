package models

import "time"

// Status is the lifecycle state of a booking. Every booking is created
// as waiting; only the item owner moves it to approved or rejected.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Booking struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Item struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	RequestID   int64     `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ItemRequest is a renter's ask for an item nobody listed yet. Owners
// answer by creating items linked back through Item.RequestID.
type ItemRequest struct {
	ID          int64     `json:"id"`
	RequesterID int64     `json:"requester_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemRequestDetail is the request together with the items offered in
// response to it.
type ItemRequestDetail struct {
	ItemRequest
	Items []*Item `json:"items"`
}

// BookingRef is the short booking projection embedded in item cards.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"booker_id"`
}

// ItemDetail is the item card returned to callers: the item itself,
// neighbouring booking projections (owner only) and comments.
type ItemDetail struct {
	Item
	LastBooking *BookingRef `json:"last_booking,omitempty"`
	NextBooking *BookingRef `json:"next_booking,omitempty"`
	Comments    []*Comment  `json:"comments"`
}

// Page carries optional listing pagination: the window [From, From+Size)
// over the sorted result. A nil *Page means the full list.
type Page struct {
	From int
	Size int
}
