package domain

import "errors"

// Booking engine error taxonomy. Every failure is synchronous and
// scoped to a single request; nothing here is retried internally.
var (
	// Referenced entity absent.
	ErrNoSuchUser    = errors.New("no such user")
	ErrNoSuchItem    = errors.New("no such item")
	ErrNoSuchBooking = errors.New("no such booking")
	ErrNoSuchRequest = errors.New("no such item request")

	// Relationship failures.
	ErrOwnershipConflict = errors.New("owner cannot book own item")
	ErrNotAuthorized     = errors.New("caller is neither booker nor item owner")

	// Invalid-state class.
	ErrInvalidTimeRange  = errors.New("booking start must be before its end")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
	ErrItemUnavailable   = errors.New("item is not available for booking")
	ErrAlreadyDecided    = errors.New("booking is already approved")
	ErrNoFinishedBooking = errors.New("no finished booking of this item by the caller")

	// Unrecognized listing filter keyword.
	ErrUnsupportedState = errors.New("unsupported state keyword")

	// Directory conflicts.
	ErrEmailTaken = errors.New("email is already in use")
)
