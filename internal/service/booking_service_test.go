package service

import (
	"context"
	"io"
	"testing"
	"time"

	"sharent/internal/database"
	"sharent/internal/domain"
	"sharent/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBookingStore struct {
	mock.Mock
}

func (m *mockBookingStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBookingStore) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookingStore) UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockBookingStore) BookingsByBooker(ctx context.Context, bookerID int64, state models.State, now time.Time, page *models.Page) ([]*models.Booking, error) {
	args := m.Called(ctx, bookerID, state, now, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockBookingStore) BookingsByItems(ctx context.Context, itemIDs []int64) ([]*models.Booking, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockBookingStore) LastBookingOfItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookingStore) NextBookingOfItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookingStore) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, itemID, bookerID, now)
	return args.Bool(0), args.Error(1)
}

type mockItemStore struct {
	mock.Mock
}

func (m *mockItemStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}
func (m *mockItemStore) ItemsOwnedBy(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}
func (m *mockItemStore) CreateItem(ctx context.Context, item *models.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *mockItemStore) UpdateItem(ctx context.Context, item *models.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *mockItemStore) SearchItems(ctx context.Context, text string) ([]*models.Item, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}
func (m *mockItemStore) ItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}
func (m *mockItemStore) AllItems(ctx context.Context) ([]*models.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

type mockRequestStore struct {
	mock.Mock
}

func (m *mockRequestStore) CreateRequest(ctx context.Context, req *models.ItemRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockRequestStore) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemRequest), args.Error(1)
}
func (m *mockRequestStore) RequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ItemRequest), args.Error(1)
}
func (m *mockRequestStore) RequestsByOthers(ctx context.Context, requesterID int64, page *models.Page) ([]*models.ItemRequest, error) {
	args := m.Called(ctx, requesterID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ItemRequest), args.Error(1)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockUserStore) UserExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockUserStore) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserStore) UpdateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserStore) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserStore) AllUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type mockCommentStore struct {
	mock.Mock
}

func (m *mockCommentStore) CreateComment(ctx context.Context, c *models.Comment) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCommentStore) CommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}

func newBookingFixture(t *testing.T) (*BookingService, *mockBookingStore, *mockItemStore, *mockUserStore, *mockEventBus) {
	t.Helper()
	bookings := new(mockBookingStore)
	items := new(mockItemStore)
	users := new(mockUserStore)
	bus := new(mockEventBus)
	logger := zerolog.New(io.Discard)
	svc := NewBookingService(bookings, items, users, bus, &logger)
	return svc, bookings, items, users, bus
}

func TestBookingCreate(t *testing.T) {
	ctx := context.Background()
	booker := &models.User{ID: 2, Name: "Renter"}
	start := time.Now().Add(time.Hour)
	end := start.Add(24 * time.Hour)

	t.Run("Success", func(t *testing.T) {
		svc, bookings, items, users, bus := newBookingFixture(t)

		users.On("GetUser", ctx, int64(2)).Return(booker, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(&models.Item{ID: 5, OwnerID: 1, Available: true}, nil).Once()
		bookings.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Booking).ID = 77
			}).
			Return(nil).Once()
		bus.On("PublishJSON", "booking_created", mock.Anything).Return(nil).Once()

		booking, err := svc.Create(ctx, 2, CreateBookingInput{ItemID: 5, Start: start, End: end})
		require.NoError(t, err)
		assert.Equal(t, int64(77), booking.ID)
		assert.Equal(t, models.StatusWaiting, booking.Status)
		assert.Equal(t, int64(2), booking.BookerID)
		bookings.AssertExpectations(t)
		bus.AssertExpectations(t)
	})

	t.Run("UnknownBooker", func(t *testing.T) {
		svc, bookings, items, users, _ := newBookingFixture(t)

		users.On("GetUser", ctx, int64(99)).Return(nil, database.ErrNotFound).Once()

		_, err := svc.Create(ctx, 99, CreateBookingInput{ItemID: 5, Start: start, End: end})
		assert.ErrorIs(t, err, domain.ErrNoSuchUser)
		items.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything)
		bookings.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		svc, _, items, users, _ := newBookingFixture(t)

		users.On("GetUser", ctx, int64(2)).Return(booker, nil).Once()
		items.On("GetItem", ctx, int64(404)).Return(nil, database.ErrNotFound).Once()

		_, err := svc.Create(ctx, 2, CreateBookingInput{ItemID: 404, Start: start, End: end})
		assert.ErrorIs(t, err, domain.ErrNoSuchItem)
	})

	t.Run("OwnItem", func(t *testing.T) {
		svc, _, items, users, _ := newBookingFixture(t)

		users.On("GetUser", ctx, int64(1)).Return(&models.User{ID: 1}, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(&models.Item{ID: 5, OwnerID: 1, Available: true}, nil).Once()

		_, err := svc.Create(ctx, 1, CreateBookingInput{ItemID: 5, Start: start, End: end})
		assert.ErrorIs(t, err, domain.ErrOwnershipConflict)
	})

	t.Run("UnavailableItem", func(t *testing.T) {
		svc, _, items, users, _ := newBookingFixture(t)

		users.On("GetUser", ctx, int64(2)).Return(booker, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(&models.Item{ID: 5, OwnerID: 1, Available: false}, nil).Once()

		_, err := svc.Create(ctx, 2, CreateBookingInput{ItemID: 5, Start: start, End: end})
		assert.ErrorIs(t, err, domain.ErrItemUnavailable)
	})

	t.Run("BadTimeRange", func(t *testing.T) {
		svc, bookings, items, users, _ := newBookingFixture(t)

		users.On("GetUser", ctx, int64(2)).Return(booker, nil)
		items.On("GetItem", ctx, int64(5)).Return(&models.Item{ID: 5, OwnerID: 1, Available: true}, nil)

		cases := []CreateBookingInput{
			{ItemID: 5, End: end},                 // missing start
			{ItemID: 5, Start: start},             // missing end
			{ItemID: 5, Start: start, End: start}, // zero-length
			{ItemID: 5, Start: end, End: start},   // inverted
		}
		for _, in := range cases {
			_, err := svc.Create(ctx, 2, in)
			assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
		}
		bookings.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("UnavailabilityBeatsBadRange", func(t *testing.T) {
		svc, _, items, users, _ := newBookingFixture(t)

		users.On("GetUser", ctx, int64(2)).Return(booker, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(&models.Item{ID: 5, OwnerID: 1, Available: false}, nil).Once()

		_, err := svc.Create(ctx, 2, CreateBookingInput{ItemID: 5, Start: end, End: start})
		assert.ErrorIs(t, err, domain.ErrItemUnavailable)
	})
}

func TestBookingSetStatus(t *testing.T) {
	ctx := context.Background()
	item := &models.Item{ID: 5, OwnerID: 1, Available: true}

	t.Run("Approve", func(t *testing.T) {
		svc, bookings, items, _, bus := newBookingFixture(t)

		bookings.On("GetBooking", ctx, int64(10)).Return(&models.Booking{ID: 10, ItemID: 5, BookerID: 2, Status: models.StatusWaiting}, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(item, nil).Once()
		bookings.On("UpdateBookingStatus", ctx, int64(10), models.StatusApproved).Return(nil).Once()
		bus.On("PublishJSON", "booking_approved", mock.Anything).Return(nil).Once()

		booking, err := svc.SetStatus(ctx, 1, 10, true)
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, booking.Status)
		bookings.AssertExpectations(t)
	})

	t.Run("Reject", func(t *testing.T) {
		svc, bookings, items, _, bus := newBookingFixture(t)

		bookings.On("GetBooking", ctx, int64(10)).Return(&models.Booking{ID: 10, ItemID: 5, BookerID: 2, Status: models.StatusWaiting}, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(item, nil).Once()
		bookings.On("UpdateBookingStatus", ctx, int64(10), models.StatusRejected).Return(nil).Once()
		bus.On("PublishJSON", "booking_rejected", mock.Anything).Return(nil).Once()

		booking, err := svc.SetStatus(ctx, 1, 10, false)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, booking.Status)
	})

	t.Run("RejectedMayStillBeApproved", func(t *testing.T) {
		svc, bookings, items, _, bus := newBookingFixture(t)

		bookings.On("GetBooking", ctx, int64(10)).Return(&models.Booking{ID: 10, ItemID: 5, BookerID: 2, Status: models.StatusRejected}, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(item, nil).Once()
		bookings.On("UpdateBookingStatus", ctx, int64(10), models.StatusApproved).Return(nil).Once()
		bus.On("PublishJSON", "booking_approved", mock.Anything).Return(nil).Once()

		booking, err := svc.SetStatus(ctx, 1, 10, true)
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, booking.Status)
	})

	t.Run("ApprovedIsFinal", func(t *testing.T) {
		svc, bookings, items, _, _ := newBookingFixture(t)

		bookings.On("GetBooking", ctx, int64(10)).Return(&models.Booking{ID: 10, ItemID: 5, BookerID: 2, Status: models.StatusApproved}, nil).Twice()
		items.On("GetItem", ctx, int64(5)).Return(item, nil).Twice()

		_, err := svc.SetStatus(ctx, 1, 10, true)
		assert.ErrorIs(t, err, domain.ErrAlreadyDecided)

		_, err = svc.SetStatus(ctx, 1, 10, false)
		assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
		bookings.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotOwner", func(t *testing.T) {
		svc, bookings, items, _, _ := newBookingFixture(t)

		bookings.On("GetBooking", ctx, int64(10)).Return(&models.Booking{ID: 10, ItemID: 5, BookerID: 2, Status: models.StatusWaiting}, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(item, nil).Once()

		_, err := svc.SetStatus(ctx, 2, 10, true)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		svc, bookings, _, _, _ := newBookingFixture(t)

		bookings.On("GetBooking", ctx, int64(404)).Return(nil, database.ErrNotFound).Once()

		_, err := svc.SetStatus(ctx, 1, 404, true)
		assert.ErrorIs(t, err, domain.ErrNoSuchBooking)
	})

	t.Run("DanglingItem", func(t *testing.T) {
		svc, bookings, items, _, _ := newBookingFixture(t)

		bookings.On("GetBooking", ctx, int64(10)).Return(&models.Booking{ID: 10, ItemID: 5, BookerID: 2, Status: models.StatusWaiting}, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(nil, database.ErrNotFound).Once()

		_, err := svc.SetStatus(ctx, 1, 10, true)
		assert.ErrorIs(t, err, domain.ErrNoSuchItem)
	})
}

func TestBookingGet(t *testing.T) {
	ctx := context.Background()
	stored := &models.Booking{ID: 10, ItemID: 5, BookerID: 2, Status: models.StatusWaiting}
	item := &models.Item{ID: 5, OwnerID: 1}

	t.Run("BookerSees", func(t *testing.T) {
		svc, bookings, items, _, _ := newBookingFixture(t)

		bookings.On("GetBooking", ctx, int64(10)).Return(stored, nil).Once()

		booking, err := svc.Get(ctx, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), booking.ID)
		items.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything)
	})

	t.Run("OwnerSees", func(t *testing.T) {
		svc, bookings, items, _, _ := newBookingFixture(t)

		bookings.On("GetBooking", ctx, int64(10)).Return(stored, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(item, nil).Once()

		booking, err := svc.Get(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), booking.ID)
	})

	t.Run("StrangerRefused", func(t *testing.T) {
		svc, bookings, items, _, _ := newBookingFixture(t)

		bookings.On("GetBooking", ctx, int64(10)).Return(stored, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(item, nil).Once()

		_, err := svc.Get(ctx, 3, 10)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("DanglingItem", func(t *testing.T) {
		svc, bookings, items, _, _ := newBookingFixture(t)

		bookings.On("GetBooking", ctx, int64(10)).Return(stored, nil).Once()
		items.On("GetItem", ctx, int64(5)).Return(nil, database.ErrNotFound).Once()

		_, err := svc.Get(ctx, 1, 10)
		assert.ErrorIs(t, err, domain.ErrNoSuchItem)
	})
}

func TestListForBooker(t *testing.T) {
	ctx := context.Background()

	t.Run("DelegatesToStore", func(t *testing.T) {
		svc, bookings, _, users, _ := newBookingFixture(t)
		expected := []*models.Booking{{ID: 3}, {ID: 1}}

		users.On("UserExists", ctx, int64(2)).Return(true, nil).Once()
		bookings.On("BookingsByBooker", ctx, int64(2), models.StateWaiting, mock.AnythingOfType("time.Time"), (*models.Page)(nil)).
			Return(expected, nil).Once()

		got, err := svc.ListForBooker(ctx, 2, "WAITING", nil)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("PassesPage", func(t *testing.T) {
		svc, bookings, _, users, _ := newBookingFixture(t)
		page := &models.Page{From: 0, Size: 2}

		users.On("UserExists", ctx, int64(2)).Return(true, nil).Once()
		bookings.On("BookingsByBooker", ctx, int64(2), models.StateAll, mock.AnythingOfType("time.Time"), page).
			Return([]*models.Booking{}, nil).Once()

		_, err := svc.ListForBooker(ctx, 2, "ALL", page)
		require.NoError(t, err)
		bookings.AssertExpectations(t)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc, _, _, users, _ := newBookingFixture(t)

		users.On("UserExists", ctx, int64(99)).Return(false, nil).Once()

		_, err := svc.ListForBooker(ctx, 99, "ALL", nil)
		assert.ErrorIs(t, err, domain.ErrNoSuchUser)
	})

	t.Run("BadPagination", func(t *testing.T) {
		svc, _, _, users, _ := newBookingFixture(t)

		users.On("UserExists", ctx, int64(2)).Return(true, nil)

		_, err := svc.ListForBooker(ctx, 2, "ALL", &models.Page{From: -1, Size: 2})
		assert.ErrorIs(t, err, domain.ErrInvalidPagination)

		_, err = svc.ListForBooker(ctx, 2, "ALL", &models.Page{From: 0, Size: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidPagination)
	})

	t.Run("BadPaginationCheckedBeforeState", func(t *testing.T) {
		svc, _, _, users, _ := newBookingFixture(t)

		users.On("UserExists", ctx, int64(2)).Return(true, nil).Once()

		_, err := svc.ListForBooker(ctx, 2, "NOT_A_STATE", &models.Page{From: 0, Size: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidPagination)
	})

	t.Run("UnsupportedState", func(t *testing.T) {
		svc, _, _, users, _ := newBookingFixture(t)

		users.On("UserExists", ctx, int64(2)).Return(true, nil).Once()

		_, err := svc.ListForBooker(ctx, 2, "NOT_A_STATE", nil)
		assert.ErrorIs(t, err, domain.ErrUnsupportedState)
	})
}

func TestListForOwner(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	ownedItems := []*models.Item{{ID: 5, OwnerID: 1}, {ID: 6, OwnerID: 1}}
	all := []*models.Booking{
		{ID: 1, ItemID: 5, Start: now.Add(-4 * time.Hour), End: now.Add(-3 * time.Hour), Status: models.StatusApproved},
		{ID: 2, ItemID: 6, Start: now.Add(-time.Hour), End: now.Add(time.Hour), Status: models.StatusApproved},
		{ID: 3, ItemID: 5, Start: now.Add(2 * time.Hour), End: now.Add(3 * time.Hour), Status: models.StatusWaiting},
		{ID: 4, ItemID: 6, Start: now.Add(4 * time.Hour), End: now.Add(5 * time.Hour), Status: models.StatusRejected},
	}

	setup := func(t *testing.T) (*BookingService, *mockBookingStore) {
		svc, bookings, items, users, _ := newBookingFixture(t)
		users.On("UserExists", ctx, int64(1)).Return(true, nil)
		items.On("ItemsOwnedBy", ctx, int64(1)).Return(ownedItems, nil)
		bookings.On("BookingsByItems", ctx, []int64{5, 6}).Return(all, nil)
		return svc, bookings
	}

	t.Run("AllSortedByEndDesc", func(t *testing.T) {
		svc, _ := setup(t)

		got, err := svc.ListForOwner(ctx, 1, "ALL", nil)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, []int64{4, 3, 2, 1}, []int64{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
	})

	t.Run("FilterFuture", func(t *testing.T) {
		svc, _ := setup(t)

		got, err := svc.ListForOwner(ctx, 1, "FUTURE", nil)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(4), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
	})

	t.Run("FilterRejected", func(t *testing.T) {
		svc, _ := setup(t)

		got, err := svc.ListForOwner(ctx, 1, "REJECTED", nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(4), got[0].ID)
	})

	t.Run("PageWindow", func(t *testing.T) {
		svc, _ := setup(t)

		got, err := svc.ListForOwner(ctx, 1, "ALL", &models.Page{From: 1, Size: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(3), got[0].ID)
		assert.Equal(t, int64(2), got[1].ID)
	})

	t.Run("PageBeyondEnd", func(t *testing.T) {
		svc, _ := setup(t)

		got, err := svc.ListForOwner(ctx, 1, "ALL", &models.Page{From: 10, Size: 2})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ZeroFromRefused", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.ListForOwner(ctx, 1, "ALL", &models.Page{From: 0, Size: 2})
		assert.ErrorIs(t, err, domain.ErrInvalidPagination)
	})

	t.Run("UnsupportedState", func(t *testing.T) {
		svc, bookings, _, users, _ := newBookingFixture(t)
		users.On("UserExists", ctx, int64(1)).Return(true, nil).Once()

		_, err := svc.ListForOwner(ctx, 1, "BOGUS", nil)
		assert.ErrorIs(t, err, domain.ErrUnsupportedState)
		bookings.AssertNotCalled(t, "BookingsByItems", mock.Anything, mock.Anything)
	})

	t.Run("NoItems", func(t *testing.T) {
		svc, bookings, items, users, _ := newBookingFixture(t)
		users.On("UserExists", ctx, int64(7)).Return(true, nil).Once()
		items.On("ItemsOwnedBy", ctx, int64(7)).Return([]*models.Item{}, nil).Once()
		bookings.On("BookingsByItems", ctx, []int64{}).Return(nil, nil).Once()

		got, err := svc.ListForOwner(ctx, 7, "ALL", nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
