package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"sharent/internal/domain"
	"sharent/internal/models"
	"sharent/internal/service"
)

// Booking handlers.

type createBookingRequest struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	var body createBookingRequest
	if !decodeBody(w, r, &body) {
		return
	}

	booking, err := s.bookings.Create(r.Context(), userID, service.CreateBookingInput{
		ItemID: body.ItemID,
		Start:  body.Start,
		End:    body.End,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleSetBookingStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	booking, err := s.bookings.SetStatus(r.Context(), userID, bookingID, approved)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	booking, err := s.bookings.Get(r.Context(), userID, bookingID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleBookerBookings(w http.ResponseWriter, r *http.Request) {
	s.handleBookingList(w, r, s.bookings.ListForBooker)
}

func (s *HTTPServer) handleOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.handleBookingList(w, r, s.bookings.ListForOwner)
}

func (s *HTTPServer) handleBookingList(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, userID int64, state string, page *models.Page) ([]*models.Booking, error)) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = "ALL"
	}

	page, err := pageFromQuery(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	bookings, err := list(r.Context(), userID, state, page)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// Item handlers.

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   int64  `json:"request_id"`
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	var body createItemRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	item, err := s.items.Create(r.Context(), userID, service.CreateItemInput{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

type patchItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func (s *HTTPServer) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	var body patchItemRequest
	if !decodeBody(w, r, &body) {
		return
	}

	item, err := s.items.Patch(r.Context(), userID, itemID, service.PatchItemInput{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleItemDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := s.items.Detail(r.Context(), userID, itemID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *HTTPServer) handleOwnItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	details, err := s.items.ItemsOf(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.Search(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []*models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

type commentRequest struct {
	Text string `json:"text"`
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	var body commentRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	comment, err := s.items.AddComment(r.Context(), userID, itemID, body.Text)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// Item request handlers.

type itemRequestBody struct {
	Description string `json:"description"`
}

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	var body itemRequestBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	req, err := s.requests.Create(r.Context(), userID, body.Description)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (s *HTTPServer) handleOwnRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	details, err := s.requests.ListOwn(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *HTTPServer) handleOtherRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	page, err := pageFromQuery(r)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	details, err := s.requests.ListOthers(r.Context(), userID, page)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := s.requests.Get(r.Context(), userID, requestID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// User handlers.

type userRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body userRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Name == "" || body.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	user, err := s.users.Create(r.Context(), body.Name, body.Email)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type patchUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (s *HTTPServer) handlePatchUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body patchUserRequest
	if !decodeBody(w, r, &body) {
		return
	}

	user, err := s.users.Patch(r.Context(), id, service.PatchUserInput{Name: body.Name, Email: body.Email})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Helpers.

func (s *HTTPServer) callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		writeError(w, http.StatusBadRequest, userIDHeader+" header is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, userIDHeader+" must be an integer")
		return 0, false
	}
	return id, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

// pageFromQuery reads the optional from/size pair. Exactly one of the
// two present counts as invalid pagination; range checks stay with the
// engine.
func pageFromQuery(r *http.Request) (*models.Page, error) {
	fromRaw := r.URL.Query().Get("from")
	sizeRaw := r.URL.Query().Get("size")

	if fromRaw == "" && sizeRaw == "" {
		return nil, nil
	}
	if fromRaw == "" || sizeRaw == "" {
		return nil, domain.ErrInvalidPagination
	}

	from, err := strconv.Atoi(fromRaw)
	if err != nil {
		return nil, domain.ErrInvalidPagination
	}
	size, err := strconv.Atoi(sizeRaw)
	if err != nil {
		return nil, domain.ErrInvalidPagination
	}
	return &models.Page{From: from, Size: size}, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoSuchUser),
		errors.Is(err, domain.ErrNoSuchItem),
		errors.Is(err, domain.ErrNoSuchBooking),
		errors.Is(err, domain.ErrNoSuchRequest):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrOwnershipConflict),
		errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTimeRange),
		errors.Is(err, domain.ErrInvalidPagination),
		errors.Is(err, domain.ErrItemUnavailable),
		errors.Is(err, domain.ErrAlreadyDecided),
		errors.Is(err, domain.ErrNoFinishedBooking),
		errors.Is(err, domain.ErrUnsupportedState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
