package service

import (
	"context"
	"errors"
	"fmt"

	"sharent/internal/database"
	"sharent/internal/domain"
	"sharent/internal/models"

	"github.com/rs/zerolog"
)

// RequestService manages item requests: a renter's ask for an item
// nobody listed yet, answered by owners through linked listings.
type RequestService struct {
	requests domain.RequestStore
	items    domain.ItemStore
	users    domain.UserDirectory
	logger   *zerolog.Logger
}

func NewRequestService(requests domain.RequestStore, items domain.ItemStore, users domain.UserDirectory, logger *zerolog.Logger) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

func (s *RequestService) Create(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &models.ItemRequest{
		RequesterID: requesterID,
		Description: description,
	}
	if err := s.requests.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("persist request: %w", err)
	}

	s.logger.Info().Int64("request_id", req.ID).Int64("requester_id", requesterID).Msg("item request created")
	return req, nil
}

// ListOwn returns the caller's requests, newest first, each with the
// items offered in response.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]*models.ItemRequestDetail, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.requests.RequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list requests of requester %d: %w", requesterID, err)
	}
	return s.buildDetails(ctx, requests)
}

// ListOthers returns everyone else's requests, newest first. Pagination
// requires from >= 0 and size >= 1.
func (s *RequestService) ListOthers(ctx context.Context, callerID int64, page *models.Page) ([]*models.ItemRequestDetail, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	if page != nil && (page.From < 0 || page.Size < 1) {
		return nil, domain.ErrInvalidPagination
	}

	requests, err := s.requests.RequestsByOthers(ctx, callerID, page)
	if err != nil {
		return nil, fmt.Errorf("list requests hidden from requester %d: %w", callerID, err)
	}
	return s.buildDetails(ctx, requests)
}

// Get returns a single request with its responding items. Any existing
// user may look a request up.
func (s *RequestService) Get(ctx context.Context, callerID, requestID int64) (*models.ItemRequestDetail, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}

	req, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, domain.ErrNoSuchRequest
		}
		return nil, fmt.Errorf("resolve request %d: %w", requestID, err)
	}
	return s.buildDetail(ctx, req)
}

func (s *RequestService) buildDetails(ctx context.Context, requests []*models.ItemRequest) ([]*models.ItemRequestDetail, error) {
	details := make([]*models.ItemRequestDetail, 0, len(requests))
	for _, req := range requests {
		detail, err := s.buildDetail(ctx, req)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *RequestService) buildDetail(ctx context.Context, req *models.ItemRequest) (*models.ItemRequestDetail, error) {
	items, err := s.items.ItemsByRequest(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("items answering request %d: %w", req.ID, err)
	}
	if items == nil {
		items = []*models.Item{}
	}
	return &models.ItemRequestDetail{ItemRequest: *req, Items: items}, nil
}

func (s *RequestService) requireUser(ctx context.Context, id int64) error {
	exists, err := s.users.UserExists(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve user %d: %w", id, err)
	}
	if !exists {
		return domain.ErrNoSuchUser
	}
	return nil
}
