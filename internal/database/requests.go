package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sharent/internal/models"
)

const requestColumns = `id, requester_id, description, created_at`

func scanRequest(row interface{ Scan(...any) error }) (*models.ItemRequest, error) {
	req := &models.ItemRequest{}
	err := row.Scan(&req.ID, &req.RequesterID, &req.Description, &req.CreatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (db *DB) CreateRequest(ctx context.Context, req *models.ItemRequest) error {
	query := `INSERT INTO requests (requester_id, description, created_at) VALUES (?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, req.RequesterID, req.Description, now)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("request insert id: %w", err)
	}
	req.ID = id
	req.CreatedAt = now
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = ?`
	req, err := scanRequest(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get request %d: %w", id, err)
	}
	return req, nil
}

// RequestsByRequester lists the requester's own requests, newest first.
func (db *DB) RequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests
              WHERE requester_id = ? ORDER BY created_at DESC, id DESC`
	return db.queryRequests(ctx, query, requesterID)
}

// RequestsByOthers lists everyone else's requests, newest first. The
// page window is applied as LIMIT/OFFSET so the result equals the
// [From, From+Size) slice of the full sorted list.
func (db *DB) RequestsByOthers(ctx context.Context, requesterID int64, page *models.Page) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests
              WHERE requester_id != ? ORDER BY created_at DESC, id DESC`
	args := []any{requesterID}
	if page != nil {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Size, page.From)
	}
	return db.queryRequests(ctx, query, args...)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]*models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.ItemRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	return requests, nil
}
