package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sharent/internal/models"
)

const itemColumns = `id, owner_id, name, description, available, request_id, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Description,
		&item.Available, &item.RequestID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (owner_id, name, description, available, request_id, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		item.OwnerID, item.Name, item.Description, item.Available, item.RequestID, now, now)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("item insert id: %w", err)
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = ?, description = ?, available = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Description, item.Available, time.Now(), item.ID)
	if err != nil {
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	item, err := scanItem(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return item, nil
}

func (db *DB) ItemsOwnedBy(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? ORDER BY id`
	return db.queryItems(ctx, query, ownerID)
}

// SearchItems matches available items whose name or description contains
// the text, case-insensitively. A blank query yields no results.
func (db *DB) SearchItems(ctx context.Context, text string) ([]*models.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	pattern := "%" + strings.ToLower(text) + "%"
	query := `SELECT ` + itemColumns + ` FROM items
              WHERE available = 1 AND (lower(name) LIKE ? OR lower(description) LIKE ?)
              ORDER BY id`
	return db.queryItems(ctx, query, pattern, pattern)
}

// ItemsByRequest lists the items offered in response to a request.
func (db *DB) ItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE request_id = ? ORDER BY id`
	return db.queryItems(ctx, query, requestID)
}

func (db *DB) AllItems(ctx context.Context) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY id`
	return db.queryItems(ctx, query)
}

func (db *DB) queryItems(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return items, nil
}
