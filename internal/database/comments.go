package database

import (
	"context"
	"fmt"
	"time"

	"sharent/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, c *models.Comment) error {
	query := `INSERT INTO comments (item_id, author_id, text, created_at) VALUES (?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, c.ItemID, c.AuthorID, c.Text, now)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("comment insert id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	return nil
}

func (db *DB) CommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	query := `SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created_at
              FROM comments c JOIN users u ON u.id = c.author_id
              WHERE c.item_id = ? ORDER BY c.created_at DESC`
	rows, err := db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("comments by item %d: %w", itemID, err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("comments by item %d: %w", itemID, err)
	}
	return comments, nil
}
