package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/five82/shelf/internal/catalog"
)

func commentValues(c catalog.Comment) []any {
	return []any{c.Author, c.Message, c.Rating, c.Posted.UTC().Format(time.RFC3339), c.ProductID}
}

func scanComment(row interface{ Scan(...any) error }) (catalog.Comment, error) {
	var (
		c      catalog.Comment
		posted string
	)
	if err := row.Scan(&c.ID, &c.Author, &c.Message, &c.Rating, &posted, &c.ProductID); err != nil {
		return catalog.Comment{}, err
	}
	t, err := time.Parse(time.RFC3339, posted)
	if err != nil {
		return catalog.Comment{}, fmt.Errorf("comment %d posted: %w", c.ID, err)
	}
	c.Posted = catalog.Timestamp{Time: t}
	return c, nil
}

// ListComments returns the comments matching q.
func (r *Repository) ListComments(ctx context.Context, q Query) ([]catalog.Comment, error) {
	rows, err := r.list(ctx, commentsTable, q)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	comments := []catalog.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comments: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// GetComment returns one comment.
func (r *Repository) GetComment(ctx context.Context, id int64) (catalog.Comment, error) {
	c, err := scanComment(r.getRow(ctx, commentsTable, id))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Comment{}, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return catalog.Comment{}, fmt.Errorf("get comment %d: %w", id, err)
	}
	return c, nil
}

// CreateComment appends a comment to a product. A missing product is
// ErrNotFound; a zero Posted time is stamped with now.
func (r *Repository) CreateComment(ctx context.Context, c catalog.Comment) (catalog.Comment, error) {
	if c.Posted.IsZero() {
		c.Posted = catalog.Timestamp{Time: time.Now()}
	}
	var id int64
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := r.parentExists(ctx, tx, productsTable, c.ProductID); err != nil {
			return err
		}
		var err error
		id, err = r.insert(ctx, tx, commentsTable, commentValues(c))
		return err
	})
	if err != nil {
		return catalog.Comment{}, err
	}
	return r.GetComment(ctx, id)
}
