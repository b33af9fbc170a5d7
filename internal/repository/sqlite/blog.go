package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
)

// compile-time check that *BlogStore implements repository.BlogRepository
var _ repository.BlogRepository = (*BlogStore)(nil)

// Create inserts a new blog. The ID and timestamps are generated here and
// written back onto the passed struct.
func (db *BlogStore) Create(ctx context.Context, blog *model.Blog) error {
	now := time.Now()
	blog.ID = xid.New().String()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO blogs (id, title, author, url, likes, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		nullableID(blog.UserID),
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating blog: %w", err)
	}

	return nil
}

// GetByID retrieves a single blog by its ID.
// Returns apperror.ErrNotFound if it doesn't exist.
func (db *BlogStore) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	var (
		blog   model.Blog
		userID sql.NullString
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, author, url, likes, user_id, created_at, updated_at
		 FROM blogs
		 WHERE id = ?`,
		id,
	).Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&userID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog %s: %w", id, err)
	}

	blog.UserID = userID.String
	return &blog, nil
}

// ListWithOwners retrieves every blog joined with its owner's public fields,
// oldest first. Unowned blogs come back with a nil Owner.
func (db *BlogStore) ListWithOwners(ctx context.Context) ([]model.BlogWithOwner, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT b.id, b.title, b.author, b.url, b.likes, b.created_at, b.updated_at,
		        u.id, u.username, u.name
		 FROM blogs b
		 LEFT JOIN users u ON u.id = b.user_id
		 ORDER BY b.created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := []model.BlogWithOwner{}
	for rows.Next() {
		var (
			b                      model.BlogWithOwner
			ownerID, ownerUsername sql.NullString
			ownerName              sql.NullString
		)
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes,
			&b.CreatedAt, &b.UpdatedAt,
			&ownerID, &ownerUsername, &ownerName,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog row: %w", err)
		}

		if ownerID.Valid {
			b.UserID = ownerID.String
			b.Owner = &model.UserRef{
				ID:       ownerID.String,
				Username: ownerUsername.String,
				Name:     ownerName.String,
			}
		}

		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blogs: %w", err)
	}

	return blogs, nil
}

// UpdateLikes sets a blog's like count and returns the updated record.
// Only the like count is mutable through the API; title, url, author and
// owner are fixed at creation.
func (db *BlogStore) UpdateLikes(ctx context.Context, id string, likes int) (*model.Blog, error) {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE blogs SET likes = ?, updated_at = ? WHERE id = ?`,
		likes,
		time.Now(),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating blog %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, apperror.NotFound("blog", id)
	}

	return db.GetByID(ctx, id)
}

// Delete removes a blog by its ID.
// Returns apperror.ErrNotFound if it doesn't exist.
func (db *BlogStore) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM blogs WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting blog %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", id)
	}

	return nil
}

// nullableID maps an empty owner ID to NULL so the foreign key constraint
// doesn't reject unowned blogs.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
