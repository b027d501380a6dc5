package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/autogram/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	UpdateStatus(ctx context.Context, status string, postID int64) error
	SetImageURL(ctx context.Context, postID int64, imageURL string) error
	SetCreation(ctx context.Context, postID int64, creationID, status string) error
	SetPublished(ctx context.Context, postID int64, instagramID string, publishedAt time.Time) error
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (caption, image_path, status, scheduled_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, post.Caption, post.ImagePath, post.Status, post.ScheduledTime).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, post.Caption, post.ImagePath, post.Status, post.ScheduledTime).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT id, caption, image_path, image_url, creation_id, instagram_id, status, scheduled_time, published_time, created_at, updated_at FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT id, caption, image_path, image_url, creation_id, instagram_id, status, scheduled_time, published_time, created_at, updated_at FROM posts ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	var imageURL, creationID, instagramID sql.NullString
	var publishedTime sql.NullTime

	err := row.Scan(&post.ID, &post.Caption, &post.ImagePath, &imageURL, &creationID,
		&instagramID, &post.Status, &post.ScheduledTime, &publishedTime,
		&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	post.ImageURL = imageURL.String
	post.CreationID = creationID.String
	post.InstagramID = instagramID.String
	if publishedTime.Valid {
		post.PublishedTime = &publishedTime.Time
	}
	return &post, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, status string, postID int64) error {
	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) SetImageURL(ctx context.Context, postID int64, imageURL string) error {
	query := `
		UPDATE posts
		SET image_url = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, imageURL, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) SetCreation(ctx context.Context, postID int64, creationID, status string) error {
	query := `
		UPDATE posts
		SET creation_id = $1,
			status = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, creationID, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) SetPublished(ctx context.Context, postID int64, instagramID string, publishedAt time.Time) error {
	query := `
		UPDATE posts
		SET instagram_id = $1,
			status = $2,
			published_time = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, instagramID, models.PostStatusPublished, publishedAt, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
