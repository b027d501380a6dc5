package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/autogram/internal/models"
)

type TemplateRepository interface {
	GetByID(ctx context.Context, id int64) (*models.ContentTemplate, error)
	GetRandomActive(ctx context.Context, contentType string) (*models.ContentTemplate, error)
	List(ctx context.Context) ([]*models.ContentTemplate, error)
	Create(ctx context.Context, t *models.ContentTemplate) (int64, error)
	Update(ctx context.Context, t *models.ContentTemplate) error
	Remove(ctx context.Context, id int64) error
}

type templateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) GetByID(ctx context.Context, id int64) (*models.ContentTemplate, error) {
	query := `SELECT id, name, prompt, content_type, active, created_at, updated_at FROM content_templates WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var t models.ContentTemplate
	err := row.Scan(&t.ID, &t.Name, &t.Prompt, &t.ContentType, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &t, nil
}

func (r *templateRepository) GetRandomActive(ctx context.Context, contentType string) (*models.ContentTemplate, error) {
	query := `
		SELECT id, name, prompt, content_type, active, created_at, updated_at
		FROM content_templates
		WHERE content_type = $1 AND active = TRUE
		ORDER BY RANDOM()
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, contentType)

	var t models.ContentTemplate
	err := row.Scan(&t.ID, &t.Name, &t.Prompt, &t.ContentType, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &t, nil
}

func (r *templateRepository) List(ctx context.Context) ([]*models.ContentTemplate, error) {
	query := `SELECT id, name, prompt, content_type, active, created_at, updated_at FROM content_templates ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var templates []*models.ContentTemplate
	for rows.Next() {
		var t models.ContentTemplate
		err := rows.Scan(&t.ID, &t.Name, &t.Prompt, &t.ContentType, &t.Active, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		templates = append(templates, &t)
	}
	return templates, rows.Err()
}

func (r *templateRepository) Create(ctx context.Context, t *models.ContentTemplate) (int64, error) {
	query := `
		INSERT INTO content_templates (name, prompt, content_type, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, t.Name, t.Prompt, t.ContentType, t.Active).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *templateRepository) Update(ctx context.Context, t *models.ContentTemplate) error {
	query := `
		UPDATE content_templates
		SET name = $1,
			prompt = $2,
			content_type = $3,
			active = $4,
			updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query, t.Name, t.Prompt, t.ContentType, t.Active, time.Now(), t.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *templateRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM content_templates WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
