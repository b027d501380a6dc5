package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/autogram/internal/models"
	"github.com/maheshrc27/autogram/internal/repository"
	"github.com/maheshrc27/autogram/internal/transfer"
)

type TemplateService interface {
	List(ctx context.Context) ([]*models.ContentTemplate, error)
	Create(ctx context.Context, tc *transfer.TemplateCreation) (int64, error)
	Update(ctx context.Context, id int64, tc *transfer.TemplateCreation) error
	Remove(ctx context.Context, id int64) error
}

type templateService struct {
	tr repository.TemplateRepository
}

func NewTemplateService(tr repository.TemplateRepository) TemplateService {
	return &templateService{tr: tr}
}

func (s *templateService) List(ctx context.Context) ([]*models.ContentTemplate, error) {
	templates, err := s.tr.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing templates")
	}
	return templates, nil
}

func (s *templateService) Create(ctx context.Context, tc *transfer.TemplateCreation) (int64, error) {
	if err := validateTemplate(tc); err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	active := true
	if tc.Active != nil {
		active = *tc.Active
	}

	id, err := s.tr.Create(ctx, &models.ContentTemplate{
		Name:        tc.Name,
		Prompt:      tc.Prompt,
		ContentType: tc.ContentType,
		Active:      active,
	})
	if err != nil {
		return 0, fmt.Errorf("error creating template: %w", err)
	}
	return id, nil
}

func (s *templateService) Update(ctx context.Context, id int64, tc *transfer.TemplateCreation) error {
	if err := validateTemplate(tc); err != nil {
		slog.Info(err.Error())
		return err
	}

	t, err := s.tr.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		err = errors.New("template doesn't exist")
		slog.Info(err.Error())
		return err
	}

	t.Name = tc.Name
	t.Prompt = tc.Prompt
	t.ContentType = tc.ContentType
	if tc.Active != nil {
		t.Active = *tc.Active
	}

	return s.tr.Update(ctx, t)
}

func (s *templateService) Remove(ctx context.Context, id int64) error {
	if id == 0 {
		err := errors.New("template id is not valid")
		slog.Info(err.Error())
		return err
	}
	if err := s.tr.Remove(ctx, id); err != nil {
		return fmt.Errorf("error removing template")
	}
	return nil
}

func validateTemplate(tc *transfer.TemplateCreation) error {
	if tc == nil || tc.Name == "" || tc.Prompt == "" {
		return errors.New("name and prompt are required")
	}
	if tc.ContentType != models.ContentTypeCaption && tc.ContentType != models.ContentTypeHashtags {
		return fmt.Errorf("unknown content type %q", tc.ContentType)
	}
	return nil
}
