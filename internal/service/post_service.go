package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/autogram/internal/models"
	"github.com/maheshrc27/autogram/internal/repository"
	"github.com/maheshrc27/autogram/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type PostService interface {
	Create(ctx context.Context, pc *transfer.PostCreation, file *multipart.FileHeader) (int64, time.Duration, error)
	List(ctx context.Context) ([]*models.Post, error)
	PostInfo(ctx context.Context, postID int64) (*models.Post, error)
	Remove(ctx context.Context, postID int64) error
}

type postService struct {
	pr         repository.PostRepository
	composer   *ImageComposer
	contentDir string
}

func NewPostService(pr repository.PostRepository, composer *ImageComposer, contentDir string) PostService {
	return &postService{
		pr:         pr,
		composer:   composer,
		contentDir: contentDir,
	}
}

// Create composes the post image (over an uploaded source image when one is
// provided), inserts a draft post and returns its id plus the delay until its
// scheduled time.
func (s *postService) Create(ctx context.Context, pc *transfer.PostCreation, file *multipart.FileHeader) (int64, time.Duration, error) {
	if pc == nil {
		err := errors.New("post creation data is nil")
		slog.Error(err.Error())
		return 0, 0, err
	}
	if pc.Caption == "" {
		err := errors.New("caption cannot be empty")
		slog.Info(err.Error())
		return 0, 0, err
	}

	scheduledTime := time.Now()
	if pc.ScheduledTime != "" {
		var err error
		scheduledTime, err = time.Parse("2006-01-02T15:04", pc.ScheduledTime)
		if err != nil {
			err = fmt.Errorf("invalid scheduled time format: %w", err)
			slog.Error(err.Error())
			return 0, 0, err
		}
	}

	var sourcePath string
	if file != nil {
		var err error
		sourcePath, err = s.saveSourceImage(file)
		if err != nil {
			return 0, 0, fmt.Errorf("error processing uploaded image: %w", err)
		}
	}

	imagePath, err := s.composer.Compose(OverlayText(pc.Caption), sourcePath)
	if err != nil {
		return 0, 0, fmt.Errorf("error composing image: %w", err)
	}

	post := models.Post{
		Caption:       pc.Caption,
		ImagePath:     imagePath,
		Status:        models.PostStatusDraft,
		ScheduledTime: scheduledTime,
	}

	postID, err := s.pr.Create(ctx, nil, &post)
	if err != nil {
		return 0, 0, fmt.Errorf("error creating post: %w", err)
	}

	delay := time.Until(scheduledTime)
	if delay < 0 {
		delay = 0
	}

	return postID, delay, nil
}

func (s *postService) saveSourceImage(file *multipart.FileHeader) (string, error) {
	allowedTypes := map[string]struct{}{
		"jpg": {}, "jpeg": {}, "png": {},
	}

	fileContent, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes := make([]byte, file.Size)
	if _, err := fileContent.Read(fileBytes); err != nil {
		return "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", errors.New("unsupported file type")
	}
	if _, ok := allowedTypes[fileType.Extension]; !ok {
		return "", fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.contentDir, 0o755); err != nil {
		return "", err
	}

	sourcePath := filepath.Join(s.contentDir, fmt.Sprintf("upload_%s.%s", id, fileType.Extension))
	if err := os.WriteFile(sourcePath, fileBytes, 0o644); err != nil {
		return "", err
	}
	return sourcePath, nil
}

func (s *postService) PostInfo(ctx context.Context, postID int64) (*models.Post, error) {
	if postID == 0 {
		err := errors.New("post id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting post info")
	}
	if post == nil {
		err = errors.New("post doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (s *postService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.pr.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts")
	}
	return posts, nil
}

func (s *postService) Remove(ctx context.Context, postID int64) error {
	if postID == 0 {
		err := errors.New("post_id is not valid")
		slog.Info(err.Error())
		return err
	}

	if err := s.pr.Remove(ctx, postID); err != nil {
		return fmt.Errorf("error removing post")
	}
	return nil
}

// OverlayText derives the image overlay from a caption: everything before
// the first hashtag, or the whole caption when there is none.
func OverlayText(caption string) string {
	if i := strings.Index(caption, "#"); i >= 0 {
		return strings.TrimSpace(caption[:i])
	}
	return caption
}
