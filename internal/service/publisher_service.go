package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/maheshrc27/autogram/internal/models"
	"github.com/maheshrc27/autogram/internal/platform"
	"github.com/maheshrc27/autogram/internal/repository"
	"github.com/maheshrc27/autogram/internal/transfer"
)

const (
	defaultPollAttempts = 10
	defaultPollInterval = 2 * time.Second
)

var (
	errMediaProcessing  = errors.New("media container processing failed")
	errContainerTimeout = errors.New("media container was not ready in time")
)

// Publisher drives the two-phase Instagram publish protocol: create a media
// container, wait until the platform reports it ready, then publish it.
type Publisher interface {
	Publish(ctx context.Context, post *models.Post) *transfer.PublishResult
}

type publisher struct {
	graph        platform.Client
	accounts     repository.AccountRepository
	posts        repository.PostRepository
	tokens       *TokenManager
	storage      Storage
	pollAttempts int
	pollInterval time.Duration
}

func NewPublisher(
	graph platform.Client,
	accounts repository.AccountRepository,
	posts repository.PostRepository,
	tokens *TokenManager,
	storage Storage) Publisher {
	return &publisher{
		graph:        graph,
		accounts:     accounts,
		posts:        posts,
		tokens:       tokens,
		storage:      storage,
		pollAttempts: defaultPollAttempts,
		pollInterval: defaultPollInterval,
	}
}

// Publish runs the full publish sequence for the post. Every step after
// credential selection marks the post failed on error; a missing credential
// leaves the post untouched. There is no retry for a failed post.
func (p *publisher) Publish(ctx context.Context, post *models.Post) *transfer.PublishResult {
	account, err := p.accounts.GetActive(ctx)
	if err != nil {
		return &transfer.PublishResult{Error: err.Error()}
	}
	if account == nil {
		return &transfer.PublishResult{Error: "No active Instagram account found"}
	}

	accessToken, err := p.tokens.Ensure(ctx, account)
	if err != nil {
		p.markFailed(ctx, post)
		return &transfer.PublishResult{Error: "Failed to refresh access token"}
	}

	imageURL, err := p.storage.PublicImageURL(ctx, post.ImagePath)
	if err != nil {
		p.markFailed(ctx, post)
		return &transfer.PublishResult{Error: err.Error()}
	}
	post.ImageURL = imageURL
	if err := p.posts.SetImageURL(ctx, post.ID, imageURL); err != nil {
		p.markFailed(ctx, post)
		return &transfer.PublishResult{Error: err.Error()}
	}

	creationID, err := p.graph.CreateMedia(ctx, account.InstagramUserID, imageURL, post.Caption, accessToken)
	if err != nil {
		slog.Error("failed to create media container", "post_id", post.ID, "error", err.Error())
		p.markFailed(ctx, post)
		return &transfer.PublishResult{Error: err.Error()}
	}

	post.CreationID = creationID
	post.Status = models.PostStatusPending
	if err := p.posts.SetCreation(ctx, post.ID, creationID, models.PostStatusPending); err != nil {
		p.markFailed(ctx, post)
		return &transfer.PublishResult{Error: err.Error()}
	}

	if err := p.waitForContainer(ctx, creationID, accessToken); err != nil {
		slog.Error("media container never became ready", "post_id", post.ID, "error", err.Error())
		p.markFailed(ctx, post)
		return &transfer.PublishResult{Error: err.Error()}
	}

	instagramID, err := p.graph.PublishMedia(ctx, account.InstagramUserID, creationID, accessToken)
	if err != nil {
		slog.Error("failed to publish media", "post_id", post.ID, "error", err.Error())
		p.markFailed(ctx, post)
		return &transfer.PublishResult{Error: err.Error()}
	}

	publishedAt := time.Now()
	post.InstagramID = instagramID
	post.Status = models.PostStatusPublished
	post.PublishedTime = &publishedAt
	if err := p.posts.SetPublished(ctx, post.ID, instagramID, publishedAt); err != nil {
		return &transfer.PublishResult{Error: err.Error()}
	}

	return &transfer.PublishResult{
		Success:     true,
		InstagramID: instagramID,
		Message:     "Post successfully published to Instagram",
	}
}

// waitForContainer polls the container status with increasing delays until
// the platform reports FINISHED. The media-processing model is asynchronous;
// publishing an unready container fails, so a container that never reaches
// FINISHED within the attempt budget fails the publish.
func (p *publisher) waitForContainer(ctx context.Context, creationID, accessToken string) error {
	var lastErr error

	for attempt := 1; attempt <= p.pollAttempts; attempt++ {
		status, err := p.graph.ContainerStatus(ctx, creationID, accessToken)
		if err != nil {
			lastErr = err
		} else {
			switch status {
			case platform.ContainerStatusFinished:
				return nil
			case platform.ContainerStatusError:
				return errMediaProcessing
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.pollInterval * time.Duration(attempt)):
		}
	}

	if lastErr != nil {
		return lastErr
	}
	return errContainerTimeout
}

func (p *publisher) markFailed(ctx context.Context, post *models.Post) {
	post.Status = models.PostStatusFailed
	if err := p.posts.UpdateStatus(ctx, models.PostStatusFailed, post.ID); err != nil {
		slog.Error("failed to mark post as failed", "post_id", post.ID, "error", err.Error())
	}
}
