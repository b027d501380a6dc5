package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/autogram/internal/models"
	"github.com/maheshrc27/autogram/internal/repository"
	"github.com/maheshrc27/autogram/internal/service"
	"github.com/robfig/cron"
)

// First cycle runs shortly after startup instead of waiting a full interval.
const startupGracePeriod = time.Minute

// PostScheduler periodically creates and publishes a post: generate caption
// and hashtags, compose an image, insert a draft row, publish. Start is
// idempotent; re-registering replaces the previous timer instead of stacking
// a second one.
type PostScheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	grace    *time.Timer
	interval int

	generator *service.ContentGenerator
	composer  *service.ImageComposer
	publisher service.Publisher
	posts     repository.PostRepository
}

func NewPostScheduler(
	intervalHours int,
	generator *service.ContentGenerator,
	composer *service.ImageComposer,
	publisher service.Publisher,
	posts repository.PostRepository) *PostScheduler {
	return &PostScheduler{
		interval:  intervalHours,
		generator: generator,
		composer:  composer,
		publisher: publisher,
		posts:     posts,
	}
}

func (s *PostScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	s.cron = cron.New()
	s.cron.AddFunc(fmt.Sprintf("@every %dh0m0s", s.interval), func() {
		s.RunCycle(context.Background())
	})
	s.cron.Start()

	s.grace = time.AfterFunc(startupGracePeriod, func() {
		s.RunCycle(context.Background())
	})

	slog.Info("Instagram posting scheduled", "interval_hours", s.interval)
}

func (s *PostScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *PostScheduler) stopLocked() {
	if s.grace != nil {
		s.grace.Stop()
		s.grace = nil
	}
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}

// RunCycle performs one create-and-publish cycle. Nothing escapes a firing:
// every failure is reduced to a logged false so the timer keeps going.
func (s *PostScheduler) RunCycle(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in automated post creation", "panic", fmt.Sprint(r))
			ok = false
		}
	}()

	slog.Info("starting automated post creation")

	caption := s.generator.Generate(ctx, models.ContentTypeCaption, 0)
	hashtags := s.generator.Generate(ctx, models.ContentTypeHashtags, 0)
	fullCaption := caption + "\n\n" + hashtags

	imagePath, err := s.composer.Compose(service.OverlayText(caption), "")
	if err != nil {
		slog.Error("failed to create image for the post", "error", err.Error())
		return false
	}

	post := models.Post{
		Caption:       fullCaption,
		ImagePath:     imagePath,
		Status:        models.PostStatusDraft,
		ScheduledTime: time.Now(),
	}

	postID, err := s.posts.Create(ctx, nil, &post)
	if err != nil {
		slog.Error("failed to save new post", "error", err.Error())
		return false
	}
	post.ID = postID

	slog.Info("created new post", "post_id", postID)

	result := s.publisher.Publish(ctx, &post)
	if !result.Success {
		slog.Error("failed to publish post", "post_id", postID, "error", result.Error)
		return false
	}

	slog.Info("successfully published post", "post_id", postID, "instagram_id", result.InstagramID)
	return true
}
