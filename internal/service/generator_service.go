package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/maheshrc27/autogram/internal/models"
	"github.com/maheshrc27/autogram/internal/repository"
)

// Sampling parameters are fixed, not user-configurable.
const (
	genTemperature      = 0.7
	genTopP             = 0.95
	genTopK             = 50
	captionMaxTokens    = 150
	hashtagsMaxTokens   = 50
	promptDateFormat    = "January 2, 2006"
	fallbackPromptText  = "Create engaging content for Instagram"
	fallbackContentText = "Check out this amazing content!"
)

// defaultPool holds hardcoded fallback content used when no template exists
// and when every generation backend fails.
var defaultPool = map[string][]string{
	models.ContentTypeCaption: {
		"Looking for motivation? Here's your daily reminder that consistency is key to achieving your goals. #motivation #success",
		"The only limit to your growth is your mindset. Challenge yourself today. #growth #mindset",
		"Small steps forward each day lead to massive progress over time. Keep going! #progress #journey",
	},
	models.ContentTypeHashtags: {
		"#motivation #success #growth #mindset #inspiration",
		"#goals #achievement #progress #consistency #focus",
		"#inspiration #journey #growth #success #mindset",
	},
}

// GenerationStrategy is one backend in the ordered fallback chain.
type GenerationStrategy interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, prompt, contentType string) (string, error)
}

type ContentGenerator struct {
	templates  repository.TemplateRepository
	strategies []GenerationStrategy
}

func NewContentGenerator(templates repository.TemplateRepository, strategies ...GenerationStrategy) *ContentGenerator {
	return &ContentGenerator{
		templates:  templates,
		strategies: strategies,
	}
}

// Generate produces caption or hashtag text. It never fails: backends are
// tried in order and the hardcoded default pool is the final fallback.
// templateID of zero means "pick a random active template".
func (g *ContentGenerator) Generate(ctx context.Context, contentType string, templateID int64) string {
	prompt, ok := g.selectPrompt(ctx, contentType, templateID)
	if !ok {
		return randomDefault(contentType)
	}

	prompt = fmt.Sprintf("Date: %s\nPrompt: %s", time.Now().Format(promptDateFormat), prompt)

	for _, s := range g.strategies {
		if !s.Available() {
			continue
		}
		content, err := s.Generate(ctx, prompt, contentType)
		if err != nil {
			slog.Info("generation backend failed", "backend", s.Name(), "error", err.Error())
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			return content
		}
	}

	return randomDefault(contentType)
}

func (g *ContentGenerator) selectPrompt(ctx context.Context, contentType string, templateID int64) (string, bool) {
	if templateID != 0 {
		t, err := g.templates.GetByID(ctx, templateID)
		if err != nil {
			return "", false
		}
		if t == nil || t.ContentType != contentType {
			slog.Warn("template not found or content type mismatch, using defaults",
				"template_id", templateID, "content_type", contentType)
			return "", false
		}
		return t.Prompt, true
	}

	t, err := g.templates.GetRandomActive(ctx, contentType)
	if err != nil {
		return "", false
	}
	if t != nil {
		return t.Prompt, true
	}

	// No templates in the database: the default pool doubles as prompts.
	pool := defaultPool[contentType]
	if len(pool) == 0 {
		return fallbackPromptText, true
	}
	return pool[rand.Intn(len(pool))], true
}

func randomDefault(contentType string) string {
	pool := defaultPool[contentType]
	if len(pool) == 0 {
		return fallbackContentText
	}
	return pool[rand.Intn(len(pool))]
}

func maxTokensFor(contentType string) int {
	if contentType == models.ContentTypeCaption {
		return captionMaxTokens
	}
	return hashtagsMaxTokens
}
