package service

import (
	"context"
	"strings"
	"testing"

	"github.com/maheshrc27/autogram/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFallsBackToDefaults(t *testing.T) {
	g := NewContentGenerator(&fakeTemplateRepo{})

	for _, contentType := range []string{models.ContentTypeCaption, models.ContentTypeHashtags} {
		content := g.Generate(context.Background(), contentType, 0)
		require.NotEmpty(t, content)
		assert.Contains(t, defaultPool[contentType], content)
	}
}

func TestGenerateUsesFirstAvailableStrategy(t *testing.T) {
	offline := &fakeStrategy{name: "offline", available: false, content: "never used"}
	primary := &fakeStrategy{name: "primary", available: true, content: "a generated caption"}
	secondary := &fakeStrategy{name: "secondary", available: true, content: "a fallback caption"}

	g := NewContentGenerator(&fakeTemplateRepo{}, offline, primary, secondary)

	content := g.Generate(context.Background(), models.ContentTypeCaption, 0)
	assert.Equal(t, "a generated caption", content)
	assert.Empty(t, offline.prompts)
	assert.Len(t, primary.prompts, 1)
	assert.Empty(t, secondary.prompts)
}

func TestGenerateFallsThroughFailingStrategy(t *testing.T) {
	broken := &fakeStrategy{name: "broken", available: true, err: errStub}
	working := &fakeStrategy{name: "working", available: true, content: "second choice"}

	g := NewContentGenerator(&fakeTemplateRepo{}, broken, working)

	content := g.Generate(context.Background(), models.ContentTypeCaption, 0)
	assert.Equal(t, "second choice", content)
	assert.Len(t, broken.prompts, 1)
	assert.Len(t, working.prompts, 1)
}

func TestGenerateSkipsBlankStrategyOutput(t *testing.T) {
	blank := &fakeStrategy{name: "blank", available: true, content: "   \n"}

	g := NewContentGenerator(&fakeTemplateRepo{}, blank)

	content := g.Generate(context.Background(), models.ContentTypeCaption, 0)
	assert.Contains(t, defaultPool[models.ContentTypeCaption], content)
}

func TestGeneratePrefixesPromptWithDate(t *testing.T) {
	s := &fakeStrategy{name: "capture", available: true, content: "ok"}
	templates := &fakeTemplateRepo{templates: map[int64]*models.ContentTemplate{
		7: {ID: 7, Prompt: "Write about sunsets", ContentType: models.ContentTypeCaption},
	}}

	g := NewContentGenerator(templates, s)
	g.Generate(context.Background(), models.ContentTypeCaption, 7)

	require.Len(t, s.prompts, 1)
	assert.True(t, strings.HasPrefix(s.prompts[0], "Date: "))
	assert.Contains(t, s.prompts[0], "\nPrompt: Write about sunsets")
}

func TestGenerateTemplateMismatchUsesDefaults(t *testing.T) {
	s := &fakeStrategy{name: "capture", available: true, content: "ok"}
	templates := &fakeTemplateRepo{templates: map[int64]*models.ContentTemplate{
		7: {ID: 7, Prompt: "Tag soup", ContentType: models.ContentTypeHashtags},
	}}

	g := NewContentGenerator(templates, s)

	// The template exists but is for hashtags, not captions.
	content := g.Generate(context.Background(), models.ContentTypeCaption, 7)
	assert.Contains(t, defaultPool[models.ContentTypeCaption], content)
	assert.Empty(t, s.prompts, "mismatched template must not reach a backend")
}

func TestGenerateUnknownTemplateUsesDefaults(t *testing.T) {
	s := &fakeStrategy{name: "capture", available: true, content: "ok"}
	g := NewContentGenerator(&fakeTemplateRepo{}, s)

	content := g.Generate(context.Background(), models.ContentTypeCaption, 42)
	assert.Contains(t, defaultPool[models.ContentTypeCaption], content)
	assert.Empty(t, s.prompts)
}

func TestMaxTokensFor(t *testing.T) {
	assert.Equal(t, captionMaxTokens, maxTokensFor(models.ContentTypeCaption))
	assert.Equal(t, hashtagsMaxTokens, maxTokensFor(models.ContentTypeHashtags))
}
