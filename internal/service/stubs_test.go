package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/maheshrc27/autogram/internal/models"
)

// fakeTemplateRepo serves templates from memory.
type fakeTemplateRepo struct {
	templates map[int64]*models.ContentTemplate
	random    *models.ContentTemplate
	err       error
}

func (f *fakeTemplateRepo) GetByID(ctx context.Context, id int64) (*models.ContentTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.templates[id], nil
}

func (f *fakeTemplateRepo) GetRandomActive(ctx context.Context, contentType string) (*models.ContentTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.random != nil && f.random.ContentType == contentType {
		return f.random, nil
	}
	return nil, nil
}

func (f *fakeTemplateRepo) List(ctx context.Context) ([]*models.ContentTemplate, error) {
	return nil, nil
}

func (f *fakeTemplateRepo) Create(ctx context.Context, t *models.ContentTemplate) (int64, error) {
	return 0, nil
}

func (f *fakeTemplateRepo) Update(ctx context.Context, t *models.ContentTemplate) error {
	return nil
}

func (f *fakeTemplateRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

// fakeStrategy records the prompts it was asked to generate from.
type fakeStrategy struct {
	name      string
	available bool
	content   string
	err       error
	prompts   []string
}

func (f *fakeStrategy) Name() string    { return f.name }
func (f *fakeStrategy) Available() bool { return f.available }

func (f *fakeStrategy) Generate(ctx context.Context, prompt, contentType string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.content, f.err
}

// fakeAccountRepo holds a single account in memory.
type fakeAccountRepo struct {
	account      *models.InstagramAccount
	setTokenErr  error
	tokenUpdates int
}

func (f *fakeAccountRepo) Create(ctx context.Context, a *models.InstagramAccount) (int64, error) {
	f.account = a
	return 1, nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id int64) (*models.InstagramAccount, error) {
	return f.account, nil
}

func (f *fakeAccountRepo) GetActive(ctx context.Context) (*models.InstagramAccount, error) {
	return f.account, nil
}

func (f *fakeAccountRepo) List(ctx context.Context) ([]*models.InstagramAccount, error) {
	if f.account == nil {
		return nil, nil
	}
	return []*models.InstagramAccount{f.account}, nil
}

func (f *fakeAccountRepo) ListExpiring(ctx context.Context, before time.Time) ([]*models.InstagramAccount, error) {
	if f.account == nil || !f.account.TokenExpiresAt.Before(before) {
		return nil, nil
	}
	return []*models.InstagramAccount{f.account}, nil
}

func (f *fakeAccountRepo) SetToken(ctx context.Context, id int64, accessToken string, expiresAt time.Time) error {
	if f.setTokenErr != nil {
		return f.setTokenErr
	}
	f.tokenUpdates++
	return nil
}

func (f *fakeAccountRepo) Remove(ctx context.Context, id int64) error {
	f.account = nil
	return nil
}

// fakePostRepo keeps the last persisted post state so tests can assert on the
// status transitions the publisher drives.
type fakePostRepo struct {
	posts     map[int64]*models.Post
	createErr error
	nextID    int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*models.Post)}
}

func (f *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	clone := *post
	clone.ID = f.nextID
	f.posts[f.nextID] = &clone
	return f.nextID, nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return f.posts[id], nil
}

func (f *fakePostRepo) List(ctx context.Context) ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePostRepo) UpdateStatus(ctx context.Context, status string, postID int64) error {
	if p, ok := f.posts[postID]; ok {
		p.Status = status
	}
	return nil
}

func (f *fakePostRepo) SetImageURL(ctx context.Context, postID int64, imageURL string) error {
	if p, ok := f.posts[postID]; ok {
		p.ImageURL = imageURL
	}
	return nil
}

func (f *fakePostRepo) SetCreation(ctx context.Context, postID int64, creationID, status string) error {
	if p, ok := f.posts[postID]; ok {
		p.CreationID = creationID
		p.Status = status
	}
	return nil
}

func (f *fakePostRepo) SetPublished(ctx context.Context, postID int64, instagramID string, publishedAt time.Time) error {
	if p, ok := f.posts[postID]; ok {
		p.InstagramID = instagramID
		p.Status = models.PostStatusPublished
		p.PublishedTime = &publishedAt
	}
	return nil
}

func (f *fakePostRepo) Remove(ctx context.Context, id int64) error {
	delete(f.posts, id)
	return nil
}

// fakeGraph counts calls per endpoint and plays back scripted container
// statuses.
type fakeGraph struct {
	creationID  string
	instagramID string
	newToken    string

	createErr   error
	publishErr  error
	exchangeErr error

	statuses  []string
	statusIdx int

	createCalls   int
	statusCalls   int
	publishCalls  int
	exchangeCalls int
}

func (f *fakeGraph) CreateMedia(ctx context.Context, igUserID, imageURL, caption, accessToken string) (string, error) {
	f.createCalls++
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.creationID, nil
}

func (f *fakeGraph) ContainerStatus(ctx context.Context, creationID, accessToken string) (string, error) {
	f.statusCalls++
	if len(f.statuses) == 0 {
		return "FINISHED", nil
	}
	status := f.statuses[f.statusIdx]
	if f.statusIdx < len(f.statuses)-1 {
		f.statusIdx++
	}
	return status, nil
}

func (f *fakeGraph) PublishMedia(ctx context.Context, igUserID, creationID, accessToken string) (string, error) {
	f.publishCalls++
	if f.publishErr != nil {
		return "", f.publishErr
	}
	return f.instagramID, nil
}

func (f *fakeGraph) ExchangeToken(ctx context.Context, clientID, clientSecret, accessToken string) (string, error) {
	f.exchangeCalls++
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return f.newToken, nil
}

// fakeStorage returns a fixed public URL without touching the filesystem.
type fakeStorage struct {
	url string
	err error
}

func (f *fakeStorage) PublicImageURL(ctx context.Context, localPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

var errStub = errors.New("stub failure")
