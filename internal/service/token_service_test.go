package service

import (
	"context"
	"testing"
	"time"

	config "github.com/maheshrc27/autogram/configs"
	"github.com/maheshrc27/autogram/internal/models"
	"github.com/maheshrc27/autogram/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func testAccount(t *testing.T, token string, expiresAt time.Time) *models.InstagramAccount {
	t.Helper()
	encrypted, err := utils.Encrypt([]byte(token), []byte(testSecretKey))
	require.NoError(t, err)
	return &models.InstagramAccount{
		ID:              1,
		AccountName:     "test",
		InstagramUserID: "178414",
		AccessToken:     encrypted,
		TokenExpiresAt:  expiresAt,
		Active:          true,
	}
}

func TestIsTokenValid(t *testing.T) {
	assert.False(t, (&models.InstagramAccount{}).IsTokenValid(), "missing expiry means invalid")
	assert.False(t, (&models.InstagramAccount{TokenExpiresAt: time.Now().Add(-time.Hour)}).IsTokenValid())
	assert.True(t, (&models.InstagramAccount{TokenExpiresAt: time.Now().Add(time.Hour)}).IsTokenValid())
}

func TestEnsureReturnsTokenWithoutRefresh(t *testing.T) {
	account := testAccount(t, "current-token", time.Now().Add(24*time.Hour))
	graph := &fakeGraph{newToken: "never-used"}
	repo := &fakeAccountRepo{account: account}

	m := NewTokenManager(config.Config{SecretKey: testSecretKey}, graph, repo)

	token, err := m.Ensure(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, "current-token", token)
	assert.Zero(t, graph.exchangeCalls)
}

func TestEnsureRefreshesExpiredToken(t *testing.T) {
	account := testAccount(t, "stale-token", time.Now().Add(-time.Hour))
	graph := &fakeGraph{newToken: "fresh-token"}
	repo := &fakeAccountRepo{account: account}

	m := NewTokenManager(config.Config{SecretKey: testSecretKey}, graph, repo)

	token, err := m.Ensure(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, 1, graph.exchangeCalls)
	assert.Equal(t, 1, repo.tokenUpdates)

	// A 60 day lifetime from now, stored on the account in place.
	assert.WithinDuration(t, time.Now().Add(60*24*time.Hour), account.TokenExpiresAt, time.Minute)

	decrypted, err := utils.Decrypt(account.AccessToken, []byte(testSecretKey))
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", decrypted)
}

func TestRefreshFailureLeavesCredentialUntouched(t *testing.T) {
	expiresAt := time.Now().Add(-time.Hour)
	account := testAccount(t, "stale-token", expiresAt)
	storedToken := account.AccessToken

	graph := &fakeGraph{exchangeErr: errStub}
	repo := &fakeAccountRepo{account: account}

	m := NewTokenManager(config.Config{SecretKey: testSecretKey}, graph, repo)

	err := m.Refresh(context.Background(), account)
	require.Error(t, err)
	assert.Equal(t, storedToken, account.AccessToken)
	assert.Equal(t, expiresAt, account.TokenExpiresAt)
	assert.Zero(t, repo.tokenUpdates)
}

func TestRefreshPersistFailureLeavesAccountUntouched(t *testing.T) {
	expiresAt := time.Now().Add(-time.Hour)
	account := testAccount(t, "stale-token", expiresAt)
	storedToken := account.AccessToken

	graph := &fakeGraph{newToken: "fresh-token"}
	repo := &fakeAccountRepo{account: account, setTokenErr: errStub}

	m := NewTokenManager(config.Config{SecretKey: testSecretKey}, graph, repo)

	err := m.Refresh(context.Background(), account)
	require.Error(t, err)
	assert.Equal(t, storedToken, account.AccessToken)
	assert.Equal(t, expiresAt, account.TokenExpiresAt)
}
