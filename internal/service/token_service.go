package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	config "github.com/maheshrc27/autogram/configs"
	"github.com/maheshrc27/autogram/internal/models"
	"github.com/maheshrc27/autogram/internal/platform"
	"github.com/maheshrc27/autogram/internal/repository"
	"github.com/maheshrc27/autogram/pkg/utils"
)

// Long-lived Graph tokens are valid for 60 days after an exchange.
const tokenLifetime = 60 * 24 * time.Hour

// TokenManager guards the single shared credential. Validity check, refresh
// and use run under one mutex so a manual publish cannot race the scheduled
// cycle on the same token.
type TokenManager struct {
	mu       sync.Mutex
	cfg      config.Config
	graph    platform.Client
	accounts repository.AccountRepository
}

func NewTokenManager(cfg config.Config, graph platform.Client, accounts repository.AccountRepository) *TokenManager {
	return &TokenManager{
		cfg:      cfg,
		graph:    graph,
		accounts: accounts,
	}
}

func (m *TokenManager) IsValid(account *models.InstagramAccount) bool {
	return account.IsTokenValid()
}

// Ensure returns a usable plaintext access token for the account, refreshing
// it first when expired. The account's stored token is updated in place on a
// successful refresh.
func (m *TokenManager) Ensure(ctx context.Context, account *models.InstagramAccount) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !account.IsTokenValid() {
		if err := m.refreshLocked(ctx, account); err != nil {
			return "", err
		}
	}

	return utils.Decrypt(account.AccessToken, []byte(m.cfg.SecretKey))
}

// Refresh exchanges the account's token for a fresh long-lived one. A single
// attempt, no backoff; on failure the stored credential is left untouched.
func (m *TokenManager) Refresh(ctx context.Context, account *models.InstagramAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshLocked(ctx, account)
}

func (m *TokenManager) refreshLocked(ctx context.Context, account *models.InstagramAccount) error {
	currentToken, err := utils.Decrypt(account.AccessToken, []byte(m.cfg.SecretKey))
	if err != nil {
		return fmt.Errorf("error decrypting access token: %w", err)
	}

	newToken, err := m.graph.ExchangeToken(ctx, m.cfg.FacebookAppID, m.cfg.FacebookAppSecret, currentToken)
	if err != nil {
		slog.Info("token exchange failed", "account_id", account.ID, "error", err.Error())
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	encryptedToken, err := utils.Encrypt([]byte(newToken), []byte(m.cfg.SecretKey))
	if err != nil {
		return fmt.Errorf("error encrypting access token: %w", err)
	}

	expiresAt := time.Now().Add(tokenLifetime)
	if err := m.accounts.SetToken(ctx, account.ID, encryptedToken, expiresAt); err != nil {
		return fmt.Errorf("error persisting refreshed token: %w", err)
	}

	account.AccessToken = encryptedToken
	account.TokenExpiresAt = expiresAt
	return nil
}
