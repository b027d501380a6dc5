package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/autogram/internal/repository"
	"github.com/maheshrc27/autogram/internal/service"
)

// Refresh tokens a little before they expire rather than at publish time.
const refreshLookahead = 30 * time.Minute

type TokenRefreshJob struct {
	accounts repository.AccountRepository
	tokens   *service.TokenManager
}

func NewTokenRefreshJob(accounts repository.AccountRepository, tokens *service.TokenManager) *TokenRefreshJob {
	return &TokenRefreshJob{
		accounts: accounts,
		tokens:   tokens,
	}
}

func (j *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	accounts, err := j.accounts.ListExpiring(ctx, time.Now().Add(refreshLookahead))
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, account := range accounts {
		if err := j.tokens.Refresh(ctx, account); err != nil {
			slog.Info("unable to refresh token", "account_id", account.ID, "error", err.Error())
		}
	}
}
