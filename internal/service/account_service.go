package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	config "github.com/maheshrc27/autogram/configs"
	"github.com/maheshrc27/autogram/internal/models"
	"github.com/maheshrc27/autogram/internal/repository"
	"github.com/maheshrc27/autogram/internal/transfer"
	"github.com/maheshrc27/autogram/pkg/utils"
)

type AccountService interface {
	Create(ctx context.Context, ac *transfer.AccountCreation) (int64, error)
	List(ctx context.Context) ([]*models.InstagramAccount, error)
	Refresh(ctx context.Context, accountID int64) error
	Remove(ctx context.Context, accountID int64) error
}

type accountService struct {
	cfg    config.Config
	ar     repository.AccountRepository
	tokens *TokenManager
}

func NewAccountService(cfg config.Config, ar repository.AccountRepository, tokens *TokenManager) AccountService {
	return &accountService{
		cfg:    cfg,
		ar:     ar,
		tokens: tokens,
	}
}

// Create stores a new account credential. The access token is encrypted at
// rest.
func (s *accountService) Create(ctx context.Context, ac *transfer.AccountCreation) (int64, error) {
	if ac == nil || ac.AccountName == "" || ac.InstagramUserID == "" || ac.AccessToken == "" {
		err := errors.New("account name, instagram user id and access token are required")
		slog.Info(err.Error())
		return 0, err
	}

	encryptedToken, err := utils.Encrypt([]byte(ac.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return 0, fmt.Errorf("error encrypting access token: %w", err)
	}

	account := models.InstagramAccount{
		AccountName:     ac.AccountName,
		InstagramUserID: ac.InstagramUserID,
		AccessToken:     encryptedToken,
		Active:          true,
	}
	if ac.ExpiresInDays > 0 {
		account.TokenExpiresAt = time.Now().Add(time.Duration(ac.ExpiresInDays) * 24 * time.Hour)
	}

	id, err := s.ar.Create(ctx, &account)
	if err != nil {
		return 0, fmt.Errorf("error creating account: %w", err)
	}
	return id, nil
}

func (s *accountService) List(ctx context.Context) ([]*models.InstagramAccount, error) {
	accounts, err := s.ar.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts")
	}
	return accounts, nil
}

func (s *accountService) Refresh(ctx context.Context, accountID int64) error {
	account, err := s.ar.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		err = errors.New("account doesn't exist")
		slog.Info(err.Error())
		return err
	}
	return s.tokens.Refresh(ctx, account)
}

func (s *accountService) Remove(ctx context.Context, accountID int64) error {
	if accountID == 0 {
		err := errors.New("account id is not valid")
		slog.Info(err.Error())
		return err
	}
	if err := s.ar.Remove(ctx, accountID); err != nil {
		return fmt.Errorf("error removing account")
	}
	return nil
}
