package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/maheshrc27/autogram/internal/models"
)

type AccountRepository interface {
	Create(ctx context.Context, a *models.InstagramAccount) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.InstagramAccount, error)
	GetActive(ctx context.Context) (*models.InstagramAccount, error)
	List(ctx context.Context) ([]*models.InstagramAccount, error)
	ListExpiring(ctx context.Context, before time.Time) ([]*models.InstagramAccount, error)
	SetToken(ctx context.Context, id int64, accessToken string, expiresAt time.Time) error
	Remove(ctx context.Context, id int64) error
}

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *models.InstagramAccount) (int64, error) {
	query := `
		INSERT INTO instagram_accounts (account_name, instagram_user_id, access_token, token_expires_at, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	var expiresAt any
	if !a.TokenExpiresAt.IsZero() {
		expiresAt = a.TokenExpiresAt
	}
	err := r.db.QueryRowContext(ctx, query, a.AccountName, a.InstagramUserID, a.AccessToken, expiresAt, a.Active).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*models.InstagramAccount, error) {
	query := `SELECT id, account_name, instagram_user_id, access_token, token_expires_at, active, created_at, updated_at FROM instagram_accounts WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetActive returns the first active account, or nil when none exists.
// Multi-account rotation is not supported.
func (r *accountRepository) GetActive(ctx context.Context) (*models.InstagramAccount, error) {
	query := `SELECT id, account_name, instagram_user_id, access_token, token_expires_at, active, created_at, updated_at FROM instagram_accounts WHERE active = TRUE ORDER BY id LIMIT 1`
	return r.getOne(ctx, query)
}

func (r *accountRepository) getOne(ctx context.Context, query string, args ...any) (*models.InstagramAccount, error) {
	row := r.db.QueryRowContext(ctx, query, args...)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return a, nil
}

func scanAccount(row rowScanner) (*models.InstagramAccount, error) {
	var a models.InstagramAccount
	var expiresAt sql.NullTime

	err := row.Scan(&a.ID, &a.AccountName, &a.InstagramUserID, &a.AccessToken,
		&expiresAt, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		a.TokenExpiresAt = expiresAt.Time
	}
	return &a, nil
}

func (r *accountRepository) List(ctx context.Context) ([]*models.InstagramAccount, error) {
	query := `SELECT id, account_name, instagram_user_id, access_token, token_expires_at, active, created_at, updated_at FROM instagram_accounts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.InstagramAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// ListExpiring returns active accounts whose token expiry is unset or falls
// before the given instant.
func (r *accountRepository) ListExpiring(ctx context.Context, before time.Time) ([]*models.InstagramAccount, error) {
	query := `
		SELECT id, account_name, instagram_user_id, access_token, token_expires_at, active, created_at, updated_at
		FROM instagram_accounts
		WHERE active = TRUE AND (token_expires_at IS NULL OR token_expires_at < $1)
	`
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.InstagramAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) SetToken(ctx context.Context, id int64, accessToken string, expiresAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE instagram_accounts
		SET access_token = $1,
			token_expires_at = $2,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	result, err := tx.ExecContext(ctx, query, accessToken, expiresAt, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if affected != 1 {
		slog.Info("no rows affected; account may not exist")
		return errors.New("no rows affected; account may not exist")
	}

	if err = tx.Commit(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *accountRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM instagram_accounts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
