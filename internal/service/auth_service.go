package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	config "github.com/maheshrc27/autogram/configs"
	"github.com/maheshrc27/autogram/internal/transfer"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthService interface {
	LoginCallback(ctx context.Context, code string) (string, error)
}

type authService struct {
	cfg config.Config
}

func NewAuthService(cfg config.Config) AuthService {
	return &authService{cfg: cfg}
}

// LoginCallback exchanges the Google OAuth code and returns the verified
// admin email. This is a single-tenant service: only the configured admin
// email may log in.
func (s *authService) LoginCallback(ctx context.Context, code string) (string, error) {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return "", err
	}

	oauth2Config := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	if oauth2Config.ClientID == "" || oauth2Config.ClientSecret == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return "", err
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	client := oauth2Config.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	defer resp.Body.Close()

	var userInfo transfer.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	if s.cfg.AdminEmail != "" && userInfo.Email != s.cfg.AdminEmail {
		err = errors.New("email is not allowed to log in")
		slog.Info(err.Error())
		return "", err
	}

	return userInfo.Email, nil
}
