package config

import (
	"os"
	"strconv"
)

type R2 struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

type AzureOpenAI struct {
	Endpoint   string
	APIKey     string
	APIVersion string
	Deployment string
}

type Config struct {
	PostgresURI        string
	RedisURI           string
	GraphAPIBaseURL    string
	FacebookAppID      string
	FacebookAppSecret  string
	AzureOpenAI        AzureOpenAI
	LocalInferenceURI  string
	GenerationModel    string
	ContentDir         string
	FontPath           string
	PostFrequencyHours int
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	AdminEmail         string
	FrontendURL        string
	R2                 R2
	SecretKey          string
	CookieName         string
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:       getEnv("POSTGRES_URI", ""),
		RedisURI:          getEnv("REDIS_URI", ""),
		GraphAPIBaseURL:   getEnv("INSTAGRAM_GRAPH_API_URL", "https://graph.facebook.com/v15.0"),
		FacebookAppID:     getEnv("FACEBOOK_APP_ID", ""),
		FacebookAppSecret: getEnv("FACEBOOK_APP_SECRET", ""),
		AzureOpenAI: AzureOpenAI{
			Endpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
			APIKey:     getEnv("AZURE_OPENAI_API_KEY", ""),
			APIVersion: getEnv("AZURE_OPENAI_API_VERSION", ""),
			Deployment: getEnv("AZURE_OPENAI_DEPLOYMENT", "gpt-4"),
		},
		LocalInferenceURI:  getEnv("LOCAL_INFERENCE_URI", ""),
		GenerationModel:    getEnv("CONTENT_GENERATION_MODEL", "gpt-neo-125M"),
		ContentDir:         getEnv("CONTENT_DIR", "content"),
		FontPath:           getEnv("FONT_PATH", ""),
		PostFrequencyHours: getEnvInt("POST_FREQUENCY", 24),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/login/callback"),
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			BucketName:    getEnv("R2_BUCKET_NAME", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "autogram_session"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
