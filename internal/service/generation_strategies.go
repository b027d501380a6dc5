package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	config "github.com/maheshrc27/autogram/configs"
	"github.com/maheshrc27/autogram/internal/models"
)

// AzureOpenAIStrategy generates content through an Azure OpenAI chat
// deployment. It is only available when the full endpoint/key/version
// triple is configured.
type AzureOpenAIStrategy struct {
	cfg  config.AzureOpenAI
	http *http.Client
}

func NewAzureOpenAIStrategy(cfg config.AzureOpenAI) *AzureOpenAIStrategy {
	return &AzureOpenAIStrategy{
		cfg:  cfg,
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *AzureOpenAIStrategy) Name() string { return "azure-openai" }

func (s *AzureOpenAIStrategy) Available() bool {
	return s.cfg.Endpoint != "" && s.cfg.APIKey != "" && s.cfg.APIVersion != ""
}

func (s *AzureOpenAIStrategy) Generate(ctx context.Context, prompt, contentType string) (string, error) {
	systemMessage := "You are a social media expert who creates relevant hashtags for Instagram posts."
	if contentType == models.ContentTypeCaption {
		systemMessage = "You are a social media expert who creates engaging Instagram captions."
	}

	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(s.cfg.Endpoint, "/"), s.cfg.Deployment, s.cfg.APIVersion)

	payload := map[string]interface{}{
		"messages": []map[string]string{
			{"role": "system", "content": systemMessage},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  maxTokensFor(contentType),
		"temperature": genTemperature,
		"top_p":       genTopP,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.cfg.APIKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status code from Azure OpenAI: %d (%s)", resp.StatusCode, respBody)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no choices returned from Azure OpenAI")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// LocalInferenceStrategy generates content through a locally hosted
// completion server (Ollama-compatible API).
type LocalInferenceStrategy struct {
	endpoint string
	model    string
	http     *http.Client
}

func NewLocalInferenceStrategy(endpoint, model string) *LocalInferenceStrategy {
	return &LocalInferenceStrategy{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		http:     &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *LocalInferenceStrategy) Name() string { return "local-inference" }

func (s *LocalInferenceStrategy) Available() bool { return s.endpoint != "" }

func (s *LocalInferenceStrategy) Generate(ctx context.Context, prompt, contentType string) (string, error) {
	payload := map[string]interface{}{
		"model":  s.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": genTemperature,
			"top_p":       genTopP,
			"top_k":       genTopK,
			"num_predict": maxTokensFor(contentType),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint+"/api/generate", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code from local model: %d", resp.StatusCode)
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}

	// Completion models echo the prompt back; strip it from the output.
	content := strings.TrimPrefix(result.Response, prompt)
	return strings.TrimSpace(content), nil
}
