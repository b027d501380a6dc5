package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMedia(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(map[string]string{"id": "creation-123"})
	}))
	defer srv.Close()

	c := NewGraphClient(srv.URL)
	id, err := c.CreateMedia(context.Background(), "ig-user", "https://cdn/img.jpg", "caption", "token")
	require.NoError(t, err)
	assert.Equal(t, "creation-123", id)
	assert.Equal(t, "/ig-user/media", gotPath)
	assert.Equal(t, "https://cdn/img.jpg", gotPayload["image_url"])
	assert.Equal(t, "caption", gotPayload["caption"])
	assert.Equal(t, "token", gotPayload["access_token"])
}

func TestCreateMediaErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid image URL"}}`))
	}))
	defer srv.Close()

	c := NewGraphClient(srv.URL)
	_, err := c.CreateMedia(context.Background(), "ig-user", "bad", "caption", "token")
	require.Error(t, err)
	assert.Equal(t, "Invalid image URL", err.Error())
}

func TestCreateMediaUnknownError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewGraphClient(srv.URL)
	_, err := c.CreateMedia(context.Background(), "ig-user", "url", "caption", "token")
	require.Error(t, err)
	assert.Equal(t, "Unknown error", err.Error())
}

func TestContainerStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/creation-123", r.URL.Path)
		assert.Equal(t, "status_code", r.URL.Query().Get("fields"))
		assert.Equal(t, "token", r.URL.Query().Get("access_token"))
		json.NewEncoder(w).Encode(map[string]string{"status_code": ContainerStatusFinished})
	}))
	defer srv.Close()

	c := NewGraphClient(srv.URL)
	status, err := c.ContainerStatus(context.Background(), "creation-123", "token")
	require.NoError(t, err)
	assert.Equal(t, ContainerStatusFinished, status)
}

func TestPublishMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ig-user/media_publish", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "creation-123", payload["creation_id"])

		json.NewEncoder(w).Encode(map[string]string{"id": "ig-media-456"})
	}))
	defer srv.Close()

	c := NewGraphClient(srv.URL)
	id, err := c.PublishMedia(context.Background(), "ig-user", "creation-123", "token")
	require.NoError(t, err)
	assert.Equal(t, "ig-media-456", id)
}

func TestExchangeToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/access_token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "fb_exchange_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "app-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "app-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "old-token", r.PostForm.Get("fb_exchange_token"))

		json.NewEncoder(w).Encode(map[string]string{"access_token": "new-token"})
	}))
	defer srv.Close()

	c := NewGraphClient(srv.URL)
	token, err := c.ExchangeToken(context.Background(), "app-id", "app-secret", "old-token")
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
}

func TestExchangeTokenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Session has expired"}}`))
	}))
	defer srv.Close()

	c := NewGraphClient(srv.URL)
	_, err := c.ExchangeToken(context.Background(), "app-id", "app-secret", "old-token")
	require.Error(t, err)
	assert.Equal(t, "Session has expired", err.Error())
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ig-user/media", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"id": "x"})
	}))
	defer srv.Close()

	c := NewGraphClient(srv.URL + "/")
	_, err := c.CreateMedia(context.Background(), "ig-user", "url", "caption", "token")
	require.NoError(t, err)
}
