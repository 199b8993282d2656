package huggingface

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(endpoint string) *Client {
	return NewClient(endpoint, "client-id", "client-secret", "https://editor.example/auth/callback", zap.NewNop().Sugar())
}

func TestAuthorizeURL(t *testing.T) {
	t.Parallel()

	c := newTestClient("https://hub.example")
	raw := c.AuthorizeURL("state-123")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/oauth/authorize", u.Path)
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
	assert.Equal(t, "code", u.Query().Get("response_type"))
	assert.Equal(t, "state-123", u.Query().Get("state"))
	assert.Equal(t, OAuthScopes, u.Query().Get("scope"))
}

func TestExchangeCode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "hf_token_abc"})
	}))
	defer srv.Close()

	token, err := newTestClient(srv.URL).ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "hf_token_abc", token)
}

func TestExchangeCodeRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ExchangeCode(context.Background(), "bad-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestWhoAmI(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/whoami-v2", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "alice", "fullname": "Alice", "isPro": true})
	}))
	defer srv.Close()

	profile, err := newTestClient(srv.URL).WhoAmI(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Name)
	assert.True(t, profile.IsPro)
}

func TestCreateSpace(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/repos/create", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "my-cool-app", payload["name"])
		assert.Equal(t, "space", payload["type"])
		assert.Equal(t, "static", payload["sdk"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).CreateSpace(context.Background(), "tok", "my-cool-app")
	require.NoError(t, err)
}

func TestUploadFilesCommitShape(t *testing.T) {
	t.Parallel()

	var lines []map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/spaces/alice/my-cool-app/commit/main", r.URL.Path)
		assert.Equal(t, "application/x-ndjson", r.Header.Get("Content-Type"))

		scanner := bufio.NewScanner(io.LimitReader(r.Body, 1<<20))
		for scanner.Scan() {
			var line map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
			lines = append(lines, line)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	files := []File{
		{Path: "index.html", Content: []byte("<html></html>")},
		{Path: "README.md", Content: []byte("---\nsdk: static\n---\n")},
	}
	err := newTestClient(srv.URL).UploadFiles(context.Background(), "tok", "alice/my-cool-app", "Publish my-cool-app", files)
	require.NoError(t, err)

	require.Len(t, lines, 3)

	var headerKey string
	require.NoError(t, json.Unmarshal(lines[0]["key"], &headerKey))
	assert.Equal(t, "header", headerKey)

	var file struct {
		Path     string `json:"path"`
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	require.NoError(t, json.Unmarshal(lines[1]["value"], &file))
	assert.Equal(t, "index.html", file.Path)
	assert.Equal(t, "base64", file.Encoding)
	decoded, err := base64.StdEncoding.DecodeString(file.Content)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(decoded))
}

func TestUploadFilesPlatformRejection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "commit rejected", http.StatusForbidden)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).UploadFiles(context.Background(), "tok", "alice/app", "Update", []File{{Path: "index.html"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit rejected")
}
