// Package huggingface is a minimal client for the pieces of the Hugging Face
// Hub this service consumes: the OAuth token exchange, identity lookup, space
// creation and multi-file commits. Uploaded content is treated as opaque
// named blobs.
package huggingface

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"pagesmith-api/internal/shared"

	"go.uber.org/zap"
)

const OAuthScopes = "openid profile write-repos manage-repos"

type Client struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	HTTPClient   *http.Client
	Log          *zap.SugaredLogger
}

func NewClient(endpoint, clientID, clientSecret, redirectURI string, log *zap.SugaredLogger) *Client {
	tr := &http.Transport{
		Dial: (&net.Dialer{
			Timeout: 2 * time.Second,
		}).Dial,
		TLSHandshakeTimeout: 2 * time.Second,
		DisableKeepAlives:   false,
	}
	httpClient := http.Client{Transport: tr, Timeout: shared.DefaultHTTPTimeout}

	return &Client{
		Endpoint:     endpoint,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		HTTPClient:   &httpClient,
		Log:          log,
	}
}

// AuthorizeURL builds the login redirect target for the identity provider.
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.ClientID)
	q.Set("redirect_uri", c.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", OAuthScopes)
	q.Set("state", state)
	return fmt.Sprintf("%s/oauth/authorize?%s", c.Endpoint, q.Encode())
}

// ExchangeCode trades an authorization code for an access token. The token is
// treated as an opaque bearer credential from here on.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)
	form.Set("redirect_uri", c.RedirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint+"/oauth/token", bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", errors.Join(errors.New("failed to create token exchange request"), err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", errors.Join(errors.New("failed to parse token response"), err)
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}
	return tokenResp.AccessToken, nil
}

type Profile struct {
	Name      string `json:"name"`
	Fullname  string `json:"fullname"`
	AvatarURL string `json:"avatarUrl"`
	IsPro     bool   `json:"isPro"`
}

// WhoAmI resolves the bearer token to the account that owns it.
func (c *Client) WhoAmI(ctx context.Context, token string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.Endpoint+"/api/whoami-v2", nil)
	if err != nil {
		return nil, errors.Join(errors.New("failed to create whoami request"), err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	body, err := c.do(req)
	if err != nil {
		return nil, errors.Join(shared.ErrUnauthorized, err)
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, errors.Join(errors.New("failed to parse whoami response"), err)
	}
	return &profile, nil
}

// CreateSpace creates a new static space under the token's namespace. The
// platform rejects names that are already taken.
func (c *Client) CreateSpace(ctx context.Context, token, name string) error {
	payload, err := json.Marshal(map[string]any{
		"name":    name,
		"type":    "space",
		"sdk":     "static",
		"private": false,
	})
	if err != nil {
		return errors.Join(errors.New("failed to marshal create request"), err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint+"/api/repos/create", bytes.NewBuffer(payload))
	if err != nil {
		return errors.Join(errors.New("failed to create space request"), err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	req.Header.Set("Content-Type", "application/json")

	if _, err := c.do(req); err != nil {
		return err
	}
	return nil
}

type File struct {
	Path    string
	Content []byte
}

// UploadFiles commits files to a space in a single revision. The commit body
// is NDJSON: one header line followed by one base64 file line per artifact.
func (c *Client) UploadFiles(ctx context.Context, token, repoID, summary string, files []File) error {
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	if err := enc.Encode(map[string]any{
		"key": "header",
		"value": map[string]string{
			"summary":     summary,
			"description": "",
		},
	}); err != nil {
		return errors.Join(errors.New("failed to encode commit header"), err)
	}
	for _, f := range files {
		if err := enc.Encode(map[string]any{
			"key": "file",
			"value": map[string]string{
				"path":     f.Path,
				"content":  base64.StdEncoding.EncodeToString(f.Content),
				"encoding": "base64",
			},
		}); err != nil {
			return errors.Join(fmt.Errorf("failed to encode commit file %s", f.Path), err)
		}
	}

	commitURL := fmt.Sprintf("%s/api/spaces/%s/commit/main", c.Endpoint, repoID)
	req, err := http.NewRequestWithContext(ctx, "POST", commitURL, &body)
	if err != nil {
		return errors.Join(errors.New("failed to create commit request"), err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	req.Header.Set("Content-Type", "application/x-ndjson")

	if _, err := c.do(req); err != nil {
		return err
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Join(errors.New("failed to send http request"), err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			c.Log.Warnw("Failed to close response body", "error", closeErr)
		}
	}()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Join(errors.New("failed to read response body"), err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("hub returned error: [%d: %s]", res.StatusCode, string(resBody))
	}
	return resBody, nil
}
