package routers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pagesmith-api/internal/ctx"
	"pagesmith-api/internal/handlers/generate"
	"pagesmith-api/internal/handlers/publish"
	"pagesmith-api/internal/huggingface"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouteContext(t *testing.T, method, path, body, token string) (*ctx.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return &ctx.Context{
		Context:   c,
		Log:       zap.NewNop().Sugar(),
		Token:     token,
		LogValues: &ctx.ContextLogValues{},
	}, rec
}

// untouchableHub fails the test if any platform call is attempted.
func untouchableHub(t *testing.T) (*huggingface.Client, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected platform call: %s %s", r.Method, r.URL.Path)
	}))
	return huggingface.NewClient(srv.URL, "id", "secret", "uri", zap.NewNop().Sugar()), srv.Close
}

func TestAskAIMissingPrompt(t *testing.T) {
	t.Parallel()

	gr := GenerateRouter{gh: generate.NewHandler(generate.Config{
		BaseURL: "http://127.0.0.1:1/v1",
		Model:   "test-model",
	}, zap.NewNop().Sugar())}

	c, rec := newRouteContext(t, http.MethodPost, "/api/ask-ai", `{"html":"<html></html>"}`, "")
	require.NoError(t, gr.AskAI(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "prompt is required")
}

func TestAskAIMalformedBody(t *testing.T) {
	t.Parallel()

	gr := GenerateRouter{gh: generate.NewHandler(generate.Config{
		BaseURL: "http://127.0.0.1:1/v1",
		Model:   "test-model",
	}, zap.NewNop().Sugar())}

	c, rec := newRouteContext(t, http.MethodPost, "/api/ask-ai", `{not json`, "")
	require.NoError(t, gr.AskAI(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskAIEmptyCredentialPool(t *testing.T) {
	t.Parallel()

	// No keys configured: the request must fail as a structured error
	// before any streaming begins
	gr := GenerateRouter{gh: generate.NewHandler(generate.Config{
		BaseURL: "http://127.0.0.1:1/v1",
		Model:   "test-model",
	}, zap.NewNop().Sugar())}

	c, rec := newRouteContext(t, http.MethodPost, "/api/ask-ai", `{"prompt":"make a page"}`, "")
	require.NoError(t, gr.AskAI(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no inference credential")
}

func TestDeployMissingHTML(t *testing.T) {
	t.Parallel()

	hub, done := untouchableHub(t)
	defer done()
	pr := PublishRouter{ph: publish.NewHandler(hub, zap.NewNop().Sugar())}

	c, rec := newRouteContext(t, http.MethodPost, "/api/deploy", `{"title":"My App"}`, "tok")
	require.NoError(t, pr.Deploy(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "html is required")
}

func TestDeployMissingTitleOnCreate(t *testing.T) {
	t.Parallel()

	hub, done := untouchableHub(t)
	defer done()
	pr := PublishRouter{ph: publish.NewHandler(hub, zap.NewNop().Sugar())}

	c, rec := newRouteContext(t, http.MethodPost, "/api/deploy", `{"html":"<html></html>"}`, "tok")
	require.NoError(t, pr.Deploy(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title is required")
}

func TestDeployOverwriteReturnsSuppliedPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/spaces/alice/my-app/commit/main", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	hub := huggingface.NewClient(srv.URL, "id", "secret", "uri", zap.NewNop().Sugar())
	pr := PublishRouter{ph: publish.NewHandler(hub, zap.NewNop().Sugar())}

	c, rec := newRouteContext(t, http.MethodPost, "/api/deploy", `{"html":"<html></html>","path":"alice/my-app"}`, "tok")
	require.NoError(t, pr.Deploy(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path":"alice/my-app"`)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestCallbackMissingCode(t *testing.T) {
	t.Parallel()

	hub, done := untouchableHub(t)
	defer done()
	ar := AuthRouter{hub: hub}

	c, rec := newRouteContext(t, http.MethodGet, "/api/auth/callback", "", "")
	require.NoError(t, ar.Callback(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
