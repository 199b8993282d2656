// Package generate drives single-document HTML generations against an
// OpenAI-compatible inference gateway, with credential failover and
// early stream termination.
package generate

import (
	"context"
	"errors"
	"strings"
	"time"

	"pagesmith-api/internal/metrics"
	"pagesmith-api/internal/shared"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

type Config struct {
	BaseURL string
	Model   string
	Keys    []string
}

type Handler struct {
	Pool  []string
	Model string
	Log   *zap.SugaredLogger

	newClient func(apiKey string) BoundClient
	probe     ProbeFunc
}

func NewHandler(cfg Config, log *zap.SugaredLogger) *Handler {
	h := &Handler{
		Pool:  PoolFromKeys(cfg.Keys...),
		Model: cfg.Model,
		Log:   log,
	}
	h.newClient = func(apiKey string) BoundClient {
		return BoundClient{
			Credential: apiKey,
			Client: openai.NewClient(
				option.WithAPIKey(apiKey),
				option.WithBaseURL(cfg.BaseURL),
				option.WithRequestTimeout(shared.DefaultHTTPTimeout),
			),
		}
	}
	h.probe = listModelsProbe
	return h
}

type GenerationRequest struct {
	Prompt         string `json:"prompt"`
	HTML           string `json:"html,omitempty"`
	PreviousPrompt string `json:"previousPrompt,omitempty"`
}

// Generate streams one document generation through emit, fragment by
// fragment. The returned bool reports whether any output reached the caller:
// when it is false the error can still be delivered as a structured response,
// afterwards the stream can only be closed.
func (h *Handler) Generate(ctx context.Context, req GenerationRequest, emit func(string) error) (bool, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return false, shared.ErrMissingPrompt
	}

	bound, err := h.FirstLive(ctx)
	if err != nil {
		metrics.GenerationCount.WithLabelValues(h.Model, "no_credential").Inc()
		return false, err
	}

	start := time.Now()
	var ttffRecorded bool
	timed := func(fragment string) error {
		if !ttffRecorded {
			ttffRecorded = true
			metrics.TimeToFirstFragment.WithLabelValues(h.Model).Observe(time.Since(start).Seconds())
		}
		return emit(fragment)
	}

	stream := bound.Client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    h.Model,
		Messages: BuildMessages(req),
	})

	sent, err := Relay(&chunkStream{stream: stream}, timed)
	metrics.GenerationDuration.WithLabelValues(h.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationCount.WithLabelValues(h.Model, "error").Inc()
		if !sent {
			// Heuristic: pre-first-byte failures are most often a
			// context-length condition
			return false, errors.Join(shared.ErrUpstreamGeneration, err)
		}
		return true, err
	}

	metrics.GenerationCount.WithLabelValues(h.Model, "success").Inc()
	return sent, nil
}
