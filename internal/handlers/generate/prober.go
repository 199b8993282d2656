package generate

import (
	"context"
	"fmt"

	"pagesmith-api/internal/metrics"
	"pagesmith-api/internal/shared"

	"github.com/openai/openai-go/v3"
)

// BoundClient is a gateway client bound to exactly one credential.
type BoundClient struct {
	Credential string
	Client     openai.Client
}

// ProbeFunc is a cheap liveness call used to test whether a credential is
// currently usable before committing it to real work.
type ProbeFunc func(ctx context.Context, bound BoundClient) error

func listModelsProbe(ctx context.Context, bound BoundClient) error {
	pctx, cancel := context.WithTimeout(ctx, shared.DefaultProbeTimeout)
	defer cancel()
	_, err := bound.Client.Models.List(pctx)
	return err
}

// FirstLive returns a client bound to the first credential in the pool that
// passes the liveness probe. Credentials are probed one at a time in priority
// order, probing stops at the first success so later credentials spend no
// quota. Failed probes are not cached across requests.
func (h *Handler) FirstLive(ctx context.Context) (BoundClient, error) {
	for i, key := range h.Pool {
		bound := h.newClient(key)
		if err := h.probe(ctx, bound); err != nil {
			h.Log.Warnw("Credential failed liveness probe", "attempt", i, "error", err)
			metrics.CredentialProbeFailures.WithLabelValues(fmt.Sprintf("%d", i)).Inc()
			continue
		}
		return bound, nil
	}
	return BoundClient{}, shared.ErrNoAvailableCredential
}
