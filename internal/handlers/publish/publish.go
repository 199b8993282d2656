// Package publish turns a generated HTML document into a versioned static
// site on the hosting platform, either creating a new space or overwriting an
// existing one.
package publish

import (
	"context"
	"errors"
	"fmt"

	"pagesmith-api/internal/huggingface"
	"pagesmith-api/internal/metrics"
	"pagesmith-api/internal/shared"

	"go.uber.org/zap"
)

type hubAPI interface {
	WhoAmI(ctx context.Context, token string) (*huggingface.Profile, error)
	CreateSpace(ctx context.Context, token, name string) error
	UploadFiles(ctx context.Context, token, repoID, summary string, files []huggingface.File) error
}

// Target is the hosting location that receives the artifact. The two variants
// carry different side effects: creation injects the attribution footer and
// uploads a descriptor, overwriting does neither.
type Target interface {
	target()
}

// Create publishes to a brand new space named after the title.
type Create struct {
	Title string
}

// Overwrite replaces the entry document of an existing space.
type Overwrite struct {
	RepoID string
}

func (Create) target()    {}
func (Overwrite) target() {}

type Handler struct {
	Hub hubAPI
	Log *zap.SugaredLogger
}

func NewHandler(hub hubAPI, log *zap.SugaredLogger) *Handler {
	return &Handler{Hub: hub, Log: log}
}

// Publish uploads the document and returns the repo id the editor should
// remember for subsequent overwrites. This is the only operation in the
// service with durable, externally visible effects.
func (h *Handler) Publish(ctx context.Context, token, html string, target Target) (string, error) {
	if html == "" {
		return "", shared.ErrMissingHTML
	}

	switch t := target.(type) {
	case Create:
		if t.Title == "" {
			return "", shared.ErrMissingTitle
		}
		repoID, err := h.create(ctx, token, html, t.Title)
		if err != nil {
			metrics.PublishCount.WithLabelValues("create", "error").Inc()
			return "", err
		}
		metrics.PublishCount.WithLabelValues("create", "success").Inc()
		return repoID, nil
	case Overwrite:
		if err := h.overwrite(ctx, token, html, t.RepoID); err != nil {
			metrics.PublishCount.WithLabelValues("overwrite", "error").Inc()
			return "", err
		}
		metrics.PublishCount.WithLabelValues("overwrite", "success").Inc()
		return t.RepoID, nil
	default:
		return "", errors.Join(shared.ErrInvalidRequest, fmt.Errorf("unknown publish target %T", target))
	}
}

func (h *Handler) create(ctx context.Context, token, html, title string) (string, error) {
	profile, err := h.Hub.WhoAmI(ctx, token)
	if err != nil {
		return "", errors.Join(shared.ErrUnauthorized, err)
	}

	slug := Slugify(title)
	repoID := fmt.Sprintf("%s/%s", profile.Name, slug)

	if err := h.Hub.CreateSpace(ctx, token, slug); err != nil {
		return "", errors.Join(shared.NewPublishError(err.Error()), err)
	}

	files := []huggingface.File{
		{Path: "index.html", Content: []byte(InjectAttribution(html))},
		{Path: "README.md", Content: []byte(Descriptor(title))},
	}
	if err := h.Hub.UploadFiles(ctx, token, repoID, "Publish "+slug, files); err != nil {
		return "", errors.Join(shared.NewPublishError(err.Error()), err)
	}

	h.Log.Infow("Created space", "repo_id", repoID)
	return repoID, nil
}

func (h *Handler) overwrite(ctx context.Context, token, html, repoID string) error {
	// An existing space already carries its footer, or the caller wants a
	// clean overwrite. Content goes up untouched.
	files := []huggingface.File{
		{Path: "index.html", Content: []byte(html)},
	}
	if err := h.Hub.UploadFiles(ctx, token, repoID, "Update "+repoID, files); err != nil {
		return errors.Join(shared.NewPublishError(err.Error()), err)
	}

	h.Log.Infow("Updated space", "repo_id", repoID)
	return nil
}
