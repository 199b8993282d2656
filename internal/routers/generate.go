package routers

import (
	"encoding/json"
	"errors"
	"io"

	"pagesmith-api/internal/ctx"
	"pagesmith-api/internal/handlers/generate"
	"pagesmith-api/internal/middleware"
	"pagesmith-api/internal/shared"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type GenerateRouter struct {
	gh *generate.Handler
}

func RegisterGenerateRoutes(e *echo.Group, cfg generate.Config, limiter *middleware.RateLimiter, log *zap.SugaredLogger) error {
	gmw, err := middleware.GetSessionMiddleware()
	if err != nil {
		return err
	}

	generateRouter := GenerateRouter{gh: generate.NewHandler(cfg, log)}

	api := e.Group("/api", gmw.ExtractSession)
	api.POST("/ask-ai", generateRouter.AskAI, limiter.LimitAnonymous)
	return nil
}

// AskAI relays one generation as an incrementally flushed plain-text stream.
// Errors are structured JSON only while nothing has been written; once output
// has started the stream is simply closed and the caller must treat an abrupt
// end as possibly incomplete.
func (gr *GenerateRouter) AskAI(cc echo.Context) error {
	c := cc.(*ctx.Context)

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		c.LogValues.AddError(err)
		return errorJSON(c, shared.ErrInvalidRequest.StatusCode, shared.ErrInvalidRequest.Err.Error())
	}

	var req generate.GenerationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.LogValues.AddError(err)
		return errorJSON(c, shared.ErrInvalidRequest.StatusCode, shared.ErrInvalidRequest.Err.Error())
	}
	if req.Prompt == "" {
		return errorJSON(c, shared.ErrMissingPrompt.StatusCode, shared.ErrMissingPrompt.Err.Error())
	}

	streamStarted := false
	emit := createStreamCallback(c)
	sent, genErr := gr.gh.Generate(c.Request().Context(), req, func(fragment string) error {
		if !streamStarted {
			setupStreamHeaders(c)
			streamStarted = true
		}
		return emit(fragment)
	})

	if genErr != nil {
		c.LogValues.AddError(genErr)
		c.LogValues.LogLevel = "ERROR"
		if sent {
			// Partial content is already on the wire, close cleanly
			return nil
		}
		var rerr *shared.RequestError
		if errors.As(genErr, &rerr) {
			return errorJSON(c, rerr.StatusCode, rerr.Err.Error())
		}
		return errorJSON(c, shared.ErrInternalServerError.StatusCode, shared.ErrInternalServerError.Err.Error())
	}
	return nil
}
