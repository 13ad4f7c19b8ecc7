// Package gateway talks to the image understanding model.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/utils"
)

type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	RPS     int
}

type GenAIGateway struct {
	client  *genai.Client
	model   string
	limiter ratelimit.Limiter
	logger  *zap.Logger
}

func NewGenAIGateway(ctx context.Context, opts Options, logger *zap.Logger) (*GenAIGateway, error) {
	if opts.APIKey == "" {
		return nil, apperrors.ErrMissingAPIKey
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
	}
	if opts.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimSuffix(opts.BaseURL, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, apperrors.NewValueError("unable to create genai client", utils.Caller(), err)
	}

	limiter := ratelimit.NewUnlimited()
	if opts.RPS > 0 {
		limiter = ratelimit.New(opts.RPS)
	}

	return &GenAIGateway{
		client:  client,
		model:   opts.Model,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Analyze sends the image and the prompt in one request and returns the model
// text. Every failure is reported as apperrors.ErrGateway, nothing is retried.
func (g *GenAIGateway) Analyze(ctx context.Context, image []byte, prompt string) (string, error) {
	if len(image) == 0 {
		return "", apperrors.ErrEmptyImage
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(image, http.DetectContentType(image)),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	g.limiter.Take()
	started := time.Now()

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		g.logger.Error("Inference call failed", zap.String("model", g.model), zap.Error(err))
		return "", apperrors.NewValueError("generate content failed", utils.Caller(), fmt.Errorf("%w: %w", apperrors.ErrGateway, err))
	}

	text := strings.TrimSpace(response.Text())
	if text == "" {
		g.logger.Error("Inference returned no text", zap.String("model", g.model))
		return "", apperrors.NewValueError("empty response", utils.Caller(), apperrors.ErrGateway)
	}

	g.logger.Info("Inference completed",
		zap.String("model", g.model),
		zap.Duration("elapsed", time.Since(started)),
	)

	return text, nil
}
