package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/utils"
)

const (
	KindCalories = "calories"
	KindCost     = "cost"
)

// Analyzer mockgen --build_flags=--mod=mod -destination=internal/mocks/mock_analyzer.go -package=mock github.com/msmkdenis/yap-foodorder/internal/analysis/service Analyzer
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, prompt string) (string, error)
}

// Cache mockgen --build_flags=--mod=mod -destination=internal/mocks/mock_estimate_cache.go -package=mock -mock_names=Cache=MockEstimateCache github.com/msmkdenis/yap-foodorder/internal/analysis/service Cache
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	GenerateKey(operation string, image []byte) string
}

type AnalysisUseCase struct {
	analyzer Analyzer
	prompts  map[string]string
	cache    Cache
	ttl      time.Duration
	logger   *zap.Logger
}

// NewAnalysisService takes the prompt of each estimate kind. cache may be nil.
func NewAnalysisService(analyzer Analyzer, caloriePrompt, costPrompt string, cache Cache, ttl time.Duration, logger *zap.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{
		analyzer: analyzer,
		prompts: map[string]string{
			KindCalories: caloriePrompt,
			KindCost:     costPrompt,
		},
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (u *AnalysisUseCase) Estimate(ctx context.Context, kind string, image []byte) (string, error) {
	prompt, ok := u.prompts[kind]
	if !ok {
		return "", apperrors.ErrUnknownAnalysis
	}

	var key string
	if u.cache != nil {
		key = u.cache.GenerateKey(kind, image)
		cached, err := u.cache.Get(ctx, key)
		if err != nil {
			u.logger.Warn("Estimate cache unavailable", zap.Error(err))
		}
		if cached != "" {
			u.logger.Info("Estimate served from cache", zap.String("kind", kind))
			return cached, nil
		}
	}

	text, err := u.analyzer.Analyze(ctx, image, prompt)
	if err != nil {
		return "", fmt.Errorf("%s %w", utils.Caller(), err)
	}

	if u.cache != nil {
		if err = u.cache.Set(ctx, key, text, u.ttl); err != nil {
			u.logger.Warn("Unable to cache estimate", zap.Error(err))
		}
	}

	u.logger.Info("Estimation completed successfully", zap.String("kind", kind))

	return text, nil
}
