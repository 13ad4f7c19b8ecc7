package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	mock "github.com/msmkdenis/yap-foodorder/internal/mocks"
)

const (
	caloriePrompt = "count calories"
	costPrompt    = "estimate cost"
)

var image = []byte{0x89, 'P', 'N', 'G'}

func TestEstimateSelectsPrompt(t *testing.T) {
	testCases := []struct {
		kind   string
		prompt string
		text   string
	}{
		{KindCalories, caloriePrompt, "About 650 kcal: burger, fries"},
		{KindCost, costPrompt, "Around $14 USD"},
	}

	for _, test := range testCases {
		t.Run(test.kind, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			analyzer := mock.NewMockAnalyzer(ctrl)
			analyzer.EXPECT().Analyze(gomock.Any(), image, test.prompt).Times(1).Return(test.text, nil)

			service := NewAnalysisService(analyzer, caloriePrompt, costPrompt, nil, 0, zap.NewNop())

			text, err := service.Estimate(context.Background(), test.kind, image)
			require.NoError(t, err)
			assert.Equal(t, test.text, text)
		})
	}
}

func TestEstimateUnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyzer := mock.NewMockAnalyzer(ctrl)
	analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	service := NewAnalysisService(analyzer, caloriePrompt, costPrompt, nil, 0, zap.NewNop())

	_, err := service.Estimate(context.Background(), "vitamins", image)
	assert.ErrorIs(t, err, apperrors.ErrUnknownAnalysis)
}

func TestEstimateGatewayFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyzer := mock.NewMockAnalyzer(ctrl)
	analyzer.EXPECT().Analyze(gomock.Any(), image, caloriePrompt).Times(1).Return("", apperrors.ErrGateway)

	service := NewAnalysisService(analyzer, caloriePrompt, costPrompt, nil, 0, zap.NewNop())

	text, err := service.Estimate(context.Background(), KindCalories, image)
	assert.ErrorIs(t, err, apperrors.ErrGateway)
	assert.Empty(t, text)
}

func TestEstimateCache(t *testing.T) {
	ttl := time.Hour

	testCases := []struct {
		name     string
		prepare  func(analyzer *mock.MockAnalyzer, cache *mock.MockEstimateCache)
		expected string
	}{
		{
			name: "hit skips the model",
			prepare: func(analyzer *mock.MockAnalyzer, cache *mock.MockEstimateCache) {
				cache.EXPECT().GenerateKey(KindCost, image).Return("key")
				cache.EXPECT().Get(gomock.Any(), "key").Return("cached $10", nil)
				analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			expected: "cached $10",
		},
		{
			name: "miss stores the answer",
			prepare: func(analyzer *mock.MockAnalyzer, cache *mock.MockEstimateCache) {
				cache.EXPECT().GenerateKey(KindCost, image).Return("key")
				cache.EXPECT().Get(gomock.Any(), "key").Return("", nil)
				analyzer.EXPECT().Analyze(gomock.Any(), image, costPrompt).Return("$12", nil)
				cache.EXPECT().Set(gomock.Any(), "key", "$12", ttl).Return(nil)
			},
			expected: "$12",
		},
		{
			name: "cache errors are not fatal",
			prepare: func(analyzer *mock.MockAnalyzer, cache *mock.MockEstimateCache) {
				cache.EXPECT().GenerateKey(KindCost, image).Return("key")
				cache.EXPECT().Get(gomock.Any(), "key").Return("", errors.New("connection refused"))
				analyzer.EXPECT().Analyze(gomock.Any(), image, costPrompt).Return("$12", nil)
				cache.EXPECT().Set(gomock.Any(), "key", "$12", ttl).Return(errors.New("connection refused"))
			},
			expected: "$12",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			analyzer := mock.NewMockAnalyzer(ctrl)
			cache := mock.NewMockEstimateCache(ctrl)
			test.prepare(analyzer, cache)

			service := NewAnalysisService(analyzer, caloriePrompt, costPrompt, cache, ttl, zap.NewNop())

			text, err := service.Estimate(context.Background(), KindCost, image)
			require.NoError(t, err)
			assert.Equal(t, test.expected, text)
		})
	}
}
