package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/order/model"
	"github.com/msmkdenis/yap-foodorder/internal/order/validation"
	"github.com/msmkdenis/yap-foodorder/internal/utils"
)

// OrderRepository mockgen --build_flags=--mod=mod -destination=internal/mocks/mock_order_repository.go -package=mock github.com/msmkdenis/yap-foodorder/internal/order/service OrderRepository
type OrderRepository interface {
	Insert(ctx context.Context, order model.Order) (int64, error)
}

type OrderUseCase struct {
	repository OrderRepository
	validator  *validation.Validator
	logger     *zap.Logger
}

func NewOrderService(repository OrderRepository, validator *validation.Validator, logger *zap.Logger) *OrderUseCase {
	return &OrderUseCase{
		repository: repository,
		validator:  validator,
		logger:     logger,
	}
}

// Submit persists the order only when every field passes its format rule.
// Payment fields are masked before they reach the store.
func (u *OrderUseCase) Submit(ctx context.Context, form model.OrderForm) (int64, error) {
	if failed := u.validator.Validate(form); len(failed) > 0 {
		u.logger.Warn("User attempted to order with invalid details", zap.Strings("fields", failed))
		return 0, apperrors.NewValidationError(failed)
	}

	order := model.Order{
		Name:       form.Name,
		Email:      form.Email,
		CardNumber: MaskCard(form.CardNumber),
		Expiry:     form.Expiry,
		CVV:        MaskCVV(form.CVV),
	}

	id, err := u.repository.Insert(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("%s %w", utils.Caller(), err)
	}

	u.logger.Info("Order placed successfully",
		zap.Int64("id", id),
		zap.String("name", form.Name),
		zap.String("email", form.Email),
	)

	return id, nil
}

// MaskCard keeps the last four digits.
func MaskCard(number string) string {
	if len(number) <= 4 {
		return strings.Repeat("*", len(number))
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}

func MaskCVV(cvv string) string {
	return strings.Repeat("*", len(cvv))
}
