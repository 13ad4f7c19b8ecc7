package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/order/model"
	"github.com/msmkdenis/yap-foodorder/internal/utils"
)

// OrderRepository mockgen --build_flags=--mod=mod -destination=internal/mocks/mock_order_lister.go -package=mock -mock_names=OrderRepository=MockOrderLister github.com/msmkdenis/yap-foodorder/internal/admin/service OrderRepository
type OrderRepository interface {
	SelectAll(ctx context.Context) ([]model.Order, error)
}

type AdminUseCase struct {
	repository OrderRepository
	secretHash []byte
	logger     *zap.Logger
}

// NewAdminService hashes the configured secret once. An empty secret disables
// the admin view: every request is rejected. Secrets of any length are accepted,
// bcrypt only ever sees their SHA-256 hex digest.
func NewAdminService(repository OrderRepository, secret string, cost int, logger *zap.Logger) (*AdminUseCase, error) {
	u := &AdminUseCase{
		repository: repository,
		logger:     logger,
	}

	if secret == "" {
		logger.Warn("Admin secret is not configured, admin view disabled")
		return u, nil
	}

	hash, err := bcrypt.GenerateFromPassword(digest(secret), cost)
	if err != nil {
		return nil, apperrors.NewValueError("unable to hash admin secret", utils.Caller(), err)
	}
	u.secretHash = hash

	return u, nil
}

// ShowOrders checks the secret on every call and lists all orders by id.
func (u *AdminUseCase) ShowOrders(ctx context.Context, secret string) ([]model.Order, error) {
	if !u.authorized(secret) {
		return nil, apperrors.ErrUnauthorized
	}

	orders, err := u.repository.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s %w", utils.Caller(), err)
	}

	u.logger.Info("Admin listed orders", zap.Int("count", len(orders)))

	return orders, nil
}

func (u *AdminUseCase) authorized(secret string) bool {
	if u.secretHash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(u.secretHash, digest(secret)) == nil
}

// digest keeps the bcrypt input at 64 bytes, below its 72 byte limit.
func digest(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return []byte(hex.EncodeToString(sum[:]))
}
