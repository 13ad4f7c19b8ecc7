package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/msmkdenis/yap-foodorder/internal/admin/handler/dto"
	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	orderdto "github.com/msmkdenis/yap-foodorder/internal/order/handler/dto"
	"github.com/msmkdenis/yap-foodorder/internal/order/model"
)

// AdminService mockgen --build_flags=--mod=mod -destination=internal/mocks/mock_admin_service.go -package=mock github.com/msmkdenis/yap-foodorder/internal/admin/handler AdminService
type AdminService interface {
	ShowOrders(ctx context.Context, secret string) ([]model.Order, error)
}

type AdminHandler struct {
	adminService AdminService
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewAdminHandler(e *echo.Echo, service AdminService, logger *zap.Logger) *AdminHandler {
	handler := &AdminHandler{
		adminService: service,
		validate:     validator.New(),
		logger:       logger,
	}

	e.POST("/api/admin/orders", handler.ShowOrders)

	return handler
}

// @Summary       Show all orders
// @Description   Lists every stored order in insertion order. Requires the admin secret.
// @Tags          Admin API
// @Accept        json
// @Produce       json
// @Param         request   body       dto.ShowOrdersRequest   true   "Admin secret."
// @Success       200       {array}    orderdto.OrderResponse
// @Failure       400
// @Failure       401
// @Failure       500
// @Router        /api/admin/orders [post]
func (h *AdminHandler) ShowOrders(c echo.Context) error {
	request := new(dto.ShowOrdersRequest)
	if bindErr := c.Bind(request); bindErr != nil {
		h.logger.Warn("Unable to bind data", zap.Error(bindErr))
		return c.String(http.StatusBadRequest, "Bad request")
	}

	if validateErr := h.validate.Struct(request); validateErr != nil {
		h.logger.Warn("Bad Request: invalid request", zap.Error(validateErr))
		return c.String(http.StatusBadRequest, "Invalid request data")
	}

	orders, err := h.adminService.ShowOrders(c.Request().Context(), request.Secret)

	if errors.Is(err, apperrors.ErrUnauthorized) {
		h.logger.Warn("Admin access denied")
		return c.String(http.StatusUnauthorized, "Incorrect password")
	}

	if err != nil {
		h.logger.Error("Unable to list orders", zap.Error(err))
		return c.NoContent(http.StatusInternalServerError)
	}

	response := make([]orderdto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderdto.MapToOrderResponse(o))
	}

	return c.JSON(http.StatusOK, response)
}
