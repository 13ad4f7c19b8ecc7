package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/order/handler/dto"
	"github.com/msmkdenis/yap-foodorder/internal/order/model"
	"github.com/msmkdenis/yap-foodorder/internal/order/validation"
)

// OrderService mockgen --build_flags=--mod=mod -destination=internal/mocks/mock_order_service.go -package=mock github.com/msmkdenis/yap-foodorder/internal/order/handler OrderService
type OrderService interface {
	Submit(ctx context.Context, form model.OrderForm) (int64, error)
}

type OrderHandler struct {
	orderService OrderService
	logger       *zap.Logger
}

func NewOrderHandler(e *echo.Echo, service OrderService, logger *zap.Logger) *OrderHandler {
	handler := &OrderHandler{
		orderService: service,
		logger:       logger,
	}

	e.POST("/api/orders", handler.SubmitOrder)

	return handler
}

// @Summary       Submit order
// @Description   Validates all five order fields and stores the order when every field is valid.
// @Tags          Order API
// @Accept        json
// @Produce       json
// @Param         order   body       dto.OrderRequest   true   "Order form."
// @Success       201     {object}   dto.OrderCreatedResponse
// @Failure       400
// @Failure       422     {object}   dto.OrderRejectedResponse
// @Failure       500
// @Router        /api/orders [post]
func (h *OrderHandler) SubmitOrder(c echo.Context) error {
	h.logger.Info("User clicked Order Now")

	request := new(dto.OrderRequest)
	if bindErr := c.Bind(request); bindErr != nil {
		h.logger.Warn("Unable to bind data", zap.Error(bindErr))
		return c.String(http.StatusBadRequest, "Bad request")
	}

	id, err := h.orderService.Submit(c.Request().Context(), request.ToForm())

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		messages := make([]string, 0, len(validationErr.Fields))
		for _, field := range validationErr.Fields {
			messages = append(messages, validation.Message(field))
		}
		return c.JSON(http.StatusUnprocessableEntity, dto.OrderRejectedResponse{
			FailedFields: validationErr.Fields,
			Messages:     messages,
		})
	}

	if err != nil {
		h.logger.Error("Unable to save order", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Error: order was not saved")
	}

	return c.JSON(http.StatusCreated, dto.OrderCreatedResponse{
		ID:      id,
		Message: fmt.Sprintf("Order placed successfully for %s! Your food will be delivered soon", request.Name),
	})
}
