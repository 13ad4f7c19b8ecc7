package dto

import (
	"time"

	"github.com/msmkdenis/yap-foodorder/internal/order/model"
)

type OrderRequest struct {
	Name       string `json:"name" form:"name"`
	Email      string `json:"email" form:"email"`
	CardNumber string `json:"card_number" form:"card_number"`
	Expiry     string `json:"expiry" form:"expiry"`
	CVV        string `json:"cvv" form:"cvv"`
}

func (r OrderRequest) ToForm() model.OrderForm {
	return model.OrderForm{
		Name:       r.Name,
		Email:      r.Email,
		CardNumber: r.CardNumber,
		Expiry:     r.Expiry,
		CVV:        r.CVV,
	}
}

type OrderCreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type OrderRejectedResponse struct {
	FailedFields []string `json:"failed_fields"`
	Messages     []string `json:"messages"`
}

type OrderResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	CreatedAt  string `json:"created_at"`
}

func MapToOrderResponse(order model.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		Name:       order.Name,
		Email:      order.Email,
		CardNumber: order.CardNumber,
		Expiry:     order.Expiry,
		CVV:        order.CVV,
		CreatedAt:  order.CreatedAt.Format(time.RFC3339),
	}
}
