// Package client calls the food order HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	admindto "github.com/msmkdenis/yap-foodorder/internal/admin/handler/dto"
	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	orderdto "github.com/msmkdenis/yap-foodorder/internal/order/handler/dto"
)

type Client struct {
	*resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	client := &Client{resty.New()}
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)

	return client
}

func (c *Client) ListOrders(ctx context.Context, secret string) ([]orderdto.OrderResponse, error) {
	var orders []orderdto.OrderResponse
	r, err := c.R().
		SetContext(ctx).
		SetBody(admindto.ShowOrdersRequest{Secret: secret}).
		SetResult(&orders).
		Post("/api/admin/orders")
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	switch r.StatusCode() {
	case http.StatusOK:
		return orders, nil
	case http.StatusUnauthorized:
		return nil, apperrors.ErrUnauthorized
	default:
		return nil, unexpected(r)
	}
}

// SubmitOrder returns *apperrors.ValidationError when the server rejects fields.
func (c *Client) SubmitOrder(ctx context.Context, order orderdto.OrderRequest) (*orderdto.OrderCreatedResponse, error) {
	var (
		created  orderdto.OrderCreatedResponse
		rejected orderdto.OrderRejectedResponse
	)
	r, err := c.R().
		SetContext(ctx).
		SetBody(order).
		SetResult(&created).
		SetError(&rejected).
		Post("/api/orders")
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	switch r.StatusCode() {
	case http.StatusCreated:
		return &created, nil
	case http.StatusUnprocessableEntity:
		return nil, apperrors.NewValidationError(rejected.FailedFields)
	default:
		return nil, unexpected(r)
	}
}

func unexpected(r *resty.Response) error {
	return fmt.Errorf("unexpected response %d: %s", r.StatusCode(), r.String())
}
