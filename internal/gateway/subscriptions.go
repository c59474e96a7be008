package gateway

import (
	"context"
	"net/http"

	"github.com/felixgeelhaar/arcana/internal/billing/domain"
)

// GetPlans lists the subscription plans.
func (c *Client) GetPlans(ctx context.Context) ([]domain.Plan, error) {
	var out struct {
		Plans []domain.Plan `json:"plans"`
	}
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/subscriptions/plans"}, &out); err != nil {
		return nil, err
	}
	return out.Plans, nil
}

// GetCurrentSubscription returns the caller's subscription. A 404 means the
// caller has none and yields (nil, nil).
func (c *Client) GetCurrentSubscription(ctx context.Context) (*domain.Subscription, error) {
	var out struct {
		Subscription *domain.Subscription `json:"subscription"`
	}
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/subscriptions/current"}, &out)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.Subscription, nil
}

// Subscribe submits a plan choice.
func (c *Client) Subscribe(ctx context.Context, req domain.SubscribeRequest) (*domain.SubscribeResult, error) {
	var out domain.SubscribeResult
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/subscriptions/subscribe",
		Body:   req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
