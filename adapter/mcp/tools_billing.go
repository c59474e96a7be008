package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/mcp-go"

	billingApp "github.com/felixgeelhaar/arcana/internal/billing/application"
	billingDomain "github.com/felixgeelhaar/arcana/internal/billing/domain"
)

type planSubscribeInput struct {
	PlanID        string                  `json:"plan_id" jsonschema:"required"`
	PaymentMethod string                  `json:"payment_method,omitempty"`
	CpfCnpj       string                  `json:"cpf_cnpj,omitempty"`
	Card          *billingDomain.CardData `json:"card,omitempty"`
}

type planView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Period      string `json:"period"`
	DailyLimit  string `json:"daily_limit"`
	Current     bool   `json:"current"`
}

func registerBillingTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("plans.list").
		Description("List subscription plans; current marks the caller's plan").
		Handler(func(ctx context.Context, input struct{}) (map[string]any, error) {
			if app == nil || app.Billing == nil {
				return nil, errors.New("billing service not configured")
			}
			overview, err := app.Billing.Overview(ctx)
			if err != nil {
				return nil, err
			}
			plans := make([]planView, len(overview.Plans))
			for i, p := range overview.Plans {
				plans[i] = planView{
					ID:          p.ID,
					Name:        p.Name,
					Description: p.DescriptionText(),
					Price:       billingDomain.FormatPrice(p.Price),
					Period:      p.BillingPeriod.Label(),
					DailyLimit:  billingDomain.LimitText(p.GlobalDailyLimit),
					Current:     p.Current,
				}
			}
			return map[string]any{"plans": plans}, nil
		})

	srv.Tool("subscription.current").
		Description("Get the caller's subscription, or none").
		Handler(func(ctx context.Context, input struct{}) (map[string]any, error) {
			if app == nil || app.Billing == nil {
				return nil, errors.New("billing service not configured")
			}
			sub, err := app.Billing.Current(ctx)
			if err != nil {
				return nil, err
			}
			if sub == nil {
				return map[string]any{"subscribed": false}, nil
			}
			return map[string]any{
				"subscribed":   true,
				"subscription": sub,
				"status_label": sub.Status.Label(),
			}, nil
		})

	srv.Tool("plans.subscribe").
		Description("Subscribe to a plan. Paid plans default to PIX; the response carries the PIX code").
		Handler(func(ctx context.Context, input planSubscribeInput) (map[string]any, error) {
			if app == nil || app.Billing == nil {
				return nil, errors.New("billing service not configured")
			}
			id, err := requireID(input.PlanID, "plan_id")
			if err != nil {
				return nil, err
			}
			method := billingDomain.PaymentMethod(strings.ToUpper(strings.TrimSpace(input.PaymentMethod)))
			switch method {
			case "", billingDomain.PaymentPIX:
			case billingDomain.PaymentCreditCard, billingDomain.PaymentDebitCard:
				if input.Card == nil {
					return nil, fmt.Errorf("card is required for %s", method)
				}
			default:
				return nil, fmt.Errorf("unknown payment_method %q", input.PaymentMethod)
			}

			outcome, err := app.Billing.SubscribeByID(ctx, id, billingApp.SubscribeOptions{
				Method:  method,
				Card:    input.Card,
				CpfCnpj: input.CpfCnpj,
			})
			if err != nil {
				return nil, err
			}

			sub := outcome.Result.Subscription
			if outcome.Subscription != nil {
				sub = *outcome.Subscription
			}
			result := map[string]any{
				"plan_id":      sub.PlanID,
				"status":       sub.Status,
				"status_label": sub.Status.Label(),
				"pending":      outcome.Pending,
			}
			if p := outcome.Result.Payment; p != nil {
				result["payment"] = map[string]any{
					"payment_id": p.PaymentID,
					"status":     p.Status,
					"message":    p.Message,
					"pix_code":   p.PixCode,
				}
			}
			return result, nil
		})

	return nil
}
