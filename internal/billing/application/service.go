// Package application lists plans and subscribes the caller to one.
package application

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/arcana/internal/billing/domain"
	"github.com/felixgeelhaar/arcana/internal/shared/infrastructure/security"
)

var (
	// ErrPlanNotFound is returned for an unknown plan id.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrNoQRCode is returned when a payment carries no usable QR image.
	ErrNoQRCode = errors.New("payment has no QR code")
)

// Gateway is the slice of the backend billing needs.
type Gateway interface {
	GetPlans(ctx context.Context) ([]domain.Plan, error)
	GetCurrentSubscription(ctx context.Context) (*domain.Subscription, error)
	Subscribe(ctx context.Context, req domain.SubscribeRequest) (*domain.SubscribeResult, error)
}

// PlanView is a plan with its standing for the caller.
type PlanView struct {
	domain.Plan
	Current bool
}

// Overview is the plan list alongside the caller's subscription.
type Overview struct {
	Plans        []PlanView
	Subscription *domain.Subscription
}

// CurrentPlan returns the plan marked current, if any.
func (o *Overview) CurrentPlan() *PlanView {
	for i := range o.Plans {
		if o.Plans[i].Current {
			return &o.Plans[i]
		}
	}
	return nil
}

// SubscribeOptions carries payment details for paid plans.
type SubscribeOptions struct {
	Method  domain.PaymentMethod
	Card    *domain.CardData
	CpfCnpj string
}

// SubscribeOutcome is the result of Subscribe.
type SubscribeOutcome struct {
	Result *domain.SubscribeResult
	// Subscription is re-read after a free plan is activated.
	Subscription *domain.Subscription
	// Pending is true while a payment still has to be confirmed.
	Pending bool
}

// Service runs the plan and subscription flow.
type Service struct {
	gw     Gateway
	logger *slog.Logger
}

// NewService creates a Service.
func NewService(gw Gateway, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gw: gw, logger: logger}
}

// Overview lists the plans and marks the one the caller holds. A plan is
// current when the subscription points at it and is ACTIVE or TRIAL.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	plans, err := s.gw.GetPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	sub, err := s.gw.GetCurrentSubscription(ctx)
	if err != nil {
		return nil, fmt.Errorf("get current subscription: %w", err)
	}

	views := make([]PlanView, len(plans))
	for i, p := range plans {
		views[i] = PlanView{Plan: p, Current: sub.Covers(p.ID)}
	}
	return &Overview{Plans: views, Subscription: sub}, nil
}

// Current returns the caller's subscription, or nil.
func (s *Service) Current(ctx context.Context) (*domain.Subscription, error) {
	return s.gw.GetCurrentSubscription(ctx)
}

// SubscribeByID looks the plan up and subscribes to it.
func (s *Service) SubscribeByID(ctx context.Context, planID string, opts SubscribeOptions) (*SubscribeOutcome, error) {
	plans, err := s.gw.GetPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	for _, p := range plans {
		if p.ID == planID {
			return s.Subscribe(ctx, p, opts)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, planID)
}

// Subscribe submits a plan choice. Free plans are sent without a payment
// method; paid plans default to PIX and stay pending until payment clears.
func (s *Service) Subscribe(ctx context.Context, plan domain.Plan, opts SubscribeOptions) (*SubscribeOutcome, error) {
	current, err := s.gw.GetCurrentSubscription(ctx)
	if err != nil {
		return nil, fmt.Errorf("get current subscription: %w", err)
	}
	if current.Covers(plan.ID) {
		return nil, domain.ErrAlreadySubscribed
	}

	req := domain.SubscribeRequest{PlanID: plan.ID}
	if !plan.Free() {
		req.PaymentMethod = opts.Method
		if req.PaymentMethod == "" {
			req.PaymentMethod = domain.PaymentPIX
		}
		req.CardData = opts.Card
		req.CpfCnpj = strings.TrimSpace(opts.CpfCnpj)
	}

	res, err := s.gw.Subscribe(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", plan.Name, err)
	}
	out := &SubscribeOutcome{Result: res}

	if plan.Free() {
		sub, err := s.gw.GetCurrentSubscription(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "subscription refresh failed", "error", err)
			sub = &res.Subscription
		}
		out.Subscription = sub
		return out, nil
	}

	out.Pending = res.Subscription.Status != domain.StatusActive
	s.logger.InfoContext(ctx, "subscription awaiting payment",
		"plan_id", plan.ID,
		"method", req.PaymentMethod,
		"pending", out.Pending,
	)
	return out, nil
}

// SaveQRCode writes the payment's PNG QR code to path.
func SaveQRCode(payment *domain.Payment, path string) error {
	if payment == nil || payment.QRCode == "" {
		return ErrNoQRCode
	}
	data := payment.QRCode
	if strings.HasPrefix(data, "data:") {
		comma := strings.IndexByte(data, ',')
		if comma < 0 || !strings.HasSuffix(data[:comma], ";base64") {
			return fmt.Errorf("%w: unsupported data URL", ErrNoQRCode)
		}
		data = data[comma+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoQRCode, err)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("%w: not a PNG image", ErrNoQRCode)
	}
	_, err = security.SafeWriteFile(path, raw, 0600)
	return err
}
