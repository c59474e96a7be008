package application

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/arcana/internal/billing/domain"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) GetPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *mockGateway) GetCurrentSubscription(ctx context.Context) (*domain.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *mockGateway) Subscribe(ctx context.Context, req domain.SubscribeRequest) (*domain.SubscribeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscribeResult), args.Error(1)
}

var (
	freePlan = domain.Plan{ID: "free", Name: "Gratuito", Price: 0, BillingPeriod: domain.BillingMonthly, IsActive: true}
	proPlan  = domain.Plan{ID: "pro", Name: "Pro", Price: 2990, BillingPeriod: domain.BillingMonthly, IsActive: true}
)

func TestService_Overview(t *testing.T) {
	tests := []struct {
		name    string
		sub     *domain.Subscription
		current string
	}{
		{name: "no subscription", sub: nil, current: ""},
		{name: "active pro", sub: &domain.Subscription{PlanID: "pro", Status: domain.StatusActive}, current: "pro"},
		{name: "trial free", sub: &domain.Subscription{PlanID: "free", Status: domain.StatusTrial}, current: "free"},
		{name: "cancelled pro", sub: &domain.Subscription{PlanID: "pro", Status: domain.StatusCancelled}, current: ""},
		{name: "pending pro", sub: &domain.Subscription{PlanID: "pro", Status: domain.StatusPendingPayment}, current: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(mockGateway)
			gw.On("GetPlans", mock.Anything).Return([]domain.Plan{freePlan, proPlan}, nil)
			gw.On("GetCurrentSubscription", mock.Anything).Return(tt.sub, nil)

			overview, err := NewService(gw, nil).Overview(context.Background())
			require.NoError(t, err)
			require.Len(t, overview.Plans, 2)

			marked := 0
			for _, p := range overview.Plans {
				if p.Current {
					marked++
					assert.Equal(t, tt.current, p.ID)
				}
			}
			if tt.current == "" {
				assert.Zero(t, marked)
				assert.Nil(t, overview.CurrentPlan())
			} else {
				assert.Equal(t, 1, marked)
				assert.Equal(t, tt.current, overview.CurrentPlan().ID)
			}
		})
	}
}

func TestService_Overview_PlansError(t *testing.T) {
	gw := new(mockGateway)
	gw.On("GetPlans", mock.Anything).Return(nil, errors.New("boom"))

	_, err := NewService(gw, nil).Overview(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list plans")
}

func TestService_Subscribe_Free(t *testing.T) {
	gw := new(mockGateway)
	active := &domain.Subscription{PlanID: "free", Status: domain.StatusActive}
	gw.On("GetCurrentSubscription", mock.Anything).Return(nil, nil).Once()
	gw.On("Subscribe", mock.Anything, domain.SubscribeRequest{PlanID: "free"}).
		Return(&domain.SubscribeResult{Subscription: *active, Plan: freePlan}, nil)
	gw.On("GetCurrentSubscription", mock.Anything).Return(active, nil).Once()

	out, err := NewService(gw, nil).Subscribe(context.Background(), freePlan, SubscribeOptions{
		Method:  domain.PaymentCreditCard,
		CpfCnpj: "123",
	})
	require.NoError(t, err)

	assert.False(t, out.Pending)
	assert.Equal(t, active, out.Subscription)
	gw.AssertExpectations(t)
}

func TestService_Subscribe_PaidDefaultsToPIX(t *testing.T) {
	gw := new(mockGateway)
	gw.On("GetCurrentSubscription", mock.Anything).Return(nil, nil)
	want := domain.SubscribeRequest{PlanID: "pro", PaymentMethod: domain.PaymentPIX, CpfCnpj: "12345678900"}
	gw.On("Subscribe", mock.Anything, want).Return(&domain.SubscribeResult{
		Subscription: domain.Subscription{PlanID: "pro", Status: domain.StatusPendingPayment},
		Plan:         proPlan,
		Payment:      &domain.Payment{PaymentID: "pay-1", Status: "PENDING", PixCode: "000201"},
	}, nil)

	out, err := NewService(gw, nil).Subscribe(context.Background(), proPlan, SubscribeOptions{CpfCnpj: " 12345678900 "})
	require.NoError(t, err)

	assert.True(t, out.Pending)
	assert.Nil(t, out.Subscription)
	assert.Equal(t, "000201", out.Result.Payment.PixCode)
	gw.AssertExpectations(t)
}

func TestService_Subscribe_CardDataPassedThrough(t *testing.T) {
	gw := new(mockGateway)
	card := &domain.CardData{CardNumber: "4111111111111111", CardHolderName: "Ana", ExpirationMonth: 12, ExpirationYear: 2030, CVV: "123"}
	gw.On("GetCurrentSubscription", mock.Anything).Return(nil, nil)
	gw.On("Subscribe", mock.Anything, domain.SubscribeRequest{PlanID: "pro", PaymentMethod: domain.PaymentCreditCard, CardData: card}).
		Return(&domain.SubscribeResult{Subscription: domain.Subscription{PlanID: "pro", Status: domain.StatusActive}}, nil)

	out, err := NewService(gw, nil).Subscribe(context.Background(), proPlan, SubscribeOptions{Method: domain.PaymentCreditCard, Card: card})
	require.NoError(t, err)
	assert.False(t, out.Pending)
}

func TestService_Subscribe_AlreadyCurrent(t *testing.T) {
	gw := new(mockGateway)
	gw.On("GetCurrentSubscription", mock.Anything).Return(&domain.Subscription{PlanID: "pro", Status: domain.StatusActive}, nil)

	_, err := NewService(gw, nil).Subscribe(context.Background(), proPlan, SubscribeOptions{})
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
	gw.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything)
}

func TestService_SubscribeByID(t *testing.T) {
	gw := new(mockGateway)
	gw.On("GetPlans", mock.Anything).Return([]domain.Plan{freePlan, proPlan}, nil)

	_, err := NewService(gw, nil).SubscribeByID(context.Background(), "gold", SubscribeOptions{})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestSaveQRCode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	t.Run("writes data URL payload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pix.png")
		err := SaveQRCode(&domain.Payment{QRCode: "data:image/png;base64," + encoded}, path)
		require.NoError(t, err)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, buf.Bytes(), raw)
	})

	t.Run("accepts bare base64", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pix.png")
		require.NoError(t, SaveQRCode(&domain.Payment{QRCode: encoded}, path))
	})

	t.Run("rejects missing and invalid payloads", func(t *testing.T) {
		dir := t.TempDir()
		assert.ErrorIs(t, SaveQRCode(nil, filepath.Join(dir, "a.png")), ErrNoQRCode)
		assert.ErrorIs(t, SaveQRCode(&domain.Payment{}, filepath.Join(dir, "b.png")), ErrNoQRCode)
		assert.ErrorIs(t, SaveQRCode(&domain.Payment{QRCode: "data:image/png,raw"}, filepath.Join(dir, "c.png")), ErrNoQRCode)
		notPNG := base64.StdEncoding.EncodeToString([]byte("hello"))
		assert.ErrorIs(t, SaveQRCode(&domain.Payment{QRCode: notPNG}, filepath.Join(dir, "d.png")), ErrNoQRCode)
	})
}
