package billing

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/arcana/adapter/cli"
	billingApp "github.com/felixgeelhaar/arcana/internal/billing/application"
	billingDomain "github.com/felixgeelhaar/arcana/internal/billing/domain"
)

type mockBilling struct {
	mock.Mock
}

func (m *mockBilling) Overview(ctx context.Context) (*billingApp.Overview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingApp.Overview), args.Error(1)
}

func (m *mockBilling) Current(ctx context.Context) (*billingDomain.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingDomain.Subscription), args.Error(1)
}

func (m *mockBilling) SubscribeByID(ctx context.Context, planID string, opts billingApp.SubscribeOptions) (*billingApp.SubscribeOutcome, error) {
	args := m.Called(ctx, planID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingApp.SubscribeOutcome), args.Error(1)
}

func resetFlags() {
	subscribeMethod = ""
	subscribeCpfCnpj = ""
	subscribeQRFile = ""
}

func setup(t *testing.T) *mockBilling {
	t.Helper()
	resetFlags()
	m := &mockBilling{}
	cli.SetApp(&cli.App{Billing: m})
	t.Cleanup(func() { cli.SetApp(nil) })
	return m
}

func TestStatusCmd_NoApp(t *testing.T) {
	resetFlags()
	cli.SetApp(nil)

	statusCmd.SetContext(context.Background())
	err := statusCmd.RunE(statusCmd, []string{})
	assert.ErrorIs(t, err, errNoBilling)
}

func TestStatusCmd(t *testing.T) {
	t.Run("no subscription", func(t *testing.T) {
		m := setup(t)
		m.On("Current", mock.Anything).Return(nil, nil)

		var output strings.Builder
		statusCmd.SetContext(context.Background())
		statusCmd.SetOut(&output)

		require.NoError(t, statusCmd.RunE(statusCmd, []string{}))
		assert.Contains(t, output.String(), "No subscription found.")
	})

	t.Run("active", func(t *testing.T) {
		m := setup(t)
		m.On("Current", mock.Anything).Return(&billingDomain.Subscription{
			PlanID:    "pro",
			Status:    billingDomain.StatusActive,
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}, nil)

		var output strings.Builder
		statusCmd.SetContext(context.Background())
		statusCmd.SetOut(&output)

		require.NoError(t, statusCmd.RunE(statusCmd, []string{}))
		assert.Contains(t, output.String(), "Subscription: pro (Ativa)")
		assert.NotContains(t, output.String(), "Ends:")
	})
}

func TestListCmd(t *testing.T) {
	m := setup(t)
	desc := "Leituras ilimitadas"
	unlimited := billingDomain.UnlimitedDailyLimit
	three := 3
	m.On("Overview", mock.Anything).Return(&billingApp.Overview{Plans: []billingApp.PlanView{
		{Plan: billingDomain.Plan{ID: "free", Name: "Gratuito", GlobalDailyLimit: &three}},
		{Plan: billingDomain.Plan{ID: "pro", Name: "Pro", Price: 123456, BillingPeriod: billingDomain.BillingYearly, Description: &desc, GlobalDailyLimit: &unlimited}, Current: true},
	}}, nil)

	var output strings.Builder
	listCmd.SetContext(context.Background())
	listCmd.SetOut(&output)

	require.NoError(t, listCmd.RunE(listCmd, []string{}))
	out := output.String()
	assert.Contains(t, out, "  free")
	assert.Contains(t, out, "3 sessões diárias")
	assert.Contains(t, out, "* pro")
	assert.Contains(t, out, "R$ 1.234,56/ano")
	assert.Contains(t, out, "Leituras ilimitadas")
	assert.Contains(t, out, "Ilimitado")
}

func TestSubscribeCmd_PixWithQRCode(t *testing.T) {
	m := setup(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	qr := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	m.On("SubscribeByID", mock.Anything, "pro", billingApp.SubscribeOptions{CpfCnpj: "123"}).
		Return(&billingApp.SubscribeOutcome{
			Result: &billingDomain.SubscribeResult{
				Subscription: billingDomain.Subscription{PlanID: "pro", Status: billingDomain.StatusPendingPayment},
				Plan:         billingDomain.Plan{ID: "pro", Name: "Pro"},
				Payment:      &billingDomain.Payment{PaymentID: "pay-1", Status: "PENDING", PixCode: "000201xyz", QRCode: qr},
			},
			Pending: true,
		}, nil)

	subscribeCpfCnpj = "123"
	subscribeQRFile = filepath.Join(t.TempDir(), "pix.png")

	var output strings.Builder
	subscribeCmd.SetContext(context.Background())
	subscribeCmd.SetOut(&output)

	require.NoError(t, subscribeCmd.RunE(subscribeCmd, []string{"pro"}))
	out := output.String()
	assert.Contains(t, out, "Status: Aguardando pagamento")
	assert.Contains(t, out, "000201xyz")
	assert.Contains(t, out, "QR code saved to")
	assert.Contains(t, out, "arcana plans status")

	raw, err := os.ReadFile(subscribeQRFile)
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), raw)
}

func TestSubscribeCmd_CreditCardPrompts(t *testing.T) {
	m := setup(t)
	want := billingApp.SubscribeOptions{
		Method: billingDomain.PaymentCreditCard,
		Card: &billingDomain.CardData{
			CardNumber:      "4111111111111111",
			CardHolderName:  "ANA SILVA",
			ExpirationMonth: 7,
			ExpirationYear:  2031,
			CVV:             "321",
		},
	}
	m.On("SubscribeByID", mock.Anything, "pro", want).Return(&billingApp.SubscribeOutcome{
		Result: &billingDomain.SubscribeResult{
			Subscription: billingDomain.Subscription{PlanID: "pro", Status: billingDomain.StatusActive},
			Plan:         billingDomain.Plan{ID: "pro", Name: "Pro"},
		},
	}, nil)

	subscribeMethod = "credit"
	var output strings.Builder
	subscribeCmd.SetContext(context.Background())
	subscribeCmd.SetOut(&output)
	subscribeCmd.SetIn(strings.NewReader("4111 1111 1111 1111\nANA SILVA\n07/31\n321\n"))

	require.NoError(t, subscribeCmd.RunE(subscribeCmd, []string{"pro"}))
	assert.Contains(t, output.String(), "Status: Ativa")
	assert.NotContains(t, output.String(), "activates once")
	m.AssertExpectations(t)
}

func TestSubscribeCmd_AlreadySubscribed(t *testing.T) {
	m := setup(t)
	m.On("SubscribeByID", mock.Anything, "free", billingApp.SubscribeOptions{}).
		Return(nil, billingDomain.ErrAlreadySubscribed)

	var output strings.Builder
	subscribeCmd.SetContext(context.Background())
	subscribeCmd.SetOut(&output)

	require.NoError(t, subscribeCmd.RunE(subscribeCmd, []string{"free"}))
	assert.Contains(t, output.String(), "already on this plan")
}

func TestSubscribeCmd_UnknownMethod(t *testing.T) {
	setup(t)
	subscribeMethod = "boleto"

	subscribeCmd.SetContext(context.Background())
	err := subscribeCmd.RunE(subscribeCmd, []string{"pro"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown payment method")
}

func TestParseExpiry(t *testing.T) {
	month, year, err := parseExpiry("12/2030")
	require.NoError(t, err)
	assert.Equal(t, 12, month)
	assert.Equal(t, 2030, year)

	_, _, err = parseExpiry("13/30")
	assert.Error(t, err)
	_, _, err = parseExpiry("1230")
	assert.Error(t, err)
}
