package domain

import (
	"errors"
	"time"
)

// ErrAlreadySubscribed is returned when subscribing to the current plan.
var ErrAlreadySubscribed = errors.New("plan is already the current subscription")

// SubscriptionStatus is the lifecycle of a subscription.
type SubscriptionStatus string

const (
	StatusActive         SubscriptionStatus = "ACTIVE"
	StatusCancelled      SubscriptionStatus = "CANCELLED"
	StatusExpired        SubscriptionStatus = "EXPIRED"
	StatusTrial          SubscriptionStatus = "TRIAL"
	StatusPendingPayment SubscriptionStatus = "PENDING_PAYMENT"
)

// Label returns the display label for the status.
func (s SubscriptionStatus) Label() string {
	switch s {
	case StatusActive:
		return "Ativa"
	case StatusCancelled:
		return "Cancelada"
	case StatusExpired:
		return "Expirada"
	case StatusTrial:
		return "Período de teste"
	case StatusPendingPayment:
		return "Aguardando pagamento"
	default:
		return string(s)
	}
}

// Subscription binds the caller to a plan.
type Subscription struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userId"`
	PlanID      string             `json:"planId"`
	Status      SubscriptionStatus `json:"status"`
	StartDate   time.Time          `json:"startDate"`
	EndDate     *time.Time         `json:"endDate"`
	CancelledAt *time.Time         `json:"cancelledAt"`
	CreatedAt   time.Time          `json:"createdAt"`
	PaymentID   *string            `json:"paymentId"`
}

// Covers reports whether the subscription makes planID the current plan.
func (s *Subscription) Covers(planID string) bool {
	if s == nil || s.PlanID != planID {
		return false
	}
	return s.Status == StatusActive || s.Status == StatusTrial
}

// PaymentMethod is how a paid plan is charged.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentPIX        PaymentMethod = "PIX"
)

// CardData is sent with card payments.
type CardData struct {
	CardNumber      string `json:"cardNumber"`
	CardHolderName  string `json:"cardHolderName"`
	ExpirationMonth int    `json:"expirationMonth"`
	ExpirationYear  int    `json:"expirationYear"`
	CVV             string `json:"cvv"`
}

// SubscribeRequest is the body of a subscription call. Free plans send only
// the plan id.
type SubscribeRequest struct {
	PlanID        string        `json:"planId"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	CardData      *CardData     `json:"cardData,omitempty"`
	CpfCnpj       string        `json:"cpfCnpj,omitempty"`
}

// Payment is the payment attempt created by a subscription. QRCode is a
// data URL holding a PNG.
type Payment struct {
	PaymentID     string `json:"paymentId"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
	QRCode        string `json:"qrCode,omitempty"`
	PixCode       string `json:"pixCode,omitempty"`
}

// SubscribeResult is the backend answer to a subscription.
type SubscribeResult struct {
	Subscription Subscription `json:"subscription"`
	Plan         Plan         `json:"plan"`
	Payment      *Payment     `json:"payment"`
}
