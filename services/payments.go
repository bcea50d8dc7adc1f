package services

import (
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// PaymentService creates payment intents with the processor and hands the
// client secret back for the mobile client to confirm. Failures propagate
// as-is.
type PaymentService struct {
	api      *client.API
	currency string
}

func NewPaymentService(secretKey, currency string) *PaymentService {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &PaymentService{api: api, currency: currency}
}

// CreateIntent takes the amount in the currency's smallest unit.
func (s *PaymentService) CreateIntent(amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(s.currency),
	}

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}

	return intent.ClientSecret, nil
}
