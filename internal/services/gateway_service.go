package services

import (
	"fmt"
	"log"
	"math"

	"checkout-service/internal/config"
	"checkout-service/pkg/common"
)

// GatewayStatusApproved is the gateway's approval sentinel. The match is
// exact and case sensitive; anything else is a decline.
const GatewayStatusApproved = "APPROVED"

var ErrGatewayUnavailable = fmt.Errorf("payment gateway unavailable")

// GatewayService talks to the card gateway's two endpoints: card
// tokenization and charge authorization. All settings come from the
// injected config.
type GatewayService struct {
	Config config.GatewayConfig
}

func NewGatewayService(cfg config.GatewayConfig) *GatewayService {
	return &GatewayService{Config: cfg}
}

type CardData struct {
	Number     string
	Cvc        string
	ExpMonth   string
	ExpYear    string
	CardHolder string
}

type tokenResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// TokenizeCard exchanges raw card data for a short-lived gateway token.
// Tokenization is authenticated with the public key.
func (s *GatewayService) TokenizeCard(card CardData) (string, error) {
	payload := map[string]interface{}{
		"number":      card.Number,
		"cvc":         card.Cvc,
		"exp_month":   card.ExpMonth,
		"exp_year":    card.ExpYear,
		"card_holder": card.CardHolder,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + s.Config.PublicKey,
	}

	var resp tokenResponse
	status, _, err := common.Post(fmt.Sprintf("%s/tokens/cards", s.Config.BaseUrl), payload, headers, &resp)
	if err != nil {
		log.Printf("Gateway tokenization error: %v", err)
		return "", fmt.Errorf("%w: tokenization failed", ErrGatewayUnavailable)
	}
	if status < 200 || status >= 300 {
		log.Printf("Gateway tokenization returned HTTP %d", status)
		return "", fmt.Errorf("%w: tokenization returned HTTP %d", ErrGatewayUnavailable, status)
	}
	if resp.Data.ID == "" {
		return "", fmt.Errorf("%w: empty token in gateway response", ErrGatewayUnavailable)
	}

	return resp.Data.ID, nil
}

type ChargeRequest struct {
	AmountInCents int64
	CustomerEmail string
	Token         string
	Reference     string
}

type ChargeResult struct {
	ID            string
	Status        string
	StatusMessage string
	Raw           []byte
}

type chargeResponse struct {
	Data struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		StatusMessage string `json:"status_message"`
	} `json:"data"`
}

// Charge requests authorization for a tokenized card. Authorization is
// authenticated with the private key. A completed round-trip with a
// non-approved status is NOT an error here; the caller decides.
func (s *GatewayService) Charge(req ChargeRequest) (*ChargeResult, error) {
	payload := map[string]interface{}{
		"amount_in_cents": req.AmountInCents,
		"currency":        s.Config.Currency,
		"customer_email":  req.CustomerEmail,
		"payment_method": map[string]interface{}{
			"type":         "CARD",
			"installments": s.Config.Installments,
			"token":        req.Token,
		},
		"reference":         req.Reference,
		"payment_source_id": s.Config.PaymentSourceId,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + s.Config.PrivateKey,
	}

	var resp chargeResponse
	status, body, err := common.Post(fmt.Sprintf("%s/transactions", s.Config.BaseUrl), payload, headers, &resp)
	if err != nil {
		log.Printf("Gateway charge error: %v", err)
		return nil, fmt.Errorf("%w: charge failed", ErrGatewayUnavailable)
	}
	if status < 200 || status >= 300 {
		log.Printf("Gateway charge returned HTTP %d: %s", status, string(body))
		return nil, fmt.Errorf("%w: charge returned HTTP %d", ErrGatewayUnavailable, status)
	}

	return &ChargeResult{
		ID:            resp.Data.ID,
		Status:        resp.Data.Status,
		StatusMessage: resp.Data.StatusMessage,
		Raw:           body,
	}, nil
}

// AmountInCents converts a decimal amount to integer minor units.
func AmountInCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
