package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// SimulatedProvider approves every charge after a short artificial delay.
// The storefront does not process real money; checkout only needs a
// transaction reference to record on the order.
type SimulatedProvider struct {
	Delay time.Duration
}

func NewSimulatedProvider(delay time.Duration) *SimulatedProvider {
	return &SimulatedProvider{Delay: delay}
}

func (p *SimulatedProvider) ProcessPayment(ctx context.Context, request *PaymentRequest) (*PaymentResponse, error) {
	if request.Amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount: %.2f", request.Amount)
	}

	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &PaymentResponse{
		TransactionID: "sim_" + randomHex(12),
		Status:        StatusSucceeded,
		Amount:        request.Amount,
		Currency:      request.Currency,
		CreatedAt:     time.Now().Unix(),
	}, nil
}

func (p *SimulatedProvider) RefundPayment(ctx context.Context, request *RefundRequest) (*RefundResponse, error) {
	if request.TransactionID == "" {
		return nil, fmt.Errorf("transaction ID required for refund")
	}

	return &RefundResponse{
		RefundID:  "sim_rf_" + randomHex(12),
		Status:    StatusSucceeded,
		Amount:    request.Amount,
		CreatedAt: time.Now().Unix(),
	}, nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}
