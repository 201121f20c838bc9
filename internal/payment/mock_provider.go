package payment

import "context"

// MockProvider approves every checkout, echoing the merchant UID back as the
// provider transaction id. Used in tests and in environments without a real
// payment gateway.
type MockProvider struct {
	RequestPayFunc func(ctx context.Context, req CheckoutRequest) (*Receipt, error)
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) RequestPay(ctx context.Context, req CheckoutRequest) (*Receipt, error) {
	if m.RequestPayFunc != nil {
		return m.RequestPayFunc(ctx, req)
	}

	return &Receipt{
		ImpUID:      "imp_" + req.MerchantUID,
		MerchantUID: req.MerchantUID,
	}, nil
}
