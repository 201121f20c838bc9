package mocks

import (
	"context"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

type MockUserGateway struct {
	RegisterFunc      func(ctx context.Context, form domain.RegisterForm) error
	LoginFunc         func(ctx context.Context, creds domain.Credentials) error
	LogoutFunc        func(ctx context.Context) error
	MeFunc            func(ctx context.Context) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
}

func (m *MockUserGateway) Register(ctx context.Context, form domain.RegisterForm) error {
	return m.RegisterFunc(ctx, form)
}

func (m *MockUserGateway) Login(ctx context.Context, creds domain.Credentials) error {
	return m.LoginFunc(ctx, creds)
}

func (m *MockUserGateway) Logout(ctx context.Context) error {
	return m.LogoutFunc(ctx)
}

func (m *MockUserGateway) Me(ctx context.Context) (*domain.User, error) {
	return m.MeFunc(ctx)
}

func (m *MockUserGateway) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	return m.UpdateProfileFunc(ctx, update)
}

type MockPaymentGateway struct {
	VerifyPaymentFunc func(ctx context.Context, verification domain.PaymentVerification) error
}

func (m *MockPaymentGateway) VerifyPayment(ctx context.Context, verification domain.PaymentVerification) error {
	return m.VerifyPaymentFunc(ctx, verification)
}
