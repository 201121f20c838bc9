package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

func TestRegisterFormValidation(t *testing.T) {
	validate := NewValidator()

	valid := domain.RegisterForm{
		Email:    "kim@example.com",
		Password: "Sup3rSecret!",
		Name:     "Kim",
		Phone:    "010-1234-5678",
	}

	tests := []struct {
		name     string
		mutate   func(*domain.RegisterForm)
		wantFail string
	}{
		{name: "valid form", mutate: func(f *domain.RegisterForm) {}},
		{
			name:   "phone is optional",
			mutate: func(f *domain.RegisterForm) { f.Phone = "" },
		},
		{
			name:     "missing email",
			mutate:   func(f *domain.RegisterForm) { f.Email = "" },
			wantFail: "Email",
		},
		{
			name:     "malformed email",
			mutate:   func(f *domain.RegisterForm) { f.Email = "not-an-email" },
			wantFail: "Email",
		},
		{
			name:     "password too short",
			mutate:   func(f *domain.RegisterForm) { f.Password = "Ab1!" },
			wantFail: "Password",
		},
		{
			name:     "password without uppercase",
			mutate:   func(f *domain.RegisterForm) { f.Password = "sup3rsecret!" },
			wantFail: "Password",
		},
		{
			name:     "password without digit",
			mutate:   func(f *domain.RegisterForm) { f.Password = "SuperSecret!" },
			wantFail: "Password",
		},
		{
			name:     "password without special character",
			mutate:   func(f *domain.RegisterForm) { f.Password = "Sup3rSecret" },
			wantFail: "Password",
		},
		{
			name:     "name too short",
			mutate:   func(f *domain.RegisterForm) { f.Name = "K" },
			wantFail: "Name",
		},
		{
			name:     "landline is not a mobile number",
			mutate:   func(f *domain.RegisterForm) { f.Phone = "02-123-4567" },
			wantFail: "Phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)

			err := validate.Struct(form)
			if tt.wantFail == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantFail)
		})
	}
}

func TestKoreanPhoneFormats(t *testing.T) {
	validate := NewValidator()

	tests := []struct {
		phone string
		valid bool
	}{
		{"010-1234-5678", true},
		{"01012345678", true},
		{"010-123-4567", true},
		{"011-1234-5678", true},
		{"010-12-5678", false},
		{"110-1234-5678", false},
		{"phone", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := validate.Var(tt.phone, "krphone")
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
