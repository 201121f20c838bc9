package domain

import "context"

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// RegisterForm is validated client-side before it is ever sent.
type RegisterForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"required,min=2,max=40"`
	Phone    string `json:"phone" validate:"omitempty,krphone"`
}

type ProfileUpdate struct {
	Name  string `json:"name" validate:"omitempty,min=2,max=40"`
	Phone string `json:"phone" validate:"omitempty,krphone"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserGateway interface {
	Register(ctx context.Context, form RegisterForm) error
	Login(ctx context.Context, creds Credentials) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error)
}
