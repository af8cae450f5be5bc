package auth

import "time"

// RegisterInput is the customer registration body.
type RegisterInput struct {
	Username      string `json:"username" validate:"required,username"`
	FullName      string `json:"fullName" validate:"required,max=100,fullname"`
	IDNumber      string `json:"idNumber" validate:"required,idnumber"`
	AccountNumber string `json:"accountNumber" validate:"required,accountnumber"`
	Password      string `json:"password" validate:"required,password"`
}

// LoginInput represents the request body for customer authentication.
type LoginInput struct {
	Username      string `json:"username" validate:"required,max=30"`
	AccountNumber string `json:"accountNumber" validate:"required,max=16"`
	Password      string `json:"password" validate:"required,max=72"`
}

// RegisterResponse carries the new customer's id.
type RegisterResponse struct {
	ID string `json:"id"`
}

// TokenResponse is returned by every login route.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
