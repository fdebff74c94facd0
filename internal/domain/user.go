package domain

import "errors"

// User is the authenticated owner of wallets, transactions and dues.
// Accounts are managed elsewhere; the service only sees verified identities.
type User struct {
	ID    string
	Email string
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
