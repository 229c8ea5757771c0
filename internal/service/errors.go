package service

import "errors"

var (
	// ErrLocaleNotAllowed indicates a worker acting at a storefront they
	// are not assigned to.
	ErrLocaleNotAllowed = errors.New("locale not allowed for user")

	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordRequired indicates a new user saved without a password.
	ErrPasswordRequired = errors.New("password is required")

	ErrInvalidProduct = errors.New("invalid product")
)
