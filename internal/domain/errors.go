package domain

import "errors"

var (
	ErrNotFound            = errors.New("listing not found")
	ErrUnauthenticated     = errors.New("not logged in")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrCooldownActive      = errors.New("resend cooldown active")
)
