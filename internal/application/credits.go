package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/thumlify/thumlify-cli/internal/domain"
	"github.com/thumlify/thumlify-cli/internal/ports"
)

// CreditCache is a read-through mirror of the server-side credit ledger.
// It never does arithmetic on the balance: every value it holds is a whole
// response from the balance endpoint. Concurrent refreshes are safe; the
// last response to land wins.
type CreditCache struct {
	api ports.CreditsAPI
	log zerolog.Logger

	mu      sync.Mutex
	balance *domain.CreditBalance
}

func NewCreditCache(api ports.CreditsAPI, log zerolog.Logger) *CreditCache {
	return &CreditCache{api: api, log: log}
}

// Refresh replaces the cached balance with the server's. On failure the
// balance goes absent rather than stale or partially updated.
func (c *CreditCache) Refresh(ctx context.Context) error {
	balance, err := c.api.FetchBalance(ctx)
	if err != nil {
		c.mu.Lock()
		c.balance = nil
		c.mu.Unlock()
		return fmt.Errorf("refresh credit balance: %w", err)
	}

	c.mu.Lock()
	c.balance = &balance
	c.mu.Unlock()

	c.log.Debug().Int("credits", balance.Credits).Msg("credit balance refreshed")
	return nil
}

// Balance returns the last mirrored value, or nil when no user is present
// or the last refresh failed.
func (c *CreditCache) Balance() *domain.CreditBalance {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.balance == nil {
		return nil
	}
	b := *c.balance
	return &b
}

func (c *CreditCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balance = nil
}

// ConfirmFunds is the fail-closed pre-check for billable actions: a fresh
// pull, never the cached value. Anything short of a confirmed positive
// balance is a no.
func (c *CreditCache) ConfirmFunds(ctx context.Context) bool {
	balance, err := c.api.FetchBalance(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("funds pre-check failed closed")
		return false
	}
	return balance.Credits > 0
}
