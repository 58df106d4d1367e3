package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/thumlify/thumlify-cli/internal/domain"
	"github.com/thumlify/thumlify-cli/internal/ports"
)

type CreditsClient struct {
	Client *Client
}

var _ ports.CreditsAPI = (*CreditsClient)(nil)

type balanceResponse struct {
	Credits    int    `json:"credits"`
	TotalSpent int    `json:"totalSpent"`
	Username   string `json:"username"`
}

func (c *CreditsClient) FetchBalance(ctx context.Context) (domain.CreditBalance, error) {
	var payload balanceResponse
	if err := c.Client.do(ctx, http.MethodGet, "/api/credits/user-credits", nil, &payload); err != nil {
		return domain.CreditBalance{}, err
	}

	return domain.CreditBalance{
		Credits:    payload.Credits,
		TotalSpent: payload.TotalSpent,
		Username:   payload.Username,
	}, nil
}

func (c *CreditsClient) Deduct(ctx context.Context, amount int) error {
	body := map[string]int{"amount": amount}

	err := c.Client.do(ctx, http.MethodPost, "/api/credits/deduct-credits", body, nil)
	if err == nil {
		return nil
	}

	// Only a deliberate server rejection (4xx) means insufficiency; 5xx
	// responses and transport failures stay generic.
	if apiErr, ok := IsAPIError(err); ok && apiErr.Status < http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientCredits, apiErr.Error())
	}
	return err
}
