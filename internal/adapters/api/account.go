package api

import (
	"context"
	"net/http"

	"github.com/thumlify/thumlify-cli/internal/ports"
)

type AccountClient struct {
	Client *Client
}

var _ ports.AccountAPI = (*AccountClient)(nil)

func (c *AccountClient) UpdateProfile(ctx context.Context, username, email string) error {
	body := map[string]string{"username": username, "email": email}
	return c.Client.do(ctx, http.MethodPut, "/api/manage/update-profile", body, nil)
}

func (c *AccountClient) RequestPasswordOTP(ctx context.Context) (int, error) {
	var payload cooldownResponse
	if err := c.Client.do(ctx, http.MethodPost, "/api/manage/request-otp", nil, &payload); err != nil {
		return 0, err
	}
	return payload.RetryAfter, nil
}

func (c *AccountClient) ResendPasswordOTP(ctx context.Context) (int, error) {
	var payload cooldownResponse
	if err := c.Client.do(ctx, http.MethodPost, "/api/manage/resend-otp", nil, &payload); err != nil {
		return 0, err
	}
	return payload.RetryAfter, nil
}

func (c *AccountClient) VerifyPasswordOTP(ctx context.Context, otp, newPassword string) error {
	body := map[string]string{"otp": otp, "newPassword": newPassword}
	return c.Client.do(ctx, http.MethodPost, "/api/manage/verify-otp", body, nil)
}

func (c *AccountClient) DeleteAccount(ctx context.Context) error {
	return c.Client.do(ctx, http.MethodPost, "/api/manage/delete-account", nil, nil)
}
