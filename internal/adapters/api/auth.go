package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/thumlify/thumlify-cli/internal/domain"
	"github.com/thumlify/thumlify-cli/internal/ports"
)

type AuthClient struct {
	Client *Client
}

var _ ports.AuthAPI = (*AuthClient)(nil)

type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u userPayload) toIdentity() domain.UserIdentity {
	return domain.UserIdentity{
		ID:       domain.UserID(u.ID),
		Username: u.Username,
		Email:    u.Email,
	}
}

type sessionResponse struct {
	User    *userPayload `json:"user"`
	Message string       `json:"message"`
}

// cooldownResponse carries the optional server-advised resend cooldown.
type cooldownResponse struct {
	RetryAfter int `json:"retryAfter"`
}

func (c *AuthClient) CurrentUser(ctx context.Context) (domain.UserIdentity, error) {
	var payload sessionResponse
	if err := c.Client.do(ctx, http.MethodGet, "/api/auth/current-user", nil, &payload); err != nil {
		return domain.UserIdentity{}, err
	}
	if payload.User == nil {
		return domain.UserIdentity{}, errors.New("session response missing user")
	}
	return payload.User.toIdentity(), nil
}

func (c *AuthClient) Login(ctx context.Context, userID, password string) (domain.UserIdentity, string, error) {
	body := map[string]string{"userId": userID, "password": password}

	var payload sessionResponse
	if err := c.Client.do(ctx, http.MethodPost, "/api/auth/login", body, &payload); err != nil {
		return domain.UserIdentity{}, "", err
	}
	if payload.User == nil {
		return domain.UserIdentity{}, "", errors.New("login response missing user")
	}
	return payload.User.toIdentity(), payload.Message, nil
}

func (c *AuthClient) Logout(ctx context.Context) error {
	return c.Client.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *AuthClient) RequestRegistrationOTP(ctx context.Context, form domain.RegistrationForm) (int, error) {
	body := map[string]string{
		"username": form.Username,
		"email":    form.Email,
		"password": form.Password,
	}

	var payload cooldownResponse
	if err := c.Client.do(ctx, http.MethodPost, "/api/auth/register/request-otp", body, &payload); err != nil {
		return 0, err
	}
	return payload.RetryAfter, nil
}

func (c *AuthClient) VerifyRegistrationOTP(ctx context.Context, form domain.RegistrationForm, otp string) (domain.UserIdentity, error) {
	body := map[string]string{
		"username": form.Username,
		"email":    form.Email,
		"password": form.Password,
		"otp":      otp,
	}

	var payload sessionResponse
	if err := c.Client.do(ctx, http.MethodPost, "/api/auth/register/verify", body, &payload); err != nil {
		return domain.UserIdentity{}, err
	}
	if payload.User == nil {
		return domain.UserIdentity{}, errors.New("verify response missing user")
	}
	return payload.User.toIdentity(), nil
}

func (c *AuthClient) ResendRegistrationOTP(ctx context.Context, email string) (int, error) {
	body := map[string]string{"email": email}

	var payload cooldownResponse
	if err := c.Client.do(ctx, http.MethodPost, "/api/auth/register/resend-otp", body, &payload); err != nil {
		return 0, err
	}
	return payload.RetryAfter, nil
}
