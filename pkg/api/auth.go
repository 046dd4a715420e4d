package api

import (
	"context"
	"net/http"

	bferrors "github.com/matzehuels/bookfair/pkg/errors"
)

// Login exchanges credentials for a token. On success the client keeps the
// token for later calls.
func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (*AuthResult, error) {
	if err := bferrors.ValidateLogin(usernameOrEmail, password); err != nil {
		return nil, err
	}
	return c.authenticate(ctx, "/api/auth/login",
		LoginRequest{UsernameOrEmail: usernameOrEmail, Password: password},
		"Login failed. Please check your credentials.")
}

// Register creates an account from a validated sign-up form and signs in.
func (c *Client) Register(ctx context.Context, form bferrors.Registration) (*AuthResult, error) {
	if err := bferrors.ValidateRegistration(form); err != nil {
		return nil, err
	}
	req := RegisterRequest{
		FullName:    form.FullName,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		CompanyName: form.CompanyName,
		Password:    form.Password,
	}
	return c.authenticate(ctx, "/api/auth/register", req, "Registration failed. Please try again.")
}

func (c *Client) authenticate(ctx context.Context, path string, body any, fallback string) (*AuthResult, error) {
	data, err := c.do(ctx, request{method: http.MethodPost, path: path, body: body})
	if err != nil {
		if bferrors.Is(err, bferrors.ErrCodeValidation) || bferrors.Is(err, bferrors.ErrCodeUnauthorized) {
			return nil, bferrors.Wrap(bferrors.ErrCodeUnauthorized, err, "%s", bferrors.UserMessage(err))
		}
		return nil, err
	}
	if err := checkSuccess(data, bferrors.ErrCodeUnauthorized, fallback); err != nil {
		return nil, err
	}

	var res AuthResult
	if err := decodePayload(data, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, bferrors.New(bferrors.ErrCodeUnauthorized, "%s", fallback)
	}
	c.token = res.Token
	return &res, nil
}
