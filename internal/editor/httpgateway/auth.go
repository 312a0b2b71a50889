package httpgateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"resumecraft/internal/editor"
)

const (
	sendOTPPath  = "/api/v1/auth/send-otp"
	registerPath = "/api/v1/auth/register"
	loginPath    = "/api/v1/auth/login"
)

// ErrRejected is returned when the accounts API refuses a registration step,
// e.g. an invalid code or an address that is already registered.
var ErrRejected = errors.New("request rejected")

type sendOTPRequest struct {
	Email string `json:"email"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

// SendOTP asks the API to email a registration code to email.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	err := c.do(ctx, http.MethodPost, sendOTPPath, "", sendOTPRequest{Email: email}, nil)
	return rejected(err, ErrRejected)
}

// Register completes registration with the emailed code and returns a
// bearer token for the new account.
func (c *Client) Register(ctx context.Context, name, email, otp, password string) (string, error) {
	var out sessionResponse
	req := registerRequest{Name: name, Email: email, OTP: otp, Password: password}
	if err := c.do(ctx, http.MethodPost, registerPath, "", req, &out); err != nil {
		return "", rejected(err, ErrRejected)
	}
	return sessionToken(out)
}

// Login exchanges email and password for a bearer token. Rejected
// credentials are reported as editor.ErrUnauthorized.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out sessionResponse
	if err := c.do(ctx, http.MethodPost, loginPath, "", loginRequest{Email: email, Password: password}, &out); err != nil {
		return "", rejected(err, editor.ErrUnauthorized)
	}
	return sessionToken(out)
}

// rejected rewraps a 400 from the accounts API as kind, keeping the server message.
func rejected(err error, kind error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
		return fmt.Errorf("%w: %s", kind, apiErr.Message)
	}
	return err
}

func sessionToken(out sessionResponse) (string, error) {
	if out.Token == "" {
		return "", fmt.Errorf("%w: response missing token", editor.ErrNetwork)
	}
	return out.Token, nil
}
