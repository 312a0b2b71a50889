package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"resumecraft/internal/shared/auth"
	"resumecraft/internal/shared/metrics"
	"resumecraft/internal/shared/telemetry"
)

// DefaultOTPTTL is how long an emailed code stays valid.
const DefaultOTPTTL = 10 * time.Minute

// Service implements OTP registration and password login.
type Service struct {
	Repo   Repo
	Mailer Mailer
	Hasher Hasher
	OTPTTL time.Duration
	Now    func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, mailer Mailer, hasher Hasher, otpTTL time.Duration) *Service {
	if otpTTL <= 0 {
		otpTTL = DefaultOTPTTL
	}
	return &Service{Repo: repo, Mailer: mailer, Hasher: hasher, OTPTTL: otpTTL}
}

// SendOTP issues a fresh code for an unregistered email and mails it.
func (s *Service) SendOTP(ctx context.Context, req SendOTPRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, ErrNotFound):
		user = User{ID: uuid.NewString(), Email: req.Email, CreatedAt: s.now()}
	case err != nil:
		return err
	case user.Registered():
		return ErrAlreadyRegistered
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	expires := s.now().Add(s.OTPTTL)
	user.OTPHash = hashOTP(code)
	user.OTPExpiresAt = &expires
	user.UpdatedAt = s.now()
	if err := s.Repo.Save(ctx, user); err != nil {
		return err
	}

	if err := s.Mailer.SendOTP(ctx, user.Email, code); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	metrics.IncOTPSent()
	return nil
}

// Register verifies the code, sets the password and returns a session.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return Session{}, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrInvalidOTP
	}
	if err != nil {
		return Session{}, err
	}
	if user.OTPExpiresAt == nil || user.OTPExpiresAt.Before(s.now()) || !otpMatches(req.OTP, user.OTPHash) {
		return Session{}, ErrInvalidOTP
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return Session{}, err
	}
	user.Name = req.Name
	user.PasswordHash = hash
	user.OTPHash = ""
	user.OTPExpiresAt = nil
	user.UpdatedAt = s.now()
	if err := s.Repo.Save(ctx, user); err != nil {
		return Session{}, err
	}

	telemetry.Info("accounts.registered", map[string]any{"user_id": user.ID})
	return s.session(user)
}

// Login checks the password and returns a session.
func (s *Service) Login(ctx context.Context, req LoginRequest) (Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return Session{}, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}
	if err != nil || !user.Registered() || !s.Hasher.Verify(req.Password, user.PasswordHash) {
		metrics.IncLoginFailed()
		return Session{}, ErrInvalidCredentials
	}
	return s.session(user)
}

// Me returns the profile of an authenticated user.
func (s *Service) Me(ctx context.Context, userID string) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return toProfile(user), nil
}

func (s *Service) session(user User) (Session, error) {
	token, err := auth.SignJWT(auth.Claims{
		Email:            user.Email,
		Name:             user.Name,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	})
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: toProfile(user)}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
