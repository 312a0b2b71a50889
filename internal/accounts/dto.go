package accounts

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// describeValidation turns the first validation failure into a client message.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "email must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "len", "numeric":
		return fmt.Sprintf("%s must be a %d-digit code", fe.Field(), otpDigits)
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// SendOTPRequest starts registration for an email address.
type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterRequest completes registration with the emailed code.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	OTP      string `json:"otp" validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest authenticates with email and password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *SendOTPRequest) Validate() error  { return validate.Struct(r) }
func (r *RegisterRequest) Validate() error { return validate.Struct(r) }
func (r *LoginRequest) Validate() error    { return validate.Struct(r) }

// Profile is the public view of a user.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is returned by register and login.
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

func toProfile(user User) Profile {
	return Profile{ID: user.ID, Email: user.Email, Name: user.Name}
}
