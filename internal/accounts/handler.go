package accounts

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumecraft/internal/shared/server/middleware"
	"resumecraft/internal/shared/server/respond"
)

// Handler exposes registration, login and profile endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public /auth routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/send-otp", h.sendOTP)
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
}

// RegisterMeRoutes attaches /me, which needs an authenticated caller.
func (h *Handler) RegisterMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

func (h *Handler) sendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Email is required", nil)
		return
	}
	if err := h.Svc.SendOTP(c.Request.Context(), req); err != nil {
		writeError(c, err, "Failed to send OTP")
		return
	}
	respond.Message(c, "OTP sent successfully")
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Name, Email, OTP, and password are required", nil)
		return
	}
	session, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Failed to register user")
		return
	}
	respond.OK(c, session)
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Email and password are required", nil)
		return
	}
	session, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Failed to login")
		return
	}
	respond.OK(c, session)
}

func (h *Handler) me(c *gin.Context) {
	profile, err := h.Svc.Me(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		}
		return
	}
	respond.OK(c, profile)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "), nil)
	case errors.Is(err, ErrAlreadyRegistered):
		respond.Error(c, http.StatusBadRequest, "already_registered", "User already exists. Please login.", nil)
	case errors.Is(err, ErrInvalidOTP):
		respond.Error(c, http.StatusBadRequest, "invalid_otp", "Invalid or expired OTP", nil)
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusBadRequest, "invalid_credentials", "Invalid email or password", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
