package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// VerifyOTPRequest represents the OTP verification request body
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

// AuthResponse represents the response for both auth endpoints
type AuthResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Token   string     `json:"token,omitempty"`
	Expires *time.Time `json:"expires,omitempty"`
}

// Login handles OTP issuance for a phone number
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Phone number is required"})
		return
	}

	err := h.authSvc.Login(c.Request.Context(), req.PhoneNumber)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, AuthResponse{Success: true, Message: "OTP sent successfully"})
	case errors.Is(err, domain.ErrPhoneRequired):
		c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Phone number is required"})
	case errors.Is(err, domain.ErrOTPDelivery):
		c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to send OTP"})
	default:
		log.Printf("LOGIN_ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "An error occurred"})
	}
}

// VerifyOTP handles OTP verification and token issuance
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Phone number and code are required"})
		return
	}

	result, err := h.authSvc.Verify(c.Request.Context(), req.PhoneNumber, req.Code)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, AuthResponse{
			Success: true,
			Message: "OTP verified successfully",
			Token:   result.Token,
			Expires: &result.ExpiresAt,
		})
	case errors.Is(err, domain.ErrCodeRequired), errors.Is(err, domain.ErrPhoneRequired):
		c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Phone number and code are required"})
	case errors.Is(err, domain.ErrOTPNotFound):
		c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid or expired OTP"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusBadRequest, AuthResponse{Success: false, Message: "User not found"})
	default:
		log.Printf("VERIFY_OTP_ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "An error occurred"})
	}
}
