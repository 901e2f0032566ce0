package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// UserHandlers handles user HTTP requests
type UserHandlers struct {
	userRepo domain.UserRepository
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userRepo domain.UserRepository) *UserHandlers {
	return &UserHandlers{userRepo: userRepo}
}

// ProfileResponse represents the authenticated user's profile
type ProfileResponse struct {
	ID          uint       `json:"id"`
	PhoneNumber string     `json:"phoneNumber"`
	IsVerified  bool       `json:"isVerified"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
}

// Profile returns the profile of the token's subject (requires authentication)
func (h *UserHandlers) Profile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), userID.(uint))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		ID:          user.ID,
		PhoneNumber: user.PhoneNumber,
		IsVerified:  user.IsVerified,
		CreatedAt:   user.CreatedAt,
		LastLogin:   user.LastLogin,
	})
}
