package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/macksyx1/WhatsAppAPITestings/internal/http/handlers"
	"github.com/macksyx1/WhatsAppAPITestings/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, jwtmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/verify-otp", ah.VerifyOTP)

	user := r.Group("/api/user").Use(jwtmw.WithJWT())
	user.GET("/profile", uh.Profile)

	return r
}
