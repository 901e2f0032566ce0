package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macksyx1/WhatsAppAPITestings/internal/config"
	httpx "github.com/macksyx1/WhatsAppAPITestings/internal/http"
	"github.com/macksyx1/WhatsAppAPITestings/internal/http/handlers"
	"github.com/macksyx1/WhatsAppAPITestings/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	userH := handlers.NewUserHandlers(c.UserRepo)
	jwtMW := middleware.NewAuthMW(c.TokenSvc)

	r := httpx.BuildRouter(authH, userH, jwtMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
